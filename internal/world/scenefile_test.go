package world

import (
	"os"
	"path/filepath"
	"testing"

	"charmove3d/internal/components"
	"charmove3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const courtyard = `
name: Courtyard
gravity: [0, -20, 0]
objects:
  - name: Floor
    color: DarkGray
    position: [0, -0.5, 0]
    components:
      - type: BoxCollider
        size: [40, 1, 40]
  - name: Hero
    tags: [player]
    color: Blue
    position: [0, 1, 0]
    components:
      - type: CapsuleCollider
        radius: 0.4
        height: 1.8
      - type: CharacterController
        maxSlopeAngle: 40
        stepOffset: 0.3
      - type: Player
        speed: 6
  - name: Lift
    position: [5, 0.25, 0]
    components:
      - type: BoxCollider
        size: [2, 0.5, 2]
      - type: Rigidbody
        isKinematic: true
      - type: Mover
        travel: [0, 2, 0]
        speed: 1
    children:
      - name: Rail
        active: false
        position: [1, 0, 0]
        components:
          - type: BoxCollider
            size: [0.1, 1, 0.1]
`

func TestLoadSceneBytes(t *testing.T) {
	w := New()
	require.NoError(t, w.LoadSceneBytes([]byte(courtyard)))

	assert.Equal(t, "Courtyard", w.Scene.Name)
	assert.Equal(t, rl.Vector3{Y: -20}, w.Physics.Gravity())
	assert.Len(t, w.Scene.GameObjects, 4)
	assert.Len(t, w.Physics.Statics, 2)
	assert.Len(t, w.Physics.Kinematics, 1)
	assert.Len(t, w.Physics.Characters, 1)

	hero := w.Scene.FindByName("Hero")
	require.NotNil(t, hero)
	assert.True(t, hero.HasTag("player"))
	assert.Equal(t, rl.Blue, w.ColorOf(hero))
	assert.Equal(t, rl.Vector3{Y: 1}, hero.Transform.Position)

	cc := engine.GetComponent[*components.CharacterController](hero)
	require.NotNil(t, cc)
	require.NotNil(t, cc.Controller(), "the loaded scene is started")
	assert.InDelta(t, 40, cc.Config.MaxSlopeAngle, 1e-6)
	assert.InDelta(t, 0.3, cc.Config.StepOffset, 1e-6)
	assert.InDelta(t, 20, cc.Config.GravityForce, 1e-4)
	assert.NotNil(t, engine.GetComponent[*components.Player](hero))

	rail := w.Scene.FindByName("Rail")
	require.NotNil(t, rail)
	assert.False(t, rail.Active)
	assert.Same(t, w.Scene.FindByName("Lift"), rail.Parent)
}

func TestLoadSceneErrorsLeaveWorldUntouched(t *testing.T) {
	tests := []struct {
		name  string
		scene string
		want  error
	}{
		{
			name:  "unknown component",
			scene: "objects:\n  - name: Thing\n    components:\n      - type: Teleporter\n",
			want:  ErrUnknownComponent,
		},
		{
			name:  "unknown color",
			scene: "objects:\n  - name: Thing\n    color: Chartreuse\n",
		},
		{
			name:  "invalid controller",
			scene: "objects:\n  - name: Thing\n    components:\n      - type: CharacterController\n        maxSlides: 0\n",
		},
		{
			name:  "bad child",
			scene: "objects:\n  - name: Thing\n    children:\n      - name: Kid\n        components:\n          - type: BoxCollider\n            size: big\n",
		},
		{
			name:  "not yaml",
			scene: "objects: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New()
			require.NoError(t, w.LoadSceneBytes([]byte(courtyard)))
			before := len(w.Scene.GameObjects)

			loads := 0
			w.OnSceneLoaded.AddListener(func() { loads++ })

			err := w.LoadSceneBytes([]byte(tt.scene))
			require.Error(t, err)
			assert.Zero(t, loads, "failed loads are not announced")
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
			assert.Equal(t, "Courtyard", w.Scene.Name)
			assert.Len(t, w.Scene.GameObjects, before)
		})
	}
}

func TestLoadSceneAnnouncesNewContents(t *testing.T) {
	w := New()
	var seen []string
	w.OnSceneLoaded.AddListener(func() {
		hero := w.Scene.FindByName("Hero")
		require.NotNil(t, hero)
		seen = append(seen, w.Scene.Name)
	})

	require.NoError(t, w.LoadSceneBytes([]byte(courtyard)))
	require.NoError(t, w.LoadSceneBytes([]byte(courtyard)))
	assert.Equal(t, []string{"Courtyard", "Courtyard"}, seen)

	w.Reset()
	assert.Equal(t, 1, w.OnSceneLoaded.ListenerCount(), "listeners survive a reset")
}

func TestSceneRoundTrip(t *testing.T) {
	w := New()
	require.NoError(t, w.LoadSceneBytes([]byte(courtyard)))

	path := filepath.Join(t.TempDir(), "courtyard.yaml")
	require.NoError(t, w.SaveScene(path))

	loaded := New()
	require.NoError(t, loaded.LoadScene(path))

	assert.Equal(t, w.Scene.Name, loaded.Scene.Name)
	assert.Equal(t, w.Physics.Gravity(), loaded.Physics.Gravity())
	require.Len(t, loaded.Scene.GameObjects, len(w.Scene.GameObjects))
	for _, g := range w.Scene.GameObjects {
		other := loaded.Scene.FindByName(g.Name)
		require.NotNil(t, other, g.Name)
		assert.Equal(t, g.Transform, other.Transform, g.Name)
		assert.Equal(t, g.Active, other.Active, g.Name)
		assert.Equal(t, w.ColorOf(g), loaded.ColorOf(other), g.Name)
		assert.Len(t, other.Components(), len(g.Components()), g.Name)
	}

	cc := engine.GetComponent[*components.CharacterController](loaded.Scene.FindByName("Hero"))
	require.NotNil(t, cc)
	assert.InDelta(t, 40, cc.Config.MaxSlopeAngle, 1e-6)

	mover := engine.GetComponent[*components.Mover](loaded.Scene.FindByName("Lift"))
	require.NotNil(t, mover)
	assert.Equal(t, rl.Vector3{Y: 2}, mover.Travel)
}

func TestLoadSceneMissingFile(t *testing.T) {
	w := New()
	err := w.LoadScene(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestExampleScenesLoad(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "assets", "scenes", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			w := New()
			require.NoError(t, w.LoadScene(path))
			assert.NotEmpty(t, w.Physics.Characters)
		})
	}
}
