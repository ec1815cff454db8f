package world

import (
	"fmt"
	"os"

	"charmove3d/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrUnknownComponent is returned when a scene names a component type
// that was never registered.
var ErrUnknownComponent = engine.ErrUnknownComponent

// --- YAML types ---

type SceneFile struct {
	Name    string      `yaml:"name,omitempty"`
	Gravity *[3]float32 `yaml:"gravity,omitempty"`
	Objects []ObjectDef `yaml:"objects"`
}

type ObjectDef struct {
	Name       string         `yaml:"name"`
	Tags       []string       `yaml:"tags,omitempty"`
	Active     *bool          `yaml:"active,omitempty"`
	Color      string         `yaml:"color,omitempty"`
	Position   [3]float32     `yaml:"position"`
	Rotation   [3]float32     `yaml:"rotation,omitempty"`
	Scale      *[3]float32    `yaml:"scale,omitempty"`
	Components []ComponentDef `yaml:"components,omitempty"`
	Children   []ObjectDef    `yaml:"children,omitempty"`
}

// ComponentDef is a registered component type plus the properties handed
// to its Deserialize.
type ComponentDef struct {
	Type  string         `yaml:"type"`
	Props map[string]any `yaml:",inline"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

func lookupColor(name string) (rl.Color, bool) {
	c, ok := colorByName[name]
	return c, ok
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

func array3(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// --- Loading ---

// LoadScene replaces the world's contents with the scene at path and
// starts it.
func (w *World) LoadScene(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	if err := w.LoadSceneBytes(data); err != nil {
		return fmt.Errorf("load scene %s: %w", path, err)
	}
	return nil
}

// LoadSceneBytes parses a YAML scene. The world is only replaced once the
// whole scene has been built, so a bad file leaves it untouched.
func (w *World) LoadSceneBytes(data []byte) error {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parse scene: %w", err)
	}

	objects := make([]*engine.GameObject, 0, len(sf.Objects))
	colors := make(map[*engine.GameObject]rl.Color)
	for i := range sf.Objects {
		g, err := buildObject(&sf.Objects[i], colors)
		if err != nil {
			return err
		}
		objects = append(objects, g)
	}

	w.Reset()
	if sf.Name != "" {
		w.Scene.Name = sf.Name
	}
	if sf.Gravity != nil {
		w.Physics.SetGravity(vec3(*sf.Gravity))
	}
	for _, g := range objects {
		w.Add(g)
	}
	for g, c := range colors {
		w.SetColor(g, c)
	}
	w.Start()

	w.log.Info("scene loaded",
		zap.String("scene", w.Scene.Name),
		zap.Int("objects", len(w.Scene.GameObjects)),
		zap.Int("statics", len(w.Physics.Statics)),
		zap.Int("dynamics", len(w.Physics.Objects)),
		zap.Int("characters", len(w.Physics.Characters)))
	w.OnSceneLoaded.Invoke()
	return nil
}

func buildObject(def *ObjectDef, colors map[*engine.GameObject]rl.Color) (*engine.GameObject, error) {
	g := engine.NewGameObject(def.Name)
	g.Tags = def.Tags
	if def.Active != nil {
		g.Active = *def.Active
	}
	g.Transform.Position = vec3(def.Position)
	g.Transform.Rotation = vec3(def.Rotation)
	if def.Scale != nil {
		g.Transform.Scale = vec3(*def.Scale)
	}
	if def.Color != "" {
		c, ok := lookupColor(def.Color)
		if !ok {
			return nil, fmt.Errorf("object %q: unknown color %q", def.Name, def.Color)
		}
		colors[g] = c
	}

	for _, cd := range def.Components {
		comp, err := engine.CreateComponent(cd.Type, cd.Props)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}
		g.AddComponent(comp)
	}

	for i := range def.Children {
		child, err := buildObject(&def.Children[i], colors)
		if err != nil {
			return nil, fmt.Errorf("object %q: %w", def.Name, err)
		}
		g.AddChild(child)
	}
	return g, nil
}

// --- Saving ---

// MarshalScene encodes the world's root objects, their children and every
// serializable component as YAML.
func (w *World) MarshalScene() ([]byte, error) {
	gravity := array3(w.Physics.Gravity())
	sf := SceneFile{Name: w.Scene.Name, Gravity: &gravity}

	for _, g := range w.Scene.GameObjects {
		if g.Parent != nil {
			continue
		}
		sf.Objects = append(sf.Objects, w.objectDef(g))
	}

	data, err := yaml.Marshal(sf)
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

func (w *World) SaveScene(path string) error {
	data, err := w.MarshalScene()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func (w *World) objectDef(g *engine.GameObject) ObjectDef {
	scale := array3(g.Transform.Scale)
	def := ObjectDef{
		Name:     g.Name,
		Tags:     g.Tags,
		Position: array3(g.Transform.Position),
		Rotation: array3(g.Transform.Rotation),
		Scale:    &scale,
	}
	if !g.Active {
		active := false
		def.Active = &active
	}
	if c, ok := w.colors[g.UID]; ok {
		def.Color = nameByColor[c]
	}

	for _, c := range g.Components() {
		if s, ok := c.(engine.Serializable); ok {
			def.Components = append(def.Components, ComponentDef{Type: s.TypeName(), Props: s.Serialize()})
		}
	}
	for _, child := range g.Children {
		def.Children = append(def.Children, w.objectDef(child))
	}
	return def
}
