package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneAddGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Player")

	scene.AddGameObject(obj)

	require.Len(t, scene.GameObjects, 1)
	assert.Same(t, obj, scene.GameObjects[0])
	assert.Same(t, scene, obj.Scene)
	assert.Same(t, obj, scene.FindByUID(obj.UID))
	assert.Nil(t, scene.FindByUID(0))
}

func TestSceneRemoveGameObject(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Player")
	obj2 := NewGameObject("Enemy")
	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)

	scene.RemoveGameObject(obj1)

	require.Len(t, scene.GameObjects, 1)
	assert.Same(t, obj2, scene.GameObjects[0])
	assert.Nil(t, scene.FindByUID(obj1.UID))
	assert.Nil(t, obj1.Scene)
	assert.Same(t, obj2, scene.FindByUID(obj2.UID))
}

func TestSceneRemoveWithChildren(t *testing.T) {
	scene := NewScene("Test")
	parent := NewGameObject("Parent")
	child := NewGameObject("Child")
	scene.AddGameObject(parent)
	scene.AddGameObject(child)
	parent.AddChild(child)

	scene.RemoveGameObject(parent)

	assert.Empty(t, scene.GameObjects)
	assert.Nil(t, scene.FindByUID(parent.UID))
	assert.Nil(t, scene.FindByUID(child.UID))
}

func TestSceneFind(t *testing.T) {
	scene := NewScene("Test")
	obj1 := NewGameObject("Enemy1")
	obj2 := NewGameObject("Enemy2")
	obj3 := NewGameObject("Player")
	obj1.Tags = []string{"enemy", "ai"}
	obj2.Tags = []string{"enemy"}
	obj3.Tags = []string{"player"}
	scene.AddGameObject(obj1)
	scene.AddGameObject(obj2)
	scene.AddGameObject(obj3)

	assert.Same(t, obj3, scene.FindByName("Player"))
	assert.Nil(t, scene.FindByName("DoesNotExist"))
	assert.Len(t, scene.FindByTag("enemy"), 2)
	assert.Len(t, scene.FindByTag("player"), 1)
	assert.Empty(t, scene.FindByTag("nonexistent"))
}

func TestSceneZeroValueAdd(t *testing.T) {
	var scene Scene
	obj := NewGameObject("Test")

	scene.AddGameObject(obj)

	assert.Same(t, obj, scene.FindByUID(obj.UID))
}

func TestSceneLifecycle(t *testing.T) {
	scene := NewScene("Test")
	obj := NewGameObject("Test")
	c := &countingComponent{}
	obj.AddComponent(c)
	scene.AddGameObject(obj)

	scene.Start()
	scene.Update(0.1)
	scene.FixedUpdate(0.1)
	scene.FixedUpdate(0.1)

	assert.Equal(t, 1, c.starts)
	assert.Equal(t, 1, c.updates)
	assert.Equal(t, 2, c.fixed)
}
