package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgesAppearOnUpdate(t *testing.T) {
	c := NewCallback()
	c.HandleKey(KeyW, true)
	assert.False(t, c.IsActive(ActionMoveForward), "events wait for the next frame")

	c.Update()
	assert.True(t, c.IsActive(ActionMoveForward))
	assert.True(t, c.JustPressed(ActionMoveForward))

	c.Update()
	assert.True(t, c.IsActive(ActionMoveForward))
	assert.False(t, c.JustPressed(ActionMoveForward))

	c.HandleKey(KeyW, false)
	c.Update()
	assert.False(t, c.IsActive(ActionMoveForward))
	assert.True(t, c.JustReleased(ActionMoveForward))
}

func TestRepeatDoesNotRetrigger(t *testing.T) {
	c := NewCallback()
	presses := 0
	c.OnPress(ActionToggleWireframe, func() { presses++ })

	c.HandleKey(KeyF, true)
	c.HandleKey(KeyF, true)
	c.Update()
	assert.Equal(t, 1, presses)

	c.HandleKey(KeyF, false)
	c.HandleKey(KeyF, true)
	c.Update()
	assert.Equal(t, 2, presses)
}

func TestUnboundKeysIgnored(t *testing.T) {
	c := NewCallback()
	c.UnbindKey(KeyEscape)
	c.HandleKey(KeyEscape, true)
	c.Update()
	assert.False(t, c.IsActive(ActionClose))

	c.BindKey(Key(1000), ActionClose)
	c.HandleKey(Key(1000), true)
	c.Update()
	assert.True(t, c.JustPressed(ActionClose))
	assert.False(t, c.IsActive(Action(-1)))
}
