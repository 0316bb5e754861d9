// Package input turns window key events into per-frame action state.
package input

import "sync"

// Key is a keyboard key code. Values match GLFW key codes.
type Key int

const (
	KeySpace     Key = 32
	KeyA         Key = 65
	KeyD         Key = 68
	KeyE         Key = 69
	KeyF         Key = 70
	KeyP         Key = 80
	KeyQ         Key = 81
	KeyS         Key = 83
	KeyW         Key = 87
	KeyEscape    Key = 256
	KeyRight     Key = 262
	KeyLeft      Key = 263
	KeyDown      Key = 264
	KeyUp        Key = 265
	KeyLeftShift Key = 340
)

// Action represents a logical engine action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionTurnLeft
	ActionTurnRight
	ActionLookUp
	ActionLookDown
	ActionToggleWireframe
	ActionSnapshot
	ActionClose
	ActionCount // Sentinel value for array sizing
)

type keyEvent struct {
	key     Key
	pressed bool
}

// Callback collects key events from the window thread and exposes them to the
// render loop one frame at a time.
type Callback struct {
	mu sync.Mutex

	keyToActions map[Key][]Action
	handlers     map[Action][]func()
	pending      []keyEvent

	// Frame state, written only by Update
	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewCallback creates a Callback with the default key bindings
func NewCallback() *Callback {
	c := &Callback{
		keyToActions: make(map[Key][]Action),
		handlers:     make(map[Action][]func()),
	}

	c.BindKey(KeyW, ActionMoveForward)
	c.BindKey(KeyS, ActionMoveBackward)
	c.BindKey(KeyA, ActionMoveLeft)
	c.BindKey(KeyD, ActionMoveRight)
	c.BindKey(KeySpace, ActionMoveUp)
	c.BindKey(KeyLeftShift, ActionMoveDown)
	c.BindKey(KeyLeft, ActionTurnLeft)
	c.BindKey(KeyRight, ActionTurnRight)
	c.BindKey(KeyUp, ActionLookUp)
	c.BindKey(KeyDown, ActionLookDown)
	c.BindKey(KeyF, ActionToggleWireframe)
	c.BindKey(KeyP, ActionSnapshot)
	c.BindKey(KeyEscape, ActionClose)

	return c
}

// BindKey binds a physical key to a logical action
func (c *Callback) BindKey(key Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keyToActions[key] = append(c.keyToActions[key], action)
}

// UnbindKey removes all action bindings for a key
func (c *Callback) UnbindKey(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.keyToActions, key)
}

// OnPress registers fn to run on the render thread whenever action is pressed
func (c *Callback) OnPress(action Action, fn func()) {
	if action < 0 || action >= ActionCount {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[action] = append(c.handlers[action], fn)
}

// HandleKey queues a key event. Safe to call from the window callback.
func (c *Callback) HandleKey(key Key, pressed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.keyToActions[key]; !ok {
		return
	}
	c.pending = append(c.pending, keyEvent{key: key, pressed: pressed})
}

// Update applies the events queued since the previous frame, recomputes the edge
// flags and runs the press handlers. Call once per frame from the render thread.
func (c *Callback) Update() {
	c.mu.Lock()
	for i := Action(0); i < ActionCount; i++ {
		c.justPressed[i] = false
		c.justReleased[i] = false
	}
	for _, ev := range c.pending {
		for _, act := range c.keyToActions[ev.key] {
			if ev.pressed && !c.currentState[act] {
				c.justPressed[act] = true
			}
			if !ev.pressed && c.currentState[act] {
				c.justReleased[act] = true
			}
			c.currentState[act] = ev.pressed
		}
	}
	c.pending = c.pending[:0]

	var fire []func()
	for act := Action(0); act < ActionCount; act++ {
		if c.justPressed[act] {
			fire = append(fire, c.handlers[act]...)
		}
	}
	c.mu.Unlock()

	for _, fn := range fire {
		fn()
	}
}

// IsActive returns true if the action is currently being held down
func (c *Callback) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentState[action]
}

// JustPressed returns true only if the action was pressed since the previous frame
func (c *Callback) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.justPressed[action]
}

// JustReleased returns true only if the action was released since the previous frame
func (c *Callback) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.justReleased[action]
}
