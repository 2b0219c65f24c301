package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer action, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionFast
	ActionToggleWireframe
	ActionToggleProfiling
	ActionReleaseCursor
	ActionQuit
	ActionCount // sentinel for array sizing
)

// Manager maps keys to actions and tracks held and just-pressed state per frame.
type Manager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	current     [ActionCount]bool
	justPressed [ActionCount]bool
}

// NewManager returns a manager with the default WASD fly bindings
func NewManager() *Manager {
	m := &Manager{keyToActions: make(map[glfw.Key][]Action)}
	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeySpace, ActionMoveUp)
	m.BindKey(glfw.KeyLeftShift, ActionMoveDown)
	m.BindKey(glfw.KeyLeftControl, ActionFast)
	m.BindKey(glfw.KeyF, ActionToggleWireframe)
	m.BindKey(glfw.KeyV, ActionToggleProfiling)
	m.BindKey(glfw.KeyEscape, ActionReleaseCursor)
	m.BindKey(glfw.KeyQ, ActionQuit)
	return m
}

// BindKey adds an action to a key. A key may drive several actions.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
	m.mu.Unlock()
}

// HandleKeyEvent updates state for a GLFW key event
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range m.keyToActions[key] {
		if pressed && !m.current[act] {
			m.justPressed[act] = true
		}
		m.current[act] = pressed
	}
}

// Attach installs the key callback on window
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
}

// PostUpdate clears edge flags; call once at the end of every frame
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	clear(m.justPressed[:])
	m.mu.Unlock()
}

// IsActive reports whether the action is held
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current[action]
}

// JustPressed reports whether the action went down this frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// Axis returns +1, -1 or 0 from a pair of opposing actions
func (m *Manager) Axis(positive, negative Action) float32 {
	var v float32
	if m.IsActive(positive) {
		v++
	}
	if m.IsActive(negative) {
		v--
	}
	return v
}
