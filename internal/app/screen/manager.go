package screen

type resizer interface {
	Resize(maxWidth, maxHeight int)
}

// Manager keeps the stack of open overlays. Only the top one receives input.
type Manager struct {
	current Screen
	stack   []Screen
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Push shows s above whatever is currently displayed.
func (m *Manager) Push(s Screen) {
	if s == nil {
		return
	}
	if m.current != nil {
		m.stack = append(m.stack, m.current)
	}
	m.current = s
}

// Pop removes the current screen and restores the previous one.
// Returns the screen that was removed, or nil if no screen was active.
func (m *Manager) Pop() Screen {
	removed := m.current
	if len(m.stack) > 0 {
		m.current = m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
	} else {
		m.current = nil
	}
	return removed
}

// Current returns the currently active screen, or nil if none.
func (m *Manager) Current() Screen {
	return m.current
}

// IsActive reports whether an overlay is displayed.
func (m *Manager) IsActive() bool {
	return m.current != nil
}

// Type returns the type of the current screen, or TypeNone.
func (m *Manager) Type() Type {
	if m.current == nil {
		return TypeNone
	}
	return m.current.Type()
}

// Has reports whether a screen of type t is anywhere in the stack.
func (m *Manager) Has(t Type) bool {
	if m.Type() == t {
		return true
	}
	for _, s := range m.stack {
		if s.Type() == t {
			return true
		}
	}
	return false
}

// Remove drops every screen of type t, keeping the order of the others.
func (m *Manager) Remove(t Type) {
	kept := m.stack[:0]
	for _, s := range m.stack {
		if s.Type() != t {
			kept = append(kept, s)
		}
	}
	m.stack = kept
	if m.current != nil && m.current.Type() == t {
		m.Pop()
	}
}

// Clear removes all screens.
func (m *Manager) Clear() {
	m.current = nil
	m.stack = m.stack[:0]
}

// StackDepth returns the number of screens below the current one.
func (m *Manager) StackDepth() int {
	return len(m.stack)
}

// Resize forwards a terminal size change to every open screen that cares.
func (m *Manager) Resize(width, height int) {
	if r, ok := m.current.(resizer); ok {
		r.Resize(width, height)
	}
	for _, s := range m.stack {
		if r, ok := s.(resizer); ok {
			r.Resize(width, height)
		}
	}
}
