package history

import (
	"meshedit/internal/engine"
	"meshedit/internal/logging"
)

// DefaultLimit caps the undo stack when no explicit limit is configured.
const DefaultLimit = 100

// Manager holds the undo (history) and redo (future) stacks for a scene.
// Executing a new command always clears the redo stack.
type Manager struct {
	scene   *engine.Scene
	history []Command
	future  []Command
	limit   int

	// OnChange fires after every execute, undo, redo and clear.
	OnChange engine.Event
}

// NewManager returns a manager bound to scene. A limit of 0 or less keeps
// every command.
func NewManager(scene *engine.Scene, limit int) *Manager {
	return &Manager{scene: scene, limit: limit}
}

// Execute applies cmd, records it and discards the redo stack.
func (m *Manager) Execute(cmd Command) {
	cmd.Execute(m.scene)
	m.history = append(m.history, cmd)
	if m.limit > 0 && len(m.history) > m.limit {
		m.history = m.history[len(m.history)-m.limit:]
	}
	m.future = m.future[:0]
	logging.Logger().Debug("command executed", "cmd", cmd.Label(), "depth", len(m.history))
	m.OnChange.Invoke()
}

// Undo reverts the most recent command. It returns false when there is
// nothing to undo.
func (m *Manager) Undo() bool {
	if len(m.history) == 0 {
		return false
	}
	cmd := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	cmd.Undo(m.scene)
	m.future = append(m.future, cmd)
	logging.Logger().Info("undo", "cmd", cmd.Label())
	m.OnChange.Invoke()
	return true
}

// Redo re-applies the most recently undone command. It returns false when
// the redo stack is empty.
func (m *Manager) Redo() bool {
	if len(m.future) == 0 {
		return false
	}
	cmd := m.future[len(m.future)-1]
	m.future = m.future[:len(m.future)-1]
	cmd.Execute(m.scene)
	m.history = append(m.history, cmd)
	logging.Logger().Info("redo", "cmd", cmd.Label())
	m.OnChange.Invoke()
	return true
}

func (m *Manager) CanUndo() bool { return len(m.history) > 0 }
func (m *Manager) CanRedo() bool { return len(m.future) > 0 }

// Depth returns the sizes of the undo and redo stacks.
func (m *Manager) Depth() (undo, redo int) {
	return len(m.history), len(m.future)
}

// Limit returns the configured cap on the undo stack.
func (m *Manager) Limit() int { return m.limit }

// Clear empties both stacks, for example after loading a scene.
func (m *Manager) Clear() {
	m.history = nil
	m.future = nil
	m.OnChange.Invoke()
}

// UndoLabel describes the command Undo would revert, or "".
func (m *Manager) UndoLabel() string {
	if len(m.history) == 0 {
		return ""
	}
	return m.history[len(m.history)-1].Label()
}
