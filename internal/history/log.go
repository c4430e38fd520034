package history

import "slices"

// Log is the ordered command history plus its redo stack.
//
// Every mutation bumps Version, so a consumer that remembers the version it
// last rendered knows exactly when a rebuild is due.
type Log struct {
	history []Command
	redo    []Command // most recently undone first
	version uint64
}

// Version returns the mutation counter.
func (l *Log) Version() uint64 { return l.version }

// Len returns the number of applied commands.
func (l *Log) Len() int { return len(l.history) }

// RedoLen returns the number of commands available for Redo.
func (l *Log) RedoLen() int { return len(l.redo) }

// Append adds c to the history and discards the redo stack.
func (l *Log) Append(c Command) {
	l.history = append(l.history, c)
	l.redo = nil
	l.version++
}

// Undo moves the newest command to the front of the redo stack.
// It reports false when there is nothing to undo.
func (l *Log) Undo() bool {
	n := len(l.history)
	if n == 0 {
		return false
	}
	last := l.history[n-1]
	l.history = l.history[:n-1]
	l.redo = slices.Insert(l.redo, 0, last)
	l.version++
	return true
}

// Redo re-appends the most recently undone command. The rest of the redo
// stack is kept. It reports false when the redo stack is empty.
func (l *Log) Redo() bool {
	if len(l.redo) == 0 {
		return false
	}
	next := l.redo[0]
	l.redo = slices.Delete(l.redo, 0, 1)
	l.history = append(l.history, next)
	l.version++
	return true
}

// Replace swaps in a whole new history and clears the redo stack.
func (l *Log) Replace(cmds []Command) {
	l.history = slices.Clone(cmds)
	l.redo = nil
	l.version++
}

// History returns a copy of the applied commands, oldest first.
func (l *Log) History() []Command { return slices.Clone(l.history) }

// RedoStack returns a copy of the redo stack, most recently undone first.
func (l *Log) RedoStack() []Command { return slices.Clone(l.redo) }

// ReplayStart returns the index just past the last ClearMarker, or 0.
func (l *Log) ReplayStart() int {
	for i := len(l.history) - 1; i >= 0; i-- {
		if l.history[i].Kind == KindClear {
			return i + 1
		}
	}
	return 0
}

// Replay returns the commands that define the current artwork: everything
// after the last ClearMarker, in order. The result must not be modified.
func (l *Log) Replay() []Command {
	return l.history[l.ReplayStart():]
}
