package papercut

import (
	"fmt"

	"github.com/gogpu/papercut/internal/history"
)

// Record is the interchange form of one command. Kind and Tool marshal as
// text ("cut", "ink", "erase", "clear"; "cut", "bezier", "ink", "erase").
type Record struct {
	ID        string      `json:"id"`
	Kind      CommandKind `json:"kind"`
	Tool      ToolMode    `json:"tool"`
	Points    []Point     `json:"points"`
	Timestamp int64       `json:"timestamp"`

	// Color is the 0xAARRGGBB paint color of an erase stroke.
	Color uint32 `json:"color,omitempty"`
}

// GetCommands returns the applied commands, oldest first. The redo stack is
// not included.
func (s *Session) GetCommands() []Record {
	cmds := s.log.History()
	out := make([]Record, len(cmds))
	for i, c := range cmds {
		out[i] = Record{
			ID:        c.ID,
			Kind:      c.Kind,
			Tool:      c.Tool,
			Points:    toPoints(c.Points),
			Timestamp: c.Timestamp,
		}
		if c.Kind == KindErase {
			out[i].Color = toARGB(c.Color)
		}
	}
	return out
}

// GetActions is an alias of GetCommands.
func (s *Session) GetActions() []Record { return s.GetCommands() }

// SetCommands replaces the whole log with records, clears the redo stack
// and rebuilds the data layer. A record with an unknown kind or tool fails
// the call and leaves the session untouched. Records without an ID get a
// fresh one.
func (s *Session) SetCommands(records []Record) error {
	cmds := make([]history.Command, len(records))
	for i, r := range records {
		if r.Kind > KindClear || !r.Tool.Valid() {
			return fmt.Errorf("%w: record %d has kind %d, tool %d", ErrInvalidRecord, i, r.Kind, r.Tool)
		}
		c := history.Command{
			ID:        r.ID,
			Kind:      r.Kind,
			Tool:      r.Tool,
			Points:    fromPoints(r.Points),
			Timestamp: r.Timestamp,
		}
		if r.Kind == KindErase {
			c.Color = ARGB(r.Color)
		}
		cmds[i] = c
	}

	for i := range cmds {
		if cmds[i].ID == "" {
			cmds[i].ID = s.factory.NewID()
		}
		s.factory.Observe(cmds[i].Timestamp)
	}

	s.CancelDrawing()
	s.CancelBezier()
	s.log.Replace(cmds)
	Logger().Info("papercut: commands loaded", "count", len(cmds))
	s.syncData()
	return nil
}
