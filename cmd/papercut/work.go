package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/papercut"
	"github.com/gogpu/papercut/cmd/papercut/internal/config"
)

// Work is a saved design: paper settings plus the command history.
type Work struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	PaperType  string   `json:"paperType"`
	PaperColor string   `json:"paperColor"`
	FoldMode   *int     `json:"foldMode,omitempty"` // nil keeps the configured fold
	Date       int64    `json:"date"`               // unix milliseconds
	Actions    []Action `json:"actions"`
}

// Action is one saved command. Save writes the text form of papercut.Record.
// Loading also accepts the numeric form {type, tool} of mobile saves, where
// type is 0 for a cut and 1 for a stroke and tool counts scissors, bezier,
// pen and eraser from 0.
type Action papercut.Record

// Numeric action types.
const (
	actionCut    = 0
	actionStroke = 1
)

var errActionType = errors.New("unknown action type")

// UnmarshalJSON implements json.Unmarshaler.
func (a *Action) UnmarshalJSON(b []byte) error {
	var numeric struct {
		ID        string           `json:"id"`
		Type      *int             `json:"type"`
		Tool      int              `json:"tool"`
		Points    []papercut.Point `json:"points"`
		Timestamp int64            `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &numeric); err != nil || numeric.Type == nil {
		// Text form: "tool" is a string, or there is no "type" field.
		return json.Unmarshal(b, (*papercut.Record)(a))
	}

	tool := papercut.ToolMode(numeric.Tool)
	if numeric.Tool < 0 || !tool.Valid() {
		return fmt.Errorf("action %s: tool %d: %w", numeric.ID, numeric.Tool, papercut.ErrInvalidRecord)
	}
	var kind papercut.CommandKind
	switch *numeric.Type {
	case actionCut:
		kind = papercut.KindCut
	case actionStroke:
		kind = papercut.KindInk
		if tool == papercut.ToolErase {
			kind = papercut.KindErase
		}
	default:
		return fmt.Errorf("action %s: type %d: %w", numeric.ID, *numeric.Type, errActionType)
	}
	*a = Action{
		ID:        numeric.ID,
		Kind:      kind,
		Tool:      tool,
		Points:    numeric.Points,
		Timestamp: numeric.Timestamp,
	}
	return nil
}

// LoadWork reads a Work from a JSON file.
func LoadWork(path string) (*Work, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var w Work
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &w, nil
}

// Options returns the session options the work was saved with. Absent
// fields add no option.
func (w *Work) Options() ([]papercut.SessionOption, error) {
	var opts []papercut.SessionOption
	if w.FoldMode != nil {
		opts = append(opts, papercut.WithFoldMode(*w.FoldMode))
	}
	if w.PaperType != "" {
		var shape papercut.PaperShape
		if err := shape.UnmarshalText([]byte(w.PaperType)); err != nil {
			return nil, fmt.Errorf("paperType: %w", err)
		}
		opts = append(opts, papercut.WithPaperShape(shape))
	}
	if w.PaperColor != "" {
		c, err := config.ParseColor(w.PaperColor)
		if err != nil {
			return nil, fmt.Errorf("paperColor: %w", err)
		}
		opts = append(opts, papercut.WithPaperColor(c))
	}
	return opts, nil
}

// Records returns the actions for Session.SetCommands. Erase strokes saved
// without a color are painted in paper.
func (w *Work) Records(paper color.NRGBA) []papercut.Record {
	out := make([]papercut.Record, len(w.Actions))
	for i, a := range w.Actions {
		r := papercut.Record(a)
		if r.Kind == papercut.KindErase && r.Color == 0 {
			r.Color = uint32(paper.A)<<24 | uint32(paper.R)<<16 | uint32(paper.G)<<8 | uint32(paper.B)
		}
		out[i] = r
	}
	return out
}

// Snapshot captures the session state as a Work. The identity and title of
// prev are kept when it is non-nil.
func Snapshot(s *papercut.Session, prev *Work) *Work {
	w := &Work{
		ID:    uuid.NewString(),
		Title: "Untitled",
	}
	if prev != nil {
		w.ID, w.Title = prev.ID, prev.Title
	}
	shape, _ := s.PaperShape().MarshalText()
	w.PaperType = string(shape)
	w.PaperColor = config.FormatColor(s.PaperColor())
	fold := s.FoldMode()
	w.FoldMode = &fold
	w.Date = time.Now().UnixMilli()
	for _, r := range s.GetCommands() {
		w.Actions = append(w.Actions, Action(r))
	}
	return w
}

// Save writes w as indented JSON.
func (w *Work) Save(path string) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode work: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
