// Package history implements the edit command log.
//
// Artwork content is defined only by the ordered list of commands in a Log.
// Rasters are derived from it by replaying the commands after the last
// ClearMarker, so undo is a truncation of the log followed by a rebuild and
// no command ever needs an inverse.
package history

import (
	"fmt"
	"image/color"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/papercut/internal/geom"
)

// Kind identifies the variant of a Command.
type Kind uint8

const (
	KindCut   Kind = iota // Closed polygon punched out of the paper
	KindInk               // Freehand draft stroke
	KindErase             // Freehand stroke in the paper color
	KindClear             // Replay boundary, no geometry
)

// kindNames maps Kind values to their text form.
var kindNames = [...]string{
	KindCut:   "cut",
	KindInk:   "ink",
	KindErase: "erase",
	KindClear: "clear",
}

// String returns the text form of k.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("history: invalid kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	i := slices.Index(kindNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("history: unknown kind %q", b)
	}
	*k = Kind(i)
	return nil
}

// Tool identifies the editing tool a command was made with.
type Tool uint8

const (
	ToolCut       Tool = iota // Freehand scissors
	ToolBezierCut             // Spline through placed control points
	ToolInk                   // Draft pen
	ToolErase                 // Draft eraser
)

var toolNames = [...]string{
	ToolCut:       "cut",
	ToolBezierCut: "bezier",
	ToolInk:       "ink",
	ToolErase:     "erase",
}

// String returns the text form of t.
func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "unknown"
}

// Valid reports whether t is a known tool.
func (t Tool) Valid() bool { return int(t) < len(toolNames) }

// MarshalText implements encoding.TextMarshaler.
func (t Tool) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("history: invalid tool %d", t)
	}
	return []byte(toolNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tool) UnmarshalText(b []byte) error {
	i := slices.Index(toolNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("history: unknown tool %q", b)
	}
	*t = Tool(i)
	return nil
}

// Command is one recorded edit. Points are in model space. A Command is never
// modified after it is created; the Log hands out copies of its slices.
type Command struct {
	ID        string
	Kind      Kind
	Tool      Tool
	Points    []geom.ModelPoint
	Color     color.NRGBA // paint color of an erase stroke
	Timestamp int64       // Unix milliseconds, strictly increasing per Factory
}

// Drawable reports whether c has enough geometry to produce a visible shape.
// ClearMarker is always drawable.
func (c Command) Drawable() bool {
	if c.Kind == KindClear {
		return true
	}
	return len(c.Points) >= 2
}

// Clone returns a deep copy of c.
func (c Command) Clone() Command {
	c.Points = slices.Clone(c.Points)
	return c
}

// Factory stamps new commands with an identifier and a timestamp.
type Factory struct {
	now   func() time.Time
	newID func() string
	last  int64
}

// NewFactory returns a Factory. A nil now uses time.Now and a nil newID uses
// random UUIDs.
func NewFactory(now func() time.Time, newID func() string) *Factory {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Factory{now: now, newID: newID}
}

// Observe makes later timestamps exceed ts. It is used when commands from
// outside (an imported history) join the log.
func (f *Factory) Observe(ts int64) {
	if ts > f.last {
		f.last = ts
	}
}

// NewID returns a fresh command identifier.
func (f *Factory) NewID() string { return f.newID() }

func (f *Factory) stamp() int64 {
	ts := f.now().UnixMilli()
	if ts <= f.last {
		ts = f.last + 1
	}
	f.last = ts
	return ts
}

func (f *Factory) make(kind Kind, tool Tool, points []geom.ModelPoint, c color.NRGBA) Command {
	return Command{
		ID:        f.newID(),
		Kind:      kind,
		Tool:      tool,
		Points:    slices.Clone(points),
		Color:     c,
		Timestamp: f.stamp(),
	}
}

// Cut returns a cut command for a closed polygon.
func (f *Factory) Cut(tool Tool, points []geom.ModelPoint) Command {
	return f.make(KindCut, tool, points, color.NRGBA{})
}

// Ink returns a draft stroke.
func (f *Factory) Ink(points []geom.ModelPoint) Command {
	return f.make(KindInk, ToolInk, points, color.NRGBA{})
}

// Erase returns an erase stroke painted in c.
func (f *Factory) Erase(points []geom.ModelPoint, c color.NRGBA) Command {
	return f.make(KindErase, ToolErase, points, c)
}

// Clear returns a ClearMarker.
func (f *Factory) Clear(tool Tool) Command {
	return f.make(KindClear, tool, nil, color.NRGBA{})
}
