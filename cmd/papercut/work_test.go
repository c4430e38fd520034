package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gogpu/papercut"
)

func TestWorkRoundTrip(t *testing.T) {
	s := papercut.NewSession(papercut.WithCanvasSize(256), papercut.WithFoldMode(3),
		papercut.WithPaperShape(papercut.PaperSquare))
	if err := s.Initialize(256, 256); err != nil {
		t.Fatal(err)
	}
	cutDemo(s)
	if !s.CanUndo() {
		t.Fatal("cutDemo recorded nothing")
	}

	w := Snapshot(s, nil)
	if w.ID == "" || w.PaperType != "square" || w.FoldMode == nil || *w.FoldMode != 3 {
		t.Errorf("Snapshot = %+v", w)
	}

	path := filepath.Join(t.TempDir(), "work.json")
	if err := w.Save(path); err != nil {
		t.Fatalf("Save error = %v", err)
	}
	got, err := LoadWork(path)
	if err != nil {
		t.Fatalf("LoadWork error = %v", err)
	}
	if !reflect.DeepEqual(got, w) {
		t.Errorf("LoadWork = %+v, want %+v", got, w)
	}

	opts, err := got.Options()
	if err != nil {
		t.Fatalf("Options error = %v", err)
	}
	r := papercut.NewSession(append(opts, papercut.WithCanvasSize(256))...)
	if err := r.Initialize(256, 256); err != nil {
		t.Fatal(err)
	}
	if err := r.SetCommands(got.Records(r.PaperColor())); err != nil {
		t.Fatalf("SetCommands error = %v", err)
	}
	if r.FoldMode() != 3 || r.PaperShape() != papercut.PaperSquare || r.PaperColor() != s.PaperColor() {
		t.Errorf("replayed session settings differ")
	}
	a, b := s.RenderPreviewCanvas(), r.RenderPreviewCanvas()
	if !reflect.DeepEqual(a.Pix, b.Pix) {
		t.Error("replayed preview differs from original")
	}
}

func TestLoadWorkNumericActions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "work.json")
	data := []byte(`{
  "id": "w1",
  "title": "Plum",
  "paperColor": "#FF2050A0",
  "actions": [
    {"id": "a", "type": 0, "tool": 0, "points": [{"x": 1, "y": -40}, {"x": 20, "y": -40}, {"x": 10, "y": -20}], "timestamp": 10},
    {"id": "b", "type": 0, "tool": 1, "points": [{"x": 2, "y": -50}, {"x": 9, "y": -60}, {"x": 4, "y": -70}], "timestamp": 11},
    {"id": "c", "type": 1, "tool": 2, "points": [{"x": 3, "y": -30}, {"x": 5, "y": -60}], "timestamp": 12},
    {"id": "d", "type": 1, "tool": 3, "points": [{"x": 4, "y": -30}, {"x": 6, "y": -60}], "timestamp": 13}
  ]
}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	w, err := LoadWork(path)
	if err != nil {
		t.Fatalf("LoadWork error = %v", err)
	}
	if w.FoldMode != nil {
		t.Errorf("FoldMode = %v, want nil when absent", *w.FoldMode)
	}

	paper := papercut.ARGB(0xFF2050A0)
	recs := w.Records(paper)
	want := []struct {
		kind papercut.CommandKind
		tool papercut.ToolMode
	}{
		{papercut.KindCut, papercut.ToolCut},
		{papercut.KindCut, papercut.ToolBezierCut},
		{papercut.KindInk, papercut.ToolInk},
		{papercut.KindErase, papercut.ToolErase},
	}
	if len(recs) != len(want) {
		t.Fatalf("Records() has %d entries, want %d", len(recs), len(want))
	}
	for i, tt := range want {
		if recs[i].Kind != tt.kind || recs[i].Tool != tt.tool {
			t.Errorf("record %d = %v/%v, want %v/%v", i, recs[i].Kind, recs[i].Tool, tt.kind, tt.tool)
		}
	}
	if recs[3].Color != 0xFF2050A0 {
		t.Errorf("erase color = %#x, want the paper color", recs[3].Color)
	}
	if recs[0].Points[1] != (papercut.Point{X: 20, Y: -40}) || recs[2].Timestamp != 12 {
		t.Errorf("record contents lost: %+v", recs)
	}

	opts, err := w.Options()
	if err != nil {
		t.Fatalf("Options error = %v", err)
	}
	s := papercut.NewSession(append([]papercut.SessionOption{papercut.WithCanvasSize(256), papercut.WithFoldMode(6)}, opts...)...)
	if s.FoldMode() != 6 {
		t.Errorf("FoldMode() = %d, want the configured 6", s.FoldMode())
	}
	if err := s.Initialize(256, 256); err != nil {
		t.Fatal(err)
	}
	if err := s.SetCommands(recs); err != nil {
		t.Fatalf("SetCommands error = %v", err)
	}
}

func TestLoadWorkNumericInvalid(t *testing.T) {
	for _, body := range []string{
		`{"actions": [{"id": "x", "type": 7, "tool": 0}]}`,
		`{"actions": [{"id": "x", "type": 0, "tool": 9}]}`,
		`{"actions": [{"id": "x", "type": 1, "tool": -1}]}`,
	} {
		path := filepath.Join(t.TempDir(), "work.json")
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadWork(path); err == nil {
			t.Errorf("LoadWork(%s) succeeded, want error", body)
		}
	}
}

func TestWorkOptionsInvalid(t *testing.T) {
	for _, w := range []Work{{PaperType: "hexagon"}, {PaperColor: "#XYZ"}} {
		if _, err := w.Options(); err == nil {
			t.Errorf("Options(%+v) succeeded, want error", w)
		}
	}
}

func TestCutDemoRecordsCommands(t *testing.T) {
	s := papercut.NewSession(papercut.WithCanvasSize(256))
	if err := s.Initialize(300, 300); err != nil {
		t.Fatal(err)
	}
	cutDemo(s)
	kinds := map[papercut.CommandKind]int{}
	for _, r := range s.GetCommands() {
		kinds[r.Kind]++
	}
	if kinds[papercut.KindCut] != 3 || kinds[papercut.KindInk] != 1 {
		t.Errorf("cutDemo kinds = %v, want 3 cuts and 1 ink", kinds)
	}
}
