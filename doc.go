// Package papercut is the drawing and compositing engine of a folded-paper
// cutting editor.
//
// # Overview
//
// The user edits one wedge of a sheet folded N times. Scissor cuts, draft
// ink and erase strokes are recorded as commands in model space, and the
// engine rebuilds the sheet from that command log. A separate preview shows
// the unfolded result: every cut repeated around the circle, alternating
// plain and mirrored copies.
//
// # Quick Start
//
//	s := papercut.NewSession(papercut.WithFoldMode(4))
//	if err := s.Initialize(1080, 1920); err != nil {
//		log.Fatal(err)
//	}
//
//	// Pointer input, in edit canvas pixels.
//	s.StartDrawing(540, 1200)
//	s.AddPoint(600, 1100)
//	s.AddPoint(520, 1050)
//	s.FinishDrawing()
//
//	edit := s.RenderEditCanvas()       // *image.RGBA, 1080x1920
//	preview := s.RenderPreviewCanvas() // the unfolded sheet
//
// # Layers
//
// A Session owns three rasters:
//   - Data layer: the paper plus every command since the last clear, rebuilt
//     by replaying the log whenever the log version moves.
//   - Interactive layer: the gesture in progress, redrawn per frame and
//     emptied when the gesture ends.
//   - Output canvases: composed fresh on every render call and handed to the
//     caller, who owns them.
//
// # History
//
// Undo moves the newest command to the redo stack and replays the rest.
// Clear appends a marker instead of deleting anything, so it can be undone
// like any other edit. GetCommands and SetCommands exchange the whole log as
// plain records for persistence.
//
// # Concurrency
//
// A Session is not safe for concurrent use. Every call runs to completion on
// the caller's goroutine; hosts with separate input and render goroutines
// must serialise access.
package papercut
