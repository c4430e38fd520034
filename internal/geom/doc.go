// Package geom holds the coordinate spaces and fold geometry of the editor.
//
// Three spaces are kept apart by type:
//
//   - ScreenPoint: pixels on the edit canvas output surface.
//   - ModelPoint: logical canvas pixels relative to the paper centre. This is
//     the only space commands are recorded in.
//   - WedgePoint: a model position in polar form, its angle measured from the
//     start edge of the active wedge.
//
// A value only moves between spaces through View.ToModel, View.ToScreen or
// ModelPoint.Wedge, so a screen position can never be stored as model data by
// accident.
package geom
