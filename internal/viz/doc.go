// Package viz draws the atom scene in the terminal.
//
//   - [Canvas]: Braille-based pixel canvas with per-cell glyph overlays
//   - [Projection]: maps model space, nucleus at the origin, onto canvas pixels
//   - [Theme]: particle and marker palettes, cycled with T in the TUI
package viz
