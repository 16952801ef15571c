// Package colordiff colors unified-diff text for a terminal.
//
// Lines are classified by their first characters (Classify), colored from a palette.Palette, and written through a Writer. A removed line immediately followed by an
// added line is rendered as a pair with the unchanged spans inside them highlighted (Highlighter). A StyleAnalyzer can observe the same stream and count style problems
// in the added lines.
//
// Nothing in this package opens files or decides whether a terminal supports color; callers supply the io.Writer and say whether to color.
package colordiff
