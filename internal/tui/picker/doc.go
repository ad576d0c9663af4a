// Package picker provides a generic single-selection list for Bubble Tea
// models. It renders only the rows that fit the viewport, keeps the
// selection visible, and can wrap around at either end.
package picker
