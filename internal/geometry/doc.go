// Package geometry computes the point sets of the soccer-ball reactor sketch:
// magnet coil arcs on the shell, the plasma ring, and a bulged toroidal
// field-line cloud.
//
// Every function is a closed-form evaluation over [fusion.Linspace] samples
// and has no error path; degenerate sample counts give trivial output.
package geometry
