// Package mosaic is a retained-mode terminal UI core: a tree of nodes that
// negotiate size, compute screen positions, render to a character grid,
// track focus, and route keyboard and mouse input.
//
// The package provides the node protocol and the four engines concrete
// widgets build on: constraint-based layout (Measure/Arrange), nested
// clip-region composition, focus-ring traversal, and an input router with
// gesture recognition and dirty-tracked re-rendering.
package mosaic
