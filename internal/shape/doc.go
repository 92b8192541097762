// Package shape describes the structure of struct and enum declarations
// independently of what a field holds. The same shapes carry types
// (shape.Data[ir.Type]) and values (shape.Data[ir.Value]); Map converts one
// into the other without changing the structure.
//
// Shapes are built once and treated as immutable afterwards.
package shape
