// Package params provides the layered lens model submitted to the rendering service.
//
// A lens is a stack of concentric layers. Each physical layer carries a normalised outer radius, a
// dielectric constant and a magnetic permeability. The stack always ends with an air layer whose three
// values are fixed at 1; the air layer is never stored, it is appended whenever the layers are listed
// or serialised, so there is no way to change it.
//
// Parameters is a value type. Every mutation returns a new Parameters and leaves the receiver untouched.
//
// Numeric input is parsed leniently: text that cannot be parsed becomes 0 instead of an error.
// Degenerate values are left to the remote service to reject.
package params
