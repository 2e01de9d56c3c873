package forces

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// NodeID is the engine's identity for a mesh node. It must be stable for the
// duration of one force computation.
type NodeID int

// SurfaceElement is a read-only view of one boundary condition. Normal is used
// exactly as stored, it is not normalized.
type SurfaceElement struct {
	Normal              r3.Vec
	PressureCoefficient float64
	Nodes               []NodeID
}

type FreeStreamState struct {
	Velocity r3.Vec
	Density  float64
}

// Result holds the nodal reaction forces and their sum. Total is laid out in
// the aerodynamic frame: X is drag, Y is lift and Z is side force.
type Result struct {
	NodeForces      map[NodeID]r3.Vec
	Nodes           []NodeID // ascending
	Total           r3.Vec
	DynamicPressure float64
}

func (r *Result) Drag() float64 { return r.Total.X }
func (r *Result) Lift() float64 { return r.Total.Y }
func (r *Result) Side() float64 { return r.Total.Z }
