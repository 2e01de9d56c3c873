package model

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/surfaceforce/forces"
)

var _ forces.Engine = (*Model)(nil)

// SurfaceElements returns a copy of the part's conditions.
func (m *Model) SurfaceElements(name string) (els []forces.SurfaceElement, err error) {
	var (
		mp *ModelPart
	)
	if mp, err = m.GetModelPart(name); err != nil {
		return nil, err
	}
	els = make([]forces.SurfaceElement, len(mp.Conditions))
	for i, c := range mp.Conditions {
		els[i] = forces.SurfaceElement{
			Normal:              c.Normal,
			PressureCoefficient: c.Pressure,
			Nodes:               append([]forces.NodeID(nil), c.Nodes...),
		}
	}
	return
}

func (m *Model) FreeStream(name string) (fs forces.FreeStreamState, err error) {
	if _, err = m.GetModelPart(name); err != nil {
		return
	}
	fs = forces.FreeStreamState{
		Velocity: m.ProcessInfo.VelocityInfinity,
		Density:  m.Density(),
	}
	return
}

func (m *Model) ZeroReactions(name string) (err error) {
	var (
		mp *ModelPart
	)
	if mp, err = m.GetModelPart(name); err != nil {
		return
	}
	for id := range mp.nodeSet {
		m.Nodes[id].SetValue(REACTION, r3.Vec{})
	}
	return
}

// WriteReactions overwrites REACTION on the given nodes. Every node must
// belong to the part; nothing is written otherwise.
func (m *Model) WriteReactions(name string, reactions map[forces.NodeID]r3.Vec) (err error) {
	var (
		mp *ModelPart
	)
	if mp, err = m.GetModelPart(name); err != nil {
		return
	}
	for id := range reactions {
		if !mp.HasNode(id) {
			return fmt.Errorf("node %d is not part of model part [%s]", id, name)
		}
	}
	for id, f := range reactions {
		m.Nodes[id].SetValue(REACTION, f)
	}
	return
}
