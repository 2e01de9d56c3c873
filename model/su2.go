package model

import (
	"github.com/notargets/surfaceforce/forces"
	"github.com/notargets/surfaceforce/readfiles"
)

// NewModelFromSU2 creates one node per mesh vertex, using the vertex index as
// node id, and one model part per marker with a condition per boundary
// element. Normals and pressures are left zero.
func NewModelFromSU2(mesh *readfiles.SU2Mesh) (m *Model, err error) {
	m = NewModel()
	for i, x := range mesh.Vertices {
		if _, err = m.AddNode(forces.NodeID(i), x); err != nil {
			return nil, err
		}
	}
	for _, mk := range mesh.Markers {
		var mp *ModelPart
		if mp, err = m.CreateModelPart(mk.Tag); err != nil {
			return nil, err
		}
		mp.BC = mk.BC
		for _, be := range mk.Elements {
			ids := make([]forces.NodeID, len(be.Vertices))
			for i, v := range be.Vertices {
				ids[i] = forces.NodeID(v)
			}
			if _, err = mp.AddCondition(ids...); err != nil {
				return nil, err
			}
		}
	}
	return
}
