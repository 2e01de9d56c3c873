package forces

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

/*
NodeForceAccumulator holds the running nodal force sums of one force
computation. Contributions are summed, never averaged: a node shared by four
elements receives the sum of all four contributions.

An accumulator must be Reset before it is reused, otherwise the forces of the
previous computation are carried into the next one. It is not safe for
concurrent use.
*/
type NodeForceAccumulator struct {
	forces map[NodeID]r3.Vec
}

func NewNodeForceAccumulator() (acc *NodeForceAccumulator) {
	acc = &NodeForceAccumulator{
		forces: make(map[NodeID]r3.Vec),
	}
	return
}

func (acc *NodeForceAccumulator) Reset() {
	for id := range acc.forces {
		delete(acc.forces, id)
	}
}

func (acc *NodeForceAccumulator) Len() int { return len(acc.forces) }

func (acc *NodeForceAccumulator) Add(id NodeID, f r3.Vec) {
	acc.forces[id] = r3.Add(acc.forces[id], f)
}

func (acc *NodeForceAccumulator) At(id NodeID) (f r3.Vec, ok bool) {
	f, ok = acc.forces[id]
	return
}

// Nodes returns the accumulated node ids in ascending order, the order in
// which Total sums them.
func (acc *NodeForceAccumulator) Nodes() (ids []NodeID) {
	ids = make([]NodeID, 0, len(acc.forces))
	for id := range acc.forces {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return
}

func (acc *NodeForceAccumulator) Total() (total r3.Vec) {
	for _, id := range acc.Nodes() {
		total = r3.Add(total, acc.forces[id])
	}
	return
}

// Forces returns a copy of the nodal sums.
func (acc *NodeForceAccumulator) Forces() (f map[NodeID]r3.Vec) {
	f = make(map[NodeID]r3.Vec, len(acc.forces))
	for id, v := range acc.forces {
		f[id] = v
	}
	return
}
