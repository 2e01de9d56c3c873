package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/surfaceforce/forces"
	"github.com/notargets/surfaceforce/types"
)

type Variable string

const (
	REACTION Variable = "REACTION"
	NORMAL   Variable = "NORMAL" // Sum of the normals of the conditions on a node
)

// DefaultDensity is used when the process info carries no free stream
// density (sea level air, kg/m^3).
const DefaultDensity = 1.225

type Node struct {
	ID     forces.NodeID
	Coords r3.Vec
	values map[Variable]r3.Vec // Non historical nodal vectors
}

func (n *Node) GetValue(v Variable) r3.Vec { return n.values[v] }

func (n *Node) SetValue(v Variable, val r3.Vec) {
	if n.values == nil {
		n.values = make(map[Variable]r3.Vec)
	}
	n.values[v] = val
}

// Condition is a boundary face of a model part. Pressure holds the pressure
// coefficient, Normal the area weighted normal.
type Condition struct {
	ID       int
	Nodes    []forces.NodeID
	Normal   r3.Vec
	Pressure float64
}

type ProcessInfo struct {
	VelocityInfinity r3.Vec
	Density          *float64 // DefaultDensity when nil
}

/*
Model owns the nodes shared by all of its model parts and the process wide
state. It stands in for the simulation engine: the force process only sees it
through forces.ElementSource and forces.ReactionSink.

A Model is not safe for concurrent mutation.
*/
type Model struct {
	Nodes       map[forces.NodeID]*Node
	ProcessInfo ProcessInfo
	parts       map[string]*ModelPart
	partOrder   []string
	nextCondID  int
}

type ModelPart struct {
	Name       string
	BC         types.BCFLAG
	Conditions []*Condition
	model      *Model
	nodeSet    map[forces.NodeID]bool
}

func NewModel() (m *Model) {
	m = &Model{
		Nodes: make(map[forces.NodeID]*Node),
		parts: make(map[string]*ModelPart),
	}
	return
}

func (m *Model) AddNode(id forces.NodeID, coords r3.Vec) (n *Node, err error) {
	if _, exists := m.Nodes[id]; exists {
		return nil, fmt.Errorf("duplicate node %d", id)
	}
	n = &Node{ID: id, Coords: coords}
	m.Nodes[id] = n
	return
}

func (m *Model) CreateModelPart(name string) (mp *ModelPart, err error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("model part name is empty")
	}
	if _, exists := m.parts[name]; exists {
		return nil, fmt.Errorf("duplicate model part [%s]", name)
	}
	mp = &ModelPart{
		Name:    name,
		BC:      types.NewBCFLAG(name),
		model:   m,
		nodeSet: make(map[forces.NodeID]bool),
	}
	m.parts[name] = mp
	m.partOrder = append(m.partOrder, name)
	return
}

func (m *Model) GetModelPart(name string) (mp *ModelPart, err error) {
	var ok bool
	if mp, ok = m.parts[name]; !ok {
		return nil, fmt.Errorf("no model part named [%s], have %v", name, m.ModelPartNames())
	}
	return
}

// ModelPartNames returns the part names in creation order.
func (m *Model) ModelPartNames() (names []string) {
	names = make([]string, len(m.partOrder))
	copy(names, m.partOrder)
	return
}

func (m *Model) Density() float64 {
	if m.ProcessInfo.Density == nil {
		return DefaultDensity
	}
	return *m.ProcessInfo.Density
}

// AddCondition creates a condition on existing model nodes and adds those
// nodes to the part.
func (mp *ModelPart) AddCondition(nodes ...forces.NodeID) (c *Condition, err error) {
	if len(nodes) == 0 {
		return nil, fmt.Errorf("condition on model part [%s] has no nodes", mp.Name)
	}
	for _, id := range nodes {
		if _, ok := mp.model.Nodes[id]; !ok {
			return nil, fmt.Errorf("condition on model part [%s] references unknown node %d", mp.Name, id)
		}
	}
	c = &Condition{
		ID:    mp.model.nextCondID,
		Nodes: append([]forces.NodeID(nil), nodes...),
	}
	mp.model.nextCondID++
	for _, id := range nodes {
		mp.nodeSet[id] = true
	}
	mp.Conditions = append(mp.Conditions, c)
	return
}

// NodeIDs returns the part's nodes in ascending order.
func (mp *ModelPart) NodeIDs() (ids []forces.NodeID) {
	ids = make([]forces.NodeID, 0, len(mp.nodeSet))
	for id := range mp.nodeSet {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return
}

func (mp *ModelPart) HasNode(id forces.NodeID) bool { return mp.nodeSet[id] }

func (mp *ModelPart) SetUniformPressureCoefficient(cp float64) {
	for _, c := range mp.Conditions {
		c.Pressure = cp
	}
}

// SetPressureCoefficients assigns one coefficient per condition in condition
// order.
func (mp *ModelPart) SetPressureCoefficients(cp []float64) error {
	if len(cp) != len(mp.Conditions) {
		return fmt.Errorf("model part [%s] has %d conditions, have %d pressure coefficients",
			mp.Name, len(mp.Conditions), len(cp))
	}
	if floats.HasNaN(cp) {
		return fmt.Errorf("model part [%s]: pressure coefficients contain NaN", mp.Name)
	}
	for i, c := range mp.Conditions {
		c.Pressure = cp[i]
	}
	return nil
}

// SumNodeVector sums a nodal vector over the part in ascending node order.
func (mp *ModelPart) SumNodeVector(v Variable) (sum r3.Vec) {
	for _, id := range mp.NodeIDs() {
		sum = r3.Add(sum, mp.model.Nodes[id].GetValue(v))
	}
	return
}

/*
SetStaticPressures converts one static pressure per condition into pressure
coefficients using the free stream static pressure pInf and dynamic pressure
qInf.
*/
func (mp *ModelPart) SetStaticPressures(p []float64, pInf, qInf float64) error {
	if qInf == 0 {
		return fmt.Errorf("model part [%s]: %w: static pressures with zero dynamic pressure",
			mp.Name, forces.ErrDivisionByZero)
	}
	cp := make([]float64, len(p))
	for i := range p {
		cp[i] = PressureCoefficient(p[i], pInf, qInf)
	}
	return mp.SetPressureCoefficients(cp)
}

// PressureCoefficient converts a static pressure into a pressure coefficient
// given the free stream static and dynamic pressures.
func PressureCoefficient(p, pInf, qInf float64) float64 {
	return (p - pInf) / qInf
}
