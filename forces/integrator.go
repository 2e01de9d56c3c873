package forces

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Integrator converts per element pressure coefficients into nodal and total
// aerodynamic forces. It holds no mutable state, so one Integrator may be
// shared by concurrent callers that each own their accumulator.
type Integrator struct {
	obs Observer
}

func NewIntegrator(obs Observer) (in *Integrator) {
	if obs == nil {
		obs = NopObserver{}
	}
	in = &Integrator{obs: obs}
	return
}

// ComputeForces runs the integration with a fresh accumulator and no
// diagnostics.
func ComputeForces(elements []SurfaceElement, fs FreeStreamState) (*Result, error) {
	return NewIntegrator(nil).ComputeForces(elements, fs)
}

func (in *Integrator) ComputeForces(elements []SurfaceElement, fs FreeStreamState) (*Result, error) {
	return in.Accumulate(NewNodeForceAccumulator(), elements, fs)
}

/*
Accumulate adds the contribution of every element to the nodes it touches and
sums the nodal forces into the total.

	contribution = normal * (Cp/2) * q,  q = 0.5 * rho * |V|^2

The accumulator must be empty on entry. Inputs are fully validated before the
accumulator is touched, so on error it is left as it was.
*/
func (in *Integrator) Accumulate(acc *NodeForceAccumulator, elements []SurfaceElement,
	fs FreeStreamState) (res *Result, err error) {
	if err = validate(elements, fs); err != nil {
		return nil, err
	}
	q := DynamicPressure(fs)
	for i, el := range elements {
		contribution := r3.Scale(q, r3.Scale(el.PressureCoefficient/2., el.Normal))
		in.obs.ElementContribution(i, el, contribution)
		for _, id := range el.Nodes {
			acc.Add(id, contribution)
		}
	}
	res = &Result{
		NodeForces:      acc.Forces(),
		Nodes:           acc.Nodes(),
		Total:           acc.Total(),
		DynamicPressure: q,
	}
	in.obs.ForcesComputed(res)
	return
}

// DynamicPressure is 0.5 * rho * |V|^2 using the Euclidean norm of V.
func DynamicPressure(fs FreeStreamState) float64 {
	speed := r3.Norm(fs.Velocity)
	return 0.5 * fs.Density * speed * speed
}

func validate(elements []SurfaceElement, fs FreeStreamState) error {
	if len(elements) == 0 {
		return fmt.Errorf("%w: no surface elements", ErrInvalidInput)
	}
	if !(fs.Density > 0) || math.IsInf(fs.Density, 0) {
		return fmt.Errorf("%w: free stream density must be positive and finite, have %v",
			ErrInvalidInput, fs.Density)
	}
	if !finite(fs.Velocity) {
		return fmt.Errorf("%w: free stream velocity is not finite: %v", ErrInvalidInput, fs.Velocity)
	}
	for i, el := range elements {
		switch {
		case len(el.Nodes) == 0:
			return fmt.Errorf("%w: surface element %d has no nodes", ErrInvalidInput, i)
		case !finite(el.Normal):
			return fmt.Errorf("%w: surface element %d has a non finite normal %v",
				ErrInvalidInput, i, el.Normal)
		case math.IsNaN(el.PressureCoefficient) || math.IsInf(el.PressureCoefficient, 0):
			return fmt.Errorf("%w: surface element %d has a non finite pressure coefficient",
				ErrInvalidInput, i)
		}
	}
	return nil
}

func finite(v r3.Vec) bool {
	for _, x := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
