package forces

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// ElementSource supplies a snapshot of a model part's surface elements and
// the free stream state. Returned slices are owned by the caller.
type ElementSource interface {
	SurfaceElements(modelPart string) ([]SurfaceElement, error)
	FreeStream(modelPart string) (FreeStreamState, error)
}

// ReactionSink stores nodal reaction forces back into the engine.
type ReactionSink interface {
	ZeroReactions(modelPart string) error
	WriteReactions(modelPart string, reactions map[NodeID]r3.Vec) error
}

type Engine interface {
	ElementSource
	ReactionSink
}

var knownOutputVariables = map[string]bool{
	"REACTION": true,
	"NORMAL":   true,
	"PRESSURE": true,
}

type ProcessSettings struct {
	ModelPartName    string
	CreateOutputFile bool
	OutputFile       string   // DefaultLiftCoefficientFile if empty
	OutputVariables  []string // validated, otherwise unused
}

// ComputeForcesOnNodesProcess computes the nodal reactions of one body model
// part each time Execute is called.
type ComputeForcesOnNodesProcess struct {
	engine     Engine
	settings   ProcessSettings
	obs        Observer
	integrator *Integrator
	acc        *NodeForceAccumulator
}

func NewComputeForcesOnNodesProcess(engine Engine, settings ProcessSettings,
	obs Observer) (p *ComputeForcesOnNodesProcess, err error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: nil engine", ErrInvalidInput)
	}
	if len(settings.ModelPartName) == 0 {
		return nil, fmt.Errorf("%w: model part name is empty", ErrInvalidInput)
	}
	for _, v := range settings.OutputVariables {
		if !knownOutputVariables[v] {
			return nil, fmt.Errorf("%w: unknown output variable [%s]", ErrInvalidInput, v)
		}
	}
	if len(settings.OutputFile) == 0 {
		settings.OutputFile = DefaultLiftCoefficientFile
	}
	if obs == nil {
		obs = NopObserver{}
	}
	p = &ComputeForcesOnNodesProcess{
		engine:     engine,
		settings:   settings,
		obs:        obs,
		integrator: NewIntegrator(obs),
		acc:        NewNodeForceAccumulator(),
	}
	return
}

func (p *ComputeForcesOnNodesProcess) Settings() ProcessSettings { return p.settings }

/*
Execute zeroes the reactions of the model part, integrates the surface
pressure and overwrites the reactions with the fresh nodal sums. When
CreateOutputFile is set the lift coefficient is written last; a failure there
is returned after the reactions have already been stored.
*/
func (p *ComputeForcesOnNodesProcess) Execute() (res *Result, err error) {
	var (
		name     = p.settings.ModelPartName
		elements []SurfaceElement
		fs       FreeStreamState
		cl       float64
	)
	p.acc.Reset()
	if err = p.engine.ZeroReactions(name); err != nil {
		return nil, err
	}
	if elements, err = p.engine.SurfaceElements(name); err != nil {
		return nil, err
	}
	if fs, err = p.engine.FreeStream(name); err != nil {
		return nil, err
	}
	if res, err = p.integrator.Accumulate(p.acc, elements, fs); err != nil {
		return nil, err
	}
	if p.settings.CreateOutputFile {
		if cl, err = ComputeLiftCoefficient(res.Total, res.DynamicPressure); err != nil {
			return nil, err
		}
	}
	if err = p.engine.WriteReactions(name, res.NodeForces); err != nil {
		return nil, err
	}
	if p.settings.CreateOutputFile {
		if err = WriteLiftCoefficientFile(p.settings.OutputFile, cl); err != nil {
			return nil, err
		}
		p.obs.LiftCoefficientWritten(p.settings.OutputFile, cl)
	}
	return
}
