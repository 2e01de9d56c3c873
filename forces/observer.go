package forces

import (
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Observer receives the diagnostics of a force computation. The numeric code
// never logs or prints on its own.
type Observer interface {
	ElementContribution(index int, el SurfaceElement, contribution r3.Vec)
	ForcesComputed(res *Result)
	LiftCoefficientWritten(path string, cl float64)
}

type NopObserver struct{}

func (NopObserver) ElementContribution(int, SurfaceElement, r3.Vec) {}
func (NopObserver) ForcesComputed(*Result)                          {}
func (NopObserver) LiftCoefficientWritten(string, float64)          {}

// ZapObserver logs per element data at debug level and the force totals at
// info level.
type ZapObserver struct {
	Logger *zap.Logger
}

func NewZapObserver(logger *zap.Logger) *ZapObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapObserver{Logger: logger.Named("ComputeForcesOnNodesProcess")}
}

func (zo *ZapObserver) ElementContribution(index int, el SurfaceElement, contribution r3.Vec) {
	if ce := zo.Logger.Check(zap.DebugLevel, "element contribution"); ce != nil {
		ce.Write(
			zap.Int("element", index),
			zap.Float64("pressure_coefficient", el.PressureCoefficient),
			zap.Float64s("normal", []float64{el.Normal.X, el.Normal.Y, el.Normal.Z}),
			zap.Float64s("contribution", []float64{contribution.X, contribution.Y, contribution.Z}),
			zap.Int("nodes", len(el.Nodes)),
		)
	}
}

func (zo *ZapObserver) ForcesComputed(res *Result) {
	zo.Logger.Info("computed reactions on nodes",
		zap.Float64("lift", res.Lift()),
		zap.Float64("drag", res.Drag()),
		zap.Float64("side", res.Side()),
		zap.Float64("dynamic_pressure", res.DynamicPressure),
		zap.Int("nodes", len(res.Nodes)),
	)
}

func (zo *ZapObserver) LiftCoefficientWritten(path string, cl float64) {
	zo.Logger.Info("wrote lift coefficient", zap.String("path", path), zap.Float64("cl", cl))
}
