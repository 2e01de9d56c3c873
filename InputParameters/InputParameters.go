package InputParameters

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/surfaceforce/forces"
)

type FreeStreamParameters struct {
	Velocity []float64 `yaml:"Velocity"` // 2 or 3 components, wins over Speed and Alpha
	Speed    float64   `yaml:"Speed"`
	Alpha    float64   `yaml:"Alpha"` // Degrees
	Density  *float64  `yaml:"Density"`  // Unset uses sea level density
	Pressure float64   `yaml:"Pressure"` // Static pressure, used with StaticPressures
}

// Parameters obtained from the YAML input file
type ForceParameters struct {
	Title               string               `yaml:"Title"`
	ModelPartName       string               `yaml:"ModelPartName"`
	CreateOutputFile    bool                 `yaml:"CreateOutputFile"`
	OutputFile          string               `yaml:"OutputFile"`
	OutputVariables     []string             `yaml:"OutputVariables"`
	FreeStream          FreeStreamParameters `yaml:"FreeStream"`
	PressureCoefficient float64              `yaml:"PressureCoefficient"`
	PressureFile        string               `yaml:"PressureFile"`
	StaticPressures     bool                 `yaml:"StaticPressures"` // PressureFile holds static pressures, not coefficients
	ParallelDegree      int                  `yaml:"ParallelDegree"`
}

func (ip *ForceParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

// FreeStreamVelocity returns the explicit velocity vector when given,
// otherwise Speed rotated by the angle of attack in the X-Y plane.
func (ip *ForceParameters) FreeStreamVelocity() (v r3.Vec) {
	fs := ip.FreeStream
	if len(fs.Velocity) != 0 {
		var x [3]float64
		copy(x[:], fs.Velocity)
		return r3.Vec{X: x[0], Y: x[1], Z: x[2]}
	}
	return r3.Vec{
		X: fs.Speed * math.Cos(fs.Alpha*math.Pi/180.),
		Y: fs.Speed * math.Sin(fs.Alpha*math.Pi/180.),
	}
}

func (ip *ForceParameters) ProcessSettings() forces.ProcessSettings {
	return forces.ProcessSettings{
		ModelPartName:    ip.ModelPartName,
		CreateOutputFile: ip.CreateOutputFile,
		OutputFile:       ip.OutputFile,
		OutputVariables:  ip.OutputVariables,
	}
}

func (ip *ForceParameters) Validate() error {
	fs := ip.FreeStream
	switch {
	case len(fs.Velocity) != 0 && len(fs.Velocity) != 2 && len(fs.Velocity) != 3:
		return fmt.Errorf("%w: FreeStream.Velocity needs 2 or 3 components, have %d",
			forces.ErrInvalidInput, len(fs.Velocity))
	case fs.Density != nil && *fs.Density < 0:
		return fmt.Errorf("%w: FreeStream.Density is negative", forces.ErrInvalidInput)
	case fs.Speed < 0:
		return fmt.Errorf("%w: FreeStream.Speed is negative", forces.ErrInvalidInput)
	case ip.ParallelDegree < 0:
		return fmt.Errorf("%w: ParallelDegree is negative", forces.ErrInvalidInput)
	}
	return nil
}

func (ip *ForceParameters) Print(w io.Writer) {
	v := ip.FreeStreamVelocity()
	fmt.Fprintf(w, "\"%s\"\t\t= Title\n", ip.Title)
	fmt.Fprintf(w, "[%s]\t\t= Model Part\n", ip.ModelPartName)
	fmt.Fprintf(w, "[%8.5f, %8.5f, %8.5f]\t= Free Stream Velocity\n", v.X, v.Y, v.Z)
	if fs := ip.FreeStream; fs.Density != nil {
		fmt.Fprintf(w, "%8.5f\t\t= Free Stream Density\n", *fs.Density)
	} else {
		fmt.Fprintf(w, "sea level\t\t= Free Stream Density\n")
	}
	fmt.Fprintf(w, "%v\t\t\t= Create Output File\n", ip.CreateOutputFile)
	if len(ip.PressureFile) != 0 {
		fmt.Fprintf(w, "[%s]\t= Pressure File\n", ip.PressureFile)
		if ip.StaticPressures {
			fmt.Fprintf(w, "%8.5f\t\t= Free Stream Static Pressure\n", ip.FreeStream.Pressure)
		}
	} else {
		fmt.Fprintf(w, "%8.5f\t\t= Pressure Coefficient\n", ip.PressureCoefficient)
	}
	vars := append([]string(nil), ip.OutputVariables...)
	sort.Strings(vars)
	for _, name := range vars {
		fmt.Fprintf(w, "Output[%s]\n", name)
	}
}
