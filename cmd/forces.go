/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/notargets/surfaceforce/InputParameters"
	"github.com/notargets/surfaceforce/forces"
	"github.com/notargets/surfaceforce/model"
	"github.com/notargets/surfaceforce/readfiles"
)

type ForcesRun struct {
	GridFile     string
	ICFile       string
	PressureFile string // Overrides PressureFile in the input file
	ProfileDir   string
}

// ForcesCmd represents the forces command
var ForcesCmd = &cobra.Command{
	Use:   "forces",
	Short: "Compute nodal reactions, lift, drag and side force on a body surface",
	Long:  `Compute nodal reactions, lift, drag and side force on a body surface`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		fr := &ForcesRun{}
		if fr.GridFile, err = cmd.Flags().GetString("gridFile"); err != nil {
			return
		}
		if fr.ICFile, err = cmd.Flags().GetString("inputConditionsFile"); err != nil {
			return
		}
		if fr.PressureFile, err = cmd.Flags().GetString("pressureFile"); err != nil {
			return
		}
		if fr.ProfileDir, err = cmd.Flags().GetString("profile"); err != nil {
			return
		}
		if len(fr.ProfileDir) != 0 {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(fr.ProfileDir),
				profile.Quiet, profile.NoShutdownHook).Stop()
		}
		var ip *InputParameters.ForceParameters
		if ip, err = processInput(fr); err != nil {
			return
		}
		ip.Print(cmd.OutOrStdout())
		_, err = RunForces(context.Background(), cmd.OutOrStdout(), logger, fr, ip)
		return
	},
}

func init() {
	rootCmd.AddCommand(ForcesCmd)
	ForcesCmd.Flags().StringP("gridFile", "F", "", "Grid file to read in SU2 (.su2) format")
	ForcesCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML file for input parameters like:\n\t- FreeStream\n\t- ModelPartName")
	ForcesCmd.Flags().StringP("pressureFile", "P", "", "File with one pressure coefficient per body face")
	ForcesCmd.Flags().String("profile", "", "write a CPU profile into this directory")
}

func processInput(fr *ForcesRun) (ip *InputParameters.ForceParameters, err error) {
	var (
		data []byte
	)
	if len(fr.GridFile) == 0 {
		return nil, fmt.Errorf("must supply a grid file (-F, --gridFile) in .su2 format")
	}
	if len(fr.ICFile) == 0 {
		exampleFile := `
########################################
Title: "Test Case"
ModelPartName: airfoil # defaults to the first wall or body marker
CreateOutputFile: true
FreeStream:
  Velocity: [10, 0, 0] # or Speed and Alpha (degrees)
  Density: 1.225
PressureCoefficient: -2.0 # used when no pressure file is given
########################################
`
		return nil, fmt.Errorf("must supply an input parameters file (-I, --inputConditionsFile), example:%s",
			exampleFile)
	}
	if data, err = os.ReadFile(fr.ICFile); err != nil {
		return nil, err
	}
	ip = &InputParameters.ForceParameters{}
	if err = ip.Parse(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fr.ICFile, err)
	}
	if err = ip.Validate(); err != nil {
		return nil, err
	}
	return
}

/*
RunForces loads the mesh into a model, prepares the body surface (normals and
pressure coefficients) and executes the force process once, reporting the
totals to w.
*/
func RunForces(ctx context.Context, w io.Writer, logger *zap.Logger, fr *ForcesRun,
	ip *InputParameters.ForceParameters) (res *forces.Result, err error) {
	var (
		mesh *readfiles.SU2Mesh
		m    *model.Model
		body *model.ModelPart
		p    *forces.ComputeForcesOnNodesProcess
	)
	if mesh, err = readfiles.ReadSU2File(fr.GridFile); err != nil {
		return
	}
	logger.Debug("read mesh", zap.String("file", fr.GridFile),
		zap.Int("dimensions", mesh.Dimensions), zap.Int("vertices", len(mesh.Vertices)),
		zap.Int("markers", len(mesh.Markers)))
	if m, err = model.NewModelFromSU2(mesh); err != nil {
		return
	}
	settings := ip.ProcessSettings()
	if len(settings.ModelPartName) == 0 {
		solid := mesh.SolidSurfaceMarkers()
		if len(solid) == 0 {
			return nil, fmt.Errorf("%w: no ModelPartName given and no wall or body marker in %s",
				forces.ErrInvalidInput, fr.GridFile)
		}
		settings.ModelPartName = solid[0].Tag
	}
	if mk, ok := mesh.Marker(settings.ModelPartName); ok && !mk.BC.IsSolidSurface() {
		logger.Warn("integrating forces over a marker that is not a wall or body",
			zap.String("marker", mk.Tag), zap.Stringer("bc", mk.BC))
	}
	if body, err = m.GetModelPart(settings.ModelPartName); err != nil {
		return
	}
	degree := ip.ParallelDegree
	if degree == 0 {
		degree = runtime.NumCPU()
	}
	if err = body.ComputeConditionNormals(ctx, degree); err != nil {
		return
	}
	m.ProcessInfo = model.ProcessInfo{
		VelocityInfinity: ip.FreeStreamVelocity(),
		Density:          ip.FreeStream.Density,
	}
	if err = setPressure(m, body, fr, ip); err != nil {
		return
	}
	if p, err = forces.NewComputeForcesOnNodesProcess(m, settings, forces.NewZapObserver(logger)); err != nil {
		return
	}
	if res, err = p.Execute(); err != nil {
		return
	}
	fmt.Fprintf(w, "[%s]\t= Model Part, %d faces, %d nodes\n", body.Name, len(body.Conditions), len(res.Nodes))
	fmt.Fprintf(w, "%16.10f\t= Lift Force\n", res.Lift())
	fmt.Fprintf(w, "%16.10f\t= Drag Force\n", res.Drag())
	fmt.Fprintf(w, "%16.10f\t= Side Force\n", res.Side())
	sum := body.SumNodeVector(model.REACTION)
	fmt.Fprintf(w, "[%16.10f, %16.10f, %16.10f]\t= Nodal Reaction Sum\n", sum.X, sum.Y, sum.Z)
	if cl, clErr := forces.ComputeLiftCoefficient(res.Total, res.DynamicPressure); clErr == nil {
		fmt.Fprintf(w, "%s\t= CL\n", forces.FormatLiftCoefficient(cl))
	}
	return
}

func setPressure(m *model.Model, body *model.ModelPart, fr *ForcesRun,
	ip *InputParameters.ForceParameters) (err error) {
	var (
		file = fr.PressureFile
		cp   []float64
	)
	if len(file) == 0 {
		file = ip.PressureFile
	}
	if len(file) == 0 {
		body.SetUniformPressureCoefficient(ip.PressureCoefficient)
		return
	}
	if cp, err = readfiles.ReadPressureCoefficientsFile(file); err != nil {
		return
	}
	if ip.StaticPressures {
		q := forces.DynamicPressure(forces.FreeStreamState{
			Velocity: m.ProcessInfo.VelocityInfinity,
			Density:  m.Density(),
		})
		return body.SetStaticPressures(cp, ip.FreeStream.Pressure, q)
	}
	return body.SetPressureCoefficients(cp)
}
