package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/notargets/surfaceforce/InputParameters"
	"github.com/notargets/surfaceforce/forces"
)

const flatPlateSU2 = `% Flat plate resting on the lower wall of a channel
NDIME= 2
NELEM= 0
NPOIN= 5
0 0
1 0
2 0
0 1
2 1
NMARK= 2
MARKER_TAG= farfield
MARKER_ELEMS= 1
3 3 4
MARKER_TAG= wall-plate
MARKER_ELEMS= 2
3 2 1
3 1 0
`

func writeCase(t *testing.T, input string) (fr *ForcesRun, dir string) {
	dir = t.TempDir()
	fr = &ForcesRun{
		GridFile: filepath.Join(dir, "plate.su2"),
		ICFile:   filepath.Join(dir, "input.yaml"),
	}
	require.NoError(t, os.WriteFile(fr.GridFile, []byte(flatPlateSU2), 0o644))
	require.NoError(t, os.WriteFile(fr.ICFile, []byte(input), 0o644))
	return
}

func TestRunForces(t *testing.T) {
	fr, dir := writeCase(t, `
Title: Flat plate
CreateOutputFile: true
OutputFile: `+filepath.Join(t.TempDir(), "cl.dat")+`
FreeStream:
  Velocity: [10, 0, 0]
PressureCoefficient: -2.0
ParallelDegree: 2
`)
	ip, err := processInput(fr)
	require.NoError(t, err)
	{ // The wall marker is picked when no model part is named
		var out bytes.Buffer
		res, err := RunForces(context.Background(), &out, zap.NewNop(), fr, ip)
		require.NoError(t, err)
		// Edges 2->1 and 1->0 have normal (0, 1); Cp -2 gives -61.25 per node
		assert.Equal(t, -61.25, res.NodeForces[0].Y)
		assert.Equal(t, -122.5, res.NodeForces[1].Y)
		assert.Equal(t, -245., res.Lift())
		assert.Contains(t, out.String(), "[wall-plate]")
		assert.Contains(t, out.String(), "-4.000000000000\t= CL")
		assert.Contains(t, out.String(), " -245.0000000000, ")
		data, err := os.ReadFile(ip.OutputFile)
		require.NoError(t, err)
		assert.Equal(t, "-4.000000000000", string(data))
	}
	{ // Pressure file on the command line
		fr.PressureFile = filepath.Join(dir, "cp.dat")
		require.NoError(t, os.WriteFile(fr.PressureFile, []byte("0\n-2\n"), 0o644))
		res, err := RunForces(context.Background(), &bytes.Buffer{}, zap.NewNop(), fr, ip)
		require.NoError(t, err)
		assert.Equal(t, -61.25, res.NodeForces[0].Y)
		assert.Equal(t, -61.25, res.NodeForces[1].Y)
		assert.Equal(t, 0., res.NodeForces[2].Y)
	}
	{ // Wrong number of pressure coefficients
		require.NoError(t, os.WriteFile(fr.PressureFile, []byte("0\n"), 0o644))
		_, err := RunForces(context.Background(), &bytes.Buffer{}, zap.NewNop(), fr, ip)
		assert.Error(t, err)
	}
}

func TestRunForcesStaticPressures(t *testing.T) {
	fr, dir := writeCase(t, `
FreeStream:
  Velocity: [10, 0, 0]
  Pressure: 100
StaticPressures: true
`)
	ip, err := processInput(fr)
	require.NoError(t, err)
	ip.PressureFile = filepath.Join(dir, "p.dat")
	require.NoError(t, os.WriteFile(ip.PressureFile, []byte("100\n-22.5\n"), 0o644))
	var out bytes.Buffer
	ip.Print(&out)
	assert.Contains(t, out.String(), "= Free Stream Static Pressure")
	// q = 61.25, so the second face has Cp = (-22.5 - 100)/61.25 = -2
	res, err := RunForces(context.Background(), &bytes.Buffer{}, zap.NewNop(), fr, ip)
	require.NoError(t, err)
	assert.Equal(t, -61.25, res.NodeForces[0].Y)
	assert.Equal(t, -61.25, res.NodeForces[1].Y)
	assert.Equal(t, 0., res.NodeForces[2].Y)
	{ // Static pressures need a moving free stream
		ip.FreeStream.Velocity = []float64{0, 0}
		_, err = RunForces(context.Background(), &bytes.Buffer{}, zap.NewNop(), fr, ip)
		assert.ErrorIs(t, err, forces.ErrDivisionByZero)
	}
}

func TestRunForcesErrors(t *testing.T) {
	{
		_, err := processInput(&ForcesRun{ICFile: "input.yaml"})
		assert.ErrorContains(t, err, "grid file")
	}
	{
		_, err := processInput(&ForcesRun{GridFile: "plate.su2"})
		assert.ErrorContains(t, err, "input parameters file")
	}
	{
		fr, _ := writeCase(t, "FreeStream:\n  Velocity: [1]\n")
		_, err := processInput(fr)
		assert.ErrorIs(t, err, forces.ErrInvalidInput)
	}
	{ // Named model part that is not in the mesh
		fr, _ := writeCase(t, "ModelPartName: airfoil\nFreeStream:\n  Speed: 10\n")
		ip, err := processInput(fr)
		require.NoError(t, err)
		_, err = RunForces(context.Background(), &bytes.Buffer{}, zap.NewNop(), fr, ip)
		assert.ErrorContains(t, err, "airfoil")
	}
	{ // An unset density falls back to sea level
		fr, _ := writeCase(t, "")
		ip := &InputParameters.ForceParameters{ModelPartName: "farfield"}
		ip.FreeStream.Speed = 10
		core, logs := observer.New(zap.WarnLevel)
		res, err := RunForces(context.Background(), &bytes.Buffer{}, zap.New(core), fr, ip)
		require.NoError(t, err)
		assert.Equal(t, 0.5*1.225*100, res.DynamicPressure)
		// The far field is not a solid surface
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "farfield", logs.All()[0].ContextMap()["marker"])
	}
	{ // An explicit zero density is rejected, not defaulted
		fr, _ := writeCase(t, "FreeStream:\n  Speed: 10\n  Density: 0\n")
		ip, err := processInput(fr)
		require.NoError(t, err)
		require.NotNil(t, ip.FreeStream.Density)
		_, err = RunForces(context.Background(), &bytes.Buffer{}, zap.NewNop(), fr, ip)
		assert.ErrorIs(t, err, forces.ErrInvalidInput)
	}
}

func TestForcesCommand(t *testing.T) {
	fr, _ := writeCase(t, "FreeStream:\n  Speed: 10\nPressureCoefficient: 1\n")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"forces", "-F", fr.GridFile, "-I", fr.ICFile})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "= Lift Force")
	assert.Contains(t, out.String(), " 2.000000000000\t= CL")
	{ // Pressure file flag
		cpFile := filepath.Join(filepath.Dir(fr.GridFile), "cp.dat")
		require.NoError(t, os.WriteFile(cpFile, []byte("1\n1\n"), 0o644))
		out.Reset()
		rootCmd.SetArgs([]string{"forces", "-F", fr.GridFile, "-I", fr.ICFile, "-P", cpFile})
		require.NoError(t, rootCmd.Execute())
		assert.Contains(t, out.String(), " 2.000000000000\t= CL")
	}
}
