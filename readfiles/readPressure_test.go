package readfiles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPressureCoefficients(t *testing.T) {
	{
		cp, err := ReadPressureCoefficients(strings.NewReader("% Cp on airfoil\n-2.0\n\n# upper\n0.5 1e-1\n-0.25\n"))
		require.NoError(t, err)
		assert.Equal(t, []float64{-2, 0.5, 0.1, -0.25}, cp)
	}
	{
		_, err := ReadPressureCoefficients(strings.NewReader("1.0\nabc\n"))
		assert.ErrorContains(t, err, "pressure line 2")
	}
	{
		path := filepath.Join(t.TempDir(), "cp.dat")
		require.NoError(t, os.WriteFile(path, []byte("1\n2\n"), 0o644))
		cp, err := ReadPressureCoefficientsFile(path)
		require.NoError(t, err)
		assert.Equal(t, []float64{1, 2}, cp)
	}
}
