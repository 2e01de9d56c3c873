package readfiles

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/surfaceforce/types"
)

func TestReadSU2(t *testing.T) {
	m, err := ReadSU2(bytes.NewReader(inputFile))
	require.NoError(t, err)
	{ // Test reading the file structure
		assert.Equal(t, 2, m.Dimensions)
		assert.Equal(t, 22, m.NumElements)
		require.Len(t, m.Vertices, 18)
		require.Len(t, m.Markers, 4)
		labels := []string{"periodic-left", "periodic-right", "top", "bottom"}
		nptsBC := []int{2, 2, 4, 4}
		for n, mk := range m.Markers {
			assert.Equal(t, labels[n], mk.Tag)
			assert.Len(t, mk.Elements, nptsBC[n])
		}
	}
	{ // Test read vertices
		Nv := len(m.Vertices)
		assert.Equal(t, r3.Vec{X: -7.100939331382065, Y: 2.889910324036197}, m.Vertices[Nv-1])
		assert.Equal(t, r3.Vec{X: 10, Y: 10}, m.Vertices[2])
	}
	{ // Test read BCs
		bottom, ok := m.Marker("bottom")
		require.True(t, ok)
		assert.Equal(t, BoundaryElement{Type: ELType_LINE, Vertices: []int{0, 4}}, bottom.Elements[0])
		assert.Equal(t, []int{6, 1}, bottom.Elements[3].Vertices)
		_, ok = m.Marker("airfoil")
		assert.False(t, ok)
		assert.Empty(t, m.SolidSurfaceMarkers())
	}
}

func TestReadSU2_3D(t *testing.T) {
	m, err := ReadSU2(strings.NewReader(inputFile3D))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Dimensions)
	require.Len(t, m.Vertices, 5)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 0.5}, m.Vertices[4])
	{ // Duplicate tags are merged, repeated faces dropped
		require.Len(t, m.Markers, 2)
		wall, ok := m.Marker("wall")
		require.True(t, ok)
		assert.Equal(t, types.BC_Wall, wall.BC)
		require.Len(t, wall.Elements, 2)
		assert.Equal(t, ELType_Quadrilateral, wall.Elements[0].Type)
		assert.Equal(t, []int{0, 1, 2, 3}, wall.Elements[0].Vertices)
		assert.Equal(t, ELType_Triangle, wall.Elements[1].Type)
		solid := m.SolidSurfaceMarkers()
		require.Len(t, solid, 1)
		assert.Same(t, wall, solid[0])
	}
}

func TestReadSU2Errors(t *testing.T) {
	cases := map[string]string{
		"missing dimension": "NPOIN= 1\n0 0\n",
		"bad dimension":     "NDIME= 4\n",
		"no equals":         "NDIME 2\n",
		"short file":        "NDIME= 2\nNPOIN= 3\n0 0\n",
		"bad coordinate":    "NDIME= 2\nNPOIN= 1\n0 x\n",
		"volume in marker":  "NDIME= 2\nNPOIN= 2\n0 0\n1 0\nNMARK= 1\nMARKER_TAG= wall\nMARKER_ELEMS= 1\n10 0 1 1 1\n",
		"triangle in 2D":    "NDIME= 2\nNPOIN= 3\n0 0\n1 0\n1 1\nNMARK= 1\nMARKER_TAG= wall\nMARKER_ELEMS= 1\n5 0 1 2\n",
		"vertex range":      "NDIME= 2\nNPOIN= 2\n0 0\n1 0\nNMARK= 1\nMARKER_TAG= wall\nMARKER_ELEMS= 1\n3 0 7\n",
		"missing tag":       "NDIME= 2\nNPOIN= 2\n0 0\n1 0\nNMARK= 1\nMARKER_ELEMS= 1\n3 0 1\n",
		"negative count":    "NDIME= 2\nNPOIN= -2\n",
		"huge point count":  "NDIME= 2\nNPOIN= 99999999999999\n0 0\n",
		"huge marker count": "NDIME= 2\nNPOIN= 2\n0 0\n1 0\nNMARK= 99999999999999\nMARKER_TAG= wall\nMARKER_ELEMS= 1\n3 0 1\n",
		"huge elem count":   "NDIME= 2\nNPOIN= 2\n0 0\n1 0\nNMARK= 1\nMARKER_TAG= wall\nMARKER_ELEMS= 99999999999999\n3 0 1\n",
		"huge volume count": "NDIME= 2\nNELEM= 99999999999999\n5 0 1 2 0\n",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			var (
				m   *SU2Mesh
				err error
			)
			require.NotPanics(t, func() { m, err = ReadSU2(strings.NewReader(input)) })
			assert.Error(t, err)
			assert.Nil(t, m)
		})
	}
}

func TestReadSU2File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mesh.su2")
	require.NoError(t, os.WriteFile(path, []byte(inputFile3D), 0o644))
	m, err := ReadSU2File(path)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Dimensions)

	_, err = ReadSU2File(filepath.Join(t.TempDir(), "missing.su2"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

const inputFile3D = `%
% Unit square pyramid
%
NDIME= 3
NELEM= 1
14 0 1 2 3 4 0
NPOIN= 5 5
0 0 0 0
2 0 0 1
2 2 0 2
0 2 0 3
1 1 0.5 4
NMARK= 3
MARKER_TAG= wall
MARKER_ELEMS= 1
9 0 1 2 3
MARKER_TAG= farfield
MARKER_ELEMS= 1
5 0 1 4
MARKER_TAG= wall
MARKER_ELEMS= 2
9 3 2 1 0
5 1 2 4
`

var (
	inputFile = []byte(` %This is an example input file in SU2 format, output from gmsh
% Comments can appear outside of data areas
NDIME= 2
% Comments can appear outside of data areas
NELEM= 22
5 5 6 13 0
5 9 10 12 1
5 12 5 13 2
5 9 12 13 3
5 13 6 14 4
5 12 10 15 5
5 8 9 13 6
5 4 5 12 7
5 1 7 14 8
5 6 1 14 9
5 3 11 15 10
5 10 3 15 11
5 8 13 16 12
5 4 12 17 13
5 13 14 16 14
5 12 15 17 15
5 7 2 16 16
5 11 0 17 17
5 2 8 16 18
5 0 4 17 19
5 14 7 16 20
5 15 11 17 21
% Comments can appear outside of data areas
NPOIN= 18
-10 0 0
10 0 1
10 10 2
-10 10 3
-5.000000000004944 0 4
-1.231725832440134e-11 0 5
4.99999999999384 0 6
10 4.999999999992398 7
5.000000000004944 10 8
1.231725832440134e-11 10 9
-4.99999999999384 10 10
-10 5 11
-2.500000000008632 4.330127018915808 12
2.50000000000863 5.669872981084192 13
6.712741669205853 3.668411415814691 14
-6.712741669205681 6.331588584184096 15
7.100939331384343 7.110089675963254 16
-7.100939331382065 2.889910324036197 17
NMARK= 4
% Comments can appear outside of data areas
MARKER_TAG= periodic-left
% Comments can appear outside of data areas
MARKER_ELEMS= 2
3 3 11
3 11 0
% Comments can appear outside of data areas
MARKER_TAG= periodic-right
MARKER_ELEMS= 2
3 1 7
3 7 2
% Comments can appear outside of data areas
MARKER_TAG= top
MARKER_ELEMS= 4
3 2 8
3 8 9
3 9 10
3 10 3
MARKER_TAG= bottom
% Comments can appear outside of data areas
MARKER_ELEMS= 4
3 0 4
3 4 5
3 5 6
3 6 1
% Comments can appear outside of data areas
`)
)
