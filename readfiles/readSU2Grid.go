package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/surfaceforce/types"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
	ELType_Tetrahedral   SU2ElementType = 10
	ELType_Hexahedral    SU2ElementType = 12
	ELType_Prism         SU2ElementType = 13
	ELType_Pyramid       SU2ElementType = 14
)

// NumVertices is the vertex count of the boundary element types, zero for
// volume types.
func (et SU2ElementType) NumVertices() int {
	switch et {
	case ELType_LINE:
		return 2
	case ELType_Triangle:
		return 3
	case ELType_Quadrilateral:
		return 4
	}
	return 0
}

type BoundaryElement struct {
	Type     SU2ElementType
	Vertices []int
}

type Marker struct {
	Tag      string
	BC       types.BCFLAG
	Elements []BoundaryElement
}

type SU2Mesh struct {
	Dimensions  int
	NumElements int // Volume elements, read past but not stored
	Vertices    []r3.Vec
	Markers     []*Marker // In file order
}

func (m *SU2Mesh) Marker(tag string) (mk *Marker, ok bool) {
	for _, mk = range m.Markers {
		if mk.Tag == tag {
			return mk, true
		}
	}
	return nil, false
}

// SolidSurfaceMarkers returns the markers whose tag classifies as a wall or
// body boundary.
func (m *SU2Mesh) SolidSurfaceMarkers() (mks []*Marker) {
	for _, mk := range m.Markers {
		if mk.BC.IsSolidSurface() {
			mks = append(mks, mk)
		}
	}
	return
}

type su2Error struct {
	line int
	err  error
}

func (e su2Error) Error() string { return fmt.Sprintf("su2 line %d: %v", e.line, e.err) }
func (e su2Error) Unwrap() error { return e.err }

type su2Reader struct {
	reader *bufio.Reader
	line   int
}

func (sr *su2Reader) fail(format string, args ...interface{}) {
	panic(su2Error{line: sr.line, err: fmt.Errorf(format, args...)})
}

// getLine returns the next line without its line ending, ok is false at end
// of input.
func (sr *su2Reader) getLine() (line string, ok bool) {
	var (
		err error
	)
	line, err = sr.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		sr.fail("%v", err)
	}
	if err == io.EOF && len(line) == 0 {
		return "", false
	}
	sr.line++
	line = strings.TrimRight(line, "\r\n")
	return line, true
}

func (sr *su2Reader) mustGetLine() (line string) {
	var ok bool
	if line, ok = sr.getLine(); !ok {
		sr.fail("early end of file")
	}
	return
}

// getLineNoComments skips blank lines and lines starting with %.
func (sr *su2Reader) getLineNoComments() (line string, ok bool) {
	for {
		if line, ok = sr.getLine(); !ok {
			return
		}
		line = strings.TrimSpace(line)
		if len(line) != 0 && !strings.HasPrefix(line, "%") {
			return
		}
	}
}

func splitToken(line string) (keyword, token string, ok bool) {
	ind := strings.Index(line, "=")
	if ind < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:ind]), strings.TrimSpace(line[ind+1:]), true
}

func (sr *su2Reader) getToken(keyword string) (token string) {
	line, ok := sr.getLineNoComments()
	if !ok {
		sr.fail("early end of file, expected %s", keyword)
	}
	kw, token, ok := splitToken(line)
	if !ok {
		sr.fail("badly formed input line [%s], should have an =", line)
	}
	if kw != keyword {
		sr.fail("expected %s, have [%s]", keyword, kw)
	}
	return
}

func (sr *su2Reader) parseNumber(token string) (num int) {
	var (
		err error
	)
	// NPOIN may carry a second count of halo points
	fields := strings.Fields(token)
	if len(fields) == 0 {
		sr.fail("unable to read number from token: [%s]", token)
	}
	if num, err = strconv.Atoi(fields[0]); err != nil || num < 0 {
		sr.fail("unable to read number from token: [%s]", token)
	}
	return
}

func (sr *su2Reader) readNumber(keyword string) int {
	return sr.parseNumber(sr.getToken(keyword))
}

func (sr *su2Reader) readLabel(keyword string) (label string) {
	token := sr.getToken(keyword)
	fields := strings.Fields(token)
	if len(fields) == 0 {
		sr.fail("unable to read label from token: [%s]", token)
	}
	label = fields[0]
	return
}

func (sr *su2Reader) skipLines(n int) {
	for i := 0; i < n; i++ {
		sr.mustGetLine()
	}
}

// maxCountHint bounds capacity hints taken from counts in the file; slices
// grow past it as lines are actually read.
const maxCountHint = 1 << 16

func countHint(n int) int {
	if n > maxCountHint {
		return maxCountHint
	}
	return n
}

func (sr *su2Reader) readVertices(Nv, dim int) (verts []r3.Vec) {
	verts = make([]r3.Vec, 0, countHint(Nv))
	for i := 0; i < Nv; i++ {
		fields := strings.Fields(sr.mustGetLine())
		if len(fields) < dim {
			sr.fail("unable to read coordinates, have %d values for %d dimensions", len(fields), dim)
		}
		var x [3]float64
		for n := 0; n < dim; n++ {
			var err error
			if x[n], err = strconv.ParseFloat(fields[n], 64); err != nil {
				sr.fail("unable to read coordinate [%s]", fields[n])
			}
		}
		verts = append(verts, r3.Vec{X: x[0], Y: x[1], Z: x[2]})
	}
	return
}

func (sr *su2Reader) readBoundaryElement(dim int) (be BoundaryElement) {
	fields := strings.Fields(sr.mustGetLine())
	if len(fields) == 0 {
		sr.fail("empty marker element")
	}
	nType, err := strconv.Atoi(fields[0])
	if err != nil {
		sr.fail("unable to read element type [%s]", fields[0])
	}
	be.Type = SU2ElementType(nType)
	nv := be.Type.NumVertices()
	switch {
	case nv == 0:
		sr.fail("element type %d is not a boundary element", nType)
	case dim == 2 && be.Type != ELType_LINE:
		sr.fail("BCs should only contain line elements in 2D")
	case dim == 3 && be.Type == ELType_LINE:
		sr.fail("BCs should only contain triangles or quadrilaterals in 3D")
	case len(fields) < nv+1:
		sr.fail("element type %d needs %d vertices, have %d", nType, nv, len(fields)-1)
	}
	be.Vertices = make([]int, nv)
	for i := 0; i < nv; i++ {
		if be.Vertices[i], err = strconv.Atoi(fields[i+1]); err != nil || be.Vertices[i] < 0 {
			sr.fail("unable to read vertex index [%s]", fields[i+1])
		}
	}
	return
}

/*
readMarkers reads NMARK markers. A tag that appears more than once is merged
into its first occurrence; a face already present in the merged marker is
dropped so that no boundary element is integrated twice.
*/
func (sr *su2Reader) readMarkers(NBCs, dim int) (markers []*Marker) {
	var (
		byTag = make(map[string]*Marker, countHint(NBCs))
		faces = make(map[string]map[types.FaceKey]bool, countHint(NBCs))
	)
	for n := 0; n < NBCs; n++ {
		label := sr.readLabel("MARKER_TAG")
		nEdges := sr.readNumber("MARKER_ELEMS")
		mk, ok := byTag[label]
		if !ok {
			mk = &Marker{
				Tag:      label,
				BC:       types.NewBCFLAG(label),
				Elements: make([]BoundaryElement, 0, countHint(nEdges)),
			}
			byTag[label] = mk
			faces[label] = make(map[types.FaceKey]bool, countHint(nEdges))
			markers = append(markers, mk)
		}
		for i := 0; i < nEdges; i++ {
			be := sr.readBoundaryElement(dim)
			key := types.NewFaceKey(be.Vertices)
			if faces[label][key] {
				continue
			}
			faces[label][key] = true
			mk.Elements = append(mk.Elements, be)
		}
	}
	return
}

func (sr *su2Reader) read() (m *SU2Mesh) {
	m = &SU2Mesh{}
	for {
		line, ok := sr.getLineNoComments()
		if !ok {
			break
		}
		kw, token, ok := splitToken(line)
		if !ok {
			sr.fail("badly formed input line [%s], should have an =", line)
		}
		switch kw {
		case "NDIME":
			m.Dimensions = sr.parseNumber(token)
			if m.Dimensions != 2 && m.Dimensions != 3 {
				sr.fail("unsupported dimensionality %d", m.Dimensions)
			}
		case "NELEM":
			m.NumElements = sr.parseNumber(token)
			sr.skipLines(m.NumElements)
		case "NPOIN":
			if m.Dimensions == 0 {
				sr.fail("NPOIN before NDIME")
			}
			m.Vertices = sr.readVertices(sr.parseNumber(token), m.Dimensions)
		case "NMARK":
			if m.Dimensions == 0 {
				sr.fail("NMARK before NDIME")
			}
			m.Markers = sr.readMarkers(sr.parseNumber(token), m.Dimensions)
		default:
			// Other sections (e.g. FFD boxes) are not needed for surface loads
		}
	}
	if m.Dimensions == 0 {
		sr.fail("missing NDIME")
	}
	for _, mk := range m.Markers {
		for _, be := range mk.Elements {
			for _, v := range be.Vertices {
				if v >= len(m.Vertices) {
					sr.fail("marker %s references vertex %d, have %d vertices", mk.Tag, v, len(m.Vertices))
				}
			}
		}
	}
	return
}

func ReadSU2(r io.Reader) (m *SU2Mesh, err error) {
	sr := &su2Reader{reader: bufio.NewReader(r)}
	defer func() {
		if rec := recover(); rec != nil {
			switch e := rec.(type) {
			case su2Error:
				m, err = nil, e
			case runtime.Error:
				m, err = nil, su2Error{line: sr.line, err: e}
			default:
				panic(rec)
			}
		}
	}()
	m = sr.read()
	return
}

func ReadSU2File(filename string) (m *SU2Mesh, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if m, err = ReadSU2(file); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return
}
