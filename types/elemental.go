package types

import (
	"fmt"
	"sort"
)

// MaxFaceVertices is the largest boundary face handled: a quadrilateral.
const MaxFaceVertices = 4

/*
FaceKey identifies a boundary face by its vertices independent of their order
or orientation. Faces [4 0 7] and [7 4 0] share a key. Unused slots hold -1.
*/
type FaceKey [MaxFaceVertices]int

func NewFaceKey(verts []int) (fk FaceKey) {
	if len(verts) == 0 || len(verts) > MaxFaceVertices {
		panic(fmt.Errorf("unable to key a face with %d vertices", len(verts)))
	}
	sorted := make([]int, len(verts))
	copy(sorted, verts)
	sort.Ints(sorted)
	for i := range fk {
		if i < len(sorted) {
			fk[i] = sorted[i]
		} else {
			fk[i] = -1
		}
	}
	return
}
