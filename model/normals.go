package model

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/notargets/surfaceforce/utils"
)

/*
ConditionNormal returns the area weighted normal of a boundary face:

	line (2D)      (dy, -dx, 0), length of the edge
	triangle       1/2 (b-a) x (c-a)
	quadrilateral  1/2 (c-a) x (d-b)

For a line the normal lies to the right of the edge direction, for faces it
follows the right hand rule on the vertex order.
*/
func ConditionNormal(x []r3.Vec) (n r3.Vec, err error) {
	switch len(x) {
	case 2:
		d := r3.Sub(x[1], x[0])
		n = r3.Vec{X: d.Y, Y: -d.X}
	case 3:
		n = r3.Scale(0.5, r3.Cross(r3.Sub(x[1], x[0]), r3.Sub(x[2], x[0])))
	case 4:
		n = r3.Scale(0.5, r3.Cross(r3.Sub(x[2], x[0]), r3.Sub(x[3], x[1])))
	default:
		err = fmt.Errorf("unable to compute the normal of a face with %d nodes", len(x))
	}
	return
}

/*
ComputeConditionNormals sets the normal of every condition of the part and the
NORMAL of every node of the part to the sum of the normals of its conditions.
Conditions are split into parallelDegree buckets computed concurrently; each
bucket writes only its own conditions. Nodal sums follow in condition order.
*/
func (mp *ModelPart) ComputeConditionNormals(ctx context.Context, parallelDegree int) (err error) {
	pm := utils.NewPartitionMap(parallelDegree, len(mp.Conditions))
	err = pm.RunPartitioned(ctx, func(ctx context.Context, kMin, kMax int) error {
		x := make([]r3.Vec, 0, 4)
		for k := kMin; k < kMax; k++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := mp.Conditions[k]
			x = x[:0]
			for _, id := range c.Nodes {
				x = append(x, mp.model.Nodes[id].Coords)
			}
			n, err := ConditionNormal(x)
			if err != nil {
				return fmt.Errorf("condition %d: %w", c.ID, err)
			}
			c.Normal = n
		}
		return nil
	})
	if err != nil {
		return
	}
	for _, id := range mp.NodeIDs() {
		mp.model.Nodes[id].SetValue(NORMAL, r3.Vec{})
	}
	for _, c := range mp.Conditions {
		for _, id := range c.Nodes {
			node := mp.model.Nodes[id]
			node.SetValue(NORMAL, r3.Add(node.GetValue(NORMAL), c.Normal))
		}
	}
	return
}
