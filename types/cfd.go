package types

import "strings"

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_In
	BC_Dirichlet
	BC_Slip
	BC_Far
	BC_Wall
	BC_Cyl
	BC_Neuman
	BC_Out
	BC_Body
)

func (bc BCFLAG) String() string {
	names := []string{
		"None",
		"Inflow",
		"Dirichlet",
		"Slip",
		"Far",
		"Wall",
		"Cyl",
		"Neuman",
		"Outflow",
		"Body",
	}
	if int(bc) >= len(names) {
		return "Unknown"
	}
	return names[bc]
}

var BCNameMap = map[string]BCFLAG{
	"inflow":    BC_In,
	"in":        BC_In,
	"out":       BC_Out,
	"outflow":   BC_Out,
	"wall":      BC_Wall,
	"far":       BC_Far,
	"farfield":  BC_Far,
	"cyl":       BC_Cyl,
	"dirichlet": BC_Dirichlet,
	"neuman":    BC_Neuman,
	"slip":      BC_Slip,
	"body":      BC_Body,
	"airfoil":   BC_Body,
	"wing":      BC_Body,
}

/*
NewBCFLAG classifies a mesh marker tag. Tags are matched case insensitively,
first as a whole and then by the leading word before a '-', '_' or space, so
"Wall-upper" and "body_2" classify as BC_Wall and BC_Body.
*/
func NewBCFLAG(tag string) BCFLAG {
	label := strings.ToLower(strings.TrimSpace(tag))
	if bc, ok := BCNameMap[label]; ok {
		return bc
	}
	if ind := strings.IndexAny(label, "-_ "); ind > 0 {
		if bc, ok := BCNameMap[label[:ind]]; ok {
			return bc
		}
	}
	return BC_None
}

// IsSolidSurface reports whether pressure on a boundary of this kind loads
// the body, which makes it a candidate for force integration.
func (bc BCFLAG) IsSolidSurface() bool {
	switch bc {
	case BC_Wall, BC_Slip, BC_Cyl, BC_Body:
		return true
	}
	return false
}
