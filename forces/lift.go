package forces

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultLiftCoefficientFile is the file name used when the process is asked
// to create an output file without naming one.
const DefaultLiftCoefficientFile = "cl_points_with_lift.dat"

// ComputeLiftCoefficient normalizes the lift component (Y) of total by the
// dynamic pressure.
func ComputeLiftCoefficient(total r3.Vec, dynamicPressure float64) (cl float64, err error) {
	if dynamicPressure == 0 {
		return 0, fmt.Errorf("%w: lift coefficient with zero dynamic pressure", ErrDivisionByZero)
	}
	cl = total.Y / dynamicPressure
	return
}

// FormatLiftCoefficient renders cl as fixed point text, 15 characters wide
// with 12 fractional digits.
func FormatLiftCoefficient(cl float64) string {
	return fmt.Sprintf("%15.12f", cl)
}

/*
WriteLiftCoefficientFile writes cl to path with no trailing newline. The value
is written to a temporary file in the same directory which is then renamed
over path, so path is either completely written or left untouched. A new file
gets the umask default permissions, a replaced file keeps its own.
*/
func WriteLiftCoefficientFile(path string, cl float64) (err error) {
	var (
		file *os.File
	)
	if file, err = createSibling(path); err != nil {
		return fmt.Errorf("%w: unable to open %s for writing: %v", ErrIO, path, err)
	}
	tmpName := file.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err = file.WriteString(FormatLiftCoefficient(cl)); err != nil {
		_ = file.Close()
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	if fi, statErr := os.Stat(path); statErr == nil && fi.Mode().IsRegular() {
		if err = file.Chmod(fi.Mode().Perm()); err != nil {
			_ = file.Close()
			return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
		}
	}
	if err = file.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", ErrIO, path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: unable to replace %s: %v", ErrIO, path, err)
	}
	return nil
}

// createSibling opens a new hidden file next to path. Unlike os.CreateTemp it
// asks for 0666 so the process umask decides the permissions.
func createSibling(path string) (file *os.File, err error) {
	dir, base := filepath.Dir(path), filepath.Base(path)
	for try := 0; try < 100; try++ {
		name := filepath.Join(dir, fmt.Sprintf(".%s.%d", base, rand.Uint32()))
		file, err = os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)
		if !os.IsExist(err) {
			return
		}
	}
	return
}
