package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

/*
ReadPressureCoefficients reads one pressure coefficient per boundary element,
in the order the elements appear in the body marker. Values are whitespace
separated; blank lines and lines starting with % or # are skipped.
*/
func ReadPressureCoefficients(r io.Reader) (cp []float64, err error) {
	var (
		scanner = bufio.NewScanner(r)
		lineNum int
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "%") || strings.HasPrefix(line, "#") {
			continue
		}
		for _, field := range strings.Fields(line) {
			var val float64
			if val, err = strconv.ParseFloat(field, 64); err != nil {
				return nil, fmt.Errorf("pressure line %d: unable to read [%s]: %w", lineNum, field, err)
			}
			cp = append(cp, val)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	return
}

func ReadPressureCoefficientsFile(filename string) (cp []float64, err error) {
	var (
		file *os.File
	)
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	return ReadPressureCoefficients(file)
}
