package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshxform/pkg/affine"
)

// maxLineLength bounds a single line of a text mesh file.
const maxLineLength = 16 * 1024 * 1024

// textLine is one line of a text mesh file. eol is "\n", "\r\n", or empty
// for a last line without a terminator.
type textLine struct {
	body string
	eol  string
}

// splitLines splits text data into lines, keeping each line's terminator
// so files are written back with the endings they were read with.
func splitLines(data []byte) ([]textLine, error) {
	var lines []textLine
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), maxLineLength)
	scanner.Split(scanLinesWithEOL)
	for scanner.Scan() {
		raw := scanner.Text()
		body := strings.TrimSuffix(raw, "\n")
		body = strings.TrimSuffix(body, "\r")
		lines = append(lines, textLine{body: body, eol: raw[len(body):]})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// scanLinesWithEOL is bufio.ScanLines without dropping the terminator.
func scanLinesWithEOL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// parseCoords parses three numeric fields.
func parseCoords(fields []string) (affine.Vec3, error) {
	if len(fields) < 3 {
		return affine.Vec3{}, fmt.Errorf("expected 3 coordinates, got %d", len(fields))
	}
	var c [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return affine.Vec3{}, fmt.Errorf("coordinate %q: %w", fields[i], err)
		}
		c[i] = f
	}
	return affine.Vec3{X: c[0], Y: c[1], Z: c[2]}, nil
}

// formatCoords renders a vector as "x y z" with the shortest exact decimals.
func formatCoords(v affine.Vec3) string {
	return strings.Join([]string{
		strconv.FormatFloat(v.X, 'f', -1, 64),
		strconv.FormatFloat(v.Y, 'f', -1, 64),
		strconv.FormatFloat(v.Z, 'f', -1, 64),
	}, " ")
}

// writeFile writes data, creating or truncating path.
func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}
