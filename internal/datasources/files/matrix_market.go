package files

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jbeshir/job-recommender/internal/domain"
)

const matrixMarketBanner = "%%MatrixMarket"

// CoordinateFormat selects how sparse entries are written.
type CoordinateFormat int

const (
	// FormatMatrixMarket is a standard 1-based coordinate file with banner and size line.
	FormatMatrixMarket CoordinateFormat = iota
	// FormatMatrixMarketZeroBased keeps the banner and size line but writes 0-based indices.
	FormatMatrixMarketZeroBased
	// FormatGraphLab is 1-based `row col  value` lines with no header.
	FormatGraphLab
)

// ParseCoordinateFormat maps a format name to a CoordinateFormat.
func ParseCoordinateFormat(s string) (CoordinateFormat, error) {
	switch strings.ToLower(s) {
	case "mm", "matrix-market":
		return FormatMatrixMarket, nil
	case "mm0", "matrix-market-zero":
		return FormatMatrixMarketZeroBased, nil
	case "graphlab":
		return FormatGraphLab, nil
	default:
		return 0, fmt.Errorf("unknown matrix format [%s]: %w", s, domain.ErrInvalidArgument)
	}
}

// WriteSparseMatrix writes m's nonzero entries in row-major order.
func WriteSparseMatrix(w io.Writer, m domain.SparseMatrix, format CoordinateFormat) error {
	base := 1
	if format == FormatMatrixMarketZeroBased {
		base = 0
	}

	rows, cols := m.Dims()
	if format != FormatGraphLab {
		if _, err := fmt.Fprintf(w, "%s matrix coordinate real general\n%d %d %d\n",
			matrixMarketBanner, rows, cols, m.NNZ()); err != nil {
			return err
		}
	}

	sep := " "
	if format == FormatGraphLab {
		sep = "  "
	}
	for _, e := range m.Entries() {
		if _, err := fmt.Fprintf(w, "%d %d%s%s\n",
			e.Row+base, e.Col+base, sep, strconv.FormatFloat(e.Value, 'g', -1, 64)); err != nil {
			return err
		}
	}
	return nil
}

type matrixMarketHeader struct {
	array     bool
	pattern   bool
	symmetric bool
}

func parseMatrixMarketBanner(line string) (matrixMarketHeader, error) {
	parts := strings.Fields(strings.ToLower(line))
	if len(parts) != 5 || parts[1] != "matrix" {
		return matrixMarketHeader{}, fmt.Errorf("unsupported banner [%s]: %w", line, domain.ErrInvalidArgument)
	}

	var h matrixMarketHeader
	switch parts[2] {
	case "coordinate":
	case "array":
		h.array = true
	default:
		return h, fmt.Errorf("unsupported layout [%s]: %w", parts[2], domain.ErrInvalidArgument)
	}
	switch parts[3] {
	case "real", "integer", "double":
	case "pattern":
		h.pattern = !h.array
	default:
		return h, fmt.Errorf("unsupported field [%s]: %w", parts[3], domain.ErrInvalidArgument)
	}
	switch parts[4] {
	case "general":
	case "symmetric":
		h.symmetric = true
	default:
		return h, fmt.Errorf("unsupported symmetry [%s]: %w", parts[4], domain.ErrInvalidArgument)
	}
	return h, nil
}

// matrixMarketLines yields non-comment, non-blank lines after the banner.
type matrixMarketLines struct {
	sc   *bufio.Scanner
	line int
}

func (l *matrixMarketLines) next() ([]string, bool) {
	for l.sc.Scan() {
		l.line++
		text := strings.TrimSpace(l.sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}
		return strings.Fields(text), true
	}
	return nil, false
}

// maxPreallocEntries bounds the capacity reserved from a header's declared size.
const maxPreallocEntries = 1 << 16

func (l *matrixMarketLines) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", l.line, fmt.Sprintf(format, args...), domain.ErrInvalidArgument)
}

// ReadSparseMatrix parses a Matrix Market coordinate file. Indices are 1-based unless
// zeroBased is set.
func ReadSparseMatrix(r io.Reader, zeroBased bool) (domain.SparseMatrix, error) {
	sc := bufio.NewScanner(r)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return domain.SparseMatrix{}, err
		}
		return domain.SparseMatrix{}, fmt.Errorf("empty matrix file: %w", domain.ErrInvalidArgument)
	}
	h, err := parseMatrixMarketBanner(sc.Text())
	if err != nil {
		return domain.SparseMatrix{}, err
	}
	if h.array {
		return domain.SparseMatrix{}, fmt.Errorf("expected coordinate layout: %w", domain.ErrInvalidArgument)
	}

	lines := &matrixMarketLines{sc: sc, line: 1}
	size, ok := lines.next()
	if !ok || len(size) != 3 {
		return domain.SparseMatrix{}, lines.errorf("missing size line")
	}
	dims := make([]int, 3)
	for i, s := range size {
		if dims[i], err = strconv.Atoi(s); err != nil || dims[i] < 0 {
			return domain.SparseMatrix{}, lines.errorf("size %q", s)
		}
	}

	base := 1
	if zeroBased {
		base = 0
	}

	entries := make([]domain.SparseEntry, 0, min(dims[2], maxPreallocEntries))
	for range dims[2] {
		fields, ok := lines.next()
		if !ok {
			return domain.SparseMatrix{}, lines.errorf("expected %d entries, got %d", dims[2], len(entries))
		}
		if len(fields) < 2 || (!h.pattern && len(fields) < 3) {
			return domain.SparseMatrix{}, lines.errorf("short entry")
		}

		row, rerr := strconv.Atoi(fields[0])
		col, cerr := strconv.Atoi(fields[1])
		if rerr != nil || cerr != nil {
			return domain.SparseMatrix{}, lines.errorf("entry indices %q %q", fields[0], fields[1])
		}
		value := 1.0
		if !h.pattern {
			if value, err = strconv.ParseFloat(fields[2], 64); err != nil {
				return domain.SparseMatrix{}, lines.errorf("entry value %q", fields[2])
			}
		}

		e := domain.SparseEntry{Row: row - base, Col: col - base, Value: value}
		entries = append(entries, e)
		if h.symmetric && e.Row != e.Col {
			entries = append(entries, domain.SparseEntry{Row: e.Col, Col: e.Row, Value: value})
		}
	}
	if err := sc.Err(); err != nil {
		return domain.SparseMatrix{}, err
	}

	return domain.NewSparseMatrix(dims[0], dims[1], entries)
}

// ReadVector reads a dense vector from either a Matrix Market array file (values in
// column-major order) or a plain file with one value per line.
func ReadVector(r io.Reader) ([]float64, error) {
	sc := bufio.NewScanner(r)
	lines := &matrixMarketLines{sc: sc}

	var values []float64
	first := true
	for sc.Scan() {
		lines.line++
		text := strings.TrimSpace(sc.Text())
		if first && strings.HasPrefix(text, matrixMarketBanner) {
			h, err := parseMatrixMarketBanner(text)
			if err != nil {
				return nil, err
			}
			if !h.array {
				return nil, fmt.Errorf("expected array layout: %w", domain.ErrInvalidArgument)
			}
			return readArrayBody(lines)
		}
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}
		first = false

		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, lines.errorf("value %q", text)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

func readArrayBody(lines *matrixMarketLines) ([]float64, error) {
	size, ok := lines.next()
	if !ok || len(size) != 2 {
		return nil, lines.errorf("missing size line")
	}
	rows, rerr := strconv.Atoi(size[0])
	cols, cerr := strconv.Atoi(size[1])
	if rerr != nil || cerr != nil || rows < 0 || cols < 0 {
		return nil, lines.errorf("size %v", size)
	}

	if cols > 0 && rows > math.MaxInt/cols {
		return nil, lines.errorf("size %v overflows", size)
	}

	values := make([]float64, 0, min(rows*cols, maxPreallocEntries))
	for len(values) < rows*cols {
		fields, ok := lines.next()
		if !ok {
			return nil, lines.errorf("expected %d values, got %d", rows*cols, len(values))
		}
		for _, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, lines.errorf("value %q", f)
			}
			values = append(values, v)
		}
	}
	if err := lines.sc.Err(); err != nil {
		return nil, err
	}
	return values, nil
}

// WriteVector writes v as a Matrix Market n x 1 array.
func WriteVector(w io.Writer, v []float64) error {
	if _, err := fmt.Fprintf(w, "%s matrix array real general\n%d 1\n", matrixMarketBanner, len(v)); err != nil {
		return err
	}
	for _, x := range v {
		if _, err := io.WriteString(w, strconv.FormatFloat(x, 'g', -1, 64)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func ReadSparseMatrixFile(path string, zeroBased bool) (domain.SparseMatrix, error) {
	return readFile(path, func(r io.Reader) (domain.SparseMatrix, error) { return ReadSparseMatrix(r, zeroBased) })
}

func WriteSparseMatrixFile(path string, m domain.SparseMatrix, format CoordinateFormat) error {
	return writeFile(path, func(w io.Writer) error { return WriteSparseMatrix(w, m, format) })
}

func ReadVectorFile(path string) ([]float64, error) {
	return readFile(path, ReadVector)
}
