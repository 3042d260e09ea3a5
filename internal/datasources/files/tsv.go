package files

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const maxLineBytes = 16 * 1024 * 1024

// scanTSV calls fn with the tab-separated fields of every line, skipping the first line
// when header is set. Lines are numbered from 1 as they appear in the file.
func scanTSV(r io.Reader, header bool, fn func(line int, fields []string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)

	line := 0
	for sc.Scan() {
		line++
		if header && line == 1 {
			continue
		}
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if err := fn(line, strings.Split(text, "\t")); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scanning line %d: %w", line+1, err)
	}
	return nil
}

// field returns the i'th field, or "" when the row is short.
func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[i])
}

func requiredInt(fields []string, i int, name string) (int, error) {
	v, err := strconv.Atoi(field(fields, i))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	return v, nil
}

// optionalInt returns 0 for values that are missing or not integers.
func optionalInt(fields []string, i int) int {
	v, err := strconv.Atoi(field(fields, i))
	if err != nil {
		return 0
	}
	return v
}

func optionalFloat(fields []string, i int) *float64 {
	v, err := strconv.ParseFloat(field(fields, i), 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseZip keeps the five digit prefix of ZIP+4 codes and returns nil for anything that
// is not numeric.
func parseZip(s string) *int {
	s = strings.TrimSpace(s)
	if prefix, _, found := strings.Cut(s, "-"); found {
		s = prefix
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

var timeLayouts = []string{
	// Fractional seconds are accepted after the seconds field without being in the layout.
	time.DateTime,
	time.DateOnly,
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing time [%s]: %w", s, err)
}

func optionalTime(s string) *time.Time {
	t, err := parseTime(s)
	if err != nil {
		return nil
	}
	return &t
}

// readFile opens path and decodes it with read.
func readFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	v, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("reading %s: %w", path, err)
	}
	return v, nil
}

// writeFile creates path and encodes into it with write.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
