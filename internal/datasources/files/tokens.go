package files

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jbeshir/job-recommender/internal/domain"
)

// ReadTokenIndex parses `token\tindex` lines.
func ReadTokenIndex(r io.Reader) (domain.TokenIndex, error) {
	b := domain.NewTokenIndexBuilder()
	err := scanTSV(r, false, func(_ int, f []string) error {
		if len(f) != 2 {
			return fmt.Errorf("expected 2 fields, got %d: %w", len(f), domain.ErrInvalidArgument)
		}
		token, err := requiredInt(f, 0, "token")
		if err != nil {
			return err
		}
		idx, err := requiredInt(f, 1, "index")
		if err != nil {
			return err
		}
		return b.Set(token, idx)
	})
	if err != nil {
		return domain.TokenIndex{}, fmt.Errorf("parsing token index: %w", err)
	}
	return b.Build()
}

// WriteTokenIndex writes `token\tindex` lines in index order.
func WriteTokenIndex(w io.Writer, idx domain.TokenIndex) error {
	for i, token := range idx.Tokens() {
		if _, err := io.WriteString(w, strconv.Itoa(token)+"\t"+strconv.Itoa(i)+"\n"); err != nil {
			return err
		}
	}
	return nil
}

// TokenizeColumn assigns indices to the integer tokens of one column of a TSV with a
// header line, in order of first appearance.
func TokenizeColumn(r io.Reader, column int) (domain.TokenIndex, error) {
	b := domain.NewTokenIndexBuilder()
	err := scanTSV(r, true, func(_ int, f []string) error {
		token, err := requiredInt(f, column, fmt.Sprintf("column %d", column))
		if err != nil {
			return err
		}
		b.Add(token)
		return nil
	})
	if err != nil {
		return domain.TokenIndex{}, fmt.Errorf("tokenizing column %d: %w", column, err)
	}
	return b.Build()
}

func ReadTokenIndexFile(path string) (domain.TokenIndex, error) {
	return readFile(path, ReadTokenIndex)
}

func WriteTokenIndexFile(path string, idx domain.TokenIndex) error {
	return writeFile(path, func(w io.Writer) error { return WriteTokenIndex(w, idx) })
}

func TokenizeColumnFile(path string, column int) (domain.TokenIndex, error) {
	return readFile(path, func(r io.Reader) (domain.TokenIndex, error) { return TokenizeColumn(r, column) })
}
