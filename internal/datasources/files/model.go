package files

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jbeshir/job-recommender/internal/domain"
)

// ReadScoringModelSnapshot decodes a fitted scoring model saved by WriteScoringModelSnapshot.
func ReadScoringModelSnapshot(r io.Reader) (domain.ScoringModelSnapshot, error) {
	var snap domain.ScoringModelSnapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return domain.ScoringModelSnapshot{}, fmt.Errorf("decoding scoring model: %w", err)
	}
	return snap, nil
}

func WriteScoringModelSnapshot(w io.Writer, snap domain.ScoringModelSnapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding scoring model: %w", err)
	}
	return nil
}

func ReadScoringModelSnapshotFile(path string) (domain.ScoringModelSnapshot, error) {
	return readFile(path, ReadScoringModelSnapshot)
}

func WriteScoringModelSnapshotFile(path string, snap domain.ScoringModelSnapshot) error {
	return writeFile(path, func(w io.Writer) error { return WriteScoringModelSnapshot(w, snap) })
}
