package files

import (
	"fmt"
	"io"
	"time"

	"github.com/jbeshir/job-recommender/internal/domain"
)

// ReadWindows parses a window dates TSV with a header line and columns
// windowId, trainStart, trainStopTestStart, testStop.
func ReadWindows(r io.Reader) ([]domain.Window, error) {
	var windows []domain.Window
	err := scanTSV(r, true, func(_ int, f []string) error {
		id, err := requiredInt(f, 0, "window id")
		if err != nil {
			return err
		}

		var dates [3]time.Time
		for i := range dates {
			if dates[i], err = parseTime(field(f, i+1)); err != nil {
				return err
			}
		}

		windows = append(windows, domain.Window{
			ID:                 id,
			TrainStart:         dates[0],
			TrainStopTestStart: dates[1],
			TestStop:           dates[2],
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing window dates: %w", err)
	}
	return windows, nil
}

func ReadWindowsFile(path string) ([]domain.Window, error) {
	return readFile(path, ReadWindows)
}
