package files

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jbeshir/job-recommender/internal/domain"
)

// ReadGeoRecords parses a postal code table with a header line and quoted records of
// zip, state abbreviation, latitude, longitude, city and state name. Records whose zip
// is not numeric are skipped.
func ReadGeoRecords(r io.Reader) ([]domain.GeoRecord, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading zip header: %w", err)
	}

	var records []domain.GeoRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading zip record: %w", err)
		}
		if len(row) < 5 {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: expected at least 5 fields, got %d: %w",
				line, len(row), domain.ErrInvalidArgument)
		}

		zip, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("zip %d latitude: %w", zip, err)
		}
		long, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return nil, fmt.Errorf("zip %d longitude: %w", zip, err)
		}

		records = append(records, domain.GeoRecord{
			Zip:        zip,
			State:      strings.TrimSpace(row[1]),
			City:       strings.TrimSpace(row[4]),
			Coordinate: domain.Coordinate{Lat: lat, Long: long},
		})
	}
	return records, nil
}

func ReadGeoRecordsFile(path string) ([]domain.GeoRecord, error) {
	return readFile(path, ReadGeoRecords)
}
