package files

import (
	"fmt"

	"github.com/jbeshir/job-recommender/internal/domain"
)

// ReadSVDFactors loads the first rank singular values from singularValuesPath and the
// matching singular vectors from prefix.U.<i> (jobs) and prefix.V.<i> (users).
func ReadSVDFactors(prefix, singularValuesPath string, rank int) (domain.SVDFactors, error) {
	if rank <= 0 {
		return domain.SVDFactors{}, fmt.Errorf("rank %d: %w", rank, domain.ErrInvalidArgument)
	}

	values, err := ReadVectorFile(singularValuesPath)
	if err != nil {
		return domain.SVDFactors{}, fmt.Errorf("reading singular values: %w", err)
	}
	if len(values) < rank {
		return domain.SVDFactors{}, fmt.Errorf("%d singular values available for rank %d: %w",
			len(values), rank, domain.ErrInvalidArgument)
	}

	f := domain.SVDFactors{
		SingularValues: values[:rank],
		JobVectors:     make([][]float64, rank),
		UserVectors:    make([][]float64, rank),
	}
	for i := range rank {
		if f.JobVectors[i], err = ReadVectorFile(fmt.Sprintf("%s.U.%d", prefix, i)); err != nil {
			return domain.SVDFactors{}, fmt.Errorf("reading job singular vector %d: %w", i, err)
		}
		if f.UserVectors[i], err = ReadVectorFile(fmt.Sprintf("%s.V.%d", prefix, i)); err != nil {
			return domain.SVDFactors{}, fmt.Errorf("reading user singular vector %d: %w", i, err)
		}
	}
	return f, nil
}
