package usecase

import (
	"context"
	"fmt"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
)

type CleaningReport struct {
	RowsCleaned map[string]int64
}

func (r CleaningReport) Total() int64 {
	var total int64
	for _, n := range r.RowsCleaned {
		total += n
	}
	return total
}

type CleaningService struct {
	staging staging.Repository
	logger  *logging.Logger
}

func NewCleaningService(stagingRepo staging.Repository, logger *logging.Logger) *CleaningService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CleaningService{staging: stagingRepo, logger: logger}
}

// Run normalizes staged names in place. The phase is re-runnable; rows
// already marked cleaned are untouched.
func (s *CleaningService) Run(ctx context.Context) (CleaningReport, error) {
	counts, err := s.staging.CleanNames(ctx)
	if err != nil {
		return CleaningReport{}, fmt.Errorf("clean staging names: %w", err)
	}

	for table, n := range counts {
		s.logger.Info("staging table cleaned", "table", table, "rows", n)
	}
	return CleaningReport{RowsCleaned: counts}, nil
}
