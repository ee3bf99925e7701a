package usecase

import (
	"context"
	"fmt"

	"github.com/matchday-data/epl-warehouse/internal/domain/dimension"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
)

type DimensionService struct {
	dims   dimension.Repository
	logger *logging.Logger
}

func NewDimensionService(dims dimension.Repository, logger *logging.Logger) *DimensionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DimensionService{dims: dims, logger: logger}
}

// EnsureSentinels guarantees the UNKNOWN rows exist. It runs before any
// upsert and does not depend on staging contents.
func (s *DimensionService) EnsureSentinels(ctx context.Context) error {
	if err := s.dims.EnsureSentinels(ctx); err != nil {
		return fmt.Errorf("ensure dimension sentinels: %w", err)
	}
	return nil
}

// RunAll upserts every dimension, isolating failures: one dimension's error
// is recorded in the report and the remaining dimensions still run.
func (s *DimensionService) RunAll(ctx context.Context) (dimension.Report, error) {
	if err := s.EnsureSentinels(ctx); err != nil {
		return dimension.Report{}, err
	}

	var report dimension.Report
	for _, name := range dimension.All {
		rows, err := s.dims.Upsert(ctx, name)
		if err != nil {
			s.logger.Error("dimension upsert failed", "dimension", string(name), "error", err)
			report.Add(dimension.UpsertResult{
				Dimension: name,
				Status:    dimension.UpsertFailed,
				Message:   err.Error(),
			})
			continue
		}

		s.logger.Info("dimension upserted", "dimension", string(name), "rows", rows)
		report.Add(dimension.UpsertResult{
			Dimension:    name,
			Status:       dimension.UpsertSuccess,
			RowsAffected: rows,
		})
	}

	return report, nil
}
