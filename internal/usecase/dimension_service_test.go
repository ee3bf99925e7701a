package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/matchday-data/epl-warehouse/internal/domain/dimension"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
)

func TestDimensionServiceRunsSentinelsBeforeUpserts(t *testing.T) {
	dims := &fakeDims{upsertRows: map[dimension.Name]int64{dimension.Team: 20}}
	svc := NewDimensionService(dims, logging.NewNop())

	report, err := svc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("run all: %v", err)
	}
	if dims.sentinelCalls != 1 {
		t.Fatalf("expected 1 sentinel call, got %d", dims.sentinelCalls)
	}
	if len(report.Results) != len(dimension.All) {
		t.Fatalf("expected %d results, got %d", len(dimension.All), len(report.Results))
	}
	for i, name := range dimension.All {
		if dims.upsertOrder[i] != name {
			t.Fatalf("upsert order mismatch at %d: %s", i, dims.upsertOrder[i])
		}
	}
}

func TestDimensionServiceAbortsWhenSentinelsFail(t *testing.T) {
	dims := &fakeDims{sentinelErr: errors.New("dim tables missing")}
	svc := NewDimensionService(dims, logging.NewNop())

	if _, err := svc.RunAll(context.Background()); err == nil {
		t.Fatal("expected error when sentinels cannot be ensured")
	}
	if len(dims.upsertOrder) != 0 {
		t.Fatal("no upsert may run without sentinels in place")
	}
}

func TestDimensionServiceIsolatesPerDimensionFailures(t *testing.T) {
	dims := &fakeDims{
		upsertErrs: map[dimension.Name]error{dimension.Player: errors.New("bad staged name")},
		upsertRows: map[dimension.Name]int64{dimension.Team: 20, dimension.Date: 380},
	}
	svc := NewDimensionService(dims, logging.NewNop())

	report, err := svc.RunAll(context.Background())
	if err != nil {
		t.Fatalf("run all: %v", err)
	}
	if len(dims.upsertOrder) != len(dimension.All) {
		t.Fatalf("one failure must not stop the rest: %d upserts ran", len(dims.upsertOrder))
	}
	if report.FailedCount() != 1 {
		t.Fatalf("expected 1 failed dimension, got %d", report.FailedCount())
	}
	for _, res := range report.Results {
		if res.Dimension == dimension.Player {
			if res.Status != dimension.UpsertFailed || res.Message == "" {
				t.Fatalf("unexpected player result: %+v", res)
			}
		} else if res.Status != dimension.UpsertSuccess {
			t.Fatalf("unexpected result for %s: %+v", res.Dimension, res)
		}
	}
}
