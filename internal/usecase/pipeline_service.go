package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchday-data/epl-warehouse/internal/domain/etlrun"
	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
)

type PhaseResult struct {
	Phase         string
	Status        string
	RowsProcessed int64
	Message       string
	Duration      time.Duration
}

type PipelineReport struct {
	Phases []PhaseResult
}

func (r *PipelineReport) add(result PhaseResult) {
	r.Phases = append(r.Phases, result)
}

// Failed reports whether any phase ended FAILED.
func (r *PipelineReport) Failed() bool {
	for _, phase := range r.Phases {
		if phase.Status == etlrun.StatusFailed {
			return true
		}
	}
	return false
}

// PipelineService runs the warehouse phases in their fixed order. Extraction,
// cleaning and mapping problems degrade the run; a fact load failure aborts
// it, and cleanup only truncates staging after the facts have landed.
type PipelineService struct {
	stagingSvc  *StagingService
	cleaningSvc *CleaningService
	dimSvc      *DimensionService
	mappingSvc  *MappingService
	factSvc     *FactService
	stagingRepo staging.Repository
	runLog      etlrun.Recorder
	jobName     string
	logger      *logging.Logger
	now         func() time.Time
}

func NewPipelineService(
	stagingSvc *StagingService,
	cleaningSvc *CleaningService,
	dimSvc *DimensionService,
	mappingSvc *MappingService,
	factSvc *FactService,
	stagingRepo staging.Repository,
	runLog etlrun.Recorder,
	jobName string,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	if jobName == "" {
		jobName = "epl_warehouse_etl"
	}
	return &PipelineService{
		stagingSvc:  stagingSvc,
		cleaningSvc: cleaningSvc,
		dimSvc:      dimSvc,
		mappingSvc:  mappingSvc,
		factSvc:     factSvc,
		stagingRepo: stagingRepo,
		runLog:      runLog,
		jobName:     jobName,
		logger:      logger,
		now:         time.Now,
	}
}

// phaseOutcome is what one phase function reports back to the runner.
type phaseOutcome struct {
	status  string
	rows    int64
	message string
	err     error
}

// Run executes every phase. The returned report always covers the phases that
// ran; the error is non-nil only when the run aborted early.
func (s *PipelineService) Run(ctx context.Context) (PipelineReport, error) {
	var report PipelineReport

	s.runPhase(ctx, &report, etlrun.PhaseExtract, s.phaseExtract)
	s.runPhase(ctx, &report, etlrun.PhaseClean, s.phaseClean)
	s.runPhase(ctx, &report, etlrun.PhaseUpsertDimensions, s.phaseDimensions)

	if !s.runPhase(ctx, &report, etlrun.PhaseLoadFactMatch, s.phaseFactMatch) {
		return report, fmt.Errorf("fact_match load failed, run aborted")
	}

	s.runPhase(ctx, &report, etlrun.PhasePopulateMappings, s.phaseMappings)

	if !s.runPhase(ctx, &report, etlrun.PhaseLoadFacts, s.phaseFacts) {
		return report, fmt.Errorf("fact load failed, run aborted")
	}

	s.runPhase(ctx, &report, etlrun.PhaseCleanup, s.phaseCleanup)

	return report, nil
}

// runPhase wraps a phase with run-log bookkeeping. It returns false only when
// the phase ended FAILED, which the caller may treat as fatal.
func (s *PipelineService) runPhase(ctx context.Context, report *PipelineReport, phase string, fn func(ctx context.Context) phaseOutcome) bool {
	start := s.now()
	s.record(ctx, etlrun.Entry{
		JobName:   s.jobName,
		PhaseStep: phase,
		Status:    etlrun.StatusStarted,
		StartTime: start,
	})

	outcome := fn(ctx)
	end := s.now()

	status := outcome.status
	message := outcome.message
	if outcome.err != nil {
		status = etlrun.StatusFailed
		message = outcome.err.Error()
		s.logger.Error("pipeline phase failed", "phase", phase, "error", outcome.err)
	} else {
		s.logger.Info("pipeline phase finished",
			"phase", phase, "status", status, "rows", outcome.rows, "duration", end.Sub(start))
	}

	s.record(ctx, etlrun.Entry{
		JobName:       s.jobName,
		PhaseStep:     phase,
		Status:        status,
		StartTime:     start,
		EndTime:       &end,
		RowsProcessed: outcome.rows,
		Message:       message,
	})

	report.add(PhaseResult{
		Phase:         phase,
		Status:        status,
		RowsProcessed: outcome.rows,
		Message:       message,
		Duration:      end.Sub(start),
	})
	return status != etlrun.StatusFailed
}

func (s *PipelineService) phaseExtract(ctx context.Context) phaseOutcome {
	stageReport, err := s.stagingSvc.Run(ctx)
	if err != nil {
		return phaseOutcome{err: err}
	}

	status := etlrun.StatusSuccess
	var message string
	if stageReport.FailedCount > 0 {
		status = etlrun.StatusPartial
		message = fmt.Sprintf("%d source(s) failed to stage", stageReport.FailedCount)
	}
	return phaseOutcome{status: status, rows: stageReport.RowsStaged(), message: message}
}

func (s *PipelineService) phaseClean(ctx context.Context) phaseOutcome {
	cleanReport, err := s.cleaningSvc.Run(ctx)
	if err != nil {
		return phaseOutcome{err: err}
	}
	return phaseOutcome{status: etlrun.StatusSuccess, rows: cleanReport.Total()}
}

func (s *PipelineService) phaseDimensions(ctx context.Context) phaseOutcome {
	dimReport, err := s.dimSvc.RunAll(ctx)
	if err != nil {
		return phaseOutcome{err: err}
	}

	var rows int64
	for _, res := range dimReport.Results {
		rows += res.RowsAffected
	}

	status := etlrun.StatusSuccess
	var message string
	if failed := dimReport.FailedCount(); failed > 0 {
		status = etlrun.StatusPartial
		message = fmt.Sprintf("%d dimension(s) failed", failed)
	}
	return phaseOutcome{status: status, rows: rows, message: message}
}

func (s *PipelineService) phaseFactMatch(ctx context.Context) phaseOutcome {
	factReport, err := s.factSvc.LoadMatches(ctx)
	if err != nil {
		return phaseOutcome{err: err}
	}

	status := etlrun.StatusSuccess
	var message string
	if factReport.FailedCount > 0 {
		status = etlrun.StatusPartial
		message = fmt.Sprintf("%d match file(s) failed to load", factReport.FailedCount)
	}
	return phaseOutcome{status: status, rows: factReport.RowsLoaded(), message: message}
}

func (s *PipelineService) phaseMappings(ctx context.Context) phaseOutcome {
	mapReport, err := s.mappingSvc.Run(ctx)
	if err != nil {
		return phaseOutcome{err: err}
	}

	status := etlrun.StatusSuccess
	var message string
	if mapReport.TeamsUnresolved > 0 || mapReport.MatchesUnmatched > 0 {
		status = etlrun.StatusPartial
		message = fmt.Sprintf("%d team(s) and %d match(es) unresolved",
			mapReport.TeamsUnresolved, mapReport.MatchesUnmatched)
	}
	rows := int64(mapReport.TeamsResolved + mapReport.MatchesResolved)
	return phaseOutcome{status: status, rows: rows, message: message}
}

func (s *PipelineService) phaseFacts(ctx context.Context) phaseOutcome {
	statsReport, err := s.factSvc.LoadPlayerStats(ctx)
	if err != nil {
		return phaseOutcome{err: err}
	}
	eventsReport, err := s.factSvc.LoadEvents(ctx)
	if err != nil {
		return phaseOutcome{err: err}
	}

	rows := statsReport.RowsLoaded() + eventsReport.RowsLoaded()
	failed := statsReport.FailedCount + eventsReport.FailedCount
	if failed > 0 {
		return phaseOutcome{err: fmt.Errorf("%d fact unit(s) failed to load", failed)}
	}
	return phaseOutcome{status: etlrun.StatusSuccess, rows: rows}
}

func (s *PipelineService) phaseCleanup(ctx context.Context) phaseOutcome {
	if err := s.stagingRepo.TruncateForCleanup(ctx); err != nil {
		return phaseOutcome{err: err}
	}
	return phaseOutcome{status: etlrun.StatusSuccess}
}

func (s *PipelineService) record(ctx context.Context, entry etlrun.Entry) {
	if err := s.runLog.Append(ctx, entry); err != nil {
		s.logger.Warn("etl_log append failed",
			"phase", entry.PhaseStep, "status", entry.Status, "error", err)
	}
}
