package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchday-data/epl-warehouse/internal/domain/manifest"
	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	"github.com/matchday-data/epl-warehouse/internal/infrastructure/extract/mockstats"
	"github.com/matchday-data/epl-warehouse/internal/infrastructure/extract/refsheet"
	"github.com/matchday-data/epl-warehouse/internal/infrastructure/extract/seasoncsv"
	"github.com/matchday-data/epl-warehouse/internal/infrastructure/extract/statsbomb"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
)

// TeamsAPI is the football-data client surface the staging phase needs.
type TeamsAPI interface {
	FetchTeamRows(ctx context.Context, season int) (teams []staging.TeamRow, players []staging.PlayerRow, endpoint string, err error)
}

type StagingConfig struct {
	SeasonCSVDir    string
	EventsDir       string
	MatchesDir      string
	RefereeXLSXPath string
	RefereeSheet    string

	FootballDataEnabled bool
	SeasonStart         int

	Workers       int
	MockStatsSeed int64
	MockStatsRows int
}

type StageTaskResult struct {
	Source  manifest.Source
	Key     string
	Status  string
	Rows    int64
	Message string
}

type StageReport struct {
	Tasks        []StageTaskResult
	SuccessCount int
	SkippedCount int
	FailedCount  int
}

func (r *StageReport) add(task StageTaskResult) {
	r.Tasks = append(r.Tasks, task)
	switch task.Status {
	case StatusSuccess:
		r.SuccessCount++
	case StatusSkipped:
		r.SkippedCount++
	default:
		r.FailedCount++
	}
}

// RowsStaged sums staged row counts over all successful tasks.
func (r *StageReport) RowsStaged() int64 {
	var total int64
	for _, task := range r.Tasks {
		if task.Status == StatusSuccess {
			total += task.Rows
		}
	}
	return total
}

type StagingService struct {
	staging   staging.Repository
	manifests manifest.Tracker
	teamsAPI  TeamsAPI
	cfg       StagingConfig
	logger    *logging.Logger
	now       func() time.Time
}

func NewStagingService(
	stagingRepo staging.Repository,
	manifests manifest.Tracker,
	teamsAPI TeamsAPI,
	cfg StagingConfig,
	logger *logging.Logger,
) *StagingService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return &StagingService{
		staging:   stagingRepo,
		manifests: manifests,
		teamsAPI:  teamsAPI,
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// Run stages every configured source. Individual source failures become
// failed tasks in the report; only a completely unusable setup returns an
// error.
func (s *StagingService) Run(ctx context.Context) (StageReport, error) {
	var report StageReport

	s.stageSeasonCSVs(ctx, &report)
	s.stageTeamsAPI(ctx, &report)
	s.stageRefereeSheet(ctx, &report)
	s.stageMatchFiles(ctx, &report)
	if err := s.stageEventFiles(ctx, &report); err != nil {
		return report, err
	}
	s.stageMockStats(ctx, &report)

	return report, nil
}

func (s *StagingService) stageSeasonCSVs(ctx context.Context, report *StageReport) {
	files, err := listFiles(s.cfg.SeasonCSVDir, ".csv")
	if err != nil {
		report.add(StageTaskResult{Source: manifest.SourceFile, Key: s.cfg.SeasonCSVDir, Status: StatusFailed, Message: err.Error()})
		return
	}

	for _, path := range files {
		fileName := filepath.Base(path)
		report.add(s.stageOne(ctx, manifest.SourceFile, fileName, func() (int64, error) {
			f, err := os.Open(path)
			if err != nil {
				return 0, fmt.Errorf("open csv: %w", err)
			}
			defer func() {
				_ = f.Close()
			}()

			rows, skipped, err := seasoncsv.Parse(f, fileName)
			if err != nil {
				return 0, err
			}
			if skipped > 0 {
				s.logger.Warn("season csv rows skipped", "file", fileName, "skipped", skipped)
			}
			return s.staging.InsertMatchRows(ctx, rows)
		}))
	}
}

func (s *StagingService) stageTeamsAPI(ctx context.Context, report *StageReport) {
	if !s.cfg.FootballDataEnabled || s.teamsAPI == nil {
		return
	}

	currentYear := s.now().Year()
	for season := s.cfg.SeasonStart; season <= currentYear; season++ {
		key := "PL_teams_" + strconv.Itoa(season)
		report.add(s.stageOne(ctx, manifest.SourceAPI, key, func() (int64, error) {
			teamRows, playerRows, _, err := s.teamsAPI.FetchTeamRows(ctx, season)
			if err != nil {
				return 0, err
			}

			teamCount, err := s.staging.InsertTeamRows(ctx, teamRows)
			if err != nil {
				return 0, err
			}
			playerCount, err := s.staging.InsertPlayerRows(ctx, playerRows)
			if err != nil {
				return 0, err
			}
			return teamCount + playerCount, nil
		}))
	}
}

func (s *StagingService) stageRefereeSheet(ctx context.Context, report *StageReport) {
	if s.cfg.RefereeXLSXPath == "" {
		return
	}
	if _, err := os.Stat(s.cfg.RefereeXLSXPath); err != nil {
		s.logger.Warn("referee workbook not found, skipping", "path", s.cfg.RefereeXLSXPath)
		return
	}

	key := filepath.Base(s.cfg.RefereeXLSXPath) + "#" + s.cfg.RefereeSheet
	report.add(s.stageOne(ctx, manifest.SourceExcel, key, func() (int64, error) {
		rows, skipped, err := refsheet.ReadFile(s.cfg.RefereeXLSXPath, s.cfg.RefereeSheet)
		if err != nil {
			return 0, err
		}
		if skipped > 0 {
			s.logger.Warn("referee sheet rows skipped", "sheet", s.cfg.RefereeSheet, "skipped", skipped)
		}
		return s.staging.InsertRefereeRows(ctx, rows)
	}))
}

func (s *StagingService) stageMatchFiles(ctx context.Context, report *StageReport) {
	files, err := listFiles(s.cfg.MatchesDir, ".json")
	if err != nil {
		s.logger.Warn("statsbomb matches dir unavailable", "dir", s.cfg.MatchesDir, "error", err)
		return
	}

	for _, path := range files {
		key := "matches_" + filepath.Base(path)
		report.add(s.stageOne(ctx, manifest.SourceEvents, key, func() (int64, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return 0, fmt.Errorf("read matches file: %w", err)
			}
			rows, err := statsbomb.ParseMatches(data)
			if err != nil {
				return 0, err
			}
			return s.staging.InsertSBMatchRows(ctx, rows)
		}))
	}
}

// stageEventFiles runs the per-match event files through a bounded worker
// pool. Each file's staging insert and manifest entries happen inside one
// worker, so ordering per file is preserved.
func (s *StagingService) stageEventFiles(ctx context.Context, report *StageReport) error {
	files, err := listFiles(s.cfg.EventsDir, ".json")
	if err != nil {
		s.logger.Warn("statsbomb events dir unavailable", "dir", s.cfg.EventsDir, "error", err)
		return nil
	}
	if len(files) == 0 {
		return nil
	}

	results := make(chan StageTaskResult, len(files))

	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return fmt.Errorf("create staging worker pool: %w", err)
	}
	defer pool.Release()

	var skippedRows atomic.Int64
	var workers sync.WaitGroup
	for _, path := range files {
		path := path
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			fileName := filepath.Base(path)
			results <- s.stageOne(ctx, manifest.SourceEvents, fileName, func() (int64, error) {
				matchID, err := statsbomb.MatchIDFromFileName(fileName)
				if err != nil {
					return 0, err
				}
				data, err := os.ReadFile(path)
				if err != nil {
					return 0, fmt.Errorf("read events file: %w", err)
				}
				rows, skipped, err := statsbomb.ParseEvents(data, matchID)
				if err != nil {
					return 0, err
				}
				skippedRows.Add(int64(skipped))
				return s.staging.InsertEventRows(ctx, rows)
			})
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit staging task: %w", err)
		}
	}

	workers.Wait()
	close(results)

	tasks := make([]StageTaskResult, 0, len(files))
	for task := range results {
		tasks = append(tasks, task)
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].Key < tasks[j].Key })
	for _, task := range tasks {
		report.add(task)
	}

	if n := skippedRows.Load(); n > 0 {
		s.logger.Warn("statsbomb events skipped during parse", "skipped", n)
	}
	return nil
}

func (s *StagingService) stageMockStats(ctx context.Context, report *StageReport) {
	if s.cfg.MockStatsRows == 0 {
		return
	}

	seasons := s.seasonNames()
	key := mockstats.SourceKey(s.cfg.MockStatsSeed, seasons, s.cfg.MockStatsRows)
	report.add(s.stageOne(ctx, manifest.SourceMock, key, func() (int64, error) {
		rows := mockstats.Generate(s.cfg.MockStatsSeed, seasons, s.cfg.MockStatsRows)
		return s.staging.InsertPlayerStatRows(ctx, rows)
	}))
}

// stageOne wraps one staging unit with manifest gating: skip if a SUCCESS
// entry exists, otherwise record IN_PROGRESS, run, and record the outcome.
// Manifest write failures are logged and swallowed; they never undo a staging
// write that already happened.
func (s *StagingService) stageOne(ctx context.Context, source manifest.Source, key string, load func() (int64, error)) StageTaskResult {
	task := StageTaskResult{Source: source, Key: key}

	processed, err := s.manifests.IsProcessed(ctx, source, key)
	if err != nil {
		task.Status = StatusFailed
		task.Message = fmt.Sprintf("check manifest: %v", err)
		return task
	}
	if processed {
		task.Status = StatusSkipped
		task.Message = "already processed"
		return task
	}

	start := s.now()
	s.recordManifest(ctx, source, manifest.Entry{
		SourceKey:     key,
		LoadStartTime: start,
		Status:        manifest.StatusInProgress,
	})

	rows, err := load()
	end := s.now()
	if err != nil {
		task.Status = StatusFailed
		task.Message = err.Error()
		s.recordManifest(ctx, source, manifest.Entry{
			SourceKey:     key,
			LoadStartTime: start,
			LoadEndTime:   &end,
			Status:        manifest.StatusFailed,
			ErrorMessage:  err.Error(),
		})
		return task
	}

	task.Status = StatusSuccess
	task.Rows = rows
	s.recordManifest(ctx, source, manifest.Entry{
		SourceKey:     key,
		LoadStartTime: start,
		LoadEndTime:   &end,
		Status:        manifest.StatusSuccess,
		RowsProcessed: rows,
	})
	return task
}

func (s *StagingService) recordManifest(ctx context.Context, source manifest.Source, entry manifest.Entry) {
	if err := s.manifests.Record(ctx, source, entry); err != nil {
		s.logger.Warn("manifest record failed",
			"source", string(source), "key", entry.SourceKey, "status", entry.Status, "error", err)
	}
}

func (s *StagingService) seasonNames() []string {
	currentYear := s.now().Year()
	var out []string
	for year := s.cfg.SeasonStart; year <= currentYear; year++ {
		out = append(out, fmt.Sprintf("%d/%d", year, year+1))
	}
	return out
}

func listFiles(dir, ext string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("directory is not configured")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			out = append(out, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
