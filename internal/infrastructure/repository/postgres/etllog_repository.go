package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchday-data/epl-warehouse/internal/domain/etlrun"
	qb "github.com/matchday-data/epl-warehouse/internal/platform/querybuilder"
)

type ETLLogRepository struct {
	db *sqlx.DB
}

func NewETLLogRepository(db *sqlx.DB) *ETLLogRepository {
	return &ETLLogRepository{db: db}
}

func (r *ETLLogRepository) Append(ctx context.Context, entry etlrun.Entry) error {
	insertModel := etlLogInsertModel{
		JobName:       entry.JobName,
		PhaseStep:     entry.PhaseStep,
		Status:        entry.Status,
		StartTime:     entry.StartTime,
		EndTime:       nullableTime(entry.EndTime),
		RowsProcessed: entry.RowsProcessed,
		Message:       nullableString(entry.Message),
	}

	query, args, err := qb.InsertModel("etl_log", insertModel, "")
	if err != nil {
		return fmt.Errorf("build etl_log insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append etl_log %s/%s: %w", entry.JobName, entry.PhaseStep, err)
	}

	return nil
}

type etlLogInsertModel struct {
	JobName       string     `db:"job_name"`
	PhaseStep     string     `db:"phase_step"`
	Status        string     `db:"status"`
	StartTime     time.Time  `db:"start_time"`
	EndTime       *time.Time `db:"end_time"`
	RowsProcessed int64      `db:"rows_processed"`
	Message       *string    `db:"message"`
}
