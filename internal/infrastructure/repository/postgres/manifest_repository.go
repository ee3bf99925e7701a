package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchday-data/epl-warehouse/internal/domain/manifest"
	qb "github.com/matchday-data/epl-warehouse/internal/platform/querybuilder"
)

var manifestTables = map[manifest.Source]string{
	manifest.SourceFile:   "etl_file_manifest",
	manifest.SourceAPI:    "etl_api_manifest",
	manifest.SourceExcel:  "etl_excel_manifest",
	manifest.SourceEvents: "etl_events_manifest",
	manifest.SourceMock:   "etl_mock_manifest",
}

type ManifestRepository struct {
	db *sqlx.DB
}

func NewManifestRepository(db *sqlx.DB) *ManifestRepository {
	return &ManifestRepository{db: db}
}

func (r *ManifestRepository) IsProcessed(ctx context.Context, source manifest.Source, sourceKey string) (bool, error) {
	table, err := manifestTable(source)
	if err != nil {
		return false, err
	}

	query, args, err := qb.Select("1").
		From(table).
		Where(qb.Eq("source_key", sourceKey), qb.Eq("status", manifest.StatusSuccess)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build manifest lookup query: %w", err)
	}

	var one int
	if err := r.db.GetContext(ctx, &one, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check manifest %s key=%s: %w", table, sourceKey, err)
	}

	return true, nil
}

func (r *ManifestRepository) Record(ctx context.Context, source manifest.Source, entry manifest.Entry) error {
	table, err := manifestTable(source)
	if err != nil {
		return err
	}

	insertModel := manifestInsertModel{
		SourceKey:     entry.SourceKey,
		LoadStartTime: entry.LoadStartTime,
		LoadEndTime:   nullableTime(entry.LoadEndTime),
		Status:        entry.Status,
		RowsProcessed: entry.RowsProcessed,
		ErrorMessage:  nullableString(entry.ErrorMessage),
	}

	query, args, err := qb.InsertModel(table, insertModel, "")
	if err != nil {
		return fmt.Errorf("build manifest insert query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("record manifest %s key=%s: %w", table, entry.SourceKey, err)
	}

	return nil
}

func manifestTable(source manifest.Source) (string, error) {
	table, ok := manifestTables[source]
	if !ok {
		return "", fmt.Errorf("unknown manifest source %q", source)
	}
	return table, nil
}

type manifestInsertModel struct {
	SourceKey     string     `db:"source_key"`
	LoadStartTime time.Time  `db:"load_start_time"`
	LoadEndTime   *time.Time `db:"load_end_time"`
	Status        string     `db:"status"`
	RowsProcessed int64      `db:"rows_processed"`
	ErrorMessage  *string    `db:"error_message"`
}
