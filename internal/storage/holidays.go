package storage

import (
	"context"
	"database/sql"

	"github.com/guttosm/amlich/internal/domain/models"
	pq "github.com/lib/pq"
)

// HolidayRepository defines contract for DB operations on ingested holidays.
type HolidayRepository interface {
	InsertHolidaysBatch(holidays []models.Holiday) error
	ListHolidays(ctx context.Context) ([]models.Holiday, error)
	HasIngestionForSource(source string) (bool, error)
	UpsertIngestionLog(source string, rowCount int) error
	DeleteHolidaysBySource(source string) error
}

type holidayRepository struct {
	db *sql.DB
}

func NewHolidayRepository(db *sql.DB) HolidayRepository {
	return &holidayRepository{db: db}
}

// InsertHolidaysBatch inserts multiple holidays into DB in a single transaction.
func (r *holidayRepository) InsertHolidaysBatch(holidays []models.Holiday) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"holidays",
		"name",
		"name_english",
		"day",
		"month",
		"is_lunar",
		"description",
		"emoji",
		"source",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, h := range holidays {
		if _, err := stmt.Exec(
			h.Name,
			h.NameEnglish,
			h.Day,
			h.Month,
			h.IsLunar,
			h.Description,
			h.Emoji,
			h.Source,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ListHolidays returns every ingested holiday ordered by source and position.
func (r *holidayRepository) ListHolidays(ctx context.Context) ([]models.Holiday, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, name_english, day, month, is_lunar, description, emoji, source
		FROM holidays
		ORDER BY source, is_lunar, month, day, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Holiday
	for rows.Next() {
		var h models.Holiday
		if err := rows.Scan(&h.Name, &h.NameEnglish, &h.Day, &h.Month, &h.IsLunar, &h.Description, &h.Emoji, &h.Source); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// HasIngestionForSource checks if a file was already ingested.
func (r *holidayRepository) HasIngestionForSource(source string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE source = $1)`, source).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a source file.
func (r *holidayRepository) UpsertIngestionLog(source string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (source, row_count)
		VALUES ($1, $2)
		ON CONFLICT (source)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, source, rowCount)
	return err
}

// DeleteHolidaysBySource removes all holidays loaded from a given file.
func (r *holidayRepository) DeleteHolidaysBySource(source string) error {
	_, err := r.db.Exec(`DELETE FROM holidays WHERE source = $1`, source)
	return err
}
