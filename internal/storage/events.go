package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/amlich/internal/domain/models"
)

// ErrEventNotFound is returned when no event matches the requested id.
var ErrEventNotFound = errors.New("event not found")

// EventRepository persists user events.
type EventRepository interface {
	CreateEvent(ctx context.Context, e *models.Event) error
	UpdateEvent(ctx context.Context, e *models.Event) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	ListEvents(ctx context.Context) ([]models.Event, error)
}

type eventRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewEventRepository(db *sql.DB) EventRepository {
	return &eventRepository{db: db, now: time.Now}
}

const eventColumns = `id, title, notes, start_date, end_date, is_all_day, reminder_minutes_before,
		color, is_lunar_date_based, lunar_day, lunar_month, repeat_type, created_at, updated_at`

// CreateEvent assigns a new id and timestamps, then stores e.
func (r *eventRepository) CreateEvent(ctx context.Context, e *models.Event) error {
	now := r.now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO events (`+eventColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		e.ID, e.Title, e.Notes, e.StartDate, e.EndDate, e.IsAllDay, nullInt(e.ReminderMinutesBefore),
		e.Color, e.IsLunarDateBased, nullInt(e.LunarDay), nullInt(e.LunarMonth), string(e.RepeatType),
		e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// UpdateEvent overwrites the stored event with e and bumps UpdatedAt.
func (r *eventRepository) UpdateEvent(ctx context.Context, e *models.Event) error {
	e.UpdatedAt = r.now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE events SET title = $2, notes = $3, start_date = $4, end_date = $5, is_all_day = $6,
			reminder_minutes_before = $7, color = $8, is_lunar_date_based = $9, lunar_day = $10,
			lunar_month = $11, repeat_type = $12, updated_at = $13
		WHERE id = $1
	`,
		e.ID, e.Title, e.Notes, e.StartDate, e.EndDate, e.IsAllDay, nullInt(e.ReminderMinutesBefore),
		e.Color, e.IsLunarDateBased, nullInt(e.LunarDay), nullInt(e.LunarMonth), string(e.RepeatType),
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// GetEvent loads a single event.
func (r *eventRepository) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEvent removes an event.
func (r *eventRepository) DeleteEvent(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

// ListEvents returns every event ordered by start date.
func (r *eventRepository) ListEvents(ctx context.Context) ([]models.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM events ORDER BY start_date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*models.Event, error) {
	var (
		e                    models.Event
		reminder, lday, lmon sql.NullInt64
		repeat               string
	)
	if err := s.Scan(
		&e.ID, &e.Title, &e.Notes, &e.StartDate, &e.EndDate, &e.IsAllDay, &reminder,
		&e.Color, &e.IsLunarDateBased, &lday, &lmon, &repeat, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	e.ReminderMinutesBefore = intPtr(reminder)
	e.LunarDay = intPtr(lday)
	e.LunarMonth = intPtr(lmon)
	e.RepeatType = models.RepeatType(repeat)
	return &e, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrEventNotFound
	}
	return nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}
