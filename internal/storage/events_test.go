package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/guttosm/amlich/internal/domain/models"
)

var eventCols = []string{
	"id", "title", "notes", "start_date", "end_date", "is_all_day", "reminder_minutes_before",
	"color", "is_lunar_date_based", "lunar_day", "lunar_month", "repeat_type", "created_at", "updated_at",
}

var fixedNow = time.Date(2024, 8, 1, 12, 0, 0, 0, time.UTC)

func newMockEventRepo(t *testing.T) (*eventRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	repo := &eventRepository{db: db, now: func() time.Time { return fixedNow }}
	return repo, mock, func() { _ = db.Close() }
}

func TestCreateEvent_SQLMock(t *testing.T) {
	repo, mock, done := newMockEventRepo(t)
	defer done()

	day, month := 15, 7
	e := &models.Event{
		Title:            "Cúng rằm tháng Bảy",
		StartDate:        fixedNow,
		EndDate:          fixedNow.Add(time.Hour),
		Color:            "red",
		IsLunarDateBased: true,
		LunarDay:         &day,
		LunarMonth:       &month,
		RepeatType:       models.RepeatLunarYearly,
	}

	mock.ExpectExec(`INSERT INTO events`).
		WithArgs(sqlmock.AnyArg(), e.Title, "", e.StartDate, e.EndDate, false, nil,
			"red", true, int64(15), int64(7), "lunar_yearly", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CreateEvent(context.Background(), e); err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", e.ID)
	}
	if !e.CreatedAt.Equal(fixedNow) || !e.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("timestamps not set: %+v", e)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetEvent_SQLMock(t *testing.T) {
	repo, mock, done := newMockEventRepo(t)
	defer done()

	id := uuid.NewString()
	mock.ExpectQuery(`SELECT .* FROM events WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(eventCols).AddRow(
			id, "Giỗ", "", fixedNow, fixedNow, true, int64(30),
			"blue", true, int64(10), nil, "lunar_monthly", fixedNow, fixedNow,
		))

	e, err := repo.GetEvent(context.Background(), id)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if e.ID != id || e.ReminderMinutesBefore == nil || *e.ReminderMinutesBefore != 30 {
		t.Fatalf("unexpected event %+v", e)
	}
	if e.LunarDay == nil || *e.LunarDay != 10 || e.LunarMonth != nil {
		t.Fatalf("nullable lunar fields not mapped: %+v", e)
	}
	if e.RepeatType != models.RepeatLunarMonthly {
		t.Fatalf("repeat type = %q", e.RepeatType)
	}
}

func TestGetEvent_NotFound(t *testing.T) {
	repo, mock, done := newMockEventRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT .* FROM events WHERE id = \$1`).WithArgs("missing").WillReturnError(sql.ErrNoRows)
	if _, err := repo.GetEvent(context.Background(), "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestDeleteEvent_SQLMock(t *testing.T) {
	repo, mock, done := newMockEventRepo(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1")).WithArgs("b").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteEvent(context.Background(), "a"); err != nil {
		t.Fatalf("DeleteEvent: %v", err)
	}
	if err := repo.DeleteEvent(context.Background(), "b"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestUpdateEvent_SQLMock(t *testing.T) {
	repo, mock, done := newMockEventRepo(t)
	defer done()

	e := &models.Event{ID: "a", Title: "t", Color: "teal", RepeatType: models.RepeatWeekly}
	mock.ExpectExec(`UPDATE events SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	if err := repo.UpdateEvent(context.Background(), e); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if !e.UpdatedAt.Equal(fixedNow) {
		t.Fatalf("UpdatedAt not bumped")
	}

	mock.ExpectExec(`UPDATE events SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.UpdateEvent(context.Background(), e); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestListEvents_SQLMock(t *testing.T) {
	repo, mock, done := newMockEventRepo(t)
	defer done()

	mock.ExpectQuery(`SELECT .* FROM events ORDER BY start_date, id`).
		WillReturnRows(sqlmock.NewRows(eventCols).
			AddRow("a", "A", "", fixedNow, fixedNow, false, nil, "red", false, nil, nil, "never", fixedNow, fixedNow).
			AddRow("b", "B", "", fixedNow, fixedNow, false, nil, "red", false, nil, nil, "daily", fixedNow, fixedNow))

	got, err := repo.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(got) != 2 || got[0].ID != "a" || got[1].RepeatType != models.RepeatDaily {
		t.Fatalf("unexpected events %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestNewEventRepository_Construct(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func() { _ = db.Close() }()
	if NewEventRepository(db) == nil {
		t.Fatalf("expected non-nil repository")
	}
}
