//go:build integration

package api_test

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/guttosm/amlich/config"
	"github.com/guttosm/amlich/internal/app"
	"github.com/guttosm/amlich/internal/pgtest"
)

func seedHoliday(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO holidays (name, name_english, day, month, is_lunar, description, emoji, source)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		"Ngày Nhà giáo Việt Nam", "Vietnamese Teachers' Day", 20, 11, false, "", "", "seed_HOLIDAYS.csv")
	if err != nil {
		t.Fatalf("seed holiday: %v", err)
	}
}

func pointConfigAt(pg *pgtest.DB) {
	config.AppConfig.Server.RateLimit = 1000
	config.AppConfig.Server.RateWindow = time.Minute
	config.AppConfig.Lunar.TimeZone = 7
	config.AppConfig.Lunar.CacheSize = 256
	user, password, name := pgtest.Credentials()
	config.AppConfig.Postgres.Host = pg.Host
	config.AppConfig.Postgres.Port = pg.Port.Int()
	config.AppConfig.Postgres.User = user
	config.AppConfig.Postgres.Password = password
	config.AppConfig.Postgres.DBName = name
	config.AppConfig.Postgres.SSLMode = "disable"
}

func TestAPI_E2E_LunarEventAndCustomHoliday(t *testing.T) {
	pg := pgtest.Start(t)
	seedHoliday(t, pg.DB)

	pointConfigAt(pg)

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("init app: %v", err)
	}
	defer cleanup()

	// Create a yearly event on the 15th day of the 7th lunar month.
	body := `{"title":"Cúng Rằm tháng Bảy","start_date":"2024-08-18T00:00:00+07:00","is_all_day":true,` +
		`"is_lunar_date_based":true,"lunar_day":15,"lunar_month":7,"repeat_type":"lunar_yearly"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status: %d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		ID    string `json:"id"`
		Color string `json:"color"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("json: %v", err)
	}
	if created.ID == "" || created.Color != "red" {
		t.Fatalf("unexpected created event: %+v", created)
	}

	// 2025-09-06 is also lunar 15/7, so the event repeats there.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/days/2025-09-06", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("day status: %d body=%s", w.Code, w.Body.String())
	}
	var day struct {
		Lunar struct {
			Day   int `json:"day"`
			Month int `json:"month"`
		} `json:"lunar"`
		SpecialDay string `json:"special_day"`
		Events     []struct {
			ID string `json:"id"`
		} `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &day); err != nil {
		t.Fatalf("json: %v", err)
	}
	if day.Lunar.Day != 15 || day.Lunar.Month != 7 || len(day.Events) != 1 || day.Events[0].ID != created.ID {
		t.Fatalf("unexpected day: %s", w.Body.String())
	}

	// Custom holidays stored in Postgres are served next to the built-in ones.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/holidays?month=11", nil))
	if !strings.Contains(w.Body.String(), "Ngày Nhà giáo Việt Nam") {
		t.Fatalf("custom holiday missing: %s", w.Body.String())
	}

	// Delete and confirm.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/v1/events/"+created.ID, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status: %d", w.Code)
	}
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/events/"+created.ID, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", w.Code)
	}
}
