package service

import (
	"context"
	"sync"

	"github.com/guttosm/amlich/internal/domain/models"
	"github.com/guttosm/amlich/internal/storage"
)

type fakeEventRepo struct {
	mu      sync.Mutex
	events  map[string]models.Event
	listErr error
	nextID  int
	lists   int
}

func newFakeEventRepo(evs ...models.Event) *fakeEventRepo {
	f := &fakeEventRepo{events: map[string]models.Event{}}
	for _, e := range evs {
		f.events[e.ID] = e
	}
	return f
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, e *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = string(rune('a' + f.nextID - 1))
	f.events[e.ID] = *e
	return nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, e *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[e.ID]; !ok {
		return storage.ErrEventNotFound
	}
	f.events[e.ID] = *e
	return nil
}

func (f *fakeEventRepo) GetEvent(_ context.Context, id string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, storage.ErrEventNotFound
	}
	return &e, nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return storage.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) ListEvents(context.Context) ([]models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Event, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

type fakeHolidayRepo struct {
	holidays []models.Holiday
	err      error
}

func (f *fakeHolidayRepo) InsertHolidaysBatch([]models.Holiday) error { return nil }
func (f *fakeHolidayRepo) ListHolidays(context.Context) ([]models.Holiday, error) {
	return f.holidays, f.err
}
func (f *fakeHolidayRepo) HasIngestionForSource(string) (bool, error) { return false, nil }
func (f *fakeHolidayRepo) UpsertIngestionLog(string, int) error       { return nil }
func (f *fakeHolidayRepo) DeleteHolidaysBySource(string) error        { return nil }
