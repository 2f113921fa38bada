// Package repository wraps the record stores with typed, per-entity operations.
package repository

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/config"
	"tripnest_backend/pkg/live"
)

// crud is the shared single-record half of every catalog repository. Successful
// writes are announced on the live publisher.
type crud[T any] struct {
	store      store.Store[T]
	collection store.Collection
	publisher  live.Publisher
}

func newCrud[T any](s store.Store[T], collection store.Collection, publisher live.Publisher) crud[T] {
	if publisher == nil {
		publisher = live.Noop{}
	}
	return crud[T]{store: s, collection: collection, publisher: publisher}
}

func (r crud[T]) Get(ctx context.Context, id string) (*T, error) {
	return r.store.GetOne(ctx, id)
}

func (r crud[T]) Create(ctx context.Context, record *T) error {
	if err := r.store.Create(ctx, record); err != nil {
		return err
	}
	r.announce(ctx, "create", idOf(record))
	return nil
}

func (r crud[T]) Update(ctx context.Context, id string, patch map[string]interface{}) (*T, error) {
	record, err := r.store.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	r.announce(ctx, "update", id)
	return record, nil
}

func (r crud[T]) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}
	r.announce(ctx, "delete", id)
	return nil
}

// list returns the filtered records, or an empty slice when the store fails.
func (r crud[T]) list(ctx context.Context, filters store.Filters) []T {
	records, err := r.store.List(ctx, filters)
	if err != nil {
		log.Printf("Error listing %s: %v", r.collection, err)
		return []T{}
	}
	return records
}

// Count returns the collection size. Unlike list it reports store failures.
func (r crud[T]) Count(ctx context.Context) (int, error) {
	records, err := r.store.List(ctx, nil)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r crud[T]) announce(ctx context.Context, action, id string) {
	if err := r.publisher.Publish(ctx, live.NewEvent(string(r.collection), action, id)); err != nil {
		log.Printf("Error publishing %s %s event: %v", r.collection, action, err)
	}
}

type identified interface {
	GetID() string
}

func idOf(record interface{}) string {
	if rec, ok := record.(identified); ok {
		return rec.GetID()
	}
	return ""
}

func matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// Repositories bundles every repository for wiring.
type Repositories struct {
	Destinations *DestinationRepository
	Hotels       *HotelRepository
	Activities   *ActivityRepository
	Themes       *ThemeRepository
	Leads        *LeadRepository
	Bookings     *BookingRepository
	Profiles     *ProfileRepository
}

// ErrProfilesNeedDatabase is returned when no local database backs the profiles.
var ErrProfilesNeedDatabase = errors.New("profiles require a local database (DATABASE_URL), the gateway does not serve them")

// NewRepositories opens every collection on the configured record store. With the
// remote driver the catalog, leads and bookings go through the gateway, but
// profiles always live in the local database since password hashes never cross
// the gateway.
func NewRepositories(cfg config.RecordStoreConfig, db *gorm.DB, publisher live.Publisher) (Repositories, error) {
	if db == nil {
		return Repositories{}, ErrProfilesNeedDatabase
	}
	profiles := store.NewGormStore[model.Profile](db, store.Profiles)
	return Repositories{
		Destinations: NewDestinationRepository(store.Open[model.Destination](cfg, db, store.Destinations), publisher),
		Hotels:       NewHotelRepository(store.Open[model.Hotel](cfg, db, store.Hotels), publisher),
		Activities:   NewActivityRepository(store.Open[model.Activity](cfg, db, store.Activities), publisher),
		Themes: NewThemeRepository(
			store.Open[model.TravelTheme](cfg, db, store.TravelThemes),
			store.Open[model.TravelThemeDestination](cfg, db, store.ThemeDestinations),
			store.Open[model.TravelThemeActivity](cfg, db, store.ThemeActivities),
			store.Open[model.Destination](cfg, db, store.Destinations),
			store.Open[model.Activity](cfg, db, store.Activities),
			publisher,
		),
		Leads:    NewLeadRepository(store.Open[model.Lead](cfg, db, store.Leads), publisher),
		Bookings: NewBookingRepository(store.Open[model.Booking](cfg, db, store.Bookings), publisher),
		Profiles: NewProfileRepository(profiles),
	}, nil
}

// Models lists the tables backing the repositories, for migration.
func Models() []interface{} {
	return []interface{}{
		&model.Destination{}, &model.Hotel{}, &model.Activity{},
		&model.TravelTheme{}, &model.TravelThemeDestination{}, &model.TravelThemeActivity{},
		&model.Lead{}, &model.Booking{}, &model.Profile{},
	}
}
