package repository

import (
	"context"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/live"
)

type ActivityFilter struct {
	DestinationID string
	Category      string
}

type ActivityRepository struct {
	crud[model.Activity]
}

func NewActivityRepository(s store.Store[model.Activity], publisher live.Publisher) *ActivityRepository {
	return &ActivityRepository{crud: newCrud(s, store.Activities, publisher)}
}

func (r *ActivityRepository) List(ctx context.Context, f ActivityFilter) []model.Activity {
	filters := store.Filters{}
	if f.DestinationID != "" {
		filters["destination_id"] = f.DestinationID
	}
	if f.Category != "" {
		filters["category"] = f.Category
	}
	return r.list(ctx, filters)
}

func (r *ActivityRepository) Search(ctx context.Context, term string, f ActivityFilter) []model.Activity {
	result := []model.Activity{}
	for _, a := range r.List(ctx, f) {
		if matches(term, a.Name, a.Category, a.Description) {
			result = append(result, a)
		}
	}
	return result
}
