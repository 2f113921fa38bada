package repository

import (
	"context"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/live"
)

type DestinationFilter struct {
	Category string
	Featured *bool
}

type DestinationRepository struct {
	crud[model.Destination]
}

func NewDestinationRepository(s store.Store[model.Destination], publisher live.Publisher) *DestinationRepository {
	return &DestinationRepository{crud: newCrud(s, store.Destinations, publisher)}
}

func (r *DestinationRepository) List(ctx context.Context, f DestinationFilter) []model.Destination {
	filters := store.Filters{"featured": f.Featured}
	if f.Category != "" {
		filters["category"] = f.Category
	}
	return r.list(ctx, filters)
}

// Search matches term case-insensitively against name and location.
func (r *DestinationRepository) Search(ctx context.Context, term string, f DestinationFilter) []model.Destination {
	result := []model.Destination{}
	for _, d := range r.List(ctx, f) {
		if matches(term, d.Name, d.Location) {
			result = append(result, d)
		}
	}
	return result
}

// ByID indexes destinations by id.
func (r *DestinationRepository) ByID(ctx context.Context) map[string]model.Destination {
	index := map[string]model.Destination{}
	for _, d := range r.List(ctx, DestinationFilter{}) {
		index[d.ID] = d
	}
	return index
}
