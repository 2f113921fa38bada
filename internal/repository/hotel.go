package repository

import (
	"context"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/live"
)

type HotelFilter struct {
	DestinationID string
	Featured      *bool
}

type HotelRepository struct {
	crud[model.Hotel]
}

func NewHotelRepository(s store.Store[model.Hotel], publisher live.Publisher) *HotelRepository {
	return &HotelRepository{crud: newCrud(s, store.Hotels, publisher)}
}

func (r *HotelRepository) List(ctx context.Context, f HotelFilter) []model.Hotel {
	filters := store.Filters{"featured": f.Featured}
	if f.DestinationID != "" {
		filters["destination_id"] = f.DestinationID
	}
	return r.list(ctx, filters)
}

// WithDestinationNames shapes hotels for listings. Hotels pointing at a missing
// destination are labelled "Unknown".
func (r *HotelRepository) WithDestinationNames(hotels []model.Hotel, destinations map[string]model.Destination) []model.HotelWithDestination {
	shaped := make([]model.HotelWithDestination, 0, len(hotels))
	for _, h := range hotels {
		name := model.UnknownDestination
		if d, ok := destinations[h.DestinationID]; ok {
			name = d.Name
		}
		shaped = append(shaped, model.HotelWithDestination{Hotel: h, DestinationName: name})
	}
	return shaped
}
