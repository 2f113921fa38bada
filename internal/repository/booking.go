package repository

import (
	"context"
	"fmt"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/live"
)

type BookingFilter struct {
	Status   model.BookingStatus
	ItemType model.ItemType
}

type BookingRepository struct {
	crud[model.Booking]
}

func NewBookingRepository(s store.Store[model.Booking], publisher live.Publisher) *BookingRepository {
	return &BookingRepository{crud: newCrud(s, store.Bookings, publisher)}
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter) []model.Booking {
	filters := store.Filters{}
	if f.Status != "" {
		filters["status"] = string(f.Status)
	}
	if f.ItemType != "" {
		filters["item_type"] = string(f.ItemType)
	}
	return r.list(ctx, filters)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	if !status.Valid() {
		return nil, apperror.Validation(fmt.Sprintf("invalid booking status %q", status))
	}
	return r.Update(ctx, id, map[string]interface{}{"status": string(status)})
}
