package store

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"tripnest_backend/internal/model"
	"tripnest_backend/pkg/apperror"
)

// Endpoint answers one gateway envelope for a collection.
type Endpoint func(ctx context.Context, req GatewayRequest) (interface{}, error)

// Gateway is the server side of RemoteStore: it maps collections to endpoints.
type Gateway map[Collection]Endpoint

// NewGateway serves the catalog, lead and booking collections from the database.
// Profiles are not exposed.
func NewGateway(db *gorm.DB) Gateway {
	return Gateway{
		Destinations:      Serve[model.Destination](NewGormStore[model.Destination](db, Destinations)),
		Hotels:            Serve[model.Hotel](NewGormStore[model.Hotel](db, Hotels)),
		Activities:        Serve[model.Activity](NewGormStore[model.Activity](db, Activities)),
		TravelThemes:      Serve[model.TravelTheme](NewGormStore[model.TravelTheme](db, TravelThemes)),
		ThemeDestinations: Serve[model.TravelThemeDestination](NewGormStore[model.TravelThemeDestination](db, ThemeDestinations)),
		ThemeActivities:   Serve[model.TravelThemeActivity](NewGormStore[model.TravelThemeActivity](db, ThemeActivities)),
		Leads:             Serve[model.Lead](NewGormStore[model.Lead](db, Leads)),
		Bookings:          Serve[model.Booking](NewGormStore[model.Booking](db, Bookings)),
	}
}

// Handle dispatches req to the endpoint of collection.
func (g Gateway) Handle(ctx context.Context, collection Collection, req GatewayRequest) (interface{}, error) {
	endpoint, ok := g[collection]
	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("unknown collection %q", collection))
	}
	return endpoint(ctx, req)
}

// Serve adapts a Store to the gateway envelope.
func Serve[T any](s Store[T]) Endpoint {
	return func(ctx context.Context, req GatewayRequest) (interface{}, error) {
		switch req.Action {
		case ActionList:
			return s.List(ctx, req.Filters)

		case ActionGetOne:
			return s.GetOne(ctx, req.ID)

		case ActionCreate:
			record := new(T)
			if err := json.Unmarshal(req.Data, record); err != nil {
				return nil, apperror.Wrap(apperror.CodeValidation, "invalid record payload", err)
			}
			if err := s.Create(ctx, record); err != nil {
				return nil, err
			}
			return record, nil

		case ActionUpdate:
			var patch map[string]interface{}
			if err := json.Unmarshal(req.Data, &patch); err != nil {
				return nil, apperror.Wrap(apperror.CodeValidation, "invalid patch payload", err)
			}
			return s.Update(ctx, req.ID, patch)

		case ActionDelete:
			return nil, s.Delete(ctx, req.ID)
		}
		return nil, apperror.Validation(fmt.Sprintf("unknown action %q", req.Action))
	}
}
