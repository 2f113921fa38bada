// Package store is the record store contract: one typed CRUD handle per collection,
// backed either by the local database or by the remote service gateway.
package store

import (
	"context"
	"reflect"
	"sort"
)

type Collection string

const (
	Destinations      Collection = "destinations"
	Hotels            Collection = "hotels"
	Activities        Collection = "activities"
	TravelThemes      Collection = "travel_themes"
	ThemeDestinations Collection = "travel_theme_destinations"
	ThemeActivities   Collection = "travel_theme_activities"
	Leads             Collection = "leads"
	Bookings          Collection = "bookings"
	Profiles          Collection = "profiles"
)

// Filters are exact-match column constraints. Nil values and unknown columns are ignored.
type Filters map[string]interface{}

// Store is the CRUD contract every backend implements.
type Store[T any] interface {
	List(ctx context.Context, filters Filters) ([]T, error)
	GetOne(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, record *T) error
	Update(ctx context.Context, id string, patch map[string]interface{}) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Schema lists the columns of a collection that filters and patches may touch.
type Schema struct {
	Filterable []string
	Updatable  []string
}

var schemas = map[Collection]Schema{
	Destinations: {
		Filterable: []string{"category", "featured"},
		Updatable:  []string{"name", "location", "description", "price", "image_url", "category", "rating", "featured"},
	},
	Hotels: {
		Filterable: []string{"destination_id", "featured"},
		Updatable:  []string{"name", "destination_id", "description", "price", "image_url", "rating", "featured", "amenities"},
	},
	Activities: {
		Filterable: []string{"destination_id", "category"},
		Updatable:  []string{"name", "destination_id", "category", "description", "price", "duration", "image_url"},
	},
	TravelThemes: {
		Filterable: []string{"slug", "featured"},
		Updatable:  []string{"name", "slug", "description", "image_url", "featured"},
	},
	ThemeDestinations: {
		Filterable: []string{"travel_theme_id", "destination_id"},
	},
	ThemeActivities: {
		Filterable: []string{"travel_theme_id", "activity_id"},
	},
	Leads: {
		Filterable: []string{"status", "item_type", "item_id", "email", "category"},
		Updatable:  []string{"status"},
	},
	Bookings: {
		Filterable: []string{"status", "item_type", "item_id"},
		Updatable:  []string{"status", "booking_date", "guests", "total_amount"},
	},
	Profiles: {
		Filterable: []string{"email", "role"},
		Updatable:  []string{"full_name", "role"},
	},
}

// SchemaOf returns the column allow-lists of a collection.
func SchemaOf(c Collection) Schema {
	return schemas[c]
}

func (s Schema) filterable(column string) bool {
	return contains(s.Filterable, column)
}

func (s Schema) updatable(column string) bool {
	return contains(s.Updatable, column)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// cleanFilters drops nil values and columns outside the allow-list. Keys come back sorted
// so queries are built deterministically.
func (s Schema) cleanFilters(filters Filters) ([]string, Filters) {
	out := Filters{}
	for key, value := range filters {
		if isNil(value) || !s.filterable(key) {
			continue
		}
		out[key] = deref(value)
	}
	return sortedKeys(out), out
}

func (s Schema) cleanPatch(patch map[string]interface{}) ([]string, map[string]interface{}) {
	out := map[string]interface{}{}
	for key, value := range patch {
		if !s.updatable(key) {
			continue
		}
		out[key] = value
	}
	return sortedKeys(out), out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func deref(v interface{}) interface{} {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		return rv.Elem().Interface()
	}
	return v
}
