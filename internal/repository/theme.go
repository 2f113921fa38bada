package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosimple/slug"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/live"
)

type ThemeRepository struct {
	crud[model.TravelTheme]
	destinationLinks store.Store[model.TravelThemeDestination]
	activityLinks    store.Store[model.TravelThemeActivity]
	destinations     store.Store[model.Destination]
	activities       store.Store[model.Activity]
}

func NewThemeRepository(
	themes store.Store[model.TravelTheme],
	destinationLinks store.Store[model.TravelThemeDestination],
	activityLinks store.Store[model.TravelThemeActivity],
	destinations store.Store[model.Destination],
	activities store.Store[model.Activity],
	publisher live.Publisher,
) *ThemeRepository {
	return &ThemeRepository{
		crud:             newCrud(themes, store.TravelThemes, publisher),
		destinationLinks: destinationLinks,
		activityLinks:    activityLinks,
		destinations:     destinations,
		activities:       activities,
	}
}

func (r *ThemeRepository) List(ctx context.Context, featured *bool) []model.TravelTheme {
	return r.list(ctx, store.Filters{"featured": featured})
}

func (r *ThemeRepository) GetBySlug(ctx context.Context, themeSlug string) (*model.TravelTheme, error) {
	themes, err := r.store.List(ctx, store.Filters{"slug": themeSlug})
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return nil, apperror.NotFound(fmt.Sprintf("travel theme %q not found", themeSlug))
	}
	return &themes[0], nil
}

// Create fills in a unique slug derived from the name when none is given.
func (r *ThemeRepository) Create(ctx context.Context, theme *model.TravelTheme) error {
	source := theme.Slug
	if source == "" {
		source = theme.Name
	}
	unique, err := r.uniqueSlug(ctx, source, "")
	if err != nil {
		return err
	}
	theme.Slug = unique
	return r.crud.Create(ctx, theme)
}

func (r *ThemeRepository) Update(ctx context.Context, id string, patch map[string]interface{}) (*model.TravelTheme, error) {
	if raw, ok := patch["slug"]; ok {
		source, _ := raw.(string)
		if source == "" {
			if name, ok := patch["name"].(string); ok {
				source = name
			} else {
				current, err := r.Get(ctx, id)
				if err != nil {
					return nil, err
				}
				source = current.Name
			}
		}
		unique, err := r.uniqueSlug(ctx, source, id)
		if err != nil {
			return nil, err
		}
		patch["slug"] = unique
	}
	return r.crud.Update(ctx, id, patch)
}

// Delete removes the theme and then its association rows.
func (r *ThemeRepository) Delete(ctx context.Context, id string) error {
	if err := r.crud.Delete(ctx, id); err != nil {
		return err
	}
	if err := r.SetDestinations(ctx, id, nil); err != nil {
		return err
	}
	return r.SetActivities(ctx, id, nil)
}

func (r *ThemeRepository) uniqueSlug(ctx context.Context, source, selfID string) (string, error) {
	base := slug.Make(source)
	if base == "" {
		return "", apperror.Validation("slug cannot be derived from name")
	}
	result := base
	for i := 1; ; i++ {
		existing, err := r.store.List(ctx, store.Filters{"slug": result})
		if err != nil {
			return "", err
		}
		if len(existing) == 0 || (len(existing) == 1 && existing[0].ID == selfID) {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
}

// SetDestinations replaces the theme's destination links: existing rows are
// deleted, then the new ones inserted. There is no rollback; an insert failure
// leaves the theme with a partial set.
func (r *ThemeRepository) SetDestinations(ctx context.Context, themeID string, destinationIDs []string) error {
	links, err := r.destinationLinks.List(ctx, store.Filters{"travel_theme_id": themeID})
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := r.destinationLinks.Delete(ctx, link.ID); err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return err
		}
	}
	for _, id := range dedupe(destinationIDs) {
		if err := r.destinationLinks.Create(ctx, &model.TravelThemeDestination{TravelThemeID: themeID, DestinationID: id}); err != nil {
			return err
		}
	}
	return nil
}

// SetActivities is SetDestinations for activity links.
func (r *ThemeRepository) SetActivities(ctx context.Context, themeID string, activityIDs []string) error {
	links, err := r.activityLinks.List(ctx, store.Filters{"travel_theme_id": themeID})
	if err != nil {
		return err
	}
	for _, link := range links {
		if err := r.activityLinks.Delete(ctx, link.ID); err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return err
		}
	}
	for _, id := range dedupe(activityIDs) {
		if err := r.activityLinks.Create(ctx, &model.TravelThemeActivity{TravelThemeID: themeID, ActivityID: id}); err != nil {
			return err
		}
	}
	return nil
}

// Detail resolves the theme's linked destinations and activities. Links to
// deleted records are skipped.
func (r *ThemeRepository) Detail(ctx context.Context, theme *model.TravelTheme) (*model.ThemeDetail, error) {
	detail := &model.ThemeDetail{
		TravelTheme:  *theme,
		Destinations: []model.Destination{},
		Activities:   []model.Activity{},
	}

	destLinks, err := r.destinationLinks.List(ctx, store.Filters{"travel_theme_id": theme.ID})
	if err != nil {
		return nil, err
	}
	for _, link := range destLinks {
		d, err := r.destinations.GetOne(ctx, link.DestinationID)
		if errors.Is(err, apperror.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		detail.Destinations = append(detail.Destinations, *d)
	}

	actLinks, err := r.activityLinks.List(ctx, store.Filters{"travel_theme_id": theme.ID})
	if err != nil {
		return nil, err
	}
	for _, link := range actLinks {
		a, err := r.activities.GetOne(ctx, link.ActivityID)
		if errors.Is(err, apperror.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		detail.Activities = append(detail.Activities, *a)
	}

	return detail, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
