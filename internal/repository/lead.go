package repository

import (
	"context"
	"fmt"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/apperror"
	"tripnest_backend/pkg/live"
)

type LeadFilter struct {
	Status   model.LeadStatus
	Category string
}

// LeadRepository exposes no content update: leads only change status.
type LeadRepository struct {
	base crud[model.Lead]
}

func NewLeadRepository(s store.Store[model.Lead], publisher live.Publisher) *LeadRepository {
	return &LeadRepository{base: newCrud(s, store.Leads, publisher)}
}

func (r *LeadRepository) List(ctx context.Context, f LeadFilter) []model.Lead {
	filters := store.Filters{}
	if f.Status != "" {
		filters["status"] = string(f.Status)
	}
	if f.Category != "" {
		filters["category"] = f.Category
	}
	return r.base.list(ctx, filters)
}

func (r *LeadRepository) Get(ctx context.Context, id string) (*model.Lead, error) {
	return r.base.Get(ctx, id)
}

// Create records a new inquiry. Status always starts at pending.
func (r *LeadRepository) Create(ctx context.Context, lead *model.Lead) error {
	lead.Status = model.LeadStatusPending
	return r.base.Create(ctx, lead)
}

// UpdateStatus moves a lead along the pipeline, rejecting transitions that skip or
// reverse a step.
func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) (*model.Lead, error) {
	lead, err := r.base.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !lead.Status.CanTransition(status) {
		return nil, apperror.Validation(fmt.Sprintf("cannot move lead from %s to %s", lead.Status, status))
	}
	return r.base.Update(ctx, id, map[string]interface{}{"status": string(status)})
}

func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	return r.base.Delete(ctx, id)
}

func (r *LeadRepository) Count(ctx context.Context) (int, error) {
	return r.base.Count(ctx)
}

// CountByStatus returns the number of leads per status, zero-filled.
func (r *LeadRepository) CountByStatus(ctx context.Context) (map[model.LeadStatus]int, error) {
	leads, err := r.base.store.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	counts := make(map[model.LeadStatus]int, len(model.LeadStatuses))
	for _, s := range model.LeadStatuses {
		counts[s] = 0
	}
	for _, l := range leads {
		counts[l.Status]++
	}
	return counts, nil
}
