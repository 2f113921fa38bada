// Package inquiry turns a booking form, optionally carrying a composed package, into
// a pending lead.
package inquiry

import (
	"context"
	"strings"
	"sync"

	"tripnest_backend/internal/model"
	"tripnest_backend/pkg/apperror"
)

type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "idle"
	}
}

var (
	ErrInProgress       = apperror.Validation("an inquiry is already being submitted")
	ErrAlreadySubmitted = apperror.Validation("inquiry already submitted")
)

// Fields are the values typed in by the customer.
type Fields struct {
	Name     string
	Email    string
	Phone    string
	Message  string
	Category string
}

// Item is the snapshot of the catalog entry the inquiry is about.
type Item struct {
	Type  model.ItemType
	ID    string
	Name  string
	Price float64
}

// Package is the priced output of the package composer.
type Package struct {
	Total float64
	Items []model.SelectedItem
}

// LeadCreator persists a lead.
type LeadCreator interface {
	Create(ctx context.Context, lead *model.Lead) error
}

// Form is the submission state machine: Idle -> Submitting -> Submitted, or back to
// Idle when the store rejects the lead. Entered values survive a failed attempt.
type Form struct {
	leads LeadCreator

	mu         sync.Mutex
	fields     Fields
	item       Item
	pkg        *Package
	state      State
	lastErr    error
	lead       *model.Lead
	generation uint64
}

func NewForm(leads LeadCreator) *Form {
	return &Form{leads: leads}
}

func (f *Form) SetFields(fields Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *Form) SetItem(item Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.item = item
}

// SetPackage attaches composer output. nil means the item is booked as is.
func (f *Form) SetPackage(pkg *Package) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pkg = pkg
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Lead returns the recorded lead once Submitted.
func (f *Form) Lead() *model.Lead {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lead
}

// Submit validates the form and creates the lead. Blank name or email fail
// without touching the store. A result arriving after Close is returned to the
// caller but not applied to the form.
func (f *Form) Submit(ctx context.Context) (*model.Lead, error) {
	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return nil, ErrInProgress
	case StateSubmitted:
		f.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}

	if err := f.validate(); err != nil {
		f.lastErr = err
		f.mu.Unlock()
		return nil, err
	}

	lead := f.buildLead()
	generation := f.generation
	f.state = StateSubmitting
	f.lastErr = nil
	f.mu.Unlock()

	err := f.leads.Create(ctx, lead)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generation != generation {
		if err != nil {
			return nil, err
		}
		return lead, nil
	}
	if err != nil {
		f.state = StateIdle
		f.lastErr = err
		return nil, err
	}
	f.state = StateSubmitted
	f.lead = lead
	return lead, nil
}

// Close dismisses the form: everything returns to the initial state and any
// in-flight Submit is detached.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = Fields{}
	f.item = Item{}
	f.pkg = nil
	f.state = StateIdle
	f.lastErr = nil
	f.lead = nil
	f.generation++
}

func (f *Form) validate() error {
	if strings.TrimSpace(f.fields.Name) == "" {
		return apperror.Validation("name is required")
	}
	if strings.TrimSpace(f.fields.Email) == "" {
		return apperror.Validation("email is required")
	}
	return nil
}

// buildLead snapshots the item and, when a package was composed, its total and
// lines. Without one the total is the item price and selected_items stays NULL.
func (f *Form) buildLead() *model.Lead {
	lead := &model.Lead{
		Name:        strings.TrimSpace(f.fields.Name),
		Email:       strings.TrimSpace(f.fields.Email),
		Phone:       strings.TrimSpace(f.fields.Phone),
		Message:     strings.TrimSpace(f.fields.Message),
		Category:    strings.TrimSpace(f.fields.Category),
		ItemType:    f.item.Type,
		ItemID:      f.item.ID,
		ItemName:    f.item.Name,
		ItemPrice:   f.item.Price,
		TotalAmount: f.item.Price,
		Status:      model.LeadStatusPending,
	}
	if f.pkg != nil {
		lead.TotalAmount = f.pkg.Total
		lead.SelectedItems = model.EncodeItems(f.pkg.Items)
	}
	return lead
}
