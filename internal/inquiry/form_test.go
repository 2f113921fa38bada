package inquiry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
	"tripnest_backend/internal/store"
	"tripnest_backend/pkg/apperror"
)

// spyLeadStore records Create calls. When gate is set, Create blocks until it is
// closed.
type spyLeadStore struct {
	mu      sync.Mutex
	created []model.Lead
	calls   int
	err     error
	gate    chan struct{}
	entered chan struct{}
}

func (s *spyLeadStore) List(context.Context, store.Filters) ([]model.Lead, error) {
	return []model.Lead{}, nil
}

func (s *spyLeadStore) GetOne(context.Context, string) (*model.Lead, error) {
	return nil, apperror.NotFound("lead not found")
}

func (s *spyLeadStore) Create(_ context.Context, lead *model.Lead) error {
	s.mu.Lock()
	s.calls++
	gate, entered := s.gate, s.entered
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	lead.ID = "lead-1"
	s.created = append(s.created, *lead)
	return nil
}

func (s *spyLeadStore) Update(context.Context, string, map[string]interface{}) (*model.Lead, error) {
	return nil, errors.New("not supported")
}

func (s *spyLeadStore) Delete(context.Context, string) error {
	return errors.New("not supported")
}

func (s *spyLeadStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newSpyForm() (*Form, *spyLeadStore) {
	spy := &spyLeadStore{}
	return NewForm(repository.NewLeadRepository(spy, nil)), spy
}

func TestForm_BlankNameOrEmailNeverCallsStore(t *testing.T) {
	cases := []Fields{
		{Name: "", Email: "jane@example.com"},
		{Name: "Jane", Email: ""},
		{Name: "   ", Email: "jane@example.com"},
		{Name: "Jane", Email: "\t"},
	}
	for _, fields := range cases {
		form, spy := newSpyForm()
		form.SetFields(fields)
		form.SetItem(Item{Type: model.ItemTypeHotel, ID: "h1", Name: "Ayana", Price: 300})

		lead, err := form.Submit(context.Background())
		assert.Nil(t, lead)
		assert.ErrorIs(t, err, apperror.ErrValidation)
		assert.Equal(t, StateIdle, form.State())
		assert.Equal(t, 0, spy.callCount())
		assert.Equal(t, err, form.LastError())
	}
}

func TestForm_DirectInquiry(t *testing.T) {
	form, spy := newSpyForm()
	form.SetFields(Fields{Name: "Jane", Email: "jane@example.com"})
	form.SetItem(Item{Type: model.ItemTypeHotel, ID: "h1", Name: "Ayana", Price: 300})

	lead, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, form.State())
	assert.Equal(t, 1, spy.callCount())

	assert.Equal(t, lead.ItemPrice, lead.TotalAmount)
	assert.Nil(t, lead.SelectedItems)
	assert.Equal(t, model.LeadStatusPending, lead.Status)
	assert.Equal(t, "Ayana", lead.ItemName)
	assert.Same(t, lead, form.Lead())

	_, err = form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, spy.callCount())
}

func TestForm_PackageInquiry(t *testing.T) {
	form, spy := newSpyForm()
	form.SetFields(Fields{Name: "Jane", Email: "jane@example.com", Phone: "+1 555", Message: "Honeymoon"})
	form.SetItem(Item{Type: model.ItemTypeDestination, ID: "d1", Name: "Bali", Price: 2000})
	items := []model.SelectedItem{
		{ID: "d1", Name: "Bali", Type: model.ItemTypeDestination, Price: 2000},
		{ID: "a1", Name: "Snorkeling", Type: model.ItemTypeActivity, Price: 150},
	}
	form.SetPackage(&Package{Total: 2150, Items: items})

	lead, err := form.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, spy.created, 1)

	assert.Equal(t, 2000.0, lead.ItemPrice)
	assert.Equal(t, 2150.0, lead.TotalAmount)
	stored, err := spy.created[0].Items()
	require.NoError(t, err)
	assert.Equal(t, items, stored)
}

func TestForm_FailureKeepsFields(t *testing.T) {
	form, spy := newSpyForm()
	spy.err = apperror.Network("store unavailable", errors.New("timeout"))
	fields := Fields{Name: "Jane", Email: "jane@example.com", Message: "Call me"}
	form.SetFields(fields)
	form.SetItem(Item{Type: model.ItemTypeActivity, ID: "a1", Name: "Snorkeling", Price: 150})

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, apperror.ErrNetwork)
	assert.Equal(t, StateIdle, form.State())
	assert.Equal(t, fields, form.Fields())
	assert.ErrorIs(t, form.LastError(), apperror.ErrNetwork)

	// retry without retyping
	spy.mu.Lock()
	spy.err = nil
	spy.mu.Unlock()
	_, err = form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSubmitted, form.State())
	assert.Nil(t, form.LastError())
	assert.Equal(t, 2, spy.callCount())
}

func TestForm_CloseResets(t *testing.T) {
	form, _ := newSpyForm()
	form.SetFields(Fields{Name: "Jane", Email: "jane@example.com"})
	form.SetItem(Item{Type: model.ItemTypeHotel, ID: "h1", Price: 300})
	_, err := form.Submit(context.Background())
	require.NoError(t, err)

	form.Close()
	assert.Equal(t, StateIdle, form.State())
	assert.Equal(t, Fields{}, form.Fields())
	assert.Nil(t, form.Lead())
	assert.Nil(t, form.LastError())
}

func TestForm_DuplicateSubmitAndLateResult(t *testing.T) {
	spy := &spyLeadStore{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	form := NewForm(repository.NewLeadRepository(spy, nil))
	form.SetFields(Fields{Name: "Jane", Email: "jane@example.com"})
	form.SetItem(Item{Type: model.ItemTypeHotel, ID: "h1", Price: 300})

	done := make(chan error, 1)
	go func() {
		_, err := form.Submit(context.Background())
		done <- err
	}()
	<-spy.entered
	assert.Equal(t, StateSubmitting, form.State())

	_, err := form.Submit(context.Background())
	assert.ErrorIs(t, err, ErrInProgress)

	// dismissed while the first call is in flight
	form.Close()
	close(spy.gate)
	require.NoError(t, <-done)

	assert.Equal(t, StateIdle, form.State())
	assert.Nil(t, form.Lead())
	assert.Equal(t, 1, spy.callCount())
}
