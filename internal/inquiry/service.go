package inquiry

import (
	"context"
	"log"

	"tripnest_backend/internal/composer"
	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
	"tripnest_backend/pkg/apperror"
)

// Notifier sends the mails that follow a new lead.
type Notifier interface {
	NotifyAgency(ctx context.Context, lead *model.Lead) error
	ConfirmCustomer(ctx context.Context, lead *model.Lead) error
}

type Service struct {
	destinations *repository.DestinationRepository
	hotels       *repository.HotelRepository
	activities   *repository.ActivityRepository
	leads        *repository.LeadRepository
	notifier     Notifier
}

func NewService(repos repository.Repositories, notifier Notifier) *Service {
	return &Service{
		destinations: repos.Destinations,
		hotels:       repos.Hotels,
		activities:   repos.Activities,
		leads:        repos.Leads,
		notifier:     notifier,
	}
}

// Compose loads a destination with its hotels and activities and applies the
// given selection. Prices always come from the store.
func (s *Service) Compose(ctx context.Context, destinationID string, hotelIDs, activityIDs []string) (*composer.Composer, error) {
	destination, err := s.destinations.Get(ctx, destinationID)
	if err != nil {
		return nil, err
	}

	c := composer.New(
		destination,
		s.hotels.List(ctx, repository.HotelFilter{DestinationID: destinationID}),
		s.activities.List(ctx, repository.ActivityFilter{DestinationID: destinationID}),
	)
	for _, id := range unique(hotelIDs) {
		c.ToggleHotel(id)
	}
	for _, id := range unique(activityIDs) {
		c.ToggleActivity(id)
	}
	return c, nil
}

// Submit records an inquiry for a catalog item. Hotel and activity ids only apply
// to destination inquiries. Mail failures are logged and never fail the call.
func (s *Service) Submit(ctx context.Context, input model.InquiryInput) (*model.Lead, error) {
	item, pkg, err := s.snapshot(ctx, input)
	if err != nil {
		return nil, err
	}

	form := NewForm(s.leads)
	form.SetFields(Fields{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Message: input.Message,
	})
	form.SetItem(item)
	form.SetPackage(pkg)

	lead, err := form.Submit(ctx)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, lead)
	return lead, nil
}

// Contact records a general message that is not about a catalog item. The lead
// carries no item, a zero total and no package lines.
func (s *Service) Contact(ctx context.Context, input model.ContactInput) (*model.Lead, error) {
	form := NewForm(s.leads)
	form.SetFields(Fields{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Message:  input.Message,
		Category: input.Category,
	})

	lead, err := form.Submit(ctx)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, lead)
	return lead, nil
}

func (s *Service) snapshot(ctx context.Context, input model.InquiryInput) (Item, *Package, error) {
	switch input.ItemType {
	case model.ItemTypeDestination:
		c, err := s.Compose(ctx, input.ItemID, input.HotelIDs, input.ActivityIDs)
		if err != nil {
			return Item{}, nil, err
		}
		d := c.Destination()
		item := Item{Type: model.ItemTypeDestination, ID: d.ID, Name: d.Name, Price: d.Price}
		if !c.Customized() {
			return item, nil, nil
		}
		return item, &Package{Total: c.Total(), Items: c.SelectedItems()}, nil

	case model.ItemTypeHotel:
		h, err := s.hotels.Get(ctx, input.ItemID)
		if err != nil {
			return Item{}, nil, err
		}
		return Item{Type: model.ItemTypeHotel, ID: h.ID, Name: h.Name, Price: h.Price}, nil, nil

	case model.ItemTypeActivity:
		a, err := s.activities.Get(ctx, input.ItemID)
		if err != nil {
			return Item{}, nil, err
		}
		return Item{Type: model.ItemTypeActivity, ID: a.ID, Name: a.Name, Price: a.Price}, nil, nil
	}
	return Item{}, nil, apperror.Validation("item_type must be one of: destination hotel activity")
}

func (s *Service) notify(ctx context.Context, lead *model.Lead) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyAgency(ctx, lead); err != nil {
		log.Printf("Could not send lead notification email: %v", err)
	}
	if err := s.notifier.ConfirmCustomer(ctx, lead); err != nil {
		log.Printf("Could not send inquiry confirmation email: %v", err)
	}
}

func unique(ids []string) []string {
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
