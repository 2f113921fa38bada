// Package composer prices a destination package built from optional hotels and
// activities.
package composer

import "tripnest_backend/internal/model"

// Composer holds one destination, the hotels and activities available for it and
// the ids picked so far. It does no I/O and is not safe for concurrent use.
type Composer struct {
	destination *model.Destination
	hotels      map[string]model.Hotel
	activities  map[string]model.Activity

	hotelIDs    selection
	activityIDs selection
}

func New(destination *model.Destination, hotels []model.Hotel, activities []model.Activity) *Composer {
	c := &Composer{}
	c.SetDestination(destination)
	c.SetHotels(hotels)
	c.SetActivities(activities)
	return c
}

// SetDestination replaces the base item. nil means it is still loading.
func (c *Composer) SetDestination(destination *model.Destination) {
	c.destination = destination
}

// SetHotels replaces the hotel catalog. Selected ids missing from it stay
// selected but contribute nothing.
func (c *Composer) SetHotels(hotels []model.Hotel) {
	c.hotels = make(map[string]model.Hotel, len(hotels))
	for _, h := range hotels {
		c.hotels[h.ID] = h
	}
}

func (c *Composer) SetActivities(activities []model.Activity) {
	c.activities = make(map[string]model.Activity, len(activities))
	for _, a := range activities {
		c.activities[a.ID] = a
	}
}

func (c *Composer) Destination() *model.Destination {
	return c.destination
}

func (c *Composer) ToggleHotel(id string) {
	c.hotelIDs.toggle(id)
}

func (c *Composer) ToggleActivity(id string) {
	c.activityIDs.toggle(id)
}

func (c *Composer) HotelIDs() []string {
	return c.hotelIDs.list()
}

func (c *Composer) ActivityIDs() []string {
	return c.activityIDs.list()
}

// Customized reports whether anything beyond the destination was picked.
func (c *Composer) Customized() bool {
	return c.hotelIDs.len() > 0 || c.activityIDs.len() > 0
}

// Total is the destination price plus every resolvable selected hotel and activity.
func (c *Composer) Total() float64 {
	var total float64
	if c.destination != nil {
		total = c.destination.Price
	}
	for _, id := range c.hotelIDs.ids {
		if h, ok := c.hotels[id]; ok {
			total += h.Price
		}
	}
	for _, id := range c.activityIDs.ids {
		if a, ok := c.activities[id]; ok {
			total += a.Price
		}
	}
	return total
}

// SelectedItems lists the destination first, then resolved hotels and activities
// in the order they were picked. Empty while the destination is not loaded.
func (c *Composer) SelectedItems() []model.SelectedItem {
	if c.destination == nil {
		return []model.SelectedItem{}
	}

	items := make([]model.SelectedItem, 0, 1+c.hotelIDs.len()+c.activityIDs.len())
	items = append(items, model.SelectedItem{
		ID:    c.destination.ID,
		Name:  c.destination.Name,
		Type:  model.ItemTypeDestination,
		Price: c.destination.Price,
	})
	for _, id := range c.hotelIDs.ids {
		if h, ok := c.hotels[id]; ok {
			items = append(items, model.SelectedItem{ID: h.ID, Name: h.Name, Type: model.ItemTypeHotel, Price: h.Price})
		}
	}
	for _, id := range c.activityIDs.ids {
		if a, ok := c.activities[id]; ok {
			items = append(items, model.SelectedItem{ID: a.ID, Name: a.Name, Type: model.ItemTypeActivity, Price: a.Price})
		}
	}
	return items
}

// selection is an insertion-ordered set of ids.
type selection struct {
	ids []string
}

func (s *selection) toggle(id string) {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

func (s *selection) len() int {
	return len(s.ids)
}

func (s *selection) list() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
