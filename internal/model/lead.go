package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
)

// ItemType is the kind of catalog entity an inquiry or booking refers to.
type ItemType string

const (
	ItemTypeDestination ItemType = "destination"
	ItemTypeHotel       ItemType = "hotel"
	ItemTypeActivity    ItemType = "activity"
)

func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeDestination, ItemTypeHotel, ItemTypeActivity:
		return true
	}
	return false
}

type LeadStatus string

const (
	LeadStatusPending   LeadStatus = "pending"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusClosed    LeadStatus = "closed"
)

// LeadStatuses in pipeline order.
var LeadStatuses = []LeadStatus{LeadStatusPending, LeadStatusContacted, LeadStatusConverted, LeadStatusClosed}

var leadTransitions = map[LeadStatus][]LeadStatus{
	LeadStatusPending:   {LeadStatusContacted},
	LeadStatusContacted: {LeadStatusConverted, LeadStatusClosed},
}

// CanTransition reports whether an admin may move a lead from one status to another.
func (s LeadStatus) CanTransition(to LeadStatus) bool {
	for _, next := range leadTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// SelectedItem is one priced line of a composed package.
type SelectedItem struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Type  ItemType `json:"type"`
	Price float64  `json:"price"`
}

// Lead is a booking inquiry. Content fields are a snapshot taken at submission and
// are never edited afterwards; only Status moves.
type Lead struct {
	Base
	Name          string         `json:"name" gorm:"not null" validate:"required"`
	Email         string         `json:"email" gorm:"not null;index" validate:"required"`
	Phone         string         `json:"phone"`
	Message       string         `json:"message" gorm:"type:text"`
	Category      string         `json:"category,omitempty" gorm:"size:50;index"`
	ItemType      ItemType       `json:"item_type" gorm:"size:20" validate:"omitempty,oneof=destination hotel activity"`
	ItemID        string         `json:"item_id" gorm:"type:varchar(36);index"`
	ItemName      string         `json:"item_name"`
	ItemPrice     float64        `json:"item_price"`
	TotalAmount   float64        `json:"total_amount"`
	SelectedItems datatypes.JSON `json:"selected_items"`
	Status        LeadStatus     `json:"status" gorm:"size:20;default:'pending';index" validate:"required,oneof=pending contacted converted closed"`
}

// Items decodes SelectedItems. A NULL column yields nil.
func (l *Lead) Items() ([]SelectedItem, error) {
	if len(l.SelectedItems) == 0 || string(l.SelectedItems) == "null" {
		return nil, nil
	}
	var items []SelectedItem
	if err := json.Unmarshal(l.SelectedItems, &items); err != nil {
		return nil, fmt.Errorf("decode selected items: %w", err)
	}
	return items, nil
}

// EncodeItems marshals package lines for the selected_items column; nil stays NULL.
func EncodeItems(items []SelectedItem) datatypes.JSON {
	if items == nil {
		return nil
	}
	raw, _ := json.Marshal(items)
	return datatypes.JSON(raw)
}
