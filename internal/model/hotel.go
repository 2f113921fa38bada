package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Hotel belongs loosely to a destination: DestinationID is not a foreign key and
// deleting the destination leaves the hotel in place.
type Hotel struct {
	Base
	Name          string         `json:"name" gorm:"not null" validate:"required"`
	DestinationID string         `json:"destination_id" gorm:"type:varchar(36);index"`
	Description   string         `json:"description" gorm:"type:text"`
	Price         float64        `json:"price" gorm:"not null;default:0" validate:"gte=0"` // per night
	ImageURL      string         `json:"image_url"`
	Rating        float64        `json:"rating" validate:"gte=0,lte=5"`
	Featured      bool           `json:"featured" gorm:"index;default:false"`
	Amenities     datatypes.JSON `json:"amenities"`
}

// AmenityList decodes the amenities column. Malformed or empty values yield nil.
func (h *Hotel) AmenityList() []string {
	if len(h.Amenities) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(h.Amenities, &list); err != nil {
		return nil
	}
	return list
}

// SetAmenities stores the list as a JSON array.
func (h *Hotel) SetAmenities(list []string) {
	h.Amenities = EncodeStrings(list)
}

// EncodeStrings marshals a string list for a JSON column. A nil list is stored as NULL.
func EncodeStrings(list []string) datatypes.JSON {
	if list == nil {
		return nil
	}
	raw, _ := json.Marshal(list)
	return datatypes.JSON(raw)
}

// HotelWithDestination is a hotel shaped for listings with its destination name.
type HotelWithDestination struct {
	Hotel
	DestinationName string `json:"destination_name"`
}

// UnknownDestination labels hotels whose destination no longer exists.
const UnknownDestination = "Unknown"
