package model

type Destination struct {
	Base
	Name        string  `json:"name" gorm:"not null" validate:"required"`
	Location    string  `json:"location" gorm:"not null" validate:"required"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null;default:0" validate:"gte=0"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category" gorm:"index"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Featured    bool    `json:"featured" gorm:"index;default:false"`
}

// Destination categories used by the public filters.
const (
	CategoryBeach     = "beach"
	CategoryMountain  = "mountain"
	CategoryCity      = "city"
	CategoryCultural  = "cultural"
	CategoryAdventure = "adventure"
)
