package model

type Activity struct {
	Base
	Name          string  `json:"name" gorm:"not null" validate:"required"`
	DestinationID string  `json:"destination_id" gorm:"type:varchar(36);index"`
	Category      string  `json:"category" gorm:"index"`
	Description   string  `json:"description" gorm:"type:text"`
	Price         float64 `json:"price" gorm:"not null;default:0" validate:"gte=0"`
	Duration      string  `json:"duration"` // free text, e.g. "3 hours"
	ImageURL      string  `json:"image_url"`
}
