package model

type TravelTheme struct {
	Base
	Name        string `json:"name" gorm:"not null" validate:"required"`
	Slug        string `json:"slug" gorm:"uniqueIndex;not null" validate:"required"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"image_url"`
	Featured    bool   `json:"featured" gorm:"index;default:false"`
}

func (TravelTheme) TableName() string {
	return "travel_themes"
}

type TravelThemeDestination struct {
	Base
	TravelThemeID string `json:"travel_theme_id" gorm:"type:varchar(36);index;not null" validate:"required"`
	DestinationID string `json:"destination_id" gorm:"type:varchar(36);index;not null" validate:"required"`
}

func (TravelThemeDestination) TableName() string {
	return "travel_theme_destinations"
}

type TravelThemeActivity struct {
	Base
	TravelThemeID string `json:"travel_theme_id" gorm:"type:varchar(36);index;not null" validate:"required"`
	ActivityID    string `json:"activity_id" gorm:"type:varchar(36);index;not null" validate:"required"`
}

func (TravelThemeActivity) TableName() string {
	return "travel_theme_activities"
}

// ThemeDetail is a theme with its related destinations and activities resolved.
type ThemeDetail struct {
	TravelTheme
	Destinations []Destination `json:"destinations"`
	Activities   []Activity    `json:"activities"`
}
