package model

import (
	"reflect"
	"strings"

	"github.com/jinzhu/copier"
)

// Request records for admin writes. Create inputs are copied onto the entity with
// copier; patches use pointer fields so that only supplied fields change.

type DestinationInput struct {
	Name        string  `json:"name" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=5"`
	Featured    bool    `json:"featured"`
}

func (in DestinationInput) ToModel() (*Destination, error) {
	var d Destination
	if err := copier.Copy(&d, &in); err != nil {
		return nil, err
	}
	return &d, nil
}

type DestinationPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Location    *string  `json:"location" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url"`
	Category    *string  `json:"category"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Featured    *bool    `json:"featured"`
}

type HotelInput struct {
	Name          string   `json:"name" validate:"required"`
	DestinationID string   `json:"destination_id"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" validate:"gte=0"`
	ImageURL      string   `json:"image_url"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	Featured      bool     `json:"featured"`
	AmenityList   []string `json:"amenities"`
}

func (in HotelInput) ToModel() (*Hotel, error) {
	var h Hotel
	if err := copier.Copy(&h, &in); err != nil {
		return nil, err
	}
	h.SetAmenities(in.AmenityList)
	return &h, nil
}

type HotelPatch struct {
	Name          *string   `json:"name" validate:"omitempty,min=1"`
	DestinationID *string   `json:"destination_id"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price" validate:"omitempty,gte=0"`
	ImageURL      *string   `json:"image_url"`
	Rating        *float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Featured      *bool     `json:"featured"`
	Amenities     *[]string `json:"amenities"`
}

type ActivityInput struct {
	Name          string  `json:"name" validate:"required"`
	DestinationID string  `json:"destination_id"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"gte=0"`
	Duration      string  `json:"duration"`
	ImageURL      string  `json:"image_url"`
}

func (in ActivityInput) ToModel() (*Activity, error) {
	var a Activity
	if err := copier.Copy(&a, &in); err != nil {
		return nil, err
	}
	return &a, nil
}

type ActivityPatch struct {
	Name          *string  `json:"name" validate:"omitempty,min=1"`
	DestinationID *string  `json:"destination_id"`
	Category      *string  `json:"category"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration      *string  `json:"duration"`
	ImageURL      *string  `json:"image_url"`
}

type ThemeInput struct {
	Name           string   `json:"name" validate:"required"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description"`
	ImageURL       string   `json:"image_url"`
	Featured       bool     `json:"featured"`
	DestinationIDs []string `json:"destination_ids" column:"-"`
	ActivityIDs    []string `json:"activity_ids" column:"-"`
}

func (in ThemeInput) ToModel() (*TravelTheme, error) {
	var t TravelTheme
	if err := copier.Copy(&t, &in); err != nil {
		return nil, err
	}
	return &t, nil
}

type ThemePatch struct {
	Name           *string   `json:"name" validate:"omitempty,min=1"`
	Slug           *string   `json:"slug"`
	Description    *string   `json:"description"`
	ImageURL       *string   `json:"image_url"`
	Featured       *bool     `json:"featured"`
	DestinationIDs *[]string `json:"destination_ids" column:"-"`
	ActivityIDs    *[]string `json:"activity_ids" column:"-"`
}

type BookingInput struct {
	ItemType      ItemType `json:"item_type" validate:"required,oneof=destination hotel activity"`
	ItemID        string   `json:"item_id" validate:"required"`
	BookingDate   string   `json:"booking_date" validate:"omitempty,datetime=2006-01-02"`
	Guests        int      `json:"guests" validate:"gte=0"`
	TotalAmount   float64  `json:"total_amount" validate:"gte=0"`
	CustomerName  string   `json:"customer_name" validate:"required"`
	CustomerEmail string   `json:"customer_email" validate:"required,email"`
}

func (in BookingInput) ToModel() (*Booking, error) {
	b := Booking{Status: BookingStatusPending}
	if err := copier.Copy(&b, &in); err != nil {
		return nil, err
	}
	if b.Guests == 0 {
		b.Guests = 1
	}
	return &b, nil
}

type LeadStatusInput struct {
	Status LeadStatus `json:"status" validate:"required,oneof=pending contacted converted closed"`
}

type BookingStatusInput struct {
	Status BookingStatus `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// InquiryInput is the public booking form. Name and email are checked by the
// inquiry form itself so that blank values never reach the store.
type InquiryInput struct {
	Name        string   `json:"name" validate:"max=200"`
	Email       string   `json:"email" validate:"max=255"`
	Phone       string   `json:"phone" validate:"max=50"`
	Message     string   `json:"message" validate:"max=5000"`
	ItemType    ItemType `json:"item_type" validate:"required,oneof=destination hotel activity"`
	ItemID      string   `json:"item_id" validate:"required"`
	HotelIDs    []string `json:"hotel_ids"`
	ActivityIDs []string `json:"activity_ids"`
}

// ContactInput is the general contact form: no catalog item, just a topic.
type ContactInput struct {
	Name     string `json:"name" validate:"max=200"`
	Email    string `json:"email" validate:"max=255"`
	Phone    string `json:"phone" validate:"max=50"`
	Category string `json:"category" validate:"omitempty,oneof='General Inquiry' 'Booking Question' 'Custom Package' 'Support' 'Feedback'"`
	Message  string `json:"message" validate:"required,max=5000"`
}

// QuoteInput prices a package selection without recording anything.
type QuoteInput struct {
	HotelIDs    []string `json:"hotel_ids"`
	ActivityIDs []string `json:"activity_ids"`
}

// Columns converts a patch struct into a column map holding only the fields that
// were supplied. Keys are the json names, which match the column names.
func Columns(patch interface{}) map[string]interface{} {
	columns := map[string]interface{}{}
	v := reflect.ValueOf(patch)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return columns
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("column") == "-" {
			continue
		}
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		value := v.Field(i)
		if value.Kind() == reflect.Ptr {
			if value.IsNil() {
				continue
			}
			columns[name] = value.Elem().Interface()
			continue
		}
		columns[name] = value.Interface()
	}
	return columns
}
