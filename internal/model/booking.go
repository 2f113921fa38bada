package model

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

type Booking struct {
	Base
	ItemType      ItemType      `json:"item_type" gorm:"size:20;index" validate:"required,oneof=destination hotel activity"`
	ItemID        string        `json:"item_id" gorm:"type:varchar(36);index" validate:"required"`
	BookingDate   string        `json:"booking_date" validate:"omitempty,datetime=2006-01-02"`
	Guests        int           `json:"guests" gorm:"default:1" validate:"gte=0"`
	TotalAmount   float64       `json:"total_amount" validate:"gte=0"`
	CustomerName  string        `json:"customer_name" gorm:"not null" validate:"required"`
	CustomerEmail string        `json:"customer_email" gorm:"not null" validate:"required,email"`
	Status        BookingStatus `json:"status" gorm:"size:20;default:'pending';index" validate:"required,oneof=pending confirmed cancelled"`
}
