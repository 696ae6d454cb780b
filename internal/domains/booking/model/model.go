package model

import (
	"time"

	"roombook/shared/constant"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldCustomerName  = "customer_name"
	FieldDate          = "date"
	FieldStartTime     = "start_time"
	FieldEndTime       = "end_time"
	FieldBookingDate   = "booking_date"
	FieldBookingStatus = "booking_status"
)

type Booking struct {
	ID            int64     `db:"id"`
	RoomID        int64     `db:"room_id"`
	CustomerName  string    `db:"customer_name"`
	Date          Day       `db:"date"`
	StartTime     TimeOfDay `db:"start_time"`
	EndTime       TimeOfDay `db:"end_time"`
	BookingDate   time.Time `db:"booking_date"`
	BookingStatus string    `db:"booking_status"`
}

// SameSlot reports whether b is for the same room on the same calendar day as other.
func (b Booking) SameSlot(other Booking) bool {
	return b.RoomID == other.RoomID && b.Date.Equal(other.Date)
}

// Confirm stamps the creation time and the only status a booking can have.
func (b *Booking) Confirm(now time.Time) {
	b.BookingDate = now
	b.BookingStatus = constant.BookingStatusConfirmed
}
