package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

const EventTypeBookingConfirmed = "booking.confirmed"

// ConfirmedEvent is published once a booking has been committed.
type ConfirmedEvent struct {
	EventID       string    `json:"eventId"`
	EventType     string    `json:"eventType"`
	BookingID     int64     `json:"bookingId"`
	RoomID        int64     `json:"roomId"`
	CustomerName  string    `json:"customerName"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	BookingDate   time.Time `json:"bookingDate"`
	BookingStatus string    `json:"bookingStatus"`
}

func NewConfirmedEvent(booking Booking) ConfirmedEvent {
	return ConfirmedEvent{
		EventID:       uuid.NewString(),
		EventType:     EventTypeBookingConfirmed,
		BookingID:     booking.ID,
		RoomID:        booking.RoomID,
		CustomerName:  booking.CustomerName,
		Date:          booking.Date.String(),
		StartTime:     booking.StartTime.String(),
		EndTime:       booking.EndTime.String(),
		BookingDate:   booking.BookingDate,
		BookingStatus: booking.BookingStatus,
	}
}

// Key partitions events by room so a room's bookings stay ordered.
func (e ConfirmedEvent) Key() string {
	return strconv.FormatInt(e.RoomID, 10)
}
