package dto

import (
	bookingModel "roombook/internal/domains/booking/model"
	"roombook/shared/constant"
)

const ErrorRoomNotFound = "room not found"

// CustomerBookingResponse is one booking in the customers listing. Error is set
// instead of RoomName when the booked room cannot be resolved.
type CustomerBookingResponse struct {
	RoomName  string `json:"roomName"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Error     string `json:"error,omitempty"`
}

func (r *CustomerBookingResponse) FromModel(booking bookingModel.Booking, roomName string, found bool) {
	r.Date = booking.Date.String()
	r.StartTime = booking.StartTime.String()
	r.EndTime = booking.EndTime.String()

	if !found {
		r.Error = ErrorRoomNotFound

		return
	}

	r.RoomName = roomName
}

type CustomerBookingsResponse struct {
	CustomerName string                    `json:"customerName"`
	Bookings     []CustomerBookingResponse `json:"bookings"`
}

type HistoryBookingResponse struct {
	RoomName      string `json:"roomName"`
	Date          string `json:"date"`
	StartTime     string `json:"startTime"`
	EndTime       string `json:"endTime"`
	BookingID     int64  `json:"bookingId"`
	BookingDate   string `json:"bookingDate"`
	BookingStatus string `json:"bookingStatus"`
	Error         string `json:"error,omitempty"`
}

func (r *HistoryBookingResponse) FromModel(booking bookingModel.Booking, roomName string, found bool) {
	r.Date = booking.Date.String()
	r.StartTime = booking.StartTime.String()
	r.EndTime = booking.EndTime.String()
	r.BookingID = booking.ID
	r.BookingDate = booking.BookingDate.Format(constant.DateFormat)
	r.BookingStatus = booking.BookingStatus

	if !found {
		r.Error = ErrorRoomNotFound

		return
	}

	r.RoomName = roomName
}

type CustomerHistoryResponse struct {
	CustomerName string                   `json:"customerName"`
	Bookings     []HistoryBookingResponse `json:"bookings"`
}
