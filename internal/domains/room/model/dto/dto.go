package dto

import (
	"slices"
	"time"

	bookingModel "roombook/internal/domains/booking/model"
	"roombook/internal/domains/room/model"
	gDto "roombook/shared/dto"
	gModel "roombook/shared/model"
)

type CreateRoomRequest struct {
	NumberOfSeats int      `json:"numberOfSeats"`
	Amenities     []string `json:"amenities"`
	PricePerHour  float64  `json:"pricePerHour"`
	RoomName      string   `json:"roomName"`
}

func (c *CreateRoomRequest) ToModel(now time.Time) model.Room {
	amenities := slices.Clone(c.Amenities)
	if amenities == nil {
		amenities = []string{}
	}

	return model.Room{
		RoomName:      c.RoomName,
		NumberOfSeats: c.NumberOfSeats,
		Amenities:     amenities,
		PricePerHour:  c.PricePerHour,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}
}

type RoomResponse struct {
	ID            int64    `json:"id"`
	NumberOfSeats int      `json:"numberOfSeats"`
	Amenities     []string `json:"amenities"`
	PricePerHour  float64  `json:"pricePerHour"`
	RoomName      string   `json:"roomName"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.NumberOfSeats = model.NumberOfSeats
	r.Amenities = []string(model.Amenities)
	r.PricePerHour = model.PricePerHour
	r.RoomName = model.RoomName
	r.Metadata.FromModel(model.Metadata)

	if r.Amenities == nil {
		r.Amenities = []string{}
	}
}

type RoomBookingResponse struct {
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

type RoomWithBookingsResponse struct {
	RoomResponse
	Bookings []RoomBookingResponse `json:"bookings"`
}

// FromModel fills the room view with the bookings that belong to it, keeping their order.
func (r *RoomWithBookingsResponse) FromModel(room model.Room, bookings []bookingModel.Booking) {
	r.RoomResponse.FromModel(room)

	r.Bookings = []RoomBookingResponse{}
	for _, booking := range bookings {
		if booking.RoomID != room.ID {
			continue
		}

		r.Bookings = append(r.Bookings, RoomBookingResponse{
			CustomerName: booking.CustomerName,
			Date:         booking.Date.String(),
			StartTime:    booking.StartTime.String(),
			EndTime:      booking.EndTime.String(),
		})
	}
}
