package model

import (
	"github.com/lib/pq"

	"roombook/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID            = "id"
	FieldRoomName      = "room_name"
	FieldNumberOfSeats = "number_of_seats"
	FieldAmenities     = "amenities"
	FieldPricePerHour  = "price_per_hour"
)

type Room struct {
	ID            int64          `db:"id"`
	RoomName      string         `db:"room_name"`
	NumberOfSeats int            `db:"number_of_seats"`
	Amenities     pq.StringArray `db:"amenities"`
	PricePerHour  float64        `db:"price_per_hour"`
	model.Metadata
}
