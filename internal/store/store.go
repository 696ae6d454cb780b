package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=./mocks/store_mock.go -package=mocks

import (
	"context"
	"fmt"

	"roombook/config"
	"roombook/infras/otel"
	"roombook/infras/postgres"
	bookingModel "roombook/internal/domains/booking/model"
	customerModel "roombook/internal/domains/customer/model"
	roomModel "roombook/internal/domains/room/model"
)

// ConflictCheck inspects the bookings already held for the candidate's room and
// date. A non-nil error aborts the reservation before anything is written.
type ConflictCheck func(existing []bookingModel.Booking) error

// Store owns rooms, bookings and customer records. Every list is returned in
// insertion order.
type Store interface {
	CreateRoom(ctx context.Context, room roomModel.Room) (roomModel.Room, error)
	ListRooms(ctx context.Context) ([]roomModel.Room, error)
	FindRoom(ctx context.Context, id int64) (roomModel.Room, bool, error)

	// CreateBooking checks the room exists, runs check against the room's bookings
	// on the same date and, if it passes, assigns an id and appends both the booking
	// and its customer record. It is atomic with respect to concurrent callers.
	CreateBooking(ctx context.Context, booking bookingModel.Booking, check ConflictCheck) (bookingModel.Booking, error)
	ListBookings(ctx context.Context) ([]bookingModel.Booking, error)
	ListBookingsForRoom(ctx context.Context, roomID int64) ([]bookingModel.Booking, error)
	ListBookingsForCustomer(ctx context.Context, name string) ([]bookingModel.Booking, error)

	ListCustomers(ctx context.Context) ([]customerModel.Customer, error)
}

// New returns the store selected by the configured driver.
func New(cfg *config.Config, db *postgres.Connection, otl otel.Otel) (Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory, "":
		return NewMemory(otl), nil
	case config.StoreDriverPostgres:
		if db == nil || db.Read == nil || db.Write == nil {
			return nil, fmt.Errorf("store driver %q requires a database connection", cfg.Store.Driver)
		}

		return NewPostgres(db, otl), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
