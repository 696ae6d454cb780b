package store

import (
	"context"
	"slices"
	"sync"

	"roombook/infras/otel"
	bookingModel "roombook/internal/domains/booking/model"
	customerModel "roombook/internal/domains/customer/model"
	roomModel "roombook/internal/domains/room/model"
	"roombook/shared/constant"
	"roombook/shared/failure"
)

const errRoomNotFound = "room not found"

// memoryStore keeps every collection in process. One lock guards all three
// slices so a reservation's check and both appends happen as a single step.
type memoryStore struct {
	mu sync.RWMutex

	rooms     []roomModel.Room
	bookings  []bookingModel.Booking
	customers []customerModel.Customer

	roomSeq    Sequence
	bookingSeq Sequence

	otel otel.Otel
}

func NewMemory(otl otel.Otel) Store {
	return &memoryStore{
		rooms:     []roomModel.Room{},
		bookings:  []bookingModel.Booking{},
		customers: []customerModel.Customer{},
		otel:      otl,
	}
}

func (m *memoryStore) CreateRoom(ctx context.Context, room roomModel.Room) (roomModel.Room, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".memory.CreateRoom")
	defer scope.End()

	m.mu.Lock()
	defer m.mu.Unlock()

	room.ID = m.roomSeq.Next()
	room.Amenities = slices.Clone(room.Amenities)
	m.rooms = append(m.rooms, room)

	scope.SetAttribute("room.id", room.ID)

	return cloneRoom(room), nil
}

func (m *memoryStore) ListRooms(ctx context.Context) ([]roomModel.Room, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".memory.ListRooms")
	defer scope.End()

	m.mu.RLock()
	defer m.mu.RUnlock()

	rooms := make([]roomModel.Room, len(m.rooms))
	for i, room := range m.rooms {
		rooms[i] = cloneRoom(room)
	}

	return rooms, nil
}

func (m *memoryStore) FindRoom(ctx context.Context, id int64) (roomModel.Room, bool, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".memory.FindRoom")
	defer scope.End()

	m.mu.RLock()
	defer m.mu.RUnlock()

	room, ok := m.findRoom(id)
	if !ok {
		return roomModel.Room{}, false, nil
	}

	return cloneRoom(room), true, nil
}

// findRoom expects the caller to hold the lock.
func (m *memoryStore) findRoom(id int64) (roomModel.Room, bool) {
	idx := slices.IndexFunc(m.rooms, func(room roomModel.Room) bool {
		return room.ID == id
	})
	if idx < 0 {
		return roomModel.Room{}, false
	}

	return m.rooms[idx], true
}

func (m *memoryStore) CreateBooking(ctx context.Context, booking bookingModel.Booking, check ConflictCheck) (res bookingModel.Booking, err error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".memory.CreateBooking")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.findRoom(booking.RoomID); !ok {
		return res, failure.NotFound(errRoomNotFound) // nolint:wrapcheck
	}

	existing := []bookingModel.Booking{}

	for _, held := range m.bookings {
		if held.SameSlot(booking) {
			existing = append(existing, held)
		}
	}

	if check != nil {
		if err = check(existing); err != nil {
			return res, err
		}
	}

	booking.ID = m.bookingSeq.Next()
	m.bookings = append(m.bookings, booking)
	m.customers = append(m.customers, customerModel.Customer{
		BookingID: booking.ID,
		Name:      booking.CustomerName,
	})

	scope.SetAttribute("booking.id", booking.ID)

	return booking, nil
}

func (m *memoryStore) ListBookings(ctx context.Context) ([]bookingModel.Booking, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".memory.ListBookings")
	defer scope.End()

	return m.filterBookings(func(bookingModel.Booking) bool { return true }), nil
}

func (m *memoryStore) ListBookingsForRoom(ctx context.Context, roomID int64) ([]bookingModel.Booking, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".memory.ListBookingsForRoom")
	defer scope.End()

	return m.filterBookings(func(booking bookingModel.Booking) bool {
		return booking.RoomID == roomID
	}), nil
}

func (m *memoryStore) ListBookingsForCustomer(ctx context.Context, name string) ([]bookingModel.Booking, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".memory.ListBookingsForCustomer")
	defer scope.End()

	return m.filterBookings(func(booking bookingModel.Booking) bool {
		return booking.CustomerName == name
	}), nil
}

func (m *memoryStore) filterBookings(keep func(bookingModel.Booking) bool) []bookingModel.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bookings := []bookingModel.Booking{}

	for _, booking := range m.bookings {
		if keep(booking) {
			bookings = append(bookings, booking)
		}
	}

	return bookings
}

func (m *memoryStore) ListCustomers(ctx context.Context) ([]customerModel.Customer, error) {
	_, scope := m.otel.NewScope(ctx, constant.OtelStoreScopeName, constant.OtelStoreScopeName+".memory.ListCustomers")
	defer scope.End()

	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.customers), nil
}

func cloneRoom(room roomModel.Room) roomModel.Room {
	room.Amenities = slices.Clone(room.Amenities)

	return room
}
