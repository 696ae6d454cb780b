package store_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/config"
	"roombook/infras/otel/mocks"
	bookingModel "roombook/internal/domains/booking/model"
	roomModel "roombook/internal/domains/room/model"
	"roombook/internal/store"
	"roombook/shared/failure"
)

func newBooking(t *testing.T, roomID int64, customer, date, start, end string) bookingModel.Booking {
	t.Helper()

	day, err := bookingModel.ParseDay(date)
	require.NoError(t, err)

	startTime, err := bookingModel.ParseTimeOfDay(start)
	require.NoError(t, err)

	endTime, err := bookingModel.ParseTimeOfDay(end)
	require.NoError(t, err)

	return bookingModel.Booking{
		RoomID:       roomID,
		CustomerName: customer,
		Date:         day,
		StartTime:    startTime,
		EndTime:      endTime,
	}
}

func allow(_ []bookingModel.Booking) error {
	return nil
}

func rejectAny(existing []bookingModel.Booking) error {
	if len(existing) > 0 {
		return failure.Conflict("room is already booked for the given date and time")
	}

	return nil
}

func TestMemoryStore_CreateRoom(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(mocks.NewOtel())

	for want := int64(1); want <= 3; want++ {
		room, err := s.CreateRoom(ctx, roomModel.Room{RoomName: "Alpha", Amenities: []string{"tv"}})
		require.NoError(t, err)
		assert.Equal(t, want, room.ID)
	}

	rooms, err := s.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)

	rooms[0].Amenities[0] = "changed"

	found, ok, err := s.FindRoom(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tv", found.Amenities[0])

	_, ok, err = s.FindRoom(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_CreateBooking(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(mocks.NewOtel())

	_, err := s.CreateRoom(ctx, roomModel.Room{RoomName: "Alpha"})
	require.NoError(t, err)
	_, err = s.CreateRoom(ctx, roomModel.Room{RoomName: "Beta"})
	require.NoError(t, err)

	first, err := s.CreateBooking(ctx, newBooking(t, 1, "Ann", "2024-01-01", "09:00", "10:00"), allow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	second, err := s.CreateBooking(ctx, newBooking(t, 2, "Bo", "2024-01-01", "09:00", "10:00"), allow)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)

	var seen []bookingModel.Booking

	third, err := s.CreateBooking(ctx, newBooking(t, 1, "Ann", "2024-01-01", "11:00", "12:00"), func(existing []bookingModel.Booking) error {
		seen = existing

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), third.ID)

	require.Len(t, seen, 1, "check only sees bookings for the same room and date")
	assert.Equal(t, int64(1), seen[0].ID)

	bookings, err := s.ListBookings(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 3)

	roomBookings, err := s.ListBookingsForRoom(ctx, 1)
	require.NoError(t, err)
	require.Len(t, roomBookings, 2)
	assert.Equal(t, []int64{1, 3}, []int64{roomBookings[0].ID, roomBookings[1].ID})

	annBookings, err := s.ListBookingsForCustomer(ctx, "Ann")
	require.NoError(t, err)
	assert.Len(t, annBookings, 2)

	nobody, err := s.ListBookingsForCustomer(ctx, "Nobody")
	require.NoError(t, err)
	assert.Empty(t, nobody)
	assert.NotNil(t, nobody)

	customers, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "Ann", customers[0].Name)
	assert.Equal(t, "Bo", customers[1].Name)
	assert.Equal(t, "Ann", customers[2].Name)
	assert.Equal(t, int64(3), customers[2].BookingID)
}

func TestMemoryStore_CreateBookingFailuresLeaveStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(mocks.NewOtel())

	_, err := s.CreateRoom(ctx, roomModel.Room{RoomName: "Alpha"})
	require.NoError(t, err)

	_, err = s.CreateBooking(ctx, newBooking(t, 1, "Ann", "2024-01-01", "09:00", "10:00"), rejectAny)
	require.NoError(t, err)

	tests := []struct {
		name    string
		booking bookingModel.Booking
		check   store.ConflictCheck
		code    int
	}{
		{
			name:    "conflict",
			booking: newBooking(t, 1, "Bo", "2024-01-01", "09:30", "10:30"),
			check:   rejectAny,
			code:    http.StatusConflict,
		},
		{
			name:    "unknown room",
			booking: newBooking(t, 9, "Bo", "2024-01-01", "09:30", "10:30"),
			check:   allow,
			code:    http.StatusNotFound,
		},
		{
			name:    "check error",
			booking: newBooking(t, 1, "Bo", "2024-01-02", "09:30", "10:30"),
			check:   func(_ []bookingModel.Booking) error { return errors.New("boom") },
			code:    http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateBooking(ctx, tt.booking, tt.check)
			assert.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))

			bookings, err := s.ListBookings(ctx)
			require.NoError(t, err)
			assert.Len(t, bookings, 1)

			customers, err := s.ListCustomers(ctx)
			require.NoError(t, err)
			assert.Len(t, customers, 1)
		})
	}

	next, err := s.CreateBooking(ctx, newBooking(t, 1, "Cy", "2024-01-01", "10:00", "11:00"), allow)
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.ID, "rejected reservations do not consume ids")
}

func TestMemoryStore_ConcurrentReservations(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(mocks.NewOtel())

	_, err := s.CreateRoom(ctx, roomModel.Room{RoomName: "Alpha"})
	require.NoError(t, err)

	const attempts = 50

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)

	candidate := newBooking(t, 1, "Ann", "2024-01-01", "09:00", "10:00")

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := s.CreateBooking(ctx, candidate, rejectAny)

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				succeeded++
			} else if failure.Is(err, http.StatusConflict) {
				conflicts++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)

	customers, err := s.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestMemoryStore_ConcurrentIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemory(mocks.NewOtel())

	_, err := s.CreateRoom(ctx, roomModel.Room{RoomName: "Alpha"})
	require.NoError(t, err)

	const attempts = 40

	var wg sync.WaitGroup

	for i := range attempts {
		date := "2024-02-01"
		if i%2 == 0 {
			date = "2024-02-02"
		}

		candidate := newBooking(t, 1, "Ann", date, "09:00", "10:00")

		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := s.CreateBooking(ctx, candidate, allow)
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	bookings, err := s.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, bookings, attempts)

	for i := 1; i < len(bookings); i++ {
		assert.Greater(t, bookings[i].ID, bookings[i-1].ID)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		driver  string
		wantErr bool
	}{
		{name: "default driver", driver: ""},
		{name: "memory driver", driver: config.StoreDriverMemory},
		{name: "postgres without connection", driver: config.StoreDriverPostgres, wantErr: true},
		{name: "unknown driver", driver: "sqlite", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Store.Driver = tt.driver

			s, err := store.New(cfg, nil, mocks.NewOtel())
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, s)

				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestSequence(t *testing.T) {
	var seq store.Sequence

	assert.Equal(t, int64(0), seq.Last())
	assert.Equal(t, int64(1), seq.Next())
	assert.Equal(t, int64(2), seq.Next())
	assert.Equal(t, int64(2), seq.Last())
}
