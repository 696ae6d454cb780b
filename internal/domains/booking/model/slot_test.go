package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/internal/domains/booking/model"
)

func TestParseDay(t *testing.T) {
	day, err := model.ParseDay("2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", day.String())

	_, err = model.ParseDay("2024-13-01")
	assert.Error(t, err)
}

func TestDayScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    string
		wantErr bool
	}{
		{name: "time value", src: time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), want: "2024-03-09"},
		{name: "bytes", src: []byte("2024-03-09"), want: "2024-03-09"},
		{name: "string", src: "2024-03-09", want: "2024-03-09"},
		{name: "malformed", src: "09/03/2024", wantErr: true},
		{name: "unsupported", src: 12, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var day model.Day

			err := day.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, day.String())

			value, err := day.Value()
			require.NoError(t, err)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestTimeOfDayScan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    string
		wantErr bool
	}{
		{name: "postgres time", src: time.Date(0, 1, 1, 9, 30, 0, 0, time.UTC), want: "09:30"},
		{name: "postgres text", src: []byte("09:30:00"), want: "09:30"},
		{name: "clock string", src: "17:05", want: "17:05"},
		{name: "malformed", src: "9am", wantErr: true},
		{name: "unsupported", src: 3.5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var clock model.TimeOfDay

			err := clock.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, clock.String())
		})
	}
}

func TestTimeOfDayOrdering(t *testing.T) {
	nine, err := model.ParseTimeOfDay("09:00")
	require.NoError(t, err)

	scanned := model.TimeOfDay{}
	require.NoError(t, scanned.Scan(time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC)))

	ten, err := model.ParseTimeOfDay("10:00")
	require.NoError(t, err)

	assert.True(t, nine.Equal(scanned.Time), "parsed and scanned clocks compare equal")
	assert.True(t, nine.Before(ten.Time))
	assert.Equal(t, 540, nine.Minutes())
}

func TestBookingSameSlot(t *testing.T) {
	day, err := model.ParseDay("2024-01-01")
	require.NoError(t, err)

	other, err := model.ParseDay("2024-01-02")
	require.NoError(t, err)

	a := model.Booking{RoomID: 1, Date: day}

	assert.True(t, a.SameSlot(model.Booking{RoomID: 1, Date: day}))
	assert.False(t, a.SameSlot(model.Booking{RoomID: 2, Date: day}))
	assert.False(t, a.SameSlot(model.Booking{RoomID: 1, Date: other}))
}

func TestConfirm(t *testing.T) {
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)

	booking := model.Booking{}
	booking.Confirm(now)

	assert.Equal(t, now, booking.BookingDate)
	assert.Equal(t, "confirmed", booking.BookingStatus)

	event := model.NewConfirmedEvent(booking)
	assert.Equal(t, model.EventTypeBookingConfirmed, event.EventType)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "0", event.Key())
}
