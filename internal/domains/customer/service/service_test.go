package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/config"
	"roombook/infras/otel/mocks"
	bookingModel "roombook/internal/domains/booking/model"
	customerModel "roombook/internal/domains/customer/model"
	"roombook/internal/domains/customer/model/dto"
	"roombook/internal/domains/customer/service"
	roomModel "roombook/internal/domains/room/model"
	"roombook/internal/store"
	storeMocks "roombook/internal/store/mocks"
	"roombook/shared/cache"
	cacheMocks "roombook/shared/cache/mocks"
)

func booking(t *testing.T, id, roomID int64, customer, start, end string) bookingModel.Booking {
	t.Helper()

	day, err := bookingModel.ParseDay("2024-01-01")
	require.NoError(t, err)

	startTime, err := bookingModel.ParseTimeOfDay(start)
	require.NoError(t, err)

	endTime, err := bookingModel.ParseTimeOfDay(end)
	require.NoError(t, err)

	b := bookingModel.Booking{
		ID:           id,
		RoomID:       roomID,
		CustomerName: customer,
		Date:         day,
		StartTime:    startTime,
		EndTime:      endTime,
	}
	b.Confirm(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))

	return b
}

func TestCustomerService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storeMocks.NewMockStore(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockStore, &config.Config{}, mockCache, mocks.NewOtel())

	mockCache.EXPECT().Get(gomock.Any(), "customer:gets", gomock.Any()).Return(cache.Nil)
	mockStore.EXPECT().ListCustomers(gomock.Any()).Return([]customerModel.Customer{
		{BookingID: 1, Name: "Ann"},
		{BookingID: 2, Name: "Bo"},
		{BookingID: 3, Name: "Ann"},
	}, nil)
	mockStore.EXPECT().ListBookings(gomock.Any()).Return([]bookingModel.Booking{
		booking(t, 1, 1, "Ann", "09:00", "10:00"),
		booking(t, 2, 9, "Bo", "09:00", "10:00"),
		booking(t, 3, 1, "Ann", "10:00", "11:00"),
	}, nil)
	mockStore.EXPECT().ListRooms(gomock.Any()).Return([]roomModel.Room{{ID: 1, RoomName: "Alpha"}}, nil)
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 3, "one entry per customer record")

	assert.Equal(t, "Ann", res[0].CustomerName)
	assert.Equal(t, res[0], res[2])
	assert.Equal(t, []dto.CustomerBookingResponse{
		{RoomName: "Alpha", Date: "2024-01-01", StartTime: "09:00", EndTime: "10:00"},
		{RoomName: "Alpha", Date: "2024-01-01", StartTime: "10:00", EndTime: "11:00"},
	}, res[0].Bookings)

	require.Len(t, res[1].Bookings, 1)
	assert.Equal(t, "", res[1].Bookings[0].RoomName)
	assert.Equal(t, dto.ErrorRoomNotFound, res[1].Bookings[0].Error)
}

func TestCustomerService_GetAllErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storeMocks.NewMockStore(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockStore, &config.Config{}, mockCache, mocks.NewOtel())

	tests := []struct {
		name      string
		setupMock func()
	}{
		{
			name: "customers",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				mockStore.EXPECT().ListCustomers(gomock.Any()).Return(nil, errors.New("database error"))
			},
		},
		{
			name: "bookings",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				mockStore.EXPECT().ListCustomers(gomock.Any()).Return([]customerModel.Customer{}, nil)
				mockStore.EXPECT().ListBookings(gomock.Any()).Return(nil, errors.New("database error"))
			},
		},
		{
			name: "rooms",
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				mockStore.EXPECT().ListCustomers(gomock.Any()).Return([]customerModel.Customer{}, nil)
				mockStore.EXPECT().ListBookings(gomock.Any()).Return([]bookingModel.Booking{}, nil)
				mockStore.EXPECT().ListRooms(gomock.Any()).Return(nil, errors.New("database error"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.GetAll(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestCustomerService_History(t *testing.T) {
	otl := mocks.NewOtel()
	st := store.NewMemory(otl)
	ctx := context.Background()

	_, err := st.CreateRoom(ctx, roomModel.Room{RoomName: "Alpha"})
	require.NoError(t, err)

	allow := func([]bookingModel.Booking) error { return nil }

	_, err = st.CreateBooking(ctx, booking(t, 0, 1, "Ann", "09:00", "10:00"), allow)
	require.NoError(t, err)
	_, err = st.CreateBooking(ctx, booking(t, 0, 1, "Bo", "10:00", "11:00"), allow)
	require.NoError(t, err)

	svc := service.New(st, &config.Config{}, cache.NewRedisCache(nil, otl), otl)

	res, err := svc.History(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, "Ann", res.CustomerName)
	assert.Equal(t, []dto.HistoryBookingResponse{
		{
			RoomName:      "Alpha",
			Date:          "2024-01-01",
			StartTime:     "09:00",
			EndTime:       "10:00",
			BookingID:     1,
			BookingDate:   "2024-01-01T08:00:00Z",
			BookingStatus: "confirmed",
		},
	}, res.Bookings)

	unknown, err := svc.History(ctx, "Nobody")
	require.NoError(t, err)
	assert.Equal(t, "Nobody", unknown.CustomerName)
	assert.NotNil(t, unknown.Bookings)
	assert.Empty(t, unknown.Bookings)
}

func TestCustomerService_HistoryCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := storeMocks.NewMockStore(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	svc := service.New(mockStore, &config.Config{}, mockCache, mocks.NewOtel())

	mockCache.EXPECT().
		Get(gomock.Any(), "customer:history:Ann", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, value any) error {
			res, _ := value.(*dto.CustomerHistoryResponse)
			res.CustomerName = "Ann"

			return nil
		})

	res, err := svc.History(context.Background(), "Ann")
	require.NoError(t, err)
	assert.Equal(t, "Ann", res.CustomerName)
}
