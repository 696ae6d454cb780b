package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/infras/otel"
	bookingModel "roombook/internal/domains/booking/model"
	"roombook/internal/domains/customer/model/dto"
	"roombook/internal/store"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
)

const (
	CacheGetAllCustomer = "customer:gets"
	CacheGetHistory     = "customer:history"
)

type Customer interface {
	GetAll(ctx context.Context) ([]dto.CustomerBookingsResponse, error)
	History(ctx context.Context, name string) (dto.CustomerHistoryResponse, error)
}

type serviceImpl struct {
	store store.Store
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(st store.Store, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		store: st,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// roomNames resolves room names once per projection. A room missing from the
// result is reported per booking instead of failing the projection.
func (s *serviceImpl) roomNames(ctx context.Context) (map[int64]string, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	names := make(map[int64]string, len(rooms))
	for _, room := range rooms {
		names[room.ID] = room.RoomName
	}

	return names, nil
}

// GetAll returns one entry per customer record, so a name with several bookings
// appears several times, each listing every booking made under that name.
func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.CustomerBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(CacheGetAllCustomer)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customers")

		return res, nil
	}

	gen := cache.Generation(s.cache)

	customers, err := s.store.ListCustomers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return nil, fmt.Errorf("failed to get customers: %w", err)
	}

	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	names, err := s.roomNames(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve room names")

		return nil, err
	}

	byCustomer := map[string][]bookingModel.Booking{}
	for _, booking := range bookings {
		byCustomer[booking.CustomerName] = append(byCustomer[booking.CustomerName], booking)
	}

	res = make([]dto.CustomerBookingsResponse, len(customers))

	for i, customer := range customers {
		items := byCustomer[customer.Name]

		res[i].CustomerName = customer.Name
		res[i].Bookings = make([]dto.CustomerBookingResponse, len(items))

		for j, booking := range items {
			roomName, found := names[booking.RoomID]
			if !found {
				log.Warn().Int64("bookingId", booking.ID).Int64("roomId", booking.RoomID).Msg("booking references missing room")
			}

			res[i].Bookings[j].FromModel(booking, roomName, found)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := cache.SaveIfCurrent(c, s.cache, gen, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
		}
	}()

	return res, nil
}

// History lists the bookings made under name. An unknown name yields an empty list.
func (s *serviceImpl) History(ctx context.Context, name string) (res dto.CustomerHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".customer.History")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(CacheGetHistory, name)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customer history")

		return res, nil
	}

	gen := cache.Generation(s.cache)

	bookings, err := s.store.ListBookingsForCustomer(ctx, name)
	if err != nil {
		log.Error().Err(err).Str("customerName", name).Msg("failed to get customer bookings")

		return res, fmt.Errorf("failed to get customer bookings: %w", err)
	}

	names, err := s.roomNames(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve room names")

		return res, err
	}

	res.CustomerName = name
	res.Bookings = make([]dto.HistoryBookingResponse, len(bookings))

	for i, booking := range bookings {
		roomName, found := names[booking.RoomID]
		res.Bookings[i].FromModel(booking, roomName, found)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := cache.SaveIfCurrent(c, s.cache, gen, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer history to cache")
		}
	}()

	return res, nil
}
