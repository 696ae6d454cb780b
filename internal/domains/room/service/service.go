package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/infras/otel"
	"roombook/internal/domains/room/model/dto"
	"roombook/internal/store"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	"roombook/shared/failure"
	"roombook/shared/timezone"
)

const (
	CacheGetRoom    = "room:get"
	CacheGetAllRoom = "room:gets"

	errRoomNotFound = "room not found"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	GetAll(ctx context.Context) ([]dto.RoomWithBookingsResponse, error)
	Bookings(ctx context.Context, id int64) ([]dto.RoomBookingResponse, error)
}

type serviceImpl struct {
	store store.Store
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	clock timezone.Clock
}

func New(st store.Store, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, clock timezone.Clock) Room {
	return &serviceImpl{
		store: st,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		clock: clock,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.store.CreateRoom(ctx, req.ToModel(s.clock()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	shared.InvalidateCaches(ctx, s.cache, CacheGetAllRoom)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(CacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	gen := cache.Generation(s.cache)

	room, found, err := s.store.FindRoom(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if !found {
		return res, failure.NotFound(errRoomNotFound) // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := cache.SaveIfCurrent(c, s.cache, gen, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// GetAll lists every room with its bookings, both in insertion order.
func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.RoomWithBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(CacheGetAllRoom)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	gen := cache.Generation(s.cache)

	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = make([]dto.RoomWithBookingsResponse, len(rooms))
	for i, room := range rooms {
		res[i].FromModel(room, bookings)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := cache.SaveIfCurrent(c, s.cache, gen, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Bookings(ctx context.Context, id int64) (res []dto.RoomBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Bookings")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, found, err := s.store.FindRoom(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if !found {
		return nil, failure.NotFound(errRoomNotFound) // nolint:wrapcheck
	}

	bookings, err := s.store.ListBookingsForRoom(ctx, id)
	if err != nil {
		log.Error().Err(err).Int64("roomId", id).Msg("failed to get room bookings")

		return nil, fmt.Errorf("failed to get room bookings: %w", err)
	}

	var view dto.RoomWithBookingsResponse
	view.FromModel(room, bookings)

	return view.Bookings, nil
}
