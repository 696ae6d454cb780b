package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/model"
	"roombook/internal/domains/booking/model/dto"
	"roombook/internal/store"
	"roombook/shared"
	"roombook/shared/cache"
	"roombook/shared/constant"
	"roombook/shared/failure"
	"roombook/shared/logger"
	"roombook/shared/timezone"
	"roombook/shared/validator"
)

const (
	CacheGetAllBooking = "booking:gets"

	// projections that embed booking data
	CacheRoomProjection     = "room:gets"
	CacheCustomerProjection = "customer"

	errBookingConflict = "room is already booked for the given date and time"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context) ([]dto.BookingResponse, error)
}

type serviceImpl struct {
	store   store.Store
	cfg     *config.Config
	cache   cache.RedisCache
	kafka   kafka.Client
	otel    otel.Otel
	clock   timezone.Clock
	overlap OverlapPolicy
}

func New(st store.Store, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel, clock timezone.Clock) (Booking, error) {
	overlap, err := NewOverlapPolicy(cfg.App.Reservation.OverlapPolicy)
	if err != nil {
		return nil, err
	}

	return &serviceImpl{
		store:   st,
		cfg:     cfg,
		cache:   cache,
		kafka:   kafka,
		otel:    otel,
		clock:   clock,
		overlap: overlap,
	}, nil
}

// Create reserves the requested slot. Nothing is written unless the slot is
// free under the configured overlap policy.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err
	}

	candidate, err := req.ToModel()
	if err != nil {
		return res, err
	}

	candidate.Confirm(s.clock())

	booking, err := s.store.CreateBooking(ctx, candidate, s.conflictCheck(candidate))
	if err != nil {
		if failure.GetCode(err) != http.StatusInternalServerError {
			logger.Ctx(ctx).Info().Err(err).
				Int64("roomId", candidate.RoomID).
				Str("date", candidate.Date.String()).
				Msg("booking rejected")

			return res, err
		}

		logger.Ctx(ctx).Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	scope.SetAttribute("booking.id", booking.ID)

	s.invalidate(ctx)
	s.publish(ctx, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) conflictCheck(candidate model.Booking) store.ConflictCheck {
	return func(existing []model.Booking) error {
		for _, held := range existing {
			if s.overlap(candidate, held) {
				log.Debug().
					Int64("bookingId", held.ID).
					Str("start", held.StartTime.String()).
					Str("end", held.EndTime.String()).
					Msg("slot overlaps existing booking")

				return failure.Conflict(errBookingConflict) // nolint:wrapcheck
			}
		}

		return nil
	}
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	for _, prefix := range []string{CacheGetAllBooking, CacheRoomProjection, CacheCustomerProjection} {
		shared.InvalidateCaches(ctx, s.cache, prefix)
	}
}

func (s *serviceImpl) publish(ctx context.Context, booking model.Booking) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.publish")
	defer scope.End()

	event := model.NewConfirmedEvent(booking)

	err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingConfirmed, kafka.Message{
		Key:   event.Key(),
		Value: event,
	})
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Int64("bookingId", booking.ID).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(CacheGetAllBooking)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	gen := cache.Generation(s.cache)

	models, err := s.store.ListBookings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = dto.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := cache.SaveIfCurrent(c, s.cache, gen, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}
