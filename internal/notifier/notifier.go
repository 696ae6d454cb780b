package notifier

import (
	"context"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"

	"roombook/config"
	"roombook/infras/kafka"
	"roombook/infras/otel"
	"roombook/internal/domains/booking/model"
	"roombook/shared/constant"
	"roombook/shared/logger"
)

// Notifier delivers a human readable notice for a confirmed booking.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}

type logNotifier struct{}

// NewLog returns a Notifier that writes notices to the application log.
func NewLog() Notifier {
	return logNotifier{}
}

func (logNotifier) Notify(ctx context.Context, subject, message string) error {
	logger.Ctx(ctx).Info().Str("subject", subject).Msg(message)

	return nil
}

// Worker consumes booking.confirmed events and hands each one to a Notifier.
type Worker struct {
	config   *config.Config
	kafka    kafka.Client
	otel     otel.Otel
	notifier Notifier
}

func NewWorker(cfg *config.Config, client kafka.Client, otl otel.Otel, n Notifier) *Worker {
	return &Worker{
		config:   cfg,
		kafka:    client,
		otel:     otl,
		notifier: n,
	}
}

// Run blocks until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	w.kafka.Consume(ctx, w.config.Kafka.ConsumerGroup, w.config.Kafka.Topics.BookingConfirmed, func(message kafkaGo.Message) {
		if err := w.Handle(ctx, message); err != nil {
			logger.Ctx(ctx).Error().Err(err).Str("key", string(message.Key)).Msg("Failed to handle booking event")
		}
	})
}

// Handle decodes one message and notifies about it. Events of other types are skipped.
func (w *Worker) Handle(ctx context.Context, message kafkaGo.Message) (err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".booking.confirmed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	event, err := kafka.Decode[model.ConfirmedEvent](message)
	if err != nil {
		return fmt.Errorf("failed to decode booking event: %w", err)
	}

	if event.EventType != model.EventTypeBookingConfirmed {
		logger.Ctx(ctx).Debug().Str("eventType", event.EventType).Msg("Skipping unrelated event")

		return nil
	}

	scope.SetAttributes(map[string]any{
		"event.id":   event.EventID,
		"booking.id": event.BookingID,
		"room.id":    event.RoomID,
	})

	err = w.notifier.Notify(ctx, Subject(event), Message(event))
	if err != nil {
		return fmt.Errorf("failed to notify booking %d: %w", event.BookingID, err)
	}

	return nil
}

func Subject(event model.ConfirmedEvent) string {
	return fmt.Sprintf("Booking #%d confirmed", event.BookingID)
}

func Message(event model.ConfirmedEvent) string {
	return fmt.Sprintf("%s booked room %d on %s from %s to %s",
		event.CustomerName, event.RoomID, event.Date, event.StartTime, event.EndTime)
}
