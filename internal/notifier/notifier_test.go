package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"roombook/config"
	kafkaMocks "roombook/infras/kafka/mocks"
	otelMocks "roombook/infras/otel/mocks"
	"roombook/internal/domains/booking/model"
	"roombook/internal/notifier"
)

type notice struct {
	subject string
	message string
}

type recordingNotifier struct {
	notices []notice
	err     error
}

func (r *recordingNotifier) Notify(_ context.Context, subject, message string) error {
	if r.err != nil {
		return r.err
	}

	r.notices = append(r.notices, notice{subject: subject, message: message})

	return nil
}

func confirmedMessage(t *testing.T) kafkaGo.Message {
	t.Helper()

	date, err := model.ParseDay("2024-01-01")
	require.NoError(t, err)
	start, err := model.ParseTimeOfDay("10:00")
	require.NoError(t, err)
	end, err := model.ParseTimeOfDay("12:00")
	require.NoError(t, err)

	event := model.NewConfirmedEvent(model.Booking{
		ID:            7,
		RoomID:        2,
		CustomerName:  "Ann",
		Date:          date,
		StartTime:     start,
		EndTime:       end,
		BookingDate:   time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		BookingStatus: "confirmed",
	})

	value, err := json.Marshal(event)
	require.NoError(t, err)

	return kafkaGo.Message{Key: []byte(event.Key()), Value: value}
}

func TestWorkerHandle(t *testing.T) {
	t.Run("notifies confirmed booking", func(t *testing.T) {
		rec := &recordingNotifier{}
		worker := notifier.NewWorker(&config.Config{}, nil, otelMocks.NewOtel(), rec)

		err := worker.Handle(context.Background(), confirmedMessage(t))

		require.NoError(t, err)
		require.Len(t, rec.notices, 1)
		assert.Equal(t, "Booking #7 confirmed", rec.notices[0].subject)
		assert.Equal(t, "Ann booked room 2 on 2024-01-01 from 10:00 to 12:00", rec.notices[0].message)
	})

	t.Run("invalid payload", func(t *testing.T) {
		rec := &recordingNotifier{}
		worker := notifier.NewWorker(&config.Config{}, nil, otelMocks.NewOtel(), rec)

		err := worker.Handle(context.Background(), kafkaGo.Message{Value: []byte("{not json")})

		require.Error(t, err)
		assert.Empty(t, rec.notices)
	})

	t.Run("skips other event types", func(t *testing.T) {
		rec := &recordingNotifier{}
		worker := notifier.NewWorker(&config.Config{}, nil, otelMocks.NewOtel(), rec)

		err := worker.Handle(context.Background(), kafkaGo.Message{Value: []byte(`{"eventType":"booking.cancelled"}`)})

		require.NoError(t, err)
		assert.Empty(t, rec.notices)
	})

	t.Run("notifier failure", func(t *testing.T) {
		rec := &recordingNotifier{err: errors.New("smtp down")}
		worker := notifier.NewWorker(&config.Config{}, nil, otelMocks.NewOtel(), rec)

		err := worker.Handle(context.Background(), confirmedMessage(t))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "smtp down")
	})
}

func TestWorkerRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "roombook"
	cfg.Kafka.Topics.BookingConfirmed = "booking.confirmed"

	msg := confirmedMessage(t)

	client.EXPECT().
		Consume(gomock.Any(), "roombook", "booking.confirmed", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, handler func(kafkaGo.Message)) {
			handler(msg)
			handler(kafkaGo.Message{Value: []byte("garbage")})
		})

	rec := &recordingNotifier{}
	worker := notifier.NewWorker(cfg, client, otelMocks.NewOtel(), rec)

	worker.Run(context.Background())

	assert.Len(t, rec.notices, 1)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, notifier.NewLog().Notify(context.Background(), "subject", "message"))
}
