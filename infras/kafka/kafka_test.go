package kafka_test

import (
	"context"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roombook/config"
	"roombook/infras/kafka"
)

type event struct {
	BookingID int64  `json:"bookingId"`
	RoomName  string `json:"roomName"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{Key: "1", Value: event{BookingID: 1, RoomName: "Orion"}}

	kafkaMsg, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), kafkaMsg.Key)
	assert.JSONEq(t, `{"bookingId":1,"roomName":"Orion"}`, string(kafkaMsg.Value))

	decoded, err := kafka.Decode[event](kafkaMsg)
	require.NoError(t, err)
	assert.Equal(t, event{BookingID: 1, RoomName: "Orion"}, decoded)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := kafka.Decode[event](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
}

func TestToKafkaMessageUnsupportedValue(t *testing.T) {
	msg := kafka.Message{Key: "1", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDisabledClient(t *testing.T) {
	cfg := &config.Config{}
	client := kafka.New(cfg)

	err := client.SendMessages(context.Background(), "booking.confirmed", kafka.Message{Key: "1", Value: event{}})
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	called := false
	client.Consume(ctx, "", "booking.confirmed", func(_ kafkaGo.Message) { called = true })

	assert.False(t, called)
	assert.NoError(t, client.Close())
}
