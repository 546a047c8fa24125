package kafka_test

import (
	"context"
	"errors"
	"rendezvous/config"
	"rendezvous/infras/kafka"
	"rendezvous/infras/kafka/mocks"
	otelMocks "rendezvous/infras/otel/mocks"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestToKafkaMessage(t *testing.T) {
	message := kafka.Message{Key: "42", Value: map[string]string{"status": "validated"}}

	msg, err := message.ToKafkaMessage()

	assert.NoError(t, err)
	assert.Equal(t, []byte("42"), msg.Key)
	assert.JSONEq(t, `{"status":"validated"}`, string(msg.Value))
}

func TestToKafkaMessageUnsupportedValue(t *testing.T) {
	message := kafka.Message{Key: "42", Value: make(chan int)}

	_, err := message.ToKafkaMessage()

	assert.Error(t, err)
}

func TestSendMessages(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockWriter(ctrl)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, msgs ...kafkaGo.Message) error {
			assert.Len(t, msgs, 1)
			assert.Equal(t, "booking.lifecycle", msgs[0].Topic)
			assert.Equal(t, []byte("7"), msgs[0].Key)

			return nil
		})

	client := kafka.NewWithWriter(writer, otelMocks.NewOtel())

	err := client.SendMessages(context.Background(), "booking.lifecycle", kafka.Message{Key: "7", Value: "created"})

	assert.NoError(t, err)
}

func TestSendMessagesWriteFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	writer := mocks.NewMockWriter(ctrl)

	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	client := kafka.NewWithWriter(writer, otelMocks.NewOtel())

	err := client.SendMessages(context.Background(), "booking.lifecycle", kafka.Message{Key: "7", Value: "created"})

	assert.ErrorContains(t, err, "broker down")
}

func TestDisabledClient(t *testing.T) {
	cfg := &config.Config{}

	client := kafka.New(cfg, otelMocks.NewOtel())

	assert.NoError(t, client.SendMessages(context.Background(), "any", kafka.Message{Key: "1", Value: 1}))
	assert.NoError(t, client.Close())
}
