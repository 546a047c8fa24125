package service_test

import (
	"context"
	"errors"
	"net/http"
	"rendezvous/config"
	"rendezvous/infras/downstream"
	downstreamMocks "rendezvous/infras/downstream/mocks"
	otelMocks "rendezvous/infras/otel/mocks"
	"rendezvous/internal/domains/booking/model"
	"rendezvous/internal/domains/notification/service"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const receiveURL = "http://gate.internal/qr-codes/receive"

func enabledConfig() *config.Config {
	cfg := &config.Config{}
	cfg.External.Downstream.Enable = true
	cfg.External.Downstream.BaseURL = "http://gate.internal"
	cfg.External.Downstream.Source = "portail_externe"

	return cfg
}

func booking() model.Booking {
	b := model.Booking{
		ID:              7,
		UniqueCode:      "0f4c2a7e-5b1d-4f8e-9a37-2c6d1e8b9f00",
		DriverCode:      "A123456",
		Plate:           "123-A-456",
		ContainerNumber: "ABCD1234567",
		ContainerState:  model.ContainerFull,
		Operation:       model.OperationImport,
		ScheduledDate:   time.Date(2030, 3, 12, 0, 0, 0, 0, time.UTC),
		ScheduledTime:   model.NewClockTime(9, 0),
		Status:          model.StatusPending,
	}
	b.CreatedAt = time.Date(2030, 3, 11, 8, 30, 0, 0, time.UTC)

	return b
}

func TestNotify(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := downstreamMocks.NewMockClient(ctrl)

	client.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, body any) error {
		payload, ok := body.(model.DownstreamPayload)
		require.True(t, ok)
		assert.Equal(t, "portail_externe", payload.Source)
		assert.Equal(t, int64(7), payload.BookingID)
		assert.Equal(t, model.StatusPending, payload.Status)
		assert.Equal(t, "2030-03-11T08:30:00Z", payload.CreatedAt)

		return nil
	})

	svc := service.New(client, enabledConfig(), otelMocks.NewOtel())

	assert.NoError(t, svc.Notify(context.Background(), booking()))
}

func TestNotifyRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := downstreamMocks.NewMockClient(ctrl)

	client.EXPECT().Send(gomock.Any(), gomock.Any()).Return(&downstream.StatusError{URL: receiveURL, Status: http.StatusBadRequest})
	client.EXPECT().URL().Return(receiveURL)

	svc := service.New(client, enabledConfig(), otelMocks.NewOtel())

	err := svc.Notify(context.Background(), booking())

	var notifyErr *model.DownstreamNotifyError
	require.ErrorAs(t, err, &notifyErr)
	assert.Equal(t, http.StatusBadRequest, notifyErr.Status)
	assert.Equal(t, receiveURL, notifyErr.URL)
}

func TestNotifyUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := downstreamMocks.NewMockClient(ctrl)

	cause := errors.New("dial tcp: connection refused")
	client.EXPECT().Send(gomock.Any(), gomock.Any()).Return(cause)
	client.EXPECT().URL().Return(receiveURL)

	svc := service.New(client, enabledConfig(), otelMocks.NewOtel())

	err := svc.Notify(context.Background(), booking())

	assert.ErrorIs(t, err, cause)
}

func TestNotifyDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := downstreamMocks.NewMockClient(ctrl)

	svc := service.New(client, &config.Config{}, otelMocks.NewOtel())

	assert.NoError(t, svc.Notify(context.Background(), booking()))
}
