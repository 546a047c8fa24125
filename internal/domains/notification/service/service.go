package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"rendezvous/config"
	"rendezvous/infras/downstream"
	"rendezvous/infras/otel"
	"rendezvous/internal/domains/booking/model"
	"rendezvous/shared/constant"

	"github.com/rs/zerolog/log"
)

// Notification forwards issued credentials to the downstream gate system.
type Notification interface {
	Notify(ctx context.Context, booking model.Booking) error
}

type serviceImpl struct {
	client  downstream.Client
	cfg     *config.Config
	otel    otel.Otel
	enabled bool
}

func New(client downstream.Client, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		client:  client,
		cfg:     cfg,
		otel:    otel,
		enabled: cfg.External.Downstream.Enable && cfg.External.Downstream.BaseURL != "",
	}
}

// Notify sends the downstream payload once. There is no retry; failures come back as *model.DownstreamNotifyError
// for the caller to log.
func (s *serviceImpl) Notify(ctx context.Context, booking model.Booking) (err error) {
	if !s.enabled {
		return nil
	}

	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Notify")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking.id", booking.ID)

	sendErr := s.client.Send(ctx, booking.DownstreamPayload(s.cfg.External.Downstream.Source))
	if sendErr == nil {
		log.Debug().Int64("booking_id", booking.ID).Str("unique_code", booking.UniqueCode).Msg("credential forwarded downstream")

		return nil
	}

	notifyErr := &model.DownstreamNotifyError{URL: s.client.URL(), Err: sendErr}

	var statusErr *downstream.StatusError
	if errors.As(sendErr, &statusErr) {
		notifyErr.Status = statusErr.Status
		notifyErr.Err = nil
	}

	return notifyErr
}
