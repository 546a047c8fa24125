package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"rendezvous/config"
	"rendezvous/di"
	"rendezvous/shared/logger"
	"syscall"

	"github.com/rs/zerolog/log"
)

// Reissues every credential whose image is missing or no longer in storage.
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.Configure(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := di.InitializeBookingService().RegenerateCredentials(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Credential sweep failed")
	}

	log.Info().Int("scanned", result.Scanned).Int("failed", result.Failed).Msg("Credential sweep finished")

	fmt.Printf("%d QR code(s) regenerated\n", result.Regenerated) //nolint:forbidigo
}
