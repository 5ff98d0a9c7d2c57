package utils

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// GracefulContext returns a context canceled on SIGINT/SIGTERM so long
// scrape runs can stop between requests.
func GracefulContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("received termination signal, shutting down...")
		cancel()
	}()

	return ctx, cancel
}
