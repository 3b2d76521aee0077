package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// APIServer serves handler on port until ctx is cancelled, then shuts down
// gracefully within shutdownTimeout.
func APIServer(ctx context.Context, handler http.Handler, port string, shutdownTimeout time.Duration, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server running", zap.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server", zap.Duration("timeout", shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// SessionCleaner removes expired sessions every interval until ctx is done.
type SessionCleaner interface {
	CleanExpiredSessions(ctx context.Context) (int64, error)
}

func RunSessionCleanup(ctx context.Context, cleaner SessionCleaner, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := cleaner.CleanExpiredSessions(ctx); err != nil && ctx.Err() == nil {
				log.Warn("Failed to clean expired sessions", zap.Error(err))
			}
		}
	}
}
