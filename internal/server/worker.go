package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-wtime/internal/config"
)

// Renderer produces fresh content, typically from a new snapshot.
type Renderer func() (Content, error)

// RunRefresher renders content immediately and then once per interval,
// publishing each result with Update. It returns nil when ctx is cancelled
// and the renderer's error otherwise; a failing render is not retried.
func (s *TimeServer) RunRefresher(ctx context.Context, interval time.Duration, render Renderer) error {
	if interval <= 0 {
		return fmt.Errorf("%s: %s", config.ErrRefreshInterval, interval)
	}

	log := slog.With(config.LogKeyComponent, config.CompWorker)
	log.Info(config.MsgRefreshStart, config.LogKeyInterval, interval.String())
	defer log.Info(config.MsgRefreshStop)

	if err := s.refresh(render); err != nil {
		return err
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.refresh(render); err != nil {
				return err
			}
		}
	}
}

func (s *TimeServer) refresh(render Renderer) error {
	c, err := render()
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrRender, err)
	}
	s.Update(c)
	return nil
}
