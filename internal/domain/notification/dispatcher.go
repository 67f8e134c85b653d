package notification

import (
	"context"
	"time"

	"github.com/wb-go/wbf/zlog"
)

const dispatchBatchSize = 100

// Dispatcher periodically delivers notifications that were scheduled for
// later or whose immediate delivery failed.
type Dispatcher struct {
	service  *Service
	interval time.Duration
}

func NewDispatcher(service *Service, interval time.Duration) *Dispatcher {
	return &Dispatcher{service: service, interval: interval}
}

// Run blocks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	zlog.Logger.Info().Msgf("Dispatcher: started, interval %s", d.interval)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		d.tick(ctx)

		select {
		case <-ctx.Done():
			zlog.Logger.Info().Msg("Dispatcher: stopped")
			return
		case <-ticker.C:
		}
	}
}

func (d *Dispatcher) tick(ctx context.Context) {
	for {
		sent, err := d.service.DispatchDue(ctx, dispatchBatchSize)
		if err != nil {
			if ctx.Err() == nil {
				zlog.Logger.Error().Err(err).Msg("Dispatcher: dispatch failed")
			}
			return
		}
		if sent > 0 {
			zlog.Logger.Info().Msgf("Dispatcher: delivered %d notification(s)", sent)
		}
		if sent < dispatchBatchSize {
			return
		}
	}
}
