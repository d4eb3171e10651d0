package worker

import (
	"context"
	"errors"
	"time"

	"github.com/fidelio-loyalty/internal/config"
	"github.com/fidelio-loyalty/internal/logger"
	"github.com/fidelio-loyalty/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	segmentSweepInterval  = time.Hour
	segmentSweepBatchSize = 500
)

// Service runs the asynq server and the periodic segment sweep.
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService creates the queue worker service.
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name returns the service name.
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start runs the worker until the server stops.
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.CustomerStatsService != nil {
		go s.runSegmentSweepLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop shuts the worker down.
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runSegmentSweepLoop recomputes customers whose recency crossed the
// inactivity threshold since their stats were last written, so the
// Inactif segment does not depend on a visit ever arriving.
func (s *Service) runSegmentSweepLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.CustomerStatsService == nil || s.consumer.CustomerRepo == nil {
		return
	}
	runOnce := func() {
		inactiveBefore := time.Now().AddDate(0, 0, -s.consumer.CustomerStatsService.InactiveAfterDays())
		stale, err := s.consumer.CustomerRepo.ListStaleSegments(inactiveBefore, segmentSweepBatchSize)
		if err != nil {
			logger.Warnw("worker_segment_sweep_list_failed", "error", err)
			return
		}
		for i := range stale {
			customer := stale[i]
			if _, err := s.consumer.CustomerStatsService.Refresh(customer.UserID, customer.RestaurantID); err != nil {
				logger.Warnw("worker_segment_sweep_refresh_failed",
					"user_id", customer.UserID,
					"restaurant_id", customer.RestaurantID,
					"error", err,
				)
			}
		}
		if len(stale) > 0 {
			logger.Infow("worker_segment_sweep_done", "count", len(stale))
		}
	}
	runOnce()

	ticker := time.NewTicker(segmentSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
