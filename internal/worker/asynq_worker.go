package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fidelio-loyalty/internal/logger"
	"github.com/fidelio-loyalty/internal/provider"
	"github.com/fidelio-loyalty/internal/queue"
	"github.com/fidelio-loyalty/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles the async loyalty tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the task consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds the task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCampaignDispatch, c.handleCampaignDispatch)
	mux.HandleFunc(queue.TaskCustomerStatsRefresh, c.handleCustomerStatsRefresh)
}

func (c *Consumer) handleCampaignDispatch(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_campaign_dispatch_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CampaignDispatchPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_campaign_dispatch_unmarshal_failed", "error", err)
		return err
	}
	if payload.CampaignID == 0 {
		logger.Debugw("worker_campaign_dispatch_skip_invalid_payload", "campaign_id", payload.CampaignID)
		return nil
	}
	if err := c.CampaignService.ResolveAudience(payload.CampaignID); err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotFound):
			logger.Debugw("worker_campaign_dispatch_skip_not_found", "campaign_id", payload.CampaignID)
			return nil
		default:
			logger.Warnw("worker_campaign_dispatch_failed", "campaign_id", payload.CampaignID, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleCustomerStatsRefresh(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_stats_refresh_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.CustomerStatsRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_stats_refresh_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || payload.RestaurantID == 0 {
		logger.Debugw("worker_stats_refresh_skip_invalid_payload",
			"user_id", payload.UserID,
			"restaurant_id", payload.RestaurantID,
		)
		return nil
	}
	if _, err := c.CustomerStatsService.Refresh(payload.UserID, payload.RestaurantID); err != nil {
		logger.Warnw("worker_stats_refresh_failed",
			"user_id", payload.UserID,
			"restaurant_id", payload.RestaurantID,
			"error", err,
		)
		return err
	}
	return nil
}
