package queue

import (
	"encoding/json"

	"github.com/fidelio-loyalty/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCampaignDispatch resolves a campaign audience.
	TaskCampaignDispatch = constants.TaskCampaignDispatch
	// TaskCustomerStatsRefresh recomputes one customer row.
	TaskCustomerStatsRefresh = constants.TaskCustomerStatsRefresh
)

// CampaignDispatchPayload identifies the campaign to dispatch.
type CampaignDispatchPayload struct {
	CampaignID uint `json:"campaign_id"`
}

// CustomerStatsRefreshPayload identifies the customer pair to recompute.
type CustomerStatsRefreshPayload struct {
	UserID       uint `json:"user_id"`
	RestaurantID uint `json:"restaurant_id"`
}

// NewCampaignDispatchTask builds a campaign dispatch task.
func NewCampaignDispatchTask(payload CampaignDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCampaignDispatch, body), nil
}

// NewCustomerStatsRefreshTask builds a stats refresh task.
func NewCustomerStatsRefreshTask(payload CustomerStatsRefreshPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCustomerStatsRefresh, body), nil
}
