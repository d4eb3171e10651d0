package worker

import (
	"context"
	"testing"

	"github.com/fidelio-loyalty/internal/queue"

	"github.com/hibiken/asynq"
)

func TestHandleCampaignDispatchSkipsInvalidPayload(t *testing.T) {
	consumer := NewConsumer(nil)

	task := asynq.NewTask(queue.TaskCampaignDispatch, []byte(`{"campaign_id":0}`))
	if err := consumer.handleCampaignDispatch(context.Background(), task); err != nil {
		t.Fatalf("zero campaign id should be skipped, got %v", err)
	}

	bad := asynq.NewTask(queue.TaskCampaignDispatch, []byte(`not-json`))
	if err := consumer.handleCampaignDispatch(context.Background(), bad); err == nil {
		t.Fatalf("malformed payload should surface an error")
	}

	if err := consumer.handleCampaignDispatch(context.Background(), nil); err != nil {
		t.Fatalf("nil task should be skipped, got %v", err)
	}
}

func TestHandleCustomerStatsRefreshSkipsInvalidPayload(t *testing.T) {
	consumer := NewConsumer(nil)

	task := asynq.NewTask(queue.TaskCustomerStatsRefresh, []byte(`{"user_id":0,"restaurant_id":7}`))
	if err := consumer.handleCustomerStatsRefresh(context.Background(), task); err != nil {
		t.Fatalf("incomplete pair should be skipped, got %v", err)
	}

	bad := asynq.NewTask(queue.TaskCustomerStatsRefresh, []byte(`not-json`))
	if err := consumer.handleCustomerStatsRefresh(context.Background(), bad); err == nil {
		t.Fatalf("malformed payload should surface an error")
	}
}

func TestRegisterNilSafe(t *testing.T) {
	var consumer *Consumer
	consumer.Register(nil)

	NewConsumer(nil).Register(nil)

	mux := asynq.NewServeMux()
	NewConsumer(nil).Register(mux)
}
