// Package jobs runs the clinic's background work on asynq: the nightly
// collection summary and report cache warmup.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDailySummary computes and records one day's collection summary.
	TaskDailySummary = "report:daily_summary"
	// TaskCacheWarmup pre-computes the summaries the morning desk opens with.
	TaskCacheWarmup = "report:cache_warmup"
)

// DailySummaryPayload names the day to summarise. An empty Day means
// the day before the task runs, which is what the nightly cron wants.
type DailySummaryPayload struct {
	Day string `json:"day"`
}

// NewDailySummaryTask constructs the daily summary task.
func NewDailySummaryTask(payload DailySummaryPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDailySummary, data), nil
}

// NewCacheWarmupTask constructs the warmup task. It carries no payload;
// the handler derives the periods from the clock.
func NewCacheWarmupTask() *asynq.Task {
	return asynq.NewTask(TaskCacheWarmup, nil)
}
