package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskWarrantySweep refreshes stored warranty status hints.
	TaskWarrantySweep = "warranty:sweep"
)

// WarrantySweepPayload carries scheduling metadata.
type WarrantySweepPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
	Trigger      string    `json:"trigger"`
}

// NewWarrantySweepTask constructs an Asynq task for the warranty sweep.
func NewWarrantySweepTask(at time.Time, trigger string) (*asynq.Task, error) {
	if trigger == "" {
		trigger = "cron"
	}
	body, err := json.Marshal(WarrantySweepPayload{ScheduledFor: at, Trigger: trigger})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWarrantySweep, body, asynq.Queue(QueueDefault), asynq.MaxRetry(3)), nil
}
