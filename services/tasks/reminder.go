package tasks

import (
	"encoding/json"
	"time"

	"mentorhub/models"

	"github.com/hibiken/asynq"
)

const TypeSessionReminder = "session:reminder"

// NewSessionReminderTask builds the asynq task that fires an upcoming-session
// reminder at fireAt.
func NewSessionReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}
