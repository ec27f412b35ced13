package tasks

import (
	"context"
	"encoding/json"
	"time"

	"slotbook/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "appointment:reminder"

// NewReminderTask builds the asynq task for an appointment reminder scheduled
// to fire at fireAt.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeAppointmentReminder, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// AsynqReminderScheduler enqueues reminder tasks on the shared Redis queue.
// It satisfies scheduling.ReminderScheduler.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, appt *models.Appointment, fireAt time.Time) error {
	payload := models.ReminderPayload{
		ConfirmationNumber: appt.ConfirmationNumber,
		ClientID:           appt.ClientID,
		ProviderID:         appt.ProviderID,
		Date:               appt.Date,
		TimeSlot:           appt.TimeSlot,
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}
