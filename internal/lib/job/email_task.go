package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskWelcome = "email:welcome"

	// TaskMentorAssigned notifies a mentee that setMentor gave them a mentor.
	TaskMentorAssigned = "email:mentor_assigned"
)

// WelcomeEmailPayload is the JSON payload data for the welcome email task.
type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// MentorAssignedPayload carries only ids; contact details are read when
// the task runs so a retried task sees current data.
type MentorAssignedPayload struct {
	MenteeID string `json:"mentee_id"`
	MentorID string `json:"mentor_id"`
}

// NewWelcomeEmailTask constructs an Asynq task for sending a welcome email.
//
// Options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("default"): send into the "default" queue
//   - Timeout(30s): kill the task if handler runs longer than 30 seconds
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewMentorAssignedTask constructs the mentor assignment notification.
// It goes to the critical queue: a mentee waits on it to contact the mentor.
func NewMentorAssignedTask(menteeID, mentorID string) (*asynq.Task, error) {
	payload, err := json.Marshal(MentorAssignedPayload{
		MenteeID: menteeID,
		MentorID: mentorID,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskMentorAssigned,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
