package httpapi

import (
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
)

type TaskResponse struct {
	ID        string  `json:"id"`
	UID       string  `json:"uid"`
	Summary   string  `json:"summary,omitempty"`
	Status    string  `json:"status,omitempty"`
	Start     *string `json:"dtstart,omitempty"`
	Duration  string  `json:"duration,omitempty"`
	Due       *string `json:"due,omitempty"`
	Completed *string `json:"completed,omitempty"`
	Created   *string `json:"created,omitempty"`
	Source    string  `json:"source"`
}

type TaskListResponse struct {
	Start string         `json:"start"`
	End   string         `json:"end"`
	Count int            `json:"count"`
	Tasks []TaskResponse `json:"tasks"`
}

type RuleResponse struct {
	Property    string `json:"property"`
	Spec        string `json:"spec"`
	Description string `json:"description"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewTaskListResponse builds the body returned for a range query.
func NewTaskListResponse(r domain.QueryRange, tasks []*domain.Task) TaskListResponse {
	resp := TaskListResponse{
		Start: r.Start.Format(time.RFC3339),
		End:   r.End.Format(time.RFC3339),
		Count: len(tasks),
		Tasks: make([]TaskResponse, 0, len(tasks)),
	}
	for _, t := range tasks {
		resp.Tasks = append(resp.Tasks, newTaskResponse(t))
	}
	return resp
}

func newTaskResponse(t *domain.Task) TaskResponse {
	resp := TaskResponse{
		ID:        t.ID,
		UID:       t.UID,
		Summary:   t.Summary,
		Status:    string(t.Status),
		Start:     formatInstant(t.Profile.Start),
		Due:       formatInstant(t.Profile.Due),
		Completed: formatInstant(t.Profile.Completed),
		Created:   formatInstant(t.Profile.Created),
		Source:    t.Source,
	}
	if t.Profile.Duration != nil {
		resp.Duration = t.Profile.Duration.String()
	}
	return resp
}

func formatInstant(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
