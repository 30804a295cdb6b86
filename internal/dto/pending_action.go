package dto

import (
	"time"

	"github.com/BruksfildServices01/certhub/internal/models"
)

// PendingActionSummaryDTO is the list projection of a pending action. It
// leaves out the payload and review details.
type PendingActionSummaryDTO struct {
	ID           uint      `json:"id"`
	ActionType   string    `json:"actionType"`
	ResourceType string    `json:"resourceType"`
	ResourceID   *uint     `json:"resourceId,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewPendingActionSummary(pa models.PendingAction) PendingActionSummaryDTO {
	return PendingActionSummaryDTO{
		ID:           pa.ID,
		ActionType:   pa.ActionType,
		ResourceType: pa.ResourceType,
		ResourceID:   pa.ResourceID,
		Status:       pa.Status,
		CreatedAt:    pa.CreatedAt,
	}
}

func NewPendingActionSummaries(items []models.PendingAction) []PendingActionSummaryDTO {
	out := make([]PendingActionSummaryDTO, 0, len(items))
	for _, pa := range items {
		out = append(out, NewPendingActionSummary(pa))
	}
	return out
}

// UserDTO is the public view of an account.
type UserDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func NewUser(u *models.User) UserDTO {
	return UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func NewUsers(users []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for i := range users {
		out = append(out, NewUser(&users[i]))
	}
	return out
}
