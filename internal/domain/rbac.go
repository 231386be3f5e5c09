package domain

import "strings"

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID string
	Role   string
}

func NewActor(userID, role string) Actor {
	return Actor{UserID: strings.TrimSpace(userID), Role: strings.ToUpper(strings.TrimSpace(role))}
}

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

const (
	ResourceEvent       = "event"
	ResourceMaintenance = "maintenance"

	ActionOrganize = "organize"
	ActionRun      = "run"
)
