package exceptionrequest

import "strings"

type ReviewAction string

const (
	ActionApprove ReviewAction = "approve"
	ActionReject  ReviewAction = "reject"
)

func ParseReviewAction(raw string) (ReviewAction, bool) {
	switch ReviewAction(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionApprove:
		return ActionApprove, true
	case ActionReject:
		return ActionReject, true
	default:
		return "", false
	}
}

type SubmitRequest struct {
	Reason string `json:"reason" binding:"required,notblank"`
}

type ReviewRequest struct {
	Action string `json:"action" binding:"required"`
	Notes  string `json:"notes"`
}
