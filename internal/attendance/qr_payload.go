package attendance

import (
	"encoding/json"
	"strings"
	"time"

	attendanceerrors "go-volunteer/internal/attendance/errors"
	"go-volunteer/internal/event"
)

type Action string

const (
	ActionTimeIn  Action = "timein"
	ActionTimeOut Action = "timeout"
)

func ParseAction(raw string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(raw))) {
	case ActionTimeIn:
		return ActionTimeIn, nil
	case ActionTimeOut:
		return ActionTimeOut, nil
	default:
		return "", attendanceerrors.ErrInvalidAction
	}
}

type QRType string

const (
	QRCheckIn  QRType = "checkIn"
	QRCheckOut QRType = "checkOut"
)

func (t QRType) Action() Action {
	if t == QRCheckOut {
		return ActionTimeOut
	}
	return ActionTimeIn
}

// QRPayload is the JSON document encoded in printed or on-screen QR codes.
type QRPayload struct {
	EventID     string `json:"eventId"`
	Type        QRType `json:"type"`
	Date        string `json:"date"`
	GeneratedAt string `json:"generatedAt"`
	GeneratedBy string `json:"generatedBy"`
	Random      string `json:"random"`
}

var qrDateLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

func ParseQRPayload(raw string) (QRPayload, error) {
	var p QRPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &p); err != nil {
		return QRPayload{}, attendanceerrors.ErrInvalidQRPayload.WithCause(err)
	}
	if p.EventID == "" || p.Date == "" {
		return QRPayload{}, attendanceerrors.ErrInvalidQRPayload
	}
	if p.Type != QRCheckIn && p.Type != QRCheckOut {
		return QRPayload{}, attendanceerrors.ErrInvalidQRPayload
	}
	return p, nil
}

// Day returns the payload date as a UTC day bucket.
func (p QRPayload) Day() (time.Time, bool) {
	for _, layout := range qrDateLayouts {
		if t, err := time.Parse(layout, p.Date); err == nil {
			return event.DayBucket(t), true
		}
	}
	return time.Time{}, false
}

// ActiveOn reports whether the code was generated for the day bucket of now.
func (p QRPayload) ActiveOn(now time.Time) bool {
	day, ok := p.Day()
	return ok && day.Equal(event.DayBucket(now))
}

// ResolveAction applies the QR type, rejecting an explicit request for the
// opposite action.
func (p QRPayload) ResolveAction(requested string) (Action, error) {
	if strings.TrimSpace(requested) == "" {
		return p.Type.Action(), nil
	}
	action, err := ParseAction(requested)
	if err != nil {
		return "", err
	}
	if action != p.Type.Action() {
		return "", attendanceerrors.ErrQrActionMismatch
	}
	return action, nil
}
