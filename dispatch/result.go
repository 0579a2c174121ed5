package dispatch

import (
	"time"

	"botsend/models"
)

// Result is the outcome of one dispatch session.
type Result struct {
	ID          string
	Request     models.SendRequest
	ChannelName string
	MessageID   string
	Err         error
	Started     time.Time
	Finished    time.Time
}

func (r Result) Success() bool { return r.Err == nil }

func (r Result) Kind() Kind { return KindOf(r.Err) }

func (r Result) Duration() time.Duration {
	if r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}

// Title is the heading of the result dialog.
func (r Result) Title() string {
	switch r.Kind() {
	case KindNone:
		return "Success"
	case KindValidation:
		return "Missing Info"
	}
	return "Error"
}

// Text is the body of the result dialog.
func (r Result) Text() string {
	switch r.Kind() {
	case KindNone:
		return "Message sent!"
	case KindAuthentication:
		return "Invalid token."
	case KindDestination:
		return "Channel not found."
	}
	return r.Err.Error()
}
