package models

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// SendRequest is the one-shot payload handed from the form to a dispatch
// session. It is built once per send action and discarded afterwards.
type SendRequest struct {
	Token          string `json:"-"`
	ChannelID      string `json:"channel_id"`
	Message        string `json:"message,omitempty"`
	AttachmentPath string `json:"attachment_path,omitempty"`
}

// NewSendRequest builds a request from raw form values. Token, channel ID and
// message are trimmed; the attachment path is kept as chosen.
func NewSendRequest(token, channelID, message, attachmentPath string) SendRequest {
	return SendRequest{
		Token:          strings.TrimSpace(token),
		ChannelID:      strings.TrimSpace(channelID),
		Message:        strings.TrimSpace(message),
		AttachmentPath: attachmentPath,
	}
}

// Validate checks the fields that must be present before any network
// activity is attempted.
func (r SendRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return &ValidationError{Field: "token", Message: "Token and Channel ID are required."}
	}

	if strings.TrimSpace(r.ChannelID) == "" {
		return &ValidationError{Field: "channel_id", Message: "Token and Channel ID are required."}
	}

	if _, err := r.ChannelSnowflake(); err != nil {
		return &ValidationError{Field: "channel_id", Message: "Channel ID must be numeric."}
	}

	return nil
}

// ChannelSnowflake parses the channel identifier as a numeric snowflake.
func (r SendRequest) ChannelSnowflake() (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(r.ChannelID), 10, 64)
}

func (r SendRequest) HasMessage() bool {
	return r.Message != ""
}

func (r SendRequest) HasAttachment() bool {
	return r.AttachmentPath != ""
}

// AttachmentName returns the base name of the attachment, or "" when there is
// none.
func (r SendRequest) AttachmentName() string {
	if !r.HasAttachment() {
		return ""
	}
	return filepath.Base(r.AttachmentPath)
}

// String never includes the token.
func (r SendRequest) String() string {
	return fmt.Sprintf("SendRequest{channel=%s message=%d chars attachment=%q token=%s}",
		r.ChannelID, len(r.Message), r.AttachmentName(), redact(r.Token))
}

func redact(secret string) string {
	if secret == "" {
		return "<empty>"
	}
	return "<redacted>"
}

// ValidationError reports a form field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
