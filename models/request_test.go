package models

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestNewSendRequest_trims(t *testing.T) {
	r := NewSendRequest("  tok \n", " 123 ", "\thello  ", " ./a b.txt")

	if r.Token != "tok" || r.ChannelID != "123" || r.Message != "hello" {
		t.Fatalf("fields not trimmed: %+v", r)
	}
	if r.AttachmentPath != " ./a b.txt" {
		t.Fatalf("AttachmentPath = %q, want it untouched", r.AttachmentPath)
	}
}

func TestSendRequest_Validate(t *testing.T) {
	tests := []struct {
		n       string
		token   string
		channel string
		field   string
		msg     string
	}{
		{n: "valid", token: "tok", channel: "1234567890"},
		{n: "empty_token", token: " ", channel: "1", field: "token", msg: "Token and Channel ID are required."},
		{n: "empty_channel", token: "tok", channel: "", field: "channel_id", msg: "Token and Channel ID are required."},
		{n: "both_empty", field: "token", msg: "Token and Channel ID are required."},
		{n: "non_numeric", token: "tok", channel: "general", field: "channel_id", msg: "Channel ID must be numeric."},
		{n: "negative", token: "tok", channel: "-5", field: "channel_id", msg: "Channel ID must be numeric."},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.n, func(t *testing.T) {
			err := NewSendRequest(tt.token, tt.channel, "", "").Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %#v, want *ValidationError", err)
			}
			if verr.Field != tt.field || verr.Error() != tt.msg {
				t.Fatalf("got %s: %q, want %s: %q", verr.Field, verr.Error(), tt.field, tt.msg)
			}
		})
	}
}

func TestSendRequest_emptyMessageAndAttachmentIsValid(t *testing.T) {
	r := NewSendRequest("tok", "1", "   ", "")
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.HasMessage() || r.HasAttachment() {
		t.Fatalf("HasMessage=%v HasAttachment=%v", r.HasMessage(), r.HasAttachment())
	}
}

func TestSendRequest_AttachmentName(t *testing.T) {
	if n := NewSendRequest("", "", "", "").AttachmentName(); n != "" {
		t.Fatalf("AttachmentName() = %q, want empty", n)
	}
	if n := NewSendRequest("", "", "", "/tmp/reports/q3.pdf").AttachmentName(); n != "q3.pdf" {
		t.Fatalf("AttachmentName() = %q", n)
	}
}

func TestSendRequest_StringHidesToken(t *testing.T) {
	s := NewSendRequest("super-secret-token", "1", "hi", "").String()
	if strings.Contains(s, "super-secret-token") {
		t.Fatalf("String() leaks token: %s", s)
	}
	if !strings.Contains(s, "<redacted>") {
		t.Fatalf("String() = %s", s)
	}
	if s := NewSendRequest("", "1", "", "").String(); !strings.Contains(s, "<empty>") {
		t.Fatalf("String() = %s", s)
	}
}
