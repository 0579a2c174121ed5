package dispatch

import (
	"context"
	"io"
)

// Channel is the resolved destination of a send.
type Channel struct {
	ID      string
	Name    string
	GuildID string
}

// Attachment is a file uploaded alongside the message body.
type Attachment struct {
	Name   string
	Reader io.Reader
}

// Payload is the single combined post made by a session. Content may be
// empty when an attachment is present.
type Payload struct {
	Content    string
	Attachment *Attachment
}

// Gateway is one authenticated connection to the chat platform. A Gateway is
// used for exactly one send and then closed.
type Gateway interface {
	// Authenticate verifies the token. A rejected token must yield an error
	// matching ErrAuthentication.
	Authenticate(ctx context.Context) error

	// Open connects and returns once the ready notification has arrived.
	Open(ctx context.Context) error

	// Channel resolves channelID. An unknown channel must yield an error
	// matching ErrChannelNotFound.
	Channel(ctx context.Context, channelID string) (*Channel, error)

	// Send posts p to channelID and returns the new message ID.
	Send(ctx context.Context, channelID string, p *Payload) (string, error)

	Close() error
}

// Dialer creates a Gateway for a token without doing any network I/O.
type Dialer interface {
	Dial(token string) (Gateway, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(token string) (Gateway, error)

func (f DialerFunc) Dial(token string) (Gateway, error) { return f(token) }
