package dispatch

import (
	"github.com/pkg/errors"

	"botsend/models"
)

var (
	// ErrAuthentication means the platform rejected the bot token.
	ErrAuthentication = errors.New("invalid token")

	// ErrChannelNotFound means the channel identifier did not resolve.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrRegistryClosed is returned for sends started after Shutdown.
	ErrRegistryClosed = errors.New("dispatcher is shutting down")
)

// TransmissionError wraps any other failure of a dispatch session: network
// errors, attachment I/O, missing permissions, rejected payloads.
type TransmissionError struct {
	Op  string
	Err error
}

func (e *TransmissionError) Error() string {
	if e.Err == nil {
		return e.Op + " failed"
	}
	return e.Err.Error()
}

func (e *TransmissionError) Unwrap() error { return e.Err }

func (e *TransmissionError) Cause() error { return e.Err }

// Kind classifies a dispatch outcome for the result dialog.
type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindAuthentication
	KindDestination
	KindTransmission
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindDestination:
		return "destination"
	case KindTransmission:
		return "transmission"
	}
	return "unknown"
}

// KindOf maps err onto the error taxonomy. Anything unrecognised is a
// transmission failure.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return KindValidation
	case errors.Is(err, ErrAuthentication):
		return KindAuthentication
	case errors.Is(err, ErrChannelNotFound):
		return KindDestination
	}
	return KindTransmission
}

// wrapOp keeps taxonomy sentinels intact and wraps everything else as a
// TransmissionError for op.
func wrapOp(op string, err error) error {
	if err == nil {
		return nil
	}

	switch KindOf(err) {
	case KindAuthentication, KindDestination, KindValidation:
		return err
	}

	var terr *TransmissionError
	if errors.As(err, &terr) {
		return err
	}
	return &TransmissionError{Op: op, Err: err}
}
