package mail

import (
	"context"
	"errors"
	"io"
	"strings"
)

var (
	// ErrNoRecipients is returned when To is empty.
	ErrNoRecipients = errors.New("mail: no recipients provided")
	// ErrNoSender is returned when neither Message.From nor the default sender is set.
	ErrNoSender = errors.New("mail: no sender provided")
	// ErrUnknownDriver is returned for an unsupported driver name.
	ErrUnknownDriver = errors.New("mail: unknown driver")
)

// Message is an email payload. At least one of TextBody and HTMLBody must be set.
type Message struct {
	From     string
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mail abstracts an email provider.
type Mail interface {
	io.Closer
	Send(ctx context.Context, msg Message) error
}

func sender(msg Message, fallback string) (string, error) {
	if len(msg.To) == 0 {
		return "", ErrNoRecipients
	}

	from := strings.TrimSpace(msg.From)
	if from == "" {
		from = fallback
	}
	if from == "" {
		return "", ErrNoSender
	}

	return from, nil
}
