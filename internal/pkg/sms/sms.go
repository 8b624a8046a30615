package sms

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

var (
	// ErrNoRecipient is returned when the destination number is empty.
	ErrNoRecipient = errors.New("sms: phone number is required")
	// ErrUnknownDriver is returned by New for an unsupported driver name.
	ErrUnknownDriver = errors.New("sms: unknown driver")
)

// Type is the SNS SMSType attribute.
type Type string

const (
	Transactional Type = "Transactional"
	Promotional   Type = "Promotional"
)

// Message is one SMS.
type Message struct {
	PhoneNumber string
	Body        string
	Type        Type
}

// Sender delivers SMS messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SNSAPI is the subset of the SNS client used here.
type SNSAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNS publishes directly to a phone number.
type SNS struct {
	client   SNSAPI
	senderID string
}

// NewSNS returns an SNS sender. senderID is attached only when non-empty,
// since many destination countries reject alphanumeric sender IDs.
func NewSNS(client SNSAPI, senderID string) *SNS {
	return &SNS{client: client, senderID: strings.TrimSpace(senderID)}
}

func (s *SNS) Send(ctx context.Context, msg Message) error {
	if msg.PhoneNumber == "" {
		return ErrNoRecipient
	}

	smsType := msg.Type
	if smsType == "" {
		smsType = Transactional
	}

	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String(string(smsType))},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(s.senderID),
		}
	}

	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       aws.String(msg.PhoneNumber),
		Message:           aws.String(msg.Body),
		MessageAttributes: attrs,
	})
	return err
}

// Log writes the message envelope to slog instead of sending it. The body is
// never logged.
type Log struct{}

func (Log) Send(ctx context.Context, msg Message) error {
	if msg.PhoneNumber == "" {
		return ErrNoRecipient
	}
	slog.InfoContext(ctx, "sms not sent, log driver active", "type", msg.Type, "length", len(msg.Body))
	return nil
}

// New builds a Sender for driver ("sns" or "log").
func New(driver string, client SNSAPI, senderID string) (Sender, error) {
	switch strings.ToLower(driver) {
	case "", "sns":
		return NewSNS(client, senderID), nil
	case "log":
		return Log{}, nil
	default:
		return nil, ErrUnknownDriver
	}
}
