package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/shared/event"
	"github.com/shandysiswandi/otpgate/internal/signup/usecase"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyOfCorrelationID string = "cID"

type publisher interface {
	Publish(ctx context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error)
}

type Messaging struct {
	client publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	ctx, span := m.ins.Tracer("signup.outbound.mq").Start(ctx, "PublishUserRegistered")
	defer span.End()

	return m.send(ctx, span, event.UserRegisteredDestination, msg.Username, event.UserRegisteredMessage{
		UserSub:     msg.UserSub,
		Username:    msg.Username,
		Channel:     msg.Channel,
		Interests:   msg.Interests,
		Suggestions: msg.Suggestions,
	})
}

func (m *Messaging) PublishUserSignedIn(ctx context.Context, msg usecase.UserSignedInEvent) error {
	ctx, span := m.ins.Tracer("signup.outbound.mq").Start(ctx, "PublishUserSignedIn")
	defer span.End()

	return m.send(ctx, span, event.UserSignedInDestination, msg.Username, event.UserSignedInMessage{
		Subject:  msg.Subject,
		Username: msg.Username,
	})
}

// send keys messages by username so one user's events stay ordered on Kafka.
func (m *Messaging) send(ctx context.Context, span trace.Span, dest, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, dest, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(key),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
