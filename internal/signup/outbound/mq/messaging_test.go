package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/shared/event"
	"github.com/shandysiswandi/otpgate/internal/signup/usecase"
)

type fakePublisher struct {
	dest string
	msg  messaging.OutgoingMessage
	err  error
}

func (f *fakePublisher) Publish(_ context.Context, dest string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.dest, f.msg = dest, msg
	return messaging.PublishResult{Topic: dest}, f.err
}

func TestPublishUserRegistered(t *testing.T) {
	// Arrange
	pub := &fakePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "cid-1")

	// Act
	err := m.PublishUserRegistered(ctx, usecase.UserRegisteredEvent{
		UserSub: "sub-1", Username: "+919876543210", Channel: "phone", Interests: []string{"fitness"},
	})

	// Assert
	if err != nil {
		t.Fatalf("PublishUserRegistered() error = %v", err)
	}
	if pub.dest != event.UserRegisteredDestination {
		t.Fatalf("dest = %q", pub.dest)
	}
	var got event.UserRegisteredMessage
	if err := json.Unmarshal(pub.msg.Body, &got); err != nil {
		t.Fatalf("body: %v", err)
	}
	if got.UserSub != "sub-1" || got.Channel != "phone" || len(got.Interests) != 1 {
		t.Fatalf("body = %+v", got)
	}
	if string(pub.msg.Key) != "+919876543210" {
		t.Fatalf("key = %q", pub.msg.Key)
	}
	if len(pub.msg.Headers) != 1 || pub.msg.Headers[0].Key != "cID" || string(pub.msg.Headers[0].Value) != "cid-1" {
		t.Fatalf("headers = %+v", pub.msg.Headers)
	}
}

func TestPublishUserSignedInError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	m := NewMessaging(pub, instrument.NewNoop())

	err := m.PublishUserSignedIn(context.Background(), usecase.UserSignedInEvent{Subject: "sub-1", Username: "u"})

	if err == nil || pub.dest != event.UserSignedInDestination {
		t.Fatalf("err = %v, dest = %q", err, pub.dest)
	}
}
