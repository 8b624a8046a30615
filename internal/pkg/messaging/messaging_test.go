package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeKafkaWriter struct {
	msgs   []kafka.Message
	closed int
}

func (f *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeKafkaWriter) Close() error {
	f.closed++
	return nil
}

func TestKafkaPublish(t *testing.T) {
	// Arrange
	w := &fakeKafkaWriter{}
	k := &Kafka{writer: w}

	// Act
	res, err := k.Publish(context.Background(), "signup.user_registered", OutgoingMessage{
		Key:     []byte("a@b.co"),
		Body:    []byte(`{"username":"a@b.co"}`),
		Headers: []Header{{Key: "cID", Value: []byte("req-1")}, {Key: ""}},
	})

	// Assert
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if res.Topic != "signup.user_registered" {
		t.Fatalf("topic = %q", res.Topic)
	}
	if len(w.msgs) != 1 || w.msgs[0].Topic != "signup.user_registered" || len(w.msgs[0].Headers) != 1 {
		t.Fatalf("unexpected messages %+v", w.msgs)
	}

	_ = k.Close()
	_ = k.Close()
	if w.closed != 1 {
		t.Fatalf("writer closed %d times", w.closed)
	}
	if _, err := k.Publish(context.Background(), "t", OutgoingMessage{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("Publish after Close = %v", err)
	}
}

type fakeNSQ struct {
	topic string
	err   error
}

func (f *fakeNSQ) Publish(topic string, _ []byte) error {
	f.topic = topic
	return f.err
}

func (*fakeNSQ) Stop() {}

func TestNSQPublish(t *testing.T) {
	p := &fakeNSQ{}
	n := &NSQ{producer: p}

	if _, err := n.Publish(context.Background(), "signup.user_signed_in", OutgoingMessage{Body: []byte("{}")}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if p.topic != "signup.user_signed_in" {
		t.Fatalf("topic = %q", p.topic)
	}

	p.err = errors.New("nsqd down")
	if _, err := n.Publish(context.Background(), "t", OutgoingMessage{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestNewFromDriver(t *testing.T) {
	p, err := NewFromDriver("", FactoryOptions{})
	if err != nil {
		t.Fatalf("NewFromDriver(\"\") error = %v", err)
	}
	if _, err := p.Publish(context.Background(), "", OutgoingMessage{}); !errors.Is(err, ErrDestinationRequired) {
		t.Fatalf("noop must still validate destination, got %v", err)
	}

	if _, err := NewFromDriver("rabbit", FactoryOptions{}); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
	if _, err := NewFromDriver(DriverKafka, FactoryOptions{}); !errors.Is(err, ErrKafkaBrokersRequired) {
		t.Fatalf("expected ErrKafkaBrokersRequired, got %v", err)
	}
	if _, err := NewFromDriver(DriverNSQ, FactoryOptions{}); !errors.Is(err, ErrNSQProducerAddrRequired) {
		t.Fatalf("expected ErrNSQProducerAddrRequired, got %v", err)
	}
}
