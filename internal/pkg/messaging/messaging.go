package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var (
	// ErrDestinationRequired is returned when the topic/subject is empty.
	ErrDestinationRequired = errors.New("messaging: destination is required")
	// ErrClosed is returned by Publish after Close.
	ErrClosed = errors.New("messaging: publisher is closed")
	// ErrUnknownDriver indicates an unsupported messaging driver.
	ErrUnknownDriver = errors.New("messaging: unknown driver")
)

// Publisher sends messages to a destination (topic or subject).
type Publisher interface {
	io.Closer
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// OutgoingMessage is a broker-agnostic message.
type OutgoingMessage struct {
	Body []byte
	// Key is used by Kafka for partitioning; other brokers ignore it.
	Key     []byte
	Headers []Header
}

// Header is a message header.
type Header struct {
	Key   string
	Value []byte
}

// PublishResult describes an accepted message.
type PublishResult struct {
	Topic     string
	Timestamp time.Time
}

const (
	DriverNone  = "none"
	DriverKafka = "kafka"
	DriverNATS  = "nats"
	DriverNSQ   = "nsq"
)

// FactoryOptions groups config for supported messaging backends.
type FactoryOptions struct {
	Kafka KafkaConfig
	NATS  NATSConfig
	NSQ   NSQConfig
}

// NewFromDriver constructs a Publisher by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Publisher, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverNone:
		return Noop{}, nil
	case DriverKafka:
		return NewKafka(opts.Kafka)
	case DriverNATS:
		return NewNATS(opts.NATS)
	case DriverNSQ:
		return NewNSQ(opts.NSQ)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}

// Noop accepts and discards every message.
type Noop struct{}

func (Noop) Publish(_ context.Context, destination string, _ OutgoingMessage) (PublishResult, error) {
	if destination == "" {
		return PublishResult{}, ErrDestinationRequired
	}
	return PublishResult{Topic: destination, Timestamp: time.Now()}, nil
}

func (Noop) Close() error { return nil }
