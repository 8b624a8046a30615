// Package messaging publishes domain events to a broker. Kafka, NATS and NSQ
// are supported; the none driver discards events for deployments without a
// broker.
package messaging
