package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RateLimit stores attempts in one sorted set per identifier, scored by
// epoch milliseconds.
type RateLimit struct {
	client redis.Cmdable
	prefix string
	uuid   uid.StringID
	ins    instrument.Instrumentation
}

func NewRateLimit(client redis.Cmdable, prefix string, uuid uid.StringID, ins instrument.Instrumentation) *RateLimit {
	if prefix == "" {
		prefix = "otp:ratelimit:"
	}
	return &RateLimit{client: client, prefix: prefix, uuid: uuid, ins: ins}
}

func (r *RateLimit) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("challenge.outbound.cache").Start(ctx, name)
}

func (r *RateLimit) key(identifier string) string {
	return r.prefix + identifier
}

func (r *RateLimit) CountSince(ctx context.Context, identifier string, since time.Time) (int, error) {
	ctx, span := r.startSpan(ctx, "CountSince")
	defer span.End()

	n, err := r.client.ZCount(ctx, r.key(identifier), "("+strconv.FormatInt(since.UnixMilli(), 10), "+inf").Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	return int(n), nil
}

func (r *RateLimit) Record(ctx context.Context, rec entity.RateLimitRecord) error {
	ctx, span := r.startSpan(ctx, "Record")
	defer span.End()

	key := r.key(rec.Identifier)
	window := rec.ExpiresAt.Sub(rec.Timestamp)
	cutoff := rec.Timestamp.Add(-window).UnixMilli()

	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZAdd(ctx, key, redis.Z{Score: float64(rec.Timestamp.UnixMilli()), Member: r.uuid.Generate()})
		p.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))
		p.PExpireAt(ctx, key, rec.ExpiresAt)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
