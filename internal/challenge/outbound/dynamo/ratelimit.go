package dynamo

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/awsconf"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// API is the subset of the DynamoDB client used by the store.
type API interface {
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

type record struct {
	Identifier string `dynamodbav:"identifier"`
	Timestamp  int64  `dynamodbav:"timestamp"`
	ExpiresAt  int64  `dynamodbav:"expiresAt"`
}

// RateLimit keeps one item per issued code, keyed by identifier and epoch
// milliseconds. expiresAt is the table's TTL attribute.
type RateLimit struct {
	client  API
	table   string
	timeout time.Duration
	ins     instrument.Instrumentation
}

func NewRateLimit(client API, table string, timeout time.Duration, ins instrument.Instrumentation) *RateLimit {
	return &RateLimit{client: client, table: table, timeout: timeout, ins: ins}
}

func (r *RateLimit) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return r.ins.Tracer("challenge.outbound.dynamo").Start(ctx, name,
		trace.WithAttributes(attribute.String("db.system", "dynamodb"), attribute.String("db.table", r.table)))
}

func (r *RateLimit) CountSince(ctx context.Context, identifier string, since time.Time) (int, error) {
	ctx, span := r.startSpan(ctx, "CountSince")
	defer span.End()

	ctx, cancel := awsconf.WithTimeout(ctx, r.timeout)
	defer cancel()

	keyCond := expression.Key("identifier").Equal(expression.Value(identifier)).
		And(expression.Key("timestamp").GreaterThan(expression.Value(since.UnixMilli())))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	pages := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:                 aws.String(r.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Select:                    types.SelectCount,
	})

	total := 0
	for pages.HasMorePages() {
		out, err := pages.NextPage(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return 0, err
		}
		total += int(out.Count)
	}

	span.SetAttributes(attribute.Int("ratelimit.count", total))
	return total, nil
}

func (r *RateLimit) Record(ctx context.Context, rec entity.RateLimitRecord) error {
	ctx, span := r.startSpan(ctx, "Record")
	defer span.End()

	ctx, cancel := awsconf.WithTimeout(ctx, r.timeout)
	defer cancel()

	item, err := attributevalue.MarshalMap(record{
		Identifier: rec.Identifier,
		Timestamp:  rec.Timestamp.UnixMilli(),
		ExpiresAt:  rec.ExpiresAt.Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
