package dynamo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
)

type fakeAPI struct {
	pages   []*dynamodb.QueryOutput
	err     error
	queries []*dynamodb.QueryInput
	puts    []*dynamodb.PutItemInput
}

func (f *fakeAPI) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queries = append(f.queries, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[len(f.queries)-1], nil
}

func (f *fakeAPI) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, in)
	return &dynamodb.PutItemOutput{}, f.err
}

func TestCountSinceFollowsPages(t *testing.T) {
	// Arrange
	lastKey := map[string]types.AttributeValue{
		"identifier": &types.AttributeValueMemberS{Value: "+15551234567"},
		"timestamp":  &types.AttributeValueMemberN{Value: "1767348000000"},
	}
	api := &fakeAPI{pages: []*dynamodb.QueryOutput{
		{Count: 3, LastEvaluatedKey: lastKey},
		{Count: 2},
	}}
	store := NewRateLimit(api, "otp-rate-limits", time.Second, instrument.NewNoop())
	since := time.UnixMilli(1767344400000)

	// Act
	n, err := store.CountSince(context.Background(), "+15551234567", since)

	// Assert
	if err != nil {
		t.Fatalf("CountSince() error = %v", err)
	}
	if n != 5 {
		t.Fatalf("CountSince() = %d, want 5", n)
	}
	if len(api.queries) != 2 {
		t.Fatalf("expected 2 queries, got %d", len(api.queries))
	}
	if api.queries[1].ExclusiveStartKey == nil {
		t.Fatalf("second page must start from the last evaluated key")
	}

	q := api.queries[0]
	if *q.TableName != "otp-rate-limits" || q.Select != types.SelectCount {
		t.Fatalf("query = %+v", q)
	}
	if strings.Contains(*q.KeyConditionExpression, "timestamp") {
		t.Fatalf("reserved word must be aliased: %q", *q.KeyConditionExpression)
	}
	aliased := false
	for _, name := range q.ExpressionAttributeNames {
		if name == "timestamp" {
			aliased = true
		}
	}
	if !aliased {
		t.Fatalf("timestamp missing from attribute names: %v", q.ExpressionAttributeNames)
	}

	var values []string
	for _, v := range q.ExpressionAttributeValues {
		switch av := v.(type) {
		case *types.AttributeValueMemberS:
			values = append(values, av.Value)
		case *types.AttributeValueMemberN:
			values = append(values, av.Value)
		}
	}
	joined := strings.Join(values, ",")
	if !strings.Contains(joined, "+15551234567") || !strings.Contains(joined, "1767344400000") {
		t.Fatalf("expression values = %v", values)
	}
}

func TestCountSinceError(t *testing.T) {
	api := &fakeAPI{err: errors.New("ProvisionedThroughputExceededException")}
	store := NewRateLimit(api, "t", 0, instrument.NewNoop())

	if _, err := store.CountSince(context.Background(), "a@b.co", time.Now()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRecord(t *testing.T) {
	// Arrange
	api := &fakeAPI{}
	store := NewRateLimit(api, "otp-rate-limits", time.Second, instrument.NewNoop())
	ts := time.UnixMilli(1767348000123)

	// Act
	err := store.Record(context.Background(), entity.RateLimitRecord{
		Identifier: "a@b.co",
		Timestamp:  ts,
		ExpiresAt:  ts.Add(time.Hour),
	})

	// Assert
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if len(api.puts) != 1 {
		t.Fatalf("expected one PutItem")
	}

	var got record
	if err := attributevalue.UnmarshalMap(api.puts[0].Item, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Identifier != "a@b.co" || got.Timestamp != 1767348000123 || got.ExpiresAt != 1767351600 {
		t.Fatalf("item = %+v", got)
	}
}
