package mail

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SESAPI is the subset of the SES v2 client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, in *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// SES sends simple (non-templated) emails through Amazon SES v2.
type SES struct {
	client      SESAPI
	defaultFrom string
}

// NewSES returns an SES sender. from must be a verified identity.
func NewSES(client SESAPI, from string) *SES {
	return &SES{client: client, defaultFrom: from}
}

func (s *SES) Send(ctx context.Context, msg Message) error {
	from, err := sender(msg, s.defaultFrom)
	if err != nil {
		return err
	}

	body := &types.Body{}
	if msg.HTMLBody != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")}
	}
	if msg.TextBody != "" {
		body.Text = &types.Content{Data: aws.String(msg.TextBody), Charset: aws.String("UTF-8")}
	}

	_, err = s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: msg.To},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	})
	return err
}

// Close implements io.Closer. The SDK client holds no connections of its own.
func (*SES) Close() error {
	return nil
}
