package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
	"github.com/shandysiswandi/otpgate/internal/challenge/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	sourcePreSignUp = "PreSignUp_"
	sourceDefine    = "DefineAuthChallenge_"
	sourceCreate    = "CreateAuthChallenge_"
	sourceVerify    = "VerifyAuthChallengeResponse_"
)

type uc interface {
	Define(ctx context.Context, session []entity.SessionEntry) entity.Decision
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Challenge, error)
	Verify(ctx context.Context, in usecase.VerifyInput) bool
	PreSignUp(ctx context.Context, in usecase.PreSignUpInput) entity.SignUpDecision
}

// Lambda serves every Cognito user pool trigger from one function.
type Lambda struct {
	uc  uc
	ins instrument.Instrumentation
}

func NewLambda(uc uc, ins instrument.Instrumentation) *Lambda {
	return &Lambda{uc: uc, ins: ins}
}

// Handle routes the event on its trigger source and returns the event with
// the response section filled in.
func (l *Lambda) Handle(ctx context.Context, raw json.RawMessage) (out any, err error) {
	var hdr events.CognitoEventUserPoolsHeader
	if err := json.Unmarshal(raw, &hdr); err != nil {
		return nil, fmt.Errorf("decode trigger header: %w", err)
	}

	reqID := ""
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		reqID = lc.AwsRequestID
	}
	ctx = instrument.SetCorrelationID(ctx, reqID)

	ctx, span := l.ins.Tracer("challenge.inbound.lambda").Start(ctx, hdr.TriggerSource)
	span.SetAttributes(
		attribute.String("cognito.trigger_source", hdr.TriggerSource),
		attribute.String("cognito.user_pool_id", hdr.UserPoolID),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if ferr := l.ins.Flush(context.WithoutCancel(ctx)); ferr != nil {
			slog.WarnContext(ctx, "failed to flush telemetry", "error", ferr)
		}
	}()

	switch src := hdr.TriggerSource; {
	case strings.HasPrefix(src, sourcePreSignUp):
		return l.preSignUp(ctx, raw)
	case strings.HasPrefix(src, sourceDefine):
		return l.define(ctx, raw)
	case strings.HasPrefix(src, sourceCreate):
		return l.create(ctx, raw)
	case strings.HasPrefix(src, sourceVerify):
		return l.verify(ctx, raw)
	default:
		slog.ErrorContext(ctx, "unhandled trigger source", "trigger_source", src)
		return nil, fmt.Errorf("%w: %q", goerror.ErrUnknownTrigger, src)
	}
}

type preSignUpResponse struct {
	AutoConfirmUser bool  `json:"autoConfirmUser"`
	AutoVerifyEmail *bool `json:"autoVerifyEmail,omitempty"`
	AutoVerifyPhone *bool `json:"autoVerifyPhone,omitempty"`
}

type preSignUpEvent struct {
	events.CognitoEventUserPoolsHeader
	Request  events.CognitoEventUserPoolsPreSignupRequest `json:"request"`
	Response preSignUpResponse                            `json:"response"`
}

func (l *Lambda) preSignUp(ctx context.Context, raw json.RawMessage) (*preSignUpEvent, error) {
	var ev preSignUpEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode pre sign up event: %w", err)
	}

	d := l.uc.PreSignUp(ctx, usecase.PreSignUpInput{
		Username:       ev.UserName,
		UserAttributes: ev.Request.UserAttributes,
	})

	ev.Response = preSignUpResponse{
		AutoConfirmUser: d.AutoConfirmUser,
		AutoVerifyEmail: d.AutoVerifyEmail,
		AutoVerifyPhone: d.AutoVerifyPhone,
	}

	return &ev, nil
}

func (l *Lambda) define(ctx context.Context, raw json.RawMessage) (*events.CognitoEventUserPoolsDefineAuthChallenge, error) {
	var ev events.CognitoEventUserPoolsDefineAuthChallenge
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode define auth challenge event: %w", err)
	}

	d := l.uc.Define(ctx, sessionEntries(ev.Request.Session))

	ev.Response.ChallengeName = d.ChallengeName
	ev.Response.IssueTokens = d.IssueTokens
	ev.Response.FailAuthentication = d.FailAuthentication

	return &ev, nil
}

func (l *Lambda) create(ctx context.Context, raw json.RawMessage) (*events.CognitoEventUserPoolsCreateAuthChallenge, error) {
	var ev events.CognitoEventUserPoolsCreateAuthChallenge
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode create auth challenge event: %w", err)
	}

	ch, err := l.uc.Create(ctx, usecase.CreateInput{
		Username:       ev.UserName,
		UserAttributes: ev.Request.UserAttributes,
	})
	if err != nil {
		return nil, userFacing(err)
	}

	ev.Response.PrivateChallengeParameters = ch.PrivateParameters()
	ev.Response.PublicChallengeParameters = ch.PublicParameters()
	ev.Response.ChallengeMetadata = entity.MetadataOTP

	return &ev, nil
}

func (l *Lambda) verify(ctx context.Context, raw json.RawMessage) (*events.CognitoEventUserPoolsVerifyAuthChallenge, error) {
	var ev events.CognitoEventUserPoolsVerifyAuthChallenge
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, fmt.Errorf("decode verify auth challenge event: %w", err)
	}

	// Non-string answers never match.
	answer, _ := ev.Request.ChallengeAnswer.(string)

	ev.Response.AnswerCorrect = l.uc.Verify(ctx, usecase.VerifyInput{
		Username:          ev.UserName,
		PrivateParameters: ev.Request.PrivateChallengeParameters,
		Answer:            answer,
	})

	return &ev, nil
}

func sessionEntries(in []*events.CognitoEventUserPoolsChallengeResult) []entity.SessionEntry {
	out := make([]entity.SessionEntry, 0, len(in))
	for _, r := range in {
		if r == nil {
			continue
		}
		out = append(out, entity.SessionEntry{
			ChallengeName: r.ChallengeName,
			Result:        r.ChallengeResult,
			Metadata:      r.ChallengeMetadata,
		})
	}
	return out
}

// userFacing keeps only the message Cognito may show to the client.
func userFacing(err error) error {
	return errors.New(goerror.Message(err, "Internal server error"))
}
