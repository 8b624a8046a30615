package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/shandysiswandi/otpgate/internal/challenge/entity"
	"github.com/shandysiswandi/otpgate/internal/challenge/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
)

type fakeUC struct {
	session   []entity.SessionEntry
	createIn  usecase.CreateInput
	createErr error
	verifyIn  usecase.VerifyInput
	verifyOK  bool
	signUp    entity.SignUpDecision
	cID       string
}

func (f *fakeUC) Define(ctx context.Context, session []entity.SessionEntry) entity.Decision {
	f.cID = instrument.GetCorrelationID(ctx)
	f.session = session
	if len(session) == 0 {
		return entity.Decision{ChallengeName: entity.ChallengeCustom}
	}
	return entity.Decision{IssueTokens: true}
}

func (f *fakeUC) Create(_ context.Context, in usecase.CreateInput) (*entity.Challenge, error) {
	f.createIn = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &entity.Challenge{
		Answer:    "481290",
		ExpiresAt: time.Unix(1767349200, 0),
		Recipient: entity.Recipient{Channel: entity.ChannelSMS, Address: "+919876543210"},
	}, nil
}

func (f *fakeUC) Verify(_ context.Context, in usecase.VerifyInput) bool {
	f.verifyIn = in
	return f.verifyOK
}

func (f *fakeUC) PreSignUp(context.Context, usecase.PreSignUpInput) entity.SignUpDecision {
	return f.signUp
}

func handle(t *testing.T, l *Lambda, ctx context.Context, payload string) []byte {
	t.Helper()

	out, err := l.Handle(ctx, json.RawMessage(payload))
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}
	b, err := json.Marshal(out)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return b
}

func TestHandleDefine(t *testing.T) {
	// Arrange
	f := &fakeUC{}
	l := NewLambda(f, instrument.NewNoop())
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-1"})
	payload := `{"version":"1","triggerSource":"DefineAuthChallenge_Authentication","userName":"u1",
		"request":{"userAttributes":{},"session":[{"challengeName":"CUSTOM_CHALLENGE","challengeResult":true,"challengeMetadata":"OTP_CHALLENGE"}]},
		"response":{}}`

	// Act
	b := handle(t, l, ctx, payload)

	// Assert
	var ev events.CognitoEventUserPoolsDefineAuthChallenge
	if err := json.Unmarshal(b, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !ev.Response.IssueTokens || ev.Response.FailAuthentication {
		t.Fatalf("response = %+v", ev.Response)
	}
	if ev.UserName != "u1" || ev.TriggerSource != "DefineAuthChallenge_Authentication" {
		t.Fatalf("header not echoed: %+v", ev.CognitoEventUserPoolsHeader)
	}
	if len(f.session) != 1 || !f.session[0].Result || f.session[0].Metadata != entity.MetadataOTP {
		t.Fatalf("session = %+v", f.session)
	}
	if f.cID != "req-1" {
		t.Fatalf("correlation id = %q, want request id", f.cID)
	}
}

func TestHandleCreate(t *testing.T) {
	// Arrange
	f := &fakeUC{}
	l := NewLambda(f, instrument.NewNoop())
	payload := `{"triggerSource":"CreateAuthChallenge_Authentication","userName":"u1",
		"request":{"userAttributes":{"phone_number":"+919876543210"},"challengeName":"CUSTOM_CHALLENGE","session":[]},
		"response":{}}`

	// Act
	b := handle(t, l, context.Background(), payload)

	// Assert
	var ev events.CognitoEventUserPoolsCreateAuthChallenge
	if err := json.Unmarshal(b, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Response.ChallengeMetadata != "OTP_CHALLENGE" {
		t.Fatalf("metadata = %q", ev.Response.ChallengeMetadata)
	}
	if ev.Response.PrivateChallengeParameters["answer"] != "481290" {
		t.Fatalf("private = %v", ev.Response.PrivateChallengeParameters)
	}
	if ev.Response.PublicChallengeParameters["destination"] != "+91******3210" {
		t.Fatalf("public = %v", ev.Response.PublicChallengeParameters)
	}
	if f.createIn.UserAttributes["phone_number"] != "+919876543210" {
		t.Fatalf("create input = %+v", f.createIn)
	}
}

func TestHandleCreateErrorCarriesUserMessage(t *testing.T) {
	f := &fakeUC{createErr: goerror.NewBusinessWrap(errors.New("sns: throttled"), "Failed to send verification code. Please try again.", goerror.CodeUnavailable)}
	l := NewLambda(f, instrument.NewNoop())

	_, err := l.Handle(context.Background(), json.RawMessage(`{"triggerSource":"CreateAuthChallenge_Authentication","request":{}}`))

	if err == nil || err.Error() != "Failed to send verification code. Please try again." {
		t.Fatalf("Handle() error = %v", err)
	}
}

func TestHandleCreateServerErrorHidesCause(t *testing.T) {
	f := &fakeUC{createErr: goerror.NewServer(errors.New("dynamodb: table missing"))}
	l := NewLambda(f, instrument.NewNoop())

	_, err := l.Handle(context.Background(), json.RawMessage(`{"triggerSource":"CreateAuthChallenge_Authentication","request":{}}`))

	if err == nil || strings.Contains(err.Error(), "dynamodb") {
		t.Fatalf("Handle() error = %v", err)
	}
}

func TestHandleVerify(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		wantAnswer string
	}{
		{name: "string answer", answer: `"481290"`, wantAnswer: "481290"},
		{name: "numeric answer", answer: `481290`, wantAnswer: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := &fakeUC{verifyOK: true}
			l := NewLambda(f, instrument.NewNoop())
			payload := `{"triggerSource":"VerifyAuthChallengeResponse_Authentication","userName":"u1",
				"request":{"privateChallengeParameters":{"answer":"481290"},"challengeAnswer":` + tt.answer + `},
				"response":{}}`

			// Act
			b := handle(t, l, context.Background(), payload)

			// Assert
			var ev events.CognitoEventUserPoolsVerifyAuthChallenge
			if err := json.Unmarshal(b, &ev); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !ev.Response.AnswerCorrect {
				t.Fatalf("AnswerCorrect should mirror usecase")
			}
			if f.verifyIn.Answer != tt.wantAnswer || f.verifyIn.PrivateParameters["answer"] != "481290" {
				t.Fatalf("verify input = %+v", f.verifyIn)
			}
		})
	}
}

func TestHandlePreSignUpOmitsUnsetFlags(t *testing.T) {
	// Arrange
	yes := true
	f := &fakeUC{signUp: entity.SignUpDecision{AutoConfirmUser: true, AutoVerifyEmail: &yes}}
	l := NewLambda(f, instrument.NewNoop())
	payload := `{"triggerSource":"PreSignUp_SignUp","userName":"u1","request":{"userAttributes":{"email":"a@b.co"}},"response":{}}`

	// Act
	b := handle(t, l, context.Background(), payload)

	// Assert
	var got struct {
		Response map[string]any `json:"response"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Response["autoConfirmUser"] != true || got.Response["autoVerifyEmail"] != true {
		t.Fatalf("response = %v", got.Response)
	}
	if _, found := got.Response["autoVerifyPhone"]; found {
		t.Fatalf("autoVerifyPhone should be omitted: %v", got.Response)
	}
	if !strings.Contains(string(b), `"triggerSource":"PreSignUp_SignUp"`) {
		t.Fatalf("header should be echoed: %s", b)
	}
}

func TestHandleUnknownTrigger(t *testing.T) {
	l := NewLambda(&fakeUC{}, instrument.NewNoop())

	_, err := l.Handle(context.Background(), json.RawMessage(`{"triggerSource":"PostConfirmation_ConfirmSignUp"}`))

	if !errors.Is(err, goerror.ErrUnknownTrigger) {
		t.Fatalf("Handle() error = %v", err)
	}
}

func TestHandleMalformedPayload(t *testing.T) {
	l := NewLambda(&fakeUC{}, instrument.NewNoop())

	if _, err := l.Handle(context.Background(), json.RawMessage(`not json`)); err == nil {
		t.Fatalf("expected error")
	}
}
