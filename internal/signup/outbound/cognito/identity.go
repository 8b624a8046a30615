package cognito

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/shandysiswandi/otpgate/internal/pkg/awsconf"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Public challenge parameters set by the create-challenge trigger.
const (
	paramDeliveryMedium = "deliveryMedium"
	paramDestination    = "destination"
)

// API is the subset of the user pool client used by Identity.
type API interface {
	SignUp(ctx context.Context, in *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	InitiateAuth(ctx context.Context, in *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	RespondToAuthChallenge(ctx context.Context, in *cip.RespondToAuthChallengeInput, optFns ...func(*cip.Options)) (*cip.RespondToAuthChallengeOutput, error)
	GlobalSignOut(ctx context.Context, in *cip.GlobalSignOutInput, optFns ...func(*cip.Options)) (*cip.GlobalSignOutOutput, error)
	GetUser(ctx context.Context, in *cip.GetUserInput, optFns ...func(*cip.Options)) (*cip.GetUserOutput, error)
}

type Config struct {
	ClientID string
	// ClientSecret is set when the app client was created with a secret.
	ClientSecret string
	Timeout      time.Duration
}

// Identity talks to the user pool on behalf of the client app.
type Identity struct {
	client API
	cfg    Config
	secret *hash.HMACSHA256
	ins    instrument.Instrumentation
}

func NewIdentity(client API, cfg Config, ins instrument.Instrumentation) *Identity {
	id := &Identity{client: client, cfg: cfg, ins: ins}
	if cfg.ClientSecret != "" {
		id.secret = hash.NewHMACSHA256Base64(cfg.ClientSecret)
	}
	return id
}

func (i *Identity) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return i.ins.Tracer("signup.outbound.cognito").Start(ctx, name,
		trace.WithAttributes(attribute.String("rpc.system", "aws-api"), attribute.String("rpc.service", "CognitoIdentityProvider")))
}

// secretHash is Base64(HMAC_SHA256(secret, username + clientID)), or nil
// when the app client has no secret.
func (i *Identity) secretHash(username string) *string {
	if i.secret == nil {
		return nil
	}
	return aws.String(i.secret.String(username + i.cfg.ClientID))
}

func (i *Identity) Register(ctx context.Context, username, password string, attrs map[string]string) (string, error) {
	ctx, span := i.startSpan(ctx, "Register")
	defer span.End()

	ctx, cancel := awsconf.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	userAttrs := make([]types.AttributeType, 0, len(attrs))
	for name, value := range attrs {
		userAttrs = append(userAttrs, types.AttributeType{Name: aws.String(name), Value: aws.String(value)})
	}

	out, err := i.client.SignUp(ctx, &cip.SignUpInput{
		ClientId:       aws.String(i.cfg.ClientID),
		Username:       aws.String(username),
		Password:       aws.String(password),
		SecretHash:     i.secretHash(username),
		UserAttributes: userAttrs,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", mapError(err, opRegister)
	}

	return aws.ToString(out.UserSub), nil
}

func (i *Identity) InitiateAuth(ctx context.Context, username string) (*entity.ChallengeHandle, error) {
	ctx, span := i.startSpan(ctx, "InitiateAuth")
	defer span.End()

	ctx, cancel := awsconf.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	params := map[string]string{"USERNAME": username}
	if h := i.secretHash(username); h != nil {
		params["SECRET_HASH"] = *h
	}

	out, err := i.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeCustomAuth,
		ClientId:       aws.String(i.cfg.ClientID),
		AuthParameters: params,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, mapError(err, opInitiate)
	}

	return &entity.ChallengeHandle{
		Username:       username,
		Session:        aws.ToString(out.Session),
		ChallengeName:  string(out.ChallengeName),
		DeliveryMedium: out.ChallengeParameters[paramDeliveryMedium],
		Destination:    out.ChallengeParameters[paramDestination],
	}, nil
}

func (i *Identity) RespondToChallenge(ctx context.Context, username, session, code string) (*entity.Tokens, error) {
	ctx, span := i.startSpan(ctx, "RespondToChallenge")
	defer span.End()

	ctx, cancel := awsconf.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	responses := map[string]string{"USERNAME": username, "ANSWER": code}
	if h := i.secretHash(username); h != nil {
		responses["SECRET_HASH"] = *h
	}

	out, err := i.client.RespondToAuthChallenge(ctx, &cip.RespondToAuthChallengeInput{
		ChallengeName:      types.ChallengeNameTypeCustomChallenge,
		ClientId:           aws.String(i.cfg.ClientID),
		Session:            aws.String(session),
		ChallengeResponses: responses,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, mapError(err, opConfirm)
	}

	// Another challenge instead of tokens means the answer was not accepted.
	res := out.AuthenticationResult
	if res == nil {
		span.SetStatus(codes.Error, "no authentication result")
		return nil, errInvalidCode
	}

	return &entity.Tokens{
		AccessToken:  aws.ToString(res.AccessToken),
		IDToken:      aws.ToString(res.IdToken),
		RefreshToken: aws.ToString(res.RefreshToken),
		TokenType:    aws.ToString(res.TokenType),
		ExpiresIn:    time.Duration(res.ExpiresIn) * time.Second,
	}, nil
}

func (i *Identity) SignOut(ctx context.Context, accessToken string) error {
	ctx, span := i.startSpan(ctx, "SignOut")
	defer span.End()

	ctx, cancel := awsconf.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	if _, err := i.client.GlobalSignOut(ctx, &cip.GlobalSignOutInput{AccessToken: aws.String(accessToken)}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return mapError(err, opSession)
	}

	return nil
}

func (i *Identity) CurrentUser(ctx context.Context, accessToken string) (*entity.Profile, error) {
	ctx, span := i.startSpan(ctx, "CurrentUser")
	defer span.End()

	ctx, cancel := awsconf.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	out, err := i.client.GetUser(ctx, &cip.GetUserInput{AccessToken: aws.String(accessToken)})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, mapError(err, opSession)
	}

	attrs := make(map[string]string, len(out.UserAttributes))
	for _, a := range out.UserAttributes {
		attrs[aws.ToString(a.Name)] = aws.ToString(a.Value)
	}

	return &entity.Profile{Username: aws.ToString(out.Username), Attributes: attrs}, nil
}
