package cognito

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
)

type operation int

const (
	opRegister operation = iota
	opInitiate
	opConfirm
	opSession
)

const msgInvalidCode = "Invalid OTP. Please try again."

var errInvalidCode = goerror.NewBusiness(msgInvalidCode, goerror.CodeUnauthorized)

// mapError turns a user pool error into a goerror carrying a message the
// client can show as is.
func mapError(err error, op operation) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return goerror.NewBusinessWrap(err, "The identity service did not respond in time", goerror.CodeTimeout)
	}

	var (
		exists      *types.UsernameExistsException
		badPassword *types.InvalidPasswordException
		badParam    *types.InvalidParameterException
		notAuth     *types.NotAuthorizedException
		mismatch    *types.CodeMismatchException
		expired     *types.ExpiredCodeException
		notFound    *types.UserNotFoundException
		trigger     *types.UserLambdaValidationException
		throttled   *types.TooManyRequestsException
		limit       *types.LimitExceededException
	)

	switch {
	case errors.As(err, &exists):
		return goerror.NewBusinessWrap(err, message(err, "An account with this username already exists"), goerror.CodeConflict)
	case errors.As(err, &badPassword), errors.As(err, &badParam):
		return goerror.NewBusinessWrap(err, message(err, "Invalid sign up details"), goerror.CodeInvalidInput)
	case op == opConfirm && (errors.As(err, &notAuth) || errors.As(err, &mismatch) || errors.As(err, &expired)):
		return goerror.NewBusinessWrap(err, msgInvalidCode, goerror.CodeUnauthorized)
	case errors.As(err, &notAuth):
		return goerror.NewBusinessWrap(err, message(err, "Authentication failed"), goerror.CodeUnauthorized)
	case errors.As(err, &notFound):
		return goerror.NewBusinessWrap(err, message(err, "User does not exist"), goerror.CodeNotFound)
	case errors.As(err, &trigger):
		msg := triggerMessage(message(err, ""))
		if strings.Contains(msg, "Too many OTP requests") {
			return goerror.NewBusinessWrap(err, msg, goerror.CodeTooManyRequest)
		}
		if msg == "" {
			msg = "Failed to send verification code. Please try again."
		}
		return goerror.NewBusinessWrap(err, msg, goerror.CodeUnavailable)
	case errors.As(err, &throttled), errors.As(err, &limit):
		return goerror.NewBusinessWrap(err, message(err, "Too many requests. Please try again later."), goerror.CodeTooManyRequest)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorFault() == smithy.FaultClient {
		return goerror.NewBusinessWrap(err, message(err, "Request rejected"), goerror.CodeInvalidInput)
	}

	return goerror.NewServer(err)
}

func message(err error, fallback string) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}
	return fallback
}

// triggerMessage extracts the trigger's own message from the pool's
// "<Trigger> failed with error <message>." wrapper.
func triggerMessage(msg string) string {
	const marker = "failed with error "
	if i := strings.Index(msg, marker); i >= 0 {
		msg = msg[i+len(marker):]
	}
	msg = strings.TrimSpace(msg)
	if strings.HasSuffix(msg, "..") {
		msg = strings.TrimSuffix(msg, ".")
	}
	return msg
}
