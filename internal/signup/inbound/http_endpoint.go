package inbound

import (
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
	"github.com/shandysiswandi/otpgate/internal/signup/usecase"
)

// HTTPEndpoint exposes the sign-up and code sign-in flow.
type HTTPEndpoint struct {
	uc uc
}

func draftInput(req DraftRequest) usecase.DraftInput {
	return usecase.DraftInput{
		IdentifierType:  req.IdentifierType,
		Identifier:      req.Identifier,
		CountryCode:     req.CountryCode,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Day:             req.Day,
		Month:           req.Month,
		Year:            req.Year,
		Interests:       req.Interests,
		Suggestions:     req.Suggestions,
	}
}

func challengeResponse(h *entity.ChallengeHandle) ChallengeResponse {
	return ChallengeResponse{
		Username:       h.Username,
		Session:        h.Session,
		ChallengeName:  h.ChallengeName,
		DeliveryMedium: h.DeliveryMedium,
		Destination:    h.Destination,
	}
}

// ValidateStep checks one screen of the draft.
func (h *HTTPEndpoint) ValidateStep(r *router.Request) (any, error) {
	var req ValidateStepRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ValidateStep(r.Context(), usecase.ValidateStepInput{
		Step:  req.Step,
		Draft: draftInput(req.Draft),
	}); err != nil {
		return nil, err
	}

	return ValidateStepResponse{Step: req.Step}, nil
}

// Signup registers the draft and sends the first code.
func (h *HTTPEndpoint) Signup(r *router.Request) (any, error) {
	var req SignupRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	handle, err := h.uc.Signup(r.Context(), usecase.SignupInput{Draft: draftInput(DraftRequest(req))})
	if err != nil {
		return nil, err
	}

	return SignupResponse{ChallengeResponse: challengeResponse(handle)}, nil
}

func (h *HTTPEndpoint) Initiate(r *router.Request) (any, error) {
	var req InitiateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	handle, err := h.uc.Initiate(r.Context(), usecase.InitiateInput{Username: req.Username})
	if err != nil {
		return nil, err
	}

	return challengeResponse(handle), nil
}

// Resend starts over with a new session; the old one is discarded.
func (h *HTTPEndpoint) Resend(r *router.Request) (any, error) {
	var req InitiateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	handle, err := h.uc.Resend(r.Context(), usecase.InitiateInput{Username: req.Username})
	if err != nil {
		return nil, err
	}

	return challengeResponse(handle), nil
}

func (h *HTTPEndpoint) Verify(r *router.Request) (any, error) {
	var req VerifyRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Confirm(r.Context(), usecase.ConfirmInput{
		Username: req.Username,
		Session:  req.Session,
		Code:     req.Code,
		Cells:    req.Cells,
	})
	if err != nil {
		return nil, err
	}

	return VerifyResponse{
		Subject:      out.Subject,
		AccessToken:  out.Tokens.AccessToken,
		IDToken:      out.Tokens.IDToken,
		RefreshToken: out.Tokens.RefreshToken,
		TokenType:    out.Tokens.TokenType,
		ExpiresIn:    int64(out.Tokens.ExpiresIn.Seconds()),
	}, nil
}

func (h *HTTPEndpoint) SignOut(r *router.Request) (any, error) {
	if err := h.uc.SignOut(r.Context()); err != nil {
		return nil, err
	}
	return SignOutResponse{}, nil
}

func (h *HTTPEndpoint) Session(r *router.Request) (any, error) {
	info, err := h.uc.Session(r.Context())
	if err != nil {
		return nil, err
	}

	return SessionResponse{
		Subject:    info.Subject,
		Username:   info.Username,
		ClientID:   info.ClientID,
		ExpiresAt:  info.ExpiresAt,
		Attributes: info.Profile.Attributes,
	}, nil
}
