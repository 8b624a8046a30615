package usecase

import (
	"strings"

	"github.com/samber/lo"
	"github.com/shandysiswandi/otpgate/internal/signup/entity"
)

// DraftInput carries every sign-up screen in one request.
type DraftInput struct {
	IdentifierType  string `validate:"omitempty,oneof=email phone"`
	Identifier      string `validate:"max=254"`
	CountryCode     string `validate:"omitempty,max=5"`
	Password        string `validate:"max=256"`
	ConfirmPassword string `validate:"max=256"`
	Day             string `validate:"max=2"`
	Month           string `validate:"max=2"`
	Year            string `validate:"max=4"`
	Interests       []string
	Suggestions     string `validate:"max=500"`
}

func (s *Usecase) draft(in DraftInput) entity.Draft {
	return entity.NewDraft().
		WithCountryCode(lo.CoalesceOrEmpty(in.CountryCode, s.countryCode())).
		WithIdentifier(entity.ParseIdentifierKind(in.IdentifierType), in.Identifier).
		WithPassword(in.Password, in.ConfirmPassword).
		WithBirthDate(entity.BirthDate{Day: in.Day, Month: in.Month, Year: in.Year}).
		WithInterests(normalizeInterests(in.Interests), in.Suggestions)
}

// normalizeInterests lowercases, trims and de-duplicates tags, keeping the
// first occurrence order.
func normalizeInterests(tags []string) []string {
	return lo.Uniq(lo.FilterMap(tags, func(t string, _ int) (string, bool) {
		t = strings.ToLower(strings.TrimSpace(t))
		return t, t != ""
	}))
}
