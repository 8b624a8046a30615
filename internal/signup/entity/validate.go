package entity

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	rePhone = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)
)

const MinimumAge = 13

// Step names one screen of the sign-up flow.
type Step string

const (
	StepIdentifier Step = "identifier"
	StepPassword   Step = "password"
	StepBirthDate  Step = "date_of_birth"
	StepInterests  Step = "interests"
)

// StepError is a validation failure shown under the input of one step.
type StepError struct {
	Step    Step
	Message string
}

func (e *StepError) Error() string {
	return string(e.Step) + ": " + e.Message
}

func stepErr(step Step, msg string) error {
	return &StepError{Step: step, Message: msg}
}

func ValidateIdentifier(kind IdentifierKind, value string) error {
	if kind == KindPhone {
		if strings.TrimSpace(value) == "" {
			return stepErr(StepIdentifier, "Please enter your phone number")
		}
		if !rePhone.MatchString(strings.Join(strings.Fields(value), "")) {
			return stepErr(StepIdentifier, "Please enter a valid phone number")
		}
		return nil
	}

	if strings.TrimSpace(value) == "" {
		return stepErr(StepIdentifier, "Please enter your email address")
	}
	if !reEmail.MatchString(value) {
		return stepErr(StepIdentifier, "Please enter a valid email address")
	}
	return nil
}

func ValidatePassword(password, confirm string) error {
	switch {
	case password == "":
		return stepErr(StepPassword, "Please enter a password")
	case len([]rune(password)) < 6:
		return stepErr(StepPassword, "Password must be at least 6 characters")
	case confirm == "":
		return stepErr(StepPassword, "Please confirm your password")
	case password != confirm:
		return stepErr(StepPassword, "Passwords do not match")
	}
	return nil
}

// ValidateBirthDate checks the date against the calendar year of now. Age
// is counted in whole calendar years.
func ValidateBirthDate(b BirthDate, now time.Time) error {
	if strings.TrimSpace(b.Day) == "" || strings.TrimSpace(b.Month) == "" || strings.TrimSpace(b.Year) == "" {
		return stepErr(StepBirthDate, "Please enter your complete date of birth")
	}

	day, errD := strconv.Atoi(strings.TrimSpace(b.Day))
	month, errM := strconv.Atoi(strings.TrimSpace(b.Month))
	year, errY := strconv.Atoi(strings.TrimSpace(b.Year))
	if errD != nil || errM != nil || errY != nil {
		return stepErr(StepBirthDate, "Please enter valid numbers")
	}

	if day < 1 || day > 31 {
		return stepErr(StepBirthDate, "Day must be between 1 and 31")
	}
	if month < 1 || month > 12 {
		return stepErr(StepBirthDate, "Month must be between 1 and 12")
	}

	current := now.Year()
	if year < 1900 || year > current {
		return stepErr(StepBirthDate, fmt.Sprintf("Year must be between 1900 and %d", current))
	}
	if current-year < MinimumAge {
		return stepErr(StepBirthDate, fmt.Sprintf("You must be at least %d years old", MinimumAge))
	}

	if day > daysIn(time.Month(month), year) {
		return stepErr(StepBirthDate, "Invalid day for the selected month")
	}

	return nil
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Time returns the date when all three parts are valid numbers forming a
// real calendar day.
func (b BirthDate) Time() (time.Time, bool) {
	day, errD := strconv.Atoi(strings.TrimSpace(b.Day))
	month, errM := strconv.Atoi(strings.TrimSpace(b.Month))
	year, errY := strconv.Atoi(strings.TrimSpace(b.Year))
	if errD != nil || errM != nil || errY != nil || month < 1 || month > 12 || day < 1 || day > daysIn(time.Month(month), year) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ValidateInterests requires at least one tag or a suggestion. When allowed
// is non-empty every tag must be in it.
func ValidateInterests(tags []string, suggestions string, allowed []string) error {
	if len(tags) == 0 && strings.TrimSpace(suggestions) == "" {
		return stepErr(StepInterests, "Please select at least one KPI or provide suggestions")
	}

	if len(allowed) == 0 {
		return nil
	}
	for _, t := range tags {
		if !slices.Contains(allowed, t) {
			return stepErr(StepInterests, fmt.Sprintf("Unknown interest %q", t))
		}
	}

	return nil
}

// Validate runs every step in screen order and returns the first failure.
func (d Draft) Validate(now time.Time, allowedInterests []string) error {
	if err := ValidateIdentifier(d.kind, d.identifier); err != nil {
		return err
	}
	if err := ValidatePassword(d.password, d.confirmPassword); err != nil {
		return err
	}
	if err := ValidateBirthDate(d.birthDate, now); err != nil {
		return err
	}
	return ValidateInterests(d.interests, d.suggestions, allowedInterests)
}
