package user

import (
	"context"
	"fmt"
	"strings"

	"budgetbuddy-go/internal/currency"
)

const maxDisplayNameLength = 80

type Service struct {
	repo      Repository
	onboarder Onboarder
}

func NewService(repo Repository, onboarder Onboarder) *Service {
	return &Service{repo: repo, onboarder: onboarder}
}

// UpsertProfile records the identity seen by the auth layer. The first time a
// user shows up the onboarder seeds their default data.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, name, avatarURL string) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}

	profile := Profile{
		UserID:      userID,
		Email:       optional(email),
		DisplayName: optional(name),
		AvatarURL:   optional(avatarURL),
		Currency:    DefaultCurrency,
	}

	created, err := s.repo.CreateProfileIfMissing(ctx, &profile)
	if err != nil {
		return err
	}
	if !created {
		return s.repo.UpdateIdentity(ctx, &profile)
	}

	if s.onboarder != nil {
		if _, err := s.onboarder.EnsureDefaults(ctx, userID); err != nil {
			return fmt.Errorf("onboard user: %w", err)
		}
	}
	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*Profile, error) {
	profile, err := s.repo.GetProfile(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		name := strings.TrimSpace(*input.DisplayName)
		if len([]rune(name)) > maxDisplayNameLength {
			return nil, ErrInvalidDisplayName
		}
		profile.DisplayName = optional(name)
	}
	if input.Currency != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if !currency.IsSupported(code) {
			return nil, ErrUnsupportedCurrency
		}
		profile.Currency = code
	}

	if err := s.repo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
