package user

import "context"

type Repository interface {
	// CreateProfileIfMissing reports whether a new row was inserted.
	CreateProfileIfMissing(ctx context.Context, profile *Profile) (bool, error)
	UpdateIdentity(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, profile *Profile) error
}

// Onboarder prepares data for a user seen for the first time.
type Onboarder interface {
	EnsureDefaults(ctx context.Context, userID string) (int, error)
}
