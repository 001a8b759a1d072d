package profile

import (
	"context"
)

type ProfileRepository interface {
	// GetByUserID returns nil, nil when no profile row exists.
	GetByUserID(ctx context.Context, userID string) (*Profile, error)

	// ListByUserIDs fetches the profiles for a batch of user ids in one call.
	ListByUserIDs(ctx context.Context, userIDs []string) ([]Profile, error)

	List(ctx context.Context) ([]Profile, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, p Profile) (Profile, error)
	Update(ctx context.Context, userID string, req UpdateProfileRequest) (Profile, error)
	UpdateAvatar(ctx context.Context, userID string, avatarURL string) (Profile, error)
}
