package profile

import (
	"context"
)

// ProfileService operates on the profile owned by userID.
type ProfileService interface {
	Get(ctx context.Context, userID string) (ProfileResponse, error)
	Update(ctx context.Context, userID string, req UpdateProfileRequest) (ProfileResponse, error)
	UploadAvatar(ctx context.Context, userID string, req UploadAvatarRequest) (ProfileResponse, error)
}
