package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/operation"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/service/file"
)

// SessionRefresher re-resolves a cached session after its profile changed.
type SessionRefresher interface {
	Refresh(userID string)
}

type ProfileServiceImpl struct {
	profile.ProfileRepository
	fileService file.FileService
	operations  operation.Service
	sessions    SessionRefresher
}

func NewProfileService(
	profileRepo profile.ProfileRepository,
	fileService file.FileService,
	operations operation.Service,
	sessions SessionRefresher,
) profile.ProfileService {
	return &ProfileServiceImpl{
		ProfileRepository: profileRepo,
		fileService:       fileService,
		operations:        operations,
		sessions:          sessions,
	}
}

// Get implements profile.ProfileService.
func (s *ProfileServiceImpl) Get(ctx context.Context, userID string) (profile.ProfileResponse, error) {
	p, err := s.ProfileRepository.GetByUserID(ctx, userID)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("failed to get profile: %w", err)
	}
	if p == nil {
		return profile.ProfileResponse{}, profile.ErrProfileNotFound
	}
	return profile.NewProfileResponse(*p), nil
}

// Update implements profile.ProfileService.
func (s *ProfileServiceImpl) Update(ctx context.Context, userID string, req profile.UpdateProfileRequest) (profile.ProfileResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	updated, err := s.ProfileRepository.Update(ctx, userID, req)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return profile.ProfileResponse{}, err
		}
		return profile.ProfileResponse{}, fmt.Errorf("%w: %v", profile.ErrUpdateFailed, err)
	}

	var department interface{}
	if updated.Department != nil {
		department = *updated.Department
	}
	s.operations.Log(ctx, operation.LogRequest{
		ActorUserID:  &userID,
		TargetUserID: &userID,
		Action:       operation.ActionUpdateProfile,
		Metadata: map[string]interface{}{
			"full_name":  updated.FullName,
			"department": department,
		},
	})
	s.refresh(userID)

	return profile.NewProfileResponse(updated), nil
}

// UploadAvatar implements profile.ProfileService.
func (s *ProfileServiceImpl) UploadAvatar(ctx context.Context, userID string, req profile.UploadAvatarRequest) (profile.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return profile.ProfileResponse{}, err
	}

	url, err := s.fileService.UploadAvatar(ctx, userID, req.File, req.FileHeader.Filename)
	if err != nil {
		return profile.ProfileResponse{}, fmt.Errorf("%w: %v", profile.ErrInvalidAvatar, err)
	}

	updated, err := s.ProfileRepository.UpdateAvatar(ctx, userID, url)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return profile.ProfileResponse{}, err
		}
		return profile.ProfileResponse{}, fmt.Errorf("%w: %v", profile.ErrUpdateFailed, err)
	}

	s.operations.Log(ctx, operation.LogRequest{
		ActorUserID:  &userID,
		TargetUserID: &userID,
		Action:       operation.ActionUpdateAvatar,
		Metadata:     map[string]interface{}{"avatar_url": url},
	})
	s.refresh(userID)

	return profile.NewProfileResponse(updated), nil
}

func (s *ProfileServiceImpl) refresh(userID string) {
	if s.sessions != nil {
		s.sessions.Refresh(userID)
	}
}
