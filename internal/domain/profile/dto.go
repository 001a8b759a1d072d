package profile

import (
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
)

type UpdateProfileRequest struct {
	FullName   string  `json:"full_name"`
	Department *string `json:"department"`
}

// Normalize trims input and turns an empty department into null.
func (r *UpdateProfileRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	if r.Department != nil {
		d := strings.TrimSpace(*r.Department)
		if d == "" {
			r.Department = nil
		} else {
			r.Department = &d
		}
	}
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	} else if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}

	if r.Department != nil && len(*r.Department) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not exceed 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

const MaxAvatarSize = 2 << 20

type UploadAvatarRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadAvatarRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FileHeader == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "avatar",
			Message: "avatar file is required",
		})
		return errs
	}

	ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename))
	if !validator.IsInSlice(ext, []string{".jpg", ".jpeg", ".png", ".webp"}) {
		errs = append(errs, validator.ValidationError{
			Field:   "avatar",
			Message: "invalid file type: only jpg, jpeg, png, webp allowed",
		})
	} else if r.FileHeader.Size > MaxAvatarSize {
		errs = append(errs, validator.ValidationError{
			Field:   "avatar",
			Message: "avatar size must not exceed 2MB",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	EmployeeID *string `json:"employee_id"`
	Department *string `json:"department"`
	AvatarURL  *string `json:"avatar_url"`
	Role       *string `json:"role,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		FullName:   p.FullName,
		Email:      p.Email,
		EmployeeID: p.EmployeeID,
		Department: p.Department,
		AvatarURL:  p.AvatarURL,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
}
