package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/profile"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

type ProfileHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UploadAvatar(w http.ResponseWriter, r *http.Request)
}

type profileHandlerImpl struct {
	profileService profile.ProfileService
}

func NewProfileHandler(profileService profile.ProfileService) ProfileHandler {
	return &profileHandlerImpl{
		profileService: profileService,
	}
}

// Get implements ProfileHandler.
func (h *profileHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	result, err := h.profileService.Get(r.Context(), sess.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result.Role = sess.RoleString()
	response.Success(w, result)
}

// Update implements ProfileHandler.
func (h *profileHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateProfile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.profileService.Update(r.Context(), sess.UserID, req)
	if err != nil {
		slog.Error("UpdateProfile service error", "user_id", sess.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	result.Role = sess.RoleString()
	response.SuccessWithMessage(w, "Profile updated successfully", result)
}

// UploadAvatar implements ProfileHandler.
func (h *profileHandlerImpl) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	sess, ok := currentSession(w, r)
	if !ok {
		return
	}

	// Leave room for the multipart envelope around a max-size file
	r.Body = http.MaxBytesReader(w, r.Body, profile.MaxAvatarSize+(1<<20))
	if err := r.ParseMultipartForm(profile.MaxAvatarSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("avatar")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			response.BadRequest(w, "Avatar file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := profile.UploadAvatarRequest{
		File:       file,
		FileHeader: fileHeader,
	}

	result, err := h.profileService.UploadAvatar(r.Context(), sess.UserID, req)
	if err != nil {
		slog.Error("UploadAvatar service error", "user_id", sess.UserID, "error", err)
		response.HandleError(w, err)
		return
	}

	result.Role = sess.RoleString()
	response.SuccessWithMessage(w, "Avatar uploaded successfully", result)
}
