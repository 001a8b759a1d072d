package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/google/uuid"
)

type FileService interface {
	// UploadAvatar stores an avatar for userID and returns its public URL.
	UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error)
	DeleteFile(ctx context.Context, path string) error
	GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}

type fileServiceImpl struct {
	storage storage.FileStorage
}

func NewFileService(storage storage.FileStorage) FileService {
	return &fileServiceImpl{
		storage: storage,
	}
}

var avatarContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

func (s *fileServiceImpl) UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := avatarContentTypes[ext]
	if !ok {
		return "", fmt.Errorf("invalid file type: only jpg, jpeg, png, webp allowed")
	}

	path := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), ext)
	key, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	url, err := s.storage.GetURL(ctx, key, 0)
	if err != nil {
		return "", fmt.Errorf("failed to resolve avatar url: %w", err)
	}
	return url, nil
}

func (s *fileServiceImpl) DeleteFile(ctx context.Context, path string) error {
	return s.storage.Delete(ctx, path)
}

func (s *fileServiceImpl) GetFileURL(ctx context.Context, path string, expiry time.Duration) (string, error) {
	return s.storage.GetURL(ctx, path, expiry)
}
