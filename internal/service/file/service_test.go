package file

import (
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadAvatar(t *testing.T) {
	local, err := storage.NewLocalStorage(t.TempDir(), "http://cdn.test/uploads")
	require.NoError(t, err)
	svc := NewFileService(local)

	url, err := svc.UploadAvatar(context.Background(), "user-1", strings.NewReader("img"), "me.PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://cdn.test/uploads/avatars/user-1/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	_, err = svc.UploadAvatar(context.Background(), "user-1", strings.NewReader("x"), "script.sh")
	assert.Error(t, err)
}
