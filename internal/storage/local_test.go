package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/api/v1/files/"})
	require.NoError(t, err)

	key := NewKey(PrefixResumes, "CV.PDF")
	assert.True(t, strings.HasPrefix(key, "resumes/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	require.NoError(t, s.Save(ctx, key, strings.NewReader("%PDF-1.4"), "application/pdf"))

	exists, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := s.Get(ctx, key)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "%PDF-1.4", string(data))

	url, err := s.GetURL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/files/"+key, url)

	require.NoError(t, s.Delete(ctx, key))
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCleanKey(t *testing.T) {
	key, err := CleanKey("../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	key, err = CleanKey("/resumes/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "resumes/a.pdf", key)

	_, err = CleanKey("")
	assert.ErrorIs(t, err, ErrNotFound)
}
