package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	s, err := NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "/uploads/"})
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "resumes/a/cv.txt", strings.NewReader("Go, SQL"), "text/plain"))

	ok, err := s.Exists(ctx, "resumes/a/cv.txt")
	require.NoError(t, err)
	assert.True(t, ok)

	rc, err := s.Get(ctx, "resumes/a/cv.txt")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "Go, SQL", string(data))

	url, _ := s.GetURL(ctx, "resumes/a/cv.txt")
	assert.Equal(t, "/uploads/resumes/a/cv.txt", url)

	require.NoError(t, s.Delete(ctx, "resumes/a/cv.txt"))
	_, err = s.Get(ctx, "resumes/a/cv.txt")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocalStorage_KeyCannotEscapeBase(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: base})
	require.NoError(t, err)

	// "../" схлопывается относительно корня хранилища
	require.NoError(t, s.Save(context.Background(), "../../escape.txt", strings.NewReader("x"), "text/plain"))
	ok, err := s.Exists(context.Background(), "escape.txt")
	require.NoError(t, err)
	assert.True(t, ok)
}
