package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kponna/jobfitai/mocks"
)

func TestParseS3Location(t *testing.T) {
	bucket, key, ok := parseS3Location("s3://resumes/2024/jane.pdf")
	require.True(t, ok)
	assert.Equal(t, "resumes", bucket)
	assert.Equal(t, "2024/jane.pdf", key)

	for _, loc := range []string{"/tmp/cv.pdf", "s3://", "s3://bucket", "s3://bucket/", "https://x/y.pdf"} {
		_, _, ok := parseS3Location(loc)
		assert.False(t, ok, loc)
	}
}

func TestLocalSource_Fetch(t *testing.T) {
	path, cleanup, err := LocalSource{}.Fetch(context.Background(), "/tmp/cv.pdf")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/cv.pdf", path)
	cleanup()
}

func TestS3Source_Fetch_Downloads(t *testing.T) {
	downloader := new(mocks.MockObjectDownloader)
	downloader.On("Download", mock.Anything, "resumes", "2024/Jane.PDF").Return([]byte("%PDF-1.4 bytes"), nil)
	dir := t.TempDir()

	path, cleanup, err := NewS3Source(downloader, dir).Fetch(context.Background(), "s3://resumes/2024/Jane.PDF")
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".pdf", filepath.Ext(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 bytes", string(data))

	cleanup()
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestS3Source_Fetch_LocalPassthrough(t *testing.T) {
	downloader := new(mocks.MockObjectDownloader)

	path, _, err := NewS3Source(downloader, t.TempDir()).Fetch(context.Background(), "/data/cv.docx")

	require.NoError(t, err)
	assert.Equal(t, "/data/cv.docx", path)
	downloader.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything)
}

func TestS3Source_Fetch_DownloadError(t *testing.T) {
	downloader := new(mocks.MockObjectDownloader)
	downloader.On("Download", mock.Anything, "resumes", "cv.pdf").Return(nil, errors.New("NoSuchKey"))

	_, cleanup, err := NewS3Source(downloader, t.TempDir()).Fetch(context.Background(), "s3://resumes/cv.pdf")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "NoSuchKey")
	assert.NotNil(t, cleanup)
}

func TestS3FileStore_Download(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/resumes/cv.pdf" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("resume bytes"))
	}))
	t.Cleanup(srv.Close)

	store, err := NewS3FileStore(context.Background(), S3Config{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)

	data, err := store.Download(context.Background(), "resumes", "cv.pdf")
	require.NoError(t, err)
	assert.Equal(t, "resume bytes", string(data))

	_, err = store.Download(context.Background(), "resumes", "other.pdf")
	assert.Error(t, err)
}
