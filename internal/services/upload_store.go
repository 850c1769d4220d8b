package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var ErrUploadTooLarge = errors.New("resume file too large")

// UploadStore keeps uploaded resumes on disk for the length of one request.
type UploadStore interface {
	EnsureDir() error
	Save(file *multipart.FileHeader) (*StoredUpload, error)
	Remove(upload *StoredUpload) error
}

// StoredUpload is a saved upload. Name keeps the client's extension so the
// media type can still be inferred from it.
type StoredUpload struct {
	Name         string
	Path         string
	OriginalName string
	Size         int64
}

type diskUploadStore struct {
	dir     string
	maxSize int64
}

// NewUploadStore saves uploads under dir. maxSize <= 0 disables the limit.
func NewUploadStore(dir string, maxSize int64) UploadStore {
	return &diskUploadStore{
		dir:     dir,
		maxSize: maxSize,
	}
}

func (s *diskUploadStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

// Save copies the upload to resume_<uuid><ext>. The limit is checked against
// the declared size and again against the bytes actually read.
func (s *diskUploadStore) Save(file *multipart.FileHeader) (*StoredUpload, error) {
	if s.limited() && file.Size > s.maxSize {
		return nil, s.tooLarge()
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	upload := &StoredUpload{
		Name:         fmt.Sprintf("resume_%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(file.Filename))),
		OriginalName: file.Filename,
	}
	upload.Path = filepath.Join(s.dir, upload.Name)

	dst, err := os.Create(upload.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	var reader io.Reader = src
	if s.limited() {
		reader = io.LimitReader(src, s.maxSize+1)
	}

	upload.Size, err = io.Copy(dst, reader)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err == nil && s.limited() && upload.Size > s.maxSize {
		err = s.tooLarge()
	}
	if err != nil {
		os.Remove(upload.Path)
		if errors.Is(err, ErrUploadTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return upload, nil
}

func (s *diskUploadStore) Remove(upload *StoredUpload) error {
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(upload.Name))); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *diskUploadStore) limited() bool {
	return s.maxSize > 0
}

func (s *diskUploadStore) tooLarge() error {
	return fmt.Errorf("%w. Max size: %d bytes", ErrUploadTooLarge, s.maxSize)
}
