package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StorageService keeps uploaded résumés until a score job reads them.
type StorageService interface {
	Init(ctx context.Context) error
	SaveFile(ctx context.Context, file *multipart.FileHeader, fileType string) (string, string, error)
	ReadFile(ctx context.Context, filename string) ([]byte, error)
	DeleteFile(ctx context.Context, filename string) error
	Backend() string
}

type localStorageService struct {
	uploadPath string
}

func NewLocalStorageService(uploadPath string) StorageService {
	return &localStorageService{
		uploadPath: uploadPath,
	}
}

func (s *localStorageService) Backend() string {
	return "local"
}

func (s *localStorageService) Init(_ context.Context) error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile returns the generated filename and the path it was written to.
func (s *localStorageService) SaveFile(_ context.Context, file *multipart.FileHeader, fileType string) (string, string, error) {
	uniqueFilename := newStorageKey(file.Filename, fileType)
	filePath := filepath.Join(s.uploadPath, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *localStorageService) ReadFile(_ context.Context, filename string) ([]byte, error) {
	data, err := os.ReadFile(s.filePath(filename))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

func (s *localStorageService) DeleteFile(_ context.Context, filename string) error {
	if err := os.Remove(s.filePath(filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *localStorageService) filePath(filename string) string {
	// keys are generated by newStorageKey; refuse anything that walks out of uploadPath
	return filepath.Join(s.uploadPath, filepath.Base(filename))
}

// newStorageKey keeps the original extension so text extraction can pick a parser.
func newStorageKey(originalName, fileType string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s_%s%s", fileType, uuid.New().String(), ext)
}
