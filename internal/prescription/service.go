package prescription

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"medicore-be/internal/logger"
	"medicore-be/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const keyPrefix = "prescriptions/"

type Service interface {
	Upload(ctx context.Context, in Upload) (*UploadResult, error)
	SetStatus(ctx context.Context, id string, status Status) error
	ListForUser(ctx context.Context, userID uint) ([]*Prescription, error)
	ListAll(ctx context.Context) ([]*Prescription, error)
	Open(ctx context.Context, id string) (*Document, error)
}

type service struct {
	repo     Repository
	files    storage.FileStore
	maxBytes int64
}

func NewService(repo Repository, files storage.FileStore, maxBytes int64) Service {
	return &service{repo: repo, files: files, maxBytes: maxBytes}
}

// storedName keeps the client's extension so downloads open correctly.
func storedName(id, original string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(original), "."))
	if ext == "" {
		return id
	}
	return id + "." + ext
}

func (s *service) Upload(ctx context.Context, in Upload) (*UploadResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Upload"),
		zap.Int("size", len(in.Data)),
	)

	if len(in.Data) == 0 {
		return nil, ErrEmptyFile
	}
	if s.maxBytes > 0 && int64(len(in.Data)) > s.maxBytes {
		return nil, ErrFileTooLarge
	}

	id := uuid.New().String()
	name := storedName(id, in.OriginalFilename)
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	if err := s.files.Put(ctx, keyPrefix+name, in.Data, contentType); err != nil {
		log.Error("failed to store file", zap.Error(err))
		return nil, ErrFailedStoreFile
	}

	p := &Prescription{
		ID:          id,
		UserID:      in.UserID,
		Filename:    name,
		ContentType: contentType,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if derr := s.files.Delete(ctx, keyPrefix+name); derr != nil {
			log.Warn("orphaned prescription file", zap.String("filename", name), zap.Error(derr))
		}
		return nil, err
	}

	log.Info("prescription uploaded", zap.String("prescription_id", id))
	return &UploadResult{ID: id, Filename: name}, nil
}

func (s *service) SetStatus(ctx context.Context, id string, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrPrescriptionNotFound
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) ListForUser(ctx context.Context, userID uint) ([]*Prescription, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]*Prescription, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Open(ctx context.Context, id string) (*Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrPrescriptionNotFound
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	data, contentType, err := s.files.Get(ctx, keyPrefix+p.Filename)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrPrescriptionNotFound
	}
	if err != nil {
		return nil, err
	}

	if contentType == "" {
		contentType = p.ContentType
	}
	return &Document{Filename: p.Filename, ContentType: contentType, Data: data}, nil
}
