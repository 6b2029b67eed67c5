package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/media"
	"github.com/ininsico/voyago-api/internal/repository/ports"
)

var (
	ErrDestinationValidation   = errors.New("destination validation failed")
	ErrDestinationNotFound     = errors.New("destination not found")
	ErrDestinationNameTaken    = errors.New("destination name already exists")
	ErrImageTooLarge           = errors.New("image exceeds maximum size")
	ErrImageUnsupportedType    = errors.New("unsupported image content type")
	errDestinationNameRequired = fmt.Errorf("%w: name required", ErrDestinationValidation)
)

type DestinationImageUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type DestinationConfig struct {
	ImageBucket   string
	ImageMaxBytes int64
}

// DestinationService owns the public catalog reads and the admin CRUD
// surface. Route-level middleware enforces the admin gate; the service only
// validates data.
type DestinationService struct {
	destinations ports.DestinationRepository
	storage      ports.ObjectStorage
	processor    media.Processor

	imageBucket   string
	imageMaxBytes int64

	// onChange fires after any successful mutation so the catalog response
	// cache can be invalidated.
	onChange func()
}

func NewDestinationService(destRepo ports.DestinationRepository, storage ports.ObjectStorage, processor media.Processor, cfg DestinationConfig) *DestinationService {
	maxBytes := cfg.ImageMaxBytes
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &DestinationService{
		destinations:  destRepo,
		storage:       storage,
		processor:     processor,
		imageBucket:   cfg.ImageBucket,
		imageMaxBytes: maxBytes,
		onChange:      func() {},
	}
}

func (s *DestinationService) NotifyChanges(fn func()) {
	if fn != nil {
		s.onChange = fn
	}
}

func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	return s.destinations.List(ctx)
}

func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	dest, err := s.destinations.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return dest, nil
}

func (s *DestinationService) Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	if err := validateDestinationFields(fields, true); err != nil {
		return nil, err
	}
	dest, err := s.destinations.Create(ctx, fields)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDestinationNameTaken
		}
		return nil, err
	}
	s.onChange()
	return dest, nil
}

func (s *DestinationService) Update(ctx context.Context, id uuid.UUID, fields domain.DestinationFields) (*domain.Destination, error) {
	if err := validateDestinationFields(fields, false); err != nil {
		return nil, err
	}
	dest, err := s.destinations.Update(ctx, id, fields)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrDestinationNotFound
		case isUniqueViolation(err):
			return nil, ErrDestinationNameTaken
		default:
			return nil, err
		}
	}
	s.onChange()
	return dest, nil
}

func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.destinations.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrDestinationNotFound
		}
		return err
	}
	s.onChange()
	return nil
}

func (s *DestinationService) UploadImage(ctx context.Context, id uuid.UUID, upload DestinationImageUpload) (*domain.Destination, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if upload.Size <= 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrDestinationValidation)
	}
	if upload.Size > s.imageMaxBytes {
		return nil, ErrImageTooLarge
	}
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if _, ok := allowedAvatarTypes[contentType]; !ok {
		return nil, ErrImageUnsupportedType
	}

	result, err := s.processor.Process(ctx, media.Upload{
		Reader:      upload.Reader,
		Size:        upload.Size,
		FileName:    upload.FileName,
		ContentType: contentType,
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDestinationValidation, err)
	}

	objectKey := fmt.Sprintf("destinations/%s/hero%s", id, avatarExtension(contentType, upload.FileName))
	url, err := s.storage.Upload(ctx, s.imageBucket, objectKey, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return nil, err
	}

	dest, err := s.destinations.Update(ctx, id, domain.DestinationFields{ImageURL: &url})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	s.onChange()
	return dest, nil
}

func validateDestinationFields(fields domain.DestinationFields, creating bool) error {
	if creating {
		if fields.Name == nil || strings.TrimSpace(*fields.Name) == "" {
			return errDestinationNameRequired
		}
		if fields.Category == nil {
			return fmt.Errorf("%w: category required", ErrDestinationValidation)
		}
		if fields.Location == nil || strings.TrimSpace(*fields.Location) == "" {
			return fmt.Errorf("%w: location required", ErrDestinationValidation)
		}
		if fields.Difficulty == nil {
			return fmt.Errorf("%w: difficulty required", ErrDestinationValidation)
		}
		if fields.Price == nil {
			return fmt.Errorf("%w: price required", ErrDestinationValidation)
		}
	}
	if fields.Name != nil && strings.TrimSpace(*fields.Name) == "" {
		return errDestinationNameRequired
	}
	if fields.Category != nil && !fields.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrDestinationValidation, *fields.Category)
	}
	if fields.Difficulty != nil && !fields.Difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrDestinationValidation, *fields.Difficulty)
	}
	if fields.Price != nil && *fields.Price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrDestinationValidation)
	}
	return nil
}
