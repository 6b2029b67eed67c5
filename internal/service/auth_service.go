package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/media"
	"github.com/ininsico/voyago-api/internal/repository/ports"
	"github.com/ininsico/voyago-api/internal/util"
)

var (
	ErrAuthValidation        = errors.New("auth validation failed")
	ErrEmailAlreadyUsed      = errors.New("email already registered")
	ErrPasswordTooWeak       = errors.New("password does not meet requirements")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidGoogleToken    = errors.New("invalid google token")
	ErrTokenInvalid          = errors.New("invalid or expired token")
	ErrUserNotFound          = errors.New("user not found")
	ErrSelfDelete            = errors.New("admins cannot delete their own account")
	ErrAvatarTooLarge        = errors.New("avatar exceeds maximum size")
	ErrAvatarUnsupportedType = errors.New("unsupported avatar content type")
)

var allowedAvatarTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

type AvatarUpload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type googleTokenVerifier func(ctx context.Context, idToken, audience string) (email, firstName string, lastName, picture *string, err error)

type AuthConfig struct {
	AdminEmail     string
	GoogleAudience string
	AvatarBucket   string
	AvatarMaxBytes int64
}

type AuthService struct {
	users     ports.UserRepository
	storage   ports.ObjectStorage
	tokens    *util.JWTManager
	processor media.Processor

	adminEmail     string
	googleAudience string
	avatarBucket   string
	avatarMaxBytes int64

	verifyGoogleToken googleTokenVerifier
	now               func() time.Time
}

func NewAuthService(users ports.UserRepository, storage ports.ObjectStorage, tokens *util.JWTManager, processor media.Processor, cfg AuthConfig) *AuthService {
	maxBytes := cfg.AvatarMaxBytes
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &AuthService{
		users:             users,
		storage:           storage,
		tokens:            tokens,
		processor:         processor,
		adminEmail:        strings.ToLower(strings.TrimSpace(cfg.AdminEmail)),
		googleAudience:    cfg.GoogleAudience,
		avatarBucket:      cfg.AvatarBucket,
		avatarMaxBytes:    maxBytes,
		verifyGoogleToken: verifyGoogleIDToken,
		now:               time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, firstName string, lastName *string, email, password string) (*AuthResult, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: first name required", ErrAuthValidation)
	}
	email = normalizeEmail(email)
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", ErrAuthValidation)
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPasswordTooWeak, err)
	}

	hash, salt, err := util.DerivePassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, email, firstName, normalizeOptional(lastName), hash, salt, s.roleFor(email))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailAlreadyUsed
		}
		return nil, err
	}

	return s.issueToken(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !util.VerifyPassword(password, user.PasswordSalt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	user, err = s.healAdminRole(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken string) (*AuthResult, error) {
	email, firstName, lastName, picture, err := s.verifyGoogleToken(ctx, idToken, s.googleAudience)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	email = normalizeEmail(email)

	user, err := s.users.UpsertGoogleUser(ctx, email, firstName, lastName, picture, s.roleFor(email))
	if err != nil {
		return nil, err
	}

	user, err = s.healAdminRole(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.issueToken(user)
}

// Authenticate resolves a bearer token to its current user record. The token
// only carries the user id, so a deleted account invalidates the token
// immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, firstName, lastName *string) (*domain.User, error) {
	first := normalizeOptional(firstName)
	if firstName != nil && first == nil {
		return nil, fmt.Errorf("%w: first name cannot be blank", ErrAuthValidation)
	}
	user, err := s.users.UpdateProfile(ctx, userID, first, normalizeOptional(lastName))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UploadAvatar(ctx context.Context, userID uuid.UUID, upload AvatarUpload) (*domain.User, error) {
	if upload.Size <= 0 {
		return nil, fmt.Errorf("%w: empty upload", ErrAuthValidation)
	}
	if upload.Size > s.avatarMaxBytes {
		return nil, ErrAvatarTooLarge
	}
	contentType := strings.ToLower(strings.TrimSpace(upload.ContentType))
	if _, ok := allowedAvatarTypes[contentType]; !ok {
		return nil, ErrAvatarUnsupportedType
	}

	result, err := s.processor.Process(ctx, media.Upload{
		Reader:      upload.Reader,
		Size:        upload.Size,
		FileName:    upload.FileName,
		ContentType: contentType,
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthValidation, err)
	}

	objectKey := fmt.Sprintf("avatars/%s/%s%s", userID, s.now().UTC().Format("20060102T150405Z0700"), avatarExtension(contentType, upload.FileName))
	url, err := s.storage.Upload(ctx, s.avatarBucket, objectKey, result.ContentType, bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateAvatar(ctx, userID, url)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

func (s *AuthService) DeleteUser(ctx context.Context, requesterID, targetID uuid.UUID) error {
	if requesterID == targetID {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		if isNotFound(err) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) roleFor(email string) domain.Role {
	if s.adminEmail != "" && email == s.adminEmail {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

// healAdminRole keeps the designated admin account admin no matter how it was
// created.
func (s *AuthService) healAdminRole(ctx context.Context, user *domain.User) (*domain.User, error) {
	if s.roleFor(user.Email) != domain.RoleAdmin || user.IsAdmin() {
		return user, nil
	}
	if err := s.users.PromoteToAdmin(ctx, user.ID); err != nil {
		return nil, err
	}
	promoted := *user
	promoted.Role = domain.RoleAdmin
	return &promoted, nil
}

func (s *AuthService) issueToken(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func verifyGoogleIDToken(ctx context.Context, token, audience string) (string, string, *string, *string, error) {
	payload, err := idtoken.Validate(ctx, token, audience)
	if err != nil {
		return "", "", nil, nil, err
	}
	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return "", "", nil, nil, errors.New("google token missing email claim")
	}
	firstName, _ := payload.Claims["given_name"].(string)
	if firstName == "" {
		if name, _ := payload.Claims["name"].(string); name != "" {
			firstName = strings.Fields(name)[0]
		}
	}
	var lastName, picture *string
	if v, _ := payload.Claims["family_name"].(string); v != "" {
		lastName = &v
	}
	if v, _ := payload.Claims["picture"].(string); v != "" {
		picture = &v
	}
	return email, firstName, lastName, picture, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func avatarExtension(contentType, fileName string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName))); ext != "" {
		return ext
	}
	return ".bin"
}
