package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/media"
	"github.com/ininsico/voyago-api/internal/util"
)

type fakeUserRepo struct {
	createEmail  string
	createFirst  string
	createLast   *string
	createHash   []byte
	createSalt   []byte
	createRole   domain.Role
	createResult *domain.User
	createErr    error

	upsertEmail  string
	upsertResult *domain.User
	upsertErr    error

	findByEmailInput  string
	findByEmailResult *domain.User
	findByEmailErr    error

	findByIDInput  uuid.UUID
	findByIDResult *domain.User
	findByIDErr    error

	updateProfileResult *domain.User
	updateProfileErr    error

	updateAvatarInput struct {
		id  uuid.UUID
		url string
	}
	updateAvatarResult *domain.User
	updateAvatarErr    error

	promotedIDs []uuid.UUID
	promoteErr  error

	listResult []domain.User
	listErr    error

	deleteInput uuid.UUID
	deleteErr   error
}

func (f *fakeUserRepo) Create(ctx context.Context, email, firstName string, lastName *string, passwordHash, passwordSalt []byte, role domain.Role) (*domain.User, error) {
	f.createEmail = email
	f.createFirst = firstName
	f.createLast = lastName
	f.createHash = append([]byte(nil), passwordHash...)
	f.createSalt = append([]byte(nil), passwordSalt...)
	f.createRole = role
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		return f.createResult, nil
	}
	return &domain.User{ID: uuid.New(), Email: email, FirstName: firstName, LastName: lastName, Role: role}, nil
}

func (f *fakeUserRepo) UpsertGoogleUser(ctx context.Context, email string, firstName string, lastName *string, avatarURL *string, role domain.Role) (*domain.User, error) {
	f.upsertEmail = email
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if f.upsertResult != nil {
		return f.upsertResult, nil
	}
	return &domain.User{ID: uuid.New(), Email: email, FirstName: firstName, Role: role}, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.findByEmailInput = email
	return f.findByEmailResult, f.findByEmailErr
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.findByIDInput = id
	return f.findByIDResult, f.findByIDErr
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, id uuid.UUID, firstName *string, lastName *string) (*domain.User, error) {
	return f.updateProfileResult, f.updateProfileErr
}

func (f *fakeUserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*domain.User, error) {
	f.updateAvatarInput = struct {
		id  uuid.UUID
		url string
	}{id: id, url: avatarURL}
	if f.updateAvatarErr != nil {
		return nil, f.updateAvatarErr
	}
	if f.updateAvatarResult != nil {
		return f.updateAvatarResult, nil
	}
	return &domain.User{ID: id, AvatarURL: &avatarURL}, nil
}

func (f *fakeUserRepo) PromoteToAdmin(ctx context.Context, id uuid.UUID) error {
	f.promotedIDs = append(f.promotedIDs, id)
	return f.promoteErr
}

func (f *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.User(nil), f.listResult...), nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteInput = id
	return f.deleteErr
}

type fakeStorage struct {
	uploaded []struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}
	url string
	err error
}

func (f *fakeStorage) Upload(ctx context.Context, bucket, objectName, contentType string, reader io.Reader, size int64) (string, error) {
	f.uploaded = append(f.uploaded, struct {
		bucket      string
		objectName  string
		contentType string
		size        int64
	}{bucket: bucket, objectName: objectName, contentType: contentType, size: size})
	if f.err != nil {
		return "", f.err
	}
	if f.url != "" {
		return f.url, nil
	}
	return "https://cdn.example.com/" + objectName, nil
}

type passthroughProcessor struct{}

func (passthroughProcessor) Process(ctx context.Context, upload media.Upload, maxDimension int) (*media.Result, error) {
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, err
	}
	return &media.Result{Bytes: data, ContentType: upload.ContentType}, nil
}

const testAdminEmail = "ininsico@gmail.com"

func newAuthServiceForTests(users *fakeUserRepo, storage *fakeStorage) *AuthService {
	svc := NewAuthService(users, storage, util.NewJWTManager("test-secret", time.Hour), passthroughProcessor{}, AuthConfig{
		AdminEmail:   testAdminEmail,
		AvatarBucket: "avatars",
	})
	return svc
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()
	users := &fakeUserRepo{}
	svc := newAuthServiceForTests(users, &fakeStorage{})

	result, err := svc.Register(ctx, "Alice", nil, " Alice@X.com ", "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if users.createEmail != "alice@x.com" {
		t.Fatalf("email should be normalized, got %q", users.createEmail)
	}
	if users.createRole != domain.RoleUser {
		t.Fatalf("expected role user, got %q", users.createRole)
	}
	if len(users.createHash) == 0 || len(users.createSalt) == 0 {
		t.Fatal("expected password hash and salt to be set")
	}
	if result.Token == "" {
		t.Fatal("expected token in result")
	}
	if result.User == nil || result.User.Email != "alice@x.com" {
		t.Fatalf("unexpected user in result: %+v", result.User)
	}
}

func TestRegisterDesignatedAdminEmail(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newAuthServiceForTests(users, &fakeStorage{})

	result, err := svc.Register(context.Background(), "Owner", nil, testAdminEmail, "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if users.createRole != domain.RoleAdmin {
		t.Fatalf("designated admin email must register as admin, got %q", users.createRole)
	}
	if result.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role in result, got %q", result.User.Role)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := &fakeUserRepo{createErr: &pgconn.PgError{Code: "23505"}}
	svc := newAuthServiceForTests(users, &fakeStorage{})

	_, err := svc.Register(context.Background(), "Alice", nil, "dup@example.com", "secret1")
	if !errors.Is(err, ErrEmailAlreadyUsed) {
		t.Fatalf("expected ErrEmailAlreadyUsed, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newAuthServiceForTests(users, &fakeStorage{})

	_, err := svc.Register(context.Background(), "Alice", nil, "alice@x.com", "short")
	if !errors.Is(err, ErrPasswordTooWeak) {
		t.Fatalf("expected ErrPasswordTooWeak, got %v", err)
	}
	if len(users.createHash) != 0 {
		t.Fatal("expected no password hash to be stored for invalid password")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	t.Run("user not found", func(t *testing.T) {
		users := &fakeUserRepo{findByEmailErr: sql.ErrNoRows}
		svc := newAuthServiceForTests(users, &fakeStorage{})

		_, err := svc.Login(context.Background(), "none@example.com", "password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("password mismatch", func(t *testing.T) {
		hash, salt, _ := util.DerivePassword("different")
		user := &domain.User{ID: uuid.New(), Email: "test@example.com", Role: domain.RoleUser, PasswordHash: hash, PasswordSalt: salt}
		users := &fakeUserRepo{findByEmailResult: user}
		svc := newAuthServiceForTests(users, &fakeStorage{})

		_, err := svc.Login(context.Background(), "test@example.com", "password")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestLoginSuccess(t *testing.T) {
	hash, salt, _ := util.DerivePassword("secret1")
	user := &domain.User{ID: uuid.New(), Email: "alice@x.com", Role: domain.RoleUser, PasswordHash: hash, PasswordSalt: salt}
	users := &fakeUserRepo{findByEmailResult: user}
	svc := newAuthServiceForTests(users, &fakeStorage{})

	result, err := svc.Login(context.Background(), "alice@x.com", "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.User.ID != user.ID {
		t.Fatal("unexpected user in result")
	}
	if result.User.Role != domain.RoleUser {
		t.Fatalf("expected role user, got %q", result.User.Role)
	}
	if len(users.promotedIDs) != 0 {
		t.Fatal("regular accounts must not be promoted")
	}
}

func TestLoginHealsDesignatedAdmin(t *testing.T) {
	hash, salt, _ := util.DerivePassword("secret1")
	user := &domain.User{ID: uuid.New(), Email: testAdminEmail, Role: domain.RoleUser, PasswordHash: hash, PasswordSalt: salt}
	users := &fakeUserRepo{findByEmailResult: user}
	svc := newAuthServiceForTests(users, &fakeStorage{})

	result, err := svc.Login(context.Background(), testAdminEmail, "secret1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(users.promotedIDs) != 1 || users.promotedIDs[0] != user.ID {
		t.Fatalf("expected designated admin to be promoted, got %v", users.promotedIDs)
	}
	if result.User.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role after healing, got %q", result.User.Role)
	}
}

func TestAuthenticate(t *testing.T) {
	users := &fakeUserRepo{}
	svc := newAuthServiceForTests(users, &fakeStorage{})

	t.Run("round trip", func(t *testing.T) {
		user := &domain.User{ID: uuid.New(), Email: "alice@x.com", Role: domain.RoleUser}
		users.findByIDResult = user
		users.findByIDErr = nil

		issued, err := svc.issueToken(user)
		if err != nil {
			t.Fatalf("issueToken returned error: %v", err)
		}
		resolved, err := svc.Authenticate(context.Background(), issued.Token)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resolved.ID != user.ID {
			t.Fatal("unexpected user resolved from token")
		}
		if users.findByIDInput != user.ID {
			t.Fatal("expected lookup by token subject")
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if _, err := svc.Authenticate(context.Background(), "not-a-token"); !errors.Is(err, ErrTokenInvalid) {
			t.Fatalf("expected ErrTokenInvalid, got %v", err)
		}
	})

	t.Run("deleted user", func(t *testing.T) {
		user := &domain.User{ID: uuid.New(), Email: "gone@x.com", Role: domain.RoleUser}
		issued, err := svc.issueToken(user)
		if err != nil {
			t.Fatalf("issueToken returned error: %v", err)
		}
		users.findByIDResult = nil
		users.findByIDErr = sql.ErrNoRows

		if _, err := svc.Authenticate(context.Background(), issued.Token); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestDeleteUser(t *testing.T) {
	adminID := uuid.New()

	t.Run("self delete rejected", func(t *testing.T) {
		users := &fakeUserRepo{}
		svc := newAuthServiceForTests(users, &fakeStorage{})

		if err := svc.DeleteUser(context.Background(), adminID, adminID); !errors.Is(err, ErrSelfDelete) {
			t.Fatalf("expected ErrSelfDelete, got %v", err)
		}
		if users.deleteInput != uuid.Nil {
			t.Fatal("expected no delete to reach the repository")
		}
	})

	t.Run("missing target", func(t *testing.T) {
		users := &fakeUserRepo{deleteErr: sql.ErrNoRows}
		svc := newAuthServiceForTests(users, &fakeStorage{})

		if err := svc.DeleteUser(context.Background(), adminID, uuid.New()); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		users := &fakeUserRepo{}
		svc := newAuthServiceForTests(users, &fakeStorage{})
		targetID := uuid.New()

		if err := svc.DeleteUser(context.Background(), adminID, targetID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if users.deleteInput != targetID {
			t.Fatal("expected delete to target the requested user")
		}
	})
}

func TestUploadAvatar(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("rejects oversized upload", func(t *testing.T) {
		svc := newAuthServiceForTests(&fakeUserRepo{}, &fakeStorage{})
		upload := AvatarUpload{Reader: bytes.NewReader([]byte("x")), Size: 6 * 1024 * 1024, ContentType: "image/png"}

		if _, err := svc.UploadAvatar(ctx, userID, upload); !errors.Is(err, ErrAvatarTooLarge) {
			t.Fatalf("expected ErrAvatarTooLarge, got %v", err)
		}
	})

	t.Run("rejects unsupported type", func(t *testing.T) {
		svc := newAuthServiceForTests(&fakeUserRepo{}, &fakeStorage{})
		upload := AvatarUpload{Reader: bytes.NewReader([]byte("x")), Size: 1, ContentType: "application/pdf"}

		if _, err := svc.UploadAvatar(ctx, userID, upload); !errors.Is(err, ErrAvatarUnsupportedType) {
			t.Fatalf("expected ErrAvatarUnsupportedType, got %v", err)
		}
	})

	t.Run("stores and persists url", func(t *testing.T) {
		users := &fakeUserRepo{}
		storage := &fakeStorage{url: "https://cdn.example.com/avatars/a.png"}
		svc := newAuthServiceForTests(users, storage)
		payload := []byte{0x89, 0x50, 0x4e, 0x47}
		upload := AvatarUpload{Reader: bytes.NewReader(payload), Size: int64(len(payload)), FileName: "a.png", ContentType: "image/png"}

		user, err := svc.UploadAvatar(ctx, userID, upload)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(storage.uploaded) != 1 || storage.uploaded[0].bucket != "avatars" {
			t.Fatalf("expected one upload into avatars bucket, got %+v", storage.uploaded)
		}
		if users.updateAvatarInput.url != storage.url {
			t.Fatalf("expected avatar url persisted, got %q", users.updateAvatarInput.url)
		}
		if user.AvatarURL == nil || *user.AvatarURL != storage.url {
			t.Fatal("expected returned user to carry the avatar url")
		}
	})
}

func TestLoginWithGoogle(t *testing.T) {
	t.Run("invalid token", func(t *testing.T) {
		svc := newAuthServiceForTests(&fakeUserRepo{}, &fakeStorage{})
		svc.verifyGoogleToken = func(ctx context.Context, idToken, audience string) (string, string, *string, *string, error) {
			return "", "", nil, nil, errors.New("bad token")
		}

		if _, err := svc.LoginWithGoogle(context.Background(), "junk"); !errors.Is(err, ErrInvalidGoogleToken) {
			t.Fatalf("expected ErrInvalidGoogleToken, got %v", err)
		}
	})

	t.Run("upserts and issues token", func(t *testing.T) {
		users := &fakeUserRepo{}
		svc := newAuthServiceForTests(users, &fakeStorage{})
		svc.verifyGoogleToken = func(ctx context.Context, idToken, audience string) (string, string, *string, *string, error) {
			return "Bob@Example.com", "Bob", nil, nil, nil
		}

		result, err := svc.LoginWithGoogle(context.Background(), "valid")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if users.upsertEmail != "bob@example.com" {
			t.Fatalf("expected normalized upsert email, got %q", users.upsertEmail)
		}
		if result.Token == "" {
			t.Fatal("expected token in result")
		}
	})
}
