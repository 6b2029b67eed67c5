package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ininsico/voyago-api/internal/domain"
)

type fakeDestinationRepo struct {
	createFields domain.DestinationFields
	createResult *domain.Destination
	createErr    error

	updateInput struct {
		id     uuid.UUID
		fields domain.DestinationFields
	}
	updateResult *domain.Destination
	updateErr    error

	deleteInput uuid.UUID
	deleteErr   error

	findByIDResult *domain.Destination
	findByIDErr    error

	listResult []domain.Destination
	listErr    error
}

func (f *fakeDestinationRepo) Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	f.createFields = fields
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createResult != nil {
		return f.createResult, nil
	}
	dest := &domain.Destination{ID: uuid.New()}
	if fields.Name != nil {
		dest.Name = *fields.Name
	}
	return dest, nil
}

func (f *fakeDestinationRepo) Update(ctx context.Context, id uuid.UUID, fields domain.DestinationFields) (*domain.Destination, error) {
	f.updateInput.id = id
	f.updateInput.fields = fields
	return f.updateResult, f.updateErr
}

func (f *fakeDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleteInput = id
	return f.deleteErr
}

func (f *fakeDestinationRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	return f.findByIDResult, f.findByIDErr
}

func (f *fakeDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	return append([]domain.Destination(nil), f.listResult...), f.listErr
}

func validDestinationFields() domain.DestinationFields {
	name := "Santorini"
	category := domain.CategoryBeach
	location := "Greece"
	difficulty := domain.DifficultyEasy
	price := 1299.0
	return domain.DestinationFields{
		Name:       &name,
		Category:   &category,
		Location:   &location,
		Difficulty: &difficulty,
		Price:      &price,
	}
}

func TestDestinationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("success fires change hook", func(t *testing.T) {
		repo := &fakeDestinationRepo{}
		svc := NewDestinationService(repo, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{ImageBucket: "images"})
		purged := 0
		svc.NotifyChanges(func() { purged++ })

		if _, err := svc.Create(ctx, validDestinationFields()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if purged != 1 {
			t.Fatalf("expected one change notification, got %d", purged)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*domain.DestinationFields)
		}{
			{"name", func(f *domain.DestinationFields) { f.Name = nil }},
			{"category", func(f *domain.DestinationFields) { f.Category = nil }},
			{"location", func(f *domain.DestinationFields) { f.Location = nil }},
			{"difficulty", func(f *domain.DestinationFields) { f.Difficulty = nil }},
			{"price", func(f *domain.DestinationFields) { f.Price = nil }},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				svc := NewDestinationService(&fakeDestinationRepo{}, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})
				fields := validDestinationFields()
				tc.mutate(&fields)

				if _, err := svc.Create(ctx, fields); !errors.Is(err, ErrDestinationValidation) {
					t.Fatalf("expected ErrDestinationValidation, got %v", err)
				}
			})
		}
	})

	t.Run("invalid enums and price", func(t *testing.T) {
		badCategory := domain.DestinationCategory("underwater")
		badDifficulty := domain.Difficulty("impossible")
		negative := -5.0

		svc := NewDestinationService(&fakeDestinationRepo{}, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})
		for name, mutate := range map[string]func(*domain.DestinationFields){
			"category":   func(f *domain.DestinationFields) { f.Category = &badCategory },
			"difficulty": func(f *domain.DestinationFields) { f.Difficulty = &badDifficulty },
			"price":      func(f *domain.DestinationFields) { f.Price = &negative },
		} {
			fields := validDestinationFields()
			mutate(&fields)
			if _, err := svc.Create(ctx, fields); !errors.Is(err, ErrDestinationValidation) {
				t.Fatalf("%s: expected ErrDestinationValidation, got %v", name, err)
			}
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := &fakeDestinationRepo{createErr: &pgconn.PgError{Code: "23505"}}
		svc := NewDestinationService(repo, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})
		purged := 0
		svc.NotifyChanges(func() { purged++ })

		if _, err := svc.Create(ctx, validDestinationFields()); !errors.Is(err, ErrDestinationNameTaken) {
			t.Fatalf("expected ErrDestinationNameTaken, got %v", err)
		}
		if purged != 0 {
			t.Fatal("failed create must not invalidate the cache")
		}
	})
}

func TestDestinationUpdate(t *testing.T) {
	ctx := context.Background()
	destID := uuid.New()

	t.Run("partial patch", func(t *testing.T) {
		repo := &fakeDestinationRepo{updateResult: &domain.Destination{ID: destID, Name: "Renamed"}}
		svc := NewDestinationService(repo, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})
		purged := 0
		svc.NotifyChanges(func() { purged++ })

		name := "Renamed"
		dest, err := svc.Update(ctx, destID, domain.DestinationFields{Name: &name})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if dest.Name != "Renamed" {
			t.Fatalf("unexpected destination %+v", dest)
		}
		if purged != 1 {
			t.Fatal("expected update to fire the change hook")
		}
	})

	t.Run("unknown destination", func(t *testing.T) {
		repo := &fakeDestinationRepo{updateErr: sql.ErrNoRows}
		svc := NewDestinationService(repo, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})

		name := "Renamed"
		if _, err := svc.Update(ctx, destID, domain.DestinationFields{Name: &name}); !errors.Is(err, ErrDestinationNotFound) {
			t.Fatalf("expected ErrDestinationNotFound, got %v", err)
		}
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc := NewDestinationService(&fakeDestinationRepo{}, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})

		blank := "  "
		if _, err := svc.Update(ctx, destID, domain.DestinationFields{Name: &blank}); !errors.Is(err, ErrDestinationValidation) {
			t.Fatalf("expected ErrDestinationValidation, got %v", err)
		}
	})
}

func TestDestinationDelete(t *testing.T) {
	ctx := context.Background()
	destID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeDestinationRepo{}
		svc := NewDestinationService(repo, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})
		purged := 0
		svc.NotifyChanges(func() { purged++ })

		if err := svc.Delete(ctx, destID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if repo.deleteInput != destID {
			t.Fatal("expected delete to target the requested destination")
		}
		if purged != 1 {
			t.Fatal("expected delete to fire the change hook")
		}
	})

	t.Run("unknown destination", func(t *testing.T) {
		repo := &fakeDestinationRepo{deleteErr: sql.ErrNoRows}
		svc := NewDestinationService(repo, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})

		if err := svc.Delete(ctx, destID); !errors.Is(err, ErrDestinationNotFound) {
			t.Fatalf("expected ErrDestinationNotFound, got %v", err)
		}
	})
}

func TestDestinationGet(t *testing.T) {
	ctx := context.Background()
	destID := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo := &fakeDestinationRepo{findByIDResult: &domain.Destination{ID: destID, Name: "Santorini"}}
		svc := NewDestinationService(repo, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})

		dest, err := svc.Get(ctx, destID)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if dest.ID != destID {
			t.Fatal("unexpected destination returned")
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := &fakeDestinationRepo{findByIDErr: sql.ErrNoRows}
		svc := NewDestinationService(repo, &fakeStorage{}, passthroughProcessor{}, DestinationConfig{})

		if _, err := svc.Get(ctx, destID); !errors.Is(err, ErrDestinationNotFound) {
			t.Fatalf("expected ErrDestinationNotFound, got %v", err)
		}
	})
}
