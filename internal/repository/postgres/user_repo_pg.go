package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ininsico/voyago-api/internal/domain"
)

const userColumns = "id, email, first_name, last_name, avatar_url, role, password_hash, password_salt, created_at, updated_at"

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, email, firstName string, lastName *string, passwordHash, passwordSalt []byte, role domain.Role) (*domain.User, error) {
	const query = `
        INSERT INTO users (email, first_name, last_name, password_hash, password_salt, role)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, email, firstName, lastName, passwordHash, passwordSalt, role)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpsertGoogleUser(ctx context.Context, email string, firstName string, lastName *string, avatarURL *string, role domain.Role) (*domain.User, error) {
	const query = `
        INSERT INTO users (email, first_name, last_name, avatar_url, role)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (email) DO UPDATE
        SET first_name = COALESCE(NULLIF(EXCLUDED.first_name, ''), users.first_name),
            last_name = COALESCE(EXCLUDED.last_name, users.last_name),
            avatar_url = COALESCE(users.avatar_url, EXCLUDED.avatar_url),
            updated_at = NOW()
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, email, firstName, lastName, avatarURL, role)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, firstName *string, lastName *string) (*domain.User, error) {
	const query = `
        UPDATE users
        SET first_name = COALESCE($2, first_name),
            last_name = COALESCE($3, last_name),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, id, firstName, lastName)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*domain.User, error) {
	const query = `
        UPDATE users
        SET avatar_url = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + userColumns

	row := r.db.QueryRowxContext(ctx, query, id, avatarURL)
	var user domain.User
	if err := row.StructScan(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) PromoteToAdmin(ctx context.Context, id uuid.UUID) error {
	const query = `UPDATE users SET role = 'admin', updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, limit, offset); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNoRows
	}
	return nil
}
