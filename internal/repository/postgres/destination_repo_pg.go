package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ininsico/voyago-api/internal/domain"
)

const destinationColumns = "id, name, category, location, description, highlights, best_time, difficulty, duration, image_url, price, created_at, updated_at"

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

func (r *DestinationRepository) Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error) {
	const query = `
        INSERT INTO destinations (name, category, location, description, highlights, best_time, difficulty, duration, image_url, price)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING ` + destinationColumns

	row := r.db.QueryRowxContext(ctx, query,
		fields.Name, fields.Category, fields.Location, fields.Description,
		pq.StringArray(fields.Highlights), fields.BestTime, fields.Difficulty,
		fields.Duration, fields.ImageURL, fields.Price)
	var dest domain.Destination
	if err := row.StructScan(&dest); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) Update(ctx context.Context, id uuid.UUID, fields domain.DestinationFields) (*domain.Destination, error) {
	const query = `
        UPDATE destinations
        SET name = COALESCE($2, name),
            category = COALESCE($3, category),
            location = COALESCE($4, location),
            description = COALESCE($5, description),
            highlights = COALESCE($6, highlights),
            best_time = COALESCE($7, best_time),
            difficulty = COALESCE($8, difficulty),
            duration = COALESCE($9, duration),
            image_url = COALESCE($10, image_url),
            price = COALESCE($11, price),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + destinationColumns

	var highlights *pq.StringArray
	if fields.Highlights != nil {
		arr := pq.StringArray(fields.Highlights)
		highlights = &arr
	}

	row := r.db.QueryRowxContext(ctx, query, id,
		fields.Name, fields.Category, fields.Location, fields.Description,
		highlights, fields.BestTime, fields.Difficulty, fields.Duration,
		fields.ImageURL, fields.Price)
	var dest domain.Destination
	if err := row.StructScan(&dest); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM destinations WHERE id = $1`
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

func (r *DestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destinations WHERE id = $1`
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, id); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) List(ctx context.Context) ([]domain.Destination, error) {
	const query = `SELECT ` + destinationColumns + ` FROM destinations ORDER BY name`
	destinations := []domain.Destination{}
	if err := r.db.SelectContext(ctx, &destinations, query); err != nil {
		return nil, err
	}
	return destinations, nil
}
