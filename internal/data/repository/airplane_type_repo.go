package repository

import (
	"context"
	"errors"
	"fmt"

	"airport-api/internal/data/entity"
	"airport-api/internal/domain"
	"airport-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AirplaneTypeRepository interface {
	Create(ctx context.Context, airplaneType *entity.AirplaneType) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AirplaneType, error)
	FindAll(ctx context.Context) ([]*entity.AirplaneType, error)
	Update(ctx context.Context, airplaneType *entity.AirplaneType) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type airplaneTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAirplaneTypeRepository(db database.PgxIface, log *zap.Logger) AirplaneTypeRepository {
	return &airplaneTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "airplane_type")),
	}
}

func (r *airplaneTypeRepository) Create(ctx context.Context, airplaneType *entity.AirplaneType) error {
	query := `
		INSERT INTO airplane_types (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		airplaneType.ID,
		airplaneType.Name,
		airplaneType.CreatedAt,
		airplaneType.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create airplane type",
			zap.Error(err),
			zap.String("name", string(airplaneType.Name)),
		)
		return fmt.Errorf("create airplane type %s: %w", airplaneType.Name, err)
	}

	return nil
}

func (r *airplaneTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.AirplaneType, error) {
	query := `SELECT id, name, created_at, updated_at FROM airplane_types WHERE id = $1`

	var at entity.AirplaneType
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(&at.ID, &at.Name, &at.CreatedAt, &at.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find airplane type by ID",
			zap.Error(err),
			zap.String("airplane_type_id", id.String()),
		)
		return nil, fmt.Errorf("find airplane type by ID %s: %w", id.String(), err)
	}

	return &at, nil
}

// FindAll is unpaginated, the set of airplane types is tiny.
func (r *airplaneTypeRepository) FindAll(ctx context.Context) ([]*entity.AirplaneType, error) {
	query := `SELECT id, name, created_at, updated_at FROM airplane_types ORDER BY created_at, id`

	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find airplane types", zap.Error(err))
		return nil, fmt.Errorf("find airplane types: %w", err)
	}
	defer rows.Close()

	types := []*entity.AirplaneType{}
	for rows.Next() {
		var at entity.AirplaneType
		if err := rows.Scan(&at.ID, &at.Name, &at.CreatedAt, &at.UpdatedAt); err != nil {
			r.log.Error("Failed to scan airplane type row", zap.Error(err))
			return nil, fmt.Errorf("scan airplane type row: %w", err)
		}
		types = append(types, &at)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate airplane type rows: %w", err)
	}

	return types, nil
}

func (r *airplaneTypeRepository) Update(ctx context.Context, airplaneType *entity.AirplaneType) error {
	query := `UPDATE airplane_types SET name = $2, updated_at = $3 WHERE id = $1`

	result, err := conn(ctx, r.db).Exec(ctx, query, airplaneType.ID, airplaneType.Name, airplaneType.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update airplane type",
			zap.Error(err),
			zap.String("airplane_type_id", airplaneType.ID.String()),
		)
		return fmt.Errorf("update airplane type %s: %w", airplaneType.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("airplane type", airplaneType.ID)
	}

	return nil
}

func (r *airplaneTypeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM airplane_types WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete airplane type",
			zap.Error(err),
			zap.String("airplane_type_id", id.String()),
		)
		return fmt.Errorf("delete airplane type %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("airplane type", id)
	}

	r.log.Info("Airplane type deleted", zap.String("airplane_type_id", id.String()))
	return nil
}
