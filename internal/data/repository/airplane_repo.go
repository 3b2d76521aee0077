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

type AirplaneFilter struct {
	AirplaneTypeID *uuid.UUID
}

type AirplaneRepository interface {
	Create(ctx context.Context, airplane *entity.Airplane) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Airplane, error)
	// LockByID reads the airplane with FOR UPDATE; it must run inside WithTx.
	LockByID(ctx context.Context, id uuid.UUID) (*entity.Airplane, error)
	FindAll(ctx context.Context, filter AirplaneFilter, limit, offset int) ([]*entity.Airplane, error)
	CountAll(ctx context.Context, filter AirplaneFilter) (int64, error)
	CountSoldTickets(ctx context.Context, id uuid.UUID) (int64, error)
	Update(ctx context.Context, airplane *entity.Airplane) error
	UpdateImage(ctx context.Context, id uuid.UUID, path string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type airplaneRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAirplaneRepository(db database.PgxIface, log *zap.Logger) AirplaneRepository {
	return &airplaneRepository{
		db:  db,
		log: log.With(zap.String("repository", "airplane")),
	}
}

const airplaneSelect = `
	SELECT a.id, a.name, a.rows, a.seats_in_row, a.airplane_type_id, a.image,
	       a.created_at, a.updated_at, t.name
	FROM airplanes a
	JOIN airplane_types t ON t.id = a.airplane_type_id
`

func (r *airplaneRepository) Create(ctx context.Context, airplane *entity.Airplane) error {
	query := `
		INSERT INTO airplanes (id, name, rows, seats_in_row, airplane_type_id, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		airplane.ID,
		airplane.Name,
		airplane.Rows,
		airplane.SeatsInRow,
		airplane.AirplaneTypeID,
		airplane.Image,
		airplane.CreatedAt,
		airplane.UpdatedAt,
	)

	if isForeignKeyViolation(err) {
		return domain.NewValidationError("airplane_type_id", "airplane type does not exist")
	}
	if err != nil {
		r.log.Error("Failed to create airplane",
			zap.Error(err),
			zap.String("name", airplane.Name),
		)
		return fmt.Errorf("create airplane %s: %w", airplane.Name, err)
	}

	return nil
}

func (r *airplaneRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Airplane, error) {
	return r.findOne(ctx, airplaneSelect+` WHERE a.id = $1`, id)
}

func (r *airplaneRepository) LockByID(ctx context.Context, id uuid.UUID) (*entity.Airplane, error) {
	return r.findOne(ctx, airplaneSelect+` WHERE a.id = $1 FOR UPDATE OF a`, id)
}

func (r *airplaneRepository) findOne(ctx context.Context, query string, id uuid.UUID) (*entity.Airplane, error) {
	airplane, err := scanAirplane(conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find airplane by ID",
			zap.Error(err),
			zap.String("airplane_id", id.String()),
		)
		return nil, fmt.Errorf("find airplane by ID %s: %w", id.String(), err)
	}
	return airplane, nil
}

func (r *airplaneRepository) FindAll(ctx context.Context, filter AirplaneFilter, limit, offset int) ([]*entity.Airplane, error) {
	where := airplaneWhere(filter)
	pageClause, args := where.page(limit, offset)
	query := airplaneSelect + where.String() + ` ORDER BY a.name, a.id` + pageClause

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all airplanes",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all airplanes limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	airplanes := []*entity.Airplane{}
	for rows.Next() {
		airplane, err := scanAirplane(rows)
		if err != nil {
			r.log.Error("Failed to scan airplane row", zap.Error(err))
			return nil, fmt.Errorf("scan airplane row: %w", err)
		}
		airplanes = append(airplanes, airplane)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate airplane rows: %w", err)
	}

	return airplanes, nil
}

func (r *airplaneRepository) CountAll(ctx context.Context, filter AirplaneFilter) (int64, error) {
	where := airplaneWhere(filter)
	query := `SELECT COUNT(*) FROM airplanes a` + where.String()

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, query, where.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count airplanes", zap.Error(err))
		return 0, fmt.Errorf("count all airplanes: %w", err)
	}

	return total, nil
}

func (r *airplaneRepository) CountSoldTickets(ctx context.Context, id uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM tickets t
		JOIN flights f ON f.id = t.flight_id
		WHERE f.airplane_id = $1
	`

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(&total); err != nil {
		r.log.Error("Failed to count sold tickets",
			zap.Error(err),
			zap.String("airplane_id", id.String()),
		)
		return 0, fmt.Errorf("count tickets of airplane %s: %w", id.String(), err)
	}

	return total, nil
}

func (r *airplaneRepository) Update(ctx context.Context, airplane *entity.Airplane) error {
	query := `
		UPDATE airplanes
		SET name = $2, rows = $3, seats_in_row = $4, airplane_type_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := conn(ctx, r.db).Exec(ctx, query,
		airplane.ID,
		airplane.Name,
		airplane.Rows,
		airplane.SeatsInRow,
		airplane.AirplaneTypeID,
		airplane.UpdatedAt,
	)

	if isForeignKeyViolation(err) {
		return domain.NewValidationError("airplane_type_id", "airplane type does not exist")
	}
	if err != nil {
		r.log.Error("Failed to update airplane",
			zap.Error(err),
			zap.String("airplane_id", airplane.ID.String()),
		)
		return fmt.Errorf("update airplane %s: %w", airplane.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("airplane", airplane.ID)
	}

	return nil
}

func (r *airplaneRepository) UpdateImage(ctx context.Context, id uuid.UUID, path string) error {
	result, err := conn(ctx, r.db).Exec(ctx, `UPDATE airplanes SET image = $2, updated_at = NOW() WHERE id = $1`, id, path)
	if err != nil {
		r.log.Error("Failed to update airplane image",
			zap.Error(err),
			zap.String("airplane_id", id.String()),
		)
		return fmt.Errorf("update airplane image %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("airplane", id)
	}

	return nil
}

func (r *airplaneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM airplanes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete airplane",
			zap.Error(err),
			zap.String("airplane_id", id.String()),
		)
		return fmt.Errorf("delete airplane %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("airplane", id)
	}

	r.log.Info("Airplane deleted", zap.String("airplane_id", id.String()))
	return nil
}

func airplaneWhere(filter AirplaneFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter.AirplaneTypeID != nil {
		where.add("a.airplane_type_id = $%d", *filter.AirplaneTypeID)
	}
	return where
}

func scanAirplane(row pgx.Row) (*entity.Airplane, error) {
	var a entity.Airplane
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.Rows,
		&a.SeatsInRow,
		&a.AirplaneTypeID,
		&a.Image,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.AirplaneTypeName,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
