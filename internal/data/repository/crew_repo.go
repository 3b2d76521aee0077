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

type CrewFilter struct {
	Position *string
}

type CrewRepository interface {
	Create(ctx context.Context, crew *entity.Crew) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Crew, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Crew, error)
	FindAll(ctx context.Context, filter CrewFilter, limit, offset int) ([]*entity.Crew, error)
	CountAll(ctx context.Context, filter CrewFilter) (int64, error)
	Update(ctx context.Context, crew *entity.Crew) error
	UpdateImage(ctx context.Context, id uuid.UUID, path string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type crewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCrewRepository(db database.PgxIface, log *zap.Logger) CrewRepository {
	return &crewRepository{
		db:  db,
		log: log.With(zap.String("repository", "crew")),
	}
}

const crewSelect = `SELECT id, first_name, last_name, position, image, created_at, updated_at FROM crews`

func (r *crewRepository) Create(ctx context.Context, crew *entity.Crew) error {
	query := `
		INSERT INTO crews (id, first_name, last_name, position, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		crew.ID,
		crew.FirstName,
		crew.LastName,
		crew.Position,
		crew.Image,
		crew.CreatedAt,
		crew.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create crew",
			zap.Error(err),
			zap.String("name", crew.FullName()),
		)
		return fmt.Errorf("create crew %s: %w", crew.FullName(), err)
	}

	return nil
}

func (r *crewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Crew, error) {
	crew, err := scanCrew(conn(ctx, r.db).QueryRow(ctx, crewSelect+` WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find crew by ID",
			zap.Error(err),
			zap.String("crew_id", id.String()),
		)
		return nil, fmt.Errorf("find crew by ID %s: %w", id.String(), err)
	}

	return crew, nil
}

// FindByIDs returns the crews that exist among ids, ordered like crew lists.
func (r *crewRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Crew, error) {
	if len(ids) == 0 {
		return []*entity.Crew{}, nil
	}
	return r.list(ctx, crewSelect+` WHERE id = ANY($1::uuid[]) ORDER BY position, last_name`, uuidStrings(ids))
}

func (r *crewRepository) FindAll(ctx context.Context, filter CrewFilter, limit, offset int) ([]*entity.Crew, error) {
	where := crewWhere(filter)
	pageClause, args := where.page(limit, offset)
	return r.list(ctx, crewSelect+where.String()+` ORDER BY position, last_name, id`+pageClause, args...)
}

func (r *crewRepository) list(ctx context.Context, query string, args ...any) ([]*entity.Crew, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find crews", zap.Error(err))
		return nil, fmt.Errorf("find crews: %w", err)
	}
	defer rows.Close()

	crews := []*entity.Crew{}
	for rows.Next() {
		crew, err := scanCrew(rows)
		if err != nil {
			r.log.Error("Failed to scan crew row", zap.Error(err))
			return nil, fmt.Errorf("scan crew row: %w", err)
		}
		crews = append(crews, crew)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate crew rows: %w", err)
	}

	return crews, nil
}

func (r *crewRepository) CountAll(ctx context.Context, filter CrewFilter) (int64, error) {
	where := crewWhere(filter)

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM crews`+where.String(), where.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count crews", zap.Error(err))
		return 0, fmt.Errorf("count all crews: %w", err)
	}

	return total, nil
}

func (r *crewRepository) Update(ctx context.Context, crew *entity.Crew) error {
	query := `
		UPDATE crews
		SET first_name = $2, last_name = $3, position = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := conn(ctx, r.db).Exec(ctx, query,
		crew.ID,
		crew.FirstName,
		crew.LastName,
		crew.Position,
		crew.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update crew",
			zap.Error(err),
			zap.String("crew_id", crew.ID.String()),
		)
		return fmt.Errorf("update crew %s: %w", crew.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("crew", crew.ID)
	}

	return nil
}

func (r *crewRepository) UpdateImage(ctx context.Context, id uuid.UUID, path string) error {
	result, err := conn(ctx, r.db).Exec(ctx, `UPDATE crews SET image = $2, updated_at = NOW() WHERE id = $1`, id, path)
	if err != nil {
		r.log.Error("Failed to update crew image",
			zap.Error(err),
			zap.String("crew_id", id.String()),
		)
		return fmt.Errorf("update crew image %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("crew", id)
	}

	return nil
}

func (r *crewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM crews WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete crew",
			zap.Error(err),
			zap.String("crew_id", id.String()),
		)
		return fmt.Errorf("delete crew %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("crew", id)
	}

	r.log.Info("Crew deleted", zap.String("crew_id", id.String()))
	return nil
}

func crewWhere(filter CrewFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter.Position != nil && *filter.Position != "" {
		where.add("position = $%d", *filter.Position)
	}
	return where
}

func scanCrew(row pgx.Row) (*entity.Crew, error) {
	var c entity.Crew
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Position,
		&c.Image,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
