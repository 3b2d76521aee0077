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

type AirportFilter struct {
	City    *string
	Country *string
}

type AirportRepository interface {
	Create(ctx context.Context, airport *entity.Airport) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Airport, error)
	FindAll(ctx context.Context, filter AirportFilter, limit, offset int) ([]*entity.Airport, error)
	CountAll(ctx context.Context, filter AirportFilter) (int64, error)
	Update(ctx context.Context, airport *entity.Airport) error
	UpdateImage(ctx context.Context, id uuid.UUID, path string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type airportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAirportRepository(db database.PgxIface, log *zap.Logger) AirportRepository {
	return &airportRepository{
		db:  db,
		log: log.With(zap.String("repository", "airport")),
	}
}

const airportColumns = `id, name, city, country, iata_code, latitude, longitude, image, created_at, updated_at`

var airportUniqueFields = map[string]string{
	"airports_name_key":      "name",
	"airports_iata_code_key": "iata_code",
}

func (r *airportRepository) Create(ctx context.Context, airport *entity.Airport) error {
	query := `
		INSERT INTO airports (` + airportColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		airport.ID,
		airport.Name,
		airport.City,
		airport.Country,
		airport.IATACode,
		airport.Latitude,
		airport.Longitude,
		airport.Image,
		airport.CreatedAt,
		airport.UpdatedAt,
	)

	if err != nil {
		if conflict := airportConflict(err); conflict != nil {
			return conflict
		}
		r.log.Error("Failed to create airport",
			zap.Error(err),
			zap.String("name", airport.Name),
			zap.String("iata_code", airport.IATACode),
		)
		return fmt.Errorf("create airport %s: %w", airport.Name, err)
	}

	return nil
}

func (r *airportRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Airport, error) {
	query := `SELECT ` + airportColumns + ` FROM airports WHERE id = $1`

	airport, err := scanAirport(conn(ctx, r.db).QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find airport by ID",
			zap.Error(err),
			zap.String("airport_id", id.String()),
		)
		return nil, fmt.Errorf("find airport by ID %s: %w", id.String(), err)
	}

	return airport, nil
}

func (r *airportRepository) FindAll(ctx context.Context, filter AirportFilter, limit, offset int) ([]*entity.Airport, error) {
	where := airportWhere(filter)
	pageClause, args := where.page(limit, offset)
	query := `SELECT ` + airportColumns + ` FROM airports` + where.String() + ` ORDER BY country, name` + pageClause

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all airports",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("city_filter", filter.City),
			zap.Stringp("country_filter", filter.Country),
		)
		return nil, fmt.Errorf("find all airports limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	airports := []*entity.Airport{}
	for rows.Next() {
		airport, err := scanAirport(rows)
		if err != nil {
			r.log.Error("Failed to scan airport row", zap.Error(err))
			return nil, fmt.Errorf("scan airport row: %w", err)
		}
		airports = append(airports, airport)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate airport rows: %w", err)
	}

	return airports, nil
}

func (r *airportRepository) CountAll(ctx context.Context, filter AirportFilter) (int64, error) {
	where := airportWhere(filter)

	var total int64
	err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM airports`+where.String(), where.args...).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count airports",
			zap.Error(err),
			zap.Stringp("city_filter", filter.City),
		)
		return 0, fmt.Errorf("count all airports: %w", err)
	}

	return total, nil
}

func (r *airportRepository) Update(ctx context.Context, airport *entity.Airport) error {
	query := `
		UPDATE airports
		SET name = $2, city = $3, country = $4, iata_code = $5,
		    latitude = $6, longitude = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := conn(ctx, r.db).Exec(ctx, query,
		airport.ID,
		airport.Name,
		airport.City,
		airport.Country,
		airport.IATACode,
		airport.Latitude,
		airport.Longitude,
		airport.UpdatedAt,
	)

	if err != nil {
		if conflict := airportConflict(err); conflict != nil {
			return conflict
		}
		r.log.Error("Failed to update airport",
			zap.Error(err),
			zap.String("airport_id", airport.ID.String()),
		)
		return fmt.Errorf("update airport %s: %w", airport.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("airport", airport.ID)
	}

	return nil
}

func (r *airportRepository) UpdateImage(ctx context.Context, id uuid.UUID, path string) error {
	result, err := conn(ctx, r.db).Exec(ctx, `UPDATE airports SET image = $2, updated_at = NOW() WHERE id = $1`, id, path)
	if err != nil {
		r.log.Error("Failed to update airport image",
			zap.Error(err),
			zap.String("airport_id", id.String()),
		)
		return fmt.Errorf("update airport image %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("airport", id)
	}

	return nil
}

func (r *airportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM airports WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete airport",
			zap.Error(err),
			zap.String("airport_id", id.String()),
		)
		return fmt.Errorf("delete airport %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("airport", id)
	}

	r.log.Info("Airport deleted", zap.String("airport_id", id.String()))
	return nil
}

// airportConflict maps a unique violation on name or iata_code to
// domain.ErrConflict naming the offending field.
func airportConflict(err error) error {
	pgErr, ok := pgError(err, codeUniqueViolation)
	if !ok {
		return nil
	}
	field, known := airportUniqueFields[pgErr.ConstraintName]
	if !known {
		field = "name"
	}
	return fmt.Errorf("airport with this %s already exists: %w", field, domain.ErrConflict)
}

func airportWhere(filter AirportFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter.City != nil && *filter.City != "" {
		where.add("city = $%d", *filter.City)
	}
	if filter.Country != nil && *filter.Country != "" {
		where.add("country = $%d", *filter.Country)
	}
	return where
}

func scanAirport(row pgx.Row) (*entity.Airport, error) {
	var a entity.Airport
	err := row.Scan(
		&a.ID,
		&a.Name,
		&a.City,
		&a.Country,
		&a.IATACode,
		&a.Latitude,
		&a.Longitude,
		&a.Image,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
