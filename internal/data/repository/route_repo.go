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

type RouteFilter struct {
	SourceID      *uuid.UUID
	DestinationID *uuid.UUID
}

type RouteRepository interface {
	Create(ctx context.Context, route *entity.Route) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error)
	FindAll(ctx context.Context, filter RouteFilter, limit, offset int) ([]*entity.Route, error)
	CountAll(ctx context.Context, filter RouteFilter) (int64, error)
	Update(ctx context.Context, route *entity.Route) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type routeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRouteRepository(db database.PgxIface, log *zap.Logger) RouteRepository {
	return &routeRepository{
		db:  db,
		log: log.With(zap.String("repository", "route")),
	}
}

// routeSelect loads a route together with both airports.
const routeSelect = `
	SELECT r.id, r.source_id, r.destination_id, r.created_at, r.updated_at,
	       s.id, s.name, s.city, s.country, s.iata_code, s.latitude, s.longitude, s.image, s.created_at, s.updated_at,
	       d.id, d.name, d.city, d.country, d.iata_code, d.latitude, d.longitude, d.image, d.created_at, d.updated_at
	FROM routes r
	JOIN airports s ON s.id = r.source_id
	JOIN airports d ON d.id = r.destination_id
`

func (r *routeRepository) Create(ctx context.Context, route *entity.Route) error {
	query := `
		INSERT INTO routes (id, source_id, destination_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		route.ID,
		route.SourceID,
		route.DestinationID,
		route.CreatedAt,
		route.UpdatedAt,
	)
	if err != nil {
		if mapped := routeConstraintError(err); mapped != nil {
			return mapped
		}
		r.log.Error("Failed to create route",
			zap.Error(err),
			zap.String("source_id", route.SourceID.String()),
			zap.String("destination_id", route.DestinationID.String()),
		)
		return fmt.Errorf("create route: %w", err)
	}

	return nil
}

func (r *routeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Route, error) {
	route, err := scanRoute(conn(ctx, r.db).QueryRow(ctx, routeSelect+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find route by ID",
			zap.Error(err),
			zap.String("route_id", id.String()),
		)
		return nil, fmt.Errorf("find route by ID %s: %w", id.String(), err)
	}

	return route, nil
}

func (r *routeRepository) FindAll(ctx context.Context, filter RouteFilter, limit, offset int) ([]*entity.Route, error) {
	where := routeWhere(filter)
	pageClause, args := where.page(limit, offset)
	query := routeSelect + where.String() + ` ORDER BY r.created_at, r.id` + pageClause

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all routes",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all routes limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	routes := []*entity.Route{}
	for rows.Next() {
		route, err := scanRoute(rows)
		if err != nil {
			r.log.Error("Failed to scan route row", zap.Error(err))
			return nil, fmt.Errorf("scan route row: %w", err)
		}
		routes = append(routes, route)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate route rows: %w", err)
	}

	return routes, nil
}

func (r *routeRepository) CountAll(ctx context.Context, filter RouteFilter) (int64, error) {
	where := routeWhere(filter)

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM routes r`+where.String(), where.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count routes", zap.Error(err))
		return 0, fmt.Errorf("count all routes: %w", err)
	}

	return total, nil
}

func (r *routeRepository) Update(ctx context.Context, route *entity.Route) error {
	query := `UPDATE routes SET source_id = $2, destination_id = $3, updated_at = $4 WHERE id = $1`

	result, err := conn(ctx, r.db).Exec(ctx, query,
		route.ID,
		route.SourceID,
		route.DestinationID,
		route.UpdatedAt,
	)
	if err != nil {
		if mapped := routeConstraintError(err); mapped != nil {
			return mapped
		}
		r.log.Error("Failed to update route",
			zap.Error(err),
			zap.String("route_id", route.ID.String()),
		)
		return fmt.Errorf("update route %s: %w", route.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("route", route.ID)
	}

	return nil
}

func (r *routeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete route",
			zap.Error(err),
			zap.String("route_id", id.String()),
		)
		return fmt.Errorf("delete route %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("route", id)
	}

	r.log.Info("Route deleted", zap.String("route_id", id.String()))
	return nil
}

func routeConstraintError(err error) error {
	switch {
	case isForeignKeyViolation(err):
		return domain.NewValidationError("source_id", "source or destination airport does not exist")
	case isCheckViolation(err):
		return domain.NewValidationError("destination_id", "Must differ from source_id")
	}
	return nil
}

func routeWhere(filter RouteFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter.SourceID != nil {
		where.add("r.source_id = $%d", *filter.SourceID)
	}
	if filter.DestinationID != nil {
		where.add("r.destination_id = $%d", *filter.DestinationID)
	}
	return where
}

func scanRoute(row pgx.Row) (*entity.Route, error) {
	var (
		route    entity.Route
		src, dst entity.Airport
	)
	err := row.Scan(
		&route.ID, &route.SourceID, &route.DestinationID, &route.CreatedAt, &route.UpdatedAt,
		&src.ID, &src.Name, &src.City, &src.Country, &src.IATACode, &src.Latitude, &src.Longitude, &src.Image, &src.CreatedAt, &src.UpdatedAt,
		&dst.ID, &dst.Name, &dst.City, &dst.Country, &dst.IATACode, &dst.Latitude, &dst.Longitude, &dst.Image, &dst.CreatedAt, &dst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	route.Source = &src
	route.Destination = &dst
	return &route, nil
}
