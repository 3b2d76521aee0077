package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"airport-api/internal/data/entity"
	"airport-api/internal/domain"
	"airport-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// FlightFilter dates match the UTC calendar day of the timestamp.
type FlightFilter struct {
	RouteID       *uuid.UUID
	DepartureDate *time.Time
	ArrivalDate   *time.Time
}

type FlightRepository interface {
	Create(ctx context.Context, flight *entity.Flight) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Flight, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*entity.FlightDetail, error)
	FindSummaries(ctx context.Context, filter FlightFilter, limit, offset int) ([]*entity.FlightSummary, error)
	FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FlightSummary, error)
	CountAll(ctx context.Context, filter FlightFilter) (int64, error)
	Update(ctx context.Context, flight *entity.Flight) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindGeometryForBooking reads the seat grid of the flight's airplane
	// with FOR SHARE so the grid cannot change until the caller's transaction
	// ends. Returns nil when the flight does not exist.
	FindGeometryForBooking(ctx context.Context, flightID uuid.UUID) (*domain.Geometry, error)
	FindTakenSeats(ctx context.Context, flightID uuid.UUID) ([]entity.Seat, error)
}

type flightRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFlightRepository(db database.PgxIface, log *zap.Logger) FlightRepository {
	return &flightRepository{
		db:  db,
		log: log.With(zap.String("repository", "flight")),
	}
}

const flightSummarySelect = `
	SELECT f.id, f.route_id, f.airplane_id, f.departure_time, f.arrival_time, f.created_at, f.updated_at,
	       s.iata_code, s.name, d.iata_code, d.name,
	       a.name, a.rows * a.seats_in_row,
	       a.rows * a.seats_in_row - COUNT(t.id)
	FROM flights f
	JOIN routes r ON r.id = f.route_id
	JOIN airports s ON s.id = r.source_id
	JOIN airports d ON d.id = r.destination_id
	JOIN airplanes a ON a.id = f.airplane_id
	LEFT JOIN tickets t ON t.flight_id = f.id
`

const flightSummaryGroup = ` GROUP BY f.id, s.iata_code, s.name, d.iata_code, d.name, a.name, a.rows, a.seats_in_row`

func (r *flightRepository) Create(ctx context.Context, flight *entity.Flight) error {
	query := `
		INSERT INTO flights (id, route_id, airplane_id, departure_time, arrival_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		flight.ID,
		flight.RouteID,
		flight.AirplaneID,
		flight.DepartureTime,
		flight.ArrivalTime,
		flight.CreatedAt,
		flight.UpdatedAt,
	)
	if isForeignKeyViolation(err) {
		return domain.NewValidationError("route_id", "route or airplane does not exist")
	}
	if err != nil {
		r.log.Error("Failed to create flight",
			zap.Error(err),
			zap.String("route_id", flight.RouteID.String()),
			zap.String("airplane_id", flight.AirplaneID.String()),
		)
		return fmt.Errorf("create flight: %w", err)
	}

	return r.replaceCrews(ctx, flight.ID, flight.CrewIDs)
}

func (r *flightRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Flight, error) {
	query := `
		SELECT id, route_id, airplane_id, departure_time, arrival_time, created_at, updated_at
		FROM flights
		WHERE id = $1
	`

	var f entity.Flight
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&f.ID,
		&f.RouteID,
		&f.AirplaneID,
		&f.DepartureTime,
		&f.ArrivalTime,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find flight by ID",
			zap.Error(err),
			zap.String("flight_id", id.String()),
		)
		return nil, fmt.Errorf("find flight by ID %s: %w", id.String(), err)
	}

	crewIDs, err := r.crewIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	f.CrewIDs = crewIDs

	return &f, nil
}

// FindDetail loads the flight with route airports, airplane, crews and sold seats.
func (r *flightRepository) FindDetail(ctx context.Context, id uuid.UUID) (*entity.FlightDetail, error) {
	flight, err := r.FindByID(ctx, id)
	if err != nil || flight == nil {
		return nil, err
	}

	detail := &entity.FlightDetail{Flight: *flight}

	route, err := scanRoute(conn(ctx, r.db).QueryRow(ctx, routeSelect+` WHERE r.id = $1`, flight.RouteID))
	if err != nil {
		r.log.Error("Failed to load flight route",
			zap.Error(err),
			zap.String("flight_id", id.String()),
		)
		return nil, fmt.Errorf("load route of flight %s: %w", id.String(), err)
	}
	detail.Route = *route

	airplane, err := scanAirplane(conn(ctx, r.db).QueryRow(ctx, airplaneSelect+` WHERE a.id = $1`, flight.AirplaneID))
	if err != nil {
		r.log.Error("Failed to load flight airplane",
			zap.Error(err),
			zap.String("flight_id", id.String()),
		)
		return nil, fmt.Errorf("load airplane of flight %s: %w", id.String(), err)
	}
	detail.Airplane = *airplane

	crews, err := r.crews(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	detail.Crews = crews[id]
	if detail.Crews == nil {
		detail.Crews = []*entity.Crew{}
	}

	detail.TakenSeats, err = r.FindTakenSeats(ctx, id)
	if err != nil {
		return nil, err
	}

	return detail, nil
}

func (r *flightRepository) FindSummaries(ctx context.Context, filter FlightFilter, limit, offset int) ([]*entity.FlightSummary, error) {
	where := flightWhere(filter)
	pageClause, args := where.page(limit, offset)
	query := flightSummarySelect + where.String() + flightSummaryGroup + ` ORDER BY f.departure_time DESC, f.id` + pageClause

	summaries, err := r.summaries(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find flights",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find flights limit %d offset %d: %w", limit, offset, err)
	}
	return summaries, nil
}

func (r *flightRepository) FindSummariesByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.FlightSummary, error) {
	result := make(map[uuid.UUID]*entity.FlightSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := flightSummarySelect + ` WHERE f.id = ANY($1::uuid[])` + flightSummaryGroup
	summaries, err := r.summaries(ctx, query, uuidStrings(ids))
	if err != nil {
		r.log.Error("Failed to find flights by IDs", zap.Error(err), zap.Int("count", len(ids)))
		return nil, fmt.Errorf("find flights by IDs: %w", err)
	}
	for _, s := range summaries {
		result[s.ID] = s
	}
	return result, nil
}

func (r *flightRepository) summaries(ctx context.Context, query string, args ...any) ([]*entity.FlightSummary, error) {
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		summaries = []*entity.FlightSummary{}
		ids       []uuid.UUID
	)
	for rows.Next() {
		var (
			s                entity.FlightSummary
			srcIATA, srcName string
			dstIATA, dstName string
		)
		err := rows.Scan(
			&s.ID, &s.RouteID, &s.AirplaneID, &s.DepartureTime, &s.ArrivalTime, &s.CreatedAt, &s.UpdatedAt,
			&srcIATA, &srcName, &dstIATA, &dstName,
			&s.AirplaneName, &s.AirplaneCapacity,
			&s.TicketsAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("scan flight row: %w", err)
		}
		s.RouteLabel = fmt.Sprintf("%s %s - %s %s", srcIATA, srcName, dstIATA, dstName)
		s.Crews = []string{}
		summaries = append(summaries, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flight rows: %w", err)
	}
	rows.Close()

	crews, err := r.crews(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, s := range summaries {
		for _, c := range crews[s.ID] {
			s.Crews = append(s.Crews, c.Label())
			s.CrewIDs = append(s.CrewIDs, c.ID)
		}
	}

	return summaries, nil
}

func (r *flightRepository) CountAll(ctx context.Context, filter FlightFilter) (int64, error) {
	where := flightWhere(filter)

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM flights f`+where.String(), where.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count flights", zap.Error(err))
		return 0, fmt.Errorf("count all flights: %w", err)
	}

	return total, nil
}

func (r *flightRepository) Update(ctx context.Context, flight *entity.Flight) error {
	query := `
		UPDATE flights
		SET route_id = $2, airplane_id = $3, departure_time = $4, arrival_time = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := conn(ctx, r.db).Exec(ctx, query,
		flight.ID,
		flight.RouteID,
		flight.AirplaneID,
		flight.DepartureTime,
		flight.ArrivalTime,
		flight.UpdatedAt,
	)
	if isForeignKeyViolation(err) {
		return domain.NewValidationError("route_id", "route or airplane does not exist")
	}
	if err != nil {
		r.log.Error("Failed to update flight",
			zap.Error(err),
			zap.String("flight_id", flight.ID.String()),
		)
		return fmt.Errorf("update flight %s: %w", flight.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("flight", flight.ID)
	}

	return r.replaceCrews(ctx, flight.ID, flight.CrewIDs)
}

func (r *flightRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM flights WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete flight",
			zap.Error(err),
			zap.String("flight_id", id.String()),
		)
		return fmt.Errorf("delete flight %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("flight", id)
	}

	r.log.Info("Flight deleted", zap.String("flight_id", id.String()))
	return nil
}

func (r *flightRepository) FindGeometryForBooking(ctx context.Context, flightID uuid.UUID) (*domain.Geometry, error) {
	query := `
		SELECT a.rows, a.seats_in_row
		FROM flights f
		JOIN airplanes a ON a.id = f.airplane_id
		WHERE f.id = $1
		FOR SHARE OF a
	`

	var g domain.Geometry
	err := conn(ctx, r.db).QueryRow(ctx, query, flightID).Scan(&g.Rows, &g.SeatsInRow)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to read flight geometry",
			zap.Error(err),
			zap.String("flight_id", flightID.String()),
		)
		return nil, fmt.Errorf("read geometry of flight %s: %w", flightID.String(), err)
	}

	return &g, nil
}

func (r *flightRepository) FindTakenSeats(ctx context.Context, flightID uuid.UUID) ([]entity.Seat, error) {
	query := `SELECT row_no, seat_no FROM tickets WHERE flight_id = $1 ORDER BY row_no, seat_no`

	rows, err := conn(ctx, r.db).Query(ctx, query, flightID)
	if err != nil {
		r.log.Error("Failed to find taken seats",
			zap.Error(err),
			zap.String("flight_id", flightID.String()),
		)
		return nil, fmt.Errorf("find taken seats of flight %s: %w", flightID.String(), err)
	}
	defer rows.Close()

	seats := []entity.Seat{}
	for rows.Next() {
		var s entity.Seat
		if err := rows.Scan(&s.Row, &s.Seat); err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seat rows: %w", err)
	}

	return seats, nil
}

// ==================== CREWS ====================

func (r *flightRepository) replaceCrews(ctx context.Context, flightID uuid.UUID, crewIDs []uuid.UUID) error {
	q := conn(ctx, r.db)
	if _, err := q.Exec(ctx, `DELETE FROM flight_crews WHERE flight_id = $1`, flightID); err != nil {
		r.log.Error("Failed to clear flight crews", zap.Error(err), zap.String("flight_id", flightID.String()))
		return fmt.Errorf("clear crews of flight %s: %w", flightID.String(), err)
	}
	if len(crewIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO flight_crews (flight_id, crew_id)
		SELECT $1, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`
	_, err := q.Exec(ctx, query, flightID, uuidStrings(crewIDs))
	if isForeignKeyViolation(err) {
		return domain.NewValidationError("crew_ids", "one or more crews do not exist")
	}
	if err != nil {
		r.log.Error("Failed to set flight crews", zap.Error(err), zap.String("flight_id", flightID.String()))
		return fmt.Errorf("set crews of flight %s: %w", flightID.String(), err)
	}
	return nil
}

func (r *flightRepository) crewIDs(ctx context.Context, flightID uuid.UUID) ([]uuid.UUID, error) {
	crews, err := r.crews(ctx, []uuid.UUID{flightID})
	if err != nil {
		return nil, err
	}
	ids := []uuid.UUID{}
	for _, c := range crews[flightID] {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// crews groups the crews of the given flights by flight id.
func (r *flightRepository) crews(ctx context.Context, flightIDs []uuid.UUID) (map[uuid.UUID][]*entity.Crew, error) {
	result := make(map[uuid.UUID][]*entity.Crew, len(flightIDs))
	if len(flightIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT fc.flight_id, c.id, c.first_name, c.last_name, c.position, c.image, c.created_at, c.updated_at
		FROM flight_crews fc
		JOIN crews c ON c.id = fc.crew_id
		WHERE fc.flight_id = ANY($1::uuid[])
		ORDER BY c.position, c.last_name
	`
	rows, err := conn(ctx, r.db).Query(ctx, query, uuidStrings(flightIDs))
	if err != nil {
		r.log.Error("Failed to find flight crews", zap.Error(err))
		return nil, fmt.Errorf("find flight crews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			flightID uuid.UUID
			c        entity.Crew
		)
		if err := rows.Scan(&flightID, &c.ID, &c.FirstName, &c.LastName, &c.Position, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan flight crew row: %w", err)
		}
		result[flightID] = append(result[flightID], &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flight crew rows: %w", err)
	}

	return result, nil
}

func flightWhere(filter FlightFilter) *whereBuilder {
	where := &whereBuilder{}
	if filter.RouteID != nil {
		where.add("f.route_id = $%d", *filter.RouteID)
	}
	if filter.DepartureDate != nil {
		where.add("(f.departure_time AT TIME ZONE 'UTC')::date = $%d::date", filter.DepartureDate.Format(time.DateOnly))
	}
	if filter.ArrivalDate != nil {
		where.add("(f.arrival_time AT TIME ZONE 'UTC')::date = $%d::date", filter.ArrivalDate.Format(time.DateOnly))
	}
	return where
}
