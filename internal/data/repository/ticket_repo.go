package repository

import (
	"context"
	"fmt"

	"airport-api/internal/data/entity"
	"airport-api/internal/domain"
	"airport-api/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TicketRepository interface {
	// Create inserts one ticket. A collision on (flight, row, seat) is
	// returned as *domain.SeatTakenError.
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*entity.Ticket, error)
	FindFlightIDsByOrder(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error)
}

type ticketRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTicketRepository(db database.PgxIface, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, order_id, flight_id, row_no, seat_no)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := conn(ctx, r.db).Exec(ctx, query,
		ticket.ID,
		ticket.OrderID,
		ticket.FlightID,
		ticket.Row,
		ticket.Seat,
	)
	if isUniqueViolation(err, ticketSeatConstraint) {
		return &domain.SeatTakenError{FlightID: ticket.FlightID, Row: ticket.Row, Seat: ticket.Seat}
	}
	if isForeignKeyViolation(err) {
		return domain.NewNotFound("flight", ticket.FlightID)
	}
	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("flight_id", ticket.FlightID.String()),
			zap.Int("row", ticket.Row),
			zap.Int("seat", ticket.Seat),
		)
		return fmt.Errorf("create ticket: %w", err)
	}

	return nil
}

func (r *ticketRepository) FindByOrderIDs(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]*entity.Ticket, error) {
	result := make(map[uuid.UUID][]*entity.Ticket, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, order_id, flight_id, row_no, seat_no
		FROM tickets
		WHERE order_id = ANY($1::uuid[])
		ORDER BY row_no, seat_no
	`

	rows, err := conn(ctx, r.db).Query(ctx, query, uuidStrings(orderIDs))
	if err != nil {
		r.log.Error("Failed to find tickets by orders", zap.Error(err), zap.Int("orders", len(orderIDs)))
		return nil, fmt.Errorf("find tickets by orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t entity.Ticket
		if err := rows.Scan(&t.ID, &t.OrderID, &t.FlightID, &t.Row, &t.Seat); err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket row: %w", err)
		}
		result[t.OrderID] = append(result[t.OrderID], &t)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate ticket rows: %w", err)
	}

	return result, nil
}

func (r *ticketRepository) FindFlightIDsByOrder(ctx context.Context, orderID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := conn(ctx, r.db).Query(ctx, `SELECT DISTINCT flight_id FROM tickets WHERE order_id = $1`, orderID)
	if err != nil {
		r.log.Error("Failed to find flights of order",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find flights of order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan flight id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate flight ids: %w", err)
	}

	return ids, nil
}
