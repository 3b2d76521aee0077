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

// OrderFilter.CreatedDate matches the UTC calendar day of created_at.
type OrderFilter struct {
	CreatedDate *time.Time
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// FindByID only returns orders owned by userID.
	FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error)
	FindByIDAny(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByUser(ctx context.Context, userID uuid.UUID, filter OrderFilter, limit, offset int) ([]*entity.Order, error)
	CountByUser(ctx context.Context, userID uuid.UUID, filter OrderFilter) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `INSERT INTO orders (id, user_id, created_at) VALUES ($1, $2, $3)`

	_, err := conn(ctx, r.db).Exec(ctx, query, order.ID, order.UserID, order.CreatedAt)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("order owner %s: %w", order.UserID.String(), domain.ErrUnauthorized)
	}
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", order.UserID.String()),
		)
		return fmt.Errorf("create order: %w", err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error) {
	query := `SELECT id, user_id, created_at FROM orders WHERE id = $1 AND user_id = $2`
	return r.findOne(ctx, query, id, userID)
}

func (r *orderRepository) FindByIDAny(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.findOne(ctx, `SELECT id, user_id, created_at FROM orders WHERE id = $1`, id)
}

func (r *orderRepository) findOne(ctx context.Context, query string, id uuid.UUID, args ...any) (*entity.Order, error) {
	var o entity.Order
	err := conn(ctx, r.db).QueryRow(ctx, query, append([]any{id}, args...)...).Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return &o, nil
}

func (r *orderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter OrderFilter, limit, offset int) ([]*entity.Order, error) {
	where := orderWhere(userID, filter)
	pageClause, args := where.page(limit, offset)
	query := `SELECT id, user_id, created_at FROM orders` + where.String() + ` ORDER BY created_at DESC, id` + pageClause

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find orders by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find orders of user %s: %w", userID.String(), err)
	}
	defer rows.Close()

	orders := []*entity.Order{}
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) CountByUser(ctx context.Context, userID uuid.UUID, filter OrderFilter) (int64, error) {
	where := orderWhere(userID, filter)

	var total int64
	if err := conn(ctx, r.db).QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where.String(), where.args...).Scan(&total); err != nil {
		r.log.Error("Failed to count orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count orders of user %s: %w", userID.String(), err)
	}

	return total, nil
}

// Delete removes the order; its tickets go with it through ON DELETE CASCADE.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete order",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return fmt.Errorf("delete order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return domain.NewNotFound("order", id)
	}

	r.log.Info("Order deleted", zap.String("order_id", id.String()))
	return nil
}

func orderWhere(userID uuid.UUID, filter OrderFilter) *whereBuilder {
	where := &whereBuilder{}
	where.add("user_id = $%d", userID)
	if filter.CreatedDate != nil {
		where.add("(created_at AT TIME ZONE 'UTC')::date = $%d::date", filter.CreatedDate.Format(time.DateOnly))
	}
	return where
}
