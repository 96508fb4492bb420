package repository

import (
	"context"
	"database/sql"
	"fmt"

	"canteen_service/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresOrderRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Logger) domain.OrderRepository {
	return &postgresOrderRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.log.Errorf("Failed to begin transaction: %v", err)
		return nil, fmt.Errorf("could not start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
				r.log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	order.ID = uuid.NewString()

	orderQuery := `
        INSERT INTO orders (id, user_id, total_amount, phone, delivery_type, hostel_name, pickup_time, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING created_at
    `
	err = tx.QueryRowContext(ctx, orderQuery,
		order.ID,
		order.UserID,
		order.TotalAmount,
		order.Phone,
		order.DeliveryDetails.Type,
		order.DeliveryDetails.HostelName,
		order.DeliveryDetails.PickupTime,
		order.OrderStatus,
	).Scan(&order.CreatedAt)
	if err != nil {
		r.log.Errorf("Failed to insert order for user %d: %v", order.UserID, err)
		return nil, fmt.Errorf("could not create order entry: %w", err)
	}

	itemQuery := `
        INSERT INTO order_items (order_id, position, item_id, name, quantity, price)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	stmt, err := tx.PrepareContext(ctx, itemQuery)
	if err != nil {
		r.log.Errorf("Failed to prepare order item statement: %v", err)
		return nil, fmt.Errorf("could not prepare item statement: %w", err)
	}
	defer stmt.Close()

	for i := range order.OrderItems {
		item := &order.OrderItems[i]
		if _, err = stmt.ExecContext(ctx, order.ID, i, item.ItemID, item.Name, item.Quantity, item.Price); err != nil {
			r.log.Errorf("Failed to insert order item (item_id: %s) for order %s: %v", item.ItemID, order.ID, err)
			return nil, fmt.Errorf("could not create order item (item_id: %s): %w", item.ItemID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		r.log.Errorf("Failed to commit order transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Infof("Order %s created with %d items for user %d.", order.ID, len(order.OrderItems), order.UserID)
	return order, nil
}

func (r *postgresOrderRepository) ListOrdersByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	ordersQuery := `
        SELECT id, user_id, total_amount, phone, delivery_type, hostel_name, pickup_time, status, created_at
        FROM orders
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.QueryContext(ctx, ordersQuery, userID)
	if err != nil {
		r.log.Errorf("Failed to list orders for user ID %d: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	orderIDs := []string{}

	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.TotalAmount,
			&order.Phone,
			&order.DeliveryDetails.Type,
			&order.DeliveryDetails.HostelName,
			&order.DeliveryDetails.PickupTime,
			&order.OrderStatus,
			&order.CreatedAt,
		); err != nil {
			r.log.Errorf("Failed to scan order row for user ID %d: %v", userID, err)
			return nil, fmt.Errorf("error scanning order data: %w", err)
		}
		orders = append(orders, order)
		orderIDs = append(orderIDs, order.ID)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during orders iteration for user ID %d: %v", userID, err)
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return []domain.Order{}, nil
	}

	itemsQuery := `
        SELECT order_id, item_id, name, quantity, price
        FROM order_items
        WHERE order_id = ANY($1)
        ORDER BY order_id, position
    `
	itemRows, err := r.db.QueryContext(ctx, itemsQuery, pq.Array(orderIDs))
	if err != nil {
		r.log.Errorf("Failed to query items for orders of user %d: %v", userID, err)
		return nil, fmt.Errorf("could not retrieve order items: %w", err)
	}
	defer itemRows.Close()

	itemsMap := make(map[string][]domain.ProcessedOrderItem)
	for itemRows.Next() {
		var item domain.ProcessedOrderItem
		var orderID string
		if err := itemRows.Scan(&orderID, &item.ItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			r.log.Errorf("Failed to scan order item row: %v", err)
			return nil, fmt.Errorf("error scanning order item data: %w", err)
		}
		itemsMap[orderID] = append(itemsMap[orderID], item)
	}
	if err = itemRows.Err(); err != nil {
		r.log.Errorf("Error during order items iteration: %v", err)
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	for i := range orders {
		if items, ok := itemsMap[orders[i].ID]; ok {
			orders[i].OrderItems = items
		} else {
			orders[i].OrderItems = []domain.ProcessedOrderItem{}
		}
	}

	r.log.Infof("Retrieved %d orders for user ID %d", len(orders), userID)
	return orders, nil
}
