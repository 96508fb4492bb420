package domain

import (
	"context"
	"errors"
	"time"
)

type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Placed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusReady          OrderStatus = "Ready"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// IsCurrent reports whether the status belongs to the "current" display
// bucket (the order is still being worked on).
func (s OrderStatus) IsCurrent() bool {
	switch s {
	case StatusPlaced, StatusPreparing, StatusReady, StatusOutForDelivery:
		return true
	default:
		return false
	}
}

// IsCompleted reports whether the status belongs to the "completed" display
// bucket. A status outside both buckets is unknown to this service.
func (s OrderStatus) IsCompleted() bool {
	switch s {
	case StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "delivery"
	DeliveryTypePickup   DeliveryType = "pickup"
)

var (
	ErrInvalidDeliveryType = errors.New("Invalid delivery type")
	ErrHostelNameRequired  = errors.New("Hostel name is required for delivery")
	ErrPickupTimeRequired  = errors.New("Pickup time is required for pickup")
	ErrEmptyOrder          = errors.New("order must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be positive")
)

// DeliveryDetails is a tagged variant: exactly one of HostelName or
// PickupTime applies, depending on Type. Both fields are always serialized,
// the inapplicable one as null, matching the persisted data shape.
type DeliveryDetails struct {
	Type       DeliveryType `json:"type"`
	HostelName *string      `json:"hostelName"`
	PickupTime *string      `json:"pickupTime"`
}

// Validate checks the delivery type and its variant-required field.
func (d *DeliveryDetails) Validate() error {
	switch d.Type {
	case DeliveryTypeDelivery:
		if d.HostelName == nil || *d.HostelName == "" {
			return ErrHostelNameRequired
		}
	case DeliveryTypePickup:
		if d.PickupTime == nil || *d.PickupTime == "" {
			return ErrPickupTimeRequired
		}
	default:
		return ErrInvalidDeliveryType
	}
	return nil
}

// Normalized returns a copy with the field that does not apply to the
// variant cleared, so the stored record always carries an explicit null.
func (d DeliveryDetails) Normalized() DeliveryDetails {
	switch d.Type {
	case DeliveryTypeDelivery:
		d.PickupTime = nil
	case DeliveryTypePickup:
		d.HostelName = nil
	}
	return d
}

// OrderItemRequest is a single line of an incoming placement request.
type OrderItemRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
}

// ProcessedOrderItem is an order line after catalog resolution. Name and
// Price are snapshots taken at order time and are never re-derived from the
// catalog afterwards.
type ProcessedOrderItem struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type Order struct {
	ID              string               `json:"id"`
	UserID          int64                `json:"userId"`
	OrderItems      []ProcessedOrderItem `json:"orderItems"`
	TotalAmount     float64              `json:"totalAmount"`
	Phone           string               `json:"phone"`
	DeliveryDetails DeliveryDetails      `json:"deliveryDetails"`
	OrderStatus     OrderStatus          `json:"orderStatus"`
	CreatedAt       time.Time            `json:"createdAt"`
}

type PlaceOrderRequest struct {
	OrderItems      []OrderItemRequest `json:"orderItems"`
	DeliveryDetails DeliveryDetails    `json:"deliveryDetails"`
}

// OrderList partitions a user's orders into the two display buckets,
// each sorted newest first.
type OrderList struct {
	CompletedOrders []Order `json:"completedOrders"`
	CurrentOrders   []Order `json:"currentOrders"`
}

// OrderPlacedEvent is published after an order has been persisted so that
// the kitchen side can pick it up.
type OrderPlacedEvent struct {
	OrderID      string       `json:"order_id"`
	UserID       int64        `json:"user_id"`
	TotalAmount  float64      `json:"total_amount"`
	DeliveryType DeliveryType `json:"delivery_type"`
	PlacedAt     time.Time    `json:"placed_at"`
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) (*Order, error)
	ListOrdersByUserID(ctx context.Context, userID int64) ([]Order, error)
}

type OrderNotifier interface {
	OrderPlaced(ctx context.Context, event OrderPlacedEvent) error
}

type OrderUseCase interface {
	PlaceOrder(ctx context.Context, identity Identity, req *PlaceOrderRequest) (*Order, error)
	MyOrders(ctx context.Context, identity Identity) (*OrderList, error)
}
