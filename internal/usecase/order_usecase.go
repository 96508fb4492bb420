package usecase

import (
	"context"
	"errors"
	"fmt"

	"canteen_service/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var _ domain.OrderUseCase = (*orderUseCase)(nil)

type orderUseCase struct {
	orderRepo domain.OrderRepository
	menuRepo  domain.MenuRepository
	notifier  domain.OrderNotifier
	log       *logrus.Logger
}

// NewOrderUseCase wires the placement and retrieval logic. notifier may be
// nil, in which case placed orders are not announced.
func NewOrderUseCase(orderRepo domain.OrderRepository, menuRepo domain.MenuRepository, notifier domain.OrderNotifier, logger *logrus.Logger) domain.OrderUseCase {
	return &orderUseCase{
		orderRepo: orderRepo,
		menuRepo:  menuRepo,
		notifier:  notifier,
		log:       logger,
	}
}

// PlaceOrder validates the request, resolves every item against the menu
// catalog, computes the total and persists a single order. userId and phone
// come from the authenticated identity, never from the request body.
//
// There is no idempotency key: a client that retries a request after a
// transport failure may create a duplicate order.
func (uc *orderUseCase) PlaceOrder(ctx context.Context, identity domain.Identity, req *domain.PlaceOrderRequest) (*domain.Order, error) {
	if err := req.DeliveryDetails.Validate(); err != nil {
		uc.log.Warnf("Use Case: Delivery details validation failed for user %d: %v", identity.UserID, err)
		return nil, err
	}

	if len(req.OrderItems) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for i, item := range req.OrderItems {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item %d (%s): %w", i, item.ItemID, domain.ErrInvalidQuantity)
		}
	}

	processed, err := uc.resolveItems(ctx, req.OrderItems)
	if err != nil {
		uc.log.Warnf("Use Case: Item resolution failed for user %d: %v", identity.UserID, err)
		return nil, err
	}

	var totalAmount float64
	for _, item := range processed {
		totalAmount += float64(item.Quantity) * item.Price
	}

	order := &domain.Order{
		UserID:          identity.UserID,
		OrderItems:      processed,
		TotalAmount:     totalAmount,
		Phone:           identity.Phone,
		DeliveryDetails: req.DeliveryDetails.Normalized(),
		OrderStatus:     domain.StatusPlaced,
	}

	createdOrder, err := uc.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create order for user %d: %v", identity.UserID, err)
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	uc.log.Infof("Use Case: Order %s placed by user %d, total %.2f", createdOrder.ID, identity.UserID, totalAmount)

	if uc.notifier != nil {
		event := domain.OrderPlacedEvent{
			OrderID:      createdOrder.ID,
			UserID:       createdOrder.UserID,
			TotalAmount:  createdOrder.TotalAmount,
			DeliveryType: createdOrder.DeliveryDetails.Type,
			PlacedAt:     createdOrder.CreatedAt,
		}
		// Best effort: the order is already persisted, a lost notification
		// must not fail the request.
		if err := uc.notifier.OrderPlaced(ctx, event); err != nil {
			uc.log.Errorf("Use Case: Failed to publish order-placed event for order %s: %v", createdOrder.ID, err)
		}
	}

	return createdOrder, nil
}

// resolveItems looks up every requested item in the menu catalog. Lookups
// run concurrently; the returned slice preserves the request order. If any
// item is missing the whole resolution fails and no order is created.
func (uc *orderUseCase) resolveItems(ctx context.Context, items []domain.OrderItemRequest) ([]domain.ProcessedOrderItem, error) {
	processed := make([]domain.ProcessedOrderItem, len(items))

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			menuItem, err := uc.menuRepo.GetMenuItemByID(gctx, item.ItemID)
			if err != nil {
				if errors.Is(err, domain.ErrMenuItemNotFound) {
					return fmt.Errorf("menu item %s not found", item.ItemID)
				}
				return fmt.Errorf("menu lookup failed for item %s: %w", item.ItemID, err)
			}
			processed[i] = domain.ProcessedOrderItem{
				ItemID:   item.ItemID,
				Name:     menuItem.Title,
				Quantity: item.Quantity,
				Price:    menuItem.Price,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return processed, nil
}

// MyOrders returns all orders of the authenticated user partitioned into the
// completed and current buckets, newest first. Orders with a status outside
// both buckets are dropped from the response; they are logged so that a
// status added to the enum without a bucket does not vanish silently.
func (uc *orderUseCase) MyOrders(ctx context.Context, identity domain.Identity) (*domain.OrderList, error) {
	orders, err := uc.orderRepo.ListOrdersByUserID(ctx, identity.UserID)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list orders for user %d: %v", identity.UserID, err)
		return nil, fmt.Errorf("could not retrieve orders for user %d: %w", identity.UserID, err)
	}

	list := &domain.OrderList{
		CompletedOrders: []domain.Order{},
		CurrentOrders:   []domain.Order{},
	}
	for _, order := range orders {
		switch {
		case order.OrderStatus.IsCompleted():
			list.CompletedOrders = append(list.CompletedOrders, order)
		case order.OrderStatus.IsCurrent():
			list.CurrentOrders = append(list.CurrentOrders, order)
		default:
			uc.log.Warnf("Use Case: Order %s has unknown status %q, excluded from both buckets", order.ID, order.OrderStatus)
		}
	}

	uc.log.Infof("Use Case: Retrieved %d orders for user %d (%d completed, %d current)",
		len(orders), identity.UserID, len(list.CompletedOrders), len(list.CurrentOrders))
	return list, nil
}
