package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PlaceOrder turns the session cart into an order after a simulated
// processing delay. A request cancelled during the delay leaves the cart
// as it was.
func (s *Service) PlaceOrder(
	ctx context.Context, sessionID string, form domain.CheckoutForm,
) (domain.Order, error) {
	const op = "Service.PlaceOrder"
	log := slog.With("op", op, "session", sessionID)

	if err := validateCheckout(form); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	c := sess.cart
	if c.Count() == 0 {
		return domain.Order{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCart)
	}

	if err := sleepCtx(ctx, s.checkoutDelay); err != nil {
		log.Info("order processing cancelled", "err", err)
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	items, err := c.Checkout(ctx)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		Shipping:   form.Shipping,
		CardMasked: maskCard(form.Payment.Number),
		Status:     domain.OrderProcessing,
		PlacedAt:   s.now(),
		Total:      decimal.Zero,
	}
	for _, it := range items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
		order.Total = order.Total.Add(it.Subtotal())
	}

	s.ordersMu.Lock()
	s.orders[sessionID] = append(s.orders[sessionID], order)
	s.ordersMu.Unlock()

	log.Info("order placed", "orderID", order.ID, "total", order.Total.String())

	n := domain.NewNotification(sessionID, domain.OrderPlaced, order.PlacedAt)
	n.Title = "Order Placed Successfully!"
	n.Description = "Thank you for your purchase. Your order is being processed."
	if err := s.notifier.Notify(context.WithoutCancel(ctx), n); err != nil {
		log.Error("failed to deliver notification", "err", err)
	}

	return order, nil
}

// Orders returns the orders of a session, newest first.
func (s *Service) Orders(_ context.Context, sessionID string) []domain.Order {
	s.ordersMu.RLock()
	orders := slices.Clone(s.orders[sessionID])
	s.ordersMu.RUnlock()

	slices.Reverse(orders)
	return orders
}

func validateCheckout(f domain.CheckoutForm) error {
	fields := []struct {
		name, value string
	}{
		{"shipping name", f.Shipping.Name},
		{"shipping address", f.Shipping.Address},
		{"shipping city", f.Shipping.City},
		{"shipping state", f.Shipping.State},
		{"shipping zip", f.Shipping.Zip},
		{"card name", f.Payment.Name},
		{"card number", f.Payment.Number},
		{"card expiry", f.Payment.Expiry},
		{"card cvc", f.Payment.CVC},
	}

	var missing []string
	for _, fld := range fields {
		if strings.TrimSpace(fld.value) == "" {
			missing = append(missing, fld.name)
		}
	}
	if len(missing) != 0 {
		return fmt.Errorf(
			"%w: missing %s", domain.ErrInvalidCheckout, strings.Join(missing, ", "),
		)
	}
	return nil
}

func maskCard(number string) string {
	digits := strings.ReplaceAll(number, " ", "")
	if n := utf8.RuneCountInString(digits); n > 4 {
		digits = string([]rune(digits)[n-4:])
	}
	return "**** **** **** " + digits
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
