package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
)

func (s *Service) Cart(
	ctx context.Context, sessionID string,
) (domain.CartSummary, error) {
	const op = "Service.Cart"

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess.cart.Summary(), nil
}

func (s *Service) AddToCart(
	ctx context.Context, sessionID, productID string, quantity int,
) (domain.CartSummary, error) {
	const op = "Service.AddToCart"

	p, err := s.product(productID)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess.cart.Add(ctx, p, quantity), nil
}

func (s *Service) RemoveFromCart(
	ctx context.Context, sessionID, productID string,
) (domain.CartSummary, error) {
	const op = "Service.RemoveFromCart"

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess.cart.Remove(ctx, productID), nil
}

func (s *Service) UpdateQuantity(
	ctx context.Context, sessionID, productID string, quantity int,
) (domain.CartSummary, error) {
	const op = "Service.UpdateQuantity"

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess.cart.UpdateQuantity(ctx, productID, quantity), nil
}

func (s *Service) ClearCart(
	ctx context.Context, sessionID string,
) (domain.CartSummary, error) {
	const op = "Service.ClearCart"

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.CartSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess.cart.Clear(ctx), nil
}

func (s *Service) Wishlist(
	ctx context.Context, sessionID string,
) (domain.WishlistSummary, error) {
	const op = "Service.Wishlist"

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.WishlistSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess.wishlist.Summary(), nil
}

func (s *Service) AddToWishlist(
	ctx context.Context, sessionID, productID string,
) (domain.WishlistSummary, error) {
	const op = "Service.AddToWishlist"

	p, err := s.product(productID)
	if err != nil {
		return domain.WishlistSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.WishlistSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	sess.wishlist.Add(ctx, p)
	return sess.wishlist.Summary(), nil
}

func (s *Service) RemoveFromWishlist(
	ctx context.Context, sessionID, productID string,
) (domain.WishlistSummary, error) {
	const op = "Service.RemoveFromWishlist"

	sess, err := s.session(ctx, sessionID)
	if err != nil {
		return domain.WishlistSummary{}, fmt.Errorf("%s: %w", op, err)
	}
	sess.wishlist.Remove(ctx, productID)
	return sess.wishlist.Summary(), nil
}
