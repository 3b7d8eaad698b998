package service

import (
	"context"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
)

func (s *Service) Notifications(
	ctx context.Context, sessionID string,
) ([]domain.Notification, error) {
	const op = "Service.Notifications"

	if s.feed == nil {
		return []domain.Notification{}, nil
	}
	ns, err := s.feed.Recent(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ns, nil
}
