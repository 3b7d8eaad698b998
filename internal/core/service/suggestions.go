package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
)

// Suggestions asks the suggester for products related to the one with the
// given slug. The answer is trusted only as far as it names other known
// products; any failure gives no suggestions.
func (s *Service) Suggestions(
	ctx context.Context, slug string,
) ([]domain.Product, error) {
	const op = "Service.Suggestions"
	log := slog.With("op", op, "slug", slug)

	p, err := s.catalog.ProductBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.suggester == nil {
		return []domain.Product{}, nil
	}

	prompt := domain.SuggestionPrompt{
		Request: domain.SuggestionRequest{
			ProductName:        p.Name,
			ProductDescription: p.Description,
			Category:           p.Category,
			Brand:              p.Brand,
			Price:              p.Price,
			Limit:              s.suggestionLimit,
		},
		Available: s.catalog.Entries(),
	}

	resp, err := s.suggester.SuggestProducts(ctx, prompt)
	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Info("drop suggestions of cancelled request", "err", ctxErr)
		return nil, fmt.Errorf("%s: %w", op, ctxErr)
	}
	if err != nil {
		log.Error("failed to get suggestions", "err", err)
		return []domain.Product{}, nil
	}

	return s.validSuggestions(log, p, resp.SuggestedProductSlugs), nil
}

func (s *Service) validSuggestions(
	log *slog.Logger, current domain.Product, slugs []string,
) []domain.Product {
	out := make([]domain.Product, 0, s.suggestionLimit)
	seen := make(map[string]struct{}, len(slugs))

	for _, slug := range slugs {
		if len(out) == s.suggestionLimit {
			break
		}
		if _, ok := seen[slug]; ok || slug == current.Slug {
			continue
		}
		seen[slug] = struct{}{}

		p, err := s.catalog.ProductBySlug(slug)
		if err != nil {
			log.Warn("drop unknown suggested slug", "suggested", slug)
			continue
		}
		out = append(out, p)
	}
	return out
}
