package gemini

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func TestRenderPrompt(t *testing.T) {
	p := domain.SuggestionPrompt{
		Request: domain.SuggestionRequest{
			ProductName:        "Espresso Machine",
			ProductDescription: "Brew barista-quality espresso at home.",
			Category:           "Home Goods",
			Brand:              "CafeMaster",
			Price:              decimal.RequireFromString("199.99"),
		},
		Available: []domain.CatalogEntry{
			{
				Name: "Robot Vacuum Cleaner", Slug: "robot-vacuum-cleaner",
				Category: "Home Goods", Brand: "CleanBot",
				Price: decimal.NewFromInt(349), Description: "Smart cleaning...",
			},
		},
	}

	text, err := renderPrompt(p)
	require.NoError(t, err)
	assert.Contains(t, text, "Name: Espresso Machine")
	assert.Contains(t, text, "Price: 199.99")
	assert.Contains(t, text,
		"- Robot Vacuum Cleaner (robot-vacuum-cleaner), Category: Home Goods, "+
			"Brand: CleanBot, Price: 349.00, Desc: Smart cleaning...")
	assert.Contains(t, text, "Suggest up to 4 related product slugs")
}

func TestParseAnswer(t *testing.T) {
	t.Run("Plain", func(t *testing.T) {
		r, err := parseAnswer(`{"suggestedProductSlugs":["a","b"]}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, r.SuggestedProductSlugs)
	})

	t.Run("Fenced", func(t *testing.T) {
		r, err := parseAnswer("```json\n{\"suggestedProductSlugs\":[\"a\"]}\n```")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, r.SuggestedProductSlugs)
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, text := range []string{
			``, `not json`, `{"other":[]}`, `{"suggestedProductSlugs":"a"}`,
		} {
			_, err := parseAnswer(text)
			assert.ErrorIs(t, err, errMalformedAnswer, text)
		}
	})
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{
				genai.Text(`{"suggestedProductSlugs":`), genai.Text(`[]}`),
			}}},
			{Content: nil},
		},
	}
	assert.Equal(t, `{"suggestedProductSlugs":[]}`, extractText(resp))
}

func TestTransient(t *testing.T) {
	assert.False(t, transient(context.Canceled))
	assert.False(t, transient(fmt.Errorf("wrap: %w", errMalformedAnswer)))
	assert.False(t, transient(&googleapi.Error{Code: 400}))
	assert.True(t, transient(&googleapi.Error{Code: 429}))
	assert.True(t, transient(&googleapi.Error{Code: 503}))
	assert.True(t, transient(errors.New("connection reset")))
}

func TestNewRequiresKey(t *testing.T) {
	_, err := New(t.Context(), "")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}
