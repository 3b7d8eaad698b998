package domain

import "github.com/shopspring/decimal"

const DefaultSuggestionLimit = 4

type (
	SuggestionRequest struct {
		ProductName        string
		ProductDescription string
		Category           string
		Brand              string
		Price              decimal.Decimal
		Limit              int
	}

	SuggestionResponse struct {
		SuggestedProductSlugs []string
	}

	SuggestionPrompt struct {
		Request   SuggestionRequest
		Available []CatalogEntry
	}
)
