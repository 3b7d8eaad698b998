package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/niksmo/storefront/internal/core/domain"
)

var errMalformedAnswer = errors.New("malformed model answer")

const systemInstruction = `You are an expert e-commerce product recommender.
Given the details of a product the user is currently viewing, suggest related products from the available products list.
Focus on products that are similar in category, style, or function, but are different from the current product. Never suggest the current product itself.
Consider complementary items or alternatives. Answer only with slugs taken from the available products list.`

var promptTmpl = template.Must(template.New("prompt").Parse(
	`Current Product Details:
Name: {{.Request.ProductName}}
Description: {{.Request.ProductDescription}}
Category: {{.Request.Category}}
Brand: {{.Request.Brand}}
Price: {{.Request.Price.StringFixed 2}}

List of Available Products (Name, Slug, Category, Brand, Price, Description):
{{range .Available -}}
- {{.Name}} ({{.Slug}}), Category: {{.Category}}, Brand: {{.Brand}}, Price: {{.Price.StringFixed 2}}, Desc: {{.Description}}
{{end}}
Suggest up to {{.Request.Limit}} related product slugs based on the current product and the available list.
Provide the output as a JSON object containing only the "suggestedProductSlugs" array.
`))

func renderPrompt(p domain.SuggestionPrompt) (string, error) {
	if p.Request.Limit < 1 {
		p.Request.Limit = domain.DefaultSuggestionLimit
	}
	var b strings.Builder
	if err := promptTmpl.Execute(&b, p); err != nil {
		return "", err
	}
	return b.String(), nil
}

type answer struct {
	SuggestedProductSlugs *[]string `json:"suggestedProductSlugs"`
}

// parseAnswer reads the JSON object the model was asked for. Models
// sometimes wrap it in a markdown code fence.
func parseAnswer(text string) (domain.SuggestionResponse, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var a answer
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &a); err != nil {
		return domain.SuggestionResponse{}, fmt.Errorf("%w: %w", errMalformedAnswer, err)
	}
	if a.SuggestedProductSlugs == nil {
		return domain.SuggestionResponse{}, fmt.Errorf(
			"%w: no suggestedProductSlugs", errMalformedAnswer,
		)
	}
	return domain.SuggestionResponse{
		SuggestedProductSlugs: *a.SuggestedProductSlugs,
	}, nil
}
