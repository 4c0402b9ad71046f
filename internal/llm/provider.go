package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/footfit/internal/model"
	"github.com/ppiankov/footfit/internal/recommend"
)

// Provider writes a plain-language narrative for a recommendation
type Provider interface {
	// Name returns the provider name
	Name() string

	// Narrate explains the recommendation without changing it
	Narrate(ctx context.Context, req NarrateRequest) (*NarrateResponse, error)

	// IsAvailable checks if the provider is configured and reachable
	IsAvailable(ctx context.Context) bool
}

// NarrateRequest contains the input for narration
type NarrateRequest struct {
	Profile        model.Profile
	Recommendation model.Recommendation

	// Prompt overrides the default prompt when set
	Prompt string

	// Model overrides the configured model when set
	Model string

	MaxTokens int
}

// NarrateResponse contains the provider output
type NarrateResponse struct {
	Text string

	// Materials are the catalog materials the text mentions
	Materials []string

	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "ollama", or "" for disabled
	Provider string
	Model    string
	APIKey   string
	BaseURL  string

	// Timeout in seconds
	Timeout int

	// StrictMaterials rejects narratives that name materials outside the recommendation
	StrictMaterials bool

	MaxTokens int
}

// DefaultConfig returns sensible defaults with narration disabled
func DefaultConfig() Config {
	return Config{
		Timeout:         30,
		StrictMaterials: true,
		MaxTokens:       400,
	}
}

const systemPrompt = "You explain footwear recommendations in plain language and never add advice the recommendation does not contain."

// BuildPrompt constructs the default narration prompt
func BuildPrompt(p model.Profile, rec model.Recommendation) string {
	var b strings.Builder

	b.WriteString(`You are explaining a rule-based footwear recommendation to the person it was made for.

RULES:
1. Mention ONLY these materials, and no other shoe materials:
`)
	for _, m := range rec.Materials {
		fmt.Fprintf(&b, "   - %s\n", m)
	}
	b.WriteString(`2. Do not change the shoe type, arch support, or cushioning level.
3. Do not give medical advice.

Profile:
`)
	fmt.Fprintf(&b, "- Age group: %s\n", p.Age.Label())
	fmt.Fprintf(&b, "- Weight: %s\n", p.Weight.Label())
	fmt.Fprintf(&b, "- Foot type: %s\n", p.Foot.Label())
	fmt.Fprintf(&b, "- Activity level: %s\n", p.Activity.Label())

	b.WriteString("\nRecommendation:\n")
	fmt.Fprintf(&b, "- Shoe type: %s\n", rec.ShoeCategory.Label())
	fmt.Fprintf(&b, "- Arch support: %s\n", rec.ArchSupport.Label())
	fmt.Fprintf(&b, "- Cushioning: %s\n", rec.Cushioning.Label())
	b.WriteString("- Reasons:\n")
	for _, j := range rec.Justification {
		fmt.Fprintf(&b, "   - %s\n", j)
	}

	b.WriteString("\nWrite 2-3 friendly sentences explaining why this combination suits them.")

	return b.String()
}

// mentionedMaterials returns every catalog material named in text, in catalog order
func mentionedMaterials(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, m := range recommend.Catalog() {
		if strings.Contains(lower, m) {
			found = append(found, m)
		}
	}
	return found
}

// checkMaterials enforces strict materials mode on a narrative
func checkMaterials(text string, allowed []string) ([]string, error) {
	mentioned := mentionedMaterials(text)
	for _, m := range mentioned {
		if !contains(allowed, m) {
			return nil, fmt.Errorf("MATERIAL LEAK: narrative named material not in the recommendation: %s", m)
		}
	}
	return mentioned, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
