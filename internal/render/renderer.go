// Package render turns a recommendation into JSON, Markdown and terminal output.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/ppiankov/footfit/internal/model"
)

const rule = "═══════════════════════════════════════════════════════════"

// Renderer writes recommendations in the supported formats
type Renderer struct {
	includeTips bool
	now         func() time.Time
}

// NewRenderer creates a renderer; includeTips adds the tip of the day
func NewRenderer(includeTips bool) *Renderer {
	return &Renderer{
		includeTips: includeTips,
		now:         time.Now,
	}
}

// MarshalJSON encodes a recommendation as indented JSON
func MarshalJSON(rec model.Recommendation) ([]byte, error) {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal recommendation: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderJSON writes the recommendation to path as JSON
func (r *Renderer) RenderJSON(rec model.Recommendation, path string) error {
	data, err := MarshalJSON(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write JSON: %w", err)
	}
	return nil
}

// RenderMarkdown writes the Markdown summary card to path
func (r *Renderer) RenderMarkdown(rec model.Recommendation, narrative *model.Narrative, path string) error {
	if err := os.WriteFile(path, []byte(r.Markdown(rec, narrative)), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// MaterialsMarkdown renders materials as one bold, comma-joined span
func MaterialsMarkdown(materials []string) string {
	return "**" + strings.Join(materials, ", ") + "**"
}

// JustificationMarkdown renders each sentence in italics, period-terminated
func JustificationMarkdown(justification []string) string {
	parts := make([]string, 0, len(justification))
	for _, j := range justification {
		parts = append(parts, "*"+j+".*")
	}
	return strings.Join(parts, " ")
}

// Markdown renders the summary card. A disabled or nil narrative is skipped.
func (r *Renderer) Markdown(rec model.Recommendation, narrative *model.Narrative) string {
	var b strings.Builder

	b.WriteString("## Biomechanics Summary\n\n")
	fmt.Fprintf(&b, "- **Recommended shoe type:** %s\n", rec.ShoeCategory.Label())
	fmt.Fprintf(&b, "- **Arch support:** %s\n", rec.ArchSupport.Label())
	fmt.Fprintf(&b, "- **Cushioning:** %s\n", rec.Cushioning.Label())
	fmt.Fprintf(&b, "- **Material recommendation:** %s\n\n", MaterialsMarkdown(rec.Materials))

	b.WriteString("### Material & Why\n\n")
	fmt.Fprintf(&b, "%s\n", JustificationMarkdown(rec.Justification))

	if narrative != nil && narrative.Enabled && narrative.Text != "" {
		b.WriteString("\n### Narrative\n\n")
		fmt.Fprintf(&b, "_Generated by %s/%s. Informational only; it does not change the recommendation._\n\n", narrative.Provider, narrative.Model)
		fmt.Fprintf(&b, "%s\n", narrative.Text)
	}

	if r.includeTips {
		fmt.Fprintf(&b, "\n> Tip of the Day: %s\n", TipOfTheDay(r.now()))
	}

	return b.String()
}

// RenderSummary prints a boxed summary to w
func (r *Renderer) RenderSummary(w io.Writer, rec model.Recommendation) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "  Biomechanics Summary")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Recommended shoe type:  %s\n", rec.ShoeCategory.Label())
	fmt.Fprintf(w, "  Arch support:           %s\n", rec.ArchSupport.Label())
	fmt.Fprintf(w, "  Cushioning:             %s\n", rec.Cushioning.Label())
	fmt.Fprintf(w, "  Materials:              %s\n", strings.Join(rec.Materials, ", "))
	fmt.Fprintln(w)

	if len(rec.Justification) > 0 {
		fmt.Fprintln(w, "  Why:")
		for _, j := range rec.Justification {
			fmt.Fprintf(w, "    - %s.\n", j)
		}
		fmt.Fprintln(w)
	}

	if r.includeTips {
		fmt.Fprintf(w, "  Tip of the Day: %s\n", TipOfTheDay(r.now()))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, rule)
}

// SpeechText is the sentence read aloud by text-to-speech front ends
func SpeechText(rec model.Recommendation) string {
	return fmt.Sprintf("Recommended %s. Arch support %s. Cushioning %s.",
		rec.ShoeCategory.Label(), rec.ArchSupport.Label(), rec.Cushioning.Label())
}
