package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/ppiankov/footfit/internal/model"
)

func sampleRecommendation() model.Recommendation {
	return model.Recommendation{
		ShoeCategory: model.CategoryRunning,
		ArchSupport:  model.ArchHigh,
		Cushioning:   model.CushioningHigh,
		Materials:    []string{"dual-density firm midsole", "high-rebound cushioning unit"},
		Justification: []string{
			"reduces overpronation, increases arch stability",
			"extra cushioning reduces peak plantar pressure for heavier users",
			"additional comfort and pressure relief for older feet",
		},
		Rules: []string{"activity:high->running", "foot:flat-arch"},
	}
}

func fixedRenderer(includeTips bool) *Renderer {
	r := NewRenderer(includeTips)
	r.now = func() time.Time { return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestMaterialsMarkdown(t *testing.T) {
	got := MaterialsMarkdown([]string{"a", "b"})
	if got != "**a, b**" {
		t.Errorf("Unexpected materials markdown: %q", got)
	}
}

func TestJustificationMarkdown(t *testing.T) {
	got := JustificationMarkdown([]string{"first reason", "second reason"})
	if got != "*first reason.* *second reason.*" {
		t.Errorf("Unexpected justification markdown: %q", got)
	}
	if JustificationMarkdown(nil) != "" {
		t.Error("Expected empty string for no justification")
	}
}

func TestMarkdown_ContainsLabels(t *testing.T) {
	md := fixedRenderer(false).Markdown(sampleRecommendation(), nil)

	for _, want := range []string{
		"**Recommended shoe type:** Running shoes",
		"**Arch support:** High",
		"**Cushioning:** High",
		"**dual-density firm midsole, high-rebound cushioning unit**",
		"*additional comfort and pressure relief for older feet.*",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q\n%s", want, md)
		}
	}
	if strings.Contains(md, "Tip of the Day") {
		t.Error("Expected no tip when tips are disabled")
	}
	if strings.Contains(md, "Narrative") {
		t.Error("Expected no narrative section without a narrative")
	}
}

func TestMarkdown_NarrativeAndTip(t *testing.T) {
	narrative := &model.Narrative{
		Enabled:  true,
		Provider: "openai",
		Model:    "gpt-4o-mini",
		Text:     "A firm midsole suits flat arches.",
	}
	md := fixedRenderer(true).Markdown(sampleRecommendation(), narrative)

	if !strings.Contains(md, "### Narrative") || !strings.Contains(md, "A firm midsole suits flat arches.") {
		t.Errorf("Expected narrative section, got:\n%s", md)
	}
	if !strings.Contains(md, "Tip of the Day: "+TipOfTheDay(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))) {
		t.Errorf("Expected deterministic tip, got:\n%s", md)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	fixedRenderer(false).RenderSummary(&buf, sampleRecommendation())

	out := buf.String()
	if !strings.Contains(out, "Recommended shoe type:  Running shoes") {
		t.Errorf("Unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "    - reduces overpronation, increases arch stability.") {
		t.Errorf("Expected justification bullet, got:\n%s", out)
	}
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rec.json")
	rec := sampleRecommendation()

	if err := fixedRenderer(false).RenderJSON(rec, path); err != nil {
		t.Fatalf("RenderJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"shoe_category": "running"`) {
		t.Errorf("Expected snake_case keys, got %s", data)
	}

	var decoded model.Recommendation
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ArchSupport != rec.ArchSupport || len(decoded.Justification) != 3 {
		t.Errorf("Unexpected decoded recommendation: %+v", decoded)
	}
}

func TestSpeechText(t *testing.T) {
	got := SpeechText(sampleRecommendation())
	want := "Recommended Running shoes. Arch support High. Cushioning High."
	if got != want {
		t.Errorf("SpeechText = %q, want %q", got, want)
	}
}

func TestTipOfTheDay(t *testing.T) {
	day := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	later := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	if TipOfTheDay(day) != TipOfTheDay(later) {
		t.Error("Expected the same tip all day")
	}

	seen := make(map[string]bool)
	for d := 0; d < len(Tips()); d++ {
		seen[TipOfTheDay(day.AddDate(0, 0, d))] = true
	}
	if len(seen) != len(Tips()) {
		t.Errorf("Expected consecutive days to cycle through all %d tips, got %d", len(Tips()), len(seen))
	}
}
