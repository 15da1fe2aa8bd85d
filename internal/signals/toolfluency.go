package signals

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/craftlens/craftlens/internal/models"
)

// Advanced-feature detectors run against the serialized tool input. A tool
// earns a feature tag at most once per session.
var featureDetectors = []struct {
	tag   string
	terms []string
}{
	{"regex_or_glob", []string{"regex", "glob", "**/", "grep -e", ".*", "[a-z"}},
	{"piping", []string{" | ", "&&", " ; ", ">>", " > "}},
	{"parallelism", []string{"parallel", "xargs -p", "concurrently", " & "}},
	{"templating", []string{"{{", "envsubst", "$("}},
	{"shell_chaining", []string{"||", "for ", "while ", "if ["}},
	{"file_modification", []string{"sed -i", "write", "edit", "patch", "old_string"}},
	{"code_search", []string{"grep", "rg ", "ast-grep", "ripgrep", "symbol"}},
	{"web_automation", []string{"curl", "wget", "playwright", "puppeteer", "headless"}},
}

// Depth thresholds per tool.
const (
	advancedFeatureCount = 2
	advancedUseCount     = 10
	intermediateUseCount = 3
)

// ExtractToolFluency computes per-tool usage counts, advanced-feature tags,
// and a depth rating for every tool observed in the session.
func ExtractToolFluency(messages []models.TranscriptMessage) models.ToolFluencySignals {
	counts := map[string]int{}
	features := map[string]map[string]bool{}

	for _, msg := range messages {
		if !msg.IsToolCall() {
			continue
		}
		counts[msg.ToolName]++
		serialized := serializeInput(msg.ToolInput)
		if serialized == "" {
			continue
		}
		if features[msg.ToolName] == nil {
			features[msg.ToolName] = map[string]bool{}
		}
		for _, det := range featureDetectors {
			if containsAny(serialized, det.terms) {
				features[msg.ToolName][det.tag] = true
			}
		}
	}

	sig := models.ToolFluencySignals{}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		usage := models.ToolUsage{Name: name, Count: counts[name]}
		for tag := range features[name] {
			usage.Features = append(usage.Features, tag)
		}
		sort.Strings(usage.Features)
		usage.Depth = rateDepth(usage.Count, len(usage.Features))
		sig.Tools = append(sig.Tools, usage)
		sig.TotalCalls += usage.Count
	}

	return sig
}

func rateDepth(count, featureCount int) models.ToolDepth {
	switch {
	case featureCount >= advancedFeatureCount || count >= advancedUseCount:
		return models.ToolDepthAdvanced
	case count >= intermediateUseCount || featureCount >= 1:
		return models.ToolDepthIntermediate
	default:
		return models.ToolDepthBasic
	}
}

// serializeInput renders a tool input map to lowercase text for keyword
// matching. Marshaling failures yield an empty string, not an error.
func serializeInput(input map[string]any) string {
	if len(input) == 0 {
		return ""
	}
	data, err := json.Marshal(input)
	if err != nil {
		return ""
	}
	return strings.ToLower(string(data))
}
