// Package tasks provides task management business logic and the smart
// suggestion engine.
package tasks

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"smart-task-api/pkg/types"
)

// TextSource provides read-only access to the stored task text. Both
// listings must reflect the same underlying collection ordering within a
// single call so that keyword tie-breaking stays deterministic.
type TextSource interface {
	ListTitles(ctx context.Context) ([]string, error)
	ListDescriptions(ctx context.Context) ([]string, error)
}

// SuggesterConfig represents configuration for the suggestion engine
type SuggesterConfig struct {
	TopKeywords   int `json:"top_keywords"`
	MaxPerKeyword int `json:"max_per_keyword"`
}

// DefaultSuggesterConfig returns default suggester configuration
func DefaultSuggesterConfig() SuggesterConfig {
	return SuggesterConfig{
		TopKeywords:   5,
		MaxPerKeyword: 3,
	}
}

// Suggester mines stored task text for recurring keywords and combines
// them with phrase templates to produce novel task title suggestions.
// It holds no state between calls and is safe for concurrent use.
type Suggester struct {
	source TextSource
	config SuggesterConfig
}

// suggestionTemplates are applied to each ranked keyword in declared order.
var suggestionTemplates = []string{
	"Follow-up on %s",
	"Finalize %s",
	"Plan next steps for %s",
	"Schedule meeting for %s",
	"Prepare report regarding %s",
	"Start working on %s",
}

// stopWords are common words excluded from keyword consideration.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true,
	"are": true, "was": true, "were": true, "been": true,
	"have": true, "has": true, "had": true, "does": true,
	"did": true, "will": true, "would": true, "could": true,
	"should": true,
}

// nonWordPattern matches every character that is neither a word character
// (letter, digit, underscore) nor whitespace.
var nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// NewSuggester creates a suggester with default configuration
func NewSuggester(source TextSource) *Suggester {
	return NewSuggesterWithConfig(source, DefaultSuggesterConfig())
}

// NewSuggesterWithConfig creates a suggester with custom configuration
func NewSuggesterWithConfig(source TextSource, config SuggesterConfig) *Suggester {
	return &Suggester{
		source: source,
		config: config,
	}
}

// ExtractKeywords extracts normalized keyword tokens from free-form text.
// Tokens are lowercased, stripped of punctuation, and filtered by length
// and stop-word membership. Duplicates within the same text are preserved
// since keyword ranking depends on multiplicity.
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	cleaned := nonWordPattern.ReplaceAllString(strings.ToLower(text), " ")

	var keywords []string
	for _, word := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(word) <= 2 {
			continue
		}
		if stopWords[word] {
			continue
		}
		keywords = append(keywords, word)
	}

	return keywords
}

// GenerateSuggestions produces an ordered list of distinct suggested task
// titles derived from the current task text. An empty result means no
// usable keywords were found; the caller decides on a fallback.
func (s *Suggester) GenerateSuggestions(ctx context.Context) ([]types.Suggestion, error) {
	titles, err := s.source.ListTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list task titles: %w", err)
	}

	// Nothing to analyze. Descriptions are intentionally not consulted
	// when no titles exist.
	if len(titles) == 0 {
		return nil, nil
	}

	var allKeywords []string
	for _, title := range titles {
		allKeywords = append(allKeywords, ExtractKeywords(title)...)
	}

	descriptions, err := s.source.ListDescriptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list task descriptions: %w", err)
	}
	for _, description := range descriptions {
		allKeywords = append(allKeywords, ExtractKeywords(description)...)
	}

	if len(allKeywords) == 0 {
		return nil, nil
	}

	topKeywords := s.rankKeywords(allKeywords)

	suggestions := make([]types.Suggestion, 0, len(topKeywords)*s.config.MaxPerKeyword)
	generated := make(map[string]bool)

	for _, keyword := range topKeywords {
		formatted := s.formatKeyword(keyword)

		emitted := 0
		for _, template := range suggestionTemplates {
			if emitted >= s.config.MaxPerKeyword {
				break
			}

			title := fmt.Sprintf(template, formatted)
			if generated[title] {
				continue
			}

			suggestions = append(suggestions, types.Suggestion{SuggestedTitle: title})
			generated[title] = true
			emitted++
		}
	}

	return suggestions, nil
}

// rankKeywords selects the most frequent keywords, ties broken by first
// occurrence in the combined sequence.
func (s *Suggester) rankKeywords(keywords []string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	distinct := make([]string, 0)

	for i, keyword := range keywords {
		if counts[keyword] == 0 {
			firstSeen[keyword] = i
			distinct = append(distinct, keyword)
		}
		counts[keyword]++
	}

	sort.SliceStable(distinct, func(i, j int) bool {
		if counts[distinct[i]] != counts[distinct[j]] {
			return counts[distinct[i]] > counts[distinct[j]]
		}
		return firstSeen[distinct[i]] < firstSeen[distinct[j]]
	})

	if len(distinct) > s.config.TopKeywords {
		distinct = distinct[:s.config.TopKeywords]
	}

	return distinct
}

// formatKeyword capitalizes each hyphen-delimited part of the keyword and
// rejoins them with spaces. The caser is constructed per call; cases.Caser
// carries transform state and must not be shared across goroutines.
func (s *Suggester) formatKeyword(keyword string) string {
	caser := cases.Title(language.English)
	parts := strings.Split(keyword, "-")
	for i, part := range parts {
		parts[i] = caser.String(part)
	}
	return strings.Join(parts, " ")
}

// DefaultSuggestions returns the fixed fallback suggestions used when the
// engine finds no usable task text.
func DefaultSuggestions() []types.Suggestion {
	return []types.Suggestion{
		{SuggestedTitle: "Weekly Planning Session"},
		{SuggestedTitle: "Project Status Review"},
		{SuggestedTitle: "Team Meeting Preparation"},
	}
}
