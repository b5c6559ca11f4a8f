package usecase

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// maxQueryLength caps free-text queries, cut at a word boundary when possible
const maxQueryLength = 100

// Compiled regex patterns for query preprocessing
var (
	// Punctuation other than the hyphens and slashes used in tags like "grain-free"
	queryPunctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}\s\-/$<+]`)

	// Hyphens or slashes left alone between spaces
	orphanedPunctuationPattern = regexp.MustCompile(`(^|\s)[\-/]+(\s|$)`)

	// Multiple spaces cleanup
	multiSpacePattern = regexp.MustCompile(`\s+`)
)

// QueryPreprocessor normalizes free-text search queries before substring matching
type QueryPreprocessor struct {
	logger             *zap.Logger
	enableDebugLogging bool
}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor(logger *zap.Logger, enableDebugLogging bool) *QueryPreprocessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueryPreprocessor{
		logger:             logger,
		enableDebugLogging: enableDebugLogging,
	}
}

// PreprocessQuery lower-cases the query, strips stray punctuation,
// collapses whitespace and caps its length
func (p *QueryPreprocessor) PreprocessQuery(query string) string {
	cleaned := normalizeQuery(query)

	if p.enableDebugLogging && cleaned != query {
		p.logger.Debug("preprocessed query",
			zap.String("input", query),
			zap.String("output", cleaned),
		)
	}

	return cleaned
}

// normalizeQuery is the stateless core of PreprocessQuery
func normalizeQuery(query string) string {
	cleaned := normalizeText(query)

	// Limit query length
	if len(cleaned) > maxQueryLength {
		cleaned = strings.ToValidUTF8(cleaned[:maxQueryLength], "")
		if lastSpace := strings.LastIndex(cleaned, " "); lastSpace > maxQueryLength/2 {
			cleaned = cleaned[:lastSpace]
		}
	}

	return cleaned
}

// normalizeText applies the query normalization steps without the length cap.
// Names, brands and tags go through it before a query is matched against them.
func normalizeText(text string) string {
	if text == "" {
		return ""
	}

	cleaned := strings.ToLower(text)

	// Step 1: Punctuation becomes a space
	cleaned = queryPunctuationPattern.ReplaceAllString(cleaned, " ")

	// Step 2: Drop hyphens and slashes that are now orphaned
	cleaned = orphanedPunctuationPattern.ReplaceAllString(cleaned, " ")

	// Step 3: Normalize whitespace
	cleaned = multiSpacePattern.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}
