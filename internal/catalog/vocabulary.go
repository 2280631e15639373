package catalog

import (
	"strings"

	"github.com/jdkato/prose/v2"
)

// ExtractVocabulary pulls candidate vocabulary words from a book summary:
// nouns and adjectives of four letters or more, lowercased and deduplicated,
// in order of first appearance. The list seeds area-analysis prompts and the
// fallback vocabulary.
func ExtractVocabulary(text string, max int) []string {
	if text == "" || max <= 0 {
		return nil
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var words []string

	for _, tok := range doc.Tokens() {
		if !strings.HasPrefix(tok.Tag, "NN") && !strings.HasPrefix(tok.Tag, "JJ") {
			continue
		}

		word := strings.ToLower(strings.Trim(tok.Text, ".,;:!?\"'"))
		if len(word) < 4 || seen[word] {
			continue
		}

		seen[word] = true
		words = append(words, word)
		if len(words) >= max {
			break
		}
	}

	return words
}
