package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litdebate/backend/internal/domain"
)

type stubSummarizer struct {
	summary string
	err     error
}

func (s *stubSummarizer) GenerateSummary(_ context.Context, _, _ string) (string, error) {
	return s.summary, s.err
}

func catalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/search", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
			<li class="searchResultItem">
				<h3 class="booktitle"><a href="/works/OL123">Holes</a></h3>
			</li>
		</body></html>`)
	})
	mux.HandleFunc("/works/OL123", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
			<div class="book-description">Stanley digs holes at a desert camp.</div>
			<span class="edition-pages">233</span>
		</body></html>`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestEnhanceSkipsWhenSummaryPresent(t *testing.T) {
	e := NewEnricher("http://127.0.0.1:1", &stubSummarizer{summary: "generated"})

	book := domain.BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 4.6, Summary: "existing"}
	enhanced := e.Enhance(context.Background(), book)

	assert.Equal(t, "existing", enhanced.Summary)
}

func TestEnhanceScrapesCatalog(t *testing.T) {
	server := catalogServer(t)
	e := NewEnricher(server.URL, &stubSummarizer{err: errors.New("should not be called")})

	book := domain.BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 4.6}
	enhanced := e.Enhance(context.Background(), book)

	assert.Equal(t, "Stanley digs holes at a desert camp.", enhanced.Summary)
	assert.Equal(t, 233, enhanced.Pages)
}

func TestEnhanceFallsBackToSummarizer(t *testing.T) {
	e := NewEnricher("http://127.0.0.1:1", &stubSummarizer{summary: "A boy digs holes."})

	book := domain.BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 4.6}
	enhanced := e.Enhance(context.Background(), book)

	assert.Equal(t, "A boy digs holes.", enhanced.Summary)
}

func TestEnhancePlaceholderWhenAllSourcesFail(t *testing.T) {
	e := NewEnricher("http://127.0.0.1:1", &stubSummarizer{err: errors.New("unavailable")})

	book := domain.BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 4.6}
	enhanced := e.Enhance(context.Background(), book)

	assert.Equal(t, "Summary not available", enhanced.Summary)
}

func TestEnhancePreservesExistingPages(t *testing.T) {
	server := catalogServer(t)
	e := NewEnricher(server.URL, nil)

	book := domain.BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 4.6, Pages: 240}
	enhanced := e.Enhance(context.Background(), book)

	assert.Equal(t, 240, enhanced.Pages)
}

func TestExtractVocabulary(t *testing.T) {
	text := "Stanley discovers a mysterious desert camp where boys dig enormous holes searching for a buried treasure."

	words := ExtractVocabulary(text, 10)

	require.NotEmpty(t, words)
	assert.LessOrEqual(t, len(words), 10)

	seen := make(map[string]bool)
	for _, word := range words {
		assert.GreaterOrEqual(t, len(word), 4)
		assert.Equal(t, word, strings.ToLower(word))
		assert.False(t, seen[word], "duplicate word %q", word)
		seen[word] = true
	}
	assert.Contains(t, words, "desert")
}

func TestExtractVocabularyEmpty(t *testing.T) {
	assert.Nil(t, ExtractVocabulary("", 10))
	assert.Nil(t, ExtractVocabulary("some text", 0))
}
