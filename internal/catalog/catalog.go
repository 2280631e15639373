package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/litdebate/backend/internal/domain"
	"github.com/litdebate/backend/pkg/logger"
)

// DefaultBaseURL points at the Open Library search pages.
const DefaultBaseURL = "https://openlibrary.org"

const missingSummary = "Summary not available"

// Summarizer is the generation capability used when no catalog summary is
// found.
type Summarizer interface {
	GenerateSummary(ctx context.Context, title, author string) (string, error)
}

// Enricher fills in missing book metadata before a pipeline run: a catalog
// page lookup first, then a generated summary, then a placeholder. The
// returned BookInfo is final for the run.
type Enricher struct {
	baseURL    string
	summarizer Summarizer
	httpClient *http.Client
}

func NewEnricher(baseURL string, summarizer Summarizer) *Enricher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Enricher{
		baseURL:    baseURL,
		summarizer: summarizer,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (e *Enricher) Enhance(ctx context.Context, book domain.BookInfo) domain.BookInfo {
	if book.Summary != "" {
		return book
	}

	if summary, pages, err := e.lookup(ctx, book.Title, book.Author); err == nil {
		if summary != "" {
			book.Summary = summary
		}
		if book.Pages == 0 && pages > 0 {
			book.Pages = pages
		}
	} else {
		logger.Warn("Catalog lookup failed",
			zap.String("title", book.Title),
			zap.Error(err),
		)
	}

	if book.Summary == "" && e.summarizer != nil {
		summary, err := e.summarizer.GenerateSummary(ctx, book.Title, book.Author)
		if err != nil {
			logger.Warn("Summary generation failed", zap.String("title", book.Title), zap.Error(err))
		} else {
			book.Summary = summary
		}
	}

	if book.Summary == "" {
		book.Summary = missingSummary
	}

	return book
}

func (e *Enricher) lookup(ctx context.Context, title, author string) (string, int, error) {
	params := url.Values{}
	params.Add("title", title)
	params.Add("author", author)
	searchURL := fmt.Sprintf("%s/search?%s", e.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "litdebate-backend/1.0")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to search catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("catalog search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse catalog page: %w", err)
	}

	href, ok := doc.Find(".searchResultItem .booktitle a").First().Attr("href")
	if !ok {
		return "", 0, fmt.Errorf("no catalog results for %q", title)
	}

	return e.scrapeBookPage(ctx, e.baseURL+href)
}

func (e *Enricher) scrapeBookPage(ctx context.Context, pageURL string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "litdebate-backend/1.0")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("failed to fetch book page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to parse book page: %w", err)
	}

	summary := strings.TrimSpace(doc.Find(".book-description").First().Text())
	if len(summary) > 2000 {
		summary = summary[:2000]
	}

	pages := 0
	pagesText := strings.TrimSpace(doc.Find(".edition-pages").First().Text())
	if pagesText != "" {
		if n, err := strconv.Atoi(strings.Fields(pagesText)[0]); err == nil {
			pages = n
		}
	}

	logger.Debug("Catalog page scraped",
		zap.String("url", pageURL),
		zap.Int("summary_length", len(summary)),
		zap.Int("pages", pages),
	)

	return summary, pages, nil
}
