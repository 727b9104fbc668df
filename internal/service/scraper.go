package service

import (
	"context"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/kapu/astro-line-bot-go/internal/constants"
	"github.com/kapu/astro-line-bot-go/pkg/errors"
	"go.uber.org/zap"
)

// contentSelectors is the ordered list of containers the source site has used
// for the daily reading, most specific first, plus generic content regions.
// The site's markup is unversioned; order trades specificity for availability.
var contentSelectors = []string{
	".TODAY_CONTENT",
	".TODAY_LUCK",
	".TODAY",
	".constellation",
	".article",
	"#content",
	".content",
	".box",
	"#click108staff",
}

// ScraperService fetches a reading page and extracts its text block. It is the
// only network boundary in the pipeline: one GET per call, no retry, no cache.
type ScraperService struct {
	httpClient *http.Client
	logger     *zap.Logger
}

func NewScraperService(logger *zap.Logger) *ScraperService {
	return &ScraperService{
		httpClient: &http.Client{
			Timeout: constants.ScraperConfig.Timeout,
		},
		logger: logger,
	}
}

// Fetch issues a single GET and returns the raw markup. A transport failure
// yields a NetworkError, a non-2xx status a FetchError.
func (s *ScraperService) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.NewNetworkError(url, err)
	}

	req.Header.Set("User-Agent", constants.ScraperConfig.UserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", errors.NewNetworkError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.NewFetchError(resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.NewNetworkError(url, err)
	}

	return string(body), nil
}

type extractStage func(doc *goquery.Document) string

// Extract runs the fallback chain over the markup and returns the best-effort
// text block. Stage N runs only when stage N-1 yielded nothing usable; the
// order must not change. All stages empty is an explicit NoContentError, never
// a silently valid empty reading.
func (s *ScraperService) Extract(markup, sourceURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", errors.NewNoContentError(sourceURL).WithCause(err)
	}

	stages := []extractStage{
		s.extractBySelectors,
		s.extractFromMeta,
		s.extractFromParagraphs,
	}

	for i, stage := range stages {
		if text := stage(doc); text != "" {
			s.logger.Debug("Extraction stage succeeded",
				zap.Int("stage", i+1),
				zap.Int("runes", utf8.RuneCountInString(text)))
			return text, nil
		}
	}

	s.logger.Warn("All extraction stages empty - HTML structure may have changed",
		zap.String("url", sourceURL))
	return "", errors.NewNoContentError(sourceURL)
}

// FetchReading combines Fetch and Extract for one source URL.
func (s *ScraperService) FetchReading(ctx context.Context, url string) (string, error) {
	markup, err := s.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return s.Extract(markup, url)
}

func (s *ScraperService) extractBySelectors(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		text := strings.TrimSpace(doc.Find(selector).First().Text())
		if utf8.RuneCountInString(text) > constants.ExtractionThresholds.SelectorMinRunes {
			return text
		}
	}
	return ""
}

func (s *ScraperService) extractFromMeta(doc *goquery.Document) string {
	meta, _ := doc.Find(`meta[name="description"]`).Attr("content")
	meta = strings.TrimSpace(meta)
	if utf8.RuneCountInString(meta) > constants.ExtractionThresholds.MetaMinRunes {
		return meta
	}
	return ""
}

func (s *ScraperService) extractFromParagraphs(doc *goquery.Document) string {
	paragraphs := make([]string, 0, constants.ExtractionThresholds.MaxParagraphs)
	doc.Find("p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
		return len(paragraphs) < constants.ExtractionThresholds.MaxParagraphs
	})
	return strings.Join(paragraphs, "\n")
}
