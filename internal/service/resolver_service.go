package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/spec-kit/wa-group-directory/internal/config"
	apperrors "github.com/spec-kit/wa-group-directory/pkg/util"
)

const fallbackTitle = "Unknown Group"

// ResolverService fetches a WA invite page and extracts a display title,
// used only to pre-fill the name field when adding a group. Best effort:
// the directory never depends on it for correctness.
type ResolverService struct {
	client    *http.Client
	userAgent string
}

// NewResolverService builds the service with a timeout-bounded HTTP client.
func NewResolverService(cfg config.ResolverConfig) *ResolverService {
	return &ResolverService{
		client:    &http.Client{Timeout: cfg.FetchTimeout()},
		userAgent: cfg.UserAgent,
	}
}

// Resolve fetches the URL and extracts a title with this precedence:
// og:title meta content, then the document title, then a literal fallback.
// Every fetch or parse failure surfaces as the same server error.
func (s *ResolverService) Resolve(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", apperrors.NewValidationError("URL wajib diisi")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperrors.NewServerError("Gagal mengambil data link WA", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", apperrors.NewServerError("Gagal mengambil data link WA", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", apperrors.NewServerError("Gagal mengambil data link WA", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", apperrors.NewServerError("Gagal mengambil data link WA", err)
	}

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title, nil
	}
	return fallbackTitle, nil
}
