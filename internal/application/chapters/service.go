package chapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aescanero/gita/pkg/adapters/scripture"
	"go.uber.org/zap"
)

// Lookup outcomes reported to Metrics
const (
	OutcomeOK            = "ok"
	OutcomeInvalid       = "invalid"
	OutcomeUpstreamError = "upstream_error"
	OutcomeFailure       = "failure"
)

// Cache lookup results reported to Metrics
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Fetcher retrieves a raw chapter document from the scripture API
type Fetcher interface {
	FetchChapter(ctx context.Context, chapter int) ([]byte, error)
}

// Cache stores raw chapter documents
type Cache interface {
	Get(ctx context.Context, chapter int) ([]byte, bool, error)
	Set(ctx context.Context, chapter int, body []byte) error
}

// Metrics receives lookup instrumentation
type Metrics interface {
	RecordLookup(outcome string)
	RecordUpstream(code string, duration time.Duration)
	RecordCacheLookup(result string)
}

// Chapter holds the fields of an upstream chapter document used for display
type Chapter struct {
	ID                  int    `json:"id"`
	ChapterNumber       int    `json:"chapter_number"`
	Name                string `json:"name"`
	Slug                string `json:"slug"`
	NameTransliterated  string `json:"name_transliterated"`
	NameTranslated      string `json:"name_translated"`
	NameMeaning         string `json:"name_meaning"`
	VersesCount         int    `json:"verses_count"`
	ChapterSummary      string `json:"chapter_summary"`
	ChapterSummaryHindi string `json:"chapter_summary_hindi"`
}

// Result is the outcome of a successful lookup
type Result struct {
	Chapter int
	Body    json.RawMessage
	Cached  bool
}

// Decode parses the display fields out of the raw body
func (r *Result) Decode() (*Chapter, error) {
	var ch Chapter
	if err := json.Unmarshal(r.Body, &ch); err != nil {
		return nil, fmt.Errorf("failed to decode chapter %d: %w", r.Chapter, err)
	}
	return &ch, nil
}

// Service performs chapter lookups
type Service struct {
	fetcher Fetcher
	cache   Cache
	metrics Metrics
	logger  *zap.Logger
}

// NewService creates a new lookup service. cache may be nil to disable caching.
func NewService(fetcher Fetcher, cache Cache, metrics Metrics, logger *zap.Logger) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

// Lookup validates the chapter and relays it to the scripture API.
// Upstream failures are returned as *scripture.APIError.
func (s *Service) Lookup(ctx context.Context, chapter int) (*Result, error) {
	if err := ValidateChapter(chapter); err != nil {
		s.metrics.RecordLookup(OutcomeInvalid)
		return nil, err
	}

	if body, ok := s.fromCache(ctx, chapter); ok {
		s.metrics.RecordLookup(OutcomeOK)
		return &Result{Chapter: chapter, Body: body, Cached: true}, nil
	}

	start := time.Now()
	body, err := s.fetcher.FetchChapter(ctx, chapter)
	duration := time.Since(start)

	if err != nil {
		var apiErr *scripture.APIError
		if errors.As(err, &apiErr) {
			s.metrics.RecordUpstream(strconv.Itoa(apiErr.StatusCode), duration)
			s.metrics.RecordLookup(OutcomeUpstreamError)
			return nil, err
		}

		s.metrics.RecordUpstream("error", duration)
		s.metrics.RecordLookup(OutcomeFailure)
		s.logger.Error("error fetching chapter details",
			zap.Int("chapter", chapter),
			zap.Error(err))
		return nil, err
	}

	s.metrics.RecordUpstream("200", duration)
	s.metrics.RecordLookup(OutcomeOK)

	s.toCache(ctx, chapter, body)

	s.logger.Debug("chapter looked up",
		zap.Int("chapter", chapter),
		zap.Duration("upstream_duration", duration))

	return &Result{Chapter: chapter, Body: json.RawMessage(body)}, nil
}

// LookupRaw parses a raw JSON chapter value and performs the lookup
func (s *Service) LookupRaw(ctx context.Context, raw json.RawMessage) (*Result, error) {
	chapter, err := ParseChapter(raw)
	if err != nil {
		s.metrics.RecordLookup(OutcomeInvalid)
		return nil, err
	}
	return s.Lookup(ctx, chapter)
}

func (s *Service) fromCache(ctx context.Context, chapter int) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}

	body, ok, err := s.cache.Get(ctx, chapter)
	switch {
	case err != nil:
		s.metrics.RecordCacheLookup(CacheError)
		s.logger.Warn("chapter cache read failed",
			zap.Int("chapter", chapter),
			zap.Error(err))
		return nil, false
	case !ok:
		s.metrics.RecordCacheLookup(CacheMiss)
		return nil, false
	}

	s.metrics.RecordCacheLookup(CacheHit)
	return body, true
}

func (s *Service) toCache(ctx context.Context, chapter int, body []byte) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, chapter, body); err != nil {
		s.logger.Warn("chapter cache write failed",
			zap.Int("chapter", chapter),
			zap.Error(err))
	}
}

type nopMetrics struct{}

func (nopMetrics) RecordLookup(string)                  {}
func (nopMetrics) RecordUpstream(string, time.Duration) {}
func (nopMetrics) RecordCacheLookup(string)             {}
