// Package service composes the calendar algorithms with localized labels
// and caching. It is the layer the HTTP handlers and the archive tools
// talk to.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/zapponejosh/feastcal/internal/cache"
	"github.com/zapponejosh/feastcal/internal/calendar"
	"github.com/zapponejosh/feastcal/internal/i18n"
	"github.com/zapponejosh/feastcal/internal/metrics"
)

// Errors returned for arguments outside the supported range.
var (
	ErrYearOutOfRange = fmt.Errorf("year must be between %d and %d", calendar.MinYear, calendar.MaxYear)
	ErrInvalidMonth   = errors.New("month must be between 1 and 12")
	ErrInvalidDay     = errors.New("day does not exist in month")
)

// DefaultCacheTTL is used when Options.TTL is not set.
const DefaultCacheTTL = 24 * time.Hour

// Options configures a Calendar. Catalog is required; a nil Cache selects
// an in-process cache.
type Options struct {
	Catalog *i18n.Catalog
	Cache   cache.Cache
	TTL     time.Duration
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Calendar answers year, month and saint queries with labels resolved in
// the requested language. It is safe for concurrent use.
type Calendar struct {
	catalog *i18n.Catalog
	cache   cache.Cache
	ttl     time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	group   singleflight.Group
	now     func() time.Time
}

// New builds a Calendar from opts.
func New(opts Options) *Calendar {
	c := &Calendar{
		catalog: opts.Catalog,
		cache:   opts.Cache,
		ttl:     opts.TTL,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		now:     time.Now,
	}
	if c.cache == nil {
		c.cache = cache.NewMemory()
	}
	if c.ttl <= 0 {
		c.ttl = DefaultCacheTTL
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// ValidateYear returns ErrYearOutOfRange for years the algorithms do not
// cover.
func ValidateYear(year int) error {
	if year < calendar.MinYear || year > calendar.MaxYear {
		return ErrYearOutOfRange
	}
	return nil
}

// Languages lists the languages labels can be resolved in.
func (c *Calendar) Languages() []i18n.Language {
	return c.catalog.Languages()
}

// Negotiate picks the response language from an explicit choice and an
// Accept-Language header.
func (c *Calendar) Negotiate(explicit, acceptLanguage string) string {
	return c.catalog.Negotiate(explicit, acceptLanguage)
}

// Holidays returns the feasts of year with labels in lang, sorted by date.
//
// Results are cached per year and language. Concurrent misses for the same
// key share one computation. A cache that fails to answer is logged and
// bypassed.
func (c *Calendar) Holidays(ctx context.Context, year int, lang string) ([]calendar.Holiday, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	tr := c.catalog.Translator(lang)
	key := holidaysKey(year, tr.Lang())

	if hs, ok := c.cachedHolidays(ctx, key); ok {
		return hs, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		hs := calendar.HolidaysForYear(tr, year)
		c.metrics.IncrementYearsComputed()

		data, err := json.Marshal(hs)
		if err != nil {
			return nil, fmt.Errorf("encode holidays: %w", err)
		}
		if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
			c.logger.WarnContext(ctx, "cache write failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return hs, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers sharing a flight get the same slice; hand each its own.
	hs := v.([]calendar.Holiday)
	return slices.Clone(hs), nil
}

func (c *Calendar) cachedHolidays(ctx context.Context, key string) ([]calendar.Holiday, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		c.metrics.CacheError()
		c.logger.WarnContext(ctx, "cache read failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return nil, false
	case !ok:
		c.metrics.CacheMiss()
		return nil, false
	}

	var hs []calendar.Holiday
	if err := json.Unmarshal(data, &hs); err != nil {
		c.metrics.CacheError()
		c.logger.WarnContext(ctx, "discarding undecodable cache entry",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return nil, false
	}
	c.metrics.CacheHit()
	return hs, true
}

func holidaysKey(year int, lang string) string {
	return "holidays:" + strconv.Itoa(year) + ":" + lang
}
