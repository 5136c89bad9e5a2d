package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"

	widgetspec "github.com/goliatone/go-timedash/components/widgetspec"
)

const (
	defaultBaseURL = "https://date.nager.at/api/v3"
	defaultTTL     = time.Hour
)

// Holiday is one public holiday as reported by the upstream API.
type Holiday struct {
	Date      string `json:"date"` // YYYY-MM-DD
	LocalName string `json:"localName"`
	Name      string `json:"name"`
	Country   string `json:"countryCode"`
}

// Options configures the holiday service.
type Options struct {
	BaseURL string
	TTL     time.Duration
	Client  *http.Client
	Logger  *slog.Logger
	// Now overrides the clock; used by tests.
	Now func() time.Time
}

// Service caches upcoming holidays per country. Lookups always serve from
// cache; a miss triggers an async refresh so the render path never blocks on
// the network.
type Service struct {
	baseURL string
	ttl     time.Duration
	client  *http.Client
	logger  *slog.Logger
	now     func() time.Time

	cache    *otter.Cache[string, []Holiday]
	inflight sync.Map // country -> struct{}
}

// New creates a holiday service with safe defaults.
func New(opts Options) *Service {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	cache := otter.Must(&otter.Options[string, []Holiday]{
		MaximumSize:      1_000,
		ExpiryCalculator: otter.ExpiryWriting[string, []Holiday](opts.TTL),
	})
	return &Service{
		baseURL: opts.BaseURL,
		ttl:     opts.TTL,
		client:  opts.Client,
		logger:  opts.Logger,
		now:     opts.Now,
		cache:   cache,
	}
}

var _ widgetspec.HolidayLookup = (*Service)(nil)

// NextHoliday returns the nearest upcoming holiday for a country, or nil
// when nothing is cached yet. Misses kick off a background refresh.
func (s *Service) NextHoliday(countryCode string) *widgetspec.UpcomingHoliday {
	if countryCode == "" {
		return nil
	}
	countryCode = strings.ToUpper(countryCode)
	holidays, ok := s.cache.GetIfPresent(countryCode)
	if !ok {
		s.refreshAsync(countryCode)
		return nil
	}
	return s.pickNext(holidays)
}

// Prefetch warms the cache for the given countries, blocking until done.
func (s *Service) Prefetch(ctx context.Context, countries ...string) error {
	for _, country := range countries {
		country := strings.ToUpper(country)
		if _, ok := s.cache.GetIfPresent(country); ok {
			continue
		}
		holidays, err := s.fetch(ctx, country)
		if err != nil {
			return err
		}
		s.cache.Set(country, holidays)
	}
	return nil
}

func (s *Service) pickNext(holidays []Holiday) *widgetspec.UpcomingHoliday {
	now := s.now()
	var best *widgetspec.UpcomingHoliday
	for _, holiday := range holidays {
		date, err := time.Parse("2006-01-02", holiday.Date)
		if err != nil {
			continue
		}
		// Ceil so a holiday later today counts as 0 and tomorrow's as 1.
		days := int(math.Ceil(date.Sub(now).Hours() / 24))
		if days < 0 {
			continue
		}
		if best == nil || days < best.DaysUntil {
			name := holiday.Name
			if holiday.LocalName != "" {
				name = holiday.LocalName
			}
			best = &widgetspec.UpcomingHoliday{Name: name, DaysUntil: days}
		}
	}
	return best
}

// refreshAsync fetches holidays for a country off the render path. At most
// one fetch per country runs at a time.
func (s *Service) refreshAsync(countryCode string) {
	if _, loaded := s.inflight.LoadOrStore(countryCode, struct{}{}); loaded {
		return
	}
	go func() {
		defer s.inflight.Delete(countryCode)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		holidays, err := s.fetch(ctx, countryCode)
		if err != nil {
			s.logger.Warn("holiday refresh failed", "country", countryCode, "error", err)
			return
		}
		s.cache.Set(countryCode, holidays)
		s.logger.Debug("holiday cache refreshed", "country", countryCode, "count", len(holidays))
	}()
}

func (s *Service) fetch(ctx context.Context, countryCode string) ([]Holiday, error) {
	year := s.now().Year()
	current, err := s.fetchYear(ctx, countryCode, year)
	if err != nil {
		return nil, err
	}
	// Year-end needs next year's holidays for the countdown to stay correct.
	next, err := s.fetchYear(ctx, countryCode, year+1)
	if err != nil {
		s.logger.Debug("next-year holiday fetch failed", "country", countryCode, "error", err)
		return current, nil
	}
	return append(current, next...), nil
}

func (s *Service) fetchYear(ctx context.Context, countryCode string, year int) ([]Holiday, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", s.baseURL, year, countryCode)

	var body []byte
	err := retry.Do(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if reqErr != nil {
				return reqErr
			}
			resp, doErr := s.client.Do(req)
			if doErr != nil {
				return doErr
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("holidays: %s returned %d", url, resp.StatusCode)
			}
			body, reqErr = io.ReadAll(resp.Body)
			return reqErr
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("retrying holiday fetch", "attempt", n+1, "url", url, "error", err)
		}),
	)
	if err != nil {
		return nil, err
	}

	var holidays []Holiday
	if err := json.Unmarshal(body, &holidays); err != nil {
		return nil, fmt.Errorf("holidays: decode %s: %w", url, err)
	}
	return holidays, nil
}
