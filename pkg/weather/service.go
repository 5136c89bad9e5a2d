package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/maypok86/otter/v2"
)

const (
	defaultBaseURL = "https://api.open-meteo.com/v1"
	defaultTTL     = 15 * time.Minute
)

// Conditions is the current weather for one location.
type Conditions struct {
	TemperatureC float64   `json:"temperatureC"`
	WindSpeedKmh float64   `json:"windSpeedKmh"`
	Code         int       `json:"code"`
	ObservedAt   time.Time `json:"observedAt"`
}

// Location identifies a place by coordinates.
type Location struct {
	Latitude  float64
	Longitude float64
}

func (l Location) key() string {
	return fmt.Sprintf("%.2f,%.2f", l.Latitude, l.Longitude)
}

// Options configures the weather service.
type Options struct {
	BaseURL string
	TTL     time.Duration
	Client  *http.Client
	Logger  *slog.Logger
}

// Service caches current conditions per location. Lookups serve from cache
// and refresh in the background, mirroring the holiday service.
type Service struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger

	cache    *otter.Cache[string, Conditions]
	inflight sync.Map
}

// New creates a weather service with safe defaults.
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
	cache := otter.Must(&otter.Options[string, Conditions]{
		MaximumSize:      1_000,
		ExpiryCalculator: otter.ExpiryWriting[string, Conditions](opts.TTL),
	})
	return &Service{
		baseURL: opts.BaseURL,
		client:  opts.Client,
		logger:  opts.Logger,
		cache:   cache,
	}
}

// Current returns cached conditions for a location, or false when nothing is
// cached yet. Misses kick off a background refresh.
func (s *Service) Current(loc Location) (Conditions, bool) {
	key := loc.key()
	conditions, ok := s.cache.GetIfPresent(key)
	if !ok {
		s.refreshAsync(loc)
		return Conditions{}, false
	}
	return conditions, true
}

// Prefetch warms the cache for the given locations, blocking until done.
func (s *Service) Prefetch(ctx context.Context, locations ...Location) error {
	for _, loc := range locations {
		if _, ok := s.cache.GetIfPresent(loc.key()); ok {
			continue
		}
		conditions, err := s.fetch(ctx, loc)
		if err != nil {
			return err
		}
		s.cache.Set(loc.key(), conditions)
	}
	return nil
}

func (s *Service) refreshAsync(loc Location) {
	key := loc.key()
	if _, loaded := s.inflight.LoadOrStore(key, struct{}{}); loaded {
		return
	}
	go func() {
		defer s.inflight.Delete(key)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		conditions, err := s.fetch(ctx, loc)
		if err != nil {
			s.logger.Warn("weather refresh failed", "location", key, "error", err)
			return
		}
		s.cache.Set(key, conditions)
	}()
}

func (s *Service) fetch(ctx context.Context, loc Location) (Conditions, error) {
	url := fmt.Sprintf("%s/forecast?latitude=%.4f&longitude=%.4f&current_weather=true",
		s.baseURL, loc.Latitude, loc.Longitude)

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
				return fmt.Errorf("weather: %s returned %d", url, resp.StatusCode)
			}
			body, reqErr = io.ReadAll(resp.Body)
			return reqErr
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.OnRetry(func(n uint, err error) {
			s.logger.Debug("retrying weather fetch", "attempt", n+1, "url", url, "error", err)
		}),
	)
	if err != nil {
		return Conditions{}, err
	}

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
			WeatherCode int     `json:"weathercode"`
		} `json:"current_weather"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Conditions{}, fmt.Errorf("weather: decode %s: %w", url, err)
	}
	return Conditions{
		TemperatureC: payload.CurrentWeather.Temperature,
		WindSpeedKmh: payload.CurrentWeather.WindSpeed,
		Code:         payload.CurrentWeather.WeatherCode,
		ObservedAt:   time.Now(),
	}, nil
}
