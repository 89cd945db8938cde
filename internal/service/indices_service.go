package service

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/bcb"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/cache"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/valuation"
)

// FallbackIndexRates are used for previews when the central bank API cannot be reached.
var FallbackIndexRates = valuation.IndexRates{CDI: 14.50, SELIC: 14.75, IPCA: 4.83}

// FailureBackoff is how long a failed fetch is remembered. Until it passes,
// reads of that index fail fast with the same error.
const FailureBackoff = time.Minute

// IndicesService serves central bank index series through a TTL cache.
// Concurrent misses for one index share a single upstream fetch.
type IndicesService struct {
	client   bcb.Client
	cache    *cache.TTL[[]bcb.Observation]
	failures *cache.TTL[error]
	flights  singleflight.Group
	now      Clock
}

// NewIndicesService creates a new IndicesService. The cache is owned by the caller.
func NewIndicesService(client bcb.Client, c *cache.TTL[[]bcb.Observation]) *IndicesService {
	return &IndicesService{
		client:   client,
		cache:    c,
		failures: cache.NewTTL[error](FailureBackoff),
		now:      time.Now,
	}
}

// WithClock replaces the clock used to pick the history windows and to
// expire failed fetches.
func (s *IndicesService) WithClock(now Clock) *IndicesService {
	s.now = now
	s.failures.WithClock(now)
	return s
}

func (s *IndicesService) cached(name string) ([]bcb.Observation, bool, error) {
	if obs, ok := s.cache.Get(name); ok {
		return obs, true, nil
	}
	if err, ok := s.failures.Get(name); ok {
		return nil, true, err
	}
	return nil, false, nil
}

func (s *IndicesService) observations(ctx context.Context, series bcb.Series) ([]bcb.Observation, error) {
	if obs, hit, err := s.cached(series.Name); hit {
		return obs, err
	}

	flight := s.flights.DoChan(series.Name, func() (any, error) {
		// A flight that finished between the check above and this one already stored its result.
		if obs, hit, err := s.cached(series.Name); hit {
			return obs, err
		}
		// Shared by every waiter, so one caller's cancellation must not fail the rest.
		obs, err := bcb.FetchHistory(context.WithoutCancel(ctx), s.client, series, s.now())
		if err != nil {
			s.failures.Set(series.Name, err)
			return nil, err
		}
		s.cache.Set(series.Name, obs)
		return obs, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-flight:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]bcb.Observation), nil
	}
}

func lookupSeries(name string) (bcb.Series, error) {
	series, ok := bcb.Lookup(name)
	if !ok {
		return bcb.Series{}, apperrors.ErrUnknownIndex
	}
	return series, nil
}

// GetSeries returns the full history of the named index.
// Returns apperrors.ErrUnknownIndex for unsupported names.
func (s *IndicesService) GetSeries(ctx context.Context, name string) (model.IndexSeries, error) {
	series, err := lookupSeries(name)
	if err != nil {
		return model.IndexSeries{}, err
	}

	obs, err := s.observations(ctx, series)
	if err != nil {
		return model.IndexSeries{}, err
	}

	data := make([]model.IndexObservation, len(obs))
	for i, o := range obs {
		data[i] = model.IndexObservation{Date: o.Date, Value: o.Value}
	}
	return model.IndexSeries{Index: series.Name, Data: data}, nil
}

// GetYearly returns the compounded change of the named index per calendar year.
func (s *IndicesService) GetYearly(ctx context.Context, name string) ([]model.IndexYear, error) {
	series, err := lookupSeries(name)
	if err != nil {
		return nil, err
	}

	obs, err := s.observations(ctx, series)
	if err != nil {
		return nil, err
	}

	changes := bcb.YearlyCompounded(obs)
	years := make([]model.IndexYear, len(changes))
	for i, c := range changes {
		years[i] = model.IndexYear{Year: c.Year, Percent: c.Percent}
	}
	return years, nil
}

// GetOverview returns the latest annualized level of every supported index,
// fetching them concurrently.
func (s *IndicesService) GetOverview(ctx context.Context) ([]model.IndexOverview, error) {
	names := bcb.Names()
	out := make([]model.IndexOverview, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			series, _ := bcb.Lookup(name)
			obs, err := s.observations(ctx, series)
			if err != nil {
				return err
			}
			out[i] = overview(series, obs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func overview(series bcb.Series, obs []bcb.Observation) model.IndexOverview {
	o := model.IndexOverview{
		Index:       series.Name,
		Periodicity: string(series.Periodicity),
		Display:     "—",
	}
	last, annual, ok := bcb.Latest(obs, series.Periodicity)
	if !ok {
		return o
	}
	o.LastDate = last.Date
	o.LastValue = bcb.ParseValue(last.Value)
	o.Annualized = round(annual)
	o.Display = decimal.NewFromFloat(annual).StringFixed(2) + "% a.a."
	return o
}

// LatestRates returns the annualized CDI, SELIC and IPCA levels used to quote
// index-linked rates. When an index cannot be loaded its fallback value is used.
func (s *IndicesService) LatestRates(ctx context.Context) valuation.IndexRates {
	rates := FallbackIndexRates
	for name, dst := range map[string]*float64{"cdi": &rates.CDI, "selic": &rates.SELIC, "ipca": &rates.IPCA} {
		series, _ := bcb.Lookup(name)
		obs, err := s.observations(ctx, series)
		if err != nil {
			log.Printf("Using fallback rate for %s: %v", name, err)
			continue
		}
		if _, annual, ok := bcb.Latest(obs, series.Periodicity); ok {
			*dst = annual
		}
	}
	return rates
}

// Refresh reloads every index from the API and replaces the cached copies.
// Indices that fail keep their previous cache entry.
func (s *IndicesService) Refresh(ctx context.Context) error {
	var failed []string
	var firstErr error
	for _, name := range bcb.Names() {
		series, _ := bcb.Lookup(name)
		obs, err := bcb.FetchHistory(ctx, s.client, series, s.now())
		if err != nil {
			failed = append(failed, name)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		s.cache.Set(series.Name, obs)
		s.failures.Delete(series.Name)
	}
	if firstErr != nil {
		log.Printf("Index refresh failed for %v", failed)
		return firstErr
	}
	return nil
}
