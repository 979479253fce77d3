// Package catalog combines the directory API with the local response cache.
// It owns the cache namespaces, the startup fan-out and the lookups the CLI
// and the TUI share.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/Spruttybangbang/aim25s-website/internal/api"
	"github.com/Spruttybangbang/aim25s-website/internal/core/directory"
	"github.com/Spruttybangbang/aim25s-website/internal/core/kv"
)

// Cache namespaces.
const (
	NamespaceColumns       = "columns"
	NamespaceFilterOptions = "filter-options"
	NamespaceBattery       = "battery"

	batteryKey = "total"
	optionsKey = "all"
)

// LuckyPageSize is the page size fetched for a random pick.
const LuckyPageSize = 1000

var (
	// ErrNoCompanies is returned by Lucky when the directory is empty.
	ErrNoCompanies = errors.New("inga företag att välja bland")
	// ErrCompanyNotFound is returned by FindCompany when no page holds the id.
	ErrCompanyNotFound = errors.New("företaget hittades inte")
)

// Directory is the subset of the API client the catalog uses.
type Directory interface {
	ListCompanies(ctx context.Context, q directory.Query) (api.CompanyPage, error)
	ListColumns(ctx context.Context, device directory.Device) ([]directory.Column, error)
	ListFilterOptions(ctx context.Context) (directory.Options, error)
	DatabaseStats(ctx context.Context) (directory.DatabaseStats, error)
	SubmitErrorReport(ctx context.Context, r directory.ErrorReport) (api.SubmitResult, error)
	SubmitSuggestion(ctx context.Context, s directory.Suggestion) (api.SubmitResult, error)
}

// Service serves directory reads through the cache.
type Service struct {
	api   Directory
	store kv.KV
	log   zerolog.Logger

	columns *kv.TypedKV[[]directory.Column]
	options *kv.TypedKV[directory.Options]
	battery *kv.TypedKV[int]
}

// New returns a Service. A nil store or a non-positive ttl disables caching.
func New(client Directory, store kv.KV, ttl time.Duration, log zerolog.Logger) *Service {
	s := &Service{api: client, log: log}
	if store != nil && ttl > 0 {
		s.store = store
		s.columns = kv.Scoped[[]directory.Column](store, NamespaceColumns, ttl)
		s.options = kv.Scoped[directory.Options](store, NamespaceFilterOptions, ttl)
		s.battery = kv.Scoped[int](store, NamespaceBattery, ttl)
	}
	return s
}

// Cached reports whether responses are cached locally.
func (s *Service) Cached() bool {
	return s.store != nil
}

// cached returns the value under key, or calls fetch and stores the result.
// Cache failures are logged and never fail the read.
func cached[T any](ctx context.Context, s *Service, ns *kv.TypedKV[T], key string, fetch func(context.Context) (T, error)) (T, error) {
	if ns != nil {
		v, err := ns.Get(ctx, key)
		if err == nil {
			return v, nil
		}
		if !kv.IsNotFound(err) {
			s.log.Warn().Err(err).Str("key", ns.Namespace()+key).Msg("cache read failed")
		}
	}

	v, err := fetch(ctx)
	if err != nil {
		return v, err
	}

	if ns != nil {
		if err := ns.Put(ctx, key, v); err != nil {
			s.log.Warn().Err(err).Str("key", ns.Namespace()+key).Msg("cache write failed")
		}
	}
	return v, nil
}

// Columns returns the column descriptors for a device.
func (s *Service) Columns(ctx context.Context, device directory.Device) ([]directory.Column, error) {
	cols, err := cached(ctx, s, s.columns, string(device), func(ctx context.Context) ([]directory.Column, error) {
		return s.api.ListColumns(ctx, device)
	})
	if err != nil {
		return nil, fmt.Errorf("columns for %s: %w", device, err)
	}
	return directory.SortColumns(cols), nil
}

// FilterOptions returns the enumerated filter values.
func (s *Service) FilterOptions(ctx context.Context) (directory.Options, error) {
	opts, err := cached(ctx, s, s.options, optionsKey, s.api.ListFilterOptions)
	if err != nil {
		return directory.Options{}, fmt.Errorf("filter options: %w", err)
	}
	return opts, nil
}

// BatteryTotal returns the unfiltered company total, fetching a one-row
// unfiltered page when the cache has none.
func (s *Service) BatteryTotal(ctx context.Context) (int, error) {
	total, err := cached(ctx, s, s.battery, batteryKey, func(ctx context.Context) (int, error) {
		page, err := s.api.ListCompanies(ctx, directory.Query{Page: 1, PerPage: 1})
		if err != nil {
			return 0, err
		}
		return page.Total, nil
	})
	if err != nil {
		return 0, fmt.Errorf("battery total: %w", err)
	}
	return total, nil
}

// Companies fetches one page of the listing. Pages are never cached, but an
// unfiltered response refreshes the battery total.
func (s *Service) Companies(ctx context.Context, q directory.Query) (api.CompanyPage, error) {
	page, err := s.api.ListCompanies(ctx, q)
	if err != nil {
		return api.CompanyPage{}, err
	}

	if !q.Filtered() && s.battery != nil {
		has, err := s.battery.Has(ctx, batteryKey)
		if err == nil && !has {
			if err := s.battery.Put(ctx, batteryKey, page.Total); err != nil {
				s.log.Warn().Err(err).Msg("cache battery total")
			}
		}
	}
	return page, nil
}

// ForgetBattery drops the cached total so the next unfiltered load recaptures it.
func (s *Service) ForgetBattery(ctx context.Context) error {
	if s.battery == nil {
		return nil
	}
	return s.battery.Delete(ctx, batteryKey)
}

// Stats returns the aggregate statistics. They are not cached.
func (s *Service) Stats(ctx context.Context) (directory.DatabaseStats, error) {
	stats, err := s.api.DatabaseStats(ctx)
	if err != nil {
		return directory.DatabaseStats{}, fmt.Errorf("database stats: %w", err)
	}
	return stats, nil
}

// SubmitErrorReport validates and sends an error report.
func (s *Service) SubmitErrorReport(ctx context.Context, r directory.ErrorReport) (api.SubmitResult, error) {
	if err := r.Validate(); err != nil {
		return api.SubmitResult{}, err
	}
	return s.api.SubmitErrorReport(ctx, r)
}

// SubmitSuggestion validates and sends a new-company suggestion.
func (s *Service) SubmitSuggestion(ctx context.Context, sg directory.Suggestion) (api.SubmitResult, error) {
	if err := sg.Validate(); err != nil {
		return api.SubmitResult{}, err
	}
	return s.api.SubmitSuggestion(ctx, sg)
}

// Bootstrap is the startup data shown before the first listing arrives.
type Bootstrap struct {
	Columns      []directory.Column
	Options      directory.Options
	BatteryTotal int
}

// Bootstrap loads columns, filter options and the battery total in
// parallel. The first failure cancels the remaining reads.
func (s *Service) Bootstrap(ctx context.Context, device directory.Device) (Bootstrap, error) {
	var out Bootstrap

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cols, err := s.Columns(gctx, device)
		out.Columns = cols
		return err
	})
	g.Go(func() error {
		opts, err := s.FilterOptions(gctx)
		out.Options = opts
		return err
	})
	g.Go(func() error {
		total, err := s.BatteryTotal(gctx)
		out.BatteryTotal = total
		return err
	})

	if err := g.Wait(); err != nil {
		return out, fmt.Errorf("bootstrap: %w", err)
	}
	return out, nil
}

// Lucky picks a uniformly random company from an unfiltered page of
// LuckyPageSize companies.
func (s *Service) Lucky(ctx context.Context, rng *rand.Rand) (directory.Company, error) {
	page, err := s.api.ListCompanies(ctx, directory.Query{Page: 1, PerPage: LuckyPageSize})
	if err != nil {
		return directory.Company{}, fmt.Errorf("lucky: %w", err)
	}
	if len(page.Companies) == 0 {
		return directory.Company{}, ErrNoCompanies
	}

	var i int
	if rng != nil {
		i = rng.IntN(len(page.Companies))
	} else {
		i = rand.IntN(len(page.Companies))
	}
	return page.Companies[i], nil
}

// FindCompany pages through the unfiltered listing until a company with id
// is found. There is no single-company endpoint.
func (s *Service) FindCompany(ctx context.Context, id int64, perPage int) (directory.Company, error) {
	if perPage <= 0 {
		perPage = LuckyPageSize
	}

	for page, total := 1, 1; page <= total; page++ {
		p, err := s.api.ListCompanies(ctx, directory.Query{Page: page, PerPage: perPage})
		if err != nil {
			return directory.Company{}, fmt.Errorf("find company %d: %w", id, err)
		}
		for _, c := range p.Companies {
			if c.ID == id {
				return c, nil
			}
		}
		total = p.TotalPages
	}

	return directory.Company{}, fmt.Errorf("%w: id %d", ErrCompanyNotFound, id)
}

// CacheEntries returns the live cache entries in key order.
func (s *Service) CacheEntries(ctx context.Context) ([]kv.Entry, error) {
	if s.store == nil {
		return nil, nil
	}

	keys, err := s.store.ListKeys(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]kv.Entry, 0, len(keys))
	for _, k := range keys {
		e, err := s.store.GetRaw(ctx, k)
		if kv.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ClearCache deletes every cached response and returns how many were removed.
func (s *Service) ClearCache(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	n, err := s.store.Clear(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	s.log.Info().Int64("removed", n).Msg("cache cleared")
	return n, nil
}
