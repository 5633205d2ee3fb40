package services

import (
	"context"
	"time"

	"github.com/alimgiray/demography/internal/metrics"
	"github.com/alimgiray/demography/internal/models"
	"github.com/alimgiray/demography/internal/query"
)

// QueryService answers filtered, sorted and paginated person lookups.
// List and Count compile filters the same way, so for any filters f
// Count(f) equals len(List(f, any sort, page 0, size Count(f))).
type QueryService struct {
	store   PersonStore
	metrics *metrics.Metrics
}

// NewQueryService runs lookups against store; m may be nil
func NewQueryService(store PersonStore, m *metrics.Metrics) *QueryService {
	return &QueryService{
		store:   store,
		metrics: m,
	}
}

// List returns the page of persons matching filters in the order given by
// the sort directives
func (s *QueryService) List(ctx context.Context, filters query.Filters, sort []string, page query.Page) ([]*models.Person, error) {
	defer s.metrics.ObserveQuery("list", time.Now())

	return s.store.Find(ctx, query.Compile(filters), query.ResolveSort(sort), page)
}

// ListAll returns every person matching filters in sort order, unpaged
func (s *QueryService) ListAll(ctx context.Context, filters query.Filters, sort []string) ([]*models.Person, error) {
	defer s.metrics.ObserveQuery("list_all", time.Now())

	return s.store.FindAll(ctx, query.Compile(filters), query.ResolveSort(sort))
}

// Count returns how many persons match filters
func (s *QueryService) Count(ctx context.Context, filters query.Filters) (int64, error) {
	defer s.metrics.ObserveQuery("count", time.Now())

	return s.store.Count(ctx, query.Compile(filters))
}
