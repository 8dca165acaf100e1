// Package catalog serves read-only product queries: list, get-by-id,
// get-by-category and text search. Product detail reads go through a Redis
// cache in front of the SQLite repository.
package catalog

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/singleflight"

	"github.com/mhnipu/smart-shopper-galaxy/internal/domain"
)

type Service struct {
	repo  RepoInterface
	cache ProductCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewService(repo RepoInterface, cache ProductCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// GetProduct returns the product with the given id, consulting the cache
// first. Concurrent misses for the same id collapse into one repository
// read. Cache failures are logged and fall through to the repository.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("catalog: cache get error: %v", err) // log cache error but continue
		}

		product, errGet := s.repo.GetProduct(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			if errSet := s.cache.Set(context.Background(), id, product); errSet != nil {
				log.Printf("catalog: cache set error: %v", errSet)
			}
		}()

		return product, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Product), nil
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	return s.repo.SearchProducts(ctx, query)
}

func (s *Service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}
