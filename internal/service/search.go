package service

import (
	"context"

	"github.com/Skotchmaster/marketplace/internal/es"
)

type SearchService struct {
	Index ProductSearcher
}

func (s *SearchService) Search(ctx context.Context, query string) (int64, []es.Document, error) {
	if s.Index == nil {
		return 0, nil, ErrSearchUnavailable
	}
	if query == "" {
		return 0, nil, es.ErrEmptyQuery
	}
	return s.Index.Search(ctx, query)
}
