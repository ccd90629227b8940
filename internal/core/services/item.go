package services

import (
	"fraud-scoring-service/internal/core/domain"
)

type ItemService struct{}

func NewItemService() *ItemService {
	return &ItemService{}
}

func (s *ItemService) Get(id int, query *string) (*domain.Item, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidItemID
	}
	item := &domain.Item{ID: id}
	if query != nil && *query != "" {
		item.Query = query
	}
	return item, nil
}
