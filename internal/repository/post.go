package repository

import (
	"context"

	"microblog/internal/domain"
)

// PostRepository exposes persistence operations for Post entities.
// Get and List join the author row so AuthorName is populated.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, id int64, title, body string) error
	Delete(ctx context.Context, id int64) error
}
