package service

import (
	"context"

	"microblog/internal/domain"
	"microblog/internal/repository"
)

// PostService coordinates post operations and enforces authorship.
type PostService interface {
	Create(ctx context.Context, author *domain.User, title, body string) (*domain.Post, error)
	// Get fetches a post joined with its author's username. With
	// enforceOwnership set it fails with ErrNotOwner unless current is the
	// author; without it any viewer, including an anonymous one, may read.
	Get(ctx context.Context, id int64, current *domain.User, enforceOwnership bool) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, id int64, current *domain.User, title, body string) error
	Delete(ctx context.Context, id int64, current *domain.User) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, author *domain.User, title, body string) (*domain.Post, error) {
	if title == "" {
		return nil, &ValidationError{Field: "title"}
	}

	post := &domain.Post{
		Title:      title,
		Body:       body,
		AuthorID:   author.ID,
		AuthorName: author.Username,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id int64, current *domain.User, enforceOwnership bool) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if enforceOwnership {
		if current == nil || post.AuthorID != current.ID {
			return nil, ErrNotOwner
		}
	}
	return post, nil
}

func (s *postService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

// Update rewrites title and body of the current user's own post. The post is
// fetched first so a missing post reports ErrNotFound and a foreign post
// ErrNotOwner before any validation runs.
func (s *postService) Update(ctx context.Context, id int64, current *domain.User, title, body string) error {
	if _, err := s.Get(ctx, id, current, true); err != nil {
		return err
	}
	if title == "" {
		return &ValidationError{Field: "title"}
	}
	return s.posts.Update(ctx, id, title, body)
}

func (s *postService) Delete(ctx context.Context, id int64, current *domain.User) error {
	if _, err := s.Get(ctx, id, current, true); err != nil {
		return err
	}
	return s.posts.Delete(ctx, id)
}
