package usecase

import (
	"context"

	commententity "blog_backend/internal/feature/comments/domain/entity"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/shared/pagination"
)

// mockPostRepository is a mock implementation of the PostRepository interface.
type mockPostRepository struct {
	CreateFunc   func(ctx context.Context, post *entity.Post) error
	FindByIDFunc func(ctx context.Context, id uint) (*entity.Post, error)
	ListFunc     func(ctx context.Context, filter Filter, page pagination.Page) ([]*entity.Post, error)
	UpdateFunc   func(ctx context.Context, id uint, title, body string) error
	DeleteFunc   func(ctx context.Context, id uint) error
}

func (m *mockPostRepository) Create(ctx context.Context, post *entity.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	post.ID = 1
	return nil
}

func (m *mockPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrPostNotFound
}

func (m *mockPostRepository) List(ctx context.Context, filter Filter, page pagination.Page) ([]*entity.Post, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter, page)
	}
	return nil, nil
}

func (m *mockPostRepository) Update(ctx context.Context, id uint, title, body string) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, title, body)
	}
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockCommentReader is a mock implementation of the CommentReader interface.
type mockCommentReader struct {
	ListByPostsFunc func(ctx context.Context, postIDs []uint) (map[uint][]*commententity.Comment, error)
}

func (m *mockCommentReader) ListByPosts(ctx context.Context, postIDs []uint) (map[uint][]*commententity.Comment, error) {
	if m.ListByPostsFunc != nil {
		return m.ListByPostsFunc(ctx, postIDs)
	}
	return map[uint][]*commententity.Comment{}, nil
}
