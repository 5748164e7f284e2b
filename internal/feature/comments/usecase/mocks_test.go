package usecase

import (
	"context"

	"blog_backend/internal/feature/comments/domain/entity"
	"blog_backend/internal/shared/pagination"
)

// mockCommentRepository is a mock implementation of the CommentRepository interface.
type mockCommentRepository struct {
	CreateFunc        func(ctx context.Context, comment *entity.Comment) error
	FindByIDFunc      func(ctx context.Context, id uint) (*entity.Comment, error)
	ListByPostFunc    func(ctx context.Context, postID uint, page pagination.Page) ([]*entity.Comment, error)
	ListByPostsFunc   func(ctx context.Context, postIDs []uint) (map[uint][]*entity.Comment, error)
	DeleteSubtreeFunc func(ctx context.Context, id uint) (int, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	comment.ID = 1
	return nil
}

func (m *mockCommentRepository) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrCommentNotFound
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID uint, page pagination.Page) ([]*entity.Comment, error) {
	if m.ListByPostFunc != nil {
		return m.ListByPostFunc(ctx, postID, page)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListByPosts(ctx context.Context, postIDs []uint) (map[uint][]*entity.Comment, error) {
	if m.ListByPostsFunc != nil {
		return m.ListByPostsFunc(ctx, postIDs)
	}
	return map[uint][]*entity.Comment{}, nil
}

func (m *mockCommentRepository) DeleteSubtree(ctx context.Context, id uint) (int, error) {
	if m.DeleteSubtreeFunc != nil {
		return m.DeleteSubtreeFunc(ctx, id)
	}
	return 1, nil
}

// stubPosts reports every id in the set as an existing post.
type stubPosts struct {
	ids map[uint]bool
	err error
}

func (s stubPosts) Exists(_ context.Context, id uint) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.ids[id], nil
}
