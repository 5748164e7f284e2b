package usecase

import (
	"context"
	"errors"

	"blog_backend/internal/feature/comments/domain/entity"
	"blog_backend/internal/shared/identity"
	"blog_backend/internal/shared/ownership"
	"blog_backend/internal/shared/pagination"
)

// CommentRepository はコメントエンティティの永続化層を抽象化します。
// 取得系メソッドはCreatorとResponsesをプリロードした状態で返します。
type CommentRepository interface {
	// Create は新しいコメントを永続化します。
	Create(ctx context.Context, comment *entity.Comment) error

	// FindByID はIDでコメントを取得します。存在しない場合はErrCommentNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Comment, error)

	// ListByPost は投稿のコメントをID昇順で返します。
	ListByPost(ctx context.Context, postID uint, page pagination.Page) ([]*entity.Comment, error)

	// ListByPosts は複数投稿のコメントを投稿IDごとにID昇順で返します。
	ListByPosts(ctx context.Context, postIDs []uint) (map[uint][]*entity.Comment, error)

	// DeleteSubtree はコメントとその返信をすべて削除します。
	DeleteSubtree(ctx context.Context, id uint) (int, error)
}

// PostLookup reports whether a post exists.
type PostLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// commentUsecase はコメントのビジネスロジックを実装します。
type commentUsecase struct {
	comments CommentRepository
	posts    PostLookup
}

// NewCommentUsecase はcommentUsecaseの新しいインスタンスを生成します。
func NewCommentUsecase(comments CommentRepository, posts PostLookup) *commentUsecase {
	return &commentUsecase{comments: comments, posts: posts}
}

// Create adds a comment by actor to a post, optionally as a reply to parentID.
func (u *commentUsecase) Create(ctx context.Context, actor identity.Identity, postID uint, body string, parentID *uint) (*entity.Comment, error) {
	if err := u.requirePost(ctx, postID); err != nil {
		return nil, err
	}

	if parentID != nil {
		parent, err := u.comments.FindByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, ErrCommentNotFound) {
				return nil, ErrInvalidParent
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, ErrInvalidParent
		}
	}

	comment := &entity.Comment{
		Body:      body,
		CreatorID: actor.ID,
		PostID:    postID,
		ParentID:  parentID,
	}
	if err := u.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return u.comments.FindByID(ctx, comment.ID)
}

// List returns one page of a post's comments, oldest first.
func (u *commentUsecase) List(ctx context.Context, postID uint, page pagination.Page) ([]*entity.Comment, error) {
	if err := u.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	return u.comments.ListByPost(ctx, postID, page)
}

// ListByPosts returns the comments of several posts keyed by post id.
func (u *commentUsecase) ListByPosts(ctx context.Context, postIDs []uint) (map[uint][]*entity.Comment, error) {
	return u.comments.ListByPosts(ctx, postIDs)
}

// Delete removes a comment owned by actor and every reply below it.
func (u *commentUsecase) Delete(ctx context.Context, actor identity.Identity, id uint) error {
	_, err := ownership.Authorize(ctx, actor, func(ctx context.Context) (*entity.Comment, error) {
		return u.comments.FindByID(ctx, id)
	})
	if err != nil {
		return err
	}
	_, err = u.comments.DeleteSubtree(ctx, id)
	return err
}

func (u *commentUsecase) requirePost(ctx context.Context, postID uint) error {
	ok, err := u.posts.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPostNotFound
	}
	return nil
}
