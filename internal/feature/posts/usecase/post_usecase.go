package usecase

import (
	"context"

	commententity "blog_backend/internal/feature/comments/domain/entity"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/shared/identity"
	"blog_backend/internal/shared/ownership"
	"blog_backend/internal/shared/pagination"
)

// Filter narrows a post listing to exact title and/or body matches. Empty fields match anything.
type Filter struct {
	Title string
	Body  string
}

// PostRepository は投稿エンティティの永続化層を抽象化します。
// 取得系メソッドはCreatorをプリロードした状態で返します。
type PostRepository interface {
	// Create は新しい投稿を永続化します。
	Create(ctx context.Context, post *entity.Post) error

	// FindByID はIDで投稿を取得します。存在しない場合はErrPostNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// List はフィルタに一致する投稿をID降順で返します。
	List(ctx context.Context, filter Filter, page pagination.Page) ([]*entity.Post, error)

	// Update はタイトルと本文を更新します。
	Update(ctx context.Context, id uint, title, body string) error

	// Delete は投稿とそのコメントをすべて削除します。
	Delete(ctx context.Context, id uint) error
}

// CommentReader loads the comments shown inside a post.
type CommentReader interface {
	ListByPosts(ctx context.Context, postIDs []uint) (map[uint][]*commententity.Comment, error)
}

// postUsecase は投稿のビジネスロジックを実装します。
type postUsecase struct {
	posts    PostRepository
	comments CommentReader
}

// NewPostUsecase はpostUsecaseの新しいインスタンスを生成します。
func NewPostUsecase(posts PostRepository, comments CommentReader) *postUsecase {
	return &postUsecase{posts: posts, comments: comments}
}

// List returns one page of posts, newest first, with their comments.
func (u *postUsecase) List(ctx context.Context, filter Filter, page pagination.Page) ([]*entity.Post, error) {
	posts, err := u.posts.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if err := u.attachComments(ctx, posts...); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get returns a post with its comments.
func (u *postUsecase) Get(ctx context.Context, id uint) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.attachComments(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Create stores a post written by actor.
func (u *postUsecase) Create(ctx context.Context, actor identity.Identity, title, body string) (*entity.Post, error) {
	post := &entity.Post{Title: title, Body: body, CreatorID: actor.ID}
	if err := u.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return u.Get(ctx, post.ID)
}

// Update replaces the title and body of a post owned by actor.
func (u *postUsecase) Update(ctx context.Context, actor identity.Identity, id uint, title, body string) (*entity.Post, error) {
	if _, err := ownership.Authorize(ctx, actor, u.loader(id)); err != nil {
		return nil, err
	}
	if err := u.posts.Update(ctx, id, title, body); err != nil {
		return nil, err
	}
	return u.Get(ctx, id)
}

// Delete removes a post owned by actor together with its comments.
func (u *postUsecase) Delete(ctx context.Context, actor identity.Identity, id uint) error {
	if _, err := ownership.Authorize(ctx, actor, u.loader(id)); err != nil {
		return err
	}
	return u.posts.Delete(ctx, id)
}

func (u *postUsecase) loader(id uint) func(context.Context) (*entity.Post, error) {
	return func(ctx context.Context) (*entity.Post, error) {
		return u.posts.FindByID(ctx, id)
	}
}

func (u *postUsecase) attachComments(ctx context.Context, posts ...*entity.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	byPost, err := u.comments.ListByPosts(ctx, ids)
	if err != nil {
		return err
	}
	for _, p := range posts {
		p.Comments = byPost[p.ID]
	}
	return nil
}
