// Package adapters はpostsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	commententity "blog_backend/internal/feature/comments/domain/entity"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/feature/posts/usecase"
	"blog_backend/internal/shared/pagination"
)

// postRepository はPostRepositoryインターフェースのGORM実装です。
type postRepository struct {
	db *gorm.DB
}

var _ usecase.PostRepository = (*postRepository)(nil)

// NewPostRepository はpostRepositoryの新しいインスタンスを生成します。
func NewPostRepository(db *gorm.DB) *postRepository {
	return &postRepository{db: db}
}

// Create は投稿をデータベースに追加します。
func (r *postRepository) Create(ctx context.Context, p *entity.Post) error {
	return r.db.WithContext(ctx).Omit("Creator", "Comments").Create(p).Error
}

// FindByID はIDで投稿を取得します。
func (r *postRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var p entity.Post
	if err := r.db.WithContext(ctx).Preload("Creator").Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrPostNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List はフィルタに一致する投稿をID降順で取得します。
func (r *postRepository) List(ctx context.Context, filter usecase.Filter, page pagination.Page) ([]*entity.Post, error) {
	q := r.db.WithContext(ctx).Preload("Creator").Order("id DESC")
	if filter.Title != "" {
		q = q.Where("title = ?", filter.Title)
	}
	if filter.Body != "" {
		q = q.Where("body = ?", filter.Body)
	}

	var posts []*entity.Post
	if err := q.Limit(page.Limit).Offset(page.Offset()).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Update はタイトルと本文を更新します。
func (r *postRepository) Update(ctx context.Context, id uint, title, body string) error {
	res := r.db.WithContext(ctx).Model(&entity.Post{}).Where("id = ?", id).
		Updates(map[string]any{"title": title, "body": body})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrPostNotFound
	}
	return nil
}

// Delete は投稿とそのコメントを1トランザクションで削除します。
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&commententity.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&entity.Post{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrPostNotFound
		}
		return nil
	})
}

// Exists reports whether a post with id exists.
func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&entity.Post{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
