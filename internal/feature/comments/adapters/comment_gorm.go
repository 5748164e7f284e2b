// Package adapters はcommentsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blog_backend/internal/feature/comments/domain/entity"
	"blog_backend/internal/feature/comments/usecase"
	"blog_backend/internal/shared/pagination"
)

// commentRepository はCommentRepositoryインターフェースのGORM実装です。
type commentRepository struct {
	db *gorm.DB
}

var _ usecase.CommentRepository = (*commentRepository)(nil)

// NewCommentRepository はcommentRepositoryの新しいインスタンスを生成します。
func NewCommentRepository(db *gorm.DB) *commentRepository {
	return &commentRepository{db: db}
}

// withRelations preloads the author and direct replies of each comment.
func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Creator").Preload("Responses", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

// Create はコメントをデータベースに追加します。
func (r *commentRepository) Create(ctx context.Context, c *entity.Comment) error {
	return r.db.WithContext(ctx).Omit("Creator", "Responses").Create(c).Error
}

// FindByID はIDでコメントを取得します。
func (r *commentRepository) FindByID(ctx context.Context, id uint) (*entity.Comment, error) {
	var c entity.Comment
	if err := withRelations(r.db.WithContext(ctx)).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrCommentNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByPost は投稿のコメントをID昇順で取得します。
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, page pagination.Page) ([]*entity.Comment, error) {
	var comments []*entity.Comment
	err := withRelations(r.db.WithContext(ctx)).
		Where("post_id = ?", postID).
		Order("id").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// ListByPosts は複数投稿のコメントを1クエリで取得し、投稿IDごとにまとめます。
func (r *commentRepository) ListByPosts(ctx context.Context, postIDs []uint) (map[uint][]*entity.Comment, error) {
	out := make(map[uint][]*entity.Comment, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var comments []*entity.Comment
	err := withRelations(r.db.WithContext(ctx)).
		Where("post_id IN ?", postIDs).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	for _, c := range comments {
		out[c.PostID] = append(out[c.PostID], c)
	}
	return out, nil
}

// DeleteSubtree はコメントと全ての返信を1トランザクションで削除し、削除件数を返します。
func (r *commentRepository) DeleteSubtree(ctx context.Context, id uint) (int, error) {
	var deleted int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids, err := entity.Subtree(id, func(parents []uint) ([]uint, error) {
			var children []uint
			err := tx.Model(&entity.Comment{}).Where("parent_id IN ?", parents).Order("id").Pluck("id", &children).Error
			return children, err
		})
		if err != nil {
			return err
		}

		res := tx.Where("id IN ?", ids).Delete(&entity.Comment{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrCommentNotFound
		}
		deleted = int(res.RowsAffected)
		return nil
	})
	return deleted, err
}
