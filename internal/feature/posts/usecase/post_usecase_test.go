package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commententity "blog_backend/internal/feature/comments/domain/entity"
	"blog_backend/internal/feature/posts/domain/entity"
	"blog_backend/internal/shared/identity"
	"blog_backend/internal/shared/ownership"
	"blog_backend/internal/shared/pagination"
)

var (
	alice = identity.Identity{ID: 1, Username: "alice", IsActive: true}
	bob   = identity.Identity{ID: 2, Username: "bob", IsActive: true}
)

// memPosts is a tiny in-memory PostRepository used where call order matters.
func memPosts(posts map[uint]*entity.Post) *mockPostRepository {
	var next uint = 100
	return &mockPostRepository{
		CreateFunc: func(_ context.Context, p *entity.Post) error {
			next++
			p.ID = next
			cp := *p
			posts[p.ID] = &cp
			return nil
		},
		FindByIDFunc: func(_ context.Context, id uint) (*entity.Post, error) {
			p, ok := posts[id]
			if !ok {
				return nil, ErrPostNotFound
			}
			cp := *p
			return &cp, nil
		},
		UpdateFunc: func(_ context.Context, id uint, title, body string) error {
			p, ok := posts[id]
			if !ok {
				return ErrPostNotFound
			}
			p.Title, p.Body = title, body
			return nil
		},
		DeleteFunc: func(_ context.Context, id uint) error {
			if _, ok := posts[id]; !ok {
				return ErrPostNotFound
			}
			delete(posts, id)
			return nil
		},
	}
}

func TestPostUsecase_List_AttachesComments(t *testing.T) {
	var gotFilter Filter
	var gotPage pagination.Page
	repo := &mockPostRepository{ListFunc: func(_ context.Context, f Filter, p pagination.Page) ([]*entity.Post, error) {
		gotFilter, gotPage = f, p
		return []*entity.Post{{ID: 3}, {ID: 2}, {ID: 1}}, nil
	}}
	comments := &mockCommentReader{ListByPostsFunc: func(_ context.Context, ids []uint) (map[uint][]*commententity.Comment, error) {
		assert.Equal(t, []uint{3, 2, 1}, ids, "one query for the whole page")
		return map[uint][]*commententity.Comment{
			3: {{ID: 30, PostID: 3}},
			1: {{ID: 10, PostID: 1}, {ID: 11, PostID: 1}},
		}, nil
	}}
	uc := NewPostUsecase(repo, comments)

	filter := Filter{Title: "t"}
	page := pagination.Page{Limit: 10, Number: 3}
	posts, err := uc.List(context.Background(), filter, page)

	require.NoError(t, err)
	assert.Equal(t, filter, gotFilter)
	assert.Equal(t, page, gotPage)
	require.Len(t, posts, 3)
	assert.Len(t, posts[0].Comments, 1)
	assert.Empty(t, posts[1].Comments)
	assert.Len(t, posts[2].Comments, 2)
}

func TestPostUsecase_List_Empty(t *testing.T) {
	comments := &mockCommentReader{ListByPostsFunc: func(context.Context, []uint) (map[uint][]*commententity.Comment, error) {
		t.Fatal("no comment query for an empty page")
		return nil, nil
	}}
	uc := NewPostUsecase(&mockPostRepository{}, comments)

	posts, err := uc.List(context.Background(), Filter{}, pagination.Page{Limit: 20, Number: 1})

	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostUsecase_Get(t *testing.T) {
	posts := map[uint]*entity.Post{5: {ID: 5, Title: "t", Body: "b", CreatorID: alice.ID}}
	uc := NewPostUsecase(memPosts(posts), &mockCommentReader{})

	got, err := uc.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)

	_, err = uc.Get(context.Background(), 6)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.ErrorIs(t, err, ownership.ErrNotFound)
}

func TestPostUsecase_Get_CommentError(t *testing.T) {
	dbErr := errors.New("db down")
	posts := map[uint]*entity.Post{5: {ID: 5}}
	comments := &mockCommentReader{ListByPostsFunc: func(context.Context, []uint) (map[uint][]*commententity.Comment, error) {
		return nil, dbErr
	}}
	uc := NewPostUsecase(memPosts(posts), comments)

	_, err := uc.Get(context.Background(), 5)

	assert.ErrorIs(t, err, dbErr)
}

func TestPostUsecase_Create(t *testing.T) {
	posts := map[uint]*entity.Post{}
	uc := NewPostUsecase(memPosts(posts), &mockCommentReader{})

	got, err := uc.Create(context.Background(), alice, "title", "body")

	require.NoError(t, err)
	assert.Equal(t, uint(101), got.ID)
	assert.Equal(t, alice.ID, got.CreatorID)
	assert.Equal(t, "title", got.Title)
	assert.Contains(t, posts, uint(101))
}

// TestPostUsecase_Update verifies that only the creator may edit and that a rejected edit changes nothing.
func TestPostUsecase_Update(t *testing.T) {
	tests := []struct {
		name      string
		actor     identity.Identity
		id        uint
		wantErr   error
		wantTitle string
	}{
		{"owner updates", alice, 5, nil, "new"},
		{"other user is forbidden", bob, 5, ownership.ErrForbidden, "old"},
		{"missing post", alice, 9, ErrPostNotFound, "old"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := map[uint]*entity.Post{5: {ID: 5, Title: "old", Body: "old", CreatorID: alice.ID}}
			uc := NewPostUsecase(memPosts(posts), &mockCommentReader{})

			got, err := uc.Update(context.Background(), tt.actor, tt.id, "new", "new body")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "new", got.Title)
				assert.Equal(t, "new body", got.Body)
			}
			assert.Equal(t, tt.wantTitle, posts[5].Title)
		})
	}
}

func TestPostUsecase_Delete(t *testing.T) {
	tests := []struct {
		name      string
		actor     identity.Identity
		id        uint
		wantErr   error
		wantExist bool
	}{
		{"owner deletes", alice, 5, nil, false},
		{"other user is forbidden", bob, 5, ownership.ErrForbidden, true},
		{"missing post", alice, 9, ErrPostNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := map[uint]*entity.Post{5: {ID: 5, CreatorID: alice.ID}}
			uc := NewPostUsecase(memPosts(posts), &mockCommentReader{})

			err := uc.Delete(context.Background(), tt.actor, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			_, exists := posts[5]
			assert.Equal(t, tt.wantExist, exists)
		})
	}
}
