package services

import (
	"testing"

	"inkwell/app/repositories"
	"inkwell/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_AddComment(t *testing.T) {
	posts := mock.NewPostRepository()
	postService := NewPostService(posts)
	svc := NewCommentService(mock.NewCommentRepository(), posts)

	post, err := postService.CreatePost(1, "Hello", "sub", "body", "https://example.com/i.jpg")
	require.NoError(t, err)

	t.Run("links the comment to author and post", func(t *testing.T) {
		comment, err := svc.AddComment(post.ID, 7, "Nice post!")
		require.NoError(t, err)

		assert.NotZero(t, comment.ID)
		assert.Equal(t, post.ID, comment.PostID)
		assert.Equal(t, uint(7), comment.AuthorID)
	})

	t.Run("refuses a comment on an absent post", func(t *testing.T) {
		_, err := svc.AddComment(999, 7, "Shouting into the void")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestCommentService_ListForPost(t *testing.T) {
	posts := mock.NewPostRepository()
	postService := NewPostService(posts)
	svc := NewCommentService(mock.NewCommentRepository(), posts)

	first, err := postService.CreatePost(1, "First", "sub", "body", "https://example.com/1.jpg")
	require.NoError(t, err)
	second, err := postService.CreatePost(1, "Second", "sub", "body", "https://example.com/2.jpg")
	require.NoError(t, err)

	_, err = svc.AddComment(first.ID, 2, "on first")
	require.NoError(t, err)
	_, err = svc.AddComment(second.ID, 2, "on second")
	require.NoError(t, err)
	_, err = svc.AddComment(first.ID, 3, "also on first")
	require.NoError(t, err)

	comments, err := svc.ListForPost(first.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	for _, c := range comments {
		assert.Equal(t, first.ID, c.PostID)
	}
}
