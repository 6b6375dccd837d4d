package services

import (
	"fmt"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// CommentService handles business logic for comments
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
}

// NewCommentService creates a new CommentService
func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
	}
}

// AddComment records a comment by authorID on the given post. The post must
// exist; a comment never references an absent parent.
func (s *CommentService) AddComment(postID, authorID uint, text string) (*models.Comment, error) {
	if _, err := s.posts.GetByID(postID); err != nil {
		return nil, fmt.Errorf("cannot comment on post %d: %w", postID, err)
	}

	comment := &models.Comment{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForPost returns the comments attached to one post.
func (s *CommentService) ListForPost(postID uint) ([]*models.Comment, error) {
	return s.comments.ListByPost(postID)
}
