package services

import (
	"time"

	"inkwell/app/models"
	"inkwell/app/repositories"
)

// PublicationDateFormat is the display format stored on each post.
const PublicationDateFormat = "January 02, 2006"

// PostService handles business logic for blog posts
type PostService struct {
	posts repositories.PostRepository
}

// NewPostService creates a new PostService
func NewPostService(posts repositories.PostRepository) *PostService {
	return &PostService{posts: posts}
}

// CreatePost persists a new post stamped with the current date and the given
// author.
func (s *PostService) CreatePost(authorID uint, title, subtitle, body, imgURL string) (*models.BlogPost, error) {
	post := &models.BlogPost{
		Title:    title,
		Subtitle: subtitle,
		Date:     time.Now().Format(PublicationDateFormat),
		Body:     body,
		ImgURL:   imgURL,
		AuthorID: authorID,
	}
	if err := s.posts.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost retrieves a post by ID
func (s *PostService) GetPost(id uint) (*models.BlogPost, error) {
	return s.posts.GetByID(id)
}

// ListPosts retrieves all posts in store order
func (s *PostService) ListPosts() ([]*models.BlogPost, error) {
	return s.posts.List()
}

// UpdatePost overwrites title, subtitle, image and body of an existing post
// and reassigns the author to editorID. The publication date is preserved.
func (s *PostService) UpdatePost(id, editorID uint, title, subtitle, body, imgURL string) (*models.BlogPost, error) {
	post, err := s.posts.GetByID(id)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Subtitle = subtitle
	post.Body = body
	post.ImgURL = imgURL
	post.AuthorID = editorID
	post.Author = nil

	if err := s.posts.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deletes a post. Returns repositories.ErrNotFound for an absent id.
func (s *PostService) DeletePost(id uint) error {
	return s.posts.Delete(id)
}
