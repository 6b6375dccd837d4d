package repositories

import (
	"testing"

	"inkwell/app/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// In-memory sqlite lives per connection; a second pooled connection would
	// see an empty schema.
	db.DB().SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, Password: "hash"}
	require.NoError(t, NewGormUserRepository(db).Create(user))
	return user
}

func TestGormUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormUserRepository(db)

	alice := createTestUser(t, db, "Alice", "a@x.com")

	t.Run("GetByID", func(t *testing.T) {
		got, err := repo.GetByID(alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)

		_, err = repo.GetByID(999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("GetByEmail", func(t *testing.T) {
		got, err := repo.GetByEmail("a@x.com")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)

		_, err = repo.GetByEmail("nobody@x.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestGormPostRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPostRepository(db)
	author := createTestUser(t, db, "Admin", "admin@x.com")

	newPost := func(title string) *models.BlogPost {
		return &models.BlogPost{
			Title:    title,
			Subtitle: "sub",
			Date:     "January 02, 2006",
			Body:     "<p>body</p>",
			ImgURL:   "https://example.com/i.jpg",
			AuthorID: author.ID,
		}
	}

	t.Run("Create and GetByID preloads the author", func(t *testing.T) {
		post := newPost("Hello")
		require.NoError(t, repo.Create(post))
		require.NotZero(t, post.ID)

		got, err := repo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello", got.Title)
		require.NotNil(t, got.Author)
		assert.Equal(t, "Admin", got.Author.Name)
	})

	t.Run("GetByID not found", func(t *testing.T) {
		_, err := repo.GetByID(999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("List returns posts in insertion order", func(t *testing.T) {
		require.NoError(t, repo.Create(newPost("Second")))
		require.NoError(t, repo.Create(newPost("Third")))

		posts, err := repo.List()
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, "Hello", posts[0].Title)
		assert.Equal(t, "Second", posts[1].Title)
		assert.Equal(t, "Third", posts[2].Title)
	})

	t.Run("Update", func(t *testing.T) {
		posts, err := repo.List()
		require.NoError(t, err)
		post := posts[0]

		post.Title = "Hello, revised"
		post.Author = nil
		require.NoError(t, repo.Update(post))

		got, err := repo.GetByID(post.ID)
		require.NoError(t, err)
		assert.Equal(t, "Hello, revised", got.Title)
	})

	t.Run("Delete removes the post from the list", func(t *testing.T) {
		posts, err := repo.List()
		require.NoError(t, err)
		victim := posts[0]

		require.NoError(t, repo.Delete(victim.ID))

		_, err = repo.GetByID(victim.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		remaining, err := repo.List()
		require.NoError(t, err)
		assert.Len(t, remaining, 2)
	})

	t.Run("Delete not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(999), ErrNotFound)
	})
}

func TestGormCommentRepository(t *testing.T) {
	db := setupTestDB(t)
	posts := NewGormPostRepository(db)
	repo := NewGormCommentRepository(db)

	author := createTestUser(t, db, "Alice", "a@x.com")

	first := &models.BlogPost{Title: "First", Subtitle: "s", Date: "d", Body: "b", ImgURL: "https://example.com/1.jpg", AuthorID: author.ID}
	second := &models.BlogPost{Title: "Second", Subtitle: "s", Date: "d", Body: "b", ImgURL: "https://example.com/2.jpg", AuthorID: author.ID}
	require.NoError(t, posts.Create(first))
	require.NoError(t, posts.Create(second))

	require.NoError(t, repo.Create(&models.Comment{Text: "on first", AuthorID: author.ID, PostID: first.ID}))
	require.NoError(t, repo.Create(&models.Comment{Text: "on second", AuthorID: author.ID, PostID: second.ID}))
	require.NoError(t, repo.Create(&models.Comment{Text: "also on first", AuthorID: author.ID, PostID: first.ID}))

	t.Run("ListByPost is scoped to the parent post", func(t *testing.T) {
		comments, err := repo.ListByPost(first.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		for _, c := range comments {
			assert.Equal(t, first.ID, c.PostID)
		}
	})

	t.Run("ListByPost preloads the comment author", func(t *testing.T) {
		comments, err := repo.ListByPost(second.ID)
		require.NoError(t, err)
		require.Len(t, comments, 1)
		require.NotNil(t, comments[0].Author)
		assert.Equal(t, "Alice", comments[0].Author.Name)
	})

	t.Run("ListByPost on an empty post", func(t *testing.T) {
		comments, err := repo.ListByPost(999)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}
