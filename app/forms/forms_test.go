package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterForm(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		form := RegisterForm{Name: "Alice", Email: "a@x.com", Password: "pw123"}
		assert.Empty(t, form.Validate())
	})

	t.Run("all fields required", func(t *testing.T) {
		form := RegisterForm{}
		fieldErrors := form.Validate()
		assert.Len(t, fieldErrors, 3)
		assert.Equal(t, "This field is required.", fieldErrors["name"])
		assert.Equal(t, "This field is required.", fieldErrors["email"])
		assert.Equal(t, "This field is required.", fieldErrors["password"])
	})

	t.Run("email format", func(t *testing.T) {
		form := RegisterForm{Name: "Alice", Email: "not-an-email", Password: "pw123"}
		fieldErrors := form.Validate()
		assert.Equal(t, "Enter a valid email address.", fieldErrors["email"])
	})
}

func TestLoginForm(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		form := LoginForm{Email: "a@x.com", Password: "pw123"}
		assert.Empty(t, form.Validate())
	})

	t.Run("email format", func(t *testing.T) {
		form := LoginForm{Email: "nope", Password: "pw123"}
		assert.Equal(t, "Enter a valid email address.", form.Validate()["email"])
	})
}

func TestPostForm(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		form := PostForm{
			Title:    "Hello",
			Subtitle: "A greeting",
			Body:     "<p>Hi</p>",
			ImgURL:   "https://example.com/cover.jpg",
		}
		assert.Empty(t, form.Validate())
	})

	t.Run("all fields required", func(t *testing.T) {
		form := PostForm{}
		assert.Len(t, form.Validate(), 4)
	})

	t.Run("image URL format", func(t *testing.T) {
		form := PostForm{Title: "T", Subtitle: "S", Body: "B", ImgURL: "not a url"}
		assert.Equal(t, "Enter a valid URL.", form.Validate()["imgurl"])
	})
}

func TestCommentForm(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		form := CommentForm{Text: "Nice post!"}
		assert.Empty(t, form.Validate())
	})

	t.Run("text required", func(t *testing.T) {
		form := CommentForm{}
		assert.Equal(t, "This field is required.", form.Validate()["text"])
	})
}
