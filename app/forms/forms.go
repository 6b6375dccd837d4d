package forms

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// RegisterForm is the registration submission.
type RegisterForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// LoginForm is the login submission.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// PostForm is the post authoring submission, used for both create and edit.
type PostForm struct {
	Title    string `validate:"required"`
	Subtitle string `validate:"required"`
	Body     string `validate:"required"`
	ImgURL   string `validate:"required,url"`
}

// CommentForm is the comment submission.
type CommentForm struct {
	Text string `validate:"required"`
}

func (f *RegisterForm) Validate() map[string]string { return check(f) }
func (f *LoginForm) Validate() map[string]string    { return check(f) }
func (f *PostForm) Validate() map[string]string     { return check(f) }
func (f *CommentForm) Validate() map[string]string  { return check(f) }

// check runs struct validation and flattens the result into a field → message
// map. An empty map means the form is valid.
func check(form interface{}) map[string]string {
	fieldErrors := make(map[string]string)

	err := validate.Struct(form)
	if err == nil {
		return fieldErrors
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fieldErrors["form"] = "Invalid submission."
		return fieldErrors
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fieldErrors[field] = "This field is required."
		case "email":
			fieldErrors[field] = "Enter a valid email address."
		case "url":
			fieldErrors[field] = "Enter a valid URL."
		default:
			fieldErrors[field] = "Invalid value."
		}
	}
	return fieldErrors
}
