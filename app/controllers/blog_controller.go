package controllers

import (
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"inkwell/app/forms"
	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/app/sessions"

	"github.com/gorilla/mux"
)

// BlogController handles HTTP requests for blog posts and their comments
type BlogController struct {
	renderer
	posts    *services.PostService
	comments *services.CommentService
}

// NewBlogController creates a new BlogController
func NewBlogController(posts *services.PostService, comments *services.CommentService, sm *sessions.Manager, templates map[string]*template.Template, errorLog *log.Logger) *BlogController {
	return &BlogController{
		renderer: renderer{sessions: sm, templates: templates, errorLog: errorLog},
		posts:    posts,
		comments: comments,
	}
}

// Index handles GET /, listing all posts in store order.
func (bc *BlogController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := bc.posts.ListPosts()
	if err != nil {
		bc.serverError(w, err)
		return
	}
	bc.render(w, r, "index", &templateData{
		Title: "Inkwell",
		Posts: posts,
	})
}

// Show handles GET and POST /post/{id}. GET renders the post with its
// comments and the comment form; POST submits a comment, which requires an
// authenticated identity.
func (bc *BlogController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		bc.notFound(w)
		return
	}

	post, err := bc.posts.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		bc.notFound(w)
		return
	}
	if err != nil {
		bc.serverError(w, err)
		return
	}

	data := &templateData{
		Title: post.Title,
		Post:  post,
	}

	if r.Method == http.MethodPost {
		user := bc.sessions.CurrentUser(r)
		if user == nil {
			if err := bc.sessions.Flash(w, r, "You need to log in to comment!"); err != nil {
				bc.serverError(w, err)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		form := forms.CommentForm{Text: r.FormValue("text")}
		if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
			data.FormErrors = fieldErrors
		} else if _, err := bc.comments.AddComment(id, user.ID, form.Text); err != nil {
			bc.serverError(w, err)
			return
		}
	}

	comments, err := bc.comments.ListForPost(id)
	if err != nil {
		bc.serverError(w, err)
		return
	}
	data.Comments = comments

	bc.render(w, r, "post", data)
}

// NewPost handles GET and POST /new-post. Admin-only via the guard.
func (bc *BlogController) NewPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		bc.render(w, r, "make-post", &templateData{Title: "New Post"})
		return
	}

	form, fieldErrors := parsePostForm(r)
	if len(fieldErrors) > 0 {
		bc.render(w, r, "make-post", &templateData{
			Title:      "New Post",
			FormErrors: fieldErrors,
			Form:       stickyPostForm(form),
		})
		return
	}

	user := bc.sessions.CurrentUser(r)
	if user == nil {
		// The guard vetted this session; losing the identity now is a server
		// fault, not an auth failure.
		bc.serverError(w, errors.New("no identity on admin request"))
		return
	}
	if _, err := bc.posts.CreatePost(user.ID, form.Title, form.Subtitle, form.Body, form.ImgURL); err != nil {
		bc.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditPost handles GET and POST /edit-post/{id}. Admin-only via the guard.
// The form is pre-populated from the stored post; saving reassigns the author
// to whoever is logged in.
func (bc *BlogController) EditPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		bc.notFound(w)
		return
	}

	post, err := bc.posts.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		bc.notFound(w)
		return
	}
	if err != nil {
		bc.serverError(w, err)
		return
	}

	if r.Method != http.MethodPost {
		bc.render(w, r, "make-post", &templateData{
			Title:   "Edit Post",
			Editing: true,
			Post:    post,
			Form: map[string]string{
				"title":    post.Title,
				"subtitle": post.Subtitle,
				"body":     post.Body,
				"img_url":  post.ImgURL,
			},
		})
		return
	}

	form, fieldErrors := parsePostForm(r)
	if len(fieldErrors) > 0 {
		bc.render(w, r, "make-post", &templateData{
			Title:      "Edit Post",
			Editing:    true,
			Post:       post,
			FormErrors: fieldErrors,
			Form:       stickyPostForm(form),
		})
		return
	}

	user := bc.sessions.CurrentUser(r)
	if user == nil {
		bc.serverError(w, errors.New("no identity on admin request"))
		return
	}
	if _, err := bc.posts.UpdatePost(id, user.ID, form.Title, form.Subtitle, form.Body, form.ImgURL); err != nil {
		bc.serverError(w, err)
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/post/%d", id), http.StatusSeeOther)
}

// DeletePost handles GET /delete/{id}. Admin-only via the guard. Deletion by
// plain link is a known weakness carried over deliberately.
func (bc *BlogController) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		bc.notFound(w)
		return
	}

	err = bc.posts.DeletePost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		bc.notFound(w)
		return
	}
	if err != nil {
		bc.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func parsePostForm(r *http.Request) (forms.PostForm, map[string]string) {
	if err := r.ParseForm(); err != nil {
		return forms.PostForm{}, map[string]string{"form": "Failed to parse form."}
	}
	form := forms.PostForm{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		Body:     r.FormValue("body"),
		ImgURL:   r.FormValue("img_url"),
	}
	return form, form.Validate()
}

func stickyPostForm(form forms.PostForm) map[string]string {
	return map[string]string{
		"title":    form.Title,
		"subtitle": form.Subtitle,
		"body":     form.Body,
		"img_url":  form.ImgURL,
	}
}
