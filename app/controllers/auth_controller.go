package controllers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"inkwell/app/forms"
	"inkwell/app/services"
	"inkwell/app/sessions"
)

// AuthController handles registration, login and logout
type AuthController struct {
	renderer
	users *services.UserService
}

// NewAuthController creates a new AuthController
func NewAuthController(users *services.UserService, sm *sessions.Manager, templates map[string]*template.Template, errorLog *log.Logger) *AuthController {
	return &AuthController{
		renderer: renderer{sessions: sm, templates: templates, errorLog: errorLog},
		users:    users,
	}
}

// Register handles GET and POST /register
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ac.render(w, r, "register", &templateData{Title: "Register"})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	form := forms.RegisterForm{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		ac.render(w, r, "register", &templateData{
			Title:      "Register",
			FormErrors: fieldErrors,
			Form: map[string]string{
				"name":  form.Name,
				"email": form.Email,
			},
		})
		return
	}

	user, err := ac.users.Register(form.Name, form.Email, form.Password)
	if errors.Is(err, services.ErrEmailTaken) {
		if err := ac.sessions.Flash(w, r, "You've already signed up with that email, log in instead!"); err != nil {
			ac.serverError(w, err)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err != nil {
		ac.serverError(w, err)
		return
	}

	// New users are logged in immediately.
	if err := ac.sessions.Login(w, r, user.ID); err != nil {
		ac.errorLog.Printf("failed to create session for user %d: %v", user.ID, err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Login handles GET and POST /login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		ac.render(w, r, "login", &templateData{Title: "Log In"})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	form := forms.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	if fieldErrors := form.Validate(); len(fieldErrors) > 0 {
		ac.render(w, r, "login", &templateData{
			Title:      "Log In",
			FormErrors: fieldErrors,
			Form:       map[string]string{"email": form.Email},
		})
		return
	}

	user, err := ac.users.Authenticate(form.Email, form.Password)
	if err != nil {
		// Both failure paths redirect back to the form; the flash message is
		// the only difference between them.
		var message string
		switch {
		case errors.Is(err, services.ErrUnknownEmail):
			message = "That email does not exist, please try again."
		case errors.Is(err, services.ErrWrongPassword):
			message = "Password incorrect, please try again."
		default:
			ac.serverError(w, err)
			return
		}
		if err := ac.sessions.Flash(w, r, message); err != nil {
			ac.serverError(w, err)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := ac.sessions.Login(w, r, user.ID); err != nil {
		ac.serverError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout. No confirmation step.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ac.sessions.Logout(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
