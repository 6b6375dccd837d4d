package controllers

import (
	"html/template"
	"log"
	"net/http"

	"inkwell/app/sessions"
)

// PageController serves the static informational pages
type PageController struct {
	renderer
}

// NewPageController creates a new PageController
func NewPageController(sm *sessions.Manager, templates map[string]*template.Template, errorLog *log.Logger) *PageController {
	return &PageController{
		renderer: renderer{sessions: sm, templates: templates, errorLog: errorLog},
	}
}

// About handles GET /about
func (pc *PageController) About(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "about", &templateData{Title: "About"})
}

// Contact handles GET and POST /contact. Submissions just re-render the page.
func (pc *PageController) Contact(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "contact", &templateData{Title: "Contact"})
}
