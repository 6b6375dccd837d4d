package controllers

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"inkwell/app/middleware"
	"inkwell/app/models"
	"inkwell/app/sessions"
)

// templateData is the context handed to every page template.
type templateData struct {
	Title       string
	CurrentUser *models.User
	IsAdmin     bool
	Flashes     []string
	CurrentYear string
	Form        map[string]string // sticky values on re-render
	FormErrors  map[string]string // field-level error annotations
	Post        *models.BlogPost
	Posts       []*models.BlogPost
	Comments    []*models.Comment
	Editing     bool
}

var templateFuncs = template.FuncMap{
	"gravatar": GravatarURL,
	// Post bodies are rich text authored by the admin; render them as-is.
	"safeHTML": func(s string) template.HTML { return template.HTML(s) },
}

// GravatarURL resolves an avatar URL from an email address.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=500&d=retro&r=g", hex.EncodeToString(sum[:]))
}

// LoadTemplates loads and parses all page templates, each paired with the
// shared layout.
func LoadTemplates(basePath string) map[string]*template.Template {
	pages := []string{"index", "post", "make-post", "register", "login", "about", "contact"}

	templates := make(map[string]*template.Template)
	layout := filepath.Join(basePath, "app/views/layout.html")
	for _, page := range pages {
		templates[page] = template.Must(template.New(page).Funcs(templateFuncs).ParseFiles(
			layout,
			filepath.Join(basePath, "app/views", page+".html"),
		))
	}
	return templates
}

// renderer holds what every controller needs to produce a page.
type renderer struct {
	sessions  *sessions.Manager
	templates map[string]*template.Template
	errorLog  *log.Logger
}

// render executes a page template into a buffer first so a template error
// surfaces as a clean 500 instead of a half-written body.
func (rn *renderer) render(w http.ResponseWriter, r *http.Request, page string, data *templateData) {
	if data == nil {
		data = &templateData{}
	}
	if data.CurrentUser == nil {
		data.CurrentUser = rn.sessions.CurrentUser(r)
	}
	data.IsAdmin = data.CurrentUser != nil && data.CurrentUser.ID == middleware.AdminUserID
	data.Flashes = rn.sessions.PopFlashes(r)
	data.CurrentYear = time.Now().Format("2006")

	ts, ok := rn.templates[page]
	if !ok {
		rn.serverError(w, fmt.Errorf("no template for page %q", page))
		return
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "layout", data); err != nil {
		rn.serverError(w, err)
		return
	}
	buf.WriteTo(w)
}

func (rn *renderer) serverError(w http.ResponseWriter, err error) {
	rn.errorLog.Println(err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (rn *renderer) notFound(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
}
