package routes

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

// setupTestViews writes a stripped-down template set into a temp dir so route
// tests exercise real rendering without depending on the production markup.
func setupTestViews(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "app", "views")
	require.NoError(t, os.MkdirAll(viewsDir, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "static"), 0755))

	templates := map[string]string{
		"layout.html": `{{define "layout"}}<html><body>
<nav>{{if .CurrentUser}}<span class="user">{{.CurrentUser.Name}}</span><a href="/logout">Log Out</a>{{else}}<a href="/login">Log In</a>{{end}}</nav>
{{range .Flashes}}<div class="flash">{{.}}</div>{{end}}
{{template "content" .}}
<footer>{{.CurrentYear}}</footer>
</body></html>{{end}}`,
		"index.html":     `{{define "content"}}<div class="posts">{{range .Posts}}<h2>{{.Title}}</h2>{{end}}</div>{{end}}`,
		"post.html":      `{{define "content"}}<h1>{{.Post.Title}}</h1><div class="comments">{{range .Comments}}<p>{{.Text}} — {{if .Author}}{{.Author.Name}}{{end}}</p>{{end}}</div>{{with .FormErrors.text}}<span class="field-error">{{.}}</span>{{end}}{{end}}`,
		"make-post.html": `{{define "content"}}<form method="POST"><input name="title" value="{{.Form.title}}">{{range $f, $m := .FormErrors}}<span class="field-error">{{$f}}: {{$m}}</span>{{end}}</form>{{end}}`,
		"register.html":  `{{define "content"}}<form method="POST">{{range $f, $m := .FormErrors}}<span class="field-error">{{$f}}: {{$m}}</span>{{end}}</form>{{end}}`,
		"login.html":     `{{define "content"}}<form method="POST">{{range $f, $m := .FormErrors}}<span class="field-error">{{$f}}: {{$m}}</span>{{end}}</form>{{end}}`,
		"about.html":     `{{define "content"}}<h1>About</h1>{{end}}`,
		"contact.html":   `{{define "content"}}<h1>Contact</h1>{{end}}`,
	}
	for name, content := range templates {
		require.NoError(t, os.WriteFile(filepath.Join(viewsDir, name), []byte(content), 0644))
	}
	return tmpDir
}

func setupTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// In-memory sqlite lives per connection; a second pooled connection would
	// see an empty schema.
	db.DB().SetMaxOpenConns(1)

	require.NoError(t, models.AutoMigrate(db))

	sessionDB, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	require.NoError(t, err)
	t.Cleanup(func() { sessionDB.Close() })

	quiet := log.New(io.Discard, "", 0)
	return Setup(Config{
		DB:            db,
		SessionDB:     sessionDB,
		SessionSecret: []byte("test-secret"),
		BasePath:      setupTestViews(t),
		InfoLog:       quiet,
		ErrorLog:      quiet,
	})
}

// browser drives the router like a cookie-keeping user agent.
type browser struct {
	t       *testing.T
	router  *mux.Router
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, router *mux.Router) *browser {
	return &browser{
		t:       t,
		router:  router,
		cookies: make(map[string]*http.Cookie),
	}
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do("GET", path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do("POST", path, form)
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, cookie := range b.cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.MaxAge < 0 {
			delete(b.cookies, cookie.Name)
		} else {
			b.cookies[cookie.Name] = cookie
		}
	}
	return w
}

// register submits the registration form; the first account created gets the
// administrator id.
func (b *browser) register(name, email, password string) *httptest.ResponseRecorder {
	return b.post("/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
}

func (b *browser) login(email, password string) *httptest.ResponseRecorder {
	return b.post("/login", url.Values{
		"email":    {email},
		"password": {password},
	})
}
