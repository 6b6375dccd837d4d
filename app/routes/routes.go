package routes

import (
	"log"
	"net/http"
	"path/filepath"

	"inkwell/app/controllers"
	"inkwell/app/middleware"
	"inkwell/app/repositories"
	"inkwell/app/services"
	"inkwell/app/sessions"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
)

// Config carries the process-scoped collaborators the router wires together.
// Both stores are opened once at startup and closed at shutdown by the caller.
type Config struct {
	DB            *gorm.DB
	SessionDB     *badger.DB
	SessionSecret []byte
	BasePath      string // root for app/views and static assets; "" in production
	InfoLog       *log.Logger
	ErrorLog      *log.Logger
}

// Setup builds the repository, service, session and controller graph and
// returns the application's router.
func Setup(cfg Config) *mux.Router {
	userRepo := repositories.NewGormUserRepository(cfg.DB)
	postRepo := repositories.NewGormPostRepository(cfg.DB)
	commentRepo := repositories.NewGormCommentRepository(cfg.DB)

	sessionManager := sessions.NewManager(cfg.SessionDB, userRepo, cfg.SessionSecret)

	userService := services.NewUserService(userRepo)
	postService := services.NewPostService(postRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)

	templates := controllers.LoadTemplates(cfg.BasePath)
	authController := controllers.NewAuthController(userService, sessionManager, templates, cfg.ErrorLog)
	blogController := controllers.NewBlogController(postService, commentService, sessionManager, templates, cfg.ErrorLog)
	pageController := controllers.NewPageController(sessionManager, templates, cfg.ErrorLog)

	guard := &middleware.Guard{Sessions: sessionManager}

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(cfg.InfoLog))
	router.Use(middleware.Recoverer(cfg.ErrorLog))

	// Serve static files
	staticDir := filepath.Join(cfg.BasePath, "static")
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))

	router.HandleFunc("/", blogController.Index).Methods("GET")

	// Accounts
	router.HandleFunc("/register", authController.Register).Methods("GET", "POST")
	router.HandleFunc("/login", authController.Login).Methods("GET", "POST")
	router.HandleFunc("/logout", authController.Logout).Methods("GET")

	// Posts; commenting auth is checked inside Show, not by the guard
	router.HandleFunc("/post/{id:[0-9]+}", blogController.Show).Methods("GET", "POST")
	router.HandleFunc("/new-post", guard.AdminOnly(blogController.NewPost)).Methods("GET", "POST")
	router.HandleFunc("/edit-post/{id:[0-9]+}", guard.AdminOnly(blogController.EditPost)).Methods("GET", "POST")
	router.HandleFunc("/delete/{id:[0-9]+}", guard.AdminOnly(blogController.DeletePost)).Methods("GET")

	// Informational pages
	router.HandleFunc("/about", pageController.About).Methods("GET")
	router.HandleFunc("/contact", pageController.Contact).Methods("GET", "POST")

	return router
}
