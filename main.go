package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/app/config"
	"inkwell/app/models"
	"inkwell/app/routes"

	"github.com/dgraph-io/badger/v4"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

const cliVersion = "1.0.0"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("inkwell version %s\n", cliVersion)
	case "serve":
		serve()
	case "init":
		initDB()
	case "clean":
		clean()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: inkwell <command>

Commands:
  help       Display this help message.
  version    Show version information.
  serve      Run the blog server.
  init       Create the database tables and exit.
  clean      Drop all records from the session store, logging everyone out.
`
	fmt.Println(helpText)
}

// openDatabase connects to the relational store using the externally supplied
// connection settings.
func openDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		config.Get("DB_HOST"),
		config.Get("DB_USER"),
		config.Get("DB_PASSWORD"),
		config.Get("DB_NAME"),
		config.Get("DB_PORT"),
		config.GetDefault("DB_SSLMODE", "disable"),
	)

	db, err := gorm.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %v", err)
	}
	return db, nil
}

func initDB() {
	config.LoadEnv()

	db, err := openDatabase()
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	log.Println("Database tables created")
}

func clean() {
	config.LoadEnv()

	path := config.GetDefault("SESSION_DB_PATH", "data/sessions")
	if err := cleanSessionStore(path); err != nil {
		log.Fatalf("failed to clean session store: %v", err)
	}
	log.Println("Session store cleaned")
}

// cleanSessionStore drops every record in the session store at path, leaving
// an empty store behind.
func cleanSessionStore(path string) error {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return err
	}
	defer db.Close()
	return db.DropAll()
}

func serve() {
	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	config.LoadEnv()

	db, err := openDatabase()
	if err != nil {
		errorLog.Fatal(err)
	}
	defer db.Close()

	if err := models.AutoMigrate(db); err != nil {
		errorLog.Fatalf("failed to migrate database: %v", err)
	}

	sessionDBPath := config.GetDefault("SESSION_DB_PATH", "data/sessions")
	sessionDB, err := badger.Open(badger.DefaultOptions(sessionDBPath).WithLogger(nil))
	if err != nil {
		errorLog.Fatalf("failed to open session store: %v", err)
	}
	defer sessionDB.Close()

	router := routes.Setup(routes.Config{
		DB:            db,
		SessionDB:     sessionDB,
		SessionSecret: []byte(config.Get("SESSION_SECRET")),
		InfoLog:       infoLog,
		ErrorLog:      errorLog,
	})

	server := &http.Server{
		Addr:     config.GetDefault("ADDR", ":8080"),
		Handler:  router,
		ErrorLog: errorLog,

		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		infoLog.Printf("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorLog.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	infoLog.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		errorLog.Fatalf("shutdown error: %v", err)
	}
	infoLog.Println("Server stopped")
}
