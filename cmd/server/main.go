package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/Atika-Amin/Shastho-Shohay/internal/catalog"
	"github.com/Atika-Amin/Shastho-Shohay/internal/chat"
	"github.com/Atika-Amin/Shastho-Shohay/internal/config"
	"github.com/Atika-Amin/Shastho-Shohay/internal/session"
	"github.com/Atika-Amin/Shastho-Shohay/internal/triage"
)

func main() {
	cfg := config.Load()

	// The catalog is the one fatal construction-time dependency: without it
	// the engine must not start.
	cat, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Could not load condition catalog from %s: %v", cfg.CatalogPath, err)
	}
	log.Printf("Loaded %d conditions from %s", len(cat.Conditions), cfg.CatalogPath)

	matcher := triage.NewMatcher(cat)
	engine := triage.NewEngine(cat)

	sessions, err := session.NewManager(engine, matcher, cfg.MaxSessions)
	if err != nil {
		log.Fatalf("Could not create session manager: %v", err)
	}

	// The transcript log is optional: the bot runs fully in-memory and the
	// server stays up when Postgres is unreachable.
	var repo chat.Repository
	if cfg.DatabaseURL != "" {
		db, err := connectDB(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Could not connect to DB: %v. Continuing without transcript log.", err)
		} else {
			log.Println("Connected to Database.")
			runMigrations(cfg.MigrationsDir, cfg.DatabaseURL)
			repo = chat.NewRepository(db)
		}
	}

	svc := chat.NewService(sessions, repo)
	handler := chat.NewHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for the web frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		chat.RegisterRoutes(r, handler)
	})

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}

func connectDB(connStr string) (*sql.DB, error) {
	var db *sql.DB
	var err error
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", connStr)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			return db, nil
		}
		log.Printf("Waiting for DB... (%d/10)", i+1)
		time.Sleep(time.Second)
	}
	return nil, err
}

func runMigrations(dir, connStr string) {
	m, err := migrate.New("file://"+dir, connStr)
	if err != nil {
		log.Printf("Migration init failed: %v", err)
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Printf("Migration up failed: %v", err)
		return
	}
	log.Println("Migrations applied successfully!")
}
