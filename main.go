package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"Anchora/internal/auth"
	"Anchora/internal/calc/anchors"
	"Anchora/internal/calc/premium/autodesign"
	"Anchora/internal/calc/premium/batch"
	"Anchora/internal/calc/premium/importer"
	"Anchora/internal/calc/premium/recommend"
	"Anchora/internal/calc/report"
	"Anchora/internal/config"
	"Anchora/internal/logger"
	"Anchora/internal/project"
	"Anchora/internal/repo"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// NewRouter wires the API. Accounts and saved projects are mounted only when
// store is non-nil.
func NewRouter(cfg *config.Config, log *slog.Logger, store repo.Repository) *mux.Router {
	r := mux.NewRouter()

	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, log)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	anchorsH := &anchors.Handler{Log: log}
	reportH := &report.Handler{Log: log}
	batchH := &batch.Handler{}
	importH := &importer.Handler{Log: log}
	autoH := &autodesign.Handler{}
	recommendH := &recommend.Handler{}

	tools := api.PathPrefix("/tools/anchors").Subrouter()
	tools.HandleFunc("/options", anchorsH.Options).Methods("GET")
	tools.HandleFunc("/clamp", anchorsH.Clamp).Methods("POST")
	tools.HandleFunc("/validate", anchorsH.Validate).Methods("POST")
	tools.HandleFunc("/strength", anchorsH.Strength).Methods("POST")
	tools.HandleFunc("/calc", anchorsH.Calc).Methods("POST")
	tools.HandleFunc("/report/pdf", reportH.Generate).Methods("POST")
	tools.HandleFunc("/batch", batchH.Anchors).Methods("POST")
	tools.HandleFunc("/import", importH.Import).Methods("POST")
	tools.HandleFunc("/export/xlsx", importH.Export).Methods("POST")
	tools.HandleFunc("/autodesign/embedment", autoH.Embedment).Methods("POST")
	tools.HandleFunc("/recommend/grade", recommendH.Grade).Methods("POST")

	if store != nil {
		authEnv := &auth.Env{JWTKey: []byte(cfg.TokenKey), Users: store, Log: log}
		projectH := &project.Handler{Store: store, Log: log}

		api.HandleFunc("/login", authEnv.Login).Methods("POST")
		api.HandleFunc("/register", authEnv.Register).Methods("POST")
		api.HandleFunc("/logout", authEnv.Logout).Methods("POST")

		secureApi := api.PathPrefix("/user").Subrouter()
		secureApi.Use(authEnv.RequireUser)
		secureApi.HandleFunc("/projects", projectH.List).Methods("GET")
		secureApi.HandleFunc("/projects", projectH.Save).Methods("POST", "PUT")
		secureApi.HandleFunc("/projects/{id}", projectH.Get).Methods("GET")
		secureApi.HandleFunc("/projects/{id}", projectH.Delete).Methods("DELETE")
		secureApi.HandleFunc("/projects/{id}/export", projectH.Export).Methods("GET")
	}

	if cfg.StaticDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(cfg.StaticDir)))
	}
	return r
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	var store repo.Repository
	if cfg.DatabaseURL != "" {
		db, err := repo.InitDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		pg := repo.NewPostgres(db)
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
		store = pg
	} else {
		log.Warn("DATABASE_URL not set; accounts and saved projects are disabled")
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           CORS(NewRouter(cfg, log, store)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	errc := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			log.Info("starting server", "addr", cfg.Addr, "tls", true)
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			log.Info("starting server", "addr", cfg.Addr, "tls", false)
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	wg.Wait()
	log.Info("server stopped")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.Init(os.Stderr, cfg.LogLevel, false)

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server failed", "err", err)
		cancel()
		os.Exit(1)
	}
}
