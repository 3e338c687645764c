package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stockroom/config"
	"stockroom/internal/auth"
	"stockroom/internal/db"
	"stockroom/internal/health"
	"stockroom/internal/inventory"
	"stockroom/internal/logs"
	"stockroom/internal/middleware"
	"stockroom/internal/models"
	"stockroom/internal/repo"
)

type App struct {
	cfg        *config.Config
	db         *gorm.DB
	Router     *mux.Router
	httpServer *http.Server

	ctx    context.Context
	cancel context.CancelFunc
}

func (a *App) Initialize(cfg *config.Config) {
	a.cfg = cfg

	/* 1) Логи */
	logs.Init(logs.Options{
		Level:  a.cfg.Logging.Level,
		Format: a.cfg.Logging.Format,
		File:   a.cfg.Logging.File,
	})

	/* 2) DB */
	d, err := db.Open(a.cfg.Database.Driver, a.cfg.Database.DSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	a.db = d

	if err := a.db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Inventory{},
		&models.AuditEntry{},
	); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	/* 3) Stores + сервисы */
	users := repo.NewUserStore(a.db)
	invStore := repo.NewInventoryStore(a.db)
	auditStore := repo.NewAuditStore(a.db)

	a.bootstrapAdmin(users)

	tokens := auth.NewJWTProvider(a.cfg.Auth.JWTSecret, a.cfg.Auth.TokenTTLMinutes)
	authSvc := auth.NewService(users, tokens)
	authn := auth.Authenticate(tokens, users)

	/* 4) Router + middleware */
	a.Router = mux.NewRouter().StrictSlash(true)
	a.Router.Use(
		middleware.RequestID,
		middleware.Recoverer,
		middleware.LoggerMW,
	)

	/* 5) Health */
	health.RegisterRoutes(a.Router, a.db) // /healthz, /readyz

	/* 6) Auth + admin inventory */
	auth.RegisterRoutes(a.Router, auth.NewHandler(authSvc), authn)
	inventory.RegisterRoutes(a.Router, inventory.NewHandler(invStore, auditStore),
		authn, auth.RequireRole(models.RoleAdmin))

	/* (необязательно) вывести известные маршруты в лог при старте */
	_ = a.Router.Walk(func(rt *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		path, _ := rt.GetPathTemplate()
		methods, _ := rt.GetMethods()
		if len(methods) == 0 {
			methods = []string{"ANY"}
		}
		log.Printf("route: %-6v %s", methods, path)
		return nil
	})
}

// bootstrapAdmin создаёт стартовую админскую учётку, если таблица users
// пуста и в конфиге задан bootstrap-пароль. Аналог БД-сидера.
func (a *App) bootstrapAdmin(users *repo.UserStore) {
	bc := a.cfg.Auth
	if bc.BootstrapPassword == "" {
		return
	}
	n, err := users.Count(context.Background())
	if err != nil {
		log.Fatalf("users count failed: %v", err)
	}
	if n > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(bc.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bootstrap password hash failed: %v", err)
	}
	u := models.User{
		Username:     bc.BootstrapUsername,
		Email:        bc.BootstrapEmail,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := users.Create(context.Background(), &u); err != nil {
		log.Fatalf("bootstrap admin create failed: %v", err)
	}
	logs.Logger.Infof("bootstrap admin created: username=%s", u.Username)
}

func (a *App) Run() error {
	if a.Router == nil || a.cfg == nil {
		return fmt.Errorf("server not initialized")
	}

	bind := net.JoinHostPort(a.cfg.Server.Address, a.cfg.Server.HTTPPort)

	a.ctx, a.cancel = context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigs
		logs.Logger.Infof("shutdown signal: %s", s)
		a.cancel()
	}()

	// Жёсткие таймауты — это важно для production
	a.httpServer = &http.Server{
		Addr:              bind,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logs.Logger.Infof("HTTP listening on %s", bind)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logs.Logger.Fatalf("http server error: %v", err)
		}
	}()

	<-a.ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logs.Logger.Errorf("http shutdown: %v", err)
	}
	return nil
}
