package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory_tracker/internal/handlers"
	"inventory_tracker/internal/logger"
	"inventory_tracker/internal/repository"
	"inventory_tracker/internal/repository/db"
	"inventory_tracker/internal/server"
	"inventory_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

const (
	defaultSweepTick = 5 * time.Minute

	defaultPort      = "5000"
	defaultDBPath    = "database.db"
	defaultAdminUser = "admin"
	defaultAdminPass = "admin123"
)

func main() {
	// config from env (optionally overlaid by configs/config.yml)
	loadConfig()

	// init logger
	level := logger.InfoLevel
	if viper.GetBool("debug") {
		level = logger.DebugLevel
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	log := logger.Get(level)

	// the session secret keys the token HMAC; refuse to start without it
	secret := viper.GetString("session_secret")
	if secret == "" {
		log.Fatalw("SESSION_SECRET is required")
	}

	// open DB
	database, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, service.Config{
		SessionSecret:     secret,
		LowStockThreshold: viper.GetInt("low_stock_threshold"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// idempotent first-run admin seed
	seedAdmin(services, log)

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// evict expired sessions in the background
	go services.Sweeper.Run(ctx, defaultSweepTick)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(cancel, srv, log)
}

// loadConfig binds environment variables and, when present, the
// optional configs/config.yml overlay.
func loadConfig() {
	viper.SetDefault("port", defaultPort)
	viper.SetDefault("db_path", defaultDBPath)
	viper.SetDefault("low_stock_threshold", service.DefaultLowStockThreshold)
	viper.SetDefault("debug", false)
	viper.SetDefault("admin_username", defaultAdminUser)
	viper.SetDefault("admin_password", defaultAdminPass)
	viper.AutomaticEnv()

	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	_ = viper.ReadInConfig() // the file is optional; env alone is enough
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db_path")
	if dbPath == "" {
		log.Infow("db_path not set; using default file", "default", defaultDBPath)
		dbPath = defaultDBPath
	}
	return db.InitDB(dbPath)
}

// seedAdmin ensures the admin account exists. Startup proceeds on seed
// failure: an operator can still be locked out by a broken DB, which
// surfaces on first request anyway.
func seedAdmin(services *service.Service, log *logger.Logger) {
	username := viper.GetString("admin_username")
	password := viper.GetString("admin_password")
	if password == defaultAdminPass {
		log.Warnw("admin account uses the built-in default password; set ADMIN_PASSWORD", "username", username)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := services.EnsureDefaultAdmin(ctx, username, password)
	if err != nil {
		log.Errorw("failed to ensure admin user", "err", err)
		return
	}
	if created {
		log.Infow("admin user created", "username", username)
	}
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = defaultPort
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	// allow in-flight requests to complete
	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
