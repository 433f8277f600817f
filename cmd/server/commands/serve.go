package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/blogcms/internal/middleware"
	"github.com/anonto42/blogcms/internal/repositories"
	"github.com/anonto42/blogcms/internal/router"
	"github.com/anonto42/blogcms/internal/views"
	"github.com/anonto42/blogcms/pkg/config"
	"github.com/anonto42/blogcms/validators"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var portFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize database connection
	db, postRepo, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.CloseDB() // Ensure database connections are closed when serve exits

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := postRepo.Migrate(ctx); err != nil {
		return err
	}
	log.Println("Post schema is up to date.")

	e, err := newServer(cfg, postRepo)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// newServer builds the echo instance with middleware, renderer, validator and routes
func newServer(cfg *config.Config, postRepo repositories.PostRepository) (*echo.Echo, error) {
	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.IsDevelopment()
	e.Renderer = renderer
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e)

	// Setup routes and dependencies
	formTokens := middleware.NewFormTokenSigner(cfg.SecretKey, cfg.FormTokenTTL)
	router.SetupRoutes(e, postRepo, formTokens)

	return e, nil
}
