package httpserver

import (
	"context"
	"errors"
	"time"

	"category-admin/internal/domain"
	categorysvc "category-admin/internal/service/category"
	"category-admin/internal/view"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// CategoryService is what the admin handlers need from the category service.
type CategoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Get(ctx context.Context, id string) (*domain.Category, error)
	Create(ctx context.Context, in categorysvc.Input, img *categorysvc.Upload) (*domain.Category, error)
	Update(ctx context.Context, id string, in categorysvc.Input, img *categorysvc.Upload) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	Options(ctx context.Context, exclude string) ([]categorysvc.Option, error)
}

// Deps bundles the collaborators of the router.
type Deps struct {
	CategorySvc CategoryService
	Renderer    *view.Renderer
	Translator  view.Translator
	// UploadDir is served under UploadURL when set.
	UploadDir   string
	UploadURL   string
	CORSOrigins []string
}

// buildRouter wires routes for the admin panel.
func buildRouter(logger *logrus.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.CategorySvc == nil {
		return nil, errors.New("category service is required")
	}
	if deps.Renderer == nil {
		r, err := view.NewRenderer()
		if err != nil {
			return nil, err
		}
		deps.Renderer = r
	}
	if deps.Translator == nil {
		deps.Translator = view.NewCatalog("en-US")
	}
	if deps.UploadURL == "" {
		deps.UploadURL = "/uploads"
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.HTMLRender = deps.Renderer

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	if deps.UploadDir != "" {
		router.Static(deps.UploadURL, deps.UploadDir)
	}

	h := &categoryHandler{
		svc:       deps.CategorySvc,
		tr:        deps.Translator,
		uploadURL: deps.UploadURL,
		logger:    logger,
	}
	g := router.Group(view.CategoryBase)
	g.GET("/index", h.index)
	g.GET("/view", h.view)
	g.GET("/create", h.createForm)
	g.POST("/create", h.create)
	g.GET("/update", h.updateForm)
	g.POST("/update", h.update)
	g.POST("/delete", h.delete)

	return router, nil
}
