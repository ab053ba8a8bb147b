package api

import (
	"net/http"

	"github.com/amouradore/mouradloader/internal/controller/api/handlers"
	"github.com/amouradore/mouradloader/internal/core/engine"
	"github.com/amouradore/mouradloader/internal/core/fileserver"
	"github.com/amouradore/mouradloader/internal/core/job"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type RouterConfig struct {
	Engine  engine.Engine
	Manager *job.Manager
	Files   *fileserver.Server
}

func SetupRouter(e *echo.Echo, cfg RouterConfig) {
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	e.GET("/files/:name", echo.WrapHandler(http.HandlerFunc(cfg.Files.ServeFile)))

	v1 := e.Group("/api/v1")
	config := huma.DefaultConfig("mouradloader API", "1.0.0")
	config.Servers = []*huma.Server{{URL: "/api/v1"}}
	config.Info.Description = "Self-hosted video downloader with live download progress"

	api := humaecho.NewWithGroup(e, v1, config)
	RegisterOperations(api, cfg)
}

// RegisterOperations attaches all API operations to api. Split from
// SetupRouter so tests can register against humatest.
func RegisterOperations(api huma.API, cfg RouterConfig) {
	mediaHandler := handlers.NewMediaHandler(cfg.Engine)
	huma.Register(api, huma.Operation{
		OperationID: "media-info",
		Method:      http.MethodPost,
		Path:        "/media/info",
		Summary:     "Get media info without downloading",
		Tags:        []string{"Media"},
	}, mediaHandler.Info)

	jobsHandler := handlers.NewJobsHandler(cfg.Manager)
	huma.Register(api, huma.Operation{
		OperationID:   "jobs-create",
		Method:        http.MethodPost,
		Path:          "/jobs",
		Summary:       "Start a background download",
		Tags:          []string{"Jobs"},
		DefaultStatus: http.StatusCreated,
	}, jobsHandler.Create)

	huma.Register(api, huma.Operation{
		OperationID: "jobs-result",
		Method:      http.MethodGet,
		Path:        "/jobs/{id}/result",
		Summary:     "Fetch a job's terminal result (one-shot)",
		Tags:        []string{"Jobs"},
	}, jobsHandler.Result)

	sse.Register(api, huma.Operation{
		OperationID: "jobs-stream",
		Method:      http.MethodGet,
		Path:        "/jobs/{id}/stream",
		Summary:     "Stream live download progress",
		Tags:        []string{"Jobs"},
	}, map[string]any{
		"progress": job.Snapshot{},
	}, jobsHandler.Stream)
}
