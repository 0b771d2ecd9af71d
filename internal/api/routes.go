package api

import (
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/confaudit/confaudit/internal/config"
)

// NewServer builds the echo instance serving an output directory.
func NewServer(outputDir string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	h := NewHandler(outputDir)
	RegisterRoutes(e, h, outputDir)
	return e
}

// RegisterRoutes wires the report endpoints.
func RegisterRoutes(e *echo.Echo, h *Handler, outputDir string) {
	apiGroup := e.Group("/api")
	apiGroup.GET("/health", h.HandleHealth)
	apiGroup.GET("/summary", h.HandleSummary)
	apiGroup.GET("/table", h.HandleTable)
	apiGroup.GET("/rows", h.HandleRows)

	e.Static("/plots", filepath.Join(outputDir, config.PlotsDirName))
}
