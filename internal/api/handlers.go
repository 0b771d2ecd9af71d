// Package api serves a generated report directory over HTTP so a run's
// artifacts can be browsed without shipping them around.
package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/labstack/echo/v4"

	"github.com/confaudit/confaudit/internal/report"
)

// Handler serves the artifacts of one output directory.
type Handler struct {
	outputDir string
}

// NewHandler creates a Handler for the given output directory.
func NewHandler(outputDir string) *Handler {
	return &Handler{outputDir: outputDir}
}

// HandleHealth reports server liveness.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// HandleSummary serves the summary artifact.
func (h *Handler) HandleSummary(c echo.Context) error {
	return h.serveArtifact(c, report.SummaryArtifact)
}

// HandleTable serves the tabular artifact.
func (h *Handler) HandleTable(c echo.Context) error {
	return h.serveArtifact(c, report.TableArtifact)
}

// HandleRows decodes the row dump and serves it as JSON.
func (h *Handler) HandleRows(c echo.Context) error {
	rows, err := report.ReadRows(h.outputDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RespondWithError(c, NewNotFoundError(report.RowsArtifact))
		}
		return RespondWithError(c, NewInternalError("reading rows artifact", err))
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) serveArtifact(c echo.Context, name string) error {
	path := filepath.Join(h.outputDir, name)
	if _, err := os.Stat(path); err != nil {
		return RespondWithError(c, NewNotFoundError(name))
	}
	return c.File(path)
}
