package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"footfall/internal/engine"
	"footfall/internal/export"
	"footfall/internal/metrics"
	"footfall/internal/models"
)

// Reloader starts a new background dataset load. Start reports false when
// no load was started, e.g. during shutdown.
type Reloader interface {
	Start(ctx context.Context) bool
}

type Handler struct {
	store    *engine.Store
	reloader Reloader
	metrics  *metrics.Metrics
	options  models.Options
}

func NewHandler(store *engine.Store, reloader Reloader, m *metrics.Metrics) *Handler {
	return &Handler{store: store, reloader: reloader, metrics: m, options: BuildOptions()}
}

func (h *Handler) register(api *echo.Group) {
	api.GET("/status", h.GetStatus)
	api.GET("/options", h.GetOptions)
	api.GET("/summary", h.GetSummary)
	api.GET("/summary/export", h.ExportSummary)
	api.POST("/reload", h.Reload)
}

// --- HANDLERS ---

func (h *Handler) GetStatus(c echo.Context) error {
	snap := h.store.Snapshot()
	st := models.Status{
		State:   string(snap.State),
		Source:  snap.Source,
		Records: len(snap.Records),
		Loads:   snap.Loads,
	}
	if snap.Err != nil {
		st.Error = snap.Err.Error()
	}
	if !snap.LoadedAt.IsZero() {
		loaded := snap.LoadedAt
		st.LoadedAt = &loaded
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) GetOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, h.options)
}

// summary binds, validates and computes the summary for the request.
func (h *Handler) summary(c echo.Context) (models.Summary, summaryQuery, error) {
	var q summaryQuery
	if err := c.Bind(&q); err != nil {
		return models.Summary{}, q, newAPIError(http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	}
	if err := c.Validate(&q); err != nil {
		return models.Summary{}, q, validationFailed(err)
	}
	sel, err := q.selection()
	if err != nil {
		return models.Summary{}, q, newAPIError(http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	}

	records, err := h.store.Snapshot().Ready()
	if err != nil {
		return models.Summary{}, q, dataError(err)
	}

	s := BuildSummary(records, sel)
	if h.metrics != nil {
		h.metrics.ObserveSummary(s.Selection.Age, s.FilteredRows)
	}
	return s, q, nil
}

func (h *Handler) GetSummary(c echo.Context) error {
	s, _, err := h.summary(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

func (h *Handler) ExportSummary(c echo.Context) error {
	s, q, err := h.summary(c)
	if err != nil {
		return err
	}

	format := export.Format(q.Format)
	if format == "" {
		format = export.FormatCSV
	}
	c.Response().Header().Set(echo.HeaderContentType, format.ContentType())
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="summary.%s"`, format))
	c.Response().WriteHeader(http.StatusOK)
	return export.Write(c.Response(), format, s)
}

func (h *Handler) Reload(c echo.Context) error {
	// The load outlives the request.
	if !h.reloader.Start(context.WithoutCancel(c.Request().Context())) {
		return errShuttingDown
	}
	return c.JSON(http.StatusAccepted, map[string]string{"state": string(engine.StateLoading)})
}
