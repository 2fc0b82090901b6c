// Package handler is the echo transport layer: route registration, request
// decoding, and the error-to-status mapping. No business rules live here.
package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/dronewatch/dronewatch/internal/model"
	"github.com/dronewatch/dronewatch/internal/service"
)

// Ingestor is the write-side service surface.
type Ingestor interface {
	Ingest(ctx context.Context, in service.IngestInput) (service.IngestResult, error)
}

// IncidentReader is the read-side service surface.
type IncidentReader interface {
	List(ctx context.Context, in service.ListInput) ([]service.IncidentView, error)
	Get(ctx context.Context, id string) (service.IncidentView, error)
}

// Pinger reports database liveness for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler owns the API routes.
type Handler struct {
	ingest      Ingestor
	incidents   IncidentReader
	health      Pinger
	ingestToken string
	cacheMaxAge time.Duration
	logger      *zap.Logger
}

// New builds the handler.
func New(ingest Ingestor, incidents IncidentReader, health Pinger, ingestToken string, cacheMaxAge time.Duration, logger *zap.Logger) *Handler {
	return &Handler{
		ingest:      ingest,
		incidents:   incidents,
		health:      health,
		ingestToken: ingestToken,
		cacheMaxAge: cacheMaxAge,
		logger:      logger,
	}
}

// Register mounts the routes on e.
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/healthz", h.Healthz)
	api.GET("/incidents", h.ListIncidents)
	api.GET("/incidents/:id", h.GetIncident)
	api.GET("/embed/snippet", h.EmbedSnippet)
	api.POST("/ingest", h.Ingest, BearerAuth(h.ingestToken))
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type ingestSourceRequest struct {
	SourceURL   string    `json:"source_url"`
	SourceType  string    `json:"source_type"`
	SourceName  string    `json:"source_name"`
	SourceQuote string    `json:"source_quote"`
	TrustWeight float64   `json:"trust_weight"`
	Lang        string    `json:"lang"`
	PublishedAt time.Time `json:"published_at"`
}

type ingestRequest struct {
	Title        string              `json:"title"`
	Narrative    string              `json:"narrative"`
	OccurredAt   time.Time           `json:"occurred_at"`
	Lat          *float64            `json:"lat"`
	Lon          *float64            `json:"lon"`
	AssetType    string              `json:"asset_type"`
	Status       string              `json:"status"`
	Country      string              `json:"country"`
	LocationHint string              `json:"location_hint"`
	Source       ingestSourceRequest `json:"source"`
}

type ingestResponse struct {
	ID     string `json:"id"`
	Action string `json:"action"`
}

// Ingest accepts one report. Both outcomes answer 200; the action field says
// whether the report became a new incident or merged into an existing one.
func (h *Handler) Ingest(c echo.Context) error {
	var req ingestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "INVALID_INPUT", Detail: "malformed json body"})
	}

	res, err := h.ingest.Ingest(c.Request().Context(), service.IngestInput{
		Title:        req.Title,
		Narrative:    req.Narrative,
		OccurredAt:   req.OccurredAt,
		Lat:          req.Lat,
		Lon:          req.Lon,
		AssetType:    model.AssetType(req.AssetType),
		Status:       model.IncidentStatus(req.Status),
		Country:      req.Country,
		SourceURL:    req.Source.SourceURL,
		SourceType:   model.SourceType(req.Source.SourceType),
		SourceName:   req.Source.SourceName,
		SourceQuote:  req.Source.SourceQuote,
		TrustWeight:  req.Source.TrustWeight,
		Lang:         req.Source.Lang,
		LocationHint: req.LocationHint,
		PublishedAt:  req.Source.PublishedAt,
	})
	if err != nil {
		return h.writeError(c, err)
	}

	return c.JSON(http.StatusOK, ingestResponse{ID: res.ID.String(), Action: res.Action})
}

// ListIncidents serves the filtered incident list with a short public cache
// window.
func (h *Handler) ListIncidents(c echo.Context) error {
	in := service.ListInput{
		MinEvidence: intQuery(c, "min_evidence"),
		Country:     c.QueryParam("country"),
		Status:      c.QueryParam("status"),
		AssetType:   c.QueryParam("asset_type"),
		BBox:        c.QueryParam("bbox"),
		DateRange:   c.QueryParam("date_range"),
		Search:      c.QueryParam("search"),
		Limit:       intQuery(c, "limit"),
		Offset:      intQuery(c, "offset"),
	}

	views, err := h.incidents.List(c.Request().Context(), in)
	if err != nil {
		return h.writeError(c, err)
	}

	h.setCacheControl(c)
	return c.JSON(http.StatusOK, views)
}

// GetIncident serves one incident with its sources.
func (h *Handler) GetIncident(c echo.Context) error {
	view, err := h.incidents.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	h.setCacheControl(c)
	return c.JSON(http.StatusOK, view)
}

// Healthz answers 200 when the process and database are reachable, 503
// otherwise. Load balancers key on the status code; the body is diagnostic.
func (h *Handler) Healthz(c echo.Context) error {
	body := map[string]string{"status": "ok", "db": "ok"}
	if err := h.health.Ping(c.Request().Context()); err != nil {
		body["status"] = "degraded"
		body["db"] = "down"
		return c.JSON(http.StatusServiceUnavailable, body)
	}
	return c.JSON(http.StatusOK, body)
}

func (h *Handler) setCacheControl(c echo.Context) {
	if h.cacheMaxAge > 0 {
		c.Response().Header().Set("Cache-Control",
			fmt.Sprintf("public, max-age=%d", int(h.cacheMaxAge.Seconds())))
	}
}

// writeError maps service errors to HTTP responses. Unknown errors are logged
// and answered as an opaque 500.
func (h *Handler) writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "NOT_FOUND"})
	case errors.Is(err, service.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "INVALID_INPUT", Detail: err.Error()})
	}

	if rej, ok := service.AsRejection(err); ok {
		status := http.StatusUnprocessableEntity
		switch rej.Reason {
		case model.ReasonBadCoords, model.ReasonBadSourceURL:
			status = http.StatusBadRequest
		}
		return c.JSON(status, errorResponse{Error: rej.Reason, Detail: rej.Detail})
	}

	h.logger.Error("request failed",
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: model.ReasonInternal})
}

func intQuery(c echo.Context, name string) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
