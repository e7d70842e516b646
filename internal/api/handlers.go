package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	customerrors "github.com/axellelanca/shortlinks/internal/errors"
	"github.com/axellelanca/shortlinks/internal/models"
	"github.com/axellelanca/shortlinks/internal/services"
)

// ErrInvalidQuery is reported when a query parameter cannot be parsed.
var ErrInvalidQuery = customerrors.AppError{
	Message: "Invalid query parameter",
	Code:    "invalid_query",
	Status:  http.StatusBadRequest,
}

// ErrInvalidBody is reported when the request body is not valid JSON.
var ErrInvalidBody = customerrors.AppError{
	Message: "Invalid request body",
	Code:    "invalid_body",
	Status:  http.StatusBadRequest,
}

// SetupRoutes configures all routes on router.
func SetupRoutes(router *gin.Engine, linkService *services.LinkService, log zerolog.Logger) {
	h := &handlers{links: linkService, log: log.With().Str("component", "api").Logger()}

	router.GET("/health", HealthCheckHandler)

	l := router.Group("/l")
	{
		l.POST("/shorten/", h.shorten)
		l.GET("/list/", h.list)
		l.GET("/:short_url/", h.redirect)
		l.GET("/:short_url/activate/", h.activate)
		l.GET("/:short_url/deactivate/", h.deactivate)
	}
}

// HealthCheckHandler answers liveness probes.
func HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type handlers struct {
	links *services.LinkService
	log   zerolog.Logger
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Msg  string `json:"msg"`
	Code string `json:"code"`
}

// ShortenRequest accepts one URL or a batch.
// Single: {"full_url": "example.com"}
// Batch:  {"full_urls": ["example.com", "https://go.dev"]}
type ShortenRequest struct {
	FullURL  string   `json:"full_url"`
	FullURLs []string `json:"full_urls"`
}

// ShortenResult is one entry of a batch response.
type ShortenResult struct {
	FullURL string         `json:"full_url"`
	Link    *models.Link   `json:"link,omitempty"`
	Error   *ErrorResponse `json:"error,omitempty"`
}

// BatchSummary counts the outcomes of a batch.
type BatchSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// ShortenBatchResponse is the body returned for a batch request.
type ShortenBatchResponse struct {
	Results []ShortenResult `json:"results"`
	Summary BatchSummary    `json:"summary"`
}

func (h *handlers) shorten(c *gin.Context) {
	var req ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		renderError(c, ErrInvalidBody)
		return
	}

	if len(req.FullURLs) > 0 {
		h.shortenBatch(c, req.FullURLs)
		return
	}

	link, err := h.links.Shorten(c.Request.Context(), req.FullURL)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// shortenBatch shortens each URL independently. One failure does not affect the others.
func (h *handlers) shortenBatch(c *gin.Context, urls []string) {
	resp := ShortenBatchResponse{
		Results: make([]ShortenResult, 0, len(urls)),
		Summary: BatchSummary{Total: len(urls)},
	}

	for _, raw := range urls {
		result := ShortenResult{FullURL: raw}
		link, err := h.links.Shorten(c.Request.Context(), raw)
		if err != nil {
			app := customerrors.FromError(err)
			result.Error = &ErrorResponse{Msg: app.Message, Code: app.Code}
			resp.Summary.Failed++
			if app.Status >= http.StatusInternalServerError {
				_ = c.Error(err)
			}
		} else {
			result.Link = link
			resp.Summary.Successful++
		}
		resp.Results = append(resp.Results, result)
	}

	h.log.Info().Int("total", resp.Summary.Total).Int("successful", resp.Summary.Successful).
		Int("failed", resp.Summary.Failed).Msg("batch shortened")

	status := http.StatusOK
	switch {
	case resp.Summary.Successful == 0:
		status = http.StatusBadRequest
	case resp.Summary.Failed > 0:
		status = http.StatusMultiStatus
	}
	c.JSON(status, resp)
}

func (h *handlers) list(c *gin.Context) {
	var filter *bool
	if raw, ok := c.GetQuery("is_active"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			renderError(c, ErrInvalidQuery)
			return
		}
		filter = &v
	}

	links, err := h.links.ListLinks(c.Request.Context(), filter)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// redirect resolves the code and answers 308. Browser prefetches are
// acknowledged without counting.
func (h *handlers) redirect(c *gin.Context) {
	if c.GetHeader("Purpose") == "prefetch" {
		c.Status(http.StatusOK)
		return
	}

	link, err := h.links.Resolve(c.Request.Context(), c.Param("short_url"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.Redirect(http.StatusPermanentRedirect, link.FullURL)
}

func (h *handlers) activate(c *gin.Context) {
	link, err := h.links.Activate(c.Request.Context(), c.Param("short_url"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *handlers) deactivate(c *gin.Context) {
	link, err := h.links.Deactivate(c.Request.Context(), c.Param("short_url"))
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

// renderError maps err to its status and {"msg","code"} body. Internal
// details are attached to the gin context for the access log only.
func renderError(c *gin.Context, err error) {
	app := customerrors.FromError(err)
	if app.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(app.Status, ErrorResponse{Msg: app.Message, Code: app.Code})
}
