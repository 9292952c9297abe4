package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"sectorlens/internal/model"
	"sectorlens/pkg/imagegen"
	"sectorlens/pkg/llm"

	"github.com/gin-gonic/gin"
)

type SectorLookup interface {
	LookupSector(ctx context.Context, country string) (*model.SectorResult, error)
	Provider() string
}

type Illustrator interface {
	Illustrate(ctx context.Context, sector, country string) model.ImageResult
}

type AnalyzeHandler struct {
	sectors SectorLookup
	images  Illustrator
}

func NewAnalyzeHandler(sectors SectorLookup, images Illustrator) *AnalyzeHandler {
	return &AnalyzeHandler{sectors: sectors, images: images}
}

func (h *AnalyzeHandler) AnalyzeCountry(c *gin.Context) {
	req, ok := bindAnalysisRequest(c)
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Country name is required"})
		return
	}

	// Upstream calls run to completion even if the client goes away.
	ctx := context.WithoutCancel(c.Request.Context())

	slog.Info("analyzing country", "country", req.Country, "provider", h.sectors.Provider())

	sector, err := h.sectors.LookupSector(ctx, req.Country)
	if err != nil {
		res := sectorLookupError(h.sectors.Provider(), err)
		slog.Error("sector lookup failed", "country", req.Country, "status", res.Status, "details", res.Details, "error", err)
		c.JSON(http.StatusInternalServerError, res)
		return
	}

	slog.Info("sector identified", "country", req.Country, "sector", sector.Sector, "model", sector.ModelUsed)

	res := AnalysisResponse{
		Country:     req.Country,
		Sector:      sector.Sector,
		ImagePrompt: imagegen.Caption(sector.Sector, req.Country),
	}

	image := h.images.Illustrate(ctx, sector.Sector, req.Country)
	if image.Available() {
		uri := image.Image.DataURI()
		res.ImageURL = &uri
	} else {
		slog.Warn("responding without image", "country", req.Country, "sector", sector.Sector)
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnalyzeHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "Server is running"})
}

// Recover turns a panic inside a handler into the generic 500 body.
func Recover(c *gin.Context, recovered any) {
	slog.Error("unexpected error", "path", c.Request.URL.Path, "panic", recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "An unexpected error occurred",
		Details: fmt.Sprint(recovered),
	})
}

func bindAnalysisRequest(c *gin.Context) (model.AnalysisRequest, bool) {
	var body AnalyzeCountryRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		slog.Warn("invalid analyze request body", "error", err)
		return model.AnalysisRequest{}, false
	}

	if body.Country == nil {
		return model.AnalysisRequest{}, false
	}

	country := strings.TrimSpace(*body.Country)
	if country == "" {
		return model.AnalysisRequest{}, false
	}

	return model.AnalysisRequest{Country: country}, true
}

func sectorLookupError(provider string, err error) ErrorResponse {
	res := ErrorResponse{
		Error:   fmt.Sprintf("Failed to analyze country using %s API", provider),
		Details: err.Error(),
		Status:  "Unknown",
	}

	var ue *llm.UpstreamError
	if errors.As(err, &ue) {
		res.Details = ue.Message
		if ue.StatusCode != 0 {
			res.Status = ue.StatusCode
		}
	}
	return res
}
