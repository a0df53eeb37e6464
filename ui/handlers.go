package ui

import (
	"net/http"
	"strconv"
	"time"

	"sukuyo/app"
	"sukuyo/domain/mansion"
	"sukuyo/domain/tenmon"
	"sukuyo/internal/errors"
	"sukuyo/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

type diagnoseRequest struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate" binding:"required"`
	Birthtime string `json:"birthtime"`
	Format    string `json:"format"`
}

type diagnoseResponse struct {
	Success    bool            `json:"success"`
	ID         string          `json:"id"`
	Name       *string         `json:"name"`
	Birthdate  string          `json:"birthdate"`
	Result     string          `json:"result"`
	ResultHTML string          `json:"result_html,omitempty"`
	Ephemeris  string          `json:"ephemeris"`
	Longitude  float64         `json:"longitude"`
	Phase      mansion.Phase   `json:"phase"`
	MoonAge    float64         `json:"moon_age"`
	Primary    mansion.Mansion `json:"primary"`
	Karma      mansion.Mansion `json:"karma"`
	Origin     mansion.Mansion `json:"origin"`
	Kanagi     string          `json:"kanagi"`
	Kotodama   string          `json:"kotodama"`
	Core       tenmon.Reading  `json:"core"`
}

type previewRequest struct {
	Birthdate string `json:"birthdate" binding:"required"`
}

type previewResponse struct {
	Success     bool   `json:"success"`
	ShukuName   string `json:"shuku_name"`
	PreviewText string `json:"preview_text"`
}

type shukuResponse struct {
	Success      bool                `json:"success"`
	ShukuID      int                 `json:"shuku_id"`
	ShukuName    string              `json:"shuku_name"`
	ShukuReading string              `json:"shuku_reading"`
	Detail       *models.ShukuDetail `json:"detail"`
}

func (s *Server) handleIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "宿曜占星術 診断API",
		"version":   Version,
		"ephemeris": s.service.EphemerisName(),
		"endpoints": []string{
			"GET /health",
			"POST /api/diagnose",
			"POST /api/premium-preview",
			"GET /api/shuku/{id}",
			"GET /api/mansions",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleDiagnose(c *gin.Context) {
	var req diagnoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("request body must be JSON with a birthdate field"))
		return
	}

	d, err := s.service.Diagnose(c.Request.Context(), app.DiagnoseInput{
		Name:      req.Name,
		Birthdate: req.Birthdate,
		Birthtime: req.Birthtime,
		Format:    req.Format,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, diagnoseResponse{
		Success:    true,
		ID:         d.ID.String(),
		Name:       optional(d.Name),
		Birthdate:  d.Birthdate,
		Result:     d.Text,
		ResultHTML: d.HTML,
		Ephemeris:  d.Ephemeris,
		Longitude:  d.Triple.Longitude,
		Phase:      d.Triple.Phase,
		MoonAge:    d.Triple.MoonAge,
		Primary:    d.Primary,
		Karma:      d.Karma,
		Origin:     d.Origin,
		Kanagi:     d.Kanagi,
		Kotodama:   d.Kotodama,
		Core:       d.Core,
	})
}

func (s *Server) handlePremiumPreview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, errors.InvalidInput("request body must be JSON with a birthdate field"))
		return
	}

	d, text, err := s.service.Preview(c.Request.Context(), req.Birthdate)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, previewResponse{
		Success:     true,
		ShukuName:   d.Primary.Name,
		PreviewText: text,
	})
}

func (s *Server) handleShuku(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.respondError(c, errors.InvalidInput("shuku id must be an integer, got "+c.Param("id")))
		return
	}

	detail, err := s.service.Shuku(c.Request.Context(), id)
	if err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, shukuResponse{
		Success:      true,
		ShukuID:      detail.ID,
		ShukuName:    detail.Name,
		ShukuReading: detail.Reading,
		Detail:       detail,
	})
}

func (s *Server) handleMansions(c *gin.Context) {
	all := s.service.Mansions()
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(all),
		"mansions": all,
	})
}

// respondError aborts with the JSON error envelope. Internal causes are
// logged, never returned.
func (s *Server) respondError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	public := err
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(requestIDKey)))
		public = errors.InternalError("internal server error")
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{
		Success: false,
		Error:   errors.GetCode(public),
		Detail:  errors.PublicMessage(public),
	})
}

// optional maps "" to a JSON null
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
