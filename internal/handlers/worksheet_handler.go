package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"worksheet-gateway/internal/models"
	"worksheet-gateway/internal/orchestrator"
)

// SessionHeader carries the browser session ID; the gateway mints one when
// the header is absent and echoes it back on every response.
const SessionHeader = "X-Session-ID"

type WorksheetHandler struct {
	Sessions *orchestrator.Manager
}

func NewWorksheetHandler(m *orchestrator.Manager) *WorksheetHandler {
	return &WorksheetHandler{Sessions: m}
}

func (h *WorksheetHandler) session(c *gin.Context) *orchestrator.Session {
	id, sess := h.Sessions.Resolve(c.GetHeader(SessionHeader))
	c.Header(SessionHeader, id)
	return sess
}

func (h *WorksheetHandler) Generate(c *gin.Context) {
	sess := h.session(c)
	var cfg models.GenerationConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, err := sess.Generate(c.Request.Context(), cfg)
	if err != nil {
		writeOpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"problems": snap.Problems, "evaluation": snap.Evaluation})
}

func (h *WorksheetHandler) Upload(c *gin.Context) {
	sess := h.session(c)
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("reading file: %v", err)})
		return
	}
	defer f.Close()

	snap, err := sess.Upload(c.Request.Context(), fh.Filename, f)
	if err != nil {
		writeOpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pool": snap.Pool, "evaluation": snap.PoolEvaluation})
}

func (h *WorksheetHandler) Assemble(c *gin.Context) {
	sess := h.session(c)
	var req orchestrator.AssembleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, err := sess.Assemble(c.Request.Context(), req)
	if err != nil {
		writeOpError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"problems": snap.Problems, "evaluation": snap.Evaluation})
}

func (h *WorksheetHandler) Evaluate(c *gin.Context) {
	sess := h.session(c)
	var problems []models.Problem
	if err := c.ShouldBindJSON(&problems); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	eval, err := sess.Evaluate(c.Request.Context(), problems)
	if err != nil {
		writeOpError(c, err)
		return
	}
	c.JSON(http.StatusOK, eval)
}

// Export streams the engine's PDF back to the browser under the fixed
// per-kind filename. A second export while one is in flight answers 204
// without touching the engine.
func (h *WorksheetHandler) Export(c *gin.Context) {
	sess := h.session(c)
	kind := c.Param("kind")
	var cfg models.GenerationConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := sess.Export(c.Request.Context(), cfg, kind)
	if err != nil {
		writeOpError(c, err)
		return
	}
	if res == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, res.Filename))
	c.Data(http.StatusOK, "application/pdf", res.Data)
}

func (h *WorksheetHandler) State(c *gin.Context) {
	sess := h.session(c)
	c.JSON(http.StatusOK, sess.Snapshot())
}

// writeOpError maps orchestrator failures onto HTTP statuses: validation and
// bad input → 400, local precondition conflicts → 409, engine failures → 502.
func writeOpError(c *gin.Context, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, orchestrator.ErrBadKind):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, orchestrator.ErrBusy),
		errors.Is(err, orchestrator.ErrNoPool),
		errors.Is(err, orchestrator.ErrEmptySet):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}
