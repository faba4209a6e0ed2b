package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"worksheet-gateway/internal/models"
	"worksheet-gateway/internal/orchestrator"
	"worksheet-gateway/internal/service"
)

type LibraryHandler struct {
	Service  *service.LibraryService
	Sessions *orchestrator.Manager
}

func NewLibraryHandler(s *service.LibraryService, m *orchestrator.Manager) *LibraryHandler {
	return &LibraryHandler{Service: s, Sessions: m}
}

type saveWorksheetRequest struct {
	Title string `json:"title" binding:"required"`
}

// SaveWorksheet stores the session's current problem set under a title.
func (h *LibraryHandler) SaveWorksheet(c *gin.Context) {
	var req saveWorksheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, sess := h.Sessions.Resolve(c.GetHeader(SessionHeader))
	c.Header(SessionHeader, id)

	problems, eval, cfg, err := sess.Current()
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	ws := models.SavedWorksheet{
		Title:      req.Title,
		Problems:   problems,
		Evaluation: eval,
	}
	if cfg != nil {
		ws.Config = *cfg
	}
	if err := h.Service.SaveWorksheet(context.Background(), &ws); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ws)
}

func (h *LibraryHandler) ListWorksheets(c *gin.Context) {
	sheets, err := h.Service.ListWorksheets(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sheets)
}

func (h *LibraryHandler) GetWorksheet(c *gin.Context) {
	id := c.Param("id")
	ws, err := h.Service.GetWorksheet(context.Background(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Worksheet not found"})
		return
	}
	c.JSON(http.StatusOK, ws)
}

func (h *LibraryHandler) DeleteWorksheet(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.DeleteWorksheet(context.Background(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
