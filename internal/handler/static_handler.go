package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"newsproxy/internal/model"
	"newsproxy/internal/web"
)

type StaticHandler struct {
	widgets map[string]model.WidgetDescriptor
}

func NewStaticHandler(widgets map[string]model.WidgetDescriptor) *StaticHandler {
	return &StaticHandler{widgets: widgets}
}

func (h *StaticHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *StaticHandler) GetWidgets(c *gin.Context) {
	c.JSON(http.StatusOK, h.widgets)
}

func (h *StaticHandler) GetTerminal(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.Terminal)
}
