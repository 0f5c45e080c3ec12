package portfolio

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	site      Site
	staticDir string
}

func NewHandler(site Site, staticDir string) *Handler {
	return &Handler{site: site, staticDir: staticDir}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.page)
	r.Static("/static", h.staticDir)
}

// page renders on every request so edits to the shell show up without a
// restart.
func (h *Handler) page(c *gin.Context) {
	html, err := Render(h.site)
	if err != nil {
		log.Printf("[error] rendering portfolio: %v", err)
		c.String(http.StatusInternalServerError, "Error: index.html not found!")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
