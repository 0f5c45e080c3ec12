package admin

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-gif/internal/gifmeta"
	"portfolio-gif/internal/project"
	"portfolio-gif/internal/store"
)

const sessionCookie = "admin_session"

type Handler struct {
	editor   *Editor
	media    Media
	sessions *Sessions
}

func NewHandler(editor *Editor, sessions *Sessions) *Handler {
	return &Handler{editor: editor, media: editor.media, sessions: sessions}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/media", h.listMedia)
	r.GET("/media/:name/preview", h.previewMedia)

	r.GET("/projects", h.listProjects)
	r.DELETE("/projects/:id", h.deleteProject)

	r.GET("/form", h.getForm)
	r.PUT("/form", h.putForm)
	r.POST("/form/edit/:id", h.editForm)
	r.POST("/form/submit", h.submitForm)
	r.POST("/form/cancel", h.cancelForm)
}

func (h *Handler) listMedia(c *gin.Context) {
	names, err := h.media.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	resp := gin.H{"files": names}
	if len(names) == 0 {
		resp["warning"] = "No GIFs found in '" + h.media.Dir + "' folder! Please add files manually."
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) previewMedia(c *gin.Context) {
	p, err := h.media.Path(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := gifmeta.WritePreview(&buf, p, gifmeta.PreviewWidth); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) listProjects(c *gin.Context) {
	listing, err := h.editor.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error fetching projects: " + err.Error()})
		return
	}
	invalid := make([]string, 0, len(listing.Invalid))
	for _, err := range listing.Invalid {
		invalid = append(invalid, err.Error())
	}
	c.JSON(http.StatusOK, gin.H{"projects": listing.Projects, "invalid": invalid})
}

func (h *Handler) deleteProject(c *gin.Context) {
	id := c.Param("id")
	if err := h.editor.Delete(c.Request.Context(), id); err != nil {
		c.JSON(storeStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id, "message": "Deleted!"})
}

func (h *Handler) getForm(c *gin.Context) {
	_, state, _ := h.session(c)
	c.JSON(http.StatusOK, state)
}

func (h *Handler) putForm(c *gin.Context) {
	id, state, _ := h.session(c)
	var input project.FormState
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	state = state.Apply(input)
	h.save(c, id, state)
	c.JSON(http.StatusOK, state)
}

func (h *Handler) editForm(c *gin.Context) {
	id, _, _ := h.session(c)
	state, err := h.editor.Edit(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(storeStatus(err), gin.H{"error": err.Error()})
		return
	}
	h.save(c, id, state)
	c.JSON(http.StatusOK, state)
}

func (h *Handler) submitForm(c *gin.Context) {
	id, state, ok := h.session(c)
	editing := state.EditMode

	next, key, err := h.editor.Submit(c.Request.Context(), state)
	if ok {
		h.save(c, id, next)
	}
	if err != nil {
		status := storeStatus(err)
		if IsValidation(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error(), "state": next})
		return
	}

	message := "Project Created Successfully!"
	status := http.StatusCreated
	if editing {
		message = "Project Updated Successfully!"
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"key": key, "message": message, "state": next})
}

func (h *Handler) cancelForm(c *gin.Context) {
	id, state, ok := h.session(c)
	state = h.editor.Cancel(state)
	if ok {
		h.save(c, id, state)
	}
	c.JSON(http.StatusOK, state)
}

// session resolves the caller's form state from the session cookie. ok is
// false when the caller has no live session.
func (h *Handler) session(c *gin.Context) (string, project.FormState, bool) {
	id, _ := c.Cookie(sessionCookie)
	state, ok := h.sessions.Load(id)
	return id, state, ok
}

// save stores state for the caller, issuing a cookie when a new session
// was started.
func (h *Handler) save(c *gin.Context, id string, state project.FormState) {
	if saved := h.sessions.Save(id, state); saved != id {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(sessionCookie, saved, 0, "/", "", false, true)
	}
}

func storeStatus(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	var storeErr *store.StoreError
	if errors.As(err, &storeErr) {
		return http.StatusBadGateway
	}
	if errors.Is(err, project.ErrInvalidRecord) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
