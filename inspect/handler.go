package inspect

import (
	"github.com/gin-gonic/gin"

	"github.com/kbukum/aliasdi/di"
	apperrors "github.com/kbukum/aliasdi/errors"
	"github.com/kbukum/aliasdi/logger"
)

// Handler serves the registrations of one container.
type Handler struct {
	container *di.Container
}

// NewHandler creates a Handler for c.
func NewHandler(c *di.Container) *Handler {
	return &Handler{container: c}
}

// Register mounts the inspection routes of c on router.
func Register(router gin.IRoutes, c *di.Container) {
	h := NewHandler(c)
	router.GET("/aliases", h.List)
	router.GET("/aliases/:alias", h.Get)
}

// NewEngine returns a Gin engine serving the inspection routes of c at the
// root, with request ids, request logging and panic recovery.
func NewEngine(c *di.Container, log *logger.Logger) *gin.Engine {
	if log == nil {
		log = logger.Get("inspect")
	}
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(log), Recovery(log))
	Register(engine, c)
	return engine
}

// List responds with every registration, sorted by alias.
func (h *Handler) List(c *gin.Context) {
	regs := h.container.Registrations()
	RespondOKWithMeta(c, regs, &Meta{Total: len(regs), Scope: h.container.ScopeName()})
}

// Get responds with the registration of the :alias path parameter.
func (h *Handler) Get(c *gin.Context) {
	alias := c.Param("alias")
	info, ok := h.container.Registration(alias)
	if !ok {
		RespondWithError(c, apperrors.NotFound("alias", alias))
		return
	}
	RespondOK(c, info)
}
