package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/corenotes/internal/common"
	"github.com/dmitrijs2005/corenotes/internal/logging"
	"github.com/dmitrijs2005/corenotes/internal/server/tasks"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	svc    *tasks.Service
	logger logging.Logger
}

func NewTaskHandler(svc *tasks.Service, logger logging.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, logger: logger}
}

// List returns every task, newest first. ?search= narrows by title and
// description.
func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponses(list))
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(t))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toResponse(t))
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Update(c.Request.Context(), id, req.patch())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toResponse(t))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps domain errors to status codes. Unexpected errors are logged and
// answered with a generic message.
func (h *TaskHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrTitleRequired),
		errors.Is(err, common.ErrInvalidColor),
		errors.Is(err, common.ErrEmptyPatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		h.logger.Error(c.Request.Context(), "request failed", "error", err, "request_id", requestID(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": common.ErrInternal.Error()})
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
