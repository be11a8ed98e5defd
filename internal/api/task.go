package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/familyllc/recipe-manager/backend/internal/logger"
	"github.com/familyllc/recipe-manager/backend/internal/service"
	"github.com/familyllc/recipe-manager/backend/internal/types"
)

type TaskHandler struct {
	tasks service.ITaskService
	log   *logger.Logger
}

func NewTaskHandler(tasks service.ITaskService, baseLog *logger.Logger) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
		log:   baseLog.With("handler", "TaskHandler"),
	}
}

func (h *TaskHandler) RegisterRoutes(router gin.IRouter, write ...gin.HandlerFunc) {
	tasks := router.Group("/tasks")
	{
		tasks.GET("", h.ListTasks)
		tasks.GET("/:id", h.GetTask)
		tasks.POST("", withGuards(write, h.CreateTask)...)
		tasks.POST("/:id/complete", withGuards(write, h.CompleteTask)...)
	}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c, h.log, "task")
	if !ok {
		return
	}
	task, err := h.tasks.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req types.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	task, err := h.tasks.CreateTask(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, ok := pathID(c, h.log, "task")
	if !ok {
		return
	}
	task, err := h.tasks.CompleteTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
