package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/mes/entity"
	"github.com/hotfcs/mes-server/internal/mes/service"
	"github.com/hotfcs/mes-server/internal/mes/store"
)

type RoutingHandler struct {
	svc *service.RoutingService
}

func NewRoutingHandler(svc *service.RoutingService) *RoutingHandler {
	return &RoutingHandler{svc: svc}
}

func (h *RoutingHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.List()})
}

func (h *RoutingHandler) Create(c *gin.Context) {
	var req service.CreateRoutingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	r, err := h.svc.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": r})
}

func (h *RoutingHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 라우팅 id입니다"})
		return
	}
	r, err := h.svc.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "라우팅이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": r})
}

func (h *RoutingHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 라우팅 id입니다"})
		return
	}
	if err := h.svc.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "라우팅이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

func (h *RoutingHandler) ListSteps(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 라우팅 id입니다"})
		return
	}
	steps, err := h.svc.Steps(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "라우팅이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": steps})
}

func (h *RoutingHandler) AppendStep(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 라우팅 id입니다"})
		return
	}
	st, err := h.svc.AppendStep(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "라우팅이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": st})
}

func (h *RoutingHandler) UpdateStep(c *gin.Context) {
	id, ok := pathID(c, "id")
	stepID, ok2 := pathID(c, "stepId")
	if !ok || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 스텝 id입니다"})
		return
	}
	var req service.UpdateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	st, err := h.svc.UpdateStep(id, stepID, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "스텝이 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": st})
}

func (h *RoutingHandler) DeleteStep(c *gin.Context) {
	id, ok := pathID(c, "id")
	stepID, ok2 := pathID(c, "stepId")
	if !ok || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 스텝 id입니다"})
		return
	}
	if err := h.svc.DeleteStep(id, stepID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "스텝이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

func (h *RoutingHandler) MoveStep(c *gin.Context) {
	id, ok := pathID(c, "id")
	stepID, ok2 := pathID(c, "stepId")
	if !ok || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 스텝 id입니다"})
		return
	}
	var req struct {
		Direction string `json:"direction" binding:"required,oneof=up down"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	if err := h.svc.MoveStep(id, stepID, req.Direction); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "스텝이 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

func (h *RoutingHandler) SaveSteps(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 라우팅 id입니다"})
		return
	}
	var steps []entity.RoutingStep
	if err := c.ShouldBindJSON(&steps); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	saved, err := h.svc.SaveSteps(id, steps)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "라우팅이 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": saved})
}
