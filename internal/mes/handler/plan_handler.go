package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/mes/service"
	"github.com/hotfcs/mes-server/internal/mes/store"
)

type PlanHandler struct {
	svc *service.PlanService
}

func NewPlanHandler(svc *service.PlanService) *PlanHandler {
	return &PlanHandler{svc: svc}
}

// ===== 생산계획 =====

func (h *PlanHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.ListPlans()})
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req service.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	plan, err := h.svc.CreatePlan(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": plan})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 계획 id입니다"})
		return
	}
	plan, err := h.svc.GetPlan(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "생산계획이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": plan})
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 계획 id입니다"})
		return
	}
	var req service.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	plan, err := h.svc.UpdatePlan(id, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "생산계획이 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": plan})
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 계획 id입니다"})
		return
	}
	if err := h.svc.DeletePlan(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "생산계획이 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// ===== 작업지시 =====

func (h *PlanHandler) ListWorkOrders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.ListWorkOrders(c.Query("planCode"))})
}

func (h *PlanHandler) CreateWorkOrder(c *gin.Context) {
	var req service.CreateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	wo, err := h.svc.CreateWorkOrder(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": wo})
}

func (h *PlanHandler) GetWorkOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 지시 id입니다"})
		return
	}
	wo, err := h.svc.GetWorkOrder(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "작업지시가 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": wo})
}

func (h *PlanHandler) UpdateWorkOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 지시 id입니다"})
		return
	}
	var req service.UpdateWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	wo, err := h.svc.UpdateWorkOrder(id, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "작업지시가 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": wo})
}

func (h *PlanHandler) DeleteWorkOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 지시 id입니다"})
		return
	}
	if err := h.svc.DeleteWorkOrder(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "작업지시가 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

// ===== 생산실적 =====

func (h *PlanHandler) ListResults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.ListResults(c.Query("orderCode"))})
}

func (h *PlanHandler) RecordResult(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 지시 id입니다"})
		return
	}
	var req service.RecordResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	result, err := h.svc.RecordResult(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "작업지시가 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": result})
}
