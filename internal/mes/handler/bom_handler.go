package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/mes/entity"
	"github.com/hotfcs/mes-server/internal/mes/service"
	"github.com/hotfcs/mes-server/internal/mes/store"
)

type BOMHandler struct {
	svc *service.BOMService
}

func NewBOMHandler(svc *service.BOMService) *BOMHandler {
	return &BOMHandler{svc: svc}
}

func (h *BOMHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.List()})
}

func (h *BOMHandler) Create(c *gin.Context) {
	var req service.CreateBOMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	b, err := h.svc.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": b})
}

func (h *BOMHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 BOM id입니다"})
		return
	}
	b, err := h.svc.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "BOM이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": b})
}

func (h *BOMHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 BOM id입니다"})
		return
	}
	if err := h.svc.Delete(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "BOM이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

func (h *BOMHandler) ListItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 BOM id입니다"})
		return
	}
	items, err := h.svc.Items(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "BOM이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": items})
}

// AddItem 자재 행 추가. processSequence 쿼리로 라우팅 공정을 먼저 선택해야 한다.
func (h *BOMHandler) AddItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 BOM id입니다"})
		return
	}
	seq, _ := strconv.Atoi(c.Query("processSequence"))
	item, err := h.svc.AddItem(id, seq)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "BOM이 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": item})
}

func (h *BOMHandler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	itemID, ok2 := pathID(c, "itemId")
	if !ok || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 자재 행 id입니다"})
		return
	}
	var req service.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	item, err := h.svc.UpdateItem(id, itemID, req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "자재 행이 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": item})
}

func (h *BOMHandler) DeleteItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	itemID, ok2 := pathID(c, "itemId")
	if !ok || !ok2 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 자재 행 id입니다"})
		return
	}
	if err := h.svc.DeleteItem(id, itemID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "자재 행이 존재하지 않습니다"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success"})
}

func (h *BOMHandler) SaveItems(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "잘못된 BOM id입니다"})
		return
	}
	var items []entity.BOMItem
	if err := c.ShouldBindJSON(&items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": err.Error()})
		return
	}
	saved, err := h.svc.SaveItems(id, items)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "BOM이 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"code": 10004, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": saved})
}
