package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/mes/entity"
	"github.com/hotfcs/mes-server/internal/mes/repository"
	"gorm.io/gorm"
)

// MESBOMHandler SQL로 영속되는 BOM 헤더 엔드포인트.
// 응답 형식은 기존 클라이언트와의 계약이라 {success, ...} 구조를 유지한다.
type MESBOMHandler struct {
	repo *repository.BOMRepository
}

func NewMESBOMHandler(repo *repository.BOMRepository) *MESBOMHandler {
	return &MESBOMHandler{repo: repo}
}

// List GET /api/mes/boms
func (h *MESBOMHandler) List(c *gin.Context) {
	boms, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	items, err := h.repo.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if boms == nil {
		boms = []entity.BOM{}
	}
	if items == nil {
		items = []entity.BOMItem{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"boms": boms, "bomItems": items},
		"count":   len(boms),
	})
}

// CreateBOMRecordRequest POST /api/mes/boms 요청 본문
type CreateBOMRecordRequest struct {
	ProductCode string `json:"productCode"`
	ProductName string `json:"productName"`
	RoutingID   int64  `json:"routingId"`
	RoutingName string `json:"routingName"`
	Revision    string `json:"revision"`
	Status      string `json:"status"`
}

// Create POST /api/mes/boms
func (h *MESBOMHandler) Create(c *gin.Context) {
	var req CreateBOMRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "요청 본문이 올바르지 않습니다"})
		return
	}
	if req.ProductCode == "" || req.ProductName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "제품 코드와 제품명은 필수입니다"})
		return
	}
	status := req.Status
	if status == "" {
		status = entity.StatusActive
	}
	bom := &entity.BOM{
		ProductCode: req.ProductCode,
		ProductName: req.ProductName,
		RoutingID:   req.RoutingID,
		RoutingName: req.RoutingName,
		Revision:    req.Revision,
		Status:      status,
	}
	if err := h.repo.Create(c.Request.Context(), bom); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "BOM이 등록되었습니다", "data": bom})
}

// Delete DELETE /api/mes/boms?id=<id>
func (h *MESBOMHandler) Delete(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "id가 없습니다"})
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "잘못된 id입니다"})
		return
	}
	if _, err := h.repo.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "BOM이 존재하지 않습니다"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
