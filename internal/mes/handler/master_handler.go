package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/mes/service"
)

type MasterHandler struct {
	svc *service.MasterService
}

func NewMasterHandler(svc *service.MasterService) *MasterHandler {
	return &MasterHandler{svc: svc}
}

func (h *MasterHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.ListProducts(c.Query("status"))})
}

func (h *MasterHandler) ListMaterials(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.ListMaterials(c.Query("status"))})
}

func (h *MasterHandler) ListLines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.ListLines(c.Query("status"))})
}

func (h *MasterHandler) ListProcesses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.ListProcesses(c.Query("line"), c.Query("status"))})
}

func (h *MasterHandler) ListEquipments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": h.svc.ListEquipments(c.Query("line"), c.Query("status"))})
}
