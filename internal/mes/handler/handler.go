package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hotfcs/mes-server/internal/mes/repository"
	"github.com/hotfcs/mes-server/internal/mes/service"
)

// Handlers MES HTTP 처리기 집합
type Handlers struct {
	Master  *MasterHandler
	Routing *RoutingHandler
	BOM     *BOMHandler
	Plan    *PlanHandler
	MESBOM  *MESBOMHandler
}

func NewHandlers(services *service.Services, repos *repository.Repositories) *Handlers {
	return &Handlers{
		Master:  NewMasterHandler(services.Master),
		Routing: NewRoutingHandler(services.Routing),
		BOM:     NewBOMHandler(services.BOM),
		Plan:    NewPlanHandler(services.Plan),
		MESBOM:  NewMESBOMHandler(repos.BOM),
	}
}

// pathID :id 경로 파라미터 파싱
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
