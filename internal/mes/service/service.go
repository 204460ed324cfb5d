package service

import (
	"github.com/hotfcs/mes-server/internal/mes/store"
	"github.com/redis/go-redis/v9"
)

// Services MES 서비스 집합
type Services struct {
	Master  *MasterService
	Routing *RoutingService
	BOM     *BOMService
	Plan    *PlanService
}

func NewServices(st *store.Store, rdb *redis.Client) *Services {
	return &Services{
		Master:  NewMasterService(st),
		Routing: NewRoutingService(st),
		BOM:     NewBOMService(st),
		Plan:    NewPlanService(st, rdb),
	}
}
