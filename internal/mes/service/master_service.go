package service

import (
	"github.com/hotfcs/mes-server/internal/mes/entity"
	"github.com/hotfcs/mes-server/internal/mes/store"
)

// MasterService 마스터 디렉터리 조회 서비스.
// 시퀀서/BOM 편집기의 기본값 시드와 검증에만 쓰이며 코어는 변경하지 않는다.
type MasterService struct {
	store *store.Store
}

func NewMasterService(st *store.Store) *MasterService {
	return &MasterService{store: st}
}

func (s *MasterService) ListProducts(status string) []entity.Product {
	return s.store.Products(status)
}

func (s *MasterService) ListMaterials(status string) []entity.Material {
	return s.store.Materials(status)
}

func (s *MasterService) ListLines(status string) []entity.Line {
	return s.store.Lines(status)
}

func (s *MasterService) ListProcesses(line, status string) []entity.Process {
	return s.store.Processes(line, status)
}

func (s *MasterService) ListEquipments(line, status string) []entity.Equipment {
	return s.store.Equipments(line, status)
}
