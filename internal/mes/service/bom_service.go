package service

import (
	"fmt"

	"github.com/hotfcs/mes-server/internal/mes/entity"
	"github.com/hotfcs/mes-server/internal/mes/store"
)

// BOMService BOM 리비전과 자재 행 편집기.
// 자재 행은 순서가 없고 라우팅 스텝의 Sequence 복사값(ProcessSequence)으로만
// 공정에 귀속된다. 저장은 전량 교체 방식이라 검증 실패 시 기존 상태가 그대로
// 남는다.
type BOMService struct {
	store *store.Store
}

func NewBOMService(st *store.Store) *BOMService {
	return &BOMService{store: st}
}

// CreateBOMRequest BOM 생성 요청
type CreateBOMRequest struct {
	ProductCode string `json:"productCode" binding:"required"`
	RoutingID   int64  `json:"routingId" binding:"required"`
	Status      string `json:"status"`
}

// Create 새 리비전 생성. 리비전 번호는 제품 코드별로 "Rev.01"부터 증가한다.
// 제품명/라우팅명은 생성 시점에 비정규화 복사된다.
func (s *BOMService) Create(req CreateBOMRequest) (entity.BOM, error) {
	var product entity.Product
	found := false
	for _, p := range s.store.Products("") {
		if p.Code == req.ProductCode {
			product = p
			found = true
			break
		}
	}
	if !found {
		return entity.BOM{}, fmt.Errorf("존재하지 않는 제품 코드입니다: %s", req.ProductCode)
	}
	routing, err := s.store.RoutingByID(req.RoutingID)
	if err != nil {
		return entity.BOM{}, fmt.Errorf("존재하지 않는 라우팅입니다: %d", req.RoutingID)
	}

	status := req.Status
	if status == "" {
		status = entity.StatusActive
	}
	b := s.store.AddBOM(entity.BOM{
		ProductCode: product.Code,
		ProductName: product.Name,
		RoutingID:   routing.ID,
		RoutingName: routing.Name,
		Revision:    s.nextRevision(req.ProductCode),
		Status:      status,
	})
	return b, nil
}

// nextRevision 제품 코드의 기존 리비전 수 기준 다음 번호
func (s *BOMService) nextRevision(productCode string) string {
	max := 0
	for _, b := range s.store.BOMsByProductCode(productCode) {
		var n int
		if _, err := fmt.Sscanf(b.Revision, "Rev.%02d", &n); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("Rev.%02d", max+1)
}

func (s *BOMService) List() []entity.BOM {
	return s.store.BOMs()
}

func (s *BOMService) Get(id int64) (entity.BOM, error) {
	return s.store.BOMByID(id)
}

// Delete BOM 삭제. 자재 행은 스토어가 연쇄 삭제한다.
func (s *BOMService) Delete(id int64) error {
	return s.store.DeleteBOM(id)
}

func (s *BOMService) Items(bomID int64) ([]entity.BOMItem, error) {
	if _, err := s.store.BOMByID(bomID); err != nil {
		return nil, err
	}
	return s.store.BOMItemsByBOMID(bomID), nil
}

// AddItem 자재 행 추가. 라우팅 스텝에서 공정을 먼저 선택해야 하며,
// 기본 자재는 첫 번째 사용중 자재에서 시드한다.
func (s *BOMService) AddItem(bomID int64, processSequence int) (entity.BOMItem, error) {
	bom, err := s.store.BOMByID(bomID)
	if err != nil {
		return entity.BOMItem{}, err
	}
	if processSequence <= 0 {
		return entity.BOMItem{}, fmt.Errorf("공정을 먼저 선택하세요")
	}
	var processName string
	for _, st := range s.store.RoutingStepsByRoutingID(bom.RoutingID) {
		if st.Sequence == processSequence {
			processName = st.Process
			break
		}
	}
	if processName == "" {
		return entity.BOMItem{}, fmt.Errorf("라우팅에 없는 공정입니다: %d", processSequence)
	}

	item := entity.BOMItem{
		BOMID:           bomID,
		ProcessSequence: processSequence,
		ProcessName:     processName,
		Quantity:        1,
	}
	if mats := s.store.Materials(entity.StatusActive); len(mats) > 0 {
		item.MaterialCode = mats[0].Code
		item.MaterialName = mats[0].Name
		item.Unit = mats[0].Unit
	}

	items := s.store.BOMItemsByBOMID(bomID)
	items = append(items, item)
	saved, err := s.store.ReplaceBOMItems(bomID, items)
	if err != nil {
		return entity.BOMItem{}, err
	}
	return saved[len(saved)-1], nil
}

// UpdateItemRequest 자재 행 수정 요청. nil 필드는 변경하지 않는다.
type UpdateItemRequest struct {
	MaterialCode      *string  `json:"materialCode"`
	Quantity          *float64 `json:"quantity"`
	Unit              *string  `json:"unit"`
	LossRate          *float64 `json:"lossRate"`
	AlternateMaterial *string  `json:"alternateMaterial"`
}

// UpdateItem 자재 행 수정. 자재 코드가 바뀌면 자재명과 단위를 같은 갱신에서
// 자재 마스터 기준으로 함께 교체한다 (이름/단위 불일치 방지).
func (s *BOMService) UpdateItem(bomID, itemID int64, req UpdateItemRequest) (entity.BOMItem, error) {
	items, err := s.Items(bomID)
	if err != nil {
		return entity.BOMItem{}, err
	}
	idx := -1
	for i := range items {
		if items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.BOMItem{}, store.ErrNotFound
	}
	it := &items[idx]

	if req.MaterialCode != nil && *req.MaterialCode != it.MaterialCode {
		mat, err := s.store.MaterialByCode(*req.MaterialCode)
		if err != nil {
			return entity.BOMItem{}, fmt.Errorf("존재하지 않는 자재 코드입니다: %s", *req.MaterialCode)
		}
		it.MaterialCode = mat.Code
		it.MaterialName = mat.Name
		it.Unit = mat.Unit
	}
	if req.Quantity != nil {
		it.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		it.Unit = *req.Unit
	}
	if req.LossRate != nil {
		it.LossRate = *req.LossRate
	}
	if req.AlternateMaterial != nil {
		it.AlternateMaterial = *req.AlternateMaterial
	}

	saved, err := s.store.ReplaceBOMItems(bomID, items)
	if err != nil {
		return entity.BOMItem{}, err
	}
	return saved[idx], nil
}

// DeleteItem 자재 행 삭제. 행은 순서가 없어 재번호가 필요 없다.
func (s *BOMService) DeleteItem(bomID, itemID int64) error {
	items, err := s.Items(bomID)
	if err != nil {
		return err
	}
	idx := -1
	for i := range items {
		if items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return store.ErrNotFound
	}
	items = append(items[:idx], items[idx+1:]...)
	_, err = s.store.ReplaceBOMItems(bomID, items)
	return err
}

// SaveItems 자재 행 집합 전체 저장. 자재 코드/자재명이 비어 있거나 수량이
// 0 이하인 행이 하나라도 있으면 전체 저장이 실패한다 (부분 커밋 없음).
// 성공 시 임시 id가 영구 id로 교체된다.
func (s *BOMService) SaveItems(bomID int64, items []entity.BOMItem) ([]entity.BOMItem, error) {
	if _, err := s.store.BOMByID(bomID); err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.MaterialCode == "" || it.MaterialName == "" || it.Quantity <= 0 {
			return nil, fmt.Errorf("자재 코드, 자재명, 수량을 확인하세요")
		}
	}
	return s.store.ReplaceBOMItems(bomID, items)
}
