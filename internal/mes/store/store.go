package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hotfcs/mes-server/internal/mes/entity"
	"go.uber.org/zap"
)

// ErrNotFound 대상 엔티티 없음
var ErrNotFound = errors.New("entity not found")

// 컬렉션 이름
const (
	ColRoutings     = "routings"
	ColRoutingSteps = "routingSteps"
	ColBOMs         = "boms"
	ColBOMItems     = "bomItems"
	ColPlans        = "productionPlans"
	ColWorkOrders   = "workOrders"
	ColResults      = "productionResults"
)

// Event 스토어 변경 알림
type Event struct {
	Collection string `json:"collection"`
	Action     string `json:"action"` // add, update, delete, replace
	ID         int64  `json:"id"`
}

// Store MES 코어의 인메모리 엔티티 스토어.
// 모든 변경은 뮤테이션 완료 후 구독자에게 동기 통지된다.
// 마스터 디렉터리(제품/자재/라인/공정/설비)는 기동 시 시드되며 코어가 변경하지 않는다.
type Store struct {
	mu  sync.RWMutex
	log *zap.Logger

	nextID int64

	products   []entity.Product
	materials  []entity.Material
	lines      []entity.Line
	processes  []entity.Process
	equipments []entity.Equipment

	routings     []entity.Routing
	routingSteps []entity.RoutingStep
	boms         []entity.BOM
	bomItems     []entity.BOMItem
	plans        []entity.ProductionPlan
	workOrders   []entity.WorkOrder
	results      []entity.ProductionResult

	subMu     sync.RWMutex
	subs      map[int64]func(Event)
	nextSubID int64
}

func NewStore(log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		log:    log,
		nextID: 1,
		subs:   make(map[int64]func(Event)),
	}
}

// Subscribe 변경 알림 구독을 등록하고 해제 함수를 반환한다.
func (s *Store) Subscribe(fn func(Event)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// publish 뮤테이션 커밋 후 호출. 스토어 락 밖에서 실행해야 한다.
func (s *Store) publish(events []Event) {
	if len(events) == 0 {
		return
	}
	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for _, ev := range events {
		for _, fn := range s.subs {
			fn(ev)
		}
	}
}

// allocID 영구 id 발급. 스토어 락 안에서 호출한다.
func (s *Store) allocID() int64 {
	id := s.nextID
	s.nextID++
	return id
}

// ===== 마스터 디렉터리 =====

// SeedMasters 마스터 디렉터리 시드. 기동 시 1회 호출.
func (s *Store) SeedMasters(products []entity.Product, materials []entity.Material, lines []entity.Line, processes []entity.Process, equipments []entity.Equipment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	assign := func(id *int64) {
		if *id == 0 {
			*id = s.allocID()
		}
	}
	for i := range products {
		assign(&products[i].ID)
	}
	for i := range materials {
		assign(&materials[i].ID)
	}
	for i := range lines {
		assign(&lines[i].ID)
	}
	for i := range processes {
		assign(&processes[i].ID)
	}
	for i := range equipments {
		assign(&equipments[i].ID)
	}
	s.products = products
	s.materials = materials
	s.lines = lines
	s.processes = processes
	s.equipments = equipments
}

// Products 제품 목록 (status 필터 선택)
func (s *Store) Products(status string) []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, 0, len(s.products))
	for _, p := range s.products {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// Materials 자재 목록 (status 필터 선택)
func (s *Store) Materials(status string) []entity.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Material, 0, len(s.materials))
	for _, m := range s.materials {
		if status == "" || m.Status == status {
			out = append(out, m)
		}
	}
	return out
}

// MaterialByCode 자재 코드 조회
func (s *Store) MaterialByCode(code string) (entity.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.materials {
		if m.Code == code {
			return m, nil
		}
	}
	return entity.Material{}, ErrNotFound
}

// Lines 라인 목록 (status 필터 선택)
func (s *Store) Lines(status string) []entity.Line {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Line, 0, len(s.lines))
	for _, l := range s.lines {
		if status == "" || l.Status == status {
			out = append(out, l)
		}
	}
	return out
}

// Processes 공정 목록 (line/status 필터 선택)
func (s *Store) Processes(line, status string) []entity.Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Process, 0, len(s.processes))
	for _, p := range s.processes {
		if line != "" && p.Line != line {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Equipments 설비 목록 (line/status 필터 선택)
func (s *Store) Equipments(line, status string) []entity.Equipment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Equipment, 0, len(s.equipments))
	for _, e := range s.equipments {
		if line != "" && e.Line != line {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ===== 라우팅 =====

func (s *Store) Routings() []entity.Routing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Routing, len(s.routings))
	copy(out, s.routings)
	return out
}

func (s *Store) RoutingByID(id int64) (entity.Routing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.routings {
		if r.ID == id {
			return r, nil
		}
	}
	return entity.Routing{}, ErrNotFound
}

func (s *Store) RoutingByCode(code string) (entity.Routing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.routings {
		if r.Code == code {
			return r, nil
		}
	}
	return entity.Routing{}, ErrNotFound
}

func (s *Store) AddRouting(r entity.Routing) entity.Routing {
	s.mu.Lock()
	r.ID = s.allocID()
	now := time.Now()
	r.CreatedAt = now
	r.ModifiedAt = now
	s.routings = append(s.routings, r)
	s.mu.Unlock()

	s.publish([]Event{{Collection: ColRoutings, Action: "add", ID: r.ID}})
	return r
}

func (s *Store) UpdateRouting(r entity.Routing) (entity.Routing, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.routings {
		if s.routings[i].ID == r.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return entity.Routing{}, ErrNotFound
	}
	r.CreatedAt = s.routings[idx].CreatedAt
	r.ModifiedAt = time.Now()
	s.routings[idx] = r
	s.mu.Unlock()

	s.publish([]Event{{Collection: ColRoutings, Action: "update", ID: r.ID}})
	return r, nil
}

// DeleteRouting 라우팅 삭제. 소유한 스텝을 함께 삭제한다.
func (s *Store) DeleteRouting(id int64) error {
	s.mu.Lock()
	idx := -1
	for i := range s.routings {
		if s.routings[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.routings = append(s.routings[:idx], s.routings[idx+1:]...)
	kept := s.routingSteps[:0]
	for _, st := range s.routingSteps {
		if st.RoutingID != id {
			kept = append(kept, st)
		}
	}
	s.routingSteps = kept
	s.mu.Unlock()

	s.publish([]Event{
		{Collection: ColRoutings, Action: "delete", ID: id},
		{Collection: ColRoutingSteps, Action: "delete", ID: id},
	})
	return nil
}

// RoutingStepsByRoutingID Sequence 오름차순으로 정렬된 스텝 목록
func (s *Store) RoutingStepsByRoutingID(routingID int64) []entity.RoutingStep {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stepsOfLocked(routingID)
}

func (s *Store) stepsOfLocked(routingID int64) []entity.RoutingStep {
	var out []entity.RoutingStep
	for _, st := range s.routingSteps {
		if st.RoutingID == routingID {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out
}

// ReplaceRoutingSteps 라우팅의 스텝 집합을 통째로 교체한다.
// 임시 id는 영구 id로 교체된다 (전량 삭제 후 삽입 저장 방식).
func (s *Store) ReplaceRoutingSteps(routingID int64, steps []entity.RoutingStep) ([]entity.RoutingStep, error) {
	s.mu.Lock()
	found := false
	for i := range s.routings {
		if s.routings[i].ID == routingID {
			s.routings[i].ModifiedAt = time.Now()
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	kept := s.routingSteps[:0]
	for _, st := range s.routingSteps {
		if st.RoutingID != routingID {
			kept = append(kept, st)
		}
	}
	s.routingSteps = kept
	stored := make([]entity.RoutingStep, len(steps))
	for i, st := range steps {
		st.RoutingID = routingID
		if st.ID == 0 || entity.IsTempID(st.ID) {
			st.ID = s.allocID()
		}
		stored[i] = st
		s.routingSteps = append(s.routingSteps, st)
	}
	s.mu.Unlock()

	s.publish([]Event{{Collection: ColRoutingSteps, Action: "replace", ID: routingID}})
	return stored, nil
}

// ===== BOM =====

func (s *Store) BOMs() []entity.BOM {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.BOM, len(s.boms))
	copy(out, s.boms)
	return out
}

func (s *Store) BOMByID(id int64) (entity.BOM, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.boms {
		if b.ID == id {
			return b, nil
		}
	}
	return entity.BOM{}, ErrNotFound
}

// BOMsByProductCode 제품 코드의 리비전 목록
func (s *Store) BOMsByProductCode(productCode string) []entity.BOM {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.BOM
	for _, b := range s.boms {
		if b.ProductCode == productCode {
			out = append(out, b)
		}
	}
	return out
}

func (s *Store) AddBOM(b entity.BOM) entity.BOM {
	s.mu.Lock()
	b.ID = s.allocID()
	now := time.Now()
	b.CreatedAt = now
	b.ModifiedAt = now
	s.boms = append(s.boms, b)
	s.mu.Unlock()

	s.publish([]Event{{Collection: ColBOMs, Action: "add", ID: b.ID}})
	return b
}

func (s *Store) UpdateBOM(b entity.BOM) (entity.BOM, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.boms {
		if s.boms[i].ID == b.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return entity.BOM{}, ErrNotFound
	}
	b.CreatedAt = s.boms[idx].CreatedAt
	b.ModifiedAt = time.Now()
	s.boms[idx] = b
	s.mu.Unlock()

	s.publish([]Event{{Collection: ColBOMs, Action: "update", ID: b.ID}})
	return b, nil
}

// DeleteBOM BOM 삭제. 소유한 자재 행을 함께 삭제한다.
func (s *Store) DeleteBOM(id int64) error {
	s.mu.Lock()
	idx := -1
	for i := range s.boms {
		if s.boms[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.boms = append(s.boms[:idx], s.boms[idx+1:]...)
	kept := s.bomItems[:0]
	for _, it := range s.bomItems {
		if it.BOMID != id {
			kept = append(kept, it)
		}
	}
	s.bomItems = kept
	s.mu.Unlock()

	s.publish([]Event{
		{Collection: ColBOMs, Action: "delete", ID: id},
		{Collection: ColBOMItems, Action: "delete", ID: id},
	})
	return nil
}

func (s *Store) BOMItemsByBOMID(bomID int64) []entity.BOMItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.BOMItem
	for _, it := range s.bomItems {
		if it.BOMID == bomID {
			out = append(out, it)
		}
	}
	return out
}

// ReplaceBOMItems BOM의 자재 행 집합을 통째로 교체한다.
// 임시 id는 영구 id로 교체된다.
func (s *Store) ReplaceBOMItems(bomID int64, items []entity.BOMItem) ([]entity.BOMItem, error) {
	s.mu.Lock()
	found := false
	for i := range s.boms {
		if s.boms[i].ID == bomID {
			s.boms[i].ModifiedAt = time.Now()
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	kept := s.bomItems[:0]
	for _, it := range s.bomItems {
		if it.BOMID != bomID {
			kept = append(kept, it)
		}
	}
	s.bomItems = kept
	stored := make([]entity.BOMItem, len(items))
	for i, it := range items {
		it.BOMID = bomID
		if it.ID == 0 || entity.IsTempID(it.ID) {
			it.ID = s.allocID()
		}
		stored[i] = it
		s.bomItems = append(s.bomItems, it)
	}
	s.mu.Unlock()

	s.publish([]Event{{Collection: ColBOMItems, Action: "replace", ID: bomID}})
	return stored, nil
}
