package service

import (
	"fmt"

	"github.com/hotfcs/mes-server/internal/mes/entity"
	"github.com/hotfcs/mes-server/internal/mes/store"
)

// RoutingService 라우팅과 스텝 시퀀서.
// 스텝 목록은 항상 1..N 연속 Sequence를 유지하고, 이전/다음 공정명은
// 시퀀스가 바뀌는 모든 연산에서 한 번에 다시 연결한다.
type RoutingService struct {
	store *store.Store
}

func NewRoutingService(st *store.Store) *RoutingService {
	return &RoutingService{store: st}
}

// CreateRoutingRequest 라우팅 생성 요청
type CreateRoutingRequest struct {
	Code   string `json:"code" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Status string `json:"status"`
}

func (s *RoutingService) Create(req CreateRoutingRequest) (entity.Routing, error) {
	if _, err := s.store.RoutingByCode(req.Code); err == nil {
		return entity.Routing{}, fmt.Errorf("이미 존재하는 라우팅 코드입니다: %s", req.Code)
	}
	status := req.Status
	if status == "" {
		status = entity.StatusActive
	}
	r := s.store.AddRouting(entity.Routing{
		Code:   req.Code,
		Name:   req.Name,
		Status: status,
	})
	return r, nil
}

func (s *RoutingService) List() []entity.Routing {
	return s.store.Routings()
}

func (s *RoutingService) Get(id int64) (entity.Routing, error) {
	return s.store.RoutingByID(id)
}

// Delete 라우팅 삭제. 스텝은 스토어가 연쇄 삭제한다.
func (s *RoutingService) Delete(id int64) error {
	return s.store.DeleteRouting(id)
}

// Steps Sequence 오름차순 스텝 목록
func (s *RoutingService) Steps(routingID int64) ([]entity.RoutingStep, error) {
	if _, err := s.store.RoutingByID(routingID); err != nil {
		return nil, err
	}
	return s.store.RoutingStepsByRoutingID(routingID), nil
}

// AppendStep 스텝을 맨 뒤에 추가한다. 기본 라인/공정/설비는 첫 번째 사용중
// 항목에서 시드한다. 새 스텝과 직전 마지막 스텝의 이전/다음 공정명은
// 하나의 뮤테이션에서 함께 갱신된다.
func (s *RoutingService) AppendStep(routingID int64) (entity.RoutingStep, error) {
	if _, err := s.store.RoutingByID(routingID); err != nil {
		return entity.RoutingStep{}, err
	}
	steps := s.store.RoutingStepsByRoutingID(routingID)

	line := ""
	if lines := s.store.Lines(entity.StatusActive); len(lines) > 0 {
		line = lines[0].Name
	}
	process := entity.NoProcess
	if procs := s.store.Processes(line, entity.StatusActive); len(procs) > 0 {
		process = procs[0].Name
	}
	equipment := ""
	if eqs := s.store.Equipments(line, entity.StatusActive); len(eqs) > 0 {
		equipment = eqs[0].Name
	}

	steps = append(steps, entity.RoutingStep{
		RoutingID:     routingID,
		Line:          line,
		Process:       process,
		MainEquipment: equipment,
	})
	relinkSteps(steps)

	saved, err := s.store.ReplaceRoutingSteps(routingID, steps)
	if err != nil {
		return entity.RoutingStep{}, err
	}
	return saved[len(saved)-1], nil
}

// DeleteStep 스텝 삭제 후 남은 스텝을 1..N으로 재번호하고 다시 연결한다.
func (s *RoutingService) DeleteStep(routingID, stepID int64) error {
	steps, err := s.Steps(routingID)
	if err != nil {
		return err
	}
	idx := indexOfStep(steps, stepID)
	if idx < 0 {
		return store.ErrNotFound
	}
	steps = append(steps[:idx], steps[idx+1:]...)
	relinkSteps(steps)
	_, err = s.store.ReplaceRoutingSteps(routingID, steps)
	return err
}

// MoveStep 인접 스텝과 자리를 바꾼다. direction은 "up" 또는 "down".
func (s *RoutingService) MoveStep(routingID, stepID int64, direction string) error {
	steps, err := s.Steps(routingID)
	if err != nil {
		return err
	}
	idx := indexOfStep(steps, stepID)
	if idx < 0 {
		return store.ErrNotFound
	}
	switch direction {
	case "up":
		if idx == 0 {
			return nil
		}
		steps[idx-1], steps[idx] = steps[idx], steps[idx-1]
	case "down":
		if idx == len(steps)-1 {
			return nil
		}
		steps[idx], steps[idx+1] = steps[idx+1], steps[idx]
	default:
		return fmt.Errorf("이동 방향이 올바르지 않습니다: %s", direction)
	}
	relinkSteps(steps)
	_, err = s.store.ReplaceRoutingSteps(routingID, steps)
	return err
}

// UpdateStepRequest 스텝 필드 수정 요청. nil 필드는 변경하지 않는다.
type UpdateStepRequest struct {
	Line             *string  `json:"line"`
	Process          *string  `json:"process"`
	MainEquipment    *string  `json:"mainEquipment"`
	StandardManHours *float64 `json:"standardManHours"`
}

// UpdateStep 스텝 필드 수정. 라인이 바뀌면 새 라인에 속하지 않는 공정/설비를
// 새 라인의 첫 항목으로 재설정한다. 공정이 없는 라인이면 공정은 "공정 없음"이 된다.
func (s *RoutingService) UpdateStep(routingID, stepID int64, req UpdateStepRequest) (entity.RoutingStep, error) {
	steps, err := s.Steps(routingID)
	if err != nil {
		return entity.RoutingStep{}, err
	}
	idx := indexOfStep(steps, stepID)
	if idx < 0 {
		return entity.RoutingStep{}, store.ErrNotFound
	}
	st := &steps[idx]

	if req.Line != nil && *req.Line != st.Line {
		st.Line = *req.Line

		procs := s.store.Processes(st.Line, entity.StatusActive)
		if !containsProcess(procs, st.Process) {
			if len(procs) > 0 {
				st.Process = procs[0].Name
			} else {
				st.Process = entity.NoProcess
			}
		}
		eqs := s.store.Equipments(st.Line, entity.StatusActive)
		if !containsEquipment(eqs, st.MainEquipment) {
			if len(eqs) > 0 {
				st.MainEquipment = eqs[0].Name
			} else {
				st.MainEquipment = ""
			}
		}
	}
	if req.Process != nil {
		st.Process = *req.Process
	}
	if req.MainEquipment != nil {
		st.MainEquipment = *req.MainEquipment
	}
	if req.StandardManHours != nil {
		st.StandardManHours = *req.StandardManHours
	}

	relinkSteps(steps)
	saved, err := s.store.ReplaceRoutingSteps(routingID, steps)
	if err != nil {
		return entity.RoutingStep{}, err
	}
	return saved[idx], nil
}

// SaveSteps 스텝 집합 전체 저장. 라인/공정/주설비가 비어 있는 스텝이 하나라도
// 있으면 전체 저장이 실패한다 (부분 커밋 없음). 임시 id는 저장 시 영구 id로
// 교체된다.
func (s *RoutingService) SaveSteps(routingID int64, steps []entity.RoutingStep) ([]entity.RoutingStep, error) {
	if _, err := s.store.RoutingByID(routingID); err != nil {
		return nil, err
	}
	for _, st := range steps {
		if st.Line == "" || st.Process == "" || st.MainEquipment == "" {
			return nil, fmt.Errorf("라인, 공정, 주설비가 입력되지 않은 스텝이 있습니다")
		}
	}
	relinkSteps(steps)
	return s.store.ReplaceRoutingSteps(routingID, steps)
}

// relinkSteps 목록 순서대로 Sequence를 1..N으로 다시 매기고
// 이전/다음 공정명을 인접 스텝에서 다시 계산한다.
func relinkSteps(steps []entity.RoutingStep) {
	for i := range steps {
		steps[i].Sequence = i + 1
		if i > 0 {
			steps[i].PreviousProcess = steps[i-1].Process
		} else {
			steps[i].PreviousProcess = entity.NoLink
		}
		if i < len(steps)-1 {
			steps[i].NextProcess = steps[i+1].Process
		} else {
			steps[i].NextProcess = entity.NoLink
		}
	}
}

func indexOfStep(steps []entity.RoutingStep, id int64) int {
	for i := range steps {
		if steps[i].ID == id {
			return i
		}
	}
	return -1
}

func containsProcess(procs []entity.Process, name string) bool {
	for _, p := range procs {
		if p.Name == name {
			return true
		}
	}
	return false
}

func containsEquipment(eqs []entity.Equipment, name string) bool {
	for _, e := range eqs {
		if e.Name == name {
			return true
		}
	}
	return false
}
