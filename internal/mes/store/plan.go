package store

import (
	"time"

	"github.com/hotfcs/mes-server/internal/mes/entity"
)

// ===== 생산계획 =====

func (s *Store) Plans() []entity.ProductionPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ProductionPlan, len(s.plans))
	copy(out, s.plans)
	return out
}

func (s *Store) PlanByID(id int64) (entity.ProductionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.plans {
		if p.ID == id {
			return p, nil
		}
	}
	return entity.ProductionPlan{}, ErrNotFound
}

func (s *Store) PlanByCode(code string) (entity.ProductionPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.plans {
		if p.PlanCode == code {
			return p, nil
		}
	}
	return entity.ProductionPlan{}, ErrNotFound
}

func (s *Store) AddPlan(p entity.ProductionPlan) entity.ProductionPlan {
	s.mu.Lock()
	p.ID = s.allocID()
	now := time.Now()
	p.CreatedAt = now
	p.ModifiedAt = now
	s.plans = append(s.plans, p)
	events := []Event{{Collection: ColPlans, Action: "add", ID: p.ID}}
	events = append(events, s.reconcileLocked(codeSet(p.PlanCode))...)
	for i := range s.plans {
		if s.plans[i].ID == p.ID {
			p = s.plans[i]
		}
	}
	s.mu.Unlock()

	s.publish(events)
	return p
}

func (s *Store) UpdatePlan(p entity.ProductionPlan) (entity.ProductionPlan, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.plans {
		if s.plans[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return entity.ProductionPlan{}, ErrNotFound
	}
	oldCode := s.plans[idx].PlanCode
	p.CreatedAt = s.plans[idx].CreatedAt
	p.ModifiedAt = time.Now()
	s.plans[idx] = p
	events := []Event{{Collection: ColPlans, Action: "update", ID: p.ID}}
	events = append(events, s.reconcileLocked(codeSet(oldCode, p.PlanCode))...)
	p = s.plans[idx]
	s.mu.Unlock()

	s.publish(events)
	return p, nil
}

func (s *Store) DeletePlan(id int64) error {
	s.mu.Lock()
	idx := -1
	for i := range s.plans {
		if s.plans[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.plans = append(s.plans[:idx], s.plans[idx+1:]...)
	s.mu.Unlock()

	s.publish([]Event{{Collection: ColPlans, Action: "delete", ID: id}})
	return nil
}

// ===== 작업지시 =====

func (s *Store) WorkOrders() []entity.WorkOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.WorkOrder, len(s.workOrders))
	copy(out, s.workOrders)
	return out
}

func (s *Store) WorkOrderByID(id int64) (entity.WorkOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workOrders {
		if w.ID == id {
			return w, nil
		}
	}
	return entity.WorkOrder{}, ErrNotFound
}

func (s *Store) WorkOrderByCode(code string) (entity.WorkOrder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.workOrders {
		if w.OrderCode == code {
			return w, nil
		}
	}
	return entity.WorkOrder{}, ErrNotFound
}

// WorkOrdersByPlanCode planCode 문자열 일치로 조회 (요청 시점 재계산)
func (s *Store) WorkOrdersByPlanCode(planCode string) []entity.WorkOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.WorkOrder
	for _, w := range s.workOrders {
		if w.PlanCode == planCode {
			out = append(out, w)
		}
	}
	return out
}

func (s *Store) AddWorkOrder(w entity.WorkOrder) entity.WorkOrder {
	s.mu.Lock()
	w.ID = s.allocID()
	now := time.Now()
	w.CreatedAt = now
	w.ModifiedAt = now
	s.workOrders = append(s.workOrders, w)
	events := []Event{{Collection: ColWorkOrders, Action: "add", ID: w.ID}}
	events = append(events, s.reconcileLocked(codeSet(w.PlanCode))...)
	s.mu.Unlock()

	s.publish(events)
	return w
}

func (s *Store) UpdateWorkOrder(w entity.WorkOrder) (entity.WorkOrder, error) {
	s.mu.Lock()
	idx := -1
	for i := range s.workOrders {
		if s.workOrders[i].ID == w.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return entity.WorkOrder{}, ErrNotFound
	}
	oldCode := s.workOrders[idx].PlanCode
	w.CreatedAt = s.workOrders[idx].CreatedAt
	w.ModifiedAt = time.Now()
	s.workOrders[idx] = w
	events := []Event{{Collection: ColWorkOrders, Action: "update", ID: w.ID}}
	events = append(events, s.reconcileLocked(codeSet(oldCode, w.PlanCode))...)
	s.mu.Unlock()

	s.publish(events)
	return w, nil
}

// DeleteWorkOrder 작업지시 삭제. 소유한 생산실적을 함께 삭제한다.
func (s *Store) DeleteWorkOrder(id int64) error {
	s.mu.Lock()
	idx := -1
	for i := range s.workOrders {
		if s.workOrders[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	deleted := s.workOrders[idx]
	s.workOrders = append(s.workOrders[:idx], s.workOrders[idx+1:]...)
	kept := s.results[:0]
	for _, r := range s.results {
		if r.OrderCode != deleted.OrderCode {
			kept = append(kept, r)
		}
	}
	s.results = kept
	events := []Event{{Collection: ColWorkOrders, Action: "delete", ID: id}}
	events = append(events, s.reconcileLocked(codeSet(deleted.PlanCode))...)
	s.mu.Unlock()

	s.publish(events)
	return nil
}

// ===== 생산실적 =====

func (s *Store) Results() []entity.ProductionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.ProductionResult, len(s.results))
	copy(out, s.results)
	return out
}

func (s *Store) ResultsByOrderCode(orderCode string) []entity.ProductionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entity.ProductionResult
	for _, r := range s.results {
		if r.OrderCode == orderCode {
			out = append(out, r)
		}
	}
	return out
}

func (s *Store) AddResult(r entity.ProductionResult) entity.ProductionResult {
	s.mu.Lock()
	r.ID = s.allocID()
	r.CreatedAt = time.Now()
	s.results = append(s.results, r)
	s.mu.Unlock()

	s.publish([]Event{{Collection: ColResults, Action: "add", ID: r.ID}})
	return r
}

func codeSet(codes ...string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		if c != "" {
			set[c] = true
		}
	}
	return set
}
