package store

import (
	"testing"

	"github.com/hotfcs/mes-server/internal/mes/entity"
)

func seedPlan(t *testing.T, s *Store, code string, qty float64) entity.ProductionPlan {
	t.Helper()
	return s.AddPlan(entity.ProductionPlan{
		PlanCode:     code,
		ProductCode:  "P-1001",
		ProductName:  "스마트 센서 모듈",
		PlanQuantity: qty,
		Unit:         "EA",
		Status:       entity.PlanStatusPlanned,
	})
}

func planStatus(t *testing.T, s *Store, code string) string {
	t.Helper()
	p, err := s.PlanByCode(code)
	if err != nil {
		t.Fatalf("PlanByCode(%s): %v", code, err)
	}
	return p.Status
}

// TestReconcilePlanLifecycle follows a 1000-unit plan through partial and full coverage
func TestReconcilePlanLifecycle(t *testing.T) {
	s := newSeededStore(t)
	seedPlan(t, s, "PLAN-2026-001", 1000)

	// 지시 400 등록: 잔량 600, 계획 → 진행중
	wo1 := s.AddWorkOrder(entity.WorkOrder{
		OrderCode: "WO-2026-001", PlanCode: "PLAN-2026-001",
		OrderQuantity: 400, Status: entity.WOStatusWaiting,
	})
	if got := planStatus(t, s, "PLAN-2026-001"); got != entity.PlanStatusInProgress {
		t.Fatalf("expected 진행중 after first order, got %s", got)
	}

	// 지시 600 추가: 잔량 0, → 완료
	wo2 := s.AddWorkOrder(entity.WorkOrder{
		OrderCode: "WO-2026-002", PlanCode: "PLAN-2026-001",
		OrderQuantity: 600, Status: entity.WOStatusWaiting,
	})
	if got := planStatus(t, s, "PLAN-2026-001"); got != entity.PlanStatusCompleted {
		t.Fatalf("expected 완료 at zero remaining, got %s", got)
	}

	// 지시 하나 삭제: 잔량 복귀, 완료 → 진행중은 아니고 지시가 남아 있으므로 변경 없음
	// 둘 다 삭제하면 계획으로 복귀한다
	if err := s.DeleteWorkOrder(wo2.ID); err != nil {
		t.Fatalf("DeleteWorkOrder: %v", err)
	}
	if err := s.DeleteWorkOrder(wo1.ID); err != nil {
		t.Fatalf("DeleteWorkOrder: %v", err)
	}
	if got := planStatus(t, s, "PLAN-2026-001"); got != entity.PlanStatusPlanned {
		t.Fatalf("expected 계획 after all orders removed, got %s", got)
	}
}

// TestReconcileOverCoverage tests that order sum beyond plan quantity still completes the plan
func TestReconcileOverCoverage(t *testing.T) {
	s := newSeededStore(t)
	seedPlan(t, s, "PLAN-2026-002", 100)

	s.AddWorkOrder(entity.WorkOrder{
		OrderCode: "WO-2026-010", PlanCode: "PLAN-2026-002",
		OrderQuantity: 150, Status: entity.WOStatusWaiting,
	})
	if got := planStatus(t, s, "PLAN-2026-002"); got != entity.PlanStatusCompleted {
		t.Fatalf("expected 완료 on negative remaining, got %s", got)
	}
}

// TestReconcileCancelledSticky tests that a cancelled plan is not revived by the reconciler
func TestReconcileCancelledSticky(t *testing.T) {
	s := newSeededStore(t)
	p := seedPlan(t, s, "PLAN-2026-003", 500)

	p.Status = entity.PlanStatusCancelled
	if _, err := s.UpdatePlan(p); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	if got := planStatus(t, s, "PLAN-2026-003"); got != entity.PlanStatusCancelled {
		t.Fatalf("expected 취소 to stick with zero orders, got %s", got)
	}
}

// TestReconcileQuantityChange tests re-derivation when the plan quantity shrinks
func TestReconcileQuantityChange(t *testing.T) {
	s := newSeededStore(t)
	p := seedPlan(t, s, "PLAN-2026-004", 1000)

	s.AddWorkOrder(entity.WorkOrder{
		OrderCode: "WO-2026-020", PlanCode: "PLAN-2026-004",
		OrderQuantity: 400, Status: entity.WOStatusWaiting,
	})
	if got := planStatus(t, s, "PLAN-2026-004"); got != entity.PlanStatusInProgress {
		t.Fatalf("expected 진행중, got %s", got)
	}

	// 계획 수량을 지시 합계 이하로 줄이면 완료가 된다
	p, err := s.PlanByCode("PLAN-2026-004")
	if err != nil {
		t.Fatalf("PlanByCode: %v", err)
	}
	p.PlanQuantity = 400
	if _, err := s.UpdatePlan(p); err != nil {
		t.Fatalf("UpdatePlan: %v", err)
	}
	if got := planStatus(t, s, "PLAN-2026-004"); got != entity.PlanStatusCompleted {
		t.Fatalf("expected 완료 after quantity cut, got %s", got)
	}
}

// TestReconcileOrderMove tests that re-pointing an order reconciles both plans
func TestReconcileOrderMove(t *testing.T) {
	s := newSeededStore(t)
	seedPlan(t, s, "PLAN-2026-005", 300)
	seedPlan(t, s, "PLAN-2026-006", 300)

	wo := s.AddWorkOrder(entity.WorkOrder{
		OrderCode: "WO-2026-030", PlanCode: "PLAN-2026-005",
		OrderQuantity: 100, Status: entity.WOStatusWaiting,
	})
	if got := planStatus(t, s, "PLAN-2026-005"); got != entity.PlanStatusInProgress {
		t.Fatalf("expected source plan 진행중, got %s", got)
	}

	wo.PlanCode = "PLAN-2026-006"
	if _, err := s.UpdateWorkOrder(wo); err != nil {
		t.Fatalf("UpdateWorkOrder: %v", err)
	}
	if got := planStatus(t, s, "PLAN-2026-005"); got != entity.PlanStatusPlanned {
		t.Fatalf("expected source plan back to 계획, got %s", got)
	}
	if got := planStatus(t, s, "PLAN-2026-006"); got != entity.PlanStatusInProgress {
		t.Fatalf("expected target plan 진행중, got %s", got)
	}
}

// TestReconcilePublishesPlanUpdate tests that derived transitions notify subscribers
func TestReconcilePublishesPlanUpdate(t *testing.T) {
	s := newSeededStore(t)
	p := seedPlan(t, s, "PLAN-2026-007", 200)

	var planEvents int
	cancel := s.Subscribe(func(ev Event) {
		if ev.Collection == ColPlans && ev.Action == "update" && ev.ID == p.ID {
			planEvents++
		}
	})
	defer cancel()

	s.AddWorkOrder(entity.WorkOrder{
		OrderCode: "WO-2026-040", PlanCode: "PLAN-2026-007",
		OrderQuantity: 50, Status: entity.WOStatusWaiting,
	})
	if planEvents != 1 {
		t.Fatalf("expected 1 derived plan update event, got %d", planEvents)
	}
}
