package store

import (
	"time"

	"github.com/hotfcs/mes-server/internal/mes/entity"
	"go.uber.org/zap"
)

// reconcileLocked 영향을 받은 planCode의 생산계획 상태를 재계산한다.
// 계획/작업지시 컬렉션 뮤테이션의 부수효과로, 스토어 락 안에서 호출된다.
// 전체 계획을 훑지 않고 전달된 코드만 본다.
//
// 규칙 (우선순위 순):
//  1. 잔량(계획수량 - 지시수량 합계) <= 0      → 완료
//  2. 지시 0건, 상태가 계획/취소가 아니면      → 계획 (취소는 수동 전환 전용이라 유지)
//  3. 지시 1건 이상, 상태가 계획이면           → 진행중
//  4. 그 외                                    → 변경 없음
func (s *Store) reconcileLocked(planCodes map[string]bool) []Event {
	if len(planCodes) == 0 {
		return nil
	}
	var events []Event
	for i := range s.plans {
		p := &s.plans[i]
		if !planCodes[p.PlanCode] {
			continue
		}

		var orderSum float64
		orderCount := 0
		for _, w := range s.workOrders {
			if w.PlanCode == p.PlanCode {
				orderSum += w.OrderQuantity
				orderCount++
			}
		}
		remaining := p.PlanQuantity - orderSum

		next := p.Status
		switch {
		case remaining <= 0 && p.Status != entity.PlanStatusCompleted:
			next = entity.PlanStatusCompleted
		case orderCount == 0 && p.Status != entity.PlanStatusPlanned && p.Status != entity.PlanStatusCancelled:
			next = entity.PlanStatusPlanned
		case orderCount >= 1 && p.Status == entity.PlanStatusPlanned:
			next = entity.PlanStatusInProgress
		}

		if next != p.Status {
			s.log.Info("생산계획 상태 전환",
				zap.String("planCode", p.PlanCode),
				zap.String("from", p.Status),
				zap.String("to", next),
				zap.Float64("remaining", remaining),
				zap.Int("orderCount", orderCount),
			)
			p.Status = next
			p.ModifiedAt = time.Now()
			events = append(events, Event{Collection: ColPlans, Action: "update", ID: p.ID})
		}
	}
	return events
}
