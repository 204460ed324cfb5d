package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hotfcs/mes-server/internal/mes/entity"
	"github.com/hotfcs/mes-server/internal/mes/store"
	"github.com/redis/go-redis/v9"
)

// PlanService 생산계획/작업지시/생산실적 서비스.
// 계획 상태는 스토어 리컨실러가 파생하므로 여기서는 만들고 지우기만 한다.
// 코드 채번은 월 단위 순번으로, Redis가 설정되면 INCR, 아니면 당월 생성분
// 최대 순번 스캔으로 생성한다.
type PlanService struct {
	store *store.Store
	rdb   *redis.Client
}

func NewPlanService(st *store.Store, rdb *redis.Client) *PlanService {
	return &PlanService{store: st, rdb: rdb}
}

// ===== 생산계획 =====

// CreatePlanRequest 생산계획 생성 요청
type CreatePlanRequest struct {
	PlanDate     string  `json:"planDate"`
	ProductCode  string  `json:"productCode" binding:"required"`
	PlanQuantity float64 `json:"planQuantity" binding:"required,gt=0"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Manager      string  `json:"manager"`
	Note         string  `json:"note"`
}

func (s *PlanService) CreatePlan(ctx context.Context, req CreatePlanRequest) (entity.ProductionPlan, error) {
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
		return entity.ProductionPlan{}, fmt.Errorf("존재하지 않는 제품 코드입니다: %s", req.ProductCode)
	}

	now := time.Now()
	code, err := s.nextCode(ctx, "PLAN", now, s.planSeqFallback(now))
	if err != nil {
		return entity.ProductionPlan{}, fmt.Errorf("계획 코드 채번 실패: %w", err)
	}
	planDate := req.PlanDate
	if planDate == "" {
		planDate = now.Format("2006-01-02")
	}

	plan := s.store.AddPlan(entity.ProductionPlan{
		PlanCode:     code,
		PlanDate:     planDate,
		ProductCode:  product.Code,
		ProductName:  product.Name,
		PlanQuantity: req.PlanQuantity,
		Unit:         product.Unit,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Status:       entity.PlanStatusPlanned,
		Manager:      req.Manager,
		Note:         req.Note,
	})
	return plan, nil
}

// UpdatePlanRequest 생산계획 수정 요청. nil 필드는 변경하지 않는다.
type UpdatePlanRequest struct {
	PlanDate     *string  `json:"planDate"`
	PlanQuantity *float64 `json:"planQuantity"`
	StartDate    *string  `json:"startDate"`
	EndDate      *string  `json:"endDate"`
	Status       *string  `json:"status"`
	Manager      *string  `json:"manager"`
	Note         *string  `json:"note"`
}

// UpdatePlan 생산계획 수정. 상태는 취소로의 수동 전환만 허용하고
// 나머지 상태는 리컨실러가 관리한다.
func (s *PlanService) UpdatePlan(id int64, req UpdatePlanRequest) (entity.ProductionPlan, error) {
	plan, err := s.store.PlanByID(id)
	if err != nil {
		return entity.ProductionPlan{}, err
	}
	if req.PlanDate != nil {
		plan.PlanDate = *req.PlanDate
	}
	if req.PlanQuantity != nil {
		if *req.PlanQuantity <= 0 {
			return entity.ProductionPlan{}, fmt.Errorf("계획 수량은 0보다 커야 합니다")
		}
		plan.PlanQuantity = *req.PlanQuantity
	}
	if req.StartDate != nil {
		plan.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		plan.EndDate = *req.EndDate
	}
	if req.Status != nil {
		if *req.Status != entity.PlanStatusCancelled && *req.Status != entity.PlanStatusPlanned {
			return entity.ProductionPlan{}, fmt.Errorf("계획 상태는 직접 변경할 수 없습니다: %s", *req.Status)
		}
		plan.Status = *req.Status
	}
	if req.Manager != nil {
		plan.Manager = *req.Manager
	}
	if req.Note != nil {
		plan.Note = *req.Note
	}
	return s.store.UpdatePlan(plan)
}

func (s *PlanService) ListPlans() []entity.ProductionPlan {
	return s.store.Plans()
}

func (s *PlanService) GetPlan(id int64) (entity.ProductionPlan, error) {
	return s.store.PlanByID(id)
}

// DeletePlan 생산계획 삭제. 참조하는 작업지시가 남아 있으면 거부한다.
func (s *PlanService) DeletePlan(id int64) error {
	plan, err := s.store.PlanByID(id)
	if err != nil {
		return err
	}
	if orders := s.store.WorkOrdersByPlanCode(plan.PlanCode); len(orders) > 0 {
		return fmt.Errorf("작업지시가 등록된 계획은 삭제할 수 없습니다: %s", plan.PlanCode)
	}
	return s.store.DeletePlan(id)
}

// ===== 작업지시 =====

// CreateWorkOrderRequest 작업지시 생성 요청
type CreateWorkOrderRequest struct {
	PlanCode      string  `json:"planCode" binding:"required"`
	OrderDate     string  `json:"orderDate"`
	OrderQuantity float64 `json:"orderQuantity" binding:"required,gt=0"`
	Line          string  `json:"line"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	Worker        string  `json:"worker"`
	Note          string  `json:"note"`
}

// CreateWorkOrder 작업지시 생성. 존재하지 않는 planCode 참조는 쓰기 시점에
// 거부한다. 제품 코드/제품명은 계획에서 비정규화 복사된다.
func (s *PlanService) CreateWorkOrder(ctx context.Context, req CreateWorkOrderRequest) (entity.WorkOrder, error) {
	plan, err := s.store.PlanByCode(req.PlanCode)
	if err != nil {
		return entity.WorkOrder{}, fmt.Errorf("존재하지 않는 계획 코드입니다: %s", req.PlanCode)
	}
	if plan.Status == entity.PlanStatusCancelled {
		return entity.WorkOrder{}, fmt.Errorf("취소된 계획에는 작업지시를 등록할 수 없습니다: %s", req.PlanCode)
	}

	now := time.Now()
	code, err := s.nextCode(ctx, "WO", now, s.orderSeqFallback(now))
	if err != nil {
		return entity.WorkOrder{}, fmt.Errorf("지시 코드 채번 실패: %w", err)
	}
	orderDate := req.OrderDate
	if orderDate == "" {
		orderDate = now.Format("2006-01-02")
	}

	wo := s.store.AddWorkOrder(entity.WorkOrder{
		OrderCode:     code,
		OrderDate:     orderDate,
		PlanCode:      plan.PlanCode,
		ProductCode:   plan.ProductCode,
		ProductName:   plan.ProductName,
		OrderQuantity: req.OrderQuantity,
		Unit:          plan.Unit,
		Line:          req.Line,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Status:        entity.WOStatusWaiting,
		Worker:        req.Worker,
		Note:          req.Note,
	})
	return wo, nil
}

// UpdateWorkOrderRequest 작업지시 수정 요청. nil 필드는 변경하지 않는다.
type UpdateWorkOrderRequest struct {
	OrderQuantity *float64 `json:"orderQuantity"`
	Line          *string  `json:"line"`
	StartDate     *string  `json:"startDate"`
	EndDate       *string  `json:"endDate"`
	Status        *string  `json:"status"`
	Worker        *string  `json:"worker"`
	Note          *string  `json:"note"`
}

func (s *PlanService) UpdateWorkOrder(id int64, req UpdateWorkOrderRequest) (entity.WorkOrder, error) {
	wo, err := s.store.WorkOrderByID(id)
	if err != nil {
		return entity.WorkOrder{}, err
	}
	if req.OrderQuantity != nil {
		if *req.OrderQuantity <= 0 {
			return entity.WorkOrder{}, fmt.Errorf("지시 수량은 0보다 커야 합니다")
		}
		wo.OrderQuantity = *req.OrderQuantity
	}
	if req.Line != nil {
		wo.Line = *req.Line
	}
	if req.StartDate != nil {
		wo.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		wo.EndDate = *req.EndDate
	}
	if req.Status != nil {
		if *req.Status != entity.WOStatusHeld && *req.Status != entity.WOStatusWaiting {
			return entity.WorkOrder{}, fmt.Errorf("지시 상태는 직접 변경할 수 없습니다: %s", *req.Status)
		}
		wo.Status = *req.Status
	}
	if req.Worker != nil {
		wo.Worker = *req.Worker
	}
	if req.Note != nil {
		wo.Note = *req.Note
	}
	return s.store.UpdateWorkOrder(wo)
}

func (s *PlanService) ListWorkOrders(planCode string) []entity.WorkOrder {
	if planCode != "" {
		return s.store.WorkOrdersByPlanCode(planCode)
	}
	return s.store.WorkOrders()
}

func (s *PlanService) GetWorkOrder(id int64) (entity.WorkOrder, error) {
	return s.store.WorkOrderByID(id)
}

func (s *PlanService) DeleteWorkOrder(id int64) error {
	return s.store.DeleteWorkOrder(id)
}

// ===== 생산실적 =====

// RecordResultRequest 생산실적 등록 요청
type RecordResultRequest struct {
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	DefectQuantity float64 `json:"defectQuantity"`
	ResultDate     string  `json:"resultDate"`
	Worker         string  `json:"worker"`
	Note           string  `json:"note"`
}

// RecordResult 작업지시에 생산실적을 등록한다. 실적 수량 누계가 지시 수량에
// 도달하면 작업지시는 완료로, 첫 실적이 등록되면 진행중으로 전환된다.
func (s *PlanService) RecordResult(ctx context.Context, orderID int64, req RecordResultRequest) (entity.ProductionResult, error) {
	wo, err := s.store.WorkOrderByID(orderID)
	if err != nil {
		return entity.ProductionResult{}, err
	}
	if wo.Status == entity.WOStatusCompleted {
		return entity.ProductionResult{}, fmt.Errorf("완료된 작업지시에는 실적을 등록할 수 없습니다: %s", wo.OrderCode)
	}
	if wo.Status == entity.WOStatusHeld {
		return entity.ProductionResult{}, fmt.Errorf("보류 상태의 작업지시에는 실적을 등록할 수 없습니다: %s", wo.OrderCode)
	}
	if req.Quantity <= 0 {
		return entity.ProductionResult{}, fmt.Errorf("실적 수량은 0보다 커야 합니다")
	}

	now := time.Now()
	code, err := s.nextCode(ctx, "PR", now, s.resultSeqFallback(now))
	if err != nil {
		return entity.ProductionResult{}, fmt.Errorf("실적 코드 채번 실패: %w", err)
	}
	resultDate := req.ResultDate
	if resultDate == "" {
		resultDate = now.Format("2006-01-02")
	}

	result := s.store.AddResult(entity.ProductionResult{
		ResultCode:     code,
		OrderCode:      wo.OrderCode,
		ResultDate:     resultDate,
		Quantity:       req.Quantity,
		DefectQuantity: req.DefectQuantity,
		Worker:         req.Worker,
		Note:           req.Note,
	})

	var total float64
	for _, r := range s.store.ResultsByOrderCode(wo.OrderCode) {
		total += r.Quantity
	}
	switch {
	case total >= wo.OrderQuantity:
		wo.Status = entity.WOStatusCompleted
	case wo.Status == entity.WOStatusWaiting:
		wo.Status = entity.WOStatusInProgress
	}
	if _, err := s.store.UpdateWorkOrder(wo); err != nil {
		return entity.ProductionResult{}, err
	}
	return result, nil
}

func (s *PlanService) ListResults(orderCode string) []entity.ProductionResult {
	if orderCode != "" {
		return s.store.ResultsByOrderCode(orderCode)
	}
	return s.store.Results()
}

// ===== 코드 채번 =====

// nextCode "{PREFIX}-YYYY-NNN" 형식의 코드 채번. 순번은 월 단위로 초기화된다.
func (s *PlanService) nextCode(ctx context.Context, prefix string, now time.Time, fallbackMax int) (string, error) {
	seq := fallbackMax + 1
	if s.rdb != nil {
		key := fmt.Sprintf("mes:seq:%s:%s", strings.ToLower(prefix), now.Format("2006-01"))
		n, err := s.rdb.Incr(ctx, key).Result()
		if err != nil {
			return "", err
		}
		s.rdb.Expire(ctx, key, 45*24*time.Hour)
		seq = int(n)
	}
	return fmt.Sprintf("%s-%d-%03d", prefix, now.Year(), seq), nil
}

func (s *PlanService) planSeqFallback(now time.Time) int {
	max := 0
	for _, p := range s.store.Plans() {
		if sameMonth(p.CreatedAt, now) {
			if n := codeSeq(p.PlanCode); n > max {
				max = n
			}
		}
	}
	return max
}

func (s *PlanService) orderSeqFallback(now time.Time) int {
	max := 0
	for _, w := range s.store.WorkOrders() {
		if sameMonth(w.CreatedAt, now) {
			if n := codeSeq(w.OrderCode); n > max {
				max = n
			}
		}
	}
	return max
}

func (s *PlanService) resultSeqFallback(now time.Time) int {
	max := 0
	for _, r := range s.store.Results() {
		if sameMonth(r.CreatedAt, now) {
			if n := codeSeq(r.ResultCode); n > max {
				max = n
			}
		}
	}
	return max
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// codeSeq "PREFIX-YYYY-NNN"의 마지막 순번 파싱. 형식이 다르면 0.
func codeSeq(code string) int {
	idx := strings.LastIndex(code, "-")
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(code[idx+1:])
	if err != nil {
		return 0
	}
	return n
}
