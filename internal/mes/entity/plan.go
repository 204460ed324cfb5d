package entity

import "time"

// 생산계획 상태
const (
	PlanStatusPlanned    = "계획"
	PlanStatusInProgress = "진행중"
	PlanStatusCompleted  = "완료"
	PlanStatusCancelled  = "취소"
)

// 작업지시 상태
const (
	WOStatusWaiting    = "대기"
	WOStatusInProgress = "진행중"
	WOStatusCompleted  = "완료"
	WOStatusHeld       = "보류"
)

// ProductionPlan 생산계획. 상태는 planCode를 참조하는 작업지시 수량 합계로부터
// 리컨실러가 파생한다 (취소는 수동 전환 전용).
type ProductionPlan struct {
	ID           int64     `json:"id"`
	PlanCode     string    `json:"planCode"`
	PlanDate     string    `json:"planDate"`
	ProductCode  string    `json:"productCode"`
	ProductName  string    `json:"productName"`
	PlanQuantity float64   `json:"planQuantity"`
	Unit         string    `json:"unit"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	Status       string    `json:"status"`
	Manager      string    `json:"manager"`
	Note         string    `json:"note"`
	CreatedAt    time.Time `json:"createdAt"`
	ModifiedAt   time.Time `json:"modifiedAt"`
}

// WorkOrder 작업지시. PlanCode 문자열로 생산계획을 참조한다.
type WorkOrder struct {
	ID            int64     `json:"id"`
	OrderCode     string    `json:"orderCode"`
	OrderDate     string    `json:"orderDate"`
	PlanCode      string    `json:"planCode"`
	ProductCode   string    `json:"productCode"`
	ProductName   string    `json:"productName"`
	OrderQuantity float64   `json:"orderQuantity"`
	Unit          string    `json:"unit"`
	Line          string    `json:"line"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	Status        string    `json:"status"`
	Worker        string    `json:"worker"`
	Note          string    `json:"note"`
	CreatedAt     time.Time `json:"createdAt"`
	ModifiedAt    time.Time `json:"modifiedAt"`
}

// ProductionResult 생산실적. OrderCode 문자열로 작업지시를 참조하며,
// 실적 수량 누계가 작업지시 상태를 전진시킨다.
type ProductionResult struct {
	ID             int64     `json:"id"`
	ResultCode     string    `json:"resultCode"`
	OrderCode      string    `json:"orderCode"`
	ResultDate     string    `json:"resultDate"`
	Quantity       float64   `json:"quantity"`
	DefectQuantity float64   `json:"defectQuantity"`
	Worker         string    `json:"worker"`
	Note           string    `json:"note"`
	CreatedAt      time.Time `json:"createdAt"`
}
