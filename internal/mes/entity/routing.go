package entity

import "time"

// NoProcess 공정이 정의되지 않은 라인에 배정된 스텝의 공정 표시값
const NoProcess = "공정 없음"

// NoLink 이전/다음 공정이 없을 때의 표시값
const NoLink = "-"

// Routing 라우팅 (제품이 거치는 공정 순서 정의)
type Routing struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
}

// RoutingStep 라우팅 스텝. Sequence는 라우팅 내에서 1..N 연속 값을 유지한다.
// PreviousProcess/NextProcess는 인접 스텝의 공정명으로, 순서가 바뀔 때마다
// 전체 목록을 다시 연결해 재계산한다.
type RoutingStep struct {
	ID               int64   `json:"id"`
	RoutingID        int64   `json:"routingId"`
	Sequence         int     `json:"sequence"`
	Line             string  `json:"line"`
	Process          string  `json:"process"`
	MainEquipment    string  `json:"mainEquipment"`
	StandardManHours float64 `json:"standardManHours"`
	PreviousProcess  string  `json:"previousProcess"`
	NextProcess      string  `json:"nextProcess"`
}
