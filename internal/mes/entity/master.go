package entity

// 마스터 데이터 상태
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Product 제품 마스터
type Product struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Spec   string `json:"spec"`
	Unit   string `json:"unit"`
	Status string `json:"status"`
}

// Material 자재 마스터
type Material struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Spec   string `json:"spec"`
	Unit   string `json:"unit"`
	Status string `json:"status"`
}

// Line 생산 라인
type Line struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Process 공정. Line 필드는 소속 라인명이다.
type Process struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Line   string `json:"line"`
	Status string `json:"status"`
}

// Equipment 설비. Line 필드는 소속 라인명이다.
type Equipment struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Line   string `json:"line"`
	Status string `json:"status"`
}
