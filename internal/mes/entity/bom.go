package entity

import "time"

// TempIDThreshold 이상의 id는 클라이언트가 발급한 임시 id로 취급한다.
// 저장 시점에 영구 id로 교체된다.
const TempIDThreshold int64 = 1_000_000_000

// IsTempID 임시 id 여부
func IsTempID(id int64) bool {
	return id >= TempIDThreshold
}

// BOM 헤더. 제품 코드별로 리비전("Rev.01", "Rev.02", ...)이 쌓인다.
// /api/mes/boms 영속 저장소와 인메모리 스토어가 같은 구조를 공유한다.
type BOM struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductCode string    `json:"productCode" gorm:"size:64;not null;index"`
	ProductName string    `json:"productName" gorm:"size:128;not null"`
	RoutingID   int64     `json:"routingId"`
	RoutingName string    `json:"routingName" gorm:"size:128"`
	Revision    string    `json:"revision" gorm:"size:16"`
	Status      string    `json:"status" gorm:"size:16;not null;default:active"`
	CreatedAt   time.Time `json:"createdAt"`
	ModifiedAt  time.Time `json:"modifiedAt" gorm:"autoUpdateTime"`

	Items []BOMItem `json:"items,omitempty" gorm:"foreignKey:BOMID"`
}

func (BOM) TableName() string {
	return "mes_boms"
}

// BOMItem BOM 자재 소요 행. ProcessSequence는 라우팅 스텝 Sequence의 복사값이다.
type BOMItem struct {
	ID                int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	BOMID             int64   `json:"bomId" gorm:"not null;index"`
	ProcessSequence   int     `json:"processSequence"`
	ProcessName       string  `json:"processName" gorm:"size:64"`
	MaterialCode      string  `json:"materialCode" gorm:"size:64;not null"`
	MaterialName      string  `json:"materialName" gorm:"size:128;not null"`
	Quantity          float64 `json:"quantity" gorm:"type:decimal(12,4);not null"`
	Unit              string  `json:"unit" gorm:"size:16"`
	LossRate          float64 `json:"lossRate" gorm:"type:decimal(6,2)"`
	AlternateMaterial string  `json:"alternateMaterial" gorm:"size:64"`
}

func (BOMItem) TableName() string {
	return "mes_bom_items"
}
