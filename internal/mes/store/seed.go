package store

import "github.com/hotfcs/mes-server/internal/mes/entity"

// SeedDemo 데모 마스터 데이터 시드. 운영 환경에서는 SQL 디렉터리로 대체된다.
func SeedDemo(s *Store) {
	products := []entity.Product{
		{Code: "P-1001", Name: "스마트 센서 모듈", Spec: "SSM-A1", Unit: "EA", Status: entity.StatusActive},
		{Code: "P-1002", Name: "컨트롤러 보드", Spec: "CTB-B2", Unit: "EA", Status: entity.StatusActive},
		{Code: "P-1003", Name: "디스플레이 패널", Spec: "DPN-C3", Unit: "EA", Status: entity.StatusInactive},
	}
	materials := []entity.Material{
		{Code: "M-2001", Name: "PCB 기판", Spec: "FR-4 1.6T", Unit: "EA", Status: entity.StatusActive},
		{Code: "M-2002", Name: "칩 저항", Spec: "0603 10K", Unit: "EA", Status: entity.StatusActive},
		{Code: "M-2003", Name: "커넥터", Spec: "2.54mm 10P", Unit: "EA", Status: entity.StatusActive},
		{Code: "M-2004", Name: "하우징", Spec: "ABS 블랙", Unit: "EA", Status: entity.StatusActive},
		{Code: "M-2005", Name: "솔더 페이스트", Spec: "SAC305", Unit: "KG", Status: entity.StatusInactive},
	}
	lines := []entity.Line{
		{Code: "L-01", Name: "1라인", Status: entity.StatusActive},
		{Code: "L-02", Name: "2라인", Status: entity.StatusActive},
		{Code: "L-03", Name: "3라인", Status: entity.StatusInactive},
	}
	processes := []entity.Process{
		{Code: "PR-01", Name: "SMT 실장", Line: "1라인", Status: entity.StatusActive},
		{Code: "PR-02", Name: "리플로우", Line: "1라인", Status: entity.StatusActive},
		{Code: "PR-03", Name: "검사", Line: "1라인", Status: entity.StatusActive},
		{Code: "PR-04", Name: "조립", Line: "2라인", Status: entity.StatusActive},
		{Code: "PR-05", Name: "포장", Line: "2라인", Status: entity.StatusActive},
	}
	equipments := []entity.Equipment{
		{Code: "EQ-01", Name: "마운터 1호기", Line: "1라인", Status: entity.StatusActive},
		{Code: "EQ-02", Name: "리플로우 오븐", Line: "1라인", Status: entity.StatusActive},
		{Code: "EQ-03", Name: "AOI 검사기", Line: "1라인", Status: entity.StatusActive},
		{Code: "EQ-04", Name: "조립 지그", Line: "2라인", Status: entity.StatusActive},
		{Code: "EQ-05", Name: "포장기", Line: "2라인", Status: entity.StatusActive},
	}
	s.SeedMasters(products, materials, lines, processes, equipments)
}
