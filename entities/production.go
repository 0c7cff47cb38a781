package entities

import "math"

type ProductionRecord struct {
	ID           string   `json:"_id,omitempty"`
	FieldNumber  string   `json:"fieldNumber"`
	CropType     string   `json:"cropType"`
	PlantingDate string   `json:"plantingDate"`
	HarvestDate  string   `json:"harvestDate,omitempty"`
	AreaHectares float64  `json:"areaHectares"`
	YieldAmount  *float64 `json:"yieldAmount,omitempty"`
	QualityGrade string   `json:"qualityGrade,omitempty"` // A|B|C
}

// YieldPerHectare is derived, never sent to the API. ok is false when either
// operand is missing or zero.
func (p ProductionRecord) YieldPerHectare() (v float64, ok bool) {
	if p.YieldAmount == nil || *p.YieldAmount == 0 || p.AreaHectares == 0 {
		return 0, false
	}
	return math.Round(*p.YieldAmount/p.AreaHectares*100) / 100, true
}
