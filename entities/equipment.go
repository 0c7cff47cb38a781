package entities

type Equipment struct {
	ID              string `json:"_id,omitempty"`
	EquipmentName   string `json:"equipmentName"`
	EquipmentType   string `json:"equipmentType,omitempty"` // Tractor|Harvester|Plow|Irrigation|Other
	Condition       string `json:"condition"`               // Working|Needs Repair|Broken
	LastMaintenance string `json:"lastMaintenance,omitempty"`
	Location        string `json:"location,omitempty"`
}
