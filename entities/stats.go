package entities

// DashboardStats is the pre-aggregated snapshot served by GET /stats.
type DashboardStats struct {
	CropCount              int     `json:"cropCount"`
	EquipmentCount         int     `json:"equipmentCount"`
	ProductionCount        int     `json:"productionCount"`
	VehicleCount           int     `json:"vehicleCount"`
	TotalCropQuantity      float64 `json:"totalCropQuantity"`
	ActiveVehicles         int     `json:"activeVehicles"`
	EquipmentNeedingRepair int     `json:"equipmentNeedingRepair"`
}
