package entities

import "time"

type Vehicle struct {
	ID           string  `json:"_id,omitempty"`
	VehicleName  string  `json:"vehicleName"`
	Registration string  `json:"registration,omitempty"`
	Type         string  `json:"type,omitempty"` // Tractor|Truck|Van|Other
	DriverName   string  `json:"driverName,omitempty"`
	FuelLevel    float64 `json:"fuelLevel"`
	Status       string  `json:"status"` // Idle|Active|Maintenance
	CurrentLat   float64 `json:"currentLat"`
	CurrentLng   float64 `json:"currentLng"`
	LastUpdate   string  `json:"lastUpdate,omitempty"`
}

// UpdatedAt parses LastUpdate; zero when absent or malformed.
func (v Vehicle) UpdatedAt() time.Time {
	t, err := time.Parse(time.RFC3339, v.LastUpdate)
	if err != nil {
		return time.Time{}
	}
	return t
}
