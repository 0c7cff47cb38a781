package entities

type Crop struct {
	ID              string  `json:"_id,omitempty"`
	CropName        string  `json:"cropName"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`   // kg|tons|bags
	StorageLocation string  `json:"storageLocation,omitempty"`
	HarvestDate     string  `json:"harvestDate,omitempty"`
	Status          string  `json:"status"` // In Stock|Low Stock|Sold
}
