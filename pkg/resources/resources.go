// Package resources declares the four farm record kinds as view descriptors.
package resources

import (
	"strconv"

	"github.com/dustin/go-humanize"

	"kaard/entities"
	"kaard/pkg/view"
)

const placeholder = "-"

func orDash(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func date(s string) string { return orDash(view.DateOnly(s)) }

func options(values ...string) []view.Option {
	out := make([]view.Option, len(values))
	for i, v := range values {
		out[i] = view.Option{Value: v, Label: v}
	}
	return out
}

func Crops() view.Descriptor[entities.Crop] {
	return view.Descriptor[entities.Crop]{
		Kind:      "crops",
		Title:     "Crop Inventory Management",
		Singular:  "Crop",
		ListTitle: "Crop Inventory",
		Empty:     "No crops in inventory. Add your first crop above.",
		Fields: []view.Field{
			{Key: "cropName", Label: "Crop Name", Kind: view.Text, Required: true, Placeholder: "e.g., Maize, Wheat, Tobacco"},
			{Key: "quantity", Label: "Quantity", Kind: view.Number, Required: true, Placeholder: "0", Min: view.Bound(0)},
			{Key: "unit", Label: "Unit", Kind: view.Enum, Default: "kg", Options: []view.Option{
				{Value: "kg", Label: "Kilograms (kg)"},
				{Value: "tons", Label: "Tons"},
				{Value: "bags", Label: "Bags"},
			}},
			{Key: "storageLocation", Label: "Storage Location", Kind: view.Text, Placeholder: "e.g., Warehouse A, Silo 2"},
			{Key: "harvestDate", Label: "Harvest Date", Kind: view.Date},
			{Key: "status", Label: "Status", Kind: view.Enum, Default: "In Stock", Options: options("In Stock", "Low Stock", "Sold")},
		},
		Columns: []view.Column[entities.Crop]{
			{Header: "Crop Name", Cell: func(c entities.Crop) string { return c.CropName }},
			{Header: "Quantity", Cell: func(c entities.Crop) string { return num(c.Quantity) + " " + c.Unit }},
			{Header: "Storage Location", Cell: func(c entities.Crop) string { return orDash(c.StorageLocation) }},
			{Header: "Harvest Date", Cell: func(c entities.Crop) string { return date(c.HarvestDate) }},
			{Header: "Status", Cell: func(c entities.Crop) string { return c.Status }},
		},
		Updatable: true,
		ID:        func(c entities.Crop) string { return c.ID },
	}
}

func Equipment() view.Descriptor[entities.Equipment] {
	return view.Descriptor[entities.Equipment]{
		Kind:      "equipment",
		Title:     "Equipment Management",
		Singular:  "Equipment",
		ListTitle: "Equipment List",
		Empty:     "No equipment registered. Add equipment above.",
		Fields: []view.Field{
			{Key: "equipmentName", Label: "Equipment Name", Kind: view.Text, Required: true, Placeholder: "e.g., Tractor, Plow, Irrigation System"},
			{Key: "equipmentType", Label: "Type", Kind: view.Enum, Options: options("Tractor", "Harvester", "Plow", "Irrigation", "Other")},
			{Key: "condition", Label: "Condition", Kind: view.Enum, Default: "Working", Options: options("Working", "Needs Repair", "Broken")},
			{Key: "lastMaintenance", Label: "Last Maintenance Date", Kind: view.Date},
			{Key: "location", Label: "Location", Kind: view.Text, Placeholder: "e.g., Farm Section A, Shed 2"},
		},
		Columns: []view.Column[entities.Equipment]{
			{Header: "Equipment Name", Cell: func(e entities.Equipment) string { return e.EquipmentName }},
			{Header: "Type", Cell: func(e entities.Equipment) string { return orDash(e.EquipmentType) }},
			{Header: "Condition", Cell: func(e entities.Equipment) string { return e.Condition }},
			{Header: "Last Maintenance", Cell: func(e entities.Equipment) string { return date(e.LastMaintenance) }},
			{Header: "Location", Cell: func(e entities.Equipment) string { return orDash(e.Location) }},
		},
		Updatable: true,
		ID:        func(e entities.Equipment) string { return e.ID },
	}
}

// Production records can be added and deleted but not edited.
func Production() view.Descriptor[entities.ProductionRecord] {
	return view.Descriptor[entities.ProductionRecord]{
		Kind:      "production",
		Title:     "Production Tracking",
		Singular:  "Production Record",
		ListTitle: "Production Records",
		Empty:     "No production records. Add your first record above.",
		Fields: []view.Field{
			{Key: "fieldNumber", Label: "Field Number", Kind: view.Text, Required: true, Placeholder: "e.g., Field A1, Plot 5"},
			{Key: "cropType", Label: "Crop Type", Kind: view.Text, Required: true, Placeholder: "e.g., Maize, Wheat"},
			{Key: "areaHectares", Label: "Area (Hectares)", Kind: view.Number, Required: true, Placeholder: "0.00", Step: "0.01", Min: view.Bound(0), MinExclusive: true},
			{Key: "plantingDate", Label: "Planting Date", Kind: view.Date, Required: true},
			{Key: "harvestDate", Label: "Harvest Date", Kind: view.Date},
			{Key: "yieldAmount", Label: "Yield Amount (kg)", Kind: view.Number, Placeholder: "Total yield in kg", Min: view.Bound(0)},
			{Key: "qualityGrade", Label: "Quality Grade", Kind: view.Enum, Options: []view.Option{
				{Value: "A", Label: "Grade A - Excellent"},
				{Value: "B", Label: "Grade B - Good"},
				{Value: "C", Label: "Grade C - Fair"},
			}},
		},
		Columns: []view.Column[entities.ProductionRecord]{
			{Header: "Field", Cell: func(p entities.ProductionRecord) string { return p.FieldNumber }},
			{Header: "Crop Type", Cell: func(p entities.ProductionRecord) string { return p.CropType }},
			{Header: "Area (ha)", Cell: func(p entities.ProductionRecord) string { return num(p.AreaHectares) }},
			{Header: "Planting Date", Cell: func(p entities.ProductionRecord) string { return date(p.PlantingDate) }},
			{Header: "Harvest Date", Cell: func(p entities.ProductionRecord) string {
				if p.HarvestDate == "" {
					return "Pending"
				}
				return view.DateOnly(p.HarvestDate)
			}},
			{Header: "Yield (kg)", Cell: func(p entities.ProductionRecord) string {
				if p.YieldAmount == nil || *p.YieldAmount == 0 {
					return placeholder
				}
				return num(*p.YieldAmount)
			}},
			{Header: "Yield/ha", Cell: YieldPerHectare},
			{Header: "Grade", Cell: func(p entities.ProductionRecord) string {
				if p.QualityGrade == "" {
					return placeholder
				}
				return "Grade " + p.QualityGrade
			}},
		},
		Updatable: false,
		ID:        func(p entities.ProductionRecord) string { return p.ID },
	}
}

// YieldPerHectare renders the derived yield with two decimals, or "-".
func YieldPerHectare(p entities.ProductionRecord) string {
	v, ok := p.YieldPerHectare()
	if !ok {
		return placeholder
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func Vehicles() view.Descriptor[entities.Vehicle] {
	return view.Descriptor[entities.Vehicle]{
		Kind:      "vehicles",
		Title:     "Vehicle Tracking",
		Singular:  "Vehicle",
		ListTitle: "Vehicle List",
		Empty:     "No vehicles registered.",
		Fields: []view.Field{
			{Key: "vehicleName", Label: "Vehicle Name", Kind: view.Text, Required: true, Placeholder: "e.g., Tractor 1, Truck A"},
			{Key: "registration", Label: "Registration Number", Kind: view.Text, Placeholder: "e.g., ABC-1234"},
			{Key: "type", Label: "Type", Kind: view.Enum, Options: options("Tractor", "Truck", "Van", "Other")},
			{Key: "driverName", Label: "Driver Name", Kind: view.Text, Placeholder: "Driver's name"},
			{Key: "fuelLevel", Label: "Fuel Level (%)", Kind: view.Number, Default: "100", Min: view.Bound(0), Max: view.Bound(100)},
			{Key: "status", Label: "Status", Kind: view.Enum, Default: "Idle", Options: options("Idle", "Active", "Maintenance")},
		},
		Columns: []view.Column[entities.Vehicle]{
			{Header: "Vehicle", Cell: func(v entities.Vehicle) string { return v.VehicleName }},
			{Header: "Status", Cell: func(v entities.Vehicle) string { return v.Status }},
			{Header: "Reg", Cell: func(v entities.Vehicle) string { return orDash(v.Registration) }},
			{Header: "Type", Cell: func(v entities.Vehicle) string { return orDash(v.Type) }},
			{Header: "Driver", Cell: func(v entities.Vehicle) string {
				if v.DriverName == "" {
					return "Unassigned"
				}
				return v.DriverName
			}},
			{Header: "Fuel", Cell: func(v entities.Vehicle) string { return num(v.FuelLevel) + "%" }},
			{Header: "Location", Cell: func(v entities.Vehicle) string {
				return strconv.FormatFloat(v.CurrentLat, 'f', 4, 64) + ", " + strconv.FormatFloat(v.CurrentLng, 'f', 4, 64)
			}},
			{Header: "Updated", Cell: Updated},
		},
		Updatable: true,
		ID:        func(v entities.Vehicle) string { return v.ID },
	}
}

// Updated renders how long ago the vehicle last reported.
func Updated(v entities.Vehicle) string {
	t := v.UpdatedAt()
	if t.IsZero() {
		return placeholder
	}
	return humanize.Time(t)
}
