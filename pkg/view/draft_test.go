package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productionFields = []Field{
	{Key: "fieldNumber", Label: "Field Number", Kind: Text, Required: true},
	{Key: "areaHectares", Label: "Area", Kind: Number, Required: true, Min: Bound(0), MinExclusive: true},
	{Key: "yieldAmount", Label: "Yield", Kind: Number, Min: Bound(0)},
	{Key: "fuelLevel", Label: "Fuel", Kind: Number, Min: Bound(0), Max: Bound(100)},
	{Key: "qualityGrade", Label: "Grade", Kind: Enum, Options: []Option{{Value: "A"}, {Value: "B"}, {Value: "C"}}},
}

func TestPayload_ConvertsNumbersAndEmptyOptionals(t *testing.T) {
	body, err := Draft{"fieldNumber": " F-1 ", "areaHectares": "2.5", "yieldAmount": "", "fuelLevel": "100", "qualityGrade": ""}.Payload(productionFields)
	require.NoError(t, err)

	assert.Equal(t, "F-1", body["fieldNumber"])
	assert.Equal(t, 2.5, body["areaHectares"])
	assert.Contains(t, body, "yieldAmount")
	assert.Nil(t, body["yieldAmount"])
	assert.Equal(t, 100.0, body["fuelLevel"])
	assert.Equal(t, "", body["qualityGrade"])
}

func TestPayload_CollectsEveryProblem(t *testing.T) {
	_, err := Draft{"areaHectares": "0", "yieldAmount": "-1", "fuelLevel": "101", "qualityGrade": "Z"}.Payload(productionFields)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []FieldProblem{
		{Field: "fieldNumber", Label: "Field Number", Message: "is required"},
		{Field: "areaHectares", Label: "Area", Message: "must be greater than 0"},
		{Field: "yieldAmount", Label: "Yield", Message: "must be at least 0"},
		{Field: "fuelLevel", Label: "Fuel", Message: "must be at most 100"},
		{Field: "qualityGrade", Label: "Grade", Message: "has an unknown value"},
	}, verr.Problems)
}

func TestPayload_RejectsNaNAndInfinity(t *testing.T) {
	for _, raw := range []string{"NaN", "Inf", "-Infinity", "+inf"} {
		_, err := Draft{"fieldNumber": "F-1", "areaHectares": "2", "yieldAmount": raw}.Payload(productionFields)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr, raw)
		assert.Equal(t, []FieldProblem{{Field: "yieldAmount", Label: "Yield", Message: "must be a number"}}, verr.Problems, raw)
	}
}

func TestDraftFrom_FormatsValues(t *testing.T) {
	type rec struct {
		FieldNumber  string   `json:"fieldNumber"`
		AreaHectares float64  `json:"areaHectares"`
		YieldAmount  *float64 `json:"yieldAmount,omitempty"`
	}
	d, err := DraftFrom(productionFields, rec{FieldNumber: "F-2", AreaHectares: 3})
	require.NoError(t, err)

	assert.Equal(t, "F-2", d["fieldNumber"])
	assert.Equal(t, "3", d["areaHectares"])
	assert.Equal(t, "", d["yieldAmount"])
}

func TestDraftOnly_DropsUnknownKeys(t *testing.T) {
	d := Draft{"fieldNumber": "F-1", "_id": "x", "yieldPerHectare": "9"}.Only(productionFields)
	assert.NotContains(t, d, "_id")
	assert.NotContains(t, d, "yieldPerHectare")
	assert.Equal(t, "F-1", d["fieldNumber"])
}

func TestDateOnly(t *testing.T) {
	assert.Equal(t, "2024-03-01", DateOnly("2024-03-01T00:00:00.000Z"))
	assert.Equal(t, "2024-03-01", DateOnly("2024-03-01"))
	assert.Equal(t, "", DateOnly(""))
}
