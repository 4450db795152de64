package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProperty_Defaults(t *testing.T) {
	p := NewProperty()

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, TypeResidential, p.PropertyType)
	assert.Equal(t, ActivityNeither, p.Activity2024)
	require.Len(t, p.OccupancyPeriods, 1)
	assert.Equal(t, OccupancyOwnerOccupied, p.OccupancyPeriods[0].Status)
	assert.Equal(t, 12, p.OccupancyPeriods[0].Months)

	another := NewProperty()
	assert.NotEqual(t, p.ID, another.ID)
}

func TestActivityStatus_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ActivityStatus
		wantErr  bool
	}{
		{name: "purchased", input: `"purchased"`, expected: ActivityPurchased},
		{name: "sold", input: `"sold"`, expected: ActivitySold},
		{name: "both", input: `"both"`, expected: ActivityBoth},
		{name: "neither", input: `"neither"`, expected: ActivityNeither},
		{name: "OWNED_ALL_YEAR maps to neither", input: `"OWNED_ALL_YEAR"`, expected: ActivityNeither},
		{name: "owned all year maps to neither", input: `"owned all year"`, expected: ActivityNeither},
		{name: "owned_all_year maps to neither", input: `"owned_all_year"`, expected: ActivityNeither},
		{name: "empty string maps to neither", input: `""`, expected: ActivityNeither},
		{name: "unknown value rejected", input: `"leased"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ActivityStatus
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOccupancyStatus_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected OccupancyStatus
		wantErr  bool
	}{
		{name: "long term rental", input: `"LONG_TERM_RENTAL"`, expected: OccupancyLongTermRental},
		{name: "vacant", input: `"VACANT"`, expected: OccupancyVacant},
		{name: "legacy PERSONAL_USE maps to owner occupied", input: `"PERSONAL_USE"`, expected: OccupancyOwnerOccupied},
		{name: "unknown value rejected", input: `"SUBLET"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got OccupancyStatus
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestProperty_ActivityHelpers(t *testing.T) {
	p := NewProperty()
	assert.False(t, p.WasPurchased())
	assert.False(t, p.WasSold())

	p.Activity2024 = ActivityPurchased
	assert.True(t, p.WasPurchased())
	assert.False(t, p.WasSold())

	p.Activity2024 = ActivityBoth
	assert.True(t, p.WasPurchased())
	assert.True(t, p.WasSold())
}
