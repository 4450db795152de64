package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// PropertyType classifies the use of a reported property.
type PropertyType string

const (
	TypeResidential  PropertyType = "RESIDENTIAL"
	TypeBedBreakfast PropertyType = "B&B"
	TypeCommercial   PropertyType = "COMMERCIAL"
	TypeLand         PropertyType = "LAND"
)

// ActivityStatus records whether the property was bought and/or sold
// during the reporting year.
type ActivityStatus string

const (
	ActivityPurchased ActivityStatus = "purchased"
	ActivitySold      ActivityStatus = "sold"
	ActivityBoth      ActivityStatus = "both"
	ActivityNeither   ActivityStatus = "neither"
)

// UnmarshalJSON normalizes the "owned all year" display variant, which is
// equivalent to "neither" everywhere outside the UI.
func (a *ActivityStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch ActivityStatus(s) {
	case ActivityPurchased, ActivitySold, ActivityBoth, ActivityNeither:
		*a = ActivityStatus(s)
	case "OWNED_ALL_YEAR", "owned all year", "owned_all_year":
		*a = ActivityNeither
	case "":
		*a = ActivityNeither
	default:
		return fmt.Errorf("unknown activity status %q", s)
	}
	return nil
}

// OccupancyStatus is the way a property was used during one occupancy period.
// A status may appear at most once per property.
type OccupancyStatus string

const (
	OccupancyLongTermRental  OccupancyStatus = "LONG_TERM_RENTAL"
	OccupancyShortTermRental OccupancyStatus = "SHORT_TERM_RENTAL"
	OccupancyOwnerOccupied   OccupancyStatus = "OWNER_OCCUPIED"
	OccupancyVacant          OccupancyStatus = "VACANT"
)

// UnmarshalJSON maps the legacy PERSONAL_USE value onto owner-occupied.
func (o *OccupancyStatus) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch OccupancyStatus(s) {
	case OccupancyLongTermRental, OccupancyShortTermRental, OccupancyOwnerOccupied, OccupancyVacant:
		*o = OccupancyStatus(s)
	case "PERSONAL_USE":
		*o = OccupancyOwnerOccupied
	default:
		return fmt.Errorf("unknown occupancy status %q", s)
	}
	return nil
}

// OccupancyPeriod is a span of whole months during which the property was
// used in one particular way within the reporting year.
type OccupancyPeriod struct {
	Status OccupancyStatus `json:"status"`
	Months int             `json:"months"`
}

// PropertyAddress is the Italian address of a reported property.
type PropertyAddress struct {
	Street   string `json:"street"`
	Comune   string `json:"comune"`
	Province string `json:"province"`
	Zip      string `json:"zip"`
}

// Property is a real-estate asset being reported.
// Purchase and sale fields use pointers so a genuine zero is
// distinguishable from "not entered".
type Property struct {
	ID               string            `json:"id"`
	Label            *string           `json:"label,omitempty"`
	Address          PropertyAddress   `json:"address"`
	PropertyType     PropertyType      `json:"propertyType"`
	Activity2024     ActivityStatus    `json:"activity2024"`
	PurchaseDate     *time.Time        `json:"purchaseDate,omitempty"`
	PurchasePrice    *float64          `json:"purchasePrice,omitempty"`
	SaleDate         *time.Time        `json:"saleDate,omitempty"`
	SalePrice        *float64          `json:"salePrice,omitempty"`
	Remodeling       bool              `json:"remodeling"`
	OccupancyPeriods []OccupancyPeriod `json:"occupancyPeriods"`
}

// NewProperty creates a property with the default occupancy of a full
// owner-occupied year.
func NewProperty() *Property {
	return &Property{
		ID:           ulid.MustNewDefault(time.Now()).String(),
		PropertyType: TypeResidential,
		Activity2024: ActivityNeither,
		OccupancyPeriods: []OccupancyPeriod{
			{Status: OccupancyOwnerOccupied, Months: 12},
		},
	}
}

func (p *Property) clone() *Property {
	out := *p
	out.Label = clonePtr(p.Label)
	out.PurchaseDate = clonePtr(p.PurchaseDate)
	out.PurchasePrice = clonePtr(p.PurchasePrice)
	out.SaleDate = clonePtr(p.SaleDate)
	out.SalePrice = clonePtr(p.SalePrice)
	out.OccupancyPeriods = make([]OccupancyPeriod, len(p.OccupancyPeriods))
	copy(out.OccupancyPeriods, p.OccupancyPeriods)
	return &out
}

// WasPurchased reports whether the activity classification requires
// purchase details.
func (p *Property) WasPurchased() bool {
	return p.Activity2024 == ActivityPurchased || p.Activity2024 == ActivityBoth
}

// WasSold reports whether the activity classification requires sale details.
func (p *Property) WasSold() bool {
	return p.Activity2024 == ActivitySold || p.Activity2024 == ActivityBoth
}
