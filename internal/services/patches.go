package services

import (
	"strings"
	"time"

	"github.com/casafile/api/internal/models"
)

// Patch types carry partial updates for form entities. Every field is
// optional; nil fields leave the entity untouched. The finite set of
// fields replaces the original UI's dotted-path string mutations with
// updates that are checked at compile time.

// AddressPatch updates an owner's address outside Italy.
type AddressPatch struct {
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	Zip     *string `json:"zip,omitempty"`
	Country *string `json:"country,omitempty"`
}

func (p *AddressPatch) apply(a *models.Address) {
	if p.Street != nil {
		a.Street = *p.Street
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.Zip != nil {
		a.Zip = *p.Zip
	}
	if p.Country != nil {
		a.Country = *p.Country
	}
}

// ResidencePatch updates an owner's Italian residence details.
type ResidencePatch struct {
	Street        *string    `json:"street,omitempty"`
	ComuneName    *string    `json:"comuneName,omitempty"`
	Province      *string    `json:"province,omitempty"`
	Zip           *string    `json:"zip,omitempty"`
	IsPartialYear *bool      `json:"isPartialYear,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

func (p *ResidencePatch) apply(d *models.ItalianResidenceDetails) {
	if p.Street != nil {
		d.Street = *p.Street
	}
	if p.ComuneName != nil {
		d.ComuneName = *p.ComuneName
	}
	if p.Province != nil {
		d.Province = *p.Province
	}
	if p.Zip != nil {
		d.Zip = *p.Zip
	}
	if p.IsPartialYear != nil {
		d.IsPartialYear = *p.IsPartialYear
	}
	if p.StartDate != nil {
		d.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		d.EndDate = p.EndDate
	}
}

// OwnerPatch is a partial update of an owner record.
type OwnerPatch struct {
	FirstName               *string               `json:"firstName,omitempty"`
	LastName                *string               `json:"lastName,omitempty"`
	DateOfBirth             *time.Time            `json:"dateOfBirth,omitempty"`
	CountryOfBirth          *string               `json:"countryOfBirth,omitempty"`
	Citizenship             *string               `json:"citizenship,omitempty"`
	MaritalStatus           *models.MaritalStatus `json:"maritalStatus,omitempty"`
	ItalianTaxCode          *string               `json:"italianTaxCode,omitempty"`
	IsResidentInItaly       *bool                 `json:"isResidentInItaly,omitempty"`
	Address                 *AddressPatch         `json:"address,omitempty"`
	ItalianResidenceDetails *ResidencePatch       `json:"italianResidenceDetails,omitempty"`
}

// Apply copies the set fields onto the owner. The tax code is
// case-normalized to upper on the way in.
func (p *OwnerPatch) Apply(o *models.Owner) {
	if p.FirstName != nil {
		o.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		o.LastName = *p.LastName
	}
	if p.DateOfBirth != nil {
		o.DateOfBirth = p.DateOfBirth
	}
	if p.CountryOfBirth != nil {
		o.CountryOfBirth = *p.CountryOfBirth
	}
	if p.Citizenship != nil {
		o.Citizenship = *p.Citizenship
	}
	if p.MaritalStatus != nil {
		o.MaritalStatus = *p.MaritalStatus
	}
	if p.ItalianTaxCode != nil {
		o.ItalianTaxCode = strings.ToUpper(*p.ItalianTaxCode)
	}
	if p.IsResidentInItaly != nil {
		o.IsResidentInItaly = *p.IsResidentInItaly
	}
	if p.Address != nil {
		p.Address.apply(&o.Address)
	}
	if p.ItalianResidenceDetails != nil {
		if o.ItalianResidenceDetails == nil {
			o.ItalianResidenceDetails = &models.ItalianResidenceDetails{}
		}
		p.ItalianResidenceDetails.apply(o.ItalianResidenceDetails)
	}
}

// PropertyAddressPatch updates a property's Italian address.
type PropertyAddressPatch struct {
	Street   *string `json:"street,omitempty"`
	Comune   *string `json:"comune,omitempty"`
	Province *string `json:"province,omitempty"`
	Zip      *string `json:"zip,omitempty"`
}

func (p *PropertyAddressPatch) apply(a *models.PropertyAddress) {
	if p.Street != nil {
		a.Street = *p.Street
	}
	if p.Comune != nil {
		a.Comune = *p.Comune
	}
	if p.Province != nil {
		a.Province = *p.Province
	}
	if p.Zip != nil {
		a.Zip = *p.Zip
	}
}

// PropertyPatch is a partial update of a property record. Occupancy
// periods are not updated here; they go through the occupancy allocator.
type PropertyPatch struct {
	Label         *string                `json:"label,omitempty"`
	Address       *PropertyAddressPatch  `json:"address,omitempty"`
	PropertyType  *models.PropertyType   `json:"propertyType,omitempty"`
	Activity2024  *models.ActivityStatus `json:"activity2024,omitempty"`
	PurchaseDate  *time.Time             `json:"purchaseDate,omitempty"`
	PurchasePrice *float64               `json:"purchasePrice,omitempty"`
	SaleDate      *time.Time             `json:"saleDate,omitempty"`
	SalePrice     *float64               `json:"salePrice,omitempty"`
	Remodeling    *bool                  `json:"remodeling,omitempty"`
}

// Apply copies the set fields onto the property.
func (p *PropertyPatch) Apply(prop *models.Property) {
	if p.Label != nil {
		prop.Label = p.Label
	}
	if p.Address != nil {
		p.Address.apply(&prop.Address)
	}
	if p.PropertyType != nil {
		prop.PropertyType = *p.PropertyType
	}
	if p.Activity2024 != nil {
		prop.Activity2024 = *p.Activity2024
	}
	if p.PurchaseDate != nil {
		prop.PurchaseDate = p.PurchaseDate
	}
	if p.PurchasePrice != nil {
		prop.PurchasePrice = p.PurchasePrice
	}
	if p.SaleDate != nil {
		prop.SaleDate = p.SaleDate
	}
	if p.SalePrice != nil {
		prop.SalePrice = p.SalePrice
	}
	if p.Remodeling != nil {
		prop.Remodeling = *p.Remodeling
	}
}

// AssignmentPatch is a partial update of one owner-property assignment.
// ClaimTaxCredits toggles the presence of the taxCredits amount: claiming
// sets it to 0 when absent, unclaiming clears it.
type AssignmentPatch struct {
	OwnershipPercentage *float64          `json:"ownershipPercentage,omitempty"`
	ResidentAtProperty  *bool             `json:"residentAtProperty,omitempty"`
	ResidentDateRange   *models.DateRange `json:"residentDateRange,omitempty"`
	ClaimTaxCredits     *bool             `json:"claimTaxCredits,omitempty"`
	TaxCredits          *float64          `json:"taxCredits,omitempty"`
}

// Apply copies the set fields onto the assignment.
func (p *AssignmentPatch) Apply(a *models.OwnerPropertyAssignment) {
	if p.OwnershipPercentage != nil {
		a.OwnershipPercentage = *p.OwnershipPercentage
	}
	if p.ResidentAtProperty != nil {
		a.ResidentAtProperty = *p.ResidentAtProperty
	}
	if p.ResidentDateRange != nil {
		a.ResidentDateRange = p.ResidentDateRange
	}
	if p.ClaimTaxCredits != nil {
		if *p.ClaimTaxCredits {
			if a.TaxCredits == nil {
				zero := 0.0
				a.TaxCredits = &zero
			}
		} else {
			a.TaxCredits = nil
		}
	}
	if p.TaxCredits != nil {
		a.TaxCredits = p.TaxCredits
	}
}
