package models

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// MaritalStatus is the declared civil status of an owner.
type MaritalStatus string

const (
	MaritalUnmarried MaritalStatus = "UNMARRIED"
	MaritalMarried   MaritalStatus = "MARRIED"
	MaritalDivorced  MaritalStatus = "DIVORCED"
	MaritalWidowed   MaritalStatus = "WIDOWED"
	MaritalSeparated MaritalStatus = "SEPARATED"
)

// Address is the owner's address outside Italy. All fields are required.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// ItalianResidenceDetails holds the Italian residence of an owner.
// Only relevant (and only validated) when the owner is resident in Italy.
// The date range is set when the residence covered part of the year only.
type ItalianResidenceDetails struct {
	Street        string     `json:"street"`
	ComuneName    string     `json:"comuneName"`
	Province      string     `json:"province"`
	Zip           string     `json:"zip"`
	IsPartialYear bool       `json:"isPartialYear"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

// Owner is a person associated with one or more reported properties.
// Optional fields use pointers to distinguish zero values from "not entered".
type Owner struct {
	ID                      string                   `json:"id"`
	FirstName               string                   `json:"firstName"`
	LastName                string                   `json:"lastName"`
	DateOfBirth             *time.Time               `json:"dateOfBirth,omitempty"`
	CountryOfBirth          string                   `json:"countryOfBirth"`
	Citizenship             string                   `json:"citizenship"`
	MaritalStatus           MaritalStatus            `json:"maritalStatus"`
	ItalianTaxCode          string                   `json:"italianTaxCode"`
	Address                 Address                  `json:"address"`
	IsResidentInItaly       bool                     `json:"isResidentInItaly"`
	ItalianResidenceDetails *ItalianResidenceDetails `json:"italianResidenceDetails,omitempty"`
}

// NewOwner creates an empty owner record with a fresh ID.
func NewOwner() *Owner {
	return &Owner{
		ID:            ulid.MustNewDefault(time.Now()).String(),
		MaritalStatus: MaritalUnmarried,
	}
}

// clonePtr copies the value behind a pointer, or passes nil through.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (o *Owner) clone() *Owner {
	out := *o
	out.DateOfBirth = clonePtr(o.DateOfBirth)
	if o.ItalianResidenceDetails != nil {
		details := *o.ItalianResidenceDetails
		details.StartDate = clonePtr(o.ItalianResidenceDetails.StartDate)
		details.EndDate = clonePtr(o.ItalianResidenceDetails.EndDate)
		out.ItalianResidenceDetails = &details
	}
	return &out
}
