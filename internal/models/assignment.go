package models

import (
	"encoding/json"
	"sort"
	"time"
)

// DateRange is an inclusive date interval. Both endpoints are optional at
// the model level; validation decides when they become required.
type DateRange struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// AssignmentKey is the composite key of an owner-property pairing.
type AssignmentKey struct {
	PropertyID string
	OwnerID    string
}

// OwnerPropertyAssignment records what share of one property one owner
// holds, plus residency and tax-credit facts tied to that pairing.
// TaxCredits is nil when no credit claim is being made; claiming is
// toggled by setting it to 0 or clearing it.
type OwnerPropertyAssignment struct {
	PropertyID          string     `json:"propertyId"`
	OwnerID             string     `json:"ownerId"`
	OwnershipPercentage float64    `json:"ownershipPercentage"`
	ResidentAtProperty  bool       `json:"residentAtProperty"`
	ResidentDateRange   *DateRange `json:"residentDateRange,omitempty"`
	TaxCredits          *float64   `json:"taxCredits,omitempty"`
}

// Key returns the composite key of the assignment.
func (a *OwnerPropertyAssignment) Key() AssignmentKey {
	return AssignmentKey{PropertyID: a.PropertyID, OwnerID: a.OwnerID}
}

func (a *OwnerPropertyAssignment) clone() *OwnerPropertyAssignment {
	out := *a
	out.TaxCredits = clonePtr(a.TaxCredits)
	if a.ResidentDateRange != nil {
		out.ResidentDateRange = &DateRange{
			From: clonePtr(a.ResidentDateRange.From),
			To:   clonePtr(a.ResidentDateRange.To),
		}
	}
	return &out
}

// AssignmentSet holds all assignments of a form keyed by the
// (propertyId, ownerId) pair, so the one-per-pair invariant is enforced by
// the structure itself. It marshals as a JSON array in deterministic
// (propertyId, ownerId) order.
type AssignmentSet map[AssignmentKey]*OwnerPropertyAssignment

// Get returns the assignment for the pair, or nil when none exists.
func (s AssignmentSet) Get(propertyID, ownerID string) *OwnerPropertyAssignment {
	return s[AssignmentKey{PropertyID: propertyID, OwnerID: ownerID}]
}

// Upsert returns the assignment for the pair, creating it with the
// default zero percentage the first time the pair is linked.
func (s AssignmentSet) Upsert(propertyID, ownerID string) *OwnerPropertyAssignment {
	key := AssignmentKey{PropertyID: propertyID, OwnerID: ownerID}
	if a, ok := s[key]; ok {
		return a
	}
	a := &OwnerPropertyAssignment{
		PropertyID: propertyID,
		OwnerID:    ownerID,
	}
	s[key] = a
	return a
}

// ForProperty returns the property's assignments sorted by owner ID.
func (s AssignmentSet) ForProperty(propertyID string) []*OwnerPropertyAssignment {
	out := make([]*OwnerPropertyAssignment, 0, len(s))
	for key, a := range s {
		if key.PropertyID == propertyID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OwnerID < out[j].OwnerID })
	return out
}

// RemoveOwner deletes every assignment referencing the owner. It is the
// cascade sweep run after an owner is removed from the form.
func (s AssignmentSet) RemoveOwner(ownerID string) {
	for key := range s {
		if key.OwnerID == ownerID {
			delete(s, key)
		}
	}
}

// RemoveProperty deletes every assignment referencing the property.
func (s AssignmentSet) RemoveProperty(propertyID string) {
	for key := range s {
		if key.PropertyID == propertyID {
			delete(s, key)
		}
	}
}

// sorted returns all assignments in (propertyId, ownerId) order.
func (s AssignmentSet) sorted() []*OwnerPropertyAssignment {
	out := make([]*OwnerPropertyAssignment, 0, len(s))
	for _, a := range s {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PropertyID != out[j].PropertyID {
			return out[i].PropertyID < out[j].PropertyID
		}
		return out[i].OwnerID < out[j].OwnerID
	})
	return out
}

// MarshalJSON renders the set as a deterministically ordered array.
func (s AssignmentSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.sorted())
}

// UnmarshalJSON accepts the array form, keeping the last entry when a
// pair occurs twice.
func (s *AssignmentSet) UnmarshalJSON(data []byte) error {
	var list []*OwnerPropertyAssignment
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	set := make(AssignmentSet, len(list))
	for _, a := range list {
		set[a.Key()] = a
	}
	*s = set
	return nil
}
