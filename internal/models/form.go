package models

// FormData is the aggregate root of one intake session: every owner,
// property, and ownership assignment collected so far. It is held only in
// memory for the lifetime of the session and discarded on successful
// submission or reset.
type FormData struct {
	Owners      []*Owner      `json:"owners"`
	Properties  []*Property   `json:"properties"`
	Assignments AssignmentSet `json:"assignments"`
}

// NewFormData creates an empty form document.
func NewFormData() *FormData {
	return &FormData{
		Owners:      []*Owner{},
		Properties:  []*Property{},
		Assignments: AssignmentSet{},
	}
}

// Clone returns a deep copy of the form, fully detached from the
// original. Used to snapshot the document for submission so later edits
// cannot race with serialization.
func (f *FormData) Clone() *FormData {
	out := &FormData{
		Owners:      make([]*Owner, len(f.Owners)),
		Properties:  make([]*Property, len(f.Properties)),
		Assignments: make(AssignmentSet, len(f.Assignments)),
	}
	for i, o := range f.Owners {
		out.Owners[i] = o.clone()
	}
	for i, p := range f.Properties {
		out.Properties[i] = p.clone()
	}
	for key, a := range f.Assignments {
		out.Assignments[key] = a.clone()
	}
	return out
}

// OwnerByID returns the owner with the given ID, or nil.
func (f *FormData) OwnerByID(id string) *Owner {
	for _, o := range f.Owners {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// PropertyByID returns the property with the given ID, or nil.
func (f *FormData) PropertyByID(id string) *Property {
	for _, p := range f.Properties {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// RemoveOwner deletes the owner and sweeps its assignments.
// Returns false when no owner with the ID exists.
func (f *FormData) RemoveOwner(id string) bool {
	for i, o := range f.Owners {
		if o.ID == id {
			f.Owners = append(f.Owners[:i], f.Owners[i+1:]...)
			f.Assignments.RemoveOwner(id)
			return true
		}
	}
	return false
}

// RemoveProperty deletes the property and sweeps its assignments.
// Returns false when no property with the ID exists.
func (f *FormData) RemoveProperty(id string) bool {
	for i, p := range f.Properties {
		if p.ID == id {
			f.Properties = append(f.Properties[:i], f.Properties[i+1:]...)
			f.Assignments.RemoveProperty(id)
			return true
		}
	}
	return false
}
