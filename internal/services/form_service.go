package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/casafile/api/internal/logger"
	"github.com/casafile/api/internal/models"
	"github.com/casafile/api/internal/occupancy"
	"github.com/casafile/api/internal/session"
	"github.com/casafile/api/internal/validation"
)

// Service-level errors.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrLastProperty     = errors.New("at least one property must remain")
	ErrNoFurtherStep    = errors.New("already at the last step")
	ErrAlreadySubmitted = errors.New("session already submitted")
	ErrNotAtReview      = errors.New("submission is only possible from the review step")
)

// FormService is the business layer of the intake wizard: it owns every
// mutation of a session's form document, re-derives occupancy periods on
// edits, gates step navigation on validation, and drives submission.
type FormService interface {
	CreateSession(ctx context.Context) (*session.Session, error)
	GetSession(ctx context.Context, id string) (*session.Session, error)
	DeleteSession(ctx context.Context, id string) error

	// Advance validates the current step and moves forward when the
	// step's validator returns an empty list. The returned errors are
	// the step's validation failures; the session is unchanged unless
	// they are empty.
	Advance(ctx context.Context, id string) (*session.Session, []validation.FieldError, error)
	Back(ctx context.Context, id string) (*session.Session, error)

	AddOwner(ctx context.Context, id string) (*models.Owner, error)
	UpdateOwner(ctx context.Context, id, ownerID string, patch OwnerPatch) (*models.Owner, []validation.FieldError, error)
	RemoveOwner(ctx context.Context, id, ownerID string) error

	AddProperty(ctx context.Context, id string) (*models.Property, error)
	UpdateProperty(ctx context.Context, id, propertyID string, patch PropertyPatch) (*models.Property, []validation.FieldError, error)
	RemoveProperty(ctx context.Context, id, propertyID string) error
	UpdateOccupancy(ctx context.Context, id, propertyID string, edit occupancy.Edit) ([]models.OccupancyPeriod, error)

	UpsertAssignment(ctx context.Context, id, propertyID, ownerID string, patch AssignmentPatch) (*models.OwnerPropertyAssignment, []validation.FieldError, error)

	// Validate runs the full aggregate validation without changing state.
	Validate(ctx context.Context, id string) ([]validation.FieldError, error)

	// Submit runs the full aggregate validation and, when it is clean,
	// delivers the form to the acknowledgment endpoint. Validation
	// failures come back as the error list; transport failures land the
	// session in the retryable error status.
	Submit(ctx context.Context, id string) (*session.Session, []validation.FieldError, error)
}

type formService struct {
	store     *session.Store
	submitter Submitter
	log       *logger.Logger
}

// NewFormService creates a FormService backed by the given session store
// and submitter.
func NewFormService(store *session.Store, submitter Submitter, log *logger.Logger) FormService {
	return &formService{
		store:     store,
		submitter: submitter,
		log:       log,
	}
}

func (s *formService) CreateSession(ctx context.Context) (*session.Session, error) {
	sess, err := s.store.Create()
	if err != nil {
		s.log.Error("Failed to create session", err, nil)
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.log.Info("Session created", map[string]interface{}{
		"session_id": sess.ID,
	})
	return sess, nil
}

func (s *formService) GetSession(ctx context.Context, id string) (*session.Session, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *formService) DeleteSession(ctx context.Context, id string) error {
	s.store.Delete(id)
	s.log.Info("Session discarded", map[string]interface{}{
		"session_id": id,
	})
	return nil
}

// stepErrors validates the subset of the form relevant to the step.
func stepErrors(sess *session.Session) []validation.FieldError {
	switch sess.Step {
	case session.StepOwners:
		if len(sess.Form.Owners) == 0 {
			return []validation.FieldError{{Field: "owners", Message: "At least one owner is required"}}
		}
		return validation.ValidateOwners(sess.Form.Owners)
	case session.StepProperties:
		return validation.ValidateProperties(sess.Form.Properties)
	case session.StepAssignments:
		return validation.ValidatePropertyAssignments(sess.Form)
	case session.StepReview:
		return validation.ValidateFormData(sess.Form)
	default:
		return nil
	}
}

func (s *formService) Advance(ctx context.Context, id string) (*session.Session, []validation.FieldError, error) {
	var fieldErrs []validation.FieldError

	sess, err := s.store.Mutate(id, func(sess *session.Session) error {
		fieldErrs = stepErrors(sess)
		if len(fieldErrs) > 0 {
			return nil
		}

		next, ok := session.Next(sess.Step)
		if !ok {
			return ErrNoFurtherStep
		}
		sess.Step = next

		// The properties step always starts with something to edit.
		if next == session.StepProperties && len(sess.Form.Properties) == 0 {
			sess.Form.Properties = append(sess.Form.Properties, models.NewProperty())
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	if len(fieldErrs) > 0 {
		s.log.Info("Step validation blocked navigation", map[string]interface{}{
			"session_id": id,
			"step":       sess.Step,
			"errors":     len(fieldErrs),
		})
		return sess, fieldErrs, nil
	}

	s.log.Info("Advanced to next step", map[string]interface{}{
		"session_id": id,
		"step":       sess.Step,
	})
	return sess, nil, nil
}

func (s *formService) Back(ctx context.Context, id string) (*session.Session, error) {
	sess, err := s.store.Mutate(id, func(sess *session.Session) error {
		if prev, ok := session.Prev(sess.Step); ok {
			sess.Step = prev
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *formService) AddOwner(ctx context.Context, id string) (*models.Owner, error) {
	var owner *models.Owner
	_, err := s.store.Mutate(id, func(sess *session.Session) error {
		owner = models.NewOwner()
		sess.Form.Owners = append(sess.Form.Owners, owner)
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.log.Info("Owner added", map[string]interface{}{
		"session_id": id,
		"owner_id":   owner.ID,
	})
	return owner, nil
}

func (s *formService) UpdateOwner(ctx context.Context, id, ownerID string, patch OwnerPatch) (*models.Owner, []validation.FieldError, error) {
	var (
		owner     *models.Owner
		fieldErrs []validation.FieldError
	)
	_, err := s.store.Mutate(id, func(sess *session.Session) error {
		owner = sess.Form.OwnerByID(ownerID)
		if owner == nil {
			return ErrOwnerNotFound
		}
		patch.Apply(owner)
		fieldErrs = validation.ValidateOwner(owner)
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	return owner, fieldErrs, nil
}

func (s *formService) RemoveOwner(ctx context.Context, id, ownerID string) error {
	_, err := s.store.Mutate(id, func(sess *session.Session) error {
		if !sess.Form.RemoveOwner(ownerID) {
			return ErrOwnerNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	s.log.Info("Owner removed with assignment cascade", map[string]interface{}{
		"session_id": id,
		"owner_id":   ownerID,
	})
	return nil
}

func (s *formService) AddProperty(ctx context.Context, id string) (*models.Property, error) {
	var property *models.Property
	_, err := s.store.Mutate(id, func(sess *session.Session) error {
		property = models.NewProperty()
		sess.Form.Properties = append(sess.Form.Properties, property)
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.log.Info("Property added", map[string]interface{}{
		"session_id":  id,
		"property_id": property.ID,
	})
	return property, nil
}

func (s *formService) UpdateProperty(ctx context.Context, id, propertyID string, patch PropertyPatch) (*models.Property, []validation.FieldError, error) {
	var (
		property  *models.Property
		fieldErrs []validation.FieldError
	)
	_, err := s.store.Mutate(id, func(sess *session.Session) error {
		property = sess.Form.PropertyByID(propertyID)
		if property == nil {
			return ErrPropertyNotFound
		}
		patch.Apply(property)
		fieldErrs = validation.ValidateProperty(property)
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	return property, fieldErrs, nil
}

func (s *formService) RemoveProperty(ctx context.Context, id, propertyID string) error {
	_, err := s.store.Mutate(id, func(sess *session.Session) error {
		if sess.Form.PropertyByID(propertyID) == nil {
			return ErrPropertyNotFound
		}
		if len(sess.Form.Properties) <= 1 {
			return ErrLastProperty
		}
		sess.Form.RemoveProperty(propertyID)
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	s.log.Info("Property removed with assignment cascade", map[string]interface{}{
		"session_id":  id,
		"property_id": propertyID,
	})
	return nil
}

func (s *formService) UpdateOccupancy(ctx context.Context, id, propertyID string, edit occupancy.Edit) ([]models.OccupancyPeriod, error) {
	var periods []models.OccupancyPeriod
	_, err := s.store.Mutate(id, func(sess *session.Session) error {
		property := sess.Form.PropertyByID(propertyID)
		if property == nil {
			return ErrPropertyNotFound
		}
		property.OccupancyPeriods = occupancy.Rebalance(property.OccupancyPeriods, edit)
		periods = property.OccupancyPeriods
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	s.log.Debug("Occupancy periods rebalanced", map[string]interface{}{
		"session_id":  id,
		"property_id": propertyID,
		"periods":     len(periods),
		"months":      occupancy.TotalMonths(periods),
	})
	return periods, nil
}

func (s *formService) UpsertAssignment(ctx context.Context, id, propertyID, ownerID string, patch AssignmentPatch) (*models.OwnerPropertyAssignment, []validation.FieldError, error) {
	var (
		assignment *models.OwnerPropertyAssignment
		fieldErrs  []validation.FieldError
	)
	_, err := s.store.Mutate(id, func(sess *session.Session) error {
		if sess.Form.PropertyByID(propertyID) == nil {
			return ErrPropertyNotFound
		}
		if sess.Form.OwnerByID(ownerID) == nil {
			return ErrOwnerNotFound
		}
		assignment = sess.Form.Assignments.Upsert(propertyID, ownerID)
		patch.Apply(assignment)
		fieldErrs = validation.ValidateAssignments(sess.Form.Assignments, propertyID)
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}
	return assignment, fieldErrs, nil
}

func (s *formService) Validate(ctx context.Context, id string) ([]validation.FieldError, error) {
	var fieldErrs []validation.FieldError
	err := s.store.View(id, func(sess *session.Session) {
		fieldErrs = validation.ValidateFormData(sess.Form)
	})
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return fieldErrs, nil
}

func (s *formService) Submit(ctx context.Context, id string) (*session.Session, []validation.FieldError, error) {
	var (
		fieldErrs []validation.FieldError
		form      *models.FormData
	)

	// Phase 1: validate and flip to submitting under the store lock.
	sess, err := s.store.Mutate(id, func(sess *session.Session) error {
		if sess.Status == session.StatusSuccess {
			return ErrAlreadySubmitted
		}
		if sess.Step != session.StepReview {
			return ErrNotAtReview
		}
		fieldErrs = validation.ValidateFormData(sess.Form)
		if len(fieldErrs) > 0 {
			return nil
		}
		sess.Status = session.StatusSubmitting
		sess.LastError = ""
		// Snapshot under the lock so concurrent edits to the session
		// cannot race with serialization.
		form = sess.Form.Clone()
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	if len(fieldErrs) > 0 {
		s.log.Info("Submission blocked by validation", map[string]interface{}{
			"session_id": id,
			"errors":     len(fieldErrs),
		})
		return sess, fieldErrs, nil
	}

	// Phase 2: best-effort delivery outside the lock. The network call is
	// the only async boundary of the whole flow; failure is terminal
	// until the user retries or resets.
	submitErr := s.submitter.Submit(ctx, form)

	sess, err = s.store.Mutate(id, func(sess *session.Session) error {
		if submitErr != nil {
			sess.Status = session.StatusError
			sess.LastError = submitErr.Error()
		} else {
			sess.Status = session.StatusSuccess
			sess.LastError = ""
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		return nil, nil, err
	}

	if submitErr != nil {
		s.log.Error("Submission failed", submitErr, map[string]interface{}{
			"session_id": id,
		})
	} else {
		s.log.Info("Submission succeeded", map[string]interface{}{
			"session_id": id,
		})
	}
	return sess, nil, nil
}
