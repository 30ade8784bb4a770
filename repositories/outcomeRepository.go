package repositories

import (
	"fmt"
	"sort"
	"sync"

	"MediCore/apperrors"
	"MediCore/database"
	"MediCore/models"
)

type OutcomeRepository struct {
	store         *database.Store
	mu            sync.RWMutex
	byAppointment map[int]models.AppointmentOutcome
}

func NewOutcomeRepository(store *database.Store) (*OutcomeRepository, error) {
	r := &OutcomeRepository{
		store:         store,
		byAppointment: make(map[int]models.AppointmentOutcome),
	}
	rows, err := store.ReadTable(models.AppointmentOutcome{}.TableName())
	if err != nil {
		return nil, apperrors.NewIOFailure("failed to load appointment outcomes", err)
	}
	for _, row := range rows {
		o, err := models.OutcomeFromRow(row)
		if err != nil {
			return nil, apperrors.NewIOFailure("failed to load appointment outcomes", err)
		}
		r.byAppointment[o.AppointmentID] = o
	}
	return r, nil
}

func (r *OutcomeRepository) Create(o models.AppointmentOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byAppointment[o.AppointmentID]; exists {
		return apperrors.NewDuplicateKey(fmt.Sprintf("appointment %d already has an outcome", o.AppointmentID))
	}
	r.byAppointment[o.AppointmentID] = o
	if err := r.persist(); err != nil {
		delete(r.byAppointment, o.AppointmentID)
		return err
	}
	return nil
}

// MarkPaid flips an unpaid outcome to paid. Paying an already paid outcome
// is a no-op.
func (r *OutcomeRepository) MarkPaid(appointmentID int) (models.AppointmentOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, exists := r.byAppointment[appointmentID]
	if !exists {
		return models.AppointmentOutcome{}, apperrors.NewNotFound(fmt.Sprintf("no outcome for appointment %d", appointmentID))
	}
	if o.Billing == models.BillingPaid {
		return o, nil
	}
	prev := o
	o.Billing = models.BillingPaid
	r.byAppointment[appointmentID] = o
	if err := r.persist(); err != nil {
		r.byAppointment[appointmentID] = prev
		return models.AppointmentOutcome{}, err
	}
	return o, nil
}

// SetPrescriptionStatus permits only the PENDING to DISPENSED transition.
func (r *OutcomeRepository) SetPrescriptionStatus(appointmentID int, status models.PrescriptionStatus) (models.AppointmentOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	o, exists := r.byAppointment[appointmentID]
	if !exists {
		return models.AppointmentOutcome{}, apperrors.NewNotFound(fmt.Sprintf("no outcome for appointment %d", appointmentID))
	}
	if o.Prescription != models.PrescriptionPending || status != models.PrescriptionDispensed {
		return models.AppointmentOutcome{}, apperrors.NewInvalidTransition(
			fmt.Sprintf("cannot move prescription for appointment %d from %s to %s", appointmentID, o.Prescription, status))
	}
	prev := o
	o.Prescription = status
	r.byAppointment[appointmentID] = o
	if err := r.persist(); err != nil {
		r.byAppointment[appointmentID] = prev
		return models.AppointmentOutcome{}, err
	}
	return o, nil
}

func (r *OutcomeRepository) GetByAppointmentID(appointmentID int) (models.AppointmentOutcome, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, exists := r.byAppointment[appointmentID]
	if !exists {
		return models.AppointmentOutcome{}, apperrors.NewNotFound(fmt.Sprintf("no outcome for appointment %d", appointmentID))
	}
	return o, nil
}

func (r *OutcomeRepository) ListAll() []models.AppointmentOutcome {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.AppointmentOutcome, 0, len(r.byAppointment))
	for _, o := range r.byAppointment {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].AppointmentID < all[j].AppointmentID })
	return all
}

func (r *OutcomeRepository) ListByPrescriptionStatus(status models.PrescriptionStatus) []models.AppointmentOutcome {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]models.AppointmentOutcome, 0)
	for _, o := range r.byAppointment {
		if o.Prescription == status {
			found = append(found, o)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].AppointmentID < found[j].AppointmentID })
	return found
}

// persist rewrites the appointment outcomes table from memory. Callers hold
// the lock.
func (r *OutcomeRepository) persist() error {
	ids := make([]int, 0, len(r.byAppointment))
	for id := range r.byAppointment {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, r.byAppointment[id].Row())
	}
	if err := r.store.WriteTable(models.AppointmentOutcome{}.TableName(), models.OutcomeHeader, rows); err != nil {
		return apperrors.NewIOFailure("failed to persist appointment outcomes", err)
	}
	return nil
}
