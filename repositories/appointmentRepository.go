package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"MediCore/apperrors"
	"MediCore/database"
	"MediCore/models"
)

type AppointmentRepository struct {
	store  *database.Store
	mu     sync.RWMutex
	byID   map[int]models.Appointment
	nextID int
}

func NewAppointmentRepository(store *database.Store) (*AppointmentRepository, error) {
	r := &AppointmentRepository{
		store:  store,
		byID:   make(map[int]models.Appointment),
		nextID: 1,
	}
	rows, err := store.ReadTable(models.Appointment{}.TableName())
	if err != nil {
		return nil, apperrors.NewIOFailure("failed to load appointments", err)
	}
	for _, row := range rows {
		a, err := models.AppointmentFromRow(row)
		if err != nil {
			return nil, apperrors.NewIOFailure("failed to load appointments", err)
		}
		r.byID[a.ID] = a
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
	return r, nil
}

func (r *AppointmentRepository) Create(doctorID, patientID string, at time.Time) (models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := models.Appointment{
		ID:        r.nextID,
		DoctorID:  doctorID,
		PatientID: patientID,
		DateTime:  at,
		Status:    models.AppointmentPending,
	}
	r.byID[a.ID] = a
	r.nextID++
	if err := r.persist(); err != nil {
		delete(r.byID, a.ID)
		r.nextID--
		return models.Appointment{}, err
	}
	return a, nil
}

// SetStatus permits any transition except out of a terminal status.
// Confirming rejects a slot the doctor already holds confirmed.
func (r *AppointmentRepository) SetStatus(id int, status models.AppointmentStatus) (models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.byID[id]
	if !exists {
		return models.Appointment{}, apperrors.NewNotFound(fmt.Sprintf("appointment %d not found", id))
	}
	if !validAppointmentStatus(status) {
		return models.Appointment{}, apperrors.NewValidation(fmt.Sprintf("invalid appointment status %q", status))
	}
	if a.Status.Terminal() {
		return models.Appointment{}, apperrors.NewTerminalState(
			fmt.Sprintf("appointment %d is %s and can no longer change", id, a.Status))
	}
	if status == models.AppointmentConfirmed {
		if err := r.checkSlotFree(a); err != nil {
			return models.Appointment{}, err
		}
	}
	prev := a
	a.Status = status
	r.byID[id] = a
	if err := r.persist(); err != nil {
		r.byID[id] = prev
		return models.Appointment{}, err
	}
	return a, nil
}

// Reschedule moves a non-terminal appointment to a new slot and resets it to
// PENDING so the doctor must accept it again.
func (r *AppointmentRepository) Reschedule(id int, at time.Time) (models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.byID[id]
	if !exists {
		return models.Appointment{}, apperrors.NewNotFound(fmt.Sprintf("appointment %d not found", id))
	}
	if a.Status.Terminal() {
		return models.Appointment{}, apperrors.NewTerminalState(
			fmt.Sprintf("appointment %d is %s and can no longer change", id, a.Status))
	}
	prev := a
	a.DateTime = at
	a.Status = models.AppointmentPending
	r.byID[id] = a
	if err := r.persist(); err != nil {
		r.byID[id] = prev
		return models.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentRepository) GetByID(id int) (models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.byID[id]
	if !exists {
		return models.Appointment{}, apperrors.NewNotFound(fmt.Sprintf("appointment %d not found", id))
	}
	return a, nil
}

func (r *AppointmentRepository) FindByDoctor(doctorID string) []models.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]models.Appointment, 0)
	for _, a := range r.byID {
		if a.DoctorID == doctorID {
			found = append(found, a)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

func (r *AppointmentRepository) FindByPatient(patientID string) []models.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := make([]models.Appointment, 0)
	for _, a := range r.byID {
		if a.PatientID == patientID {
			found = append(found, a)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found
}

func (r *AppointmentRepository) ListAll() []models.Appointment {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Appointment, 0, len(r.byID))
	for _, a := range r.byID {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// checkSlotFree rejects confirming a slot the doctor already holds a
// confirmed appointment for. Callers hold the lock.
func (r *AppointmentRepository) checkSlotFree(a models.Appointment) error {
	for _, other := range r.byID {
		if other.ID == a.ID {
			continue
		}
		if other.DoctorID == a.DoctorID &&
			other.Status == models.AppointmentConfirmed &&
			other.DateTime.Equal(a.DateTime) {
			return apperrors.NewDuplicateKey(
				fmt.Sprintf("doctor %s already has a confirmed appointment at %s",
					a.DoctorID, a.DateTime.Format(models.DateTimeLayout)))
		}
	}
	return nil
}

func validAppointmentStatus(status models.AppointmentStatus) bool {
	switch status {
	case models.AppointmentPending, models.AppointmentConfirmed, models.AppointmentDeclined,
		models.AppointmentCanceled, models.AppointmentCompleted:
		return true
	}
	return false
}

// persist rewrites the appointments table from memory. Callers hold the lock.
func (r *AppointmentRepository) persist() error {
	ids := make([]int, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, r.byID[id].Row())
	}
	if err := r.store.WriteTable(models.Appointment{}.TableName(), models.AppointmentHeader, rows); err != nil {
		return apperrors.NewIOFailure("failed to persist appointments", err)
	}
	return nil
}
