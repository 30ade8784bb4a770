package repositories

import (
	"sort"
	"sync"

	"MediCore/apperrors"
	"MediCore/database"
	"MediCore/models"
)

// UserRepository backs the two credential tables. Staff and patients are
// kept apart on disk; lookups check staff first, then patients.
type UserRepository interface {
	FindByID(id string) (*models.User, error)
	Create(user models.User) error
	UpdatePassword(id, passwordHash string) error
	Delete(id string) error
	ListStaff() []models.User
	ListPatients() []models.User
	AllIDs() []string
}

type userRepository struct {
	store    *database.Store
	mu       sync.RWMutex
	staff    map[string]models.User
	patients map[string]models.User
}

func NewUserRepository(store *database.Store) (UserRepository, error) {
	r := &userRepository{
		store:    store,
		staff:    make(map[string]models.User),
		patients: make(map[string]models.User),
	}
	staffRows, err := store.ReadTable(models.StaffTableName)
	if err != nil {
		return nil, apperrors.NewIOFailure("failed to load staff", err)
	}
	for _, row := range staffRows {
		u, err := models.StaffFromRow(row)
		if err != nil {
			return nil, apperrors.NewIOFailure("failed to load staff", err)
		}
		r.staff[u.ID] = u
	}
	patientRows, err := store.ReadTable(models.PatientTableName)
	if err != nil {
		return nil, apperrors.NewIOFailure("failed to load patients", err)
	}
	for _, row := range patientRows {
		u, err := models.PatientFromRow(row)
		if err != nil {
			return nil, apperrors.NewIOFailure("failed to load patients", err)
		}
		r.patients[u.ID] = u
	}
	return r, nil
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, exists := r.staff[id]; exists {
		return &u, nil
	}
	if u, exists := r.patients[id]; exists {
		return &u, nil
	}
	return nil, apperrors.NewNotFound("user " + id + " not found")
}

func (r *userRepository) Create(user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.staff[user.ID]; exists {
		return apperrors.NewDuplicateKey("user " + user.ID + " already exists")
	}
	if _, exists := r.patients[user.ID]; exists {
		return apperrors.NewDuplicateKey("user " + user.ID + " already exists")
	}
	if user.IsStaff() {
		r.staff[user.ID] = user
		if err := r.persistStaff(); err != nil {
			delete(r.staff, user.ID)
			return err
		}
		return nil
	}
	r.patients[user.ID] = user
	if err := r.persistPatients(); err != nil {
		delete(r.patients, user.ID)
		return err
	}
	return nil
}

func (r *userRepository) UpdatePassword(id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, exists := r.staff[id]; exists {
		prev := u
		u.PasswordHash = passwordHash
		r.staff[id] = u
		if err := r.persistStaff(); err != nil {
			r.staff[id] = prev
			return err
		}
		return nil
	}
	if u, exists := r.patients[id]; exists {
		prev := u
		u.PasswordHash = passwordHash
		r.patients[id] = u
		if err := r.persistPatients(); err != nil {
			r.patients[id] = prev
			return err
		}
		return nil
	}
	return apperrors.NewNotFound("user " + id + " not found")
}

func (r *userRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u, exists := r.staff[id]; exists {
		delete(r.staff, id)
		if err := r.persistStaff(); err != nil {
			r.staff[id] = u
			return err
		}
		return nil
	}
	if u, exists := r.patients[id]; exists {
		delete(r.patients, id)
		if err := r.persistPatients(); err != nil {
			r.patients[id] = u
			return err
		}
		return nil
	}
	return apperrors.NewNotFound("user " + id + " not found")
}

func (r *userRepository) ListStaff() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.User, 0, len(r.staff))
	for _, u := range r.staff {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

func (r *userRepository) ListPatients() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.User, 0, len(r.patients))
	for _, u := range r.patients {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// AllIDs returns every staff and patient id, for id generation.
func (r *userRepository) AllIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.staff)+len(r.patients))
	for id := range r.staff {
		ids = append(ids, id)
	}
	for id := range r.patients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// persistStaff rewrites the staff table from memory. Callers hold the lock.
func (r *userRepository) persistStaff() error {
	ids := make([]string, 0, len(r.staff))
	for id := range r.staff {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, r.staff[id].StaffRow())
	}
	if err := r.store.WriteTable(models.StaffTableName, models.StaffHeader, rows); err != nil {
		return apperrors.NewIOFailure("failed to persist staff", err)
	}
	return nil
}

// persistPatients rewrites the patients table from memory. Callers hold the
// lock.
func (r *userRepository) persistPatients() error {
	ids := make([]string, 0, len(r.patients))
	for id := range r.patients {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, r.patients[id].PatientRow())
	}
	if err := r.store.WriteTable(models.PatientTableName, models.PatientHeader, rows); err != nil {
		return apperrors.NewIOFailure("failed to persist patients", err)
	}
	return nil
}
