package repositories

import (
	"fmt"
	"sort"
	"sync"

	"MediCore/apperrors"
	"MediCore/database"
	"MediCore/models"
)

type MedicationRepository struct {
	store  *database.Store
	mu     sync.RWMutex
	byName map[string]models.Medication
}

func NewMedicationRepository(store *database.Store) (*MedicationRepository, error) {
	r := &MedicationRepository{
		store:  store,
		byName: make(map[string]models.Medication),
	}
	rows, err := store.ReadTable(models.Medication{}.TableName())
	if err != nil {
		return nil, apperrors.NewIOFailure("failed to load medications", err)
	}
	for _, row := range rows {
		m, err := models.MedicationFromRow(row)
		if err != nil {
			return nil, apperrors.NewIOFailure("failed to load medications", err)
		}
		r.byName[m.Name] = m
	}
	return r, nil
}

// Add inserts a medication. A user initiated add (persist true) rejects
// duplicate names and rewrites the table; the bulk load path only fills the
// in-memory map.
func (r *MedicationRepository) Add(m models.Medication, persist bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, exists := r.byName[m.Name]
	if !persist {
		r.byName[m.Name] = m
		return nil
	}
	if exists {
		return apperrors.NewDuplicateKey("medication " + m.Name + " already exists")
	}
	r.byName[m.Name] = m
	if err := r.persist(); err != nil {
		delete(r.byName, m.Name)
		return err
	}
	return nil
}

func (r *MedicationRepository) GetByName(name string) (models.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.byName[name]
	if !exists {
		return models.Medication{}, apperrors.NewNotFound("medication " + name + " not found")
	}
	return m, nil
}

func (r *MedicationRepository) GetAll() []models.Medication {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Medication, 0, len(r.byName))
	for _, m := range r.byName {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all
}

func (r *MedicationRepository) IsLowStock(name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, exists := r.byName[name]
	if !exists {
		return false, apperrors.NewNotFound("medication " + name + " not found")
	}
	return m.IsLowStock(), nil
}

func (r *MedicationRepository) IncreaseStock(name string, amount int) (models.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.byName[name]
	if !exists {
		return models.Medication{}, apperrors.NewNotFound("medication " + name + " not found")
	}
	prev := m
	m.CurrentStock += amount
	r.byName[name] = m
	if err := r.persist(); err != nil {
		r.byName[name] = prev
		return models.Medication{}, err
	}
	return m, nil
}

// DecreaseStock rejects a decrease larger than the stock on hand, so the
// stock level never goes negative.
func (r *MedicationRepository) DecreaseStock(name string, amount int) (models.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.byName[name]
	if !exists {
		return models.Medication{}, apperrors.NewNotFound("medication " + name + " not found")
	}
	if amount > m.CurrentStock {
		return models.Medication{}, apperrors.NewInsufficientStock(
			fmt.Sprintf("cannot remove %d units of %s, only %d in stock", amount, name, m.CurrentStock))
	}
	prev := m
	m.CurrentStock -= amount
	r.byName[name] = m
	if err := r.persist(); err != nil {
		r.byName[name] = prev
		return models.Medication{}, err
	}
	return m, nil
}

func (r *MedicationRepository) UpdateLowStockAlert(name string, value int) (models.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.byName[name]
	if !exists {
		return models.Medication{}, apperrors.NewNotFound("medication " + name + " not found")
	}
	prev := m
	m.LowStockAlert = value
	r.byName[name] = m
	if err := r.persist(); err != nil {
		r.byName[name] = prev
		return models.Medication{}, err
	}
	return m, nil
}

func (r *MedicationRepository) UpdatePrice(name string, price float64) (models.Medication, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.byName[name]
	if !exists {
		return models.Medication{}, apperrors.NewNotFound("medication " + name + " not found")
	}
	prev := m
	m.Price = price
	r.byName[name] = m
	if err := r.persist(); err != nil {
		r.byName[name] = prev
		return models.Medication{}, err
	}
	return m, nil
}

func (r *MedicationRepository) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, exists := r.byName[name]
	if !exists {
		return apperrors.NewNotFound("medication " + name + " not found")
	}
	delete(r.byName, name)
	if err := r.persist(); err != nil {
		r.byName[name] = m
		return err
	}
	return nil
}

// persist rewrites the medications table from memory. Callers hold the lock.
func (r *MedicationRepository) persist() error {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, r.byName[name].Row())
	}
	if err := r.store.WriteTable(models.Medication{}.TableName(), models.MedicationHeader, rows); err != nil {
		return apperrors.NewIOFailure("failed to persist medications", err)
	}
	return nil
}
