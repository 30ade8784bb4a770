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

type ReplenishRepository struct {
	store  *database.Store
	mu     sync.RWMutex
	byID   map[int]models.ReplenishRequest
	nextID int
}

func NewReplenishRepository(store *database.Store) (*ReplenishRepository, error) {
	r := &ReplenishRepository{
		store:  store,
		byID:   make(map[int]models.ReplenishRequest),
		nextID: 1,
	}
	rows, err := store.ReadTable(models.ReplenishRequest{}.TableName())
	if err != nil {
		return nil, apperrors.NewIOFailure("failed to load replenish requests", err)
	}
	for _, row := range rows {
		req, err := models.ReplenishFromRow(row)
		if err != nil {
			return nil, apperrors.NewIOFailure("failed to load replenish requests", err)
		}
		r.byID[req.ID] = req
		if req.ID >= r.nextID {
			r.nextID = req.ID + 1
		}
	}
	return r, nil
}

func (r *ReplenishRepository) Create(staffID, medicationName string, amount int, date time.Time) (models.ReplenishRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if amount <= 0 {
		return models.ReplenishRequest{}, apperrors.NewValidation(fmt.Sprintf("replenish amount must be positive, got %d", amount))
	}
	req := models.ReplenishRequest{
		ID:             r.nextID,
		StaffID:        staffID,
		MedicationName: medicationName,
		Status:         models.ReplenishPending,
		Amount:         amount,
		Date:           date,
	}
	r.byID[req.ID] = req
	r.nextID++
	if err := r.persist(); err != nil {
		delete(r.byID, req.ID)
		r.nextID--
		return models.ReplenishRequest{}, err
	}
	return req, nil
}

// UpdateStatus permits only the two transitions out of PENDING. Approved and
// denied requests are terminal.
func (r *ReplenishRepository) UpdateStatus(id int, status models.ReplenishStatus) (models.ReplenishRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, exists := r.byID[id]
	if !exists {
		return models.ReplenishRequest{}, apperrors.NewNotFound(fmt.Sprintf("replenish request %d not found", id))
	}
	if req.Status != models.ReplenishPending ||
		(status != models.ReplenishApproved && status != models.ReplenishDenied) {
		return models.ReplenishRequest{}, apperrors.NewInvalidTransition(
			fmt.Sprintf("cannot move replenish request %d from %s to %s", id, req.Status, status))
	}
	prev := req
	req.Status = status
	r.byID[id] = req
	if err := r.persist(); err != nil {
		r.byID[id] = prev
		return models.ReplenishRequest{}, err
	}
	return req, nil
}

func (r *ReplenishRepository) GetByID(id int) (models.ReplenishRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, exists := r.byID[id]
	if !exists {
		return models.ReplenishRequest{}, apperrors.NewNotFound(fmt.Sprintf("replenish request %d not found", id))
	}
	return req, nil
}

// ListActive returns the pending requests in id order.
func (r *ReplenishRepository) ListActive() []models.ReplenishRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]models.ReplenishRequest, 0)
	for _, req := range r.byID {
		if req.Status == models.ReplenishPending {
			active = append(active, req)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })
	return active
}

func (r *ReplenishRepository) ListAll() []models.ReplenishRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.ReplenishRequest, 0, len(r.byID))
	for _, req := range r.byID {
		all = append(all, req)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// persist rewrites the replenish requests table from memory. Callers hold
// the lock.
func (r *ReplenishRepository) persist() error {
	ids := make([]int, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, r.byID[id].Row())
	}
	if err := r.store.WriteTable(models.ReplenishRequest{}.TableName(), models.ReplenishHeader, rows); err != nil {
		return apperrors.NewIOFailure("failed to persist replenish requests", err)
	}
	return nil
}
