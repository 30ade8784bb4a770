package repositories

import (
	"fmt"
	"sort"
	"sync"

	"MediCore/apperrors"
	"MediCore/database"
	"MediCore/models"
)

type MedicalRecordRepository struct {
	store     *database.Store
	mu        sync.RWMutex
	byPatient map[string]models.MedicalRecord
}

func NewMedicalRecordRepository(store *database.Store) (*MedicalRecordRepository, error) {
	r := &MedicalRecordRepository{
		store:     store,
		byPatient: make(map[string]models.MedicalRecord),
	}
	rows, err := store.ReadTable(models.MedicalRecord{}.TableName())
	if err != nil {
		return nil, apperrors.NewIOFailure("failed to load medical records", err)
	}
	for _, row := range rows {
		rec, err := models.MedicalRecordFromRow(row)
		if err != nil {
			return nil, apperrors.NewIOFailure("failed to load medical records", err)
		}
		r.byPatient[rec.PatientID] = rec
	}
	return r, nil
}

// Append union-merges the supplied entries into the patient record, keeping
// first-seen order and skipping values already present. Comparison is exact,
// no trimming or case folding. A missing record is created.
func (r *MedicalRecordRepository) Append(patientID string, diagnoses, prescriptions, treatmentPlans []string) (models.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, existed := r.byPatient[patientID]
	prev := rec
	if !existed {
		rec = models.MedicalRecord{PatientID: patientID}
	}
	rec.Diagnoses = mergeUnique(rec.Diagnoses, diagnoses)
	rec.Prescriptions = mergeUnique(rec.Prescriptions, prescriptions)
	rec.TreatmentPlans = mergeUnique(rec.TreatmentPlans, treatmentPlans)
	r.byPatient[patientID] = rec
	if err := r.persist(); err != nil {
		if existed {
			r.byPatient[patientID] = prev
		} else {
			delete(r.byPatient, patientID)
		}
		return models.MedicalRecord{}, err
	}
	return rec, nil
}

// DeleteByIndex removes the entry at the given zero based index of the named
// list.
func (r *MedicalRecordRepository) DeleteByIndex(patientID string, kind models.RecordList, index int) (models.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.byPatient[patientID]
	if !exists {
		return models.MedicalRecord{}, apperrors.NewNotFound("no medical record for patient " + patientID)
	}
	list, err := rec.List(kind)
	if err != nil {
		return models.MedicalRecord{}, apperrors.NewValidation(err.Error())
	}
	if index < 0 || index >= len(list) {
		return models.MedicalRecord{}, apperrors.NewValidation(
			fmt.Sprintf("index %d out of range for %s with %d entries", index, kind, len(list)))
	}
	prev := rec
	updated := append(append([]string(nil), list[:index]...), list[index+1:]...)
	if err := rec.SetList(kind, updated); err != nil {
		return models.MedicalRecord{}, apperrors.NewValidation(err.Error())
	}
	r.byPatient[patientID] = rec
	if err := r.persist(); err != nil {
		r.byPatient[patientID] = prev
		return models.MedicalRecord{}, err
	}
	return rec, nil
}

// DeleteByValue removes the semicolon separated values from the named list.
// An empty selector clears the whole list. Values not present are returned
// in missing and do not fail the call.
func (r *MedicalRecordRepository) DeleteByValue(patientID string, kind models.RecordList, selector string) (removed, missing []string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, exists := r.byPatient[patientID]
	if !exists {
		return nil, nil, apperrors.NewNotFound("no medical record for patient " + patientID)
	}
	list, err := rec.List(kind)
	if err != nil {
		return nil, nil, apperrors.NewValidation(err.Error())
	}
	prev := rec

	var updated []string
	if selector == "" {
		removed = append([]string(nil), list...)
		updated = nil
	} else {
		targets := models.SplitList(selector)
		present := make(map[string]struct{}, len(list))
		for _, v := range list {
			present[v] = struct{}{}
		}
		drop := make(map[string]struct{}, len(targets))
		for _, t := range targets {
			if _, ok := present[t]; ok {
				drop[t] = struct{}{}
				removed = append(removed, t)
			} else {
				missing = append(missing, t)
			}
		}
		for _, v := range list {
			if _, ok := drop[v]; !ok {
				updated = append(updated, v)
			}
		}
	}
	if len(removed) == 0 {
		// Nothing changed, skip the rewrite
		return removed, missing, nil
	}
	if err := rec.SetList(kind, updated); err != nil {
		return nil, nil, apperrors.NewValidation(err.Error())
	}
	r.byPatient[patientID] = rec
	if err := r.persist(); err != nil {
		r.byPatient[patientID] = prev
		return nil, nil, err
	}
	return removed, missing, nil
}

func (r *MedicalRecordRepository) GetByPatient(patientID string) (models.MedicalRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.byPatient[patientID]
	if !exists {
		return models.MedicalRecord{}, apperrors.NewNotFound("no medical record for patient " + patientID)
	}
	return rec, nil
}

func (r *MedicalRecordRepository) ListAll() []models.MedicalRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.MedicalRecord, 0, len(r.byPatient))
	for _, rec := range r.byPatient {
		all = append(all, rec)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].PatientID < all[j].PatientID })
	return all
}

// mergeUnique appends the incoming values not already present, preserving
// first-seen order. The existing slice is never mutated in place.
func mergeUnique(existing, incoming []string) []string {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, v := range existing {
		seen[v] = struct{}{}
		merged = append(merged, v)
	}
	for _, v := range incoming {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		merged = append(merged, v)
	}
	return merged
}

// persist rewrites the medical records table from memory. Callers hold the
// lock.
func (r *MedicalRecordRepository) persist() error {
	ids := make([]string, 0, len(r.byPatient))
	for id := range r.byPatient {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, r.byPatient[id].Row())
	}
	if err := r.store.WriteTable(models.MedicalRecord{}.TableName(), models.MedicalRecordHeader, rows); err != nil {
		return apperrors.NewIOFailure("failed to persist medical records", err)
	}
	return nil
}
