package services

import (
	"MediCore/models"
	"MediCore/repositories"
)

type MedicalRecordService struct {
	records *repositories.MedicalRecordRepository
}

func NewMedicalRecordService(records *repositories.MedicalRecordRepository) *MedicalRecordService {
	return &MedicalRecordService{records: records}
}

func (s *MedicalRecordService) Append(patientID string, diagnoses, prescriptions, treatmentPlans []string) (models.MedicalRecord, error) {
	return s.records.Append(patientID, diagnoses, prescriptions, treatmentPlans)
}

func (s *MedicalRecordService) DeleteEntry(patientID string, kind models.RecordList, index int) (models.MedicalRecord, error) {
	return s.records.DeleteByIndex(patientID, kind, index)
}

// DeleteEntries removes the semicolon separated values from the named list.
// An empty selector clears the list. Values not present come back in missing
// without failing the call.
func (s *MedicalRecordService) DeleteEntries(patientID string, kind models.RecordList, selector string) (removed, missing []string, err error) {
	return s.records.DeleteByValue(patientID, kind, selector)
}

func (s *MedicalRecordService) Record(patientID string) (models.MedicalRecord, error) {
	return s.records.GetByPatient(patientID)
}

func (s *MedicalRecordService) Records() []models.MedicalRecord {
	return s.records.ListAll()
}
