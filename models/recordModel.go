package models

import "fmt"

// RecordList names one of the three entry lists of a medical record.
type RecordList string

const (
	RecordDiagnoses      RecordList = "diagnoses"
	RecordPrescriptions  RecordList = "prescriptions"
	RecordTreatmentPlans RecordList = "treatmentPlans"
)

// MedicalRecord model. Each list keeps first-seen order and holds no
// duplicates.
type MedicalRecord struct {
	PatientID      string
	Diagnoses      []string
	Prescriptions  []string
	TreatmentPlans []string
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

// MedicalRecordHeader is the column order of the medical records table.
var MedicalRecordHeader = []string{"patientId", "diagnoses", "prescriptions", "treatmentPlans"}

// List returns the named entry list.
func (r *MedicalRecord) List(kind RecordList) ([]string, error) {
	switch kind {
	case RecordDiagnoses:
		return r.Diagnoses, nil
	case RecordPrescriptions:
		return r.Prescriptions, nil
	case RecordTreatmentPlans:
		return r.TreatmentPlans, nil
	default:
		return nil, fmt.Errorf("unknown record list %q", kind)
	}
}

// SetList replaces the named entry list.
func (r *MedicalRecord) SetList(kind RecordList, items []string) error {
	switch kind {
	case RecordDiagnoses:
		r.Diagnoses = items
	case RecordPrescriptions:
		r.Prescriptions = items
	case RecordTreatmentPlans:
		r.TreatmentPlans = items
	default:
		return fmt.Errorf("unknown record list %q", kind)
	}
	return nil
}

// Row serializes the record in table column order. Empty lists serialize
// as the literal None.
func (r MedicalRecord) Row() []string {
	return []string{
		r.PatientID,
		JoinListOrNone(r.Diagnoses),
		JoinListOrNone(r.Prescriptions),
		JoinListOrNone(r.TreatmentPlans),
	}
}

// MedicalRecordFromRow parses one medical records table row.
func MedicalRecordFromRow(row []string) (MedicalRecord, error) {
	if len(row) != len(MedicalRecordHeader) {
		return MedicalRecord{}, fmt.Errorf("medical record row has %d columns, want %d", len(row), len(MedicalRecordHeader))
	}
	return MedicalRecord{
		PatientID:      row[0],
		Diagnoses:      SplitListOrNone(row[1]),
		Prescriptions:  SplitListOrNone(row[2]),
		TreatmentPlans: SplitListOrNone(row[3]),
	}, nil
}
