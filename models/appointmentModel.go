package models

import (
	"fmt"
	"strconv"
	"time"
)

// FixedConsultationFee is charged on every appointment outcome in addition
// to the prescribed medication fees.
const FixedConsultationFee = 10.0

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentDeclined  AppointmentStatus = "DECLINED"
	AppointmentCanceled  AppointmentStatus = "CANCELED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// Terminal reports whether no further transition is allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCanceled || s == AppointmentCompleted
}

// Appointment model
type Appointment struct {
	ID        int
	DoctorID  string
	PatientID string
	DateTime  time.Time
	Status    AppointmentStatus
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentHeader is the column order of the appointments table.
var AppointmentHeader = []string{"id", "doctorId", "patientId", "dateTime", "status"}

// Row serializes the appointment in table column order.
func (a Appointment) Row() []string {
	return []string{
		strconv.Itoa(a.ID),
		a.DoctorID,
		a.PatientID,
		a.DateTime.Format(DateTimeLayout),
		string(a.Status),
	}
}

// AppointmentFromRow parses one appointments table row.
func AppointmentFromRow(row []string) (Appointment, error) {
	if len(row) != len(AppointmentHeader) {
		return Appointment{}, fmt.Errorf("appointment row has %d columns, want %d", len(row), len(AppointmentHeader))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return Appointment{}, fmt.Errorf("failed to parse appointment id: %w", err)
	}
	at, err := time.Parse(DateTimeLayout, row[3])
	if err != nil {
		return Appointment{}, fmt.Errorf("failed to parse appointment time: %w", err)
	}
	return Appointment{
		ID:        id,
		DoctorID:  row[1],
		PatientID: row[2],
		DateTime:  at,
		Status:    AppointmentStatus(row[4]),
	}, nil
}

// PrescriptionStatus represents the dispensing state of a recorded outcome
type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "PENDING"
	PrescriptionDispensed PrescriptionStatus = "DISPENSED"
	PrescriptionNone      PrescriptionStatus = "NONE"
)

// BillingStatus represents the payment state of a recorded outcome
type BillingStatus string

const (
	BillingUnpaid BillingStatus = "UNPAID"
	BillingPaid   BillingStatus = "PAID"
)

// AppointmentOutcome model. Fees are snapshotted when the outcome is
// recorded; later price changes never alter an existing outcome.
type AppointmentOutcome struct {
	AppointmentID   int
	ServiceType     string
	MedicationNames []string
	Notes           string
	Prescription    PrescriptionStatus
	ConsultationFee float64
	MedicationFees  []float64
	TotalAmount     float64
	Billing         BillingStatus
}

func (AppointmentOutcome) TableName() string {
	return "appointment_outcomes"
}

// OutcomeHeader is the column order of the appointment outcomes table.
var OutcomeHeader = []string{
	"id", "serviceType", "medicationIds", "notes", "status",
	"consultationFee", "medicationFees", "totalAmount", "billingStatus",
}

// Row serializes the outcome in table column order.
func (o AppointmentOutcome) Row() []string {
	return []string{
		strconv.Itoa(o.AppointmentID),
		o.ServiceType,
		JoinList(o.MedicationNames),
		o.Notes,
		string(o.Prescription),
		FormatMoney(o.ConsultationFee),
		JoinMoneyList(o.MedicationFees),
		FormatMoney(o.TotalAmount),
		string(o.Billing),
	}
}

// OutcomeFromRow parses one appointment outcomes table row.
func OutcomeFromRow(row []string) (AppointmentOutcome, error) {
	if len(row) != len(OutcomeHeader) {
		return AppointmentOutcome{}, fmt.Errorf("outcome row has %d columns, want %d", len(row), len(OutcomeHeader))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return AppointmentOutcome{}, fmt.Errorf("failed to parse outcome id: %w", err)
	}
	consultation, err := ParseMoney(row[5])
	if err != nil {
		return AppointmentOutcome{}, fmt.Errorf("failed to parse consultation fee: %w", err)
	}
	fees, err := ParseMoneyList(row[6])
	if err != nil {
		return AppointmentOutcome{}, fmt.Errorf("failed to parse medication fees: %w", err)
	}
	total, err := ParseMoney(row[7])
	if err != nil {
		return AppointmentOutcome{}, fmt.Errorf("failed to parse total amount: %w", err)
	}
	return AppointmentOutcome{
		AppointmentID:   id,
		ServiceType:     row[1],
		MedicationNames: SplitList(row[2]),
		Notes:           row[3],
		Prescription:    PrescriptionStatus(row[4]),
		ConsultationFee: consultation,
		MedicationFees:  fees,
		TotalAmount:     total,
		Billing:         BillingStatus(row[8]),
	}, nil
}
