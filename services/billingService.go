package services

import (
	"fmt"

	"github.com/rs/zerolog"

	"MediCore/apperrors"
	"MediCore/models"
	"MediCore/repositories"
)

type BillingService struct {
	outcomes     *repositories.OutcomeRepository
	appointments *repositories.AppointmentRepository
	medications  *repositories.MedicationRepository
	logger       zerolog.Logger
}

func NewBillingService(outcomes *repositories.OutcomeRepository, appointments *repositories.AppointmentRepository, medications *repositories.MedicationRepository, logger zerolog.Logger) *BillingService {
	return &BillingService{outcomes: outcomes, appointments: appointments, medications: medications, logger: logger}
}

// RecordOutcome writes the clinical and billing result of a completed
// appointment. Fees are snapshotted here: the fixed consultation fee plus
// the current price of every prescribed medication. Later price changes do
// not touch recorded outcomes. Every medication must resolve in the
// formulary.
func (s *BillingService) RecordOutcome(appointmentID int, serviceType string, medicationNames []string, notes string, prescription models.PrescriptionStatus) (models.AppointmentOutcome, error) {
	a, err := s.appointments.GetByID(appointmentID)
	if err != nil {
		return models.AppointmentOutcome{}, err
	}
	if a.Status != models.AppointmentCompleted {
		return models.AppointmentOutcome{}, apperrors.NewInvalidTransition(
			fmt.Sprintf("appointment %d is %s, outcomes are recorded once completed", appointmentID, a.Status))
	}
	if serviceType == "" {
		return models.AppointmentOutcome{}, apperrors.NewValidation("service type cannot be empty")
	}
	if !validPrescriptionStatus(prescription) {
		return models.AppointmentOutcome{}, apperrors.NewValidation(fmt.Sprintf("invalid prescription status %q", prescription))
	}
	if prescription == models.PrescriptionPending && len(medicationNames) == 0 {
		return models.AppointmentOutcome{}, apperrors.NewValidation("a pending prescription needs at least one medication")
	}

	fees := make([]float64, len(medicationNames))
	total := models.FixedConsultationFee
	for i, name := range medicationNames {
		m, err := s.medications.GetByName(name)
		if err != nil {
			return models.AppointmentOutcome{}, err
		}
		fees[i] = m.Price
		total += m.Price
	}

	o := models.AppointmentOutcome{
		AppointmentID:   appointmentID,
		ServiceType:     serviceType,
		MedicationNames: medicationNames,
		Notes:           notes,
		Prescription:    prescription,
		ConsultationFee: models.FixedConsultationFee,
		MedicationFees:  fees,
		TotalAmount:     total,
		Billing:         models.BillingUnpaid,
	}
	if err := s.outcomes.Create(o); err != nil {
		return models.AppointmentOutcome{}, err
	}
	s.logger.Info().Int("appointment", appointmentID).Float64("total", total).Msg("outcome recorded")
	return o, nil
}

// MarkPaid settles the bill. Paying an already settled bill is a no-op.
func (s *BillingService) MarkPaid(appointmentID int) (models.AppointmentOutcome, error) {
	return s.outcomes.MarkPaid(appointmentID)
}

// Dispense hands out the prescribed medications, taking one unit of each
// from stock. No unit leaves stock unless every medication has one.
func (s *BillingService) Dispense(appointmentID int) (models.AppointmentOutcome, error) {
	o, err := s.outcomes.GetByAppointmentID(appointmentID)
	if err != nil {
		return models.AppointmentOutcome{}, err
	}
	if o.Prescription != models.PrescriptionPending {
		return models.AppointmentOutcome{}, apperrors.NewInvalidTransition(
			fmt.Sprintf("cannot dispense the prescription of appointment %d in status %s", appointmentID, o.Prescription))
	}
	for _, name := range o.MedicationNames {
		m, err := s.medications.GetByName(name)
		if err != nil {
			return models.AppointmentOutcome{}, err
		}
		if m.CurrentStock < 1 {
			return models.AppointmentOutcome{}, apperrors.NewInsufficientStock("no stock left for " + name)
		}
	}

	taken := make([]string, 0, len(o.MedicationNames))
	undo := func() {
		for _, name := range taken {
			if _, err := s.medications.IncreaseStock(name, 1); err != nil {
				s.logger.Error().Err(err).Str("medication", name).
					Int("appointment", appointmentID).Msg("failed to put stock back after dispense failure")
			}
		}
	}
	for _, name := range o.MedicationNames {
		if _, err := s.medications.DecreaseStock(name, 1); err != nil {
			undo()
			return models.AppointmentOutcome{}, err
		}
		taken = append(taken, name)
	}
	updated, err := s.outcomes.SetPrescriptionStatus(appointmentID, models.PrescriptionDispensed)
	if err != nil {
		undo()
		return models.AppointmentOutcome{}, err
	}
	s.logger.Info().Int("appointment", appointmentID).
		Strs("medications", o.MedicationNames).Msg("prescription dispensed")
	return updated, nil
}

func (s *BillingService) Outcome(appointmentID int) (models.AppointmentOutcome, error) {
	return s.outcomes.GetByAppointmentID(appointmentID)
}

func (s *BillingService) Outcomes() []models.AppointmentOutcome {
	return s.outcomes.ListAll()
}

// AwaitingDispense lists outcomes whose prescription is still pending.
func (s *BillingService) AwaitingDispense() []models.AppointmentOutcome {
	return s.outcomes.ListByPrescriptionStatus(models.PrescriptionPending)
}

// OutcomesForPatient resolves the outcomes of every appointment the patient
// has held.
func (s *BillingService) OutcomesForPatient(patientID string) []models.AppointmentOutcome {
	found := make([]models.AppointmentOutcome, 0)
	for _, a := range s.appointments.FindByPatient(patientID) {
		if o, err := s.outcomes.GetByAppointmentID(a.ID); err == nil {
			found = append(found, o)
		}
	}
	return found
}

func validPrescriptionStatus(status models.PrescriptionStatus) bool {
	switch status {
	case models.PrescriptionPending, models.PrescriptionDispensed, models.PrescriptionNone:
		return true
	}
	return false
}
