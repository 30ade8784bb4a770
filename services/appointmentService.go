package services

import (
	"time"

	"MediCore/apperrors"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
)

type AppointmentService struct {
	appointments *repositories.AppointmentRepository
}

func NewAppointmentService(appointments *repositories.AppointmentRepository) *AppointmentService {
	return &AppointmentService{appointments: appointments}
}

// Schedule books a new slot for the patient. New appointments start PENDING
// until the doctor accepts.
func (s *AppointmentService) Schedule(doctorID, patientID string, at time.Time) (models.Appointment, error) {
	if err := utils.ValidateAppointmentTime(at); err != nil {
		return models.Appointment{}, apperrors.NewValidation(err.Error())
	}
	return s.appointments.Create(doctorID, patientID, at)
}

// Reschedule moves an appointment to a new slot, putting it back to PENDING.
func (s *AppointmentService) Reschedule(id int, at time.Time) (models.Appointment, error) {
	if err := utils.ValidateAppointmentTime(at); err != nil {
		return models.Appointment{}, apperrors.NewValidation(err.Error())
	}
	return s.appointments.Reschedule(id, at)
}

func (s *AppointmentService) Cancel(id int) (models.Appointment, error) {
	return s.appointments.SetStatus(id, models.AppointmentCanceled)
}

func (s *AppointmentService) Accept(id int) (models.Appointment, error) {
	return s.appointments.SetStatus(id, models.AppointmentConfirmed)
}

func (s *AppointmentService) Decline(id int) (models.Appointment, error) {
	return s.appointments.SetStatus(id, models.AppointmentDeclined)
}

func (s *AppointmentService) Complete(id int) (models.Appointment, error) {
	return s.appointments.SetStatus(id, models.AppointmentCompleted)
}

func (s *AppointmentService) Get(id int) (models.Appointment, error) {
	return s.appointments.GetByID(id)
}

func (s *AppointmentService) ForDoctor(doctorID string) []models.Appointment {
	return s.appointments.FindByDoctor(doctorID)
}

func (s *AppointmentService) ForPatient(patientID string) []models.Appointment {
	return s.appointments.FindByPatient(patientID)
}

func (s *AppointmentService) All() []models.Appointment {
	return s.appointments.ListAll()
}
