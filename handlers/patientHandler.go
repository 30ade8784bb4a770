package handlers

import (
	"MediCore/models"
	"MediCore/services"
)

type PatientHandler struct {
	Appointments *services.AppointmentService
	Billing      *services.BillingService
	Records      *services.MedicalRecordService
	Users        services.UserService
	Auth         *AuthHandler
	Prompt       *Prompter
}

func NewPatientHandler(appointments *services.AppointmentService, billing *services.BillingService, records *services.MedicalRecordService, users services.UserService, auth *AuthHandler, prompt *Prompter) *PatientHandler {
	return &PatientHandler{
		Appointments: appointments,
		Billing:      billing,
		Records:      records,
		Users:        users,
		Auth:         auth,
		Prompt:       prompt,
	}
}

// Run drives the patient menu until the user logs out.
func (h *PatientHandler) Run(user *models.User) {
	for !h.Prompt.EOF() {
		choice := h.Prompt.Menu("Patient menu for "+user.Name,
			"Log out",
			"View my medical record",
			"View my appointments",
			"Schedule an appointment",
			"Reschedule an appointment",
			"Cancel an appointment",
			"View my bills and pay",
			"Change my password",
		)
		switch choice {
		case 1:
			h.viewRecord(user)
		case 2:
			h.viewAppointments(user)
		case 3:
			h.schedule(user)
		case 4:
			h.reschedule(user)
		case 5:
			h.cancel(user)
		case 6:
			h.viewBills(user)
		case 7:
			h.Auth.ChangePassword(user)
		case 0:
			return
		}
	}
}

func (h *PatientHandler) viewRecord(user *models.User) {
	record, err := h.Records.Record(user.ID)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	printRecord(h.Prompt, record)
}

func (h *PatientHandler) viewAppointments(user *models.User) {
	appointments := h.Appointments.ForPatient(user.ID)
	if len(appointments) == 0 {
		h.Prompt.Say("You have no appointments.")
		return
	}
	for _, a := range appointments {
		doctorName := h.userName(a.DoctorID)
		h.Prompt.Say("  #%d  %s  with %s  %s", a.ID, a.DateTime.Format(models.DateTimeLayout), doctorName, a.Status)
	}
}

func (h *PatientHandler) schedule(user *models.User) {
	doctors := make([]models.User, 0)
	for _, staff := range h.Users.ListStaff() {
		if staff.Role == models.RoleDoctor {
			doctors = append(doctors, staff)
		}
	}
	if len(doctors) == 0 {
		h.Prompt.Say("No doctors are available.")
		return
	}
	h.Prompt.Say("Doctors:")
	for _, d := range doctors {
		h.Prompt.Say("  %s  %s", d.ID, d.Name)
	}

	doctorID := h.Prompt.ReadLine("Doctor ID")
	at := h.Prompt.ReadDateTime("Appointment time")
	if h.Prompt.EOF() {
		return
	}
	if _, err := h.Users.GetUser(doctorID); err != nil {
		h.Prompt.Fail(err)
		return
	}

	appointment, err := h.Appointments.Schedule(doctorID, user.ID, at)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Appointment #%d requested for %s. The doctor still has to accept it.", appointment.ID, appointment.DateTime.Format(models.DateTimeLayout))
}

func (h *PatientHandler) reschedule(user *models.User) {
	id := h.Prompt.ReadInt("Appointment number")
	at := h.Prompt.ReadDateTime("New time")
	if h.Prompt.EOF() {
		return
	}
	if !h.ownsAppointment(user, id) {
		return
	}
	appointment, err := h.Appointments.Reschedule(id, at)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Appointment #%d moved to %s and waiting for the doctor again.", appointment.ID, appointment.DateTime.Format(models.DateTimeLayout))
}

func (h *PatientHandler) cancel(user *models.User) {
	id := h.Prompt.ReadInt("Appointment number")
	if h.Prompt.EOF() {
		return
	}
	if !h.ownsAppointment(user, id) {
		return
	}
	if _, err := h.Appointments.Cancel(id); err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Appointment #%d canceled.", id)
}

func (h *PatientHandler) viewBills(user *models.User) {
	outcomes := h.Billing.OutcomesForPatient(user.ID)
	if len(outcomes) == 0 {
		h.Prompt.Say("You have no bills.")
		return
	}
	unpaid := 0
	for _, o := range outcomes {
		printBill(h.Prompt, o)
		if o.Billing == models.BillingUnpaid {
			unpaid++
		}
	}
	if unpaid == 0 {
		return
	}
	if !h.Prompt.Confirm("Pay a bill now?") {
		return
	}
	id := h.Prompt.ReadInt("Appointment number")
	if h.Prompt.EOF() {
		return
	}
	if !h.ownsAppointment(user, id) {
		return
	}
	outcome, err := h.Billing.MarkPaid(id)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Bill for appointment #%d is now %s.", outcome.AppointmentID, outcome.Billing)
}

// ownsAppointment keeps patients from acting on other patients' bookings.
func (h *PatientHandler) ownsAppointment(user *models.User, id int) bool {
	appointment, err := h.Appointments.Get(id)
	if err != nil {
		h.Prompt.Fail(err)
		return false
	}
	if appointment.PatientID != user.ID {
		h.Prompt.Say("Appointment #%d is not yours.", id)
		return false
	}
	return true
}

func (h *PatientHandler) userName(id string) string {
	user, err := h.Users.GetUser(id)
	if err != nil {
		return id
	}
	return user.Name
}

func printRecord(p *Prompter, record models.MedicalRecord) {
	p.Say("Medical record for %s", record.PatientID)
	printRecordList(p, "Diagnoses", record.Diagnoses)
	printRecordList(p, "Prescriptions", record.Prescriptions)
	printRecordList(p, "Treatment plans", record.TreatmentPlans)
}

func printRecordList(p *Prompter, label string, items []string) {
	p.Say("%s:", label)
	if len(items) == 0 {
		p.Say("  None")
		return
	}
	for i, item := range items {
		p.Say("  %d. %s", i+1, item)
	}
}

func printBill(p *Prompter, o models.AppointmentOutcome) {
	p.Say("Appointment #%d: %s", o.AppointmentID, o.ServiceType)
	p.Say("  Consultation fee: %s", models.FormatMoney(o.ConsultationFee))
	for i, name := range o.MedicationNames {
		if i < len(o.MedicationFees) {
			p.Say("  %s: %s", name, models.FormatMoney(o.MedicationFees[i]))
		}
	}
	p.Say("  Total: %s (%s)", models.FormatMoney(o.TotalAmount), o.Billing)
}
