package handlers

import (
	"strings"

	"MediCore/models"
	"MediCore/services"
)

type DoctorHandler struct {
	Appointments *services.AppointmentService
	Billing      *services.BillingService
	Records      *services.MedicalRecordService
	Users        services.UserService
	Auth         *AuthHandler
	Prompt       *Prompter
}

func NewDoctorHandler(appointments *services.AppointmentService, billing *services.BillingService, records *services.MedicalRecordService, users services.UserService, auth *AuthHandler, prompt *Prompter) *DoctorHandler {
	return &DoctorHandler{
		Appointments: appointments,
		Billing:      billing,
		Records:      records,
		Users:        users,
		Auth:         auth,
		Prompt:       prompt,
	}
}

// Run drives the doctor menu until the user logs out.
func (h *DoctorHandler) Run(user *models.User) {
	for !h.Prompt.EOF() {
		choice := h.Prompt.Menu("Doctor menu for "+user.Name,
			"Log out",
			"View my schedule",
			"Accept an appointment",
			"Decline an appointment",
			"Complete an appointment",
			"Record an appointment outcome",
			"View a patient's medical record",
			"Add to a patient's medical record",
			"Remove medical record entries",
			"Change my password",
		)
		switch choice {
		case 1:
			h.viewSchedule(user)
		case 2:
			h.setStatus(user, h.Appointments.Accept, "accepted")
		case 3:
			h.setStatus(user, h.Appointments.Decline, "declined")
		case 4:
			h.setStatus(user, h.Appointments.Complete, "completed")
		case 5:
			h.recordOutcome(user)
		case 6:
			h.viewRecord()
		case 7:
			h.appendRecord()
		case 8:
			h.removeRecordEntries()
		case 9:
			h.Auth.ChangePassword(user)
		case 0:
			return
		}
	}
}

func (h *DoctorHandler) viewSchedule(user *models.User) {
	appointments := h.Appointments.ForDoctor(user.ID)
	if len(appointments) == 0 {
		h.Prompt.Say("Your schedule is empty.")
		return
	}
	for _, a := range appointments {
		patientName := h.userName(a.PatientID)
		h.Prompt.Say("  #%d  %s  patient %s (%s)  %s", a.ID, a.DateTime.Format(models.DateTimeLayout), patientName, a.PatientID, a.Status)
	}
}

func (h *DoctorHandler) setStatus(user *models.User, change func(int) (models.Appointment, error), verb string) {
	id := h.Prompt.ReadInt("Appointment number")
	if h.Prompt.EOF() {
		return
	}
	if !h.ownAppointment(user, id) {
		return
	}
	appointment, err := change(id)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Appointment #%d %s.", appointment.ID, verb)
}

func (h *DoctorHandler) recordOutcome(user *models.User) {
	id := h.Prompt.ReadInt("Appointment number")
	if h.Prompt.EOF() {
		return
	}
	if !h.ownAppointment(user, id) {
		return
	}

	serviceType := h.Prompt.ReadLine("Service provided")
	medications := h.Prompt.ReadList("Prescribed medications, separated by ;")
	notes := h.Prompt.ReadLine("Notes")
	if h.Prompt.EOF() {
		return
	}

	prescription := models.PrescriptionNone
	if len(medications) > 0 {
		prescription = models.PrescriptionPending
	}

	outcome, err := h.Billing.RecordOutcome(id, serviceType, medications, notes, prescription)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Outcome recorded. The bill comes to %s.", models.FormatMoney(outcome.TotalAmount))
	if outcome.Prescription == models.PrescriptionPending {
		h.Prompt.Say("The pharmacy will dispense: %s.", strings.Join(outcome.MedicationNames, ", "))
	}
}

func (h *DoctorHandler) viewRecord() {
	patientID := h.Prompt.ReadLine("Patient ID")
	if h.Prompt.EOF() {
		return
	}
	record, err := h.Records.Record(patientID)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	printRecord(h.Prompt, record)
}

func (h *DoctorHandler) appendRecord() {
	patientID := h.Prompt.ReadLine("Patient ID")
	if h.Prompt.EOF() {
		return
	}
	if _, err := h.Users.GetUser(patientID); err != nil {
		h.Prompt.Fail(err)
		return
	}
	diagnoses := h.Prompt.ReadList("Diagnoses to add, separated by ;")
	prescriptions := h.Prompt.ReadList("Prescriptions to add, separated by ;")
	treatmentPlans := h.Prompt.ReadList("Treatment plans to add, separated by ;")
	if h.Prompt.EOF() {
		return
	}

	record, err := h.Records.Append(patientID, diagnoses, prescriptions, treatmentPlans)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	printRecord(h.Prompt, record)
}

func (h *DoctorHandler) removeRecordEntries() {
	patientID := h.Prompt.ReadLine("Patient ID")
	if h.Prompt.EOF() {
		return
	}
	record, err := h.Records.Record(patientID)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	printRecord(h.Prompt, record)

	kinds := []models.RecordList{models.RecordDiagnoses, models.RecordPrescriptions, models.RecordTreatmentPlans}
	choice := h.Prompt.Menu("Which list?", "Back", "Diagnoses", "Prescriptions", "Treatment plans")
	if choice == 0 || h.Prompt.EOF() {
		return
	}
	kind := kinds[choice-1]

	mode := h.Prompt.Menu("Remove how?", "Back", "By entry number", "By value")
	switch mode {
	case 1:
		index := h.Prompt.ReadInt("Entry number")
		if h.Prompt.EOF() {
			return
		}
		updated, err := h.Records.DeleteEntry(patientID, kind, index-1)
		if err != nil {
			h.Prompt.Fail(err)
			return
		}
		printRecord(h.Prompt, updated)
	case 2:
		values := h.Prompt.ReadList("Values to remove, separated by ; (empty removes every entry)")
		if h.Prompt.EOF() {
			return
		}
		if len(values) == 0 && !h.Prompt.Confirm("Remove every entry from "+string(kind)+"?") {
			return
		}
		removed, missing, err := h.Records.DeleteEntries(patientID, kind, strings.Join(values, ";"))
		if err != nil {
			h.Prompt.Fail(err)
			return
		}
		if len(removed) > 0 {
			h.Prompt.Say("Removed: %s.", strings.Join(removed, ", "))
		}
		if len(missing) > 0 {
			h.Prompt.Say("Not found: %s.", strings.Join(missing, ", "))
		}
		if len(removed) == 0 && len(missing) == 0 {
			h.Prompt.Say("Nothing to remove.")
		}
	}
}

// ownAppointment keeps doctors from acting on other doctors' bookings.
func (h *DoctorHandler) ownAppointment(user *models.User, id int) bool {
	appointment, err := h.Appointments.Get(id)
	if err != nil {
		h.Prompt.Fail(err)
		return false
	}
	if appointment.DoctorID != user.ID {
		h.Prompt.Say("Appointment #%d is not on your schedule.", id)
		return false
	}
	return true
}

func (h *DoctorHandler) userName(id string) string {
	user, err := h.Users.GetUser(id)
	if err != nil {
		return id
	}
	return user.Name
}
