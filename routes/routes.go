package routes

import (
	"io"

	"github.com/rs/zerolog"

	"MediCore/config"
	"MediCore/database"
	"MediCore/handlers"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/services"
	"MediCore/utils"
)

// Router holds the signed in menu for every role.
type Router struct {
	Auth       *handlers.AuthHandler
	Patient    *handlers.PatientHandler
	Doctor     *handlers.DoctorHandler
	Pharmacist *handlers.PharmacistHandler
	Admin      *handlers.AdminHandler
	Prompt     *handlers.Prompter
}

// SetupRouter wires repositories, services and handlers onto the store.
func SetupRouter(store *database.Store, cfg *config.AppConfig, in io.Reader, out io.Writer, logger zerolog.Logger) (*Router, error) {
	prompt := handlers.NewPrompter(in, out)

	medicationRepo, err := repositories.NewMedicationRepository(store)
	if err != nil {
		return nil, err
	}
	replenishRepo, err := repositories.NewReplenishRepository(store)
	if err != nil {
		return nil, err
	}
	appointmentRepo, err := repositories.NewAppointmentRepository(store)
	if err != nil {
		return nil, err
	}
	outcomeRepo, err := repositories.NewOutcomeRepository(store)
	if err != nil {
		return nil, err
	}
	recordRepo, err := repositories.NewMedicalRecordRepository(store)
	if err != nil {
		return nil, err
	}
	userRepo, err := repositories.NewUserRepository(store)
	if err != nil {
		return nil, err
	}

	var notifier *utils.Notifier
	if cfg.MailEnabled() {
		notifier = utils.NewNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.AlertEmail)
	}
	throttle := utils.NewLoginThrottle(utils.ThrottleConfig{
		AttemptsPerSecond: cfg.LoginRate,
		Burst:             cfg.LoginBurst,
	})

	inventory := services.NewInventoryService(medicationRepo, notifier, logger)
	replenish := services.NewReplenishService(replenishRepo, medicationRepo, notifier, logger)
	appointments := services.NewAppointmentService(appointmentRepo)
	billing := services.NewBillingService(outcomeRepo, appointmentRepo, medicationRepo, logger)
	records := services.NewMedicalRecordService(recordRepo)
	users := services.NewUserService(userRepo, throttle, cfg, logger)

	auth := handlers.NewAuthHandler(users, prompt)
	return &Router{
		Auth:       auth,
		Patient:    handlers.NewPatientHandler(appointments, billing, records, users, auth, prompt),
		Doctor:     handlers.NewDoctorHandler(appointments, billing, records, users, auth, prompt),
		Pharmacist: handlers.NewPharmacistHandler(inventory, replenish, billing, auth, prompt),
		Admin:      handlers.NewAdminHandler(users, appointments, inventory, replenish, auth, prompt),
		Prompt:     prompt,
	}, nil
}

// Dispatch runs the signed in menu for the user's role.
func (r *Router) Dispatch(user *models.User) {
	switch user.Role {
	case models.RolePatient:
		r.Patient.Run(user)
	case models.RoleDoctor:
		r.Doctor.Run(user)
	case models.RolePharmacist:
		r.Pharmacist.Run(user)
	case models.RoleAdmin:
		r.Admin.Run(user)
	default:
		r.Prompt.Say("No menu is available for role %s.", user.Role)
	}
}
