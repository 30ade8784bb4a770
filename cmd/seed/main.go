package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog"

	"MediCore/config"
	"MediCore/database"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/services"
	"MediCore/utils"
)

var formulary = []string{
	"Paracetamol",
	"Ibuprofen",
	"Amoxicillin",
	"Aspirin",
	"Cetirizine",
	"Omeprazole",
	"Metformin",
	"Amlodipine",
	"Atorvastatin",
	"Salbutamol",
	"Lisinopril",
	"Azithromycin",
}

var serviceTypes = []string{
	"General consultation",
	"Follow up",
	"Vaccination",
	"Minor surgery",
	"Physiotherapy",
	"Health screening",
}

var diagnoses = []string{
	"Seasonal influenza",
	"Hypertension",
	"Type 2 diabetes",
	"Migraine",
	"Lower back pain",
	"Allergic rhinitis",
	"Gastritis",
}

var genders = []string{"Male", "Female", "Other"}

var bloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dir := flag.String("dir", "./data", "directory for the CSV tables")
	doctorCount := flag.Int("doctors", 4, "number of doctors to create")
	patientCount := flag.Int("patients", 20, "number of patients to create")
	seed := flag.Int64("seed", 0, "random seed, 0 draws one from the clock")
	flag.Parse()

	store, err := database.InitStore(*dir)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gofakeit.Seed(*seed)

	app, err := newSeedContext(store, *dir)
	if err != nil {
		log.Fatalf("wire services: %v", err)
	}

	if err := app.seedUsers(*doctorCount, *patientCount); err != nil {
		log.Fatalf("seed users: %v", err)
	}
	if err := app.seedFormulary(); err != nil {
		log.Fatalf("seed formulary: %v", err)
	}
	if err := app.seedAppointments(); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
	log.Printf("every account signs in with the default password %q", utils.DefaultPassword)
}

type seedContext struct {
	users        services.UserService
	inventory    *services.InventoryService
	appointments *repositories.AppointmentRepository
	billing      *services.BillingService
	records      *services.MedicalRecordService
}

func newSeedContext(store *database.Store, dir string) (*seedContext, error) {
	medicationRepo, err := repositories.NewMedicationRepository(store)
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

	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
	cfg := &config.AppConfig{DataDir: dir}
	throttle := utils.NewLoginThrottle(utils.ThrottleConfig{AttemptsPerSecond: 1000, Burst: 1000})

	return &seedContext{
		users:        services.NewUserService(userRepo, throttle, cfg, logger),
		inventory:    services.NewInventoryService(medicationRepo, nil, logger),
		appointments: appointmentRepo,
		billing:      services.NewBillingService(outcomeRepo, appointmentRepo, medicationRepo, logger),
		records:      services.NewMedicalRecordService(recordRepo),
	}, nil
}

func (s *seedContext) seedUsers(doctorCount, patientCount int) error {
	admin, err := s.users.CreateStaff(gofakeit.Name(), models.RoleAdmin, gofakeit.RandomString(genders), gofakeit.Number(30, 60))
	if err != nil {
		return err
	}
	log.Printf("administrator: %s", admin.ID)

	for i := 0; i < 2; i++ {
		if _, err := s.users.CreateStaff(gofakeit.Name(), models.RolePharmacist, gofakeit.RandomString(genders), gofakeit.Number(25, 60)); err != nil {
			return err
		}
	}

	log.Printf("seeding %d doctors", doctorCount)
	for i := 0; i < doctorCount; i++ {
		if _, err := s.users.CreateStaff(gofakeit.Name(), models.RoleDoctor, gofakeit.RandomString(genders), gofakeit.Number(28, 65)); err != nil {
			return err
		}
	}

	log.Printf("seeding %d patients", patientCount)
	for i := 0; i < patientCount; i++ {
		dateOfBirth := gofakeit.DateRange(
			time.Date(1945, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2008, 12, 31, 0, 0, 0, 0, time.UTC),
		).Format(models.DateLayout)

		_, err := s.users.RegisterPatient(
			gofakeit.Name(),
			dateOfBirth,
			gofakeit.RandomString(genders),
			gofakeit.RandomString(bloodTypes),
			gofakeit.Email(),
		)
		if err != nil {
			return err
		}
	}

	log.Println("users seeded")
	return nil
}

func (s *seedContext) seedFormulary() error {
	log.Printf("seeding %d medications", len(formulary))
	for _, name := range formulary {
		_, err := s.inventory.AddMedication(models.Medication{
			Name:          name,
			InitialStock:  gofakeit.Number(40, 400),
			LowStockAlert: gofakeit.Number(10, 50),
			Price:         gofakeit.Price(2, 80),
		})
		if err != nil {
			return err
		}
	}
	log.Println("formulary seeded")
	return nil
}

func (s *seedContext) seedAppointments() error {
	doctors := make([]models.User, 0)
	for _, staff := range s.users.ListStaff() {
		if staff.Role == models.RoleDoctor {
			doctors = append(doctors, staff)
		}
	}
	patients := s.users.ListPatients()
	if len(doctors) == 0 || len(patients) == 0 {
		log.Println("no doctors or patients, skipping appointments")
		return nil
	}

	count := len(patients) * 2
	log.Printf("seeding %d appointments", count)

	for i := 0; i < count; i++ {
		doctor := doctors[gofakeit.Number(0, len(doctors)-1)]
		patient := patients[gofakeit.Number(0, len(patients)-1)]

		if gofakeit.Bool() {
			if err := s.seedVisit(doctor, patient); err != nil {
				return err
			}
			continue
		}
		if err := s.seedBooking(doctor, patient); err != nil {
			return err
		}
	}

	log.Println("appointments seeded")
	return nil
}

// seedVisit writes a past appointment that already ran its course, together
// with its outcome, bill and record entries.
func (s *seedContext) seedVisit(doctor, patient models.User) error {
	at := time.Now().
		Add(-time.Duration(gofakeit.Number(24, 24*90)) * time.Hour).
		Truncate(time.Hour)

	appointment, err := s.appointments.Create(doctor.ID, patient.ID, at)
	if err != nil {
		return err
	}
	if _, err := s.appointments.SetStatus(appointment.ID, models.AppointmentConfirmed); err != nil {
		// random times can clash on the same doctor, leave those pending
		log.Printf("appointment %d stays pending: %v", appointment.ID, err)
		return nil
	}
	if _, err := s.appointments.SetStatus(appointment.ID, models.AppointmentCompleted); err != nil {
		return err
	}

	var prescribed []string
	for i := gofakeit.Number(0, 2); i > 0; i-- {
		prescribed = append(prescribed, gofakeit.RandomString(formulary))
	}
	prescribed = dedupe(prescribed)

	prescription := models.PrescriptionNone
	if len(prescribed) > 0 {
		prescription = models.PrescriptionPending
	}

	outcome, err := s.billing.RecordOutcome(appointment.ID, gofakeit.RandomString(serviceTypes), prescribed, gofakeit.Sentence(8), prescription)
	if err != nil {
		return err
	}

	if gofakeit.Bool() {
		if _, err := s.billing.MarkPaid(outcome.AppointmentID); err != nil {
			return err
		}
	}
	if outcome.Prescription == models.PrescriptionPending && gofakeit.Bool() {
		if _, err := s.billing.Dispense(outcome.AppointmentID); err != nil {
			return err
		}
	}

	_, err = s.records.Append(patient.ID,
		[]string{gofakeit.RandomString(diagnoses)},
		prescribed,
		[]string{gofakeit.RandomString(serviceTypes)},
	)
	return err
}

// seedBooking writes an upcoming appointment in a mix of states.
func (s *seedContext) seedBooking(doctor, patient models.User) error {
	at := time.Now().
		Add(time.Duration(gofakeit.Number(24, 24*30)) * time.Hour).
		Truncate(time.Hour)

	appointment, err := s.appointments.Create(doctor.ID, patient.ID, at)
	if err != nil {
		return err
	}

	switch gofakeit.Number(0, 3) {
	case 0, 1:
		if _, err := s.appointments.SetStatus(appointment.ID, models.AppointmentConfirmed); err != nil {
			log.Printf("appointment %d stays pending: %v", appointment.ID, err)
		}
	case 2:
		if _, err := s.appointments.SetStatus(appointment.ID, models.AppointmentDeclined); err != nil {
			return err
		}
	}
	return nil
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
