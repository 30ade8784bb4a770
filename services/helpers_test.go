package services_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"MediCore/config"
	"MediCore/database"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/services"
	"MediCore/utils"
)

var testLogger = zerolog.Nop()

// fixture wires every repository over one temp directory store.
type fixture struct {
	dir          string
	store        *database.Store
	medications  *repositories.MedicationRepository
	requests     *repositories.ReplenishRepository
	appointments *repositories.AppointmentRepository
	outcomes     *repositories.OutcomeRepository
	records      *repositories.MedicalRecordRepository
	users        repositories.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	store, err := database.InitStore(dir)
	require.NoError(t, err)

	f := &fixture{dir: dir, store: store}
	f.medications, err = repositories.NewMedicationRepository(store)
	require.NoError(t, err)
	f.requests, err = repositories.NewReplenishRepository(store)
	require.NoError(t, err)
	f.appointments, err = repositories.NewAppointmentRepository(store)
	require.NoError(t, err)
	f.outcomes, err = repositories.NewOutcomeRepository(store)
	require.NoError(t, err)
	f.records, err = repositories.NewMedicalRecordRepository(store)
	require.NoError(t, err)
	f.users, err = repositories.NewUserRepository(store)
	require.NoError(t, err)
	return f
}

func (f *fixture) inventoryService() *services.InventoryService {
	return services.NewInventoryService(f.medications, nil, testLogger)
}

func (f *fixture) replenishService() *services.ReplenishService {
	return services.NewReplenishService(f.requests, f.medications, nil, testLogger)
}

func (f *fixture) appointmentService() *services.AppointmentService {
	return services.NewAppointmentService(f.appointments)
}

func (f *fixture) billingService() *services.BillingService {
	return services.NewBillingService(f.outcomes, f.appointments, f.medications, testLogger)
}

func (f *fixture) userService(t *testing.T) services.UserService {
	t.Helper()
	throttle := utils.NewLoginThrottle(utils.ThrottleConfig{AttemptsPerSecond: 1000, Burst: 1000})
	cfg := &config.AppConfig{DataDir: f.dir}
	return services.NewUserService(f.users, throttle, cfg, testLogger)
}

func (f *fixture) addMedication(t *testing.T, name string, stock, alert int, price float64) {
	t.Helper()
	require.NoError(t, f.medications.Add(models.Medication{
		Name:          name,
		InitialStock:  stock,
		CurrentStock:  stock,
		LowStockAlert: alert,
		Price:         price,
	}, true))
}

func sampleSlot() time.Time {
	return time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
}

// completedAppointment books and works a visit through to COMPLETED.
func (f *fixture) completedAppointment(t *testing.T, doctorID, patientID string) models.Appointment {
	t.Helper()
	a, err := f.appointments.Create(doctorID, patientID, sampleSlot())
	require.NoError(t, err)
	_, err = f.appointments.SetStatus(a.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	done, err := f.appointments.SetStatus(a.ID, models.AppointmentCompleted)
	require.NoError(t, err)
	return done
}
