package repositories_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediCore/apperrors"
	"MediCore/database"
	"MediCore/models"
	"MediCore/repositories"
)

var slot = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func newAppointmentRepo(t *testing.T, store *database.Store) *repositories.AppointmentRepository {
	t.Helper()
	repo, err := repositories.NewAppointmentRepository(store)
	require.NoError(t, err)
	return repo
}

func TestAppointmentRepositoryCreate(t *testing.T) {
	repo := newAppointmentRepo(t, newTestStore(t))

	a, err := repo.Create("D001", "P0001", slot)
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, models.AppointmentPending, a.Status, "new appointments wait for the doctor")

	b, err := repo.Create("D001", "P0002", slot.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, b.ID)
}

func TestAppointmentRepositoryDoubleBooking(t *testing.T) {
	repo := newAppointmentRepo(t, newTestStore(t))

	first, err := repo.Create("D001", "P0001", slot)
	require.NoError(t, err)
	second, err := repo.Create("D001", "P0002", slot)
	require.NoError(t, err)

	_, err = repo.SetStatus(first.ID, models.AppointmentConfirmed)
	require.NoError(t, err)

	_, err = repo.SetStatus(second.ID, models.AppointmentConfirmed)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindDuplicateKey))

	got, err := repo.GetByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, got.Status, "the clash leaves the second booking pending")
}

func TestAppointmentRepositoryOtherDoctorSameSlot(t *testing.T) {
	repo := newAppointmentRepo(t, newTestStore(t))

	first, err := repo.Create("D001", "P0001", slot)
	require.NoError(t, err)
	second, err := repo.Create("D002", "P0002", slot)
	require.NoError(t, err)

	_, err = repo.SetStatus(first.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	_, err = repo.SetStatus(second.ID, models.AppointmentConfirmed)
	require.NoError(t, err, "different doctors can share a time")
}

func TestAppointmentRepositorySlotFreesAfterCancel(t *testing.T) {
	repo := newAppointmentRepo(t, newTestStore(t))

	first, err := repo.Create("D001", "P0001", slot)
	require.NoError(t, err)
	second, err := repo.Create("D001", "P0002", slot)
	require.NoError(t, err)

	_, err = repo.SetStatus(first.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	_, err = repo.SetStatus(first.ID, models.AppointmentCanceled)
	require.NoError(t, err)

	_, err = repo.SetStatus(second.ID, models.AppointmentConfirmed)
	require.NoError(t, err, "a canceled booking no longer holds the slot")
}

func TestAppointmentRepositoryTerminalStates(t *testing.T) {
	repo := newAppointmentRepo(t, newTestStore(t))

	a, err := repo.Create("D001", "P0001", slot)
	require.NoError(t, err)
	_, err = repo.SetStatus(a.ID, models.AppointmentCanceled)
	require.NoError(t, err)

	_, err = repo.SetStatus(a.ID, models.AppointmentConfirmed)
	assert.True(t, apperrors.Is(err, apperrors.KindTerminalState))

	_, err = repo.Reschedule(a.ID, slot.Add(time.Hour))
	assert.True(t, apperrors.Is(err, apperrors.KindTerminalState))

	b, err := repo.Create("D001", "P0001", slot.Add(2*time.Hour))
	require.NoError(t, err)
	_, err = repo.SetStatus(b.ID, models.AppointmentConfirmed)
	require.NoError(t, err)
	_, err = repo.SetStatus(b.ID, models.AppointmentCompleted)
	require.NoError(t, err)

	_, err = repo.SetStatus(b.ID, models.AppointmentCanceled)
	assert.True(t, apperrors.Is(err, apperrors.KindTerminalState), "completed visits cannot be canceled")
}

func TestAppointmentRepositoryDeclinedCanRecover(t *testing.T) {
	repo := newAppointmentRepo(t, newTestStore(t))

	a, err := repo.Create("D001", "P0001", slot)
	require.NoError(t, err)
	_, err = repo.SetStatus(a.ID, models.AppointmentDeclined)
	require.NoError(t, err)

	got, err := repo.Reschedule(a.ID, slot.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentPending, got.Status, "rescheduling asks the doctor again")
	assert.True(t, got.DateTime.Equal(slot.Add(24*time.Hour)))
}

func TestAppointmentRepositoryRejectsUnknownStatus(t *testing.T) {
	repo := newAppointmentRepo(t, newTestStore(t))

	a, err := repo.Create("D001", "P0001", slot)
	require.NoError(t, err)

	_, err = repo.SetStatus(a.ID, models.AppointmentStatus("LOST"))
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = repo.SetStatus(42, models.AppointmentConfirmed)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestAppointmentRepositoryViews(t *testing.T) {
	repo := newAppointmentRepo(t, newTestStore(t))

	_, err := repo.Create("D001", "P0001", slot)
	require.NoError(t, err)
	_, err = repo.Create("D002", "P0001", slot.Add(time.Hour))
	require.NoError(t, err)
	_, err = repo.Create("D001", "P0002", slot.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Len(t, repo.FindByDoctor("D001"), 2)
	assert.Len(t, repo.FindByPatient("P0001"), 2)
	assert.Len(t, repo.ListAll(), 3)
	assert.Empty(t, repo.FindByDoctor("D009"))
}

func TestAppointmentRepositoryReload(t *testing.T) {
	store := newTestStore(t)
	repo := newAppointmentRepo(t, store)

	a, err := repo.Create("D001", "P0001", slot)
	require.NoError(t, err)
	_, err = repo.SetStatus(a.ID, models.AppointmentConfirmed)
	require.NoError(t, err)

	reloaded := newAppointmentRepo(t, store)
	got, err := reloaded.GetByID(a.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentConfirmed, got.Status)
	assert.True(t, got.DateTime.Equal(slot))

	next, err := reloaded.Create("D002", "P0002", slot.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, a.ID+1, next.ID)
}
