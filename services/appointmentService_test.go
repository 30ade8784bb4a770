package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediCore/apperrors"
	"MediCore/models"
)

func TestAppointmentServiceSchedule(t *testing.T) {
	f := newFixture(t)
	svc := f.appointmentService()
	future := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	t.Run("books a pending slot", func(t *testing.T) {
		a, err := svc.Schedule("D001", "P0001", future)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentPending, a.Status)
		assert.True(t, a.DateTime.Equal(future))
	})

	t.Run("rejects slots in the past", func(t *testing.T) {
		_, err := svc.Schedule("D001", "P0001", time.Now().Add(-time.Hour))
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})
}

func TestAppointmentServiceLifecycle(t *testing.T) {
	f := newFixture(t)
	svc := f.appointmentService()
	future := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	a, err := svc.Schedule("D001", "P0001", future)
	require.NoError(t, err)

	t.Run("accept confirms the slot", func(t *testing.T) {
		got, err := svc.Accept(a.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentConfirmed, got.Status)
	})

	t.Run("reschedule puts it back to pending", func(t *testing.T) {
		moved := future.Add(24 * time.Hour)
		got, err := svc.Reschedule(a.ID, moved)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentPending, got.Status)
		assert.True(t, got.DateTime.Equal(moved))
	})

	t.Run("reschedule cannot target the past", func(t *testing.T) {
		_, err := svc.Reschedule(a.ID, time.Now().Add(-time.Minute))
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	})

	t.Run("complete only follows confirm", func(t *testing.T) {
		_, err := svc.Accept(a.ID)
		require.NoError(t, err)
		got, err := svc.Complete(a.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentCompleted, got.Status)
	})

	t.Run("a completed visit cannot be canceled", func(t *testing.T) {
		_, err := svc.Cancel(a.ID)
		assert.True(t, apperrors.Is(err, apperrors.KindTerminalState))
	})
}

func TestAppointmentServiceViews(t *testing.T) {
	f := newFixture(t)
	svc := f.appointmentService()
	base := time.Now().Add(72 * time.Hour).Truncate(time.Hour)

	_, err := svc.Schedule("D001", "P0001", base)
	require.NoError(t, err)
	_, err = svc.Schedule("D001", "P0002", base.Add(time.Hour))
	require.NoError(t, err)
	_, err = svc.Schedule("D002", "P0001", base.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Len(t, svc.ForDoctor("D001"), 2)
	assert.Len(t, svc.ForPatient("P0001"), 2)
	assert.Len(t, svc.ForDoctor("D003"), 0)
	assert.Len(t, svc.All(), 3)
}
