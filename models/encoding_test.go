package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediCore/models"
)

func TestMoneyEncoding(t *testing.T) {
	t.Run("always carries two decimals", func(t *testing.T) {
		assert.Equal(t, "10.00", models.FormatMoney(10))
		assert.Equal(t, "9.50", models.FormatMoney(9.5))
		assert.Equal(t, "0.10", models.FormatMoney(0.1))
	})

	t.Run("rounds to the nearest cent", func(t *testing.T) {
		assert.Equal(t, "3.33", models.FormatMoney(10.0/3.0))
	})

	t.Run("parses what it formats", func(t *testing.T) {
		v, err := models.ParseMoney(models.FormatMoney(12.75))
		require.NoError(t, err)
		assert.Equal(t, 12.75, v)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := models.ParseMoney("ten")
		assert.Error(t, err)
	})
}

func TestListEncoding(t *testing.T) {
	t.Run("empty list stays empty", func(t *testing.T) {
		assert.Equal(t, "", models.JoinList(nil))
		assert.Nil(t, models.SplitList(""))
	})

	t.Run("record lists spell None when empty", func(t *testing.T) {
		assert.Equal(t, "None", models.JoinListOrNone(nil))
		assert.Nil(t, models.SplitListOrNone("None"))
	})

	t.Run("items keep their exact text", func(t *testing.T) {
		items := []string{"Flu", " flu", "FLU"}
		assert.Equal(t, items, models.SplitList(models.JoinList(items)))
	})

	t.Run("money lists round trip", func(t *testing.T) {
		fees := []float64{10, 2.5}
		got, err := models.ParseMoneyList(models.JoinMoneyList(fees))
		require.NoError(t, err)
		assert.Equal(t, fees, got)
	})
}

func TestAppointmentStatusTerminal(t *testing.T) {
	assert.True(t, models.AppointmentCanceled.Terminal())
	assert.True(t, models.AppointmentCompleted.Terminal())
	assert.False(t, models.AppointmentPending.Terminal())
	assert.False(t, models.AppointmentConfirmed.Terminal())
	assert.False(t, models.AppointmentDeclined.Terminal())
}

func TestReplenishStatusTerminal(t *testing.T) {
	assert.True(t, models.ReplenishApproved.Terminal())
	assert.True(t, models.ReplenishDenied.Terminal())
	assert.False(t, models.ReplenishPending.Terminal())
}

func TestMedicationLowStock(t *testing.T) {
	m := models.Medication{Name: "Aspirin", LowStockAlert: 10}

	m.CurrentStock = 11
	assert.False(t, m.IsLowStock())

	m.CurrentStock = 10
	assert.True(t, m.IsLowStock(), "stock at the alert level counts as low")

	m.CurrentStock = 0
	assert.True(t, m.IsLowStock())
}

func TestUserIsStaff(t *testing.T) {
	assert.True(t, models.User{Role: models.RoleDoctor}.IsStaff())
	assert.True(t, models.User{Role: models.RolePharmacist}.IsStaff())
	assert.True(t, models.User{Role: models.RoleAdmin}.IsStaff())
	assert.False(t, models.User{Role: models.RolePatient}.IsStaff())
}
