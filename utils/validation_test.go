package utils_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"MediCore/models"
	"MediCore/utils"
)

func validStaff() models.User {
	return models.User{
		ID:     "D001",
		Name:   "Greg House",
		Role:   models.RoleDoctor,
		Gender: "Male",
		Age:    50,
	}
}

func validPatient() models.User {
	return models.User{
		ID:          "P0001",
		Name:        "John Smith",
		Role:        models.RolePatient,
		DateOfBirth: "1980-04-12",
		Gender:      "Male",
		BloodType:   "O+",
		Email:       "john@example.com",
	}
}

func TestValidateNewStaff(t *testing.T) {
	assert.NoError(t, utils.ValidateNewStaff(validStaff()))

	cases := []struct {
		name   string
		mutate func(*models.User)
	}{
		{"one letter name", func(u *models.User) { u.Name = "X" }},
		{"patient role", func(u *models.User) { u.Role = models.RolePatient }},
		{"made up gender", func(u *models.User) { u.Gender = "Unknown" }},
		{"under eighteen", func(u *models.User) { u.Age = 17 }},
		{"over one hundred", func(u *models.User) { u.Age = 101 }},
		{"missing id", func(u *models.User) { u.ID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := validStaff()
			tc.mutate(&u)
			assert.Error(t, utils.ValidateNewStaff(u))
		})
	}
}

func TestValidateNewPatient(t *testing.T) {
	assert.NoError(t, utils.ValidateNewPatient(validPatient()))

	cases := []struct {
		name   string
		mutate func(*models.User)
	}{
		{"wrong date layout", func(u *models.User) { u.DateOfBirth = "12/04/1980" }},
		{"made up blood type", func(u *models.User) { u.BloodType = "Q+" }},
		{"broken email", func(u *models.User) { u.Email = "not-an-email" }},
		{"missing email", func(u *models.User) { u.Email = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := validPatient()
			tc.mutate(&u)
			assert.Error(t, utils.ValidateNewPatient(u))
		})
	}
}

func TestValidateMedication(t *testing.T) {
	ok := models.Medication{Name: "Paracetamol", InitialStock: 10, LowStockAlert: 5, Price: 2.50}
	assert.NoError(t, utils.ValidateMedication(ok))

	bad := ok
	bad.Name = ""
	assert.Error(t, utils.ValidateMedication(bad))

	bad = ok
	bad.Price = -0.01
	assert.Error(t, utils.ValidateMedication(bad))

	bad = ok
	bad.InitialStock = -1
	assert.Error(t, utils.ValidateMedication(bad))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, utils.ValidateAmount(1))
	assert.NoError(t, utils.ValidateAmount(500))
	assert.Error(t, utils.ValidateAmount(0))
	assert.Error(t, utils.ValidateAmount(-5))
}

func TestValidateAppointmentTime(t *testing.T) {
	assert.NoError(t, utils.ValidateAppointmentTime(time.Now().Add(time.Hour)))
	assert.ErrorIs(t, utils.ValidateAppointmentTime(time.Now().Add(-time.Hour)), utils.ErrPastAppointment)
	assert.Error(t, utils.ValidateAppointmentTime(time.Time{}))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, utils.ValidatePassword("Str0ng@pass"))
	assert.NoError(t, utils.ValidatePassword("short@1A"), "eight characters with all classes is enough")

	t.Run("length", func(t *testing.T) {
		assert.ErrorIs(t, utils.ValidatePassword("Sh0rt@A"), utils.ErrPasswordTooShort)
	})

	t.Run("complexity", func(t *testing.T) {
		for _, password := range []string{"alllower0@", "NOUPPER99@", "NoDigits@!", "NoSpecial99"} {
			assert.ErrorIs(t, utils.ValidatePassword(password), utils.ErrPasswordNotComplex, "password %q", password)
		}
	})

	t.Run("blank", func(t *testing.T) {
		err := utils.ValidatePassword("")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "blank")
	})
}
