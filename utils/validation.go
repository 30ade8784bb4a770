package utils

import (
	"errors"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"MediCore/models"
)

// Validation errors
var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrPastAppointment    = errors.New("appointment time must be in the future")
)

// ValidateNewStaff validates a staff account before it is created.
func ValidateNewStaff(user models.User) error {
	return validation.ValidateStruct(&user,
		validation.Field(&user.ID, validation.Required),
		validation.Field(&user.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&user.Role, validation.Required, validation.In(models.RoleDoctor, models.RolePharmacist, models.RoleAdmin)),
		validation.Field(&user.Gender, validation.Required, validation.In("Male", "Female", "Other")),
		validation.Field(&user.Age, validation.Required, validation.Min(18), validation.Max(100)),
	)
}

// ValidateNewPatient validates a patient account before it is created.
func ValidateNewPatient(user models.User) error {
	return validation.ValidateStruct(&user,
		validation.Field(&user.ID, validation.Required),
		validation.Field(&user.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&user.DateOfBirth, validation.Required, validation.Date(models.DateLayout)),
		validation.Field(&user.Gender, validation.Required, validation.In("Male", "Female", "Other")),
		validation.Field(&user.BloodType, validation.Required,
			validation.In("A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-")),
		validation.Field(&user.Email, validation.Required, is.Email),
	)
}

// ValidateMedication validates a medication before it enters the formulary.
func ValidateMedication(m models.Medication) error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&m.InitialStock, validation.Min(0)),
		validation.Field(&m.LowStockAlert, validation.Min(0)),
		validation.Field(&m.CurrentStock, validation.Min(0)),
		validation.Field(&m.Price, validation.Min(0.0)),
	)
}

// ValidateAmount validates a stock movement or replenish amount.
func ValidateAmount(amount int) error {
	return validation.Validate(amount, validation.Required, validation.Min(1))
}

// ValidateAppointmentTime rejects scheduling in the past.
func ValidateAppointmentTime(at time.Time) error {
	if !at.After(time.Now()) {
		return ErrPastAppointment
	}
	return nil
}

// ValidatePassword checks a new password for length and complexity.
func ValidatePassword(password string) error {
	return validation.Validate(password,
		validation.Required.Error("password cannot be blank"),
		validation.By(validatePassword),
	)
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	// Check complexity with regex
	var (
		lowercaseRegex = regexp.MustCompile(`[a-z]`)
		uppercaseRegex = regexp.MustCompile(`[A-Z]`)
		digitRegex     = regexp.MustCompile(`\d`)
		specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
	)

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}

	return nil
}
