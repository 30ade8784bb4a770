package models

import (
	"fmt"
	"strconv"
)

// Role represents a user role
type Role string

const (
	RolePatient    Role = "Patient"
	RoleDoctor     Role = "Doctor"
	RolePharmacist Role = "Pharmacist"
	RoleAdmin      Role = "Admin"
)

// User represents a user in the system. Staff and patients live in separate
// tables but share one struct; the role decides which profile fields are set.
type User struct {
	ID           string
	Name         string
	Role         Role
	Gender       string
	Age          int
	DateOfBirth  string
	BloodType    string
	Email        string
	PasswordHash string
}

// IsStaff reports whether the user belongs to the staff table.
func (u User) IsStaff() bool {
	return u.Role != RolePatient
}

// StaffTableName and PatientTableName name the two credential tables.
const (
	StaffTableName   = "staff"
	PatientTableName = "patients"
)

// StaffHeader is the column order of the staff table.
var StaffHeader = []string{"id", "name", "role", "gender", "age", "passwordHash"}

// PatientHeader is the column order of the patients table.
var PatientHeader = []string{"id", "name", "dateOfBirth", "gender", "bloodType", "email", "passwordHash"}

// StaffRow serializes a staff member in staff table column order.
func (u User) StaffRow() []string {
	return []string{
		u.ID,
		u.Name,
		string(u.Role),
		u.Gender,
		strconv.Itoa(u.Age),
		u.PasswordHash,
	}
}

// PatientRow serializes a patient in patients table column order.
func (u User) PatientRow() []string {
	return []string{
		u.ID,
		u.Name,
		u.DateOfBirth,
		u.Gender,
		u.BloodType,
		u.Email,
		u.PasswordHash,
	}
}

// StaffFromRow parses one staff table row.
func StaffFromRow(row []string) (User, error) {
	if len(row) != len(StaffHeader) {
		return User{}, fmt.Errorf("staff row has %d columns, want %d", len(row), len(StaffHeader))
	}
	age, err := strconv.Atoi(row[4])
	if err != nil {
		return User{}, fmt.Errorf("failed to parse staff age: %w", err)
	}
	return User{
		ID:           row[0],
		Name:         row[1],
		Role:         Role(row[2]),
		Gender:       row[3],
		Age:          age,
		PasswordHash: row[5],
	}, nil
}

// PatientFromRow parses one patients table row.
func PatientFromRow(row []string) (User, error) {
	if len(row) != len(PatientHeader) {
		return User{}, fmt.Errorf("patient row has %d columns, want %d", len(row), len(PatientHeader))
	}
	return User{
		ID:           row[0],
		Name:         row[1],
		Role:         RolePatient,
		DateOfBirth:  row[2],
		Gender:       row[3],
		BloodType:    row[4],
		Email:        row[5],
		PasswordHash: row[6],
	}, nil
}
