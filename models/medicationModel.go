package models

import (
	"fmt"
	"strconv"
	"time"
)

// Medication model
type Medication struct {
	Name          string
	InitialStock  int
	LowStockAlert int
	CurrentStock  int
	Price         float64
}

func (Medication) TableName() string {
	return "medications"
}

// MedicationHeader is the column order of the medications table.
var MedicationHeader = []string{"name", "initialStock", "lowStockLevelAlert", "currentStock", "price"}

// IsLowStock reports whether the current stock has reached the alert level.
func (m Medication) IsLowStock() bool {
	return m.CurrentStock <= m.LowStockAlert
}

// Row serializes the medication in table column order.
func (m Medication) Row() []string {
	return []string{
		m.Name,
		strconv.Itoa(m.InitialStock),
		strconv.Itoa(m.LowStockAlert),
		strconv.Itoa(m.CurrentStock),
		FormatMoney(m.Price),
	}
}

// MedicationFromRow parses one medications table row.
func MedicationFromRow(row []string) (Medication, error) {
	if len(row) != len(MedicationHeader) {
		return Medication{}, fmt.Errorf("medication row has %d columns, want %d", len(row), len(MedicationHeader))
	}
	initial, err := strconv.Atoi(row[1])
	if err != nil {
		return Medication{}, fmt.Errorf("failed to parse initial stock: %w", err)
	}
	alert, err := strconv.Atoi(row[2])
	if err != nil {
		return Medication{}, fmt.Errorf("failed to parse low stock alert: %w", err)
	}
	current, err := strconv.Atoi(row[3])
	if err != nil {
		return Medication{}, fmt.Errorf("failed to parse current stock: %w", err)
	}
	price, err := ParseMoney(row[4])
	if err != nil {
		return Medication{}, fmt.Errorf("failed to parse price: %w", err)
	}
	return Medication{
		Name:          row[0],
		InitialStock:  initial,
		LowStockAlert: alert,
		CurrentStock:  current,
		Price:         price,
	}, nil
}

// ReplenishStatus represents the lifecycle state of a replenish request
type ReplenishStatus string

const (
	ReplenishPending  ReplenishStatus = "PENDING"
	ReplenishApproved ReplenishStatus = "APPROVED"
	ReplenishDenied   ReplenishStatus = "DENIED"
)

// Terminal reports whether no further transition is allowed from s.
func (s ReplenishStatus) Terminal() bool {
	return s == ReplenishApproved || s == ReplenishDenied
}

// ReplenishRequest model
type ReplenishRequest struct {
	ID             int
	StaffID        string
	MedicationName string
	Status         ReplenishStatus
	Amount         int
	Date           time.Time
}

func (ReplenishRequest) TableName() string {
	return "replenish_requests"
}

// ReplenishHeader is the column order of the replenish requests table.
var ReplenishHeader = []string{"id", "staffId", "medicationId", "status", "amount", "date"}

// Row serializes the request in table column order.
func (r ReplenishRequest) Row() []string {
	return []string{
		strconv.Itoa(r.ID),
		r.StaffID,
		r.MedicationName,
		string(r.Status),
		strconv.Itoa(r.Amount),
		r.Date.Format(DateLayout),
	}
}

// ReplenishFromRow parses one replenish requests table row.
func ReplenishFromRow(row []string) (ReplenishRequest, error) {
	if len(row) != len(ReplenishHeader) {
		return ReplenishRequest{}, fmt.Errorf("replenish row has %d columns, want %d", len(row), len(ReplenishHeader))
	}
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return ReplenishRequest{}, fmt.Errorf("failed to parse request id: %w", err)
	}
	amount, err := strconv.Atoi(row[4])
	if err != nil {
		return ReplenishRequest{}, fmt.Errorf("failed to parse amount: %w", err)
	}
	date, err := time.Parse(DateLayout, row[5])
	if err != nil {
		return ReplenishRequest{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return ReplenishRequest{
		ID:             id,
		StaffID:        row[1],
		MedicationName: row[2],
		Status:         ReplenishStatus(row[3]),
		Amount:         amount,
		Date:           date,
	}, nil
}
