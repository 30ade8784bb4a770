package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Layouts of the date and date-time columns in the CSV tables.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// noneLiteral marks an empty list column in the medical records table.
const noneLiteral = "None"

// FormatMoney renders a money value with two decimal places.
func FormatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseMoney parses a money column.
func ParseMoney(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse money value %q: %w", s, err)
	}
	return v, nil
}

// JoinList renders a semicolon separated list column. A nil list renders
// as the empty string.
func JoinList(items []string) string {
	return strings.Join(items, ";")
}

// SplitList parses a semicolon separated list column.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ";")
}

// JoinListOrNone renders a semicolon separated list column where an empty
// list serializes as the literal None.
func JoinListOrNone(items []string) string {
	if len(items) == 0 {
		return noneLiteral
	}
	return strings.Join(items, ";")
}

// SplitListOrNone parses a list column written by JoinListOrNone.
func SplitListOrNone(s string) []string {
	if s == "" || s == noneLiteral {
		return nil
	}
	return strings.Split(s, ";")
}

// JoinMoneyList renders a semicolon separated list of money values.
func JoinMoneyList(fees []float64) string {
	parts := make([]string, len(fees))
	for i, fee := range fees {
		parts[i] = FormatMoney(fee)
	}
	return strings.Join(parts, ";")
}

// ParseMoneyList parses a column written by JoinMoneyList.
func ParseMoneyList(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	fees := make([]float64, len(parts))
	for i, part := range parts {
		fee, err := ParseMoney(part)
		if err != nil {
			return nil, err
		}
		fees[i] = fee
	}
	return fees, nil
}
