package utils

import (
	"os"
	"path/filepath"
)

// sessionFileName is the ticket file kept inside the data directory.
const sessionFileName = ".session"

// SaveSessionTicket writes the ticket next to the CSV tables so the next
// start of the console can resume the login.
func SaveSessionTicket(dataDir, ticket string) error {
	return os.WriteFile(filepath.Join(dataDir, sessionFileName), []byte(ticket), 0o600)
}

// LoadSessionTicket reads a previously saved ticket. A missing file reads as
// an empty ticket.
func LoadSessionTicket(dataDir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, sessionFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return string(data), nil
}

// ClearSessionTicket removes the saved ticket.
func ClearSessionTicket(dataDir string) error {
	if err := os.Remove(filepath.Join(dataDir, sessionFileName)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
