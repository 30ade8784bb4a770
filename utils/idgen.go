package utils

import (
	"fmt"
	"strconv"
	"strings"

	"MediCore/models"
)

// Role prefixes of user ids.
const (
	PatientIDPrefix    = "P"
	DoctorIDPrefix     = "D"
	PharmacistIDPrefix = "PH"
	AdminIDPrefix      = "A"
)

// RolePrefix returns the id prefix of the given role.
func RolePrefix(role models.Role) string {
	switch role {
	case models.RoleDoctor:
		return DoctorIDPrefix
	case models.RolePharmacist:
		return PharmacistIDPrefix
	case models.RoleAdmin:
		return AdminIDPrefix
	default:
		return PatientIDPrefix
	}
}

// NextUserID builds the next free id for the role given the ids already
// taken. Patient ids carry four digits, staff ids three.
func NextUserID(role models.Role, taken []string) string {
	prefix := RolePrefix(role)
	width := 3
	if role == models.RolePatient {
		width = 4
	}
	max := 0
	for _, id := range taken {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%0*d", prefix, width, max+1)
}
