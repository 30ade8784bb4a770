package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediCore/apperrors"
	"MediCore/database"
	"MediCore/models"
	"MediCore/repositories"
)

func newUserRepo(t *testing.T, store *database.Store) repositories.UserRepository {
	t.Helper()
	repo, err := repositories.NewUserRepository(store)
	require.NoError(t, err)
	return repo
}

func staffUser(id string, role models.Role) models.User {
	return models.User{
		ID:           id,
		Name:         "Alex Reed",
		Role:         role,
		Gender:       "Other",
		Age:          40,
		PasswordHash: "hash",
	}
}

func patientUser(id string) models.User {
	return models.User{
		ID:           id,
		Name:         "Sam Poole",
		Role:         models.RolePatient,
		Gender:       "Female",
		DateOfBirth:  "1990-05-12",
		BloodType:    "O+",
		Email:        "sam.poole@example.com",
		PasswordHash: "hash",
	}
}

func TestUserRepositoryRoutesByRole(t *testing.T) {
	store := newTestStore(t)
	repo := newUserRepo(t, store)

	require.NoError(t, repo.Create(staffUser("D001", models.RoleDoctor)))
	require.NoError(t, repo.Create(patientUser("P0001")))

	assert.Len(t, repo.ListStaff(), 1)
	assert.Len(t, repo.ListPatients(), 1)

	staffRows, err := store.ReadTable(models.StaffTableName)
	require.NoError(t, err)
	assert.Len(t, staffRows, 1)

	patientRows, err := store.ReadTable(models.PatientTableName)
	require.NoError(t, err)
	assert.Len(t, patientRows, 1)
}

func TestUserRepositoryFindAcrossTables(t *testing.T) {
	repo := newUserRepo(t, newTestStore(t))
	require.NoError(t, repo.Create(staffUser("A001", models.RoleAdmin)))
	require.NoError(t, repo.Create(patientUser("P0001")))

	admin, err := repo.FindByID("A001")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	patient, err := repo.FindByID("P0001")
	require.NoError(t, err)
	assert.Equal(t, models.RolePatient, patient.Role)

	_, err = repo.FindByID("X999")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUserRepositoryRejectsDuplicateIDs(t *testing.T) {
	repo := newUserRepo(t, newTestStore(t))
	require.NoError(t, repo.Create(staffUser("D001", models.RoleDoctor)))

	err := repo.Create(staffUser("D001", models.RolePharmacist))
	assert.True(t, apperrors.Is(err, apperrors.KindDuplicateKey))

	clash := patientUser("D001")
	err = repo.Create(clash)
	assert.True(t, apperrors.Is(err, apperrors.KindDuplicateKey), "ids are unique across both tables")
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	store := newTestStore(t)
	repo := newUserRepo(t, store)
	require.NoError(t, repo.Create(patientUser("P0001")))

	require.NoError(t, repo.UpdatePassword("P0001", "newhash"))

	u, err := repo.FindByID("P0001")
	require.NoError(t, err)
	assert.Equal(t, "newhash", u.PasswordHash)

	reloaded := newUserRepo(t, store)
	u, err = reloaded.FindByID("P0001")
	require.NoError(t, err)
	assert.Equal(t, "newhash", u.PasswordHash)

	err = repo.UpdatePassword("X999", "hash")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUserRepositoryDelete(t *testing.T) {
	repo := newUserRepo(t, newTestStore(t))
	require.NoError(t, repo.Create(staffUser("D001", models.RoleDoctor)))

	require.NoError(t, repo.Delete("D001"))
	_, err := repo.FindByID("D001")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	err = repo.Delete("D001")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUserRepositoryAllIDs(t *testing.T) {
	repo := newUserRepo(t, newTestStore(t))
	require.NoError(t, repo.Create(staffUser("D001", models.RoleDoctor)))
	require.NoError(t, repo.Create(staffUser("PH001", models.RolePharmacist)))
	require.NoError(t, repo.Create(patientUser("P0001")))

	assert.Equal(t, []string{"D001", "P0001", "PH001"}, repo.AllIDs())
}

func TestUserRepositoryReloadKeepsProfiles(t *testing.T) {
	store := newTestStore(t)
	repo := newUserRepo(t, store)
	require.NoError(t, repo.Create(patientUser("P0001")))

	reloaded := newUserRepo(t, store)
	u, err := reloaded.FindByID("P0001")
	require.NoError(t, err)
	assert.Equal(t, "Sam Poole", u.Name)
	assert.Equal(t, "1990-05-12", u.DateOfBirth)
	assert.Equal(t, "O+", u.BloodType)
	assert.Equal(t, "sam.poole@example.com", u.Email)
}
