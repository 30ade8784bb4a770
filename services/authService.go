package services

import (
	"fmt"

	"github.com/rs/zerolog"

	"MediCore/apperrors"
	"MediCore/config"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
)

// UserService owns login, password management, account lifecycle and the
// saved console session.
type UserService interface {
	Login(id, password string) (user *models.User, mustChangePassword bool, err error)
	ChangePassword(id, currentPassword, newPassword string) error
	ResetPassword(id string) (tempPassword string, err error)
	CreateStaff(name string, role models.Role, gender string, age int) (models.User, error)
	RegisterPatient(name, dateOfBirth, gender, bloodType, email string) (models.User, error)
	RemoveStaff(id string) error
	GetUser(id string) (*models.User, error)
	ListStaff() []models.User
	ListPatients() []models.User
	StartSession(user models.User) error
	ResumeSession() (*models.User, error)
	EndSession() error
}

type userService struct {
	users    repositories.UserRepository
	throttle *utils.LoginThrottle
	cfg      *config.AppConfig
	logger   zerolog.Logger
}

func NewUserService(users repositories.UserRepository, throttle *utils.LoginThrottle, cfg *config.AppConfig, logger zerolog.Logger) UserService {
	return &userService{users: users, throttle: throttle, cfg: cfg, logger: logger}
}

// Login checks the id against the staff table first and the patients table
// second. Unknown ids and wrong passwords fail the same way. Logging in with
// the default or a temporary password forces a change.
func (s *userService) Login(id, password string) (*models.User, bool, error) {
	if !s.throttle.Allow() {
		s.logger.Warn().Str("user", id).Msg("login attempt throttled")
		return nil, false, apperrors.NewUnauthorized("too many login attempts, slow down")
	}
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, false, apperrors.NewUnauthorized("invalid credentials")
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		s.logger.Warn().Str("user", id).Msg("failed login attempt")
		return nil, false, apperrors.NewUnauthorized("invalid credentials")
	}
	s.logger.Info().Str("user", id).Str("role", string(user.Role)).Msg("login")
	return user, utils.IsTemporaryPassword(password), nil
}

func (s *userService) ChangePassword(id, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	if !utils.CheckPassword(currentPassword, user.PasswordHash) {
		return apperrors.NewUnauthorized("current password does not match")
	}
	if err := utils.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidation(err.Error())
	}
	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	if err := s.users.UpdatePassword(id, hash); err != nil {
		return err
	}
	s.logger.Info().Str("user", id).Msg("password changed")
	return nil
}

// ResetPassword sets a random temporary password on the account and returns
// it. The next login forces a change.
func (s *userService) ResetPassword(id string) (string, error) {
	if _, err := s.users.FindByID(id); err != nil {
		return "", err
	}
	temp := utils.GenerateTempPassword()
	hash, err := utils.HashPassword(temp)
	if err != nil {
		return "", fmt.Errorf("failed to reset password: %w", err)
	}
	if err := s.users.UpdatePassword(id, hash); err != nil {
		return "", err
	}
	s.logger.Info().Str("user", id).Msg("password reset")
	return temp, nil
}

// CreateStaff opens a staff account with the next free id for the role and
// the default password.
func (s *userService) CreateStaff(name string, role models.Role, gender string, age int) (models.User, error) {
	user := models.User{
		ID:     utils.NextUserID(role, s.users.AllIDs()),
		Name:   name,
		Role:   role,
		Gender: gender,
		Age:    age,
	}
	if err := utils.ValidateNewStaff(user); err != nil {
		return models.User{}, apperrors.NewValidation(err.Error())
	}
	hash, err := utils.HashPassword(utils.DefaultPassword)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to create staff account: %w", err)
	}
	user.PasswordHash = hash
	if err := s.users.Create(user); err != nil {
		return models.User{}, err
	}
	s.logger.Info().Str("user", user.ID).Str("role", string(role)).Msg("staff account created")
	return user, nil
}

// RegisterPatient opens a patient account with the next free patient id and
// the default password.
func (s *userService) RegisterPatient(name, dateOfBirth, gender, bloodType, email string) (models.User, error) {
	user := models.User{
		ID:          utils.NextUserID(models.RolePatient, s.users.AllIDs()),
		Name:        name,
		Role:        models.RolePatient,
		DateOfBirth: dateOfBirth,
		Gender:      gender,
		BloodType:   bloodType,
		Email:       email,
	}
	if err := utils.ValidateNewPatient(user); err != nil {
		return models.User{}, apperrors.NewValidation(err.Error())
	}
	hash, err := utils.HashPassword(utils.DefaultPassword)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to register patient: %w", err)
	}
	user.PasswordHash = hash
	if err := s.users.Create(user); err != nil {
		return models.User{}, err
	}
	s.logger.Info().Str("user", user.ID).Msg("patient registered")
	return user, nil
}

func (s *userService) RemoveStaff(id string) error {
	user, err := s.users.FindByID(id)
	if err != nil {
		return err
	}
	if !user.IsStaff() {
		return apperrors.NewValidation(id + " is not a staff account")
	}
	if err := s.users.Delete(id); err != nil {
		return err
	}
	s.logger.Info().Str("user", id).Msg("staff account removed")
	return nil
}

func (s *userService) GetUser(id string) (*models.User, error) {
	return s.users.FindByID(id)
}

func (s *userService) ListStaff() []models.User {
	return s.users.ListStaff()
}

func (s *userService) ListPatients() []models.User {
	return s.users.ListPatients()
}

// StartSession saves an encrypted session ticket so the next start of the
// console resumes this login. Without a session key this does nothing.
func (s *userService) StartSession(user models.User) error {
	if !s.cfg.SessionEnabled() {
		return nil
	}
	ticket, err := utils.GenerateSessionTicket([]byte(s.cfg.SessionKey), user.ID, string(user.Role), s.cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	return utils.SaveSessionTicket(s.cfg.DataDir, ticket)
}

// ResumeSession returns the user of a valid saved ticket, or nil when there
// is nothing to resume. Stale and tampered tickets are dropped silently.
func (s *userService) ResumeSession() (*models.User, error) {
	if !s.cfg.SessionEnabled() {
		return nil, nil
	}
	ticket, err := utils.LoadSessionTicket(s.cfg.DataDir)
	if err != nil || ticket == "" {
		return nil, err
	}
	claims, err := utils.ValidateSessionTicket([]byte(s.cfg.SessionKey), ticket)
	if err != nil {
		_ = utils.ClearSessionTicket(s.cfg.DataDir)
		return nil, nil
	}
	user, err := s.users.FindByID(claims.UserID)
	if err != nil || string(user.Role) != claims.Role {
		_ = utils.ClearSessionTicket(s.cfg.DataDir)
		return nil, nil
	}
	s.logger.Info().Str("user", user.ID).Msg("session resumed")
	return user, nil
}

func (s *userService) EndSession() error {
	return utils.ClearSessionTicket(s.cfg.DataDir)
}
