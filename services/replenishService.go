package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"MediCore/apperrors"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
)

type ReplenishService struct {
	requests    *repositories.ReplenishRepository
	medications *repositories.MedicationRepository
	notifier    *utils.Notifier
	logger      zerolog.Logger
}

func NewReplenishService(requests *repositories.ReplenishRepository, medications *repositories.MedicationRepository, notifier *utils.Notifier, logger zerolog.Logger) *ReplenishService {
	return &ReplenishService{requests: requests, medications: medications, notifier: notifier, logger: logger}
}

// Submit files a pharmacist request for more stock of a known medication.
func (s *ReplenishService) Submit(staffID, medicationName string, amount int) (models.ReplenishRequest, error) {
	if err := utils.ValidateAmount(amount); err != nil {
		return models.ReplenishRequest{}, apperrors.NewValidation(err.Error())
	}
	if _, err := s.medications.GetByName(medicationName); err != nil {
		return models.ReplenishRequest{}, err
	}
	req, err := s.requests.Create(staffID, medicationName, amount, time.Now())
	if err != nil {
		return models.ReplenishRequest{}, err
	}
	s.logger.Info().Int("request", req.ID).Str("medication", medicationName).
		Int("amount", amount).Str("staff", staffID).Msg("replenish request submitted")
	return req, nil
}

// Approve moves a pending request to APPROVED and adds the requested amount
// to stock. The stock increment happens first; a failed status flip takes it
// back out.
func (s *ReplenishService) Approve(id int) (models.ReplenishRequest, error) {
	req, err := s.requests.GetByID(id)
	if err != nil {
		return models.ReplenishRequest{}, err
	}
	if req.Status != models.ReplenishPending {
		return models.ReplenishRequest{}, apperrors.NewInvalidTransition(
			fmt.Sprintf("cannot move replenish request %d from %s to %s", id, req.Status, models.ReplenishApproved))
	}
	if _, err := s.medications.IncreaseStock(req.MedicationName, req.Amount); err != nil {
		return models.ReplenishRequest{}, err
	}
	updated, err := s.requests.UpdateStatus(id, models.ReplenishApproved)
	if err != nil {
		if _, undoErr := s.medications.DecreaseStock(req.MedicationName, req.Amount); undoErr != nil {
			s.logger.Error().Err(undoErr).Int("request", id).
				Msg("failed to take back stock after approval failure")
		}
		return models.ReplenishRequest{}, err
	}
	s.logger.Info().Int("request", id).Str("medication", req.MedicationName).
		Int("amount", req.Amount).Msg("replenish request approved")
	if err := s.notifier.ReplenishDecision(id, req.MedicationName, req.Amount, true); err != nil {
		s.logger.Error().Err(err).Int("request", id).Msg("failed to send replenish notice")
	}
	return updated, nil
}

// Deny moves a pending request to DENIED without touching stock.
func (s *ReplenishService) Deny(id int) (models.ReplenishRequest, error) {
	updated, err := s.requests.UpdateStatus(id, models.ReplenishDenied)
	if err != nil {
		return models.ReplenishRequest{}, err
	}
	s.logger.Info().Int("request", id).Str("medication", updated.MedicationName).Msg("replenish request denied")
	if err := s.notifier.ReplenishDecision(id, updated.MedicationName, updated.Amount, false); err != nil {
		s.logger.Error().Err(err).Int("request", id).Msg("failed to send replenish notice")
	}
	return updated, nil
}

func (s *ReplenishService) Request(id int) (models.ReplenishRequest, error) {
	return s.requests.GetByID(id)
}

// PendingRequests lists the requests still awaiting a decision, oldest first.
func (s *ReplenishService) PendingRequests() []models.ReplenishRequest {
	return s.requests.ListActive()
}

func (s *ReplenishService) AllRequests() []models.ReplenishRequest {
	return s.requests.ListAll()
}
