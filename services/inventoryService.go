package services

import (
	"github.com/rs/zerolog"

	"MediCore/apperrors"
	"MediCore/models"
	"MediCore/repositories"
	"MediCore/utils"
)

type InventoryService struct {
	medications *repositories.MedicationRepository
	notifier    *utils.Notifier
	logger      zerolog.Logger
}

func NewInventoryService(medications *repositories.MedicationRepository, notifier *utils.Notifier, logger zerolog.Logger) *InventoryService {
	return &InventoryService{medications: medications, notifier: notifier, logger: logger}
}

// AddMedication puts a new entry into the formulary. Current stock starts at
// the initial stock.
func (s *InventoryService) AddMedication(m models.Medication) (models.Medication, error) {
	if err := utils.ValidateMedication(m); err != nil {
		return models.Medication{}, apperrors.NewValidation(err.Error())
	}
	m.CurrentStock = m.InitialStock
	if err := s.medications.Add(m, true); err != nil {
		return models.Medication{}, err
	}
	s.logger.Info().Str("medication", m.Name).Int("stock", m.CurrentStock).Msg("medication added")
	return m, nil
}

func (s *InventoryService) DeleteMedication(name string) error {
	if err := s.medications.Delete(name); err != nil {
		return err
	}
	s.logger.Info().Str("medication", name).Msg("medication deleted")
	return nil
}

func (s *InventoryService) Medication(name string) (models.Medication, error) {
	return s.medications.GetByName(name)
}

func (s *InventoryService) Medications() []models.Medication {
	return s.medications.GetAll()
}

func (s *InventoryService) IncreaseStock(name string, amount int) (models.Medication, error) {
	if err := utils.ValidateAmount(amount); err != nil {
		return models.Medication{}, apperrors.NewValidation(err.Error())
	}
	return s.medications.IncreaseStock(name, amount)
}

// DecreaseStock removes units and reports whether the medication now sits at
// or below its alert level. Crossing the level fires one alert.
func (s *InventoryService) DecreaseStock(name string, amount int) (models.Medication, bool, error) {
	if err := utils.ValidateAmount(amount); err != nil {
		return models.Medication{}, false, apperrors.NewValidation(err.Error())
	}
	before, err := s.medications.GetByName(name)
	if err != nil {
		return models.Medication{}, false, err
	}
	m, err := s.medications.DecreaseStock(name, amount)
	if err != nil {
		return models.Medication{}, false, err
	}
	if m.IsLowStock() && !before.IsLowStock() {
		s.logger.Warn().Str("medication", m.Name).Int("currentStock", m.CurrentStock).
			Int("alertLevel", m.LowStockAlert).Msg("medication crossed its low stock level")
		if err := s.notifier.LowStockAlert(m.Name, m.CurrentStock, m.LowStockAlert); err != nil {
			s.logger.Error().Err(err).Str("medication", m.Name).Msg("failed to send low stock alert")
		}
	}
	return m, m.IsLowStock(), nil
}

func (s *InventoryService) UpdateLowStockAlert(name string, value int) (models.Medication, error) {
	if value < 0 {
		return models.Medication{}, apperrors.NewValidation("alert level cannot be negative")
	}
	return s.medications.UpdateLowStockAlert(name, value)
}

func (s *InventoryService) UpdatePrice(name string, price float64) (models.Medication, error) {
	if price < 0 {
		return models.Medication{}, apperrors.NewValidation("price cannot be negative")
	}
	return s.medications.UpdatePrice(name, price)
}

func (s *InventoryService) IsLowStock(name string) (bool, error) {
	return s.medications.IsLowStock(name)
}

// LowStockMedications lists the formulary entries at or below their alert
// level.
func (s *InventoryService) LowStockMedications() []models.Medication {
	low := make([]models.Medication, 0)
	for _, m := range s.medications.GetAll() {
		if m.IsLowStock() {
			low = append(low, m)
		}
	}
	return low
}
