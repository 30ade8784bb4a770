package handlers

import (
	"strings"

	"MediCore/models"
	"MediCore/services"
)

type PharmacistHandler struct {
	Inventory *services.InventoryService
	Replenish *services.ReplenishService
	Billing   *services.BillingService
	Auth      *AuthHandler
	Prompt    *Prompter
}

func NewPharmacistHandler(inventory *services.InventoryService, replenish *services.ReplenishService, billing *services.BillingService, auth *AuthHandler, prompt *Prompter) *PharmacistHandler {
	return &PharmacistHandler{
		Inventory: inventory,
		Replenish: replenish,
		Billing:   billing,
		Auth:      auth,
		Prompt:    prompt,
	}
}

// Run drives the pharmacist menu until the user logs out.
func (h *PharmacistHandler) Run(user *models.User) {
	for !h.Prompt.EOF() {
		choice := h.Prompt.Menu("Pharmacist menu for "+user.Name,
			"Log out",
			"View prescriptions awaiting dispense",
			"Dispense a prescription",
			"View medication inventory",
			"View low stock medications",
			"Submit a replenish request",
			"View replenish requests",
			"Change my password",
		)
		switch choice {
		case 1:
			h.viewAwaiting()
		case 2:
			h.dispense()
		case 3:
			printMedications(h.Prompt, h.Inventory.Medications())
		case 4:
			h.viewLowStock()
		case 5:
			h.submitReplenish(user)
		case 6:
			h.viewRequests()
		case 7:
			h.Auth.ChangePassword(user)
		case 0:
			return
		}
	}
}

func (h *PharmacistHandler) viewAwaiting() {
	outcomes := h.Billing.AwaitingDispense()
	if len(outcomes) == 0 {
		h.Prompt.Say("No prescriptions are waiting.")
		return
	}
	for _, o := range outcomes {
		h.Prompt.Say("  Appointment #%d: %s", o.AppointmentID, strings.Join(o.MedicationNames, ", "))
	}
}

func (h *PharmacistHandler) dispense() {
	id := h.Prompt.ReadInt("Appointment number")
	if h.Prompt.EOF() {
		return
	}
	outcome, err := h.Billing.Dispense(id)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Dispensed %s for appointment #%d.", strings.Join(outcome.MedicationNames, ", "), outcome.AppointmentID)
}

func (h *PharmacistHandler) viewLowStock() {
	low := h.Inventory.LowStockMedications()
	if len(low) == 0 {
		h.Prompt.Say("No medications are running low.")
		return
	}
	printMedications(h.Prompt, low)
}

func (h *PharmacistHandler) submitReplenish(user *models.User) {
	name := h.Prompt.ReadLine("Medication name")
	amount := h.Prompt.ReadInt("Amount to order")
	if h.Prompt.EOF() {
		return
	}
	request, err := h.Replenish.Submit(user.ID, name, amount)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Request #%d submitted for %d units of %s.", request.ID, request.Amount, request.MedicationName)
}

func (h *PharmacistHandler) viewRequests() {
	requests := h.Replenish.AllRequests()
	if len(requests) == 0 {
		h.Prompt.Say("No replenish requests yet.")
		return
	}
	printRequests(h.Prompt, requests)
}

func printMedications(p *Prompter, medications []models.Medication) {
	if len(medications) == 0 {
		p.Say("No medications on file.")
		return
	}
	for _, m := range medications {
		marker := ""
		if m.IsLowStock() {
			marker = "  LOW"
		}
		p.Say("  %-20s stock %4d  alert at %3d  price %s%s", m.Name, m.CurrentStock, m.LowStockAlert, models.FormatMoney(m.Price), marker)
	}
}

func printRequests(p *Prompter, requests []models.ReplenishRequest) {
	for _, r := range requests {
		p.Say("  #%d  %s  %d units of %s  by %s  %s", r.ID, r.Date.Format(models.DateLayout), r.Amount, r.MedicationName, r.StaffID, r.Status)
	}
}
