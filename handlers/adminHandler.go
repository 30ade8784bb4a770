package handlers

import (
	"MediCore/models"
	"MediCore/services"
)

type AdminHandler struct {
	Users        services.UserService
	Appointments *services.AppointmentService
	Inventory    *services.InventoryService
	Replenish    *services.ReplenishService
	Auth         *AuthHandler
	Prompt       *Prompter
}

func NewAdminHandler(users services.UserService, appointments *services.AppointmentService, inventory *services.InventoryService, replenish *services.ReplenishService, auth *AuthHandler, prompt *Prompter) *AdminHandler {
	return &AdminHandler{
		Users:        users,
		Appointments: appointments,
		Inventory:    inventory,
		Replenish:    replenish,
		Auth:         auth,
		Prompt:       prompt,
	}
}

// Run drives the administrator menu until the user logs out.
func (h *AdminHandler) Run(user *models.User) {
	for !h.Prompt.EOF() {
		choice := h.Prompt.Menu("Administrator menu for "+user.Name,
			"Log out",
			"Manage staff",
			"Manage patients",
			"View all appointments",
			"Manage medications",
			"Manage replenish requests",
			"Change my password",
		)
		switch choice {
		case 1:
			h.manageStaff()
		case 2:
			h.managePatients()
		case 3:
			h.viewAppointments()
		case 4:
			h.manageMedications()
		case 5:
			h.manageReplenish()
		case 6:
			h.Auth.ChangePassword(user)
		case 0:
			return
		}
	}
}

func (h *AdminHandler) manageStaff() {
	for !h.Prompt.EOF() {
		choice := h.Prompt.Menu("Staff",
			"Back",
			"List staff",
			"Add a staff member",
			"Remove a staff member",
			"Reset a password",
		)
		switch choice {
		case 1:
			h.listStaff()
		case 2:
			h.addStaff()
		case 3:
			h.removeStaff()
		case 4:
			h.resetPassword()
		case 0:
			return
		}
	}
}

func (h *AdminHandler) listStaff() {
	staff := h.Users.ListStaff()
	if len(staff) == 0 {
		h.Prompt.Say("No staff on file.")
		return
	}
	for _, s := range staff {
		h.Prompt.Say("  %-6s %-12s %-24s %s, %d", s.ID, s.Role, s.Name, s.Gender, s.Age)
	}
}

func (h *AdminHandler) addStaff() {
	name := h.Prompt.ReadLine("Full name")
	roleChoice := h.Prompt.Menu("Role", "Cancel", "Doctor", "Pharmacist", "Administrator")
	if roleChoice == 0 || h.Prompt.EOF() {
		return
	}
	roles := []models.Role{models.RoleDoctor, models.RolePharmacist, models.RoleAdmin}
	gender := h.Prompt.ReadLine("Gender")
	age := h.Prompt.ReadInt("Age")
	if h.Prompt.EOF() {
		return
	}

	created, err := h.Users.CreateStaff(name, roles[roleChoice-1], gender, age)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Created %s with ID %s. They sign in with the default password and must change it.", created.Name, created.ID)
}

func (h *AdminHandler) removeStaff() {
	id := h.Prompt.ReadLine("Staff ID")
	if h.Prompt.EOF() {
		return
	}
	user, err := h.Users.GetUser(id)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	if !h.Prompt.Confirm("Remove " + user.Name + " (" + string(user.Role) + ")?") {
		return
	}
	if err := h.Users.RemoveStaff(id); err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Removed %s.", user.Name)
}

func (h *AdminHandler) resetPassword() {
	id := h.Prompt.ReadLine("User ID")
	if h.Prompt.EOF() {
		return
	}
	temp, err := h.Users.ResetPassword(id)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Temporary password for %s: %s", id, temp)
	h.Prompt.Say("They must change it at their next sign in.")
}

func (h *AdminHandler) managePatients() {
	for !h.Prompt.EOF() {
		choice := h.Prompt.Menu("Patients",
			"Back",
			"List patients",
			"Register a patient",
			"Reset a password",
		)
		switch choice {
		case 1:
			h.listPatients()
		case 2:
			h.registerPatient()
		case 3:
			h.resetPassword()
		case 0:
			return
		}
	}
}

func (h *AdminHandler) listPatients() {
	patients := h.Users.ListPatients()
	if len(patients) == 0 {
		h.Prompt.Say("No patients on file.")
		return
	}
	for _, p := range patients {
		h.Prompt.Say("  %-6s %-24s born %s  %s  blood %s  %s", p.ID, p.Name, p.DateOfBirth, p.Gender, p.BloodType, p.Email)
	}
}

func (h *AdminHandler) registerPatient() {
	name := h.Prompt.ReadLine("Full name")
	dateOfBirth := h.Prompt.ReadDate("Date of birth").Format(models.DateLayout)
	gender := h.Prompt.ReadLine("Gender")
	bloodType := h.Prompt.ReadLine("Blood type")
	email := h.Prompt.ReadLine("Email")
	if h.Prompt.EOF() {
		return
	}

	created, err := h.Users.RegisterPatient(name, dateOfBirth, gender, bloodType, email)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Registered %s with ID %s. They sign in with the default password and must change it.", created.Name, created.ID)
}

func (h *AdminHandler) viewAppointments() {
	appointments := h.Appointments.All()
	if len(appointments) == 0 {
		h.Prompt.Say("No appointments on file.")
		return
	}
	for _, a := range appointments {
		h.Prompt.Say("  #%d  %s  doctor %s  patient %s  %s", a.ID, a.DateTime.Format(models.DateTimeLayout), a.DoctorID, a.PatientID, a.Status)
	}
}

func (h *AdminHandler) manageMedications() {
	for !h.Prompt.EOF() {
		choice := h.Prompt.Menu("Medications",
			"Back",
			"List medications",
			"Add a medication",
			"Delete a medication",
			"Update a price",
			"Update a low stock alert level",
			"Add stock",
		)
		switch choice {
		case 1:
			printMedications(h.Prompt, h.Inventory.Medications())
		case 2:
			h.addMedication()
		case 3:
			h.deleteMedication()
		case 4:
			h.updatePrice()
		case 5:
			h.updateAlert()
		case 6:
			h.addStock()
		case 0:
			return
		}
	}
}

func (h *AdminHandler) addMedication() {
	name := h.Prompt.ReadLine("Medication name")
	stock := h.Prompt.ReadInt("Initial stock")
	alert := h.Prompt.ReadInt("Low stock alert level")
	price := h.Prompt.ReadFloat("Price per unit")
	if h.Prompt.EOF() {
		return
	}

	created, err := h.Inventory.AddMedication(models.Medication{
		Name:          name,
		InitialStock:  stock,
		LowStockAlert: alert,
		Price:         price,
	})
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Added %s with %d units at %s.", created.Name, created.CurrentStock, models.FormatMoney(created.Price))
}

func (h *AdminHandler) deleteMedication() {
	name := h.Prompt.ReadLine("Medication name")
	if h.Prompt.EOF() {
		return
	}
	if !h.Prompt.Confirm("Delete " + name + " from the formulary?") {
		return
	}
	if err := h.Inventory.DeleteMedication(name); err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Deleted %s.", name)
}

func (h *AdminHandler) updatePrice() {
	name := h.Prompt.ReadLine("Medication name")
	price := h.Prompt.ReadFloat("New price per unit")
	if h.Prompt.EOF() {
		return
	}
	updated, err := h.Inventory.UpdatePrice(name, price)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("%s now costs %s per unit.", updated.Name, models.FormatMoney(updated.Price))
}

func (h *AdminHandler) updateAlert() {
	name := h.Prompt.ReadLine("Medication name")
	level := h.Prompt.ReadInt("New low stock alert level")
	if h.Prompt.EOF() {
		return
	}
	updated, err := h.Inventory.UpdateLowStockAlert(name, level)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("%s now alerts at %d units.", updated.Name, updated.LowStockAlert)
}

func (h *AdminHandler) addStock() {
	name := h.Prompt.ReadLine("Medication name")
	amount := h.Prompt.ReadInt("Units to add")
	if h.Prompt.EOF() {
		return
	}
	updated, err := h.Inventory.IncreaseStock(name, amount)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("%s now has %d units.", updated.Name, updated.CurrentStock)
}

func (h *AdminHandler) manageReplenish() {
	for !h.Prompt.EOF() {
		choice := h.Prompt.Menu("Replenish requests",
			"Back",
			"List pending requests",
			"List all requests",
			"Approve a request",
			"Deny a request",
		)
		switch choice {
		case 1:
			h.listRequests(h.Replenish.PendingRequests())
		case 2:
			h.listRequests(h.Replenish.AllRequests())
		case 3:
			h.decideRequest(h.Replenish.Approve, "approved")
		case 4:
			h.decideRequest(h.Replenish.Deny, "denied")
		case 0:
			return
		}
	}
}

func (h *AdminHandler) listRequests(requests []models.ReplenishRequest) {
	if len(requests) == 0 {
		h.Prompt.Say("No requests to show.")
		return
	}
	printRequests(h.Prompt, requests)
}

func (h *AdminHandler) decideRequest(decide func(int) (models.ReplenishRequest, error), verb string) {
	id := h.Prompt.ReadInt("Request number")
	if h.Prompt.EOF() {
		return
	}
	request, err := decide(id)
	if err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Request #%d %s.", request.ID, verb)
	if request.Status == models.ReplenishApproved {
		if m, err := h.Inventory.Medication(request.MedicationName); err == nil {
			h.Prompt.Say("%s now has %d units.", m.Name, m.CurrentStock)
		}
	}
}
