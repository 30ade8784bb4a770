package handlers

import (
	"MediCore/models"
	"MediCore/services"
)

type AuthHandler struct {
	UserService services.UserService
	Prompt      *Prompter
}

func NewAuthHandler(userService services.UserService, prompt *Prompter) *AuthHandler {
	return &AuthHandler{
		UserService: userService,
		Prompt:      prompt,
	}
}

// Resume returns the user behind a saved session ticket, if any.
func (h *AuthHandler) Resume() *models.User {
	user, err := h.UserService.ResumeSession()
	if err != nil || user == nil {
		return nil
	}
	h.Prompt.Say("Welcome back, %s.", user.Name)
	return user
}

// Login walks the operator through sign in, including the forced password
// change on default or temporary passwords. Returns nil when input ends.
func (h *AuthHandler) Login() *models.User {
	for {
		id := h.Prompt.ReadLine("User ID")
		if h.Prompt.EOF() {
			return nil
		}
		password := h.Prompt.ReadLine("Password")
		if h.Prompt.EOF() {
			return nil
		}

		user, mustChange, err := h.UserService.Login(id, password)
		if err != nil {
			h.Prompt.Fail(err)
			continue
		}

		if mustChange {
			h.Prompt.Say("Your password must be changed before you continue.")
			if !h.pickNewPassword(user.ID, password) {
				return nil
			}
		}

		if err := h.UserService.StartSession(*user); err != nil {
			h.Prompt.Say("Warning: could not save your session: %v", err)
		}
		h.Prompt.Say("Signed in as %s (%s).", user.Name, user.Role)
		return user
	}
}

// ChangePassword lets a signed in user pick a new password.
func (h *AuthHandler) ChangePassword(user *models.User) {
	current := h.Prompt.ReadLine("Current password")
	newPassword := h.Prompt.ReadLine("New password")
	confirm := h.Prompt.ReadLine("Confirm new password")
	if h.Prompt.EOF() {
		return
	}
	if newPassword != confirm {
		h.Prompt.Say("Passwords do not match.")
		return
	}
	if err := h.UserService.ChangePassword(user.ID, current, newPassword); err != nil {
		h.Prompt.Fail(err)
		return
	}
	h.Prompt.Say("Password updated.")
}

// Logout ends the saved session.
func (h *AuthHandler) Logout() {
	if err := h.UserService.EndSession(); err != nil {
		h.Prompt.Fail(err)
	}
	h.Prompt.Say("Signed out.")
}

func (h *AuthHandler) pickNewPassword(id, currentPassword string) bool {
	for {
		newPassword := h.Prompt.ReadLine("New password")
		if h.Prompt.EOF() {
			return false
		}
		confirm := h.Prompt.ReadLine("Confirm new password")
		if h.Prompt.EOF() {
			return false
		}
		if newPassword != confirm {
			h.Prompt.Say("Passwords do not match.")
			continue
		}
		if err := h.UserService.ChangePassword(id, currentPassword, newPassword); err != nil {
			h.Prompt.Fail(err)
			continue
		}
		h.Prompt.Say("Password updated.")
		return true
	}
}
