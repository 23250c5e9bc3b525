package handlers

import (
	"devconnector/internal/services"
	"devconnector/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles HTTP requests for profiles and experience entries.
type ProfileHandler struct {
	profileService *services.ProfileService
	authService    *services.AuthService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *services.ProfileService, authService *services.AuthService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		authService:    authService,
	}
}

// RegisterRoutes registers the profile routes. Reads by handle, by user and the
// full listing are public; everything touching the caller's own profile uses requireAuth.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	profileRoutes := router.Group("/profile")
	profileRoutes.Get("/all", h.HandleGetAll)
	profileRoutes.Get("/handle/:handle", h.HandleGetByHandle)
	profileRoutes.Get("/user/:user_id", h.HandleGetByUser)

	profileRoutes.Get("/", requireAuth, h.HandleGetCurrent)
	profileRoutes.Post("/", requireAuth, h.HandleUpsert)
	profileRoutes.Delete("/", requireAuth, h.HandleDeleteAccount)
	profileRoutes.Post("/experience", requireAuth, h.HandleAddExperience)
	profileRoutes.Delete("/experience/:exp_id", requireAuth, h.HandleRemoveExperience)
}

// HandleGetCurrent returns the caller's profile.
func (h *ProfileHandler) HandleGetCurrent(c *fiber.Ctx) error {
	profile, err := h.profileService.GetCurrentProfile(c.UserContext(), userID(c))
	if err != nil {
		return respondError(c, "Could not retrieve profile", err)
	}
	return c.JSON(profile)
}

// HandleGetAll lists every profile.
func (h *ProfileHandler) HandleGetAll(c *fiber.Ctx) error {
	profiles, err := h.profileService.GetAllProfiles(c.UserContext())
	if err != nil {
		return respondError(c, "Could not retrieve profiles", err)
	}
	return c.JSON(profiles)
}

// HandleGetByHandle returns the profile with the handle in the path.
func (h *ProfileHandler) HandleGetByHandle(c *fiber.Ctx) error {
	profile, err := h.profileService.GetProfileByHandle(c.UserContext(), c.Params("handle"))
	if err != nil {
		return respondError(c, "Could not retrieve profile", err)
	}
	return c.JSON(profile)
}

// HandleGetByUser returns the profile owned by the user id in the path.
func (h *ProfileHandler) HandleGetByUser(c *fiber.Ctx) error {
	profile, err := h.profileService.GetProfileByUserID(c.UserContext(), c.Params("user_id"))
	if err != nil {
		return respondError(c, "Could not retrieve profile", err)
	}
	return c.JSON(profile)
}

// HandleUpsert creates or edits the caller's profile.
func (h *ProfileHandler) HandleUpsert(c *fiber.Ctx) error {
	var req validation.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	profile, err := h.profileService.UpsertProfile(c.UserContext(), userID(c), req)
	if err != nil {
		return respondError(c, "Could not save profile", err)
	}
	return c.JSON(profile)
}

// HandleAddExperience adds an experience entry to the caller's profile.
func (h *ProfileHandler) HandleAddExperience(c *fiber.Ctx) error {
	var req validation.ExperienceInput
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}

	profile, err := h.profileService.AddExperience(c.UserContext(), userID(c), req)
	if err != nil {
		return respondError(c, "Could not add experience", err)
	}
	return c.JSON(profile)
}

// HandleRemoveExperience deletes an experience entry from the caller's profile.
func (h *ProfileHandler) HandleRemoveExperience(c *fiber.Ctx) error {
	profile, err := h.profileService.RemoveExperience(c.UserContext(), userID(c), c.Params("exp_id"))
	if err != nil {
		return respondError(c, "Could not remove experience", err)
	}
	return c.JSON(profile)
}

// HandleDeleteAccount deletes the caller's profile and user account.
func (h *ProfileHandler) HandleDeleteAccount(c *fiber.Ctx) error {
	if err := h.authService.DeleteAccount(c.UserContext(), userID(c)); err != nil {
		return respondError(c, "Could not delete account", err)
	}
	return c.JSON(fiber.Map{"success": true})
}
