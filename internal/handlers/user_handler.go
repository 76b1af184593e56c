package handlers

import (
	"gorent/internal/apperrors"
	"gorent/internal/middleware"
	"gorent/internal/models"
	"gorent/internal/services"
	"gorent/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// targetUser resolves the path id and enforces the self-or-admin rule.
func (h *UserHandler) targetUser(c *gin.Context) (primitive.ObjectID, bool) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid user ID"))
		return primitive.NilObjectID, false
	}

	callerID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentUserRole(c)
	if callerID != targetID && role != models.UserRoleAdmin {
		utils.RespondError(c, apperrors.Forbidden("You can only access your own profile"))
		return primitive.NilObjectID, false
	}

	return targetID, true
}

func (h *UserHandler) GetAllUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	role := models.UserRole(c.Query("role"))

	users, total, err := h.userService.GetAllUsers(c.Request.Context(), role, params)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Users retrieved successfully", users, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

func (h *UserHandler) GetPersonalInfo(c *gin.Context) {
	targetID, ok := h.targetUser(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), targetID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Personal info retrieved successfully", user)
}

func (h *UserHandler) UpdatePersonalInfo(c *gin.Context) {
	targetID, ok := h.targetUser(c)
	if !ok {
		return
	}

	var request services.UpdatePersonalInfoRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	user, err := h.userService.UpdatePersonalInfo(c.Request.Context(), targetID, &request)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Personal info updated successfully", user)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	targetID, ok := h.targetUser(c)
	if !ok {
		return
	}

	var request services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid request body"))
		return
	}

	// An admin resetting another user's password does not know the
	// current one.
	callerID, _ := middleware.CurrentUserID(c)
	role, _ := middleware.CurrentUserRole(c)
	skipCurrentCheck := role == models.UserRoleAdmin && callerID != targetID

	if err := h.userService.ChangePassword(c.Request.Context(), targetID, &request, skipCurrentCheck); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "Password changed successfully", nil)
}

// SetRole promotes or demotes a user, admin only.
func (h *UserHandler) SetRole(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.Validation("Invalid user ID"))
		return
	}

	var request struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&request); err != nil || request.Role == "" {
		utils.RespondError(c, apperrors.Validation("role is required"))
		return
	}

	user, err := h.userService.SetRole(c.Request.Context(), targetID, models.UserRole(request.Role))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.SuccessResponse(c, "User role updated", user)
}
