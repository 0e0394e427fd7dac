package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/models/request_models"
	"storefront/internal/services"
	"storefront/pkg/utils"
)

type AdminController struct {
	adminService services.AdminServiceInterface
	log          *zap.Logger
}

func NewAdminController(adminService services.AdminServiceInterface, log *zap.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		log:          log,
	}
}

// Login godoc
// @Summary Login as the operator
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body request_models.AdminLoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /admin/login [post]
func (a *AdminController) Login(c *gin.Context) {
	var req request_models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.adminService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, a.log, err)
		return
	}

	utils.RespondSuccess(c, token, "Login successful")
}
