package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/internal/services"
	"storefront/pkg/utils"
)

type ProductController struct {
	catalogService services.CatalogServiceInterface
	log            *zap.Logger
}

func NewProductController(catalogService services.CatalogServiceInterface, log *zap.Logger) *ProductController {
	return &ProductController{
		catalogService: catalogService,
		log:            log,
	}
}

// ListProducts godoc
// @Summary List products
// @Tags Products
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /products [get]
func (p *ProductController) ListProducts(c *gin.Context) {
	products, err := p.catalogService.ListProducts(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, p.log, err)
		return
	}

	utils.RespondSuccess(c, products, "Products fetched successfully")
}

func (p *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := p.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, p.log, err)
		return
	}

	utils.RespondSuccess(c, product, "Product fetched successfully")
}
