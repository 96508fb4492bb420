package delivery

import (
	"net/http"

	"canteen_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type MenuHandler struct {
	useCase domain.MenuUseCase
	log     *logrus.Logger
}

func NewMenuHandler(uc domain.MenuUseCase, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *MenuHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/menu", h.ListMenu)
}

func (h *MenuHandler) ListMenu(c *gin.Context) {
	items, err := h.useCase.ListMenu(c.Request.Context())
	if err != nil {
		h.log.Errorf("Failed to list menu: %v", err)
		ErrorResponseWithDetail(c, http.StatusInternalServerError, "Failed to fetch menu", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"menuItems": items})
}
