package delivery

import (
	"errors"
	"net/http"
	"strings"

	"canteen_service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	useCase domain.UserUseCase
	log     *logrus.Logger
}

func NewUserHandler(uc domain.UserUseCase, logger *logrus.Logger) *UserHandler {
	return &UserHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *UserHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.useCase.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			ErrorResponse(c, http.StatusConflict, err.Error())
			return
		}
		if strings.Contains(err.Error(), "internal error") {
			h.log.Errorf("Registration failed for %s: %v", req.Email, err)
			ErrorResponseWithDetail(c, http.StatusInternalServerError, "Registration failed", err)
			return
		}
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.log.Infof("User %d registered", user.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	token, err := h.useCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			ErrorResponse(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.log.Errorf("Login failed for %s: %v", req.Email, err)
		ErrorResponseWithDetail(c, http.StatusInternalServerError, "Login failed", err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token})
}
