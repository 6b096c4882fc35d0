package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civic-reports/internal/http/middleware"
	"civic-reports/internal/model"
	"civic-reports/internal/service"
)

func (h *Handler) register(c *gin.Context) {
	var body struct {
		Username    string  `json:"username" binding:"required,max=150"`
		Email       string  `json:"email" binding:"required,email"`
		Password    string  `json:"password" binding:"required,min=6"`
		FirstName   string  `json:"first_name,omitempty"`
		LastName    string  `json:"last_name,omitempty"`
		PhoneNumber *string `json:"phone_number,omitempty"`
		Role        string  `json:"role,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username:    body.Username,
		Email:       body.Email,
		Password:    body.Password,
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		PhoneNumber: body.PhoneNumber,
		Role:        model.Role(body.Role),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(user))
}

func (h *Handler) login(c *gin.Context) {
	var body struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	token, user, err := h.auth.Login(c.Request.Context(), body.Username, body.Password)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"token": token, "user": user}))
}

func (h *Handler) me(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"user_id": principal.UserID,
		"role":    principal.Role,
	}))
}
