package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/todoapi/dto"
	"github.com/princinho/todoapi/middleware"
	"github.com/princinho/todoapi/services"
)

// POST /users
func SignUp(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CredentialsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			middleware.BadRequest(c, err)
			return
		}

		user, token, err := users.SignUp(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.Header(middleware.AuthHeader, token)
		c.JSON(http.StatusOK, user.Public())
	}
}

// GET /users/me
func GetMe(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByID(c.Request.Context(), middleware.CurrentUser(c).ID)
		if errors.Is(err, services.ErrNotFound) {
			err = services.ErrUnauthorized
		}
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, user.Public())
	}
}

// DELETE /users/me/token
func LogOut(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if err := users.LogOut(c.Request.Context(), user, middleware.CurrentToken(c)); err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.Status(http.StatusOK)
	}
}
