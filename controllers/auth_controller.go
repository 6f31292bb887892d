package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/todoapi/dto"
	"github.com/princinho/todoapi/middleware"
	"github.com/princinho/todoapi/services"
)

// POST /users/login
func Login(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CredentialsDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			middleware.BadRequest(c, err)
			return
		}

		user, token, err := users.LogIn(c.Request.Context(), body.Email, body.Password)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.Header(middleware.AuthHeader, token)
		c.JSON(http.StatusOK, user.Public())
	}
}
