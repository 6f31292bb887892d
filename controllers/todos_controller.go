package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/todoapi/dto"
	"github.com/princinho/todoapi/middleware"
	"github.com/princinho/todoapi/services"
)

// POST /todos
func CreateTodo(todos *services.TodoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateTodoDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			middleware.BadRequest(c, err)
			return
		}

		user := middleware.CurrentUser(c)
		todo, err := todos.Create(c.Request.Context(), user.ID, body.Text)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, todo)
	}
}

// GET /todos
func GetTodos(todos *services.TodoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		items, err := todos.ListForOwner(c.Request.Context(), user.ID)
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"todos": items})
	}
}

// GET /todos/:id
func GetTodo(todos *services.TodoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		todo, err := todos.GetByIDForOwner(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"todo": todo})
	}
}

// DELETE /todos/:id
func DeleteTodo(todos *services.TodoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		todo, err := todos.DeleteByIDForOwner(c.Request.Context(), user.ID, c.Param("id"))
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"todo": todo})
	}
}

// PATCH /todos/:id
// Body: { "text": "...", "completed": true }, both optional
func UpdateTodo(todos *services.TodoService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		// A bad or foreign id is a 404 whatever the body holds.
		if _, err := todos.GetByIDForOwner(c.Request.Context(), user.ID, c.Param("id")); err != nil {
			middleware.RespondError(c, err)
			return
		}

		var body dto.UpdateTodoDTO
		if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
			middleware.BadRequest(c, err)
			return
		}

		todo, err := todos.Update(c.Request.Context(), user.ID, c.Param("id"), services.TodoUpdate{
			Text:      body.Text,
			Completed: body.Completed,
		})
		if err != nil {
			middleware.RespondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"todo": todo})
	}
}
