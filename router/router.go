package router

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/princinho/todoapi/controllers"
	"github.com/princinho/todoapi/middleware"
	"github.com/princinho/todoapi/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Users  *services.UserService
	Todos  *services.TodoService
	Tokens *services.TokenService
}

// New wires every route onto a fresh engine. Nothing global is touched
// besides the prometheus default registry.
func New(allowedOrigins []string, svc Services) *gin.Engine {
	r := gin.New()

	origins := map[string]bool{}
	for _, origin := range allowedOrigins {
		origins[origin] = true
	}
	log.Printf("Allowed origins: %v", allowedOrigins)
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return origins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.AuthHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.AuthHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/users", controllers.SignUp(svc.Users))
	r.POST("/users/login", controllers.Login(svc.Users))

	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(svc.Tokens))
	{
		auth.GET("/users/me", controllers.GetMe(svc.Users))
		auth.DELETE("/users/me/token", controllers.LogOut(svc.Users))

		auth.POST("/todos", controllers.CreateTodo(svc.Todos))
		auth.GET("/todos", controllers.GetTodos(svc.Todos))
		auth.GET("/todos/:id", controllers.GetTodo(svc.Todos))
		auth.DELETE("/todos/:id", controllers.DeleteTodo(svc.Todos))
		auth.PATCH("/todos/:id", controllers.UpdateTodo(svc.Todos))
	}

	return r
}
