package server

import (
	"context"
	"net/http"
	"time"

	"chatbot-svc/src/internal/dependency"
	"chatbot-svc/src/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(deps *dependency.Manager) {
	router := deps.Router
	router.Use(enableCORS, middleware.RequestID(), middleware.AccessLog())

	setupRootEndpoint(router, deps)
	setupHealthEndpoint(deps)
	setupUserRoutes(router, deps)
	setupSessionRoutes(router, deps)
}

func setupRootEndpoint(router *gin.Engine, deps *dependency.Manager) {
	router.GET("/", func(c *gin.Context) {
		queueStatus := "disabled"
		if deps.Connections.RabbitMQ != nil {
			queueStatus = "ok"
			if !deps.Connections.RabbitMQ.Healthy() {
				queueStatus = "closed"
			}
		}
		_ = queueStatus

		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Chatbot API!"})
	})
}

func setupHealthEndpoint(deps *dependency.Manager) {
	cfg := deps.Config

	deps.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storeStatus := "ok"
		if err := deps.Connections.Ping(ctx); err != nil {
			storeStatus = "error: " + err.Error()
		}

		cacheStatus := "disabled"
		if deps.Connections.Redis != nil {
			cacheStatus = "ok"
			if err := deps.CacheService.Ping(ctx); err != nil {
				cacheStatus = "error: " + err.Error()
			}
		}

		queueStatus := "disabled"
		if deps.Connections.RabbitMQ != nil {
			queueStatus = "ok"
			if !deps.Connections.RabbitMQ.Healthy() {
				queueStatus = "closed"
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"driver":    cfg.Database.Driver,
			"store":     storeStatus,
			"cache":     cacheStatus,
			"queue":     queueStatus,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func setupUserRoutes(router *gin.Engine, deps *dependency.Manager) {
	auth := middleware.NewAuthMiddleware(deps.Config.Security.JwtKey, deps.Config.Security.RequireAuth)
	handler := deps.UserHandler

	users := router.Group("/user")
	{
		users.POST("/create",
			setRouteName("createUser"),
			auth.RequireAuth(),
			handler.CreateUser)

		users.GET("/:user_id",
			setRouteName("getUser"),
			auth.RequireAuth(),
			handler.GetUser)
	}
}

func setupSessionRoutes(router *gin.Engine, deps *dependency.Manager) {
	auth := middleware.NewAuthMiddleware(deps.Config.Security.JwtKey, deps.Config.Security.RequireAuth)
	handler := deps.SessionHandler

	sessions := router.Group("/session")
	{
		sessions.POST("/create",
			setRouteName("createSession"),
			auth.RequireAuth(),
			handler.CreateSession)

		sessions.DELETE("/:session_id",
			setRouteName("deleteSession"),
			auth.RequireAuth(),
			handler.DeleteSession)

		sessions.GET("/by-user/:user_id",
			setRouteName("getSessionsByUser"),
			auth.RequireAuth(),
			handler.GetSessionsByUser)

		sessions.PUT("/:session_id/rename",
			setRouteName("renameSession"),
			auth.RequireAuth(),
			handler.RenameSession)
	}
}

func setRouteName(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("route_name", name)
		c.Next()
	}
}

func enableCORS(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

	if c.Request.Method == "OPTIONS" {
		c.AbortWithStatus(204)
		return
	}

	c.Next()
}
