package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lbgsct/cryptobreak/web/handlers"
	"github.com/lbgsct/cryptobreak/web/middleware"
)

func setupRouter(auth *handlers.Auth, analysis *handlers.Analysis) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Маршруты для авторизации
	router.POST("/register", auth.Register)
	router.POST("/login", auth.Login)

	// Группа маршрутов, требующих авторизации
	authorized := router.Group("/api")
	authorized.Use(middleware.AuthMiddleware(auth.JwtKey))
	{
		authorized.POST("/pad", analysis.Pad())
		authorized.POST("/cbc/encrypt", analysis.EncryptCBC())
		authorized.POST("/cbc/decrypt", analysis.DecryptCBC())
		authorized.POST("/detect", analysis.DetectMode())
		authorized.POST("/xor/single", analysis.BreakSingleByteXor())
		authorized.POST("/xor/repeating", analysis.BreakRepeatingKeyXor())
		authorized.POST("/oracle", analysis.OracleRound())
		authorized.GET("/results/:id", analysis.GetResult)

		// WebSocket маршрут
		authorized.GET("/ws", analysis.WatchResults)

		authorized.GET("/logout", auth.Logout)
	}
	return router
}
