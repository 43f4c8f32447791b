package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/kashieternal/rewardsgate/internal/server/http/handlers"
	"github.com/kashieternal/rewardsgate/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.GateFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	memberHandler := handlers.NewMemberHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/send-otp", authHandler.SendOTP)
	auth.POST("/resend-otp", authHandler.ResendOTP)
	auth.POST("/verify-otp", authHandler.VerifyOTP)
	auth.POST("/admin-login", authHandler.AdminLogin)
	auth.POST("/logout", authHandler.Logout)

	user := api.Group("/user")
	user.Use(middleware.MemberRequired(facade))
	user.GET("/dashboard", memberHandler.Dashboard)
	user.GET("/profile", memberHandler.Profile)
	user.PUT("/profile", memberHandler.UpdateProfile)
	user.GET("/transactions", memberHandler.Transactions)
	user.GET("/offers", memberHandler.Offers)
	user.GET("/rewards", memberHandler.Rewards)
	user.POST("/rewards/redeem", memberHandler.Redeem)
	user.GET("/qr", memberHandler.QR)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(facade))
	admin.GET("/dashboard", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.Users)
	admin.POST("/users/:id/credit", adminHandler.Credit)
	admin.GET("/transactions", adminHandler.Transactions)
	admin.GET("/rewards", adminHandler.Rewards)
	admin.POST("/rewards", adminHandler.CreateReward)
	admin.PUT("/rewards/:id", adminHandler.ToggleReward)
	admin.POST("/upload-csv", adminHandler.UploadCSV)

	return engine
}
