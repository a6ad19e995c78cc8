package routes

import (
	"ecomcopy-app/config"
	"ecomcopy-app/database"
	adminapi "ecomcopy-app/internal/api/admin"
	authapi "ecomcopy-app/internal/api/auth"
	"ecomcopy-app/internal/api/billing"
	"ecomcopy-app/internal/api/generate"
	plansapi "ecomcopy-app/internal/api/plans"
	stripewebhooks "ecomcopy-app/internal/api/stripewebhook"
	"ecomcopy-app/internal/api/users"
	"ecomcopy-app/internal/app/http/middleware"
	"ecomcopy-app/internal/domain/plans"
	"ecomcopy-app/internal/entitlement"

	"ecomcopy-app/internal/ai"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	entitlements := entitlement.NewService(entitlement.NewGormStore(database.DB))

	var remote generate.RemoteGenerator
	if client := ai.NewClient(config.LLM_API_URL, config.LLM_API_KEY, config.LLM_MODEL); client != nil {
		remote = client
	}
	generateHandler := generate.NewHandler(entitlements, generate.NewGormRecords(database.DB), remote)
	webhookHandler := stripewebhooks.NewHandler(entitlements)
	adminHandler := adminapi.NewHandler(entitlements)

	// The webhook body must reach the handler untouched: signature
	// verification covers the raw payload, so no sanitize middleware here.
	r.POST("/webhook", webhookHandler.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/plans", plansapi.ListPlans)

	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/signup", authapi.Signup)
	public.POST("/login", authapi.Login)
	public.GET("/verify", users.VerifyEmail)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.POST("/generate", generateHandler.GenerateCopy)
	auth.GET("/history", generateHandler.History)

	auth.POST("/create-checkout-session", billing.CreateCheckoutSession)
	auth.POST("/billing-portal", billing.CreateBillingPortal)

	// Premium surface
	premium := auth.Group("/")
	premium.Use(middleware.RequirePlan(plans.PlanPremium))
	premium.POST("/generate_email", generateHandler.GenerateEmail)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminHandler.AdminDashboard)
	admin.GET("/users", adminHandler.ListAllUsers)
	admin.GET("/user/:id", adminHandler.GetUserDetails)
	admin.POST("/reset-usage", adminHandler.ResetUsage)
}
