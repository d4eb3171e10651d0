package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fidelio-loyalty/internal/authz"
	"github.com/fidelio-loyalty/internal/cache"
	"github.com/fidelio-loyalty/internal/config"
	adminhandlers "github.com/fidelio-loyalty/internal/http/handlers/admin"
	publichandlers "github.com/fidelio-loyalty/internal/http/handlers/public"
	"github.com/fidelio-loyalty/internal/http/response"
	"github.com/fidelio-loyalty/internal/logger"
	"github.com/fidelio-loyalty/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes onto a fresh engine.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "fidelio"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.login_too_many",
	}
	visitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:visit", redisPrefix),
		WindowSeconds: cfg.Security.VisitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.VisitRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.VisitRateLimit.BlockSeconds,
		MessageKey:    "error.visit_too_many",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Public discovery endpoints, no authentication.
		public := apiV1.Group("/public")
		{
			public.GET("/restaurants", publicHandler.GetRestaurants)
			public.GET("/restaurants/:id", publicHandler.GetRestaurant)
			public.GET("/restaurants/:id/program", publicHandler.GetRestaurantProgram)
			public.GET("/restaurants/:id/menu", publicHandler.GetRestaurantMenu)
			public.GET("/restaurants/:id/qrcode", publicHandler.GetRestaurantQRCode)
			public.GET("/flash-promotions", publicHandler.GetActiveFlashPromotions)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// Diner authentication.
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// Diner endpoints, token required.
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.GET("/me/memberships", publicHandler.ListMyMemberships)
			user.GET("/me/visits", publicHandler.ListMyVisits)
			user.GET("/restaurants/:id/card", publicHandler.GetMyLoyaltyCard)
			user.POST("/restaurants/:id/visits", RateLimitMiddleware(redisClient, visitRule, KeyByIP), publicHandler.ValidateVisit)
			user.POST("/flash-promotions/:id/claim", publicHandler.ClaimFlashPromotion)
		}

		// Back office.
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// Restaurants
				authorized.GET("/restaurants", adminHandler.GetAdminRestaurants)
				authorized.GET("/restaurants/:id", adminHandler.GetAdminRestaurant)
				authorized.POST("/restaurants", adminHandler.CreateRestaurant)
				authorized.PUT("/restaurants/:id", adminHandler.UpdateRestaurant)
				authorized.PUT("/restaurants/:id/status", adminHandler.ToggleRestaurantStatus)
				authorized.DELETE("/restaurants/:id", adminHandler.DeleteRestaurant)
				authorized.GET("/restaurants/:id/qrcode", adminHandler.GetRestaurantValidationQRCode)

				// Loyalty programs
				authorized.GET("/programs", adminHandler.GetAdminPrograms)
				authorized.GET("/programs/:id", adminHandler.GetAdminProgram)
				authorized.POST("/programs", adminHandler.CreateProgram)
				authorized.PUT("/programs/:id", adminHandler.UpdateProgram)
				authorized.DELETE("/programs/:id", adminHandler.DeleteProgram)

				// Customers
				authorized.GET("/customers", adminHandler.GetAdminCustomers)
				authorized.GET("/customers/detail", adminHandler.GetAdminCustomer)
				authorized.POST("/customers/refresh", adminHandler.RefreshCustomerStats)

				// Campaigns
				authorized.GET("/campaigns", adminHandler.GetAdminCampaigns)
				authorized.GET("/campaigns/:id", adminHandler.GetAdminCampaign)
				authorized.POST("/campaigns", adminHandler.CreateCampaign)
				authorized.PUT("/campaigns/:id", adminHandler.UpdateCampaign)
				authorized.DELETE("/campaigns/:id", adminHandler.DeleteCampaign)
				authorized.POST("/campaigns/:id/dispatch", adminHandler.DispatchCampaign)

				// Flash promotions
				authorized.GET("/flash-promotions", adminHandler.GetAdminFlashPromotions)
				authorized.GET("/flash-promotions/:id", adminHandler.GetAdminFlashPromotion)
				authorized.POST("/flash-promotions", adminHandler.CreateFlashPromotion)
				authorized.PUT("/flash-promotions/:id", adminHandler.UpdateFlashPromotion)
				authorized.DELETE("/flash-promotions/:id", adminHandler.DeleteFlashPromotion)

				// Menu items
				authorized.GET("/menu-items", adminHandler.GetAdminMenuItems)
				authorized.GET("/menu-items/:id", adminHandler.GetAdminMenuItem)
				authorized.POST("/menu-items", adminHandler.CreateMenuItem)
				authorized.PUT("/menu-items/:id", adminHandler.UpdateMenuItem)
				authorized.DELETE("/menu-items/:id", adminHandler.DeleteMenuItem)

				// Visit ledger and loyalty cards
				authorized.GET("/visits", adminHandler.GetAdminVisits)
				authorized.GET("/memberships", adminHandler.GetAdminMemberships)

				// Diner accounts
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.PUT("/users/:id/status", adminHandler.UpdateUserStatus)

				// Role management
				authorized.GET("/authz/roles", adminHandler.GetAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.GET("/authz/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
