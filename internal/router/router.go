// internal/router/router.go
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mercadocesar/storefront/internal/config"
	"github.com/mercadocesar/storefront/internal/handlers"
	"github.com/mercadocesar/storefront/internal/middleware"
	"github.com/mercadocesar/storefront/internal/services"
	"github.com/mercadocesar/storefront/internal/session"
	"github.com/mercadocesar/storefront/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	staging := session.NewStagingStore(time.Duration(cfg.Checkout.StagingTTLMinutes) * time.Minute)

	authService := services.NewAuthService(db, cfg.JWT)
	inventoryService := services.NewInventoryService(db, cfg.Inventory.LowStockThreshold)
	catalogService := services.NewCatalogService(db, inventoryService)
	cartService := services.NewCartService(db, staging)
	checkoutService := services.NewCheckoutService(db, cartService, inventoryService, staging)
	orderService := services.NewOrderService(db)
	cardService := services.NewCardService(db)
	storeService := services.NewStoreService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	orderHandler := handlers.NewOrderHandler(orderService)
	cardHandler := handlers.NewCardHandler(cardService)
	storeHandler := handlers.NewStoreHandler(storeService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Profile)
		}

		// Catalog routes (public)
		v1.GET("/busca", catalogHandler.Search)
		v1.POST("/busca", catalogHandler.SearchPost)
		v1.GET("/categorias", catalogHandler.Categories)

		produtos := v1.Group("/produtos")
		{
			produtos.GET("/:id", catalogHandler.GetProduto)
			produtos.GET("/:id/estoque", inventoryHandler.TotalStock)

			// Staff catalog management
			staff := produtos.Group("")
			staff.Use(middleware.AuthRequired(), middleware.StaffRequired())
			{
				staff.POST("", catalogHandler.CreateProduto)
				staff.PUT("/:id", catalogHandler.UpdateProduto)
				staff.DELETE("/:id", catalogHandler.DeleteProduto)
			}
		}

		// Stores offered for pickup (public)
		v1.GET("/lojas", storeHandler.ListActive)

		// Cart routes
		carrinho := v1.Group("/carrinho")
		carrinho.Use(middleware.AuthRequired())
		{
			carrinho.GET("", cartHandler.GetCart)
			carrinho.DELETE("", cartHandler.ClearCart)
			carrinho.POST("/itens", cartHandler.AddItem)
			carrinho.DELETE("/itens/:produto_id", cartHandler.RemoveItem)
		}

		// Checkout routes
		checkout := v1.Group("/checkout")
		checkout.Use(middleware.AuthRequired())
		{
			checkout.POST("", checkoutHandler.Enter)
			checkout.DELETE("", checkoutHandler.Abort)
			checkout.POST("/domicilio", checkoutHandler.ChooseHomeDelivery)
			checkout.POST("/retirada", checkoutHandler.ChoosePickup)
			checkout.GET("/resumo", checkoutHandler.Summary)
			checkout.POST("/finalizar", middleware.CheckoutRateLimit(), checkoutHandler.Finalize)
		}

		// Order history
		v1.GET("/recentes", middleware.AuthRequired(), orderHandler.Recent)

		pedidos := v1.Group("/pedidos")
		pedidos.Use(middleware.AuthRequired())
		{
			pedidos.GET("/:id", orderHandler.GetOrder)
			pedidos.POST("/:id/reordenar", checkoutHandler.Reorder)
			pedidos.GET("", middleware.StaffRequired(), orderHandler.ListAll)
		}

		// Cards
		cartoes := v1.Group("/cartoes")
		cartoes.Use(middleware.AuthRequired())
		{
			cartoes.GET("", cardHandler.List)
			cartoes.POST("", cardHandler.Register)
			cartoes.DELETE("/:id", cardHandler.Delete)
		}

		// Inventory management (staff)
		estoque := v1.Group("")
		estoque.Use(middleware.AuthRequired(), middleware.StaffRequired())
		{
			estoque.POST("/estoque", inventoryHandler.SetStock)
			estoque.GET("/estoque-baixo", inventoryHandler.LowStock)
			estoque.GET("/armazens", inventoryHandler.ListArmazens)
			estoque.POST("/armazens", inventoryHandler.CreateArmazem)
		}

		// Admin
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/lojas", storeHandler.ListAll)
			admin.POST("/lojas", storeHandler.Create)
			admin.PATCH("/lojas/:id/ativa", storeHandler.ToggleActive)
		}
	}

	return r
}
