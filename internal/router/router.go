package router

import (
	"github.com/avoronov/techstore-backend/config"
	"github.com/avoronov/techstore-backend/internal/app/controller"
	"github.com/avoronov/techstore-backend/internal/app/model"
	"github.com/avoronov/techstore-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController     *controller.AuthController
	productController  *controller.ProductController
	brandController    *controller.BrandController
	commentController  *controller.CommentController
	cartController     *controller.CartController
	ratingController   *controller.RatingController
	favoriteController *controller.FavoriteController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	brandController *controller.BrandController,
	commentController *controller.CommentController,
	cartController *controller.CartController,
	ratingController *controller.RatingController,
	favoriteController *controller.FavoriteController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		productController:  productController,
		brandController:    brandController,
		commentController:  commentController,
		cartController:     cartController,
		ratingController:   ratingController,
		favoriteController: favoriteController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "TechStore API is running",
		})
	})

	admin := string(model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		users := v1.Group("/users")
		users.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(admin))
		{
			users.GET("", r.authController.ListUsers)
			users.DELETE("/:id", r.authController.DeleteUser)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.GetProducts)
			products.GET("/export",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireCatalogWrite(),
				r.productController.ExportProducts,
			)
			products.GET("/:id", r.productController.GetProduct)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireCatalogWrite(),
				r.productController.CreateProduct,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireCatalogWrite(),
				r.productController.UpdateProduct,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireCatalogWrite(),
				r.productController.DeleteProduct,
			)
		}

		brands := v1.Group("/brands")
		{
			brands.GET("", r.brandController.GetBrands)
			brands.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireCatalogWrite(),
				r.brandController.CreateBrand,
			)
			brands.DELETE("/:name",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireCatalogWrite(),
				r.brandController.DeleteBrand,
			)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("", r.commentController.GetComments)
			comments.POST("", r.authMiddleware.Authenticate(), r.commentController.CreateComment)
			comments.PATCH("/:id", r.authMiddleware.Authenticate(), r.commentController.UpdateComment)
			comments.DELETE("/:id", r.authMiddleware.Authenticate(), r.commentController.DeleteComment)
		}

		cart := v1.Group("/cart")
		cart.Use(r.authMiddleware.Authenticate())
		{
			cart.GET("", r.cartController.GetCart)
			cart.POST("", r.cartController.AdjustCart)
			cart.DELETE("/:product_id", r.cartController.RemoveFromCart)
		}

		ratings := v1.Group("/ratings")
		{
			ratings.GET("/:product_id", r.authMiddleware.OptionalAuthenticate(), r.ratingController.GetRating)
			ratings.POST("", r.authMiddleware.Authenticate(), r.ratingController.RateProduct)
		}

		favorites := v1.Group("/favorites")
		favorites.Use(r.authMiddleware.Authenticate())
		{
			favorites.GET("", r.favoriteController.GetFavorites)
			favorites.POST("", r.favoriteController.AddFavorite)
			favorites.DELETE("/:product_id", r.favoriteController.RemoveFavorite)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
