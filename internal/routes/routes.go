package routes

import (
	"os"

	"fruitbasket_back_end/internal/auth"
	"fruitbasket_back_end/internal/handlers"
	"fruitbasket_back_end/internal/middleware"
	"fruitbasket_back_end/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes câble la table de routes : résolution de session globale,
// puis gates d'accès par route (le premier gate qui échoue redirige).
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, sessions *auth.SessionManager) {
	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("FRONTEND_URL"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	r.Use(cors.New(corsConfig))

	r.Use(middleware.Identify(sessions))

	// Accueil et formulaires — visiteurs uniquement
	r.GET("/", middleware.RequireGuest, h.Home)
	r.GET("/seller", middleware.RequireGuest, h.SellerPage)
	r.GET("/buyer", middleware.RequireGuest, h.BuyerPage)

	// Inscription / login / logout
	r.POST("/sregister", h.SellerRegister)
	r.POST("/slogin", h.SellerLogin)
	r.POST("/bregister", h.BuyerRegister)
	r.POST("/blogin", h.BuyerLogin)
	r.GET("/logout", h.Logout)

	// Catalogue
	r.GET("/sdashboard", middleware.RequireAuthenticated, middleware.RequireRole(models.RoleSeller), h.SellerDashboard)
	r.GET("/allitems", h.AllItems)
	r.GET("/search", h.SearchItems)
	r.POST("/addFruitsForm", h.AddItem)
	r.POST("/addedFruitsForm/:id", h.EditItem)

	// Panier
	r.GET("/addtocart/:id", middleware.RequireAuthenticated, middleware.RequireRole(models.RoleBuyer), h.AddToCart)
	r.GET("/bcart", middleware.RequireAuthenticated, middleware.RequireRole(models.RoleBuyer), h.ViewCart)
	r.GET("/remove/:id", middleware.RequireAuthenticated, middleware.RequireRole(models.RoleBuyer), h.RemoveFromCart)
}
