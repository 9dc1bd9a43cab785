package handlers

import (
	"strings"
	"unicode"

	"fruitbasket_back_end/internal/auth"
	"fruitbasket_back_end/internal/cart"
	"fruitbasket_back_end/internal/catalog"
	"fruitbasket_back_end/internal/middleware"
	"fruitbasket_back_end/internal/models"
	"fruitbasket_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler regroupe les services injectés au démarrage — aucun état global.
type Handler struct {
	auth     *auth.Service
	sessions *auth.SessionManager
	catalog  *catalog.Service
	cart     *cart.Service
	uploads  *services.Uploader // nil si MinIO absent
}

func New(authSvc *auth.Service, sessions *auth.SessionManager, catalogSvc *catalog.Service, cartSvc *cart.Service, uploads *services.Uploader) *Handler {
	return &Handler{
		auth:     authSvc,
		sessions: sessions,
		catalog:  catalogSvc,
		cart:     cartSvc,
		uploads:  uploads,
	}
}

// viewFlags — drapeaux de rôle communs à toutes les vues.
func viewFlags(c *gin.Context) (isSeller, isBuyer bool) {
	ident := middleware.CurrentIdentity(c)
	if ident == nil {
		return false, false
	}
	return ident.Role == models.RoleSeller, ident.Role == models.RoleBuyer
}

// capitalize — première lettre en majuscule, le reste en minuscules,
// pour le nom affiché dans les vues.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	r := []rune(lower)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
