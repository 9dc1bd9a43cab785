package middleware

import (
	"errors"
	"log"
	"net/http"

	"fruitbasket_back_end/internal/auth"
	"fruitbasket_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Identify résout la session en Identity complète et la place dans le
// contexte Gin. Une session périmée (rôle inconnu, compte disparu) est
// purgée et la requête continue en anonyme ; une panne du store de comptes
// termine la requête en 500.
func Identify(sessions *auth.SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, err := sessions.Current(c.Request.Context(), c.Request)
		if err != nil {
			if errors.Is(err, auth.ErrUnknownRole) || errors.Is(err, auth.ErrAccountNotFound) {
				_ = sessions.SignOut(c.Writer, c.Request)
				c.Next()
				return
			}
			log.Println("❌ Erreur résolution session:", err)
			c.String(http.StatusInternalServerError, "Erreur serveur")
			c.Abort()
			return
		}

		if ident != nil {
			c.Set(identityKey, ident)
		}
		c.Next()
	}
}

// CurrentIdentity retourne l'identité résolue par Identify, ou nil.
func CurrentIdentity(c *gin.Context) *auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(*auth.Identity); ok {
			return ident
		}
	}
	return nil
}

// RequireAuthenticated redirige les requêtes anonymes vers l'accueil.
func RequireAuthenticated(c *gin.Context) {
	if CurrentIdentity(c) == nil {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Next()
}

// RequireGuest réserve une route aux visiteurs non connectés : un vendeur
// connecté part sur son tableau de bord, un acheteur sur le catalogue.
func RequireGuest(c *gin.Context) {
	ident := CurrentIdentity(c)
	if ident == nil {
		c.Next()
		return
	}
	if ident.Role == models.RoleSeller {
		c.Redirect(http.StatusFound, "/sdashboard")
	} else {
		c.Redirect(http.StatusFound, "/allitems")
	}
	c.Abort()
}

// RequireRole exige le rôle donné, sinon redirige vers la route d'entrée
// de ce rôle.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := CurrentIdentity(c)
		if ident == nil || ident.Role != role {
			if role == models.RoleSeller {
				c.Redirect(http.StatusFound, "/seller")
			} else {
				c.Redirect(http.StatusFound, "/buyer")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}
