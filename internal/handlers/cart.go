package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"fruitbasket_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
)

// GET /addtocart/:id — ajoute la référence au panier de l'acheteur connecté.
// Aucun contrôle d'existence de l'article, doublons autorisés.
func (h *Handler) AddToCart(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.cart.Add(ctx, ident.Username, c.Param("id")); err != nil {
		log.Println("❌ Erreur ajout au panier:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}
	c.Redirect(http.StatusFound, "/allitems?added=true")
}

// GET /bcart — panier résolu en articles complets.
func (h *Handler) ViewCart(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := h.cart.Resolve(ctx, ident.Username)
	if err != nil {
		log.Println("❌ Erreur résolution panier:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	isSeller, isBuyer := viewFlags(c)
	c.HTML(http.StatusOK, "bcart.tmpl", gin.H{
		"items":    items,
		"isSeller": isSeller,
		"isBuyer":  isBuyer,
		"style":    "bcart",
	})
}

// GET /remove/:id — retire toutes les occurrences de la référence.
func (h *Handler) RemoveFromCart(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.cart.Remove(ctx, ident.Username, c.Param("id")); err != nil {
		log.Println("❌ Erreur retrait du panier:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}
	c.Redirect(http.StatusFound, "/bcart")
}
