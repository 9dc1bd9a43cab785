package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"fruitbasket_back_end/internal/catalog"
	"fruitbasket_back_end/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GET /sdashboard — articles du vendeur connecté.
func (h *Handler) SellerDashboard(c *gin.Context) {
	ident := middleware.CurrentIdentity(c)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := h.catalog.ListBySeller(ctx, ident.Username)
	if err != nil {
		log.Println("❌ Erreur lecture tableau de bord:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	isSeller, isBuyer := viewFlags(c)
	c.HTML(http.StatusOK, "sdashboard.tmpl", gin.H{
		"name":     capitalize(ident.Username),
		"items":    items,
		"isSeller": isSeller,
		"isBuyer":  isBuyer,
		"style":    "sdashboard",
	})
}

// GET /allitems — catalogue public.
func (h *Handler) AllItems(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := h.catalog.ListAll(ctx)
	if err != nil {
		log.Println("❌ Erreur lecture catalogue:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	h.renderItemList(c, items, c.Query("added"))
}

// GET /search?q= — recherche (Elastic, repli MongoDB).
func (h *Handler) SearchItems(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.Redirect(http.StatusFound, "/allitems")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	items, err := h.catalog.Search(ctx, query)
	if err != nil {
		log.Println("❌ Erreur recherche:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	h.renderItemList(c, items, "")
}

func (h *Handler) renderItemList(c *gin.Context, items interface{}, added string) {
	name := ""
	if ident := middleware.CurrentIdentity(c); ident != nil {
		name = ident.Username
	}

	isSeller, isBuyer := viewFlags(c)
	c.HTML(http.StatusOK, "allitems.tmpl", gin.H{
		"items":    items,
		"username": capitalize(name),
		"isSeller": isSeller,
		"isBuyer":  isBuyer,
		"added":    added,
		"style":    "allitems",
	})
}

// ================== MUTATIONS VENDEUR ==================

// POST /addFruitsForm — création d'article, image facultative.
func (h *Handler) AddItem(c *gin.Context) {
	name := c.PostForm("fruitName")
	price, perr := strconv.ParseFloat(c.PostForm("price"), 64)
	quantity, qerr := strconv.Atoi(c.PostForm("quantity"))
	seller := c.PostForm("seller")
	if name == "" || seller == "" || perr != nil || qerr != nil {
		c.String(http.StatusBadRequest, "Error")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	imageURL := ""
	if file, err := c.FormFile("image"); err == nil && h.uploads != nil {
		url, err := h.uploads.UploadItemImage(ctx, file)
		if err != nil {
			log.Println("⚠️ Upload image échoué, article créé sans image:", err)
		} else {
			imageURL = url
		}
	}

	if _, err := h.catalog.Create(ctx, name, price, quantity, seller, imageURL); err != nil {
		log.Println("❌ Erreur création article:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	c.Redirect(http.StatusFound, "/sdashboard")
}

// POST /addedFruitsForm/:id — mise à jour du prix ou suppression, selon le
// bouton soumis.
func (h *Handler) EditItem(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "Error")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch c.PostForm("submitBtn") {
	case "update":
		price, err := strconv.ParseFloat(c.PostForm("updatedPrice"), 64)
		if err != nil {
			c.String(http.StatusBadRequest, "Error")
			return
		}
		err = h.catalog.UpdatePrice(ctx, id, price)
		if err != nil && !errors.Is(err, catalog.ErrItemNotFound) {
			log.Println("❌ Erreur mise à jour prix:", err)
			c.String(http.StatusInternalServerError, "Erreur serveur")
			return
		}
		// Article déjà disparu : le tableau de bord reflète l'état réel.
		c.Redirect(http.StatusFound, "/sdashboard")

	case "delete":
		err = h.catalog.Delete(ctx, id)
		if err != nil && !errors.Is(err, catalog.ErrItemNotFound) {
			log.Println("❌ Erreur suppression article:", err)
			c.String(http.StatusInternalServerError, "Erreur serveur")
			return
		}
		c.Redirect(http.StatusFound, "/sdashboard")

	default:
		c.String(http.StatusBadRequest, "Error")
	}
}
