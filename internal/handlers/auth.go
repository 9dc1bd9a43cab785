package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"fruitbasket_back_end/internal/auth"
	"fruitbasket_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// ================== PAGES PUBLIQUES ==================

// GET / — accueil (visiteurs uniquement).
func (h *Handler) Home(c *gin.Context) {
	isSeller, isBuyer := viewFlags(c)
	c.HTML(http.StatusOK, "home.tmpl", gin.H{
		"sregister": c.Query("sregister"),
		"bregister": c.Query("bregister"),
		"isSeller":  isSeller,
		"isBuyer":   isBuyer,
		"style":     "home",
	})
}

// GET /seller — formulaire login/inscription vendeur.
func (h *Handler) SellerPage(c *gin.Context) {
	isSeller, isBuyer := viewFlags(c)
	c.HTML(http.StatusOK, "seller.tmpl", gin.H{
		"exists":   c.Query("exists"),
		"error":    c.Query("error"),
		"isSeller": isSeller,
		"isBuyer":  isBuyer,
		"style":    "seller",
	})
}

// GET /buyer — formulaire login/inscription acheteur.
func (h *Handler) BuyerPage(c *gin.Context) {
	isSeller, isBuyer := viewFlags(c)
	c.HTML(http.StatusOK, "buyer.tmpl", gin.H{
		"exists":   c.Query("exists"),
		"error":    c.Query("error"),
		"isSeller": isSeller,
		"isBuyer":  isBuyer,
		"style":    "seller",
	})
}

// ================== INSCRIPTION ==================

// POST /sregister
func (h *Handler) SellerRegister(c *gin.Context) {
	h.register(c, models.RoleSeller, "/seller", "/?sregister=true&bregister=false")
}

// POST /bregister
func (h *Handler) BuyerRegister(c *gin.Context) {
	h.register(c, models.RoleBuyer, "/buyer", "/?bregister=true&sregister=false")
}

func (h *Handler) register(c *gin.Context, role models.Role, formRoute, successRoute string) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	phone, err := strconv.ParseInt(c.PostForm("phone"), 10, 64)
	if err != nil || username == "" || password == "" {
		c.Redirect(http.StatusFound, formRoute+"?exists=false&error=true")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = h.auth.Register(ctx, role, username, password, phone)
	if errors.Is(err, auth.ErrAlreadyExists) {
		c.Redirect(http.StatusFound, formRoute+"?exists=true&error=false")
		return
	}
	if err != nil {
		log.Println("❌ Erreur inscription:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	// L'inscription ne connecte pas : toute session antérieure est détruite
	// et l'utilisateur repasse par le formulaire de login.
	_ = h.sessions.SignOut(c.Writer, c.Request)
	c.Redirect(http.StatusFound, successRoute)
}

// ================== LOGIN / LOGOUT ==================

// POST /slogin
func (h *Handler) SellerLogin(c *gin.Context) {
	h.login(c, models.RoleSeller, "/sdashboard", "/seller?error=true&exists=false")
}

// POST /blogin
func (h *Handler) BuyerLogin(c *gin.Context) {
	h.login(c, models.RoleBuyer, "/", "/buyer?error=true&exists=false")
}

func (h *Handler) login(c *gin.Context, role models.Role, successRoute, failureRoute string) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ident, err := h.auth.Authenticate(ctx, role, username, password)
	if errors.Is(err, auth.ErrNotFound) || errors.Is(err, auth.ErrBadCredentials) {
		c.Redirect(http.StatusFound, failureRoute)
		return
	}
	if err != nil {
		log.Println("❌ Erreur authentification:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}

	if err := h.sessions.SignIn(c.Writer, c.Request, ident); err != nil {
		log.Println("❌ Erreur création session:", err)
		c.String(http.StatusInternalServerError, "Erreur serveur")
		return
	}
	c.Redirect(http.StatusFound, successRoute)
}

// GET /logout
func (h *Handler) Logout(c *gin.Context) {
	_ = h.sessions.SignOut(c.Writer, c.Request)
	c.Redirect(http.StatusFound, "/")
}
