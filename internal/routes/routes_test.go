package routes

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"fruitbasket_back_end/internal/auth"
	"fruitbasket_back_end/internal/cart"
	"fruitbasket_back_end/internal/catalog"
	"fruitbasket_back_end/internal/handlers"
	"fruitbasket_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ================== FAKES EN MÉMOIRE ==================

type fakeAccounts struct {
	sellers map[string]*models.Seller
	buyers  map[string]*models.Buyer
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		sellers: make(map[string]*models.Seller),
		buyers:  make(map[string]*models.Buyer),
	}
}

func (f *fakeAccounts) FindSellerByUsername(_ context.Context, username string) (*models.Seller, error) {
	return f.sellers[username], nil
}

func (f *fakeAccounts) FindBuyerByUsername(_ context.Context, username string) (*models.Buyer, error) {
	return f.buyers[username], nil
}

func (f *fakeAccounts) FindSellerByID(_ context.Context, id primitive.ObjectID) (*models.Seller, error) {
	for _, s := range f.sellers {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeAccounts) FindBuyerByID(_ context.Context, id primitive.ObjectID) (*models.Buyer, error) {
	for _, b := range f.buyers {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeAccounts) InsertSeller(_ context.Context, seller *models.Seller) error {
	if _, ok := f.sellers[seller.Username]; ok {
		return auth.ErrAlreadyExists
	}
	seller.ID = primitive.NewObjectID()
	f.sellers[seller.Username] = seller
	return nil
}

func (f *fakeAccounts) InsertBuyer(_ context.Context, buyer *models.Buyer) error {
	if _, ok := f.buyers[buyer.Username]; ok {
		return auth.ErrAlreadyExists
	}
	buyer.ID = primitive.NewObjectID()
	f.buyers[buyer.Username] = buyer
	return nil
}

type fakeItems struct {
	items []*models.Item
}

func (f *fakeItems) All(_ context.Context) ([]models.Item, error) {
	out := make([]models.Item, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, *it)
	}
	return out, nil
}

func (f *fakeItems) BySeller(_ context.Context, seller string) ([]models.Item, error) {
	out := []models.Item{}
	for _, it := range f.items {
		if it.Seller == seller {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (f *fakeItems) Insert(_ context.Context, item *models.Item) error {
	item.ID = primitive.NewObjectID()
	copied := *item
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeItems) UpdatePrice(_ context.Context, id primitive.ObjectID, price float64) error {
	for _, it := range f.items {
		if it.ID == id {
			it.Price = price
			return nil
		}
	}
	return catalog.ErrItemNotFound
}

func (f *fakeItems) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return catalog.ErrItemNotFound
}

func (f *fakeItems) SearchByName(_ context.Context, query string) ([]models.Item, error) {
	out := []models.Item{}
	for _, it := range f.items {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(query)) {
			out = append(out, *it)
		}
	}
	return out, nil
}

type fakeCarts struct {
	accounts *fakeAccounts
}

func (f *fakeCarts) PushItem(_ context.Context, buyerUsername, itemID string) error {
	buyer, ok := f.accounts.buyers[buyerUsername]
	if !ok {
		return cart.ErrBuyerNotFound
	}
	buyer.Items = append(buyer.Items, itemID)
	return nil
}

func (f *fakeCarts) PullItem(_ context.Context, buyerUsername, itemID string) error {
	buyer, ok := f.accounts.buyers[buyerUsername]
	if !ok {
		return cart.ErrBuyerNotFound
	}
	kept := []string{}
	for _, ref := range buyer.Items {
		if ref != itemID {
			kept = append(kept, ref)
		}
	}
	buyer.Items = kept
	return nil
}

func (f *fakeCarts) ItemRefs(_ context.Context, buyerUsername string) ([]string, error) {
	buyer, ok := f.accounts.buyers[buyerUsername]
	if !ok {
		return nil, cart.ErrBuyerNotFound
	}
	return buyer.Items, nil
}

// ================== MONTAGE ==================

type app struct {
	router   *gin.Engine
	accounts *fakeAccounts
	items    *fakeItems
}

func newApp(t *testing.T) *app {
	t.Helper()

	accounts := newFakeAccounts()
	items := &fakeItems{}

	authSvc := auth.NewService(accounts)
	sessions := auth.NewSessionManager([]byte("secret-de-test"), accounts)
	catalogSvc := catalog.NewService(items, nil, nil)
	cartSvc := cart.NewService(&fakeCarts{accounts: accounts}, catalogSvc)

	h := handlers.New(authSvc, sessions, catalogSvc, cartSvc, nil)

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("views").Parse(`
{{ define "home.tmpl" }}home{{ end }}
{{ define "seller.tmpl" }}seller{{ end }}
{{ define "buyer.tmpl" }}buyer{{ end }}
{{ define "sdashboard.tmpl" }}{{ .name }}:{{ len .items }}{{ end }}
{{ define "allitems.tmpl" }}{{ len .items }}{{ end }}
{{ define "bcart.tmpl" }}{{ len .items }}{{ end }}
`)))
	RegisterRoutes(r, h, sessions)

	return &app{router: r, accounts: accounts, items: items}
}

func (a *app) postForm(path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *app) get(path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func registerForm(username, password, phone string) url.Values {
	return url.Values{"username": {username}, "password": {password}, "phone": {phone}}
}

func loginForm(username, password string) url.Values {
	return url.Values{"username": {username}, "password": {password}}
}

// ================== SCÉNARIOS ==================

func TestSellerRegistrationAndLogin(t *testing.T) {
	a := newApp(t)

	// Inscription : redirection accueil avec drapeau, pas de session.
	w := a.postForm("/sregister", registerForm("Alice", "secret", "5551234"), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/?sregister=true&bregister=false", w.Header().Get("Location"))

	stored := a.accounts.sellers["alice"]
	require.NotNil(t, stored, "le username est stocké en minuscules")
	assert.NotEqual(t, "secret", stored.Password)
	assert.Equal(t, int64(5551234), stored.Phone)

	// Doublon (insensible à la casse) : drapeau exists.
	w = a.postForm("/sregister", registerForm("ALICE", "autre", "999"), nil)
	assert.Equal(t, "/seller?exists=true&error=false", w.Header().Get("Location"))
	assert.Len(t, a.accounts.sellers, 1)

	// Mauvais mot de passe : drapeau error.
	w = a.postForm("/slogin", loginForm("alice", "wrong"), nil)
	assert.Equal(t, "/seller?error=true&exists=false", w.Header().Get("Location"))

	// Login correct : session + tableau de bord.
	w = a.postForm("/slogin", loginForm("alice", "secret"), nil)
	assert.Equal(t, "/sdashboard", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = a.get("/sdashboard", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alice")
}

func TestBuyerLoginRedirectsHome(t *testing.T) {
	a := newApp(t)

	w := a.postForm("/bregister", registerForm("bob", "secret", "123"), nil)
	assert.Equal(t, "/?bregister=true&sregister=false", w.Header().Get("Location"))

	w = a.postForm("/blogin", loginForm("bob", "secret"), nil)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestAccessGates(t *testing.T) {
	a := newApp(t)

	// Anonyme sur le tableau de bord : retour accueil.
	w := a.get("/sdashboard", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	// Vendeur connecté sur une page visiteur : tableau de bord.
	a.postForm("/sregister", registerForm("alice", "secret", "1"), nil)
	w = a.postForm("/slogin", loginForm("alice", "secret"), nil)
	cookies := w.Result().Cookies()

	w = a.get("/", cookies)
	assert.Equal(t, "/sdashboard", w.Header().Get("Location"))

	// Vendeur sur une route acheteur : renvoi vers l'entrée acheteur.
	w = a.get("/bcart", cookies)
	assert.Equal(t, "/buyer", w.Header().Get("Location"))

	// Logout : la session ne résout plus.
	w = a.get("/logout", cookies)
	assert.Equal(t, "/", w.Header().Get("Location"))
	loggedOut := w.Result().Cookies()

	w = a.get("/sdashboard", loggedOut)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestSellerCatalogLifecycle(t *testing.T) {
	a := newApp(t)

	form := url.Values{
		"fruitName": {"Apple"},
		"price":     {"10"},
		"quantity":  {"5"},
		"seller":    {"Alice"},
	}
	w := a.postForm("/addFruitsForm", form, nil)
	assert.Equal(t, "/sdashboard", w.Header().Get("Location"))

	require.Len(t, a.items.items, 1)
	item := a.items.items[0]
	assert.Equal(t, "alice", item.Seller, "seller copié en minuscules")
	assert.Equal(t, 10.0, item.Price)

	// Le catalogue public contient l'article.
	w = a.get("/allitems", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Body.String())

	// Mise à jour du prix via le formulaire du tableau de bord.
	edit := url.Values{"submitBtn": {"update"}, "updatedPrice": {"12.5"}}
	w = a.postForm("/addedFruitsForm/"+item.ID.Hex(), edit, nil)
	assert.Equal(t, "/sdashboard", w.Header().Get("Location"))
	assert.Equal(t, 12.5, item.Price)

	// Bouton inconnu : erreur explicite.
	w = a.postForm("/addedFruitsForm/"+item.ID.Hex(), url.Values{"submitBtn": {"noop"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Suppression.
	w = a.postForm("/addedFruitsForm/"+item.ID.Hex(), url.Values{"submitBtn": {"delete"}}, nil)
	assert.Equal(t, "/sdashboard", w.Header().Get("Location"))
	assert.Empty(t, a.items.items)
}

func TestBuyerCartFlow(t *testing.T) {
	a := newApp(t)

	// Un article au catalogue.
	a.postForm("/addFruitsForm", url.Values{
		"fruitName": {"Apple"}, "price": {"10"}, "quantity": {"5"}, "seller": {"alice"},
	}, nil)
	itemID := a.items.items[0].ID.Hex()

	// Acheteur connecté.
	a.postForm("/bregister", registerForm("bob", "secret", "123"), nil)
	w := a.postForm("/blogin", loginForm("bob", "secret"), nil)
	cookies := w.Result().Cookies()

	// Ajout deux fois : deux lignes au panier.
	w = a.get("/addtocart/"+itemID, cookies)
	assert.Equal(t, "/allitems?added=true", w.Header().Get("Location"))
	a.get("/addtocart/"+itemID, cookies)

	w = a.get("/bcart", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2", w.Body.String())

	// Un seul retrait vide tout (sémantique $pull).
	w = a.get("/remove/"+itemID, cookies)
	assert.Equal(t, "/bcart", w.Header().Get("Location"))

	w = a.get("/bcart", cookies)
	assert.Equal(t, "0", w.Body.String())
}

func TestDanglingCartReference(t *testing.T) {
	a := newApp(t)

	a.postForm("/addFruitsForm", url.Values{
		"fruitName": {"Apple"}, "price": {"10"}, "quantity": {"5"}, "seller": {"alice"},
	}, nil)
	itemID := a.items.items[0].ID.Hex()

	a.postForm("/bregister", registerForm("bob", "secret", "123"), nil)
	w := a.postForm("/blogin", loginForm("bob", "secret"), nil)
	cookies := w.Result().Cookies()

	a.get("/addtocart/"+itemID, cookies)

	// Le vendeur supprime l'article : la référence reste mais le panier
	// résolu est vide, sans erreur.
	a.postForm("/addedFruitsForm/"+itemID, url.Values{"submitBtn": {"delete"}}, nil)

	w = a.get("/bcart", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Body.String())
	assert.Len(t, a.accounts.buyers["bob"].Items, 1, "référence pendante conservée")
}

func TestSearchFallback(t *testing.T) {
	a := newApp(t)

	a.postForm("/addFruitsForm", url.Values{
		"fruitName": {"Apple"}, "price": {"10"}, "quantity": {"5"}, "seller": {"alice"},
	}, nil)
	a.postForm("/addFruitsForm", url.Values{
		"fruitName": {"Pear"}, "price": {"4"}, "quantity": {"2"}, "seller": {"alice"},
	}, nil)

	w := a.get("/search?q=app", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Body.String())

	// Sans terme de recherche : retour au catalogue.
	w = a.get("/search", nil)
	assert.Equal(t, "/allitems", w.Header().Get("Location"))
}
