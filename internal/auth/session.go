package auth

import (
	"context"
	"fmt"
	"net/http"

	"fruitbasket_back_end/internal/models"

	"github.com/gorilla/sessions"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	sessionName    = "fruitbasket_session"
	sessionUserKey = "user_id"
	sessionRoleKey = "role"
)

// SessionManager échange un cookie de session minimal {id, role} contre une
// Identity complète à chaque requête, à la manière du couple
// serializeUser/deserializeUser de Passport.
type SessionManager struct {
	store    sessions.Store
	accounts AccountStore
}

func NewSessionManager(secret []byte, accounts AccountStore) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.MaxAge(86400 * 30)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		Secure:   false, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store, accounts: accounts}
}

// SignIn sérialise l'identité dans la session : seuls l'id et le rôle
// sont persistés côté client.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, ident *Identity) error {
	session, _ := m.store.Get(r, sessionName)
	session.Values[sessionUserKey] = ident.ID.Hex()
	session.Values[sessionRoleKey] = string(ident.Role)
	return session.Save(r, w)
}

// SignOut détruit la session courante.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	for k := range session.Values {
		delete(session.Values, k)
	}
	return session.Save(r, w)
}

// Current désérialise la session de la requête et la résout en compte complet.
// Retourne (nil, nil) sans session ; ErrUnknownRole ou ErrAccountNotFound
// pour une session périmée ; toute autre erreur vient du store de comptes.
func (m *SessionManager) Current(ctx context.Context, r *http.Request) (*Identity, error) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		// Cookie illisible (secret changé, cookie forgé) → pas de session.
		return nil, nil
	}

	rawID, ok := session.Values[sessionUserKey].(string)
	if !ok || rawID == "" {
		return nil, nil
	}
	rawRole, _ := session.Values[sessionRoleKey].(string)

	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	role, err := models.ParseRole(rawRole)
	if err != nil {
		return nil, ErrUnknownRole
	}

	switch role {
	case models.RoleSeller:
		seller, err := m.accounts.FindSellerByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("résolution session vendeur: %w", err)
		}
		if seller == nil {
			return nil, ErrAccountNotFound
		}
		return &Identity{ID: seller.ID, Username: seller.Username, Phone: seller.Phone, Role: models.RoleSeller}, nil

	default:
		buyer, err := m.accounts.FindBuyerByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("résolution session acheteur: %w", err)
		}
		if buyer == nil {
			return nil, ErrAccountNotFound
		}
		return &Identity{ID: buyer.ID, Username: buyer.Username, Phone: buyer.Phone, Role: models.RoleBuyer}, nil
	}
}
