package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/cart"
	"github.com/junaidrashid-git/storefront-api/database/databasetest"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeVerifier struct {
	profile auth.GoogleProfile
	err     error
}

func (f fakeVerifier) Verify(context.Context, string) (auth.GoogleProfile, error) {
	return f.profile, f.err
}

var admins = auth.NewAdminList([]string{"admin@example.com"})

func setupAuthRouter(t *testing.T, verifier auth.Verifier) (*gin.Engine, *gorm.DB, *auth.Tokens) {
	gin.SetMode(gin.TestMode)
	db := databasetest.New(t)
	tokens := auth.NewTokens("test-secret", time.Hour)

	r := gin.New()
	r.Use(sessions.Sessions("storefront", cookie.NewStore([]byte("test-secret-key"))))
	g := r.Group("/auth")
	g.POST("/register", auth.Register(db, tokens, admins))
	g.POST("/login", auth.Login(db, tokens, admins))
	g.POST("/admin/login", auth.AdminLogin(db, tokens, admins))
	g.POST("/google", auth.GoogleLogin(db, tokens, verifier, admins))
	g.POST("/guest", auth.CreateGuestUser(db, tokens))
	g.POST("/logout", auth.Logout())
	return r, db, tokens
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTokensRoundTrip(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)

	raw, err := tokens.Issue(auth.Identity{UserID: "u1", Email: "a@b.c", Role: auth.RoleUser, Name: "Ana"})
	require.NoError(t, err)

	id, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "a@b.c", id.Email)
	assert.Equal(t, "Ana", id.Name)
	assert.False(t, id.Guest())

	_, err = auth.NewTokens("other", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = tokens.Parse("garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	_, err := auth.HashPassword("short")
	assert.ErrorIs(t, err, auth.ErrWeakPassword)

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	ok, err := auth.CheckPassword(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.CheckPassword(hash, "wrong horse")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "User not found. Please check your email.", auth.Message(auth.ErrUserNotFound))
	assert.Equal(t, "Incorrect password. Please try again.", auth.Message(auth.ErrWrongPassword))
	assert.Equal(t, "Invalid email format.", auth.Message(auth.ErrInvalidEmail))
	assert.Equal(t, "User account is disabled.", auth.Message(auth.ErrUserDisabled))
	assert.Equal(t, "Unauthorized - Not an admin", auth.Message(auth.ErrNotAdmin))
	assert.Equal(t, "Please enter email and password", auth.Message(auth.ErrMissingCredentials))
}

func TestAdminList(t *testing.T) {
	list := auth.NewAdminList([]string{" Admin@Example.com ", ""})
	assert.True(t, list.Contains("admin@example.COM"))
	assert.False(t, list.Contains("someone@example.com"))
	assert.Equal(t, auth.RoleAdmin, list.RoleFor("admin@example.com"))
	assert.Equal(t, auth.RoleUser, list.RoleFor("x@example.com"))
}

func TestPasswordLogin(t *testing.T) {
	r, db, tokens := setupAuthRouter(t, auth.DisabledVerifier{})

	w := postJSON(r, "/auth/register", map[string]string{"name": "Sok", "email": "Sok@Example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	id, err := tokens.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "sok@example.com", id.Email)
	assert.Equal(t, auth.RoleUser, id.Role)

	t.Run("duplicate email", func(t *testing.T) {
		w := postJSON(r, "/auth/register", map[string]string{"email": "sok@example.com", "password": "secret1"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	cases := []struct {
		name   string
		body   map[string]string
		status int
		msg    string
	}{
		{"missing fields", map[string]string{"email": ""}, http.StatusBadRequest, "Please enter email and password"},
		{"bad email", map[string]string{"email": "nope", "password": "x"}, http.StatusBadRequest, "Invalid email format."},
		{"unknown user", map[string]string{"email": "who@example.com", "password": "secret1"}, http.StatusUnauthorized, "User not found. Please check your email."},
		{"wrong password", map[string]string{"email": "sok@example.com", "password": "secret2"}, http.StatusUnauthorized, "Incorrect password. Please try again."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(r, "/auth/login", tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.msg, decode(t, w)["error"])
		})
	}

	t.Run("disabled account", func(t *testing.T) {
		require.NoError(t, db.Model(&models.User{}).Where("email = ?", "sok@example.com").Update("disabled", true).Error)
		w := postJSON(r, "/auth/login", map[string]string{"email": "sok@example.com", "password": "secret1"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "User account is disabled.", decode(t, w)["error"])
	})
}

func TestAdminLogin(t *testing.T) {
	r, db, tokens := setupAuthRouter(t, auth.DisabledVerifier{})
	_, err := auth.RegisterUser(db, "Admin", "admin@example.com", "secret1")
	require.NoError(t, err)
	_, err = auth.RegisterUser(db, "Shopper", "shopper@example.com", "secret1")
	require.NoError(t, err)

	w := postJSON(r, "/auth/admin/login", map[string]string{"email": "shopper@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized - Not an admin", decode(t, w)["error"])

	w = postJSON(r, "/auth/admin/login", map[string]string{"email": "admin@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "/admin", body["redirect"])
	id, err := tokens.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, id.Role)
}

func TestGoogleLoginMergesGuestCart(t *testing.T) {
	verifier := fakeVerifier{profile: auth.GoogleProfile{UID: "g-1", Email: "Mey@Example.com", Name: "Mey"}}
	r, db, _ := setupAuthRouter(t, verifier)
	require.NoError(t, db.Create(&models.GuestUser{ID: "guest_1", ExpiresAt: time.Now().Add(time.Hour)}).Error)

	_, err := cart.Update(db, "guest_1", func(c *cart.Cart) error {
		c.Add(cart.Line{ProductID: 4, Price: 3}, 2)
		return nil
	})
	require.NoError(t, err)

	w := postJSON(r, "/auth/google", map[string]string{"id_token": "tok", "guest_id": "guest_1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "merged-success", decode(t, w)["merge_status"])

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "g-1").Error)
	assert.Equal(t, "mey@example.com", user.Email)
	assert.Equal(t, models.ProviderGoogle, user.Provider)

	c, err := cart.Load(db, "g-1")
	require.NoError(t, err)
	assert.Equal(t, 2, c.ItemCount())

	w = postJSON(r, "/auth/google", map[string]string{"id_token": "tok"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-guest-cart", decode(t, w)["merge_status"])

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.EqualValues(t, 1, users)
}

func TestGoogleLoginOnlyMergesGuestCarts(t *testing.T) {
	verifier := fakeVerifier{profile: auth.GoogleProfile{UID: "g-2", Email: "vanna@example.com"}}
	r, db, _ := setupAuthRouter(t, verifier)

	other, err := auth.RegisterUser(db, "Rith", "rith@example.com", "secret1")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.GuestUser{ID: "guest_old", ExpiresAt: time.Now().Add(-time.Minute)}).Error)
	for _, owner := range []string{other.ID, "guest_old", "guest_unknown"} {
		_, err := cart.Update(db, owner, func(c *cart.Cart) error {
			c.Add(cart.Line{ProductID: 7, Price: 2}, 3)
			return nil
		})
		require.NoError(t, err)
	}

	for _, guestID := range []string{other.ID, "guest_old", "guest_unknown"} {
		w := postJSON(r, "/auth/google", map[string]string{"id_token": "tok", "guest_id": guestID})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "guest-not-found", decode(t, w)["merge_status"], guestID)

		kept, err := cart.Load(db, guestID)
		require.NoError(t, err)
		assert.Equal(t, 1, kept.Len(), guestID)
	}

	mine, err := cart.Load(db, "g-2")
	require.NoError(t, err)
	assert.True(t, mine.Empty())
}

func TestActiveGuest(t *testing.T) {
	db := databasetest.New(t)
	now := time.Now()
	require.NoError(t, db.Create(&models.GuestUser{ID: "guest_live", ExpiresAt: now.Add(time.Hour)}).Error)
	require.NoError(t, db.Create(&models.GuestUser{ID: "plain-id", ExpiresAt: now.Add(time.Hour)}).Error)

	for id, want := range map[string]bool{"guest_live": true, "guest_missing": false, "plain-id": false} {
		ok, err := auth.ActiveGuest(db, id, now)
		require.NoError(t, err)
		assert.Equal(t, want, ok, id)
	}
	ok, err := auth.ActiveGuest(db, "guest_live", now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegisterRefusesAdminEmails(t *testing.T) {
	r, db, _ := setupAuthRouter(t, auth.DisabledVerifier{})

	w := postJSON(r, "/auth/register", map[string]string{"name": "Mallory", "email": " Admin@Example.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "This email cannot be registered here.", decode(t, w)["error"])

	var users int64
	db.Model(&models.User{}).Count(&users)
	assert.Zero(t, users)
}

func TestGoogleLoginWithoutFirebase(t *testing.T) {
	r, _, _ := setupAuthRouter(t, auth.DisabledVerifier{})
	w := postJSON(r, "/auth/google", map[string]string{"id_token": "tok"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGuestAndPurge(t *testing.T) {
	r, db, tokens := setupAuthRouter(t, auth.DisabledVerifier{})

	w := postJSON(r, "/auth/guest", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	id, err := tokens.Parse(body["token"].(string))
	require.NoError(t, err)
	assert.True(t, id.Guest())
	assert.Equal(t, body["guest_id"], id.UserID)

	_, err = cart.Update(db, id.UserID, func(c *cart.Cart) error {
		c.Add(cart.Line{ProductID: 1}, 1)
		return nil
	})
	require.NoError(t, err)

	purged, err := auth.PurgeExpiredGuests(db, time.Now())
	require.NoError(t, err)
	assert.Zero(t, purged)

	purged, err = auth.PurgeExpiredGuests(db, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	var carts int64
	db.Model(&models.Cart{}).Count(&carts)
	assert.Zero(t, carts)
}

func TestLogout(t *testing.T) {
	r, _, _ := setupAuthRouter(t, auth.DisabledVerifier{})
	w := postJSON(r, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/", decode(t, w)["redirect"])
}
