package reviewControllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	reviewControllers "github.com/junaidrashid-git/storefront-api/controllers/review"
	"github.com/junaidrashid-git/storefront-api/database/databasetest"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviews(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := databasetest.New(t)
	hub := realtime.NewHub()
	tokens := auth.NewTokens("secret", time.Hour)

	r := gin.New()
	r.GET("/products/:id/reviews", reviewControllers.GetProductReviews(db))
	r.POST("/user/products/:id/reviews", middleware.ValidateToken(tokens), middleware.RequireAccount(), reviewControllers.CreateReview(db, hub))

	product := models.Product{Name: "Lamp", Price: 10}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "u1@example.com", DisplayName: "Dara"}).Error)
	base := "/products/" + strconv.FormatUint(uint64(product.ID), 10) + "/reviews"

	live, unsubscribe := hub.Subscribe(realtime.ReviewsTopic(product.ID))
	defer unsubscribe()

	post := func(token string, body gin.H) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		_ = json.NewEncoder(&buf).Encode(body)
		req := httptest.NewRequest(http.MethodPost, "/user"+base, &buf)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	userToken, err := tokens.Issue(auth.Identity{UserID: "u1", Email: "u1@example.com", Role: auth.RoleUser})
	require.NoError(t, err)
	otherToken, err := tokens.Issue(auth.Identity{UserID: "u2", Email: "u2@example.com", Role: auth.RoleUser})
	require.NoError(t, err)
	guestToken, err := tokens.Issue(auth.Identity{UserID: "guest_1", Role: auth.RoleGuest})
	require.NoError(t, err)

	t.Run("validation", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, post("", gin.H{"rating": 5, "review_text": "ok"}).Code)
		assert.Equal(t, http.StatusUnauthorized, post(guestToken, gin.H{"rating": 5, "review_text": "ok"}).Code)
		assert.Equal(t, http.StatusBadRequest, post(userToken, gin.H{"rating": 6, "review_text": "ok"}).Code)
		assert.Equal(t, http.StatusBadRequest, post(userToken, gin.H{"rating": 3, "review_text": "   "}).Code)
	})

	w := post(userToken, gin.H{"rating": 5, "review_text": "Great lamp"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Review
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Dara", created.UserName)

	select {
	case <-live:
	case <-time.After(time.Second):
		t.Fatal("expected live review")
	}

	w = post(otherToken, gin.H{"rating": 2, "review_text": "Too dim"})
	require.Equal(t, http.StatusCreated, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "u2@example.com", created.UserName, "falls back to email without a profile")

	req := httptest.NewRequest(http.MethodGet, base, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary reviewControllers.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 3.5, summary.AverageRating)
	require.Len(t, summary.Reviews, 2)
	assert.Equal(t, "Too dim", summary.Reviews[0].ReviewText)

	empty, err := reviewControllers.Summarize(db, 999)
	require.NoError(t, err)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.AverageRating)
}
