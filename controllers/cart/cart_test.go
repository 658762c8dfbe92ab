package cartControllers_test

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
	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	"github.com/junaidrashid-git/storefront-api/database/databasetest"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type cartBody struct {
	Items []struct {
		ProductID uint    `json:"product_id"`
		Quantity  int     `json:"quantity"`
		Subtotal  float64 `json:"subtotal"`
	} `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

type fixture struct {
	r      *gin.Engine
	db     *gorm.DB
	token  string
	lamp   models.Product
	chair  models.Product
	tokens *auth.Tokens
}

func setup(t *testing.T) fixture {
	gin.SetMode(gin.TestMode)
	db := databasetest.New(t)
	tokens := auth.NewTokens("secret", time.Hour)

	r := gin.New()
	g := r.Group("/cart", middleware.ValidateToken(tokens))
	g.GET("", cartControllers.GetCart(db))
	g.POST("/items", cartControllers.AddCartItem(db))
	g.PUT("/items/:product_id", cartControllers.SetCartItemQuantity(db))
	g.PUT("/items/:product_id/set", cartControllers.PutCartItem(db))
	g.POST("/items/:product_id/decrement", cartControllers.DecrementCartItem(db))
	g.DELETE("/items/:product_id", cartControllers.DeleteCartItem(db))
	g.DELETE("", cartControllers.ClearCart(db))
	r.GET("/admin/user-cart/:user_id", cartControllers.GetAdminUserCart(db))

	lamp := models.Product{Name: "Lamp", Price: 10}
	chair := models.Product{Name: "Chair", Price: 15}
	require.NoError(t, db.Create(&lamp).Error)
	require.NoError(t, db.Create(&chair).Error)

	token, err := tokens.Issue(auth.Identity{UserID: "guest_1", Role: auth.RoleGuest})
	require.NoError(t, err)
	return fixture{r: r, db: db, token: token, lamp: lamp, chair: chair, tokens: tokens}
}

func (f fixture) call(t *testing.T, method, path string, body interface{}) (int, cartBody) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.token)
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)

	var out cartBody
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func item(id uint) string { return "/cart/items/" + strconv.FormatUint(uint64(id), 10) }

func TestAddMergesSameProduct(t *testing.T) {
	f := setup(t)

	code, _ := f.call(t, http.MethodPost, "/cart/items", gin.H{"product_id": f.lamp.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, code)
	code, body := f.call(t, http.MethodPost, "/cart/items", gin.H{"product_id": f.lamp.ID, "quantity": 1})
	require.Equal(t, http.StatusOK, code)

	require.Len(t, body.Items, 1)
	assert.Equal(t, 2, body.Items[0].Quantity)
	assert.Equal(t, 20.0, body.Total)

	code, _ = f.call(t, http.MethodPost, "/cart/items", gin.H{"product_id": 999})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestQuantityChanges(t *testing.T) {
	f := setup(t)
	f.call(t, http.MethodPost, "/cart/items", gin.H{"product_id": f.lamp.ID, "quantity": 2})
	f.call(t, http.MethodPost, "/cart/items", gin.H{"product_id": f.chair.ID})

	code, body := f.call(t, http.MethodPut, item(f.lamp.ID), gin.H{"quantity": 5})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 65.0, body.Total)
	assert.Equal(t, 6, body.ItemCount)

	code, _ = f.call(t, http.MethodPut, item(f.lamp.ID), gin.H{"quantity": -1})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = f.call(t, http.MethodPost, item(f.chair.ID)+"/decrement", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Items, 1, "decrementing to zero removes the line")
	assert.Equal(t, f.lamp.ID, body.Items[0].ProductID)

	code, _ = f.call(t, http.MethodPost, item(f.chair.ID)+"/decrement", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = f.call(t, http.MethodPut, item(f.lamp.ID), gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body.Items)
}

func TestPutResetsToSingleQuantity(t *testing.T) {
	f := setup(t)
	f.call(t, http.MethodPost, "/cart/items", gin.H{"product_id": f.lamp.ID, "quantity": 4})

	code, body := f.call(t, http.MethodPut, item(f.lamp.ID)+"/set", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Items, 1)
	assert.Equal(t, 1, body.Items[0].Quantity)
}

func TestDeleteAndClear(t *testing.T) {
	f := setup(t)
	f.call(t, http.MethodPost, "/cart/items", gin.H{"product_id": f.lamp.ID})
	f.call(t, http.MethodPost, "/cart/items", gin.H{"product_id": f.chair.ID})

	code, body := f.call(t, http.MethodDelete, item(f.lamp.ID), nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body.Items, 1)

	code, _ = f.call(t, http.MethodDelete, item(f.lamp.ID), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body = f.call(t, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body.Items)
	assert.Zero(t, body.Total)
}

func TestAdminCanReadUserCart(t *testing.T) {
	f := setup(t)
	f.call(t, http.MethodPost, "/cart/items", gin.H{"product_id": f.chair.ID, "quantity": 2})

	req := httptest.NewRequest(http.MethodGet, "/admin/user-cart/guest_1", nil)
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var body cartBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 30.0, body.Total)
}
