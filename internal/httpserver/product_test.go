package httpserver_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/ecommerce_api/internal/models"
)

func TestAddProductThenGet(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "password")
	ck := env.login("alice", "password")

	rec := env.do(http.MethodPost, "/api/products/add", map[string]any{
		"name":  "Shoe",
		"price": 49.99,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Product added successfully!", decodeMessage(t, rec))

	rec = env.do(http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var prod models.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prod))
	assert.Equal(t, 1, prod.ID)
	assert.Equal(t, "Shoe", prod.Name)
	assert.Equal(t, 49.99, prod.Price)
	assert.Equal(t, "", prod.Description, "description defaults to empty string")
}

func TestAddProductEmptyNameAllowed(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "password")
	ck := env.login("alice", "password")

	rec := env.do(http.MethodPost, "/api/products/add", map[string]any{
		"name":  "",
		"price": 1.0,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAddProductMissingFields(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "password")
	ck := env.login("alice", "password")

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{name: "missing price", payload: map[string]any{"name": "Shoe"}},
		{name: "missing name", payload: map[string]any{"price": 49.99}},
		{name: "empty payload", payload: map[string]any{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(http.MethodPost, "/api/products/add", tt.payload, ck)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, "Invalid product data!", decodeMessage(t, rec))
		})
	}

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count, "rejected payloads must not persist rows")
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/products/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found!", decodeMessage(t, rec))
}

func TestListProductsOmitsDescription(t *testing.T) {
	env := newTestEnv(t)

	for i := 1; i <= 3; i++ {
		require.NoError(t, env.DB.Create(&models.Product{
			Name:        fmt.Sprintf("product-%d", i),
			Price:       float64(i),
			Description: "should never appear in the list",
		}).Error)
	}

	rec := env.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 3)
	for _, item := range list {
		assert.Contains(t, item, "id")
		assert.Contains(t, item, "name")
		assert.Contains(t, item, "price")
		assert.NotContains(t, item, "description")
	}
}

func TestListProductsEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestUpdateProductPartial(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "password")
	ck := env.login("alice", "password")

	require.NoError(t, env.DB.Create(&models.Product{
		Name:        "Shoe",
		Price:       49.99,
		Description: "leather",
	}).Error)

	rec := env.do(http.MethodPut, "/api/products/update/1", map[string]any{
		"price": 9.99,
	}, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Product updated successfully!", decodeMessage(t, rec))

	var prod models.Product
	require.NoError(t, env.DB.First(&prod, 1).Error)
	assert.Equal(t, 9.99, prod.Price)
	assert.Equal(t, "Shoe", prod.Name, "name must be unchanged")
	assert.Equal(t, "leather", prod.Description, "description must be unchanged")
}

func TestUpdateProductEmptyPatchStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "password")
	ck := env.login("alice", "password")

	require.NoError(t, env.DB.Create(&models.Product{Name: "Shoe", Price: 49.99}).Error)

	rec := env.do(http.MethodPut, "/api/products/update/1", map[string]any{}, ck)
	require.Equal(t, http.StatusOK, rec.Code)

	var prod models.Product
	require.NoError(t, env.DB.First(&prod, 1).Error)
	assert.Equal(t, "Shoe", prod.Name)
	assert.Equal(t, 49.99, prod.Price)
}

func TestUpdateProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "password")
	ck := env.login("alice", "password")

	rec := env.do(http.MethodPut, "/api/products/update/999", map[string]any{
		"name": "X",
	}, ck)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found!", decodeMessage(t, rec))

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count, "update of a missing id must not create a row")
}

func TestDeleteProductThenGet(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "password")
	ck := env.login("alice", "password")

	require.NoError(t, env.DB.Create(&models.Product{Name: "Shoe", Price: 49.99}).Error)

	rec := env.do(http.MethodDelete, "/api/products/delete/1", nil, ck)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Product deleted successfully!", decodeMessage(t, rec))

	rec = env.do(http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteProductNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.createUser("alice", "password")
	ck := env.login("alice", "password")

	rec := env.do(http.MethodDelete, "/api/products/delete/999", nil, ck)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Product not found!", decodeMessage(t, rec))
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		method string
		path   string
		body   map[string]any
	}{
		{method: http.MethodPost, path: "/api/products/add", body: map[string]any{"name": "Shoe", "price": 49.99}},
		{method: http.MethodPut, path: "/api/products/update/1", body: map[string]any{"name": "X"}},
		{method: http.MethodDelete, path: "/api/products/delete/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := env.do(tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusUnauthorized, rec.Code, "valid payloads still need a session")
		})
	}

	var count int64
	require.NoError(t, env.DB.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProtectedRoutesRejectGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	ck := &http.Cookie{Name: "session_token", Value: "not-a-real-token"}
	rec := env.do(http.MethodPost, "/api/products/add", map[string]any{
		"name": "Shoe", "price": 49.99,
	}, ck)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHelloWorld(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Hello World", rec.Body.String())
}
