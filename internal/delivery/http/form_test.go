package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postForm(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestShowForm(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := doJSON(router, "GET", "/", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, body, "<h2>Product 1</h2>")
	assert.Contains(t, body, `id="price1"`)
	assert.Contains(t, body, `id="unit1"`)
	assert.Contains(t, body, `<option value="fl oz">fl oz</option>`)
	assert.Contains(t, body, `<option value="lb">lb</option>`)
	assert.NotContains(t, body, "Product 2")
}

func TestSubmitForm(t *testing.T) {
	t.Run("add requires a unit for Product 1", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := postForm(router, url.Values{"rows": {"1"}, "action": {"add"}})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Please select a unit for Product 1 before adding another product")
		assert.NotContains(t, w.Body.String(), "Product 2")
	})

	t.Run("add appends a row limited to the base family", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := postForm(router, url.Values{
			"rows":   {"1"},
			"price1": {"2.50"},
			"unit1":  {"kg"},
			"action": {"add"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, "<h2>Product 2</h2>")
		assert.Contains(t, body, `value="2.50"`)
		assert.Contains(t, body, `name="rows" value="2"`)

		second := body[strings.Index(body, "<h2>Product 2</h2>"):]
		assert.Contains(t, second, `<option value="kg" selected>kg</option>`)
		assert.NotContains(t, second, `<option value="ml"`)
	})

	t.Run("delete renumbers the remaining rows", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := postForm(router, url.Values{
			"rows":   {"3"},
			"unit1":  {"L"},
			"price2": {"9.99"},
			"unit2":  {"ml"},
			"price3": {"4.44"},
			"unit3":  {"fl oz"},
			"action": {"delete:2"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.NotContains(t, body, "Product 3")
		assert.NotContains(t, body, "9.99")
		assert.Contains(t, body, `id="price2" step="0.01" name="price2" value="4.44"`)
		assert.Contains(t, body, `<option value="fl oz" selected>fl oz</option>`)
	})

	t.Run("delete of a missing row alerts", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := postForm(router, url.Values{"rows": {"1"}, "unit1": {"g"}, "action": {"delete:5"}})
		assert.Contains(t, w.Body.String(), "Product row not found")
	})

	t.Run("changing the base unit resets the other rows", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := postForm(router, url.Values{
			"rows":   {"2"},
			"unit1":  {"lb"},
			"unit2":  {"ml"},
			"action": {"base"},
		})
		body := w.Body.String()
		second := body[strings.Index(body, "<h2>Product 2</h2>"):]
		assert.Contains(t, second, `<option value="lb" selected>lb</option>`)
		assert.NotContains(t, second, `<option value="ml"`)
	})

	t.Run("an unknown first unit keeps every unit on later rows", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := postForm(router, url.Values{
			"rows":   {"2"},
			"price1": {"1"},
			"unit1":  {"cup"},
			"price2": {"2"},
			"unit2":  {"g"},
			"action": {"calculate"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, "Unknown unit")
		second := body[strings.Index(body, "<h2>Product 2</h2>"):]
		assert.Contains(t, second, `<option value="ml">ml</option>`)
		assert.Contains(t, second, `<option value="g" selected>g</option>`)
		assert.Contains(t, second, `<option value="lb">lb</option>`)
	})

	t.Run("calculate renders prices and alerts", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := postForm(router, url.Values{
			"rows":      {"3"},
			"price1":    {"10"},
			"quantity1": {"1"},
			"unit1":     {"kg"},
			"price2":    {"4"},
			"quantity2": {"1"},
			"unit2":     {"lb"},
			"price3":    {"3"},
			"quantity3": {"0"},
			"unit3":     {"g"},
			"action":    {"calculate"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		body := w.Body.String()
		assert.Contains(t, body, "<p>Product 1: $10.00000 per kg</p>")
		assert.Contains(t, body, "<p>Product 2: $8.81850 per kg</p>")
		assert.Contains(t, body, "Product 3: quantity must be a positive number greater than zero")
		assert.Contains(t, body, "Best value: Product 2")
	})

	t.Run("calculate without a base unit alerts", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := postForm(router, url.Values{"rows": {"1"}, "price1": {"1"}, "action": {"calculate"}})
		assert.Contains(t, w.Body.String(), "Please select a unit for Product 1")
		assert.NotContains(t, w.Body.String(), "per ")
	})
}
