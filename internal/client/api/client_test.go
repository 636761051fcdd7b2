package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	body   map[string]any
}

func newTestClient(t *testing.T, status int, reply string) (*Client, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		if r.ContentLength > 0 {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return NewClient(NewPipeline(srv.URL, srv.Client()).BeforeSend(JSONHeaders())), rec
}

const tokenReply = `{"access_token":"tok","token_type":"bearer","expires_in":3600,"user":{"id":1,"name":"Ana","email":"ana@x.com"}}`

func TestClient_Register(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, tokenReply)

	resp, err := c.Register(context.Background(), models.RegisterData{
		Name: "Ana", Email: "ana@x.com", Password: "secret1", PasswordConfirmation: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/auth/register", rec.path)
	assert.Equal(t, "secret1", rec.body["password_confirmation"])
	assert.Equal(t, "tok", resp.AccessToken)
	assert.Equal(t, "ana@x.com", resp.User.Email)
}

func TestClient_Login(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, tokenReply)

	resp, err := c.Login(context.Background(), models.LoginData{Email: "ana@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/login", rec.path)
	assert.Equal(t, int64(1), resp.User.ID)
}

func TestClient_Refresh(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, tokenReply)

	resp, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/refresh", rec.path)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
}

func TestClient_Logout(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `{"message":"Successfully logged out"}`)

	require.NoError(t, c.Logout(context.Background()))
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/logout", rec.path)
}

func TestClient_Me(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `{"id":3,"name":"Bo","email":"bo@x.com"}`)

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/users/me", rec.path)
	assert.Equal(t, "Bo", u.Name)
}

func TestClient_ListProducts(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK,
		`{"data":[{"id":2,"name":"Pen","price":1.5}],"current_page":2,"last_page":3,"per_page":10,"total":21}`)

	page, err := c.ListProducts(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "/api/products", rec.path)
	assert.Equal(t, "page=2", rec.query)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 1.5, page.Data[0].Price)
	assert.Equal(t, 21, page.Total)
}

func TestClient_ListProductsClampsPage(t *testing.T) {
	c, rec := newTestClient(t, http.StatusOK, `{"data":[],"current_page":1,"last_page":1,"per_page":10,"total":0}`)

	_, err := c.ListProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "page=1", rec.query)
}

func TestClient_ProductCRUD(t *testing.T) {
	c, rec := newTestClient(t, http.StatusCreated, `{"id":9,"name":"Cup","price":3}`)
	ctx := context.Background()

	p, err := c.CreateProduct(ctx, models.ProductData{Name: "Cup", Price: "3"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/products", rec.path)
	assert.Equal(t, "3", rec.body["price"])
	assert.Equal(t, int64(9), p.ID)

	_, err = c.GetProduct(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/api/products/9", rec.path)

	_, err = c.UpdateProduct(ctx, 9, models.ProductData{Name: "Mug", Price: "4"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "Mug", rec.body["name"])

	require.NoError(t, c.DeleteProduct(ctx, 9))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/products/9", rec.path)
}

func TestClient_ErrorsPropagate(t *testing.T) {
	c, _ := newTestClient(t, http.StatusNotFound, `{"message":"Product not found."}`)

	_, err := c.GetProduct(context.Background(), 1)
	var re *ResponseError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "Product not found.", re.Message)
}
