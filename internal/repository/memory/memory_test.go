package memory_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/roze-storefront/internal/domain"
	"github.com/nikolayk812/roze-storefront/internal/port"
	"github.com/nikolayk812/roze-storefront/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_InTxRollsBack(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewCatalog()

	errBoom := errors.New("boom")
	id := uuid.New()

	err := repo.InTx(ctx, func(tx port.CatalogRepository) error {
		require.NoError(t, tx.EnsureCategory(ctx, "Nova"))
		_, err := tx.CreateProduct(ctx, domain.Product{ID: id, Name: "X"})
		require.NoError(t, err)
		return errBoom
	})
	require.ErrorIs(t, err, errBoom)

	_, err = repo.GetProduct(ctx, id)
	require.ErrorIs(t, err, domain.ErrNotFound)

	categories, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestCatalog_ListProductsOrderAndFilter(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewCatalog()

	for _, p := range []domain.Product{
		{Name: "Chanel", Category: "Feminino"},
		{Name: "Azzaro", Category: "Masculino"},
		{Name: "Boticário", Category: "Feminino"},
	} {
		_, err := repo.CreateProduct(ctx, p)
		require.NoError(t, err)
	}

	all, err := repo.ListProducts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Azzaro", all[0].Name)
	assert.Equal(t, "Chanel", all[2].Name)

	fem, err := repo.ListProducts(ctx, "Feminino")
	require.NoError(t, err)
	require.Len(t, fem, 2)
	assert.Equal(t, "Boticário", fem[0].Name)
}

func TestAccounts_InTxRollsBack(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewAccounts()

	err := repo.InTx(ctx, func(tx port.AccountRepository) error {
		if _, err := tx.CreateUser(ctx, domain.User{Email: "ana@example.com"}); err != nil {
			return err
		}
		_, err := tx.CreateSession(ctx, domain.Session{UserID: uuid.New(), ExpiresAt: time.Now()})
		return err
	})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = repo.GetUserByEmail(ctx, "ana@example.com")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestImages(t *testing.T) {
	store := memory.NewImages("http://localhost:8080/images/")

	name, err := store.Upload(t.Context(), "1-rosa.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/images/1-rosa.png", store.PublicURL(name))

	rec := httptest.NewRecorder()
	store.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/1-rosa.png", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-bytes", rec.Body.String())

	rec = httptest.NewRecorder()
	store.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/images/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestImages_PublicURLEscapesName(t *testing.T) {
	store := memory.NewImages("http://localhost:8080/images")

	name, err := store.Upload(t.Context(), "1-rosa#2?.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	publicURL := store.PublicURL(name)
	assert.Equal(t, "http://localhost:8080/images/1-rosa%232%3F.png", publicURL)

	rec := httptest.NewRecorder()
	store.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, publicURL, nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-bytes", rec.Body.String())
}

func TestCatalog_EmptyProductID(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewCatalog()

	_, err := repo.GetProduct(ctx, uuid.Nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = repo.UpdateProduct(ctx, domain.Product{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = repo.DeleteProduct(ctx, uuid.Nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
