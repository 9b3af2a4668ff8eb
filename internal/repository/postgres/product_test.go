package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/database"
	apperrors "github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"
)

func newProductRepo(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return NewProductRepository(mock), mock
}

func sampleProduct() *domain.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.Product{
		ID:          "prod-001",
		Name:        "RX-78-2 Gundam",
		Description: "1/144 scale model kit",
		Price:       2500,
		ImagePath:   "/uploads/rx-78-2.jpg",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestProductRepository_Create(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	p := sampleProduct()
	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Name, p.Description, p.Price, p.ImagePath, p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	assert.NoError(t, repo.Create(context.Background(), p))
}

func TestProductRepository_GetByID(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	p := sampleProduct()
	rows := pgxmock.NewRows([]string{"id", "name", "description", "price", "image_path", "created_at", "updated_at"}).
		AddRow(p.ID, p.Name, p.Description, p.Price, p.ImagePath, p.CreatedAt, p.UpdatedAt)
	mock.ExpectQuery("SELECT").WithArgs(p.ID).WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.Price, got.Price)
}

func TestProductRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectQuery("SELECT").WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestProductRepository_GetByIDs(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	p := sampleProduct()
	rows := pgxmock.NewRows([]string{"id", "name", "description", "price", "image_path", "created_at", "updated_at"}).
		AddRow(p.ID, p.Name, p.Description, p.Price, p.ImagePath, p.CreatedAt, p.UpdatedAt)
	mock.ExpectQuery("SELECT").WithArgs([]string{p.ID, "missing"}).WillReturnRows(rows)

	products, err := repo.GetByIDs(context.Background(), []string{p.ID, "missing"})
	require.NoError(t, err)

	// Unknown IDs are dropped from the result, not errors.
	require.Len(t, products, 1)
	assert.Equal(t, p.ID, products[0].ID)
}

func TestProductRepository_GetByIDs_Empty(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	products, err := repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_Update_NotFound(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	p := sampleProduct()
	mock.ExpectExec("UPDATE products").
		WithArgs(p.Name, p.Description, p.Price, p.ImagePath, p.UpdatedAt, p.ID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), p)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestProductRepository_Delete(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectExec("DELETE FROM products").
		WithArgs("prod-001").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.Delete(context.Background(), "prod-001"))
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectExec("DELETE FROM products").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestProductRepository_RemoveImage(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectExec("DELETE FROM product_images").
		WithArgs("img-001", "prod-001").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, repo.RemoveImage(context.Background(), "prod-001", "img-001"))
}

func TestProductRepository_RemoveImage_NotFound(t *testing.T) {
	repo, mock := newProductRepo(t)
	defer mock.ExpectationsWereMet()

	mock.ExpectExec("DELETE FROM product_images").
		WithArgs("img-missing", "prod-001").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.RemoveImage(context.Background(), "prod-001", "img-missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
