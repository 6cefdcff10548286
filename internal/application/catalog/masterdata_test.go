package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-motos/internal/application/catalog"
	"github.com/jhoicas/inventario-motos/internal/domain"
	"github.com/jhoicas/inventario-motos/internal/domain/entity"
)

func newMasterData(t *testing.T) (*catalog.MasterDataUseCase, *fixture) {
	t.Helper()
	f := newFixture(t)
	return catalog.NewMasterDataUseCase(f.category, f.supplier), f
}

// TestCreateCategory_NombreUnico verifica que el nombre de categoría es
// único y que el duplicado falla con ErrDuplicate.
func TestCreateCategory_NombreUnico(t *testing.T) {
	uc, _ := newMasterData(t)

	cat, err := uc.CreateCategory(context.Background(), "Frenos", "Sistema de frenado")
	require.NoError(t, err)
	assert.NotEmpty(t, cat.ID)
	assert.True(t, cat.Active)

	_, err = uc.CreateCategory(context.Background(), "Frenos", "otra descripción")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.CreateCategory(context.Background(), "", "sin nombre")
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}

// TestUpdateCategory_ChoqueDeNombre verifica que renombrar hacia el
// nombre de otra categoría falla, pero re-guardar el propio nombre no.
func TestUpdateCategory_ChoqueDeNombre(t *testing.T) {
	uc, _ := newMasterData(t)

	frenos, err := uc.CreateCategory(context.Background(), "Frenos", "")
	require.NoError(t, err)
	_, err = uc.CreateCategory(context.Background(), "Suspensión", "")
	require.NoError(t, err)

	_, err = uc.UpdateCategory(context.Background(), frenos.ID, "Suspensión", "")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := uc.UpdateCategory(context.Background(), frenos.ID, "Frenos", "descripción nueva")
	require.NoError(t, err)
	assert.Equal(t, "descripción nueva", updated.Description)

	_, err = uc.UpdateCategory(context.Background(), "no-existe", "X", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestDeleteCategory_SaleDelListado verifica el borrado lógico.
func TestDeleteCategory_SaleDelListado(t *testing.T) {
	uc, _ := newMasterData(t)

	cat, err := uc.CreateCategory(context.Background(), "Frenos", "")
	require.NoError(t, err)

	list, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, uc.DeleteCategory(context.Background(), cat.ID))

	list, err = uc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, uc.DeleteCategory(context.Background(), cat.ID+"x"), domain.ErrNotFound)
}

// TestSupplier_CRUD verifica alta, edición, consulta y borrado lógico de
// proveedores.
func TestSupplier_CRUD(t *testing.T) {
	uc, _ := newMasterData(t)

	sup, err := uc.CreateSupplier(context.Background(), entity.Supplier{
		Name:    "Importadora Yamaha",
		Contact: "Carlos Pérez",
		Phone:   "3001234567",
		Email:   "ventas@imp-yamaha.co",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sup.ID)

	_, err = uc.CreateSupplier(context.Background(), entity.Supplier{})
	assert.ErrorIs(t, err, domain.ErrBadRequest)

	updated, err := uc.UpdateSupplier(context.Background(), sup.ID, entity.Supplier{
		Name:  "Importadora Yamaha S.A.S.",
		Phone: "3009876543",
	})
	require.NoError(t, err)
	assert.Equal(t, "Importadora Yamaha S.A.S.", updated.Name)

	got, err := uc.GetSupplier(context.Background(), sup.ID)
	require.NoError(t, err)
	assert.Equal(t, "3009876543", got.Phone)

	require.NoError(t, uc.DeleteSupplier(context.Background(), sup.ID))
	list, err := uc.ListSuppliers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = uc.GetSupplier(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
