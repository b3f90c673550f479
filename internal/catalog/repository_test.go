package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const medID = "4c1d7a0e-3b7a-4a43-9f0e-6b3c1a2d9e11"

var medicineCols = []string{
	"id", "name", "brand", "category", "subcategory",
	"price", "stock", "is_prescription_required", "expiry_date",
	"supplier", "description", "dosage", "side_effects", "interactions",
	"image_url", "created_at", "updated_at",
}

func medicineRows() *sqlmock.Rows {
	return sqlmock.NewRows(medicineCols)
}

func addMedicine(rows *sqlmock.Rows, id, name string, price float64, stock int, rx bool, expiry any) *sqlmock.Rows {
	now := time.Now()
	return rows.AddRow(
		id, name, "Brand", "OTC", "Pain Relief",
		price, stock, rx, expiry,
		"Supplier", "desc", "1 tablet", "{Nausea,Headache}", "{}",
		"https://img", now, now,
	)
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		expiry := time.Date(2027, 6, 15, 0, 0, 0, 0, time.UTC)
		mock.ExpectQuery(`SELECT .* FROM medicines m WHERE m.id = \$1`).
			WithArgs(medID).
			WillReturnRows(addMedicine(medicineRows(), medID, "Aspirin", 4.5, 10, false, expiry))

		m, err := repo.GetByID(ctx, medID)
		require.NoError(t, err)
		assert.Equal(t, "Aspirin", m.Name)
		assert.Equal(t, 4.5, m.Price)
		assert.Equal(t, []string{"Nausea", "Headache"}, m.SideEffects)
		assert.Equal(t, []string{}, m.Interactions)
		require.NotNil(t, m.ExpiryDate)
		assert.True(t, expiry.Equal(*m.ExpiryDate))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM medicines m WHERE m.id`).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, medID)
		assert.ErrorIs(t, err, ErrMedicineNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("No filters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM medicines m WHERE 1=1$`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery(`FROM medicines m WHERE 1=1 ORDER BY m.name ASC, m.id ASC LIMIT \$1 OFFSET \$2`).
			WithArgs(20, 0).
			WillReturnRows(addMedicine(medicineRows(), medID, "Aspirin", 4.5, 10, false, nil))

		meds, total, err := repo.List(ctx, ListParams{SortBy: SortByName, SortAsc: true, Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, meds, 1)
		assert.Nil(t, meds[0].ExpiryDate)
	})

	t.Run("All filters", func(t *testing.T) {
		minP, maxP := 1.0, 50.0
		params := ListParams{
			Filter: Filter{
				Category:    "OTC",
				Subcategory: "Pain Relief",
				Search:      "asp",
				MinPrice:    &minP,
				MaxPrice:    &maxP,
			},
			SortBy: SortByPrice,
			Page:   2,
			Limit:  10,
		}

		where := `m.category = \$1 AND m.subcategory = \$2 AND \(m.name ILIKE \$3 OR m.brand ILIKE \$3 OR m.description ILIKE \$3\) AND m.price >= \$4 AND m.price <= \$5`

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM medicines m WHERE 1=1 AND ` + where).
			WithArgs("OTC", "Pain Relief", "%asp%", minP, maxP).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))
		mock.ExpectQuery(where + ` ORDER BY m.price DESC, m.id ASC LIMIT \$6 OFFSET \$7`).
			WithArgs("OTC", "Pain Relief", "%asp%", minP, maxP, 10, 10).
			WillReturnRows(addMedicine(medicineRows(), medID, "Aspirin", 4.5, 10, false, nil))

		_, total, err := repo.List(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, 11, total)
	})

	t.Run("Count error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("db error"))

		_, _, err := repo.List(ctx, ListParams{Page: 1, Limit: 20})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "m.name ASC, m.id ASC", orderClause(SortByName, true))
	assert.Equal(t, "m.stock DESC, m.id ASC", orderClause(SortByStock, false))
	assert.Equal(t, "m.created_at DESC, m.id ASC", orderClause(SortByCreatedAt, false))
	// unknown fields never reach SQL
	assert.Equal(t, "m.name ASC, m.id ASC", orderClause("name; DROP TABLE medicines", true))
}

func TestRepository_Categories(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT DISTINCT category FROM medicines`).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("OTC").AddRow("Supplements"))
	mock.ExpectQuery(`SELECT DISTINCT subcategory FROM medicines`).
		WillReturnRows(sqlmock.NewRows([]string{"subcategory"}).AddRow("Pain Relief"))

	cats, err := NewRepository(db).Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"OTC", "Supplements"}, cats.Categories)
	assert.Equal(t, []string{"Pain Relief"}, cats.Subcategories)
}

func TestRepository_Popular(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`jsonb_array_elements\(o.items\)`).
		WithArgs(8).
		WillReturnRows(addMedicine(medicineRows(), medID, "Aspirin", 4.5, 10, false, nil))

	meds, err := NewRepository(db).Popular(context.Background(), 8)
	require.NoError(t, err)
	assert.Len(t, meds, 1)
}

func TestRepository_LowStockAndExpiring(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`WHERE m.stock <= \$1`).
		WithArgs(10).
		WillReturnRows(addMedicine(medicineRows(), medID, "Aspirin", 4.5, 3, false, nil))

	low, err := repo.LowStock(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, low[0].Stock)

	before := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`m.expiry_date <= \$1`).
		WithArgs(before).
		WillReturnRows(medicineRows())

	exp, err := repo.ExpiringBefore(ctx, before)
	require.NoError(t, err)
	assert.Empty(t, exp)
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	params := WriteParams{
		Name:        "Aspirin",
		Category:    "OTC",
		Price:       4.5,
		Stock:       10,
		SideEffects: []string{"Nausea"},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO medicines AS m`).
			WithArgs(
				medID, "Aspirin", "", "OTC", "",
				4.5, 10, false, nil,
				"", "", "", sqlmock.AnyArg(), sqlmock.AnyArg(), "",
			).
			WillReturnRows(addMedicine(medicineRows(), medID, "Aspirin", 4.5, 10, false, nil))

		m, err := repo.Create(context.Background(), medID, params)
		require.NoError(t, err)
		assert.Equal(t, medID, m.ID)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO medicines`).WillReturnError(errors.New("db error"))

		_, err := repo.Create(context.Background(), medID, params)
		assert.Error(t, err)
	})
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Update not found", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE medicines AS m SET`).WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(ctx, medID, WriteParams{Name: "X"})
		assert.ErrorIs(t, err, ErrMedicineNotFound)
	})

	t.Run("Update success", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE medicines AS m SET`).
			WillReturnRows(addMedicine(medicineRows(), medID, "Aspirin Forte", 6, 20, true, nil))

		m, err := repo.Update(ctx, medID, WriteParams{Name: "Aspirin Forte", Price: 6, Stock: 20, PrescriptionRequired: true})
		require.NoError(t, err)
		assert.True(t, m.PrescriptionRequired)
	})

	t.Run("Delete success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM medicines WHERE id = \$1`).
			WithArgs(medID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, medID))
	})

	t.Run("Delete not found", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM medicines`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, medID), ErrMedicineNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
