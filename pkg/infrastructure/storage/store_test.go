package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/pkg/domain/model"
)

func writeFile(t *testing.T, path string, lines ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
}

func TestProductStoreLoad(t *testing.T) {
	t.Run("Missing file is an empty store", func(t *testing.T) {
		store, err := NewProductStore(filepath.Join(t.TempDir(), "products.txt"))
		require.NoError(t, err)
		assert.Empty(t, store.All())
	})

	t.Run("Skips malformed and blank lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		writeFile(t, path,
			productHeader,
			"P1|GPU|Graphics card|2499.99|12|S1",
			"P2|CPU|Processor|549.5|3|",
			"",
			"P3|RAM|broken row|99.9", // trailing incomplete record
			"P4|SSD|Drive|120|8|S1",
		)

		store, err := NewProductStore(path)
		require.NoError(t, err)

		products := store.All()
		require.Len(t, products, 3)
		assert.Equal(t, "P1", products[0].ID)
		assert.Equal(t, "P2", products[1].ID)
		assert.Equal(t, "P4", products[2].ID)
	})

	t.Run("Duplicate ids are last-write-wins", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		writeFile(t, path,
			productHeader,
			"P1|RTX 5090|first row|1999|5|",
			"P1|RTX 5090|second row|2499|7|",
		)

		store, err := NewProductStore(path)
		require.NoError(t, err)

		products := store.All()
		require.Len(t, products, 1)
		assert.Equal(t, "second row", products[0].Description)
		assert.Equal(t, 7, products[0].Stock)
	})

	t.Run("Headerless file still loads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		writeFile(t, path, "P1|GPU|Graphics card|2499.99|12|S1")

		store, err := NewProductStore(path)
		require.NoError(t, err)
		assert.Len(t, store.All(), 1)
	})

	t.Run("Idempotent load", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		writeFile(t, path,
			productHeader,
			"P1|GPU|Graphics card|2499.99|12|S1",
			"P2|CPU|Processor|549.5|3|",
		)

		first, err := NewProductStore(path)
		require.NoError(t, err)
		second, err := NewProductStore(path)
		require.NoError(t, err)

		assert.Equal(t, first.All(), second.All())
	})
}

func TestProductStorePersist(t *testing.T) {
	t.Run("Insert then reload round-trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		store, err := NewProductStore(path)
		require.NoError(t, err)

		product := &model.Product{ID: "P1", Name: "GPU", Description: "Graphics card", Price: 2499.99, Stock: 12, SupplierID: "S1"}
		require.NoError(t, store.Insert(product))

		reloaded, err := NewProductStore(path)
		require.NoError(t, err)
		require.Len(t, reloaded.All(), 1)
		assert.Equal(t, product, reloaded.All()[0])
	})

	t.Run("Update rewrites the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		store, err := NewProductStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Insert(&model.Product{ID: "P1", Name: "GPU", Price: 100, Stock: 10}))

		updated := &model.Product{ID: "P1", Name: "GPU", Price: 100, Stock: 7}
		require.NoError(t, store.Update(updated))

		reloaded, err := NewProductStore(path)
		require.NoError(t, err)
		got, err := reloaded.Find("P1")
		require.NoError(t, err)
		assert.Equal(t, 7, got.Stock)
	})

	t.Run("No temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "products.txt")
		store, err := NewProductStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Insert(&model.Product{ID: "P1", Name: "GPU", Price: 100, Stock: 10}))
		require.NoError(t, store.Update(&model.Product{ID: "P1", Name: "GPU", Price: 100, Stock: 9}))

		leftovers, err := filepath.Glob(path + ".tmp-*")
		require.NoError(t, err)
		assert.Empty(t, leftovers)
	})

	t.Run("Insert rejects duplicate id", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		store, err := NewProductStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Insert(&model.Product{ID: "P1", Name: "GPU", Price: 100, Stock: 10}))

		err = store.Insert(&model.Product{ID: "P1", Name: "Other", Price: 1, Stock: 1})
		assert.ErrorIs(t, err, model.ErrDuplicateID)
	})

	t.Run("Update rejects missing id", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		store, err := NewProductStore(path)
		require.NoError(t, err)

		err = store.Update(&model.Product{ID: "ghost", Name: "x", Price: 1, Stock: 1})
		assert.ErrorIs(t, err, model.ErrProductNotFound)
	})

	t.Run("Written file starts with the header", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "products.txt")
		store, err := NewProductStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Insert(&model.Product{ID: "P1", Name: "GPU", Price: 100, Stock: 10}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, productHeader, lines[0])
		assert.Equal(t, "P1|GPU||100|10|", lines[1])
	})
}

func TestSupplierStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suppliers.txt")
	store, err := NewSupplierStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Insert(&model.Supplier{ID: "S1", Name: "Acme", Contact: "acme@example.com"}))
	require.NoError(t, store.Insert(&model.Supplier{ID: "S2", Name: "Globex", Contact: ""}))

	err = store.Insert(&model.Supplier{ID: "S1", Name: "Dup", Contact: ""})
	assert.ErrorIs(t, err, model.ErrDuplicateID)

	reloaded, err := NewSupplierStore(path)
	require.NoError(t, err)
	suppliers := reloaded.All()
	require.Len(t, suppliers, 2)
	assert.Equal(t, "Acme", suppliers[0].Name)

	found, err := reloaded.Find("S2")
	require.NoError(t, err)
	assert.Equal(t, "Globex", found.Name)

	_, err = reloaded.Find("ghost")
	assert.ErrorIs(t, err, model.ErrSupplierNotFound)
}

func TestOrderStoreAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.txt")
	store, err := NewOrderStore(path)
	require.NoError(t, err)

	id, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, "O001", id)
	require.NoError(t, store.Insert(&model.Order{ID: id, ProductID: "P1", Quantity: 3, Date: "2024-01-01"}))

	id, err = store.NextID()
	require.NoError(t, err)
	assert.Equal(t, "O002", id)
	require.NoError(t, store.Insert(&model.Order{ID: id, ProductID: "P2", Quantity: 1, Date: "2024-01-02"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, orderHeader, lines[0])
	assert.Equal(t, "O001|P1|3|2024-01-01", lines[1])
	assert.Equal(t, "O002|P2|1|2024-01-02", lines[2])

	reloaded, err := NewOrderStore(path)
	require.NoError(t, err)
	require.Len(t, reloaded.All(), 2)

	nextID, err := reloaded.NextID()
	require.NoError(t, err)
	assert.Equal(t, "O003", nextID)

	err = reloaded.Insert(&model.Order{ID: "O001", ProductID: "P1", Quantity: 1, Date: "2024-01-03"})
	assert.ErrorIs(t, err, model.ErrDuplicateID)
}

func TestOrderStoreNextIDSkipsLostIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.txt")
	writeFile(t, path,
		orderHeader,
		"O001|P1|broken|2024-01-01", // quantity fails to parse, row is skipped
		"O002|P2|1|2024-01-02",
	)

	store, err := NewOrderStore(path)
	require.NoError(t, err)
	require.Len(t, store.All(), 1)

	// O001 survives on disk even though it did not load, so the next id
	// must continue past the highest suffix seen, not count loaded rows.
	id, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, "O003", id)
	require.NoError(t, store.Insert(&model.Order{ID: id, ProductID: "P3", Quantity: 2, Date: "2024-01-03"}))

	nextID, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, "O004", nextID)
}

func TestSupplierOrderStoreNextIDSkipsLostIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supplier_orders.txt")
	writeFile(t, path,
		supplierOrderHeader,
		"SO001|S1|P1|broken|2024-02-01",
		"SO002|S1|P2|5|2024-02-02",
	)

	store, err := NewSupplierOrderStore(path)
	require.NoError(t, err)
	require.Len(t, store.All(), 1)

	id, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, "SO003", id)
}

func TestAppendRecordPropagatesWriteErrors(t *testing.T) {
	dir := t.TempDir()
	err := appendRecord(dir, orderHeader, "O001|P1|1|2024-01-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), dir)
}

func TestSupplierOrderStoreAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supplier_orders.txt")
	store, err := NewSupplierOrderStore(path)
	require.NoError(t, err)

	id, err := store.NextID()
	require.NoError(t, err)
	assert.Equal(t, "SO001", id)
	require.NoError(t, store.Insert(&model.SupplierOrder{ID: id, SupplierID: "S1", ProductID: "P1", Quantity: 20, Date: "2024-02-01"}))

	reloaded, err := NewSupplierOrderStore(path)
	require.NoError(t, err)
	orders := reloaded.All()
	require.Len(t, orders, 1)
	assert.Equal(t, "S1", orders[0].SupplierID)
	assert.Equal(t, 20, orders[0].Quantity)
}
