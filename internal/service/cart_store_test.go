package service

import (
	"errors"
	"math"
	"testing"

	"github.com/estore-next/internal/constants"
	"github.com/estore-next/internal/models"
	"github.com/estore-next/internal/storage"
)

func TestCartSummaryScenario(t *testing.T) {
	items := []models.CartLineItem{
		{ID: "a", ProductID: 1, Price: models.MustMoney("199"), Quantity: 2, MaxStock: 10, Selected: true},
		{ID: "b", ProductID: 2, Price: models.MustMoney("99"), Quantity: 1, MaxStock: 10, Selected: false},
	}
	summary := SummarizeCart(items)
	if summary.Total.String() != "497.00" {
		t.Fatalf("expected total 497, got %s", summary.Total.String())
	}
	if summary.SelectedTotal.String() != "398.00" {
		t.Fatalf("expected selected total 398, got %s", summary.SelectedTotal.String())
	}
	if summary.ItemCount != 3 || summary.SelectedCount != 2 {
		t.Fatalf("unexpected counts: item=%d selected=%d", summary.ItemCount, summary.SelectedCount)
	}
	if summary.IsAllSelected || !summary.HasSelectedItems {
		t.Fatalf("unexpected selection flags: %+v", summary)
	}
	if summary.SelectedTotal.Cmp(summary.Total) > 0 {
		t.Fatalf("selected total must not exceed total")
	}
}

func TestIsAllSelectedEmptyCart(t *testing.T) {
	if IsAllSelected(nil) {
		t.Fatalf("empty cart must not be all selected")
	}
	if HasSelectedItems(nil) {
		t.Fatalf("empty cart has no selected items")
	}
}

func TestCartAddItemCreatesSelectedLine(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	product := testProduct(1, "iPhone", "199", 5)

	line, err := cart.AddItem(product, 0, nil)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if line.Quantity != 1 {
		t.Fatalf("quantity <= 0 should be coerced to 1, got %d", line.Quantity)
	}
	if !line.Selected || line.MaxStock != 5 || line.Image != "/img/iPhone.jpg" {
		t.Fatalf("unexpected line: %+v", line)
	}
	if line.ID == "" || line.ID == "1" {
		t.Fatalf("line id must be synthetic, got %q", line.ID)
	}
}

func TestCartAddItemOutOfStock(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	if _, err := cart.AddItem(testProduct(1, "sold-out", "10", 0), 1, nil); !errors.Is(err, ErrProductOutOfStock) {
		t.Fatalf("expected ErrProductOutOfStock, got %v", err)
	}
	if _, err := cart.AddItem(nil, 1, nil); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(cart.Items()) != 0 {
		t.Fatalf("cart must stay empty")
	}
}

func TestCartAddItemMergesSameVariant(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	product := testProduct(1, "shoe", "699", 5)
	black := models.Variant{"颜色": "黑色"}
	white := models.Variant{"颜色": "白色"}

	first, _ := cart.AddItem(product, 2, black)
	merged, _ := cart.AddItem(product, 2, models.Variant{"颜色": "黑色"})
	if merged.ID != first.ID || merged.Quantity != 4 {
		t.Fatalf("expected merge into %s with qty 4, got %+v", first.ID, merged)
	}
	other, _ := cart.AddItem(product, 1, white)
	if other.ID == first.ID {
		t.Fatalf("different variant must create a new line")
	}
	if len(cart.Items()) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items()))
	}

	// nil 与空规格视为同一行
	plain, _ := cart.AddItem(product, 1, nil)
	again, _ := cart.AddItem(product, 1, models.Variant{})
	if plain.ID != again.ID {
		t.Fatalf("nil and empty variants should merge")
	}
}

func TestCartAddItemClampsToCurrentStock(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	product := testProduct(1, "phone", "100", 10)
	if _, err := cart.AddItem(product, 8, nil); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	product.Stock = 3
	line, err := cart.AddItem(product, 1, nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if line.Quantity != 3 || line.MaxStock != 3 {
		t.Fatalf("expected quantity and max stock clamped to 3, got %+v", line)
	}
	fresh, _ := NewCartStore(storage.NewMemoryStorage(), "", nil).AddItem(testProduct(2, "x", "1", 4), 99, nil)
	if fresh.Quantity != 4 {
		t.Fatalf("new line must be clamped to stock, got %d", fresh.Quantity)
	}
	huge, _ := NewCartStore(storage.NewMemoryStorage(), "", nil).AddItem(testProduct(3, "y", "1", 4), math.MaxInt, nil)
	if huge.Quantity != 4 {
		t.Fatalf("new line with max int quantity must be clamped to stock, got %d", huge.Quantity)
	}
}

func TestCartMergeHugeQuantityClampsToStock(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	product := testProduct(1, "phone", "100", 50)
	if _, err := cart.AddItem(product, 5, nil); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	line, err := cart.AddItem(product, math.MaxInt, nil)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if line.Quantity != 50 {
		t.Fatalf("merge with huge quantity should clamp to stock 50, got %d", line.Quantity)
	}
}

func TestCartMergeLaw(t *testing.T) {
	for stock := 1; stock <= 6; stock++ {
		for a := 1; a <= 6; a++ {
			for b := 1; b <= 6; b++ {
				twice := NewCartStore(storage.NewMemoryStorage(), "", nil)
				product := testProduct(1, "p", "10", stock)
				twice.AddItem(product, a, models.Variant{"尺码": "42"})
				line, _ := twice.AddItem(product, b, models.Variant{"尺码": "42"})

				once := NewCartStore(storage.NewMemoryStorage(), "", nil)
				single, _ := once.AddItem(product, a+b, models.Variant{"尺码": "42"})

				if line.Quantity != single.Quantity {
					t.Fatalf("stock=%d a=%d b=%d: merged %d != single %d", stock, a, b, line.Quantity, single.Quantity)
				}
				if len(twice.Items()) != 1 {
					t.Fatalf("merge must keep one line")
				}
			}
		}
	}
}

func TestCartUpdateQuantityStaysInRange(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	line, _ := cart.AddItem(testProduct(1, "p", "10", 5), 1, nil)

	for q := 1; q <= 12; q++ {
		cart.UpdateQuantity(line.ID, q)
		got := cart.GetItem(1)
		if got == nil {
			t.Fatalf("line removed unexpectedly at q=%d", q)
		}
		if got.Quantity < 1 || got.Quantity > got.MaxStock {
			t.Fatalf("quantity %d out of [1,%d] after update to %d", got.Quantity, got.MaxStock, q)
		}
	}

	cart.UpdateQuantity("missing", 3)
	cart.UpdateQuantity(line.ID, 0)
	if cart.IsInCart(1) || len(cart.Items()) != 0 {
		t.Fatalf("updateQuantity(id, 0) must remove the line")
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	a, _ := cart.AddItem(testProduct(1, "a", "10", 5), 1, nil)
	cart.AddItem(testProduct(2, "b", "10", 5), 1, nil)

	cart.RemoveItem("missing")
	if len(cart.Items()) != 2 {
		t.Fatalf("removing unknown id must be a no-op")
	}
	cart.RemoveItem(a.ID)
	if cart.IsInCart(1) || !cart.IsInCart(2) {
		t.Fatalf("unexpected items after remove: %+v", cart.Items())
	}
	cart.ClearCart()
	if cart.ItemCount() != 0 {
		t.Fatalf("expected empty cart")
	}
}

func TestCartSelection(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	a, _ := cart.AddItem(testProduct(1, "a", "10", 5), 1, nil)
	cart.AddItem(testProduct(2, "b", "20", 5), 1, nil)

	cart.ToggleSelectItem(a.ID)
	if cart.Summary().IsAllSelected {
		t.Fatalf("expected partial selection")
	}
	if cart.SelectedTotal().String() != "20.00" {
		t.Fatalf("unexpected selected total %s", cart.SelectedTotal().String())
	}
	cart.ToggleSelectAll()
	if !cart.Summary().IsAllSelected {
		t.Fatalf("toggleSelectAll from partial should select all")
	}
	cart.ToggleSelectAll()
	if cart.Summary().HasSelectedItems {
		t.Fatalf("toggleSelectAll from all selected should unselect all")
	}
	cart.SelectAll()
	if len(cart.SelectedItems()) != 2 {
		t.Fatalf("selectAll should select every line")
	}
	cart.UnselectAll()
	if len(cart.SelectedItems()) != 0 {
		t.Fatalf("unselectAll should clear selection")
	}
}

func TestCartGetItemIgnoresVariant(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	product := testProduct(1, "shoe", "10", 5)
	first, _ := cart.AddItem(product, 1, models.Variant{"尺码": "41"})
	second, _ := cart.AddItem(product, 1, models.Variant{"尺码": "42"})

	if got := cart.GetItem(1); got == nil || got.ID != first.ID {
		t.Fatalf("GetItem should return first line, got %+v", got)
	}
	if got := cart.GetItemByVariant(1, models.Variant{"尺码": "42"}); got == nil || got.ID != second.ID {
		t.Fatalf("GetItemByVariant should match exact line, got %+v", got)
	}
	if got := cart.GetItemByVariant(1, models.Variant{"尺码": "43"}); got != nil {
		t.Fatalf("unexpected match %+v", got)
	}
}

func TestCartPersistsAndReloads(t *testing.T) {
	mem := storage.NewMemoryStorage()
	cart := NewCartStore(mem, "", nil)
	line, _ := cart.AddItem(testProduct(1, "a", "199", 5), 2, models.Variant{"颜色": "黑色"})
	cart.ToggleSelectItem(line.ID)

	raw, ok, _ := mem.GetItem(constants.StorageKeyCart)
	if !ok || len(raw) == 0 {
		t.Fatalf("cart should be persisted under %s", constants.StorageKeyCart)
	}

	reloaded := NewCartStore(mem, "", nil)
	items := reloaded.Items()
	if len(items) != 1 || items[0].ID != line.ID || items[0].Quantity != 2 || items[0].Selected {
		t.Fatalf("unexpected reloaded items: %+v", items)
	}
	if items[0].Variant["颜色"] != "黑色" {
		t.Fatalf("variant not restored: %+v", items[0].Variant)
	}
}

func TestCartLoadCorruptDataStartsEmpty(t *testing.T) {
	mem := storage.NewMemoryStorage()
	_ = mem.SetItem(constants.StorageKeyCart, []byte(`{not json`))
	log, logs := observedLogger()

	cart := NewCartStore(mem, "", log)
	if len(cart.Items()) != 0 {
		t.Fatalf("corrupt data should yield empty cart")
	}
	if logs.FilterMessage("storage_decode_failed").Len() != 1 {
		t.Fatalf("expected decode failure to be logged")
	}
}

func TestCartLoadNormalizesLines(t *testing.T) {
	mem := storage.NewMemoryStorage()
	_ = mem.SetItem(constants.StorageKeyCart, []byte(`[
		{"id":"a","product_id":1,"price":"10","quantity":9,"max_stock":3,"selected":true},
		{"id":"b","product_id":2,"price":"10","quantity":1,"max_stock":0,"selected":true},
		{"id":"c","product_id":3,"price":"10","quantity":0,"max_stock":2,"selected":false}
	]`))
	items := NewCartStore(mem, "", nil).Items()
	if len(items) != 2 {
		t.Fatalf("expected line without stock dropped, got %+v", items)
	}
	if items[0].Quantity != 3 || items[1].Quantity != 1 {
		t.Fatalf("quantities not clamped: %+v", items)
	}
}

func TestCartStorageFailureKeepsMemoryState(t *testing.T) {
	failing := &failingStorage{}
	log, logs := observedLogger()
	cart := NewCartStore(failing, "", log)

	if _, err := cart.AddItem(testProduct(1, "a", "10", 5), 1, nil); err != nil {
		t.Fatalf("storage failure must not surface: %v", err)
	}
	if !cart.IsInCart(1) {
		t.Fatalf("in-memory state must survive storage failure")
	}
	if logs.FilterMessage("storage_write_failed").Len() == 0 {
		t.Fatalf("expected write failure to be logged")
	}
	if logs.FilterMessage("storage_read_failed").Len() != 1 {
		t.Fatalf("expected read failure to be logged once")
	}
}

func TestCartConsumeItems(t *testing.T) {
	cart := NewCartStore(storage.NewMemoryStorage(), "", nil)
	a, _ := cart.AddItem(testProduct(1, "a", "10", 5), 1, nil)
	b, _ := cart.AddItem(testProduct(2, "b", "10", 5), 2, nil)
	cart.AddItem(testProduct(3, "c", "10", 5), 1, nil)

	cart.UpdateQuantity(b.ID, 5)
	cart.ConsumeItems([]models.CartLineItem{a, b, {ID: "missing", Quantity: 1}})
	items := cart.Items()
	if len(items) != 2 || items[0].ProductID != 2 || items[1].ProductID != 3 {
		t.Fatalf("unexpected remaining items: %+v", items)
	}
	if items[0].Quantity != 3 {
		t.Fatalf("line raised after snapshot should keep 3, got %d", items[0].Quantity)
	}
}
