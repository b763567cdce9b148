package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(""); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestOpenEnablesForeignKeys(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	var enabled int
	if err := store.sqlDB.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("read foreign key pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("foreign_keys = %d, want 1", enabled)
	}
}

func TestCreateGetPartRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	category := seedCategory(t, store, "Electronics", nil)
	part, err := store.CreatePart(context.Background(), storage.NewPart{
		Name:        "Resistor 10k",
		Description: "Quarter watt",
		CategoryID:  category.ID,
		IPN:         "R-10K",
		Units:       "pcs",
		Active:      true,
		Component:   true,
	})
	if err != nil {
		t.Fatalf("create part: %v", err)
	}

	got, err := store.GetPart(context.Background(), part.ID)
	if err != nil {
		t.Fatalf("get part: %v", err)
	}
	if got.Name != "Resistor 10k" {
		t.Fatalf("name = %q, want %q", got.Name, "Resistor 10k")
	}
	if got.CategoryID != category.ID {
		t.Fatalf("category_id = %d, want %d", got.CategoryID, category.ID)
	}
	if got.TotalStock != 0 {
		t.Fatalf("total stock = %v, want 0", got.TotalStock)
	}
	if len(got.Tags) != 0 {
		t.Fatalf("tags = %v, want none", got.Tags)
	}
}

func TestGetPartNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, err := store.GetPart(context.Background(), 999); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestListPartsFiltersByCategoryAndActive(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	electronics := seedCategory(t, store, "Electronics", nil)
	hardware := seedCategory(t, store, "Hardware", nil)
	seedPart(t, store, "Capacitor", electronics.ID)
	seedPart(t, store, "Bolt M3", hardware.ID)
	retired, err := store.CreatePart(context.Background(), storage.NewPart{
		Name: "Obsolete IC", CategoryID: electronics.ID, Active: false,
	})
	if err != nil {
		t.Fatalf("create retired part: %v", err)
	}

	active := true
	parts, err := store.ListParts(context.Background(), storage.PartFilter{
		CategoryID: &electronics.ID,
		Active:     &active,
	})
	if err != nil {
		t.Fatalf("list parts: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(parts))
	}
	if parts[0].Name != "Capacitor" {
		t.Fatalf("part = %q, want Capacitor", parts[0].Name)
	}
	_ = retired
}

func TestListPartsRequiresEveryTag(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	category := seedCategory(t, store, "Electronics", nil)
	tagged := seedPart(t, store, "MCU Board", category.ID)
	other := seedPart(t, store, "Sensor", category.ID)
	for _, name := range []string{"smd", "reviewed"} {
		if err := store.AddPartTag(context.Background(), tagged.ID, name); err != nil {
			t.Fatalf("tag part: %v", err)
		}
	}
	if err := store.AddPartTag(context.Background(), other.ID, "smd"); err != nil {
		t.Fatalf("tag part: %v", err)
	}

	parts, err := store.ListParts(context.Background(), storage.PartFilter{
		Tags: []string{"smd", "reviewed"},
	})
	if err != nil {
		t.Fatalf("list parts: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("parts = %d, want 1", len(parts))
	}
	if parts[0].ID != tagged.ID {
		t.Fatalf("part id = %d, want %d", parts[0].ID, tagged.ID)
	}
	if len(parts[0].Tags) != 2 {
		t.Fatalf("tags = %v, want 2 entries", parts[0].Tags)
	}
}

func TestSearchPartsMatchesNameDescriptionIPN(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	category := seedCategory(t, store, "Electronics", nil)
	if _, err := store.CreatePart(context.Background(), storage.NewPart{
		Name: "Voltage Regulator", Description: "Linear LDO", CategoryID: category.ID,
		IPN: "VR-3V3", Active: true,
	}); err != nil {
		t.Fatalf("create part: %v", err)
	}
	seedPart(t, store, "Bracket", category.ID)

	for _, query := range []string{"regulator", "LDO", "VR-3"} {
		parts, err := store.SearchParts(context.Background(), query, 10)
		if err != nil {
			t.Fatalf("search %q: %v", query, err)
		}
		if len(parts) != 1 {
			t.Fatalf("search %q = %d parts, want 1", query, len(parts))
		}
	}
}

func TestUpdatePartAppliesOnlyGivenFields(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	category := seedCategory(t, store, "Electronics", nil)
	part := seedPart(t, store, "Inductor", category.ID)

	name := "Inductor 10uH"
	inactive := false
	got, err := store.UpdatePart(context.Background(), part.ID, storage.PartUpdate{
		Name:   &name,
		Active: &inactive,
	})
	if err != nil {
		t.Fatalf("update part: %v", err)
	}
	if got.Name != name {
		t.Fatalf("name = %q, want %q", got.Name, name)
	}
	if got.Active {
		t.Fatal("expected part to be inactive")
	}
	if got.Description != part.Description {
		t.Fatalf("description changed to %q", got.Description)
	}
}

func TestUpdatePartNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	name := "Ghost"
	_, err := store.UpdatePart(context.Background(), 42, storage.PartUpdate{Name: &name})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestDeletePartCascades(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	assembly := seedPart(t, store, "Main Board", category.ID)
	part := seedPart(t, store, "Doomed Part", category.ID)
	location := seedLocation(t, store, "Shelf A", nil)
	supplier := seedCompany(t, store, "Acme Supply", true, false)

	if _, err := store.CreateStockItem(ctx, storage.NewStockItem{
		PartID: part.ID, LocationID: &location.ID, Quantity: 5,
	}); err != nil {
		t.Fatalf("create stock: %v", err)
	}
	if _, err := store.CreateBomItem(ctx, storage.NewBomItem{
		PartID: assembly.ID, SubPartID: part.ID, Quantity: 2,
	}); err != nil {
		t.Fatalf("create bom item: %v", err)
	}
	if _, err := store.CreateBuild(ctx, storage.NewBuild{
		Reference: "BO-0001", PartID: part.ID, Quantity: 10,
	}); err != nil {
		t.Fatalf("create build: %v", err)
	}
	if err := store.LinkSupplierPart(ctx, part.ID, supplier.ID, "SKU-1"); err != nil {
		t.Fatalf("link supplier part: %v", err)
	}
	order, err := store.CreatePurchaseOrder(ctx, storage.NewPurchaseOrder{
		Reference: "PO-0001", SupplierID: supplier.ID,
		Lines: []storage.NewOrderLine{{PartID: part.ID, Quantity: 100}},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}

	if err := store.DeletePart(ctx, part.ID); err != nil {
		t.Fatalf("delete part: %v", err)
	}

	items, err := store.ListStockItems(ctx, storage.StockFilter{PartID: &part.ID})
	if err != nil {
		t.Fatalf("list stock: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("stock items = %d, want 0", len(items))
	}
	bom, err := store.ListBomItems(ctx, storage.BomFilter{PartID: &assembly.ID})
	if err != nil {
		t.Fatalf("list bom: %v", err)
	}
	if len(bom) != 0 {
		t.Fatalf("bom items = %d, want 0", len(bom))
	}
	builds, err := store.ListBuilds(ctx, storage.BuildFilter{PartID: &part.ID})
	if err != nil {
		t.Fatalf("list builds: %v", err)
	}
	if len(builds) != 0 {
		t.Fatalf("builds = %d, want 0", len(builds))
	}

	got, err := store.GetPurchaseOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("get purchase order: %v", err)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("order lines = %d, want 1", len(got.Lines))
	}
	if got.Lines[0].PartID != nil {
		t.Fatalf("line part id = %v, want nil", *got.Lines[0].PartID)
	}
}

func TestPartUsedInAssemblies(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	assembly := seedPart(t, store, "Amplifier", category.ID)
	used := seedPart(t, store, "Transistor", category.ID)
	free := seedPart(t, store, "Sticker", category.ID)
	if _, err := store.CreateBomItem(ctx, storage.NewBomItem{
		PartID: assembly.ID, SubPartID: used.ID, Quantity: 4,
	}); err != nil {
		t.Fatalf("create bom item: %v", err)
	}

	got, err := store.PartUsedInAssemblies(ctx, used.ID)
	if err != nil {
		t.Fatalf("check used part: %v", err)
	}
	if !got {
		t.Fatal("expected part to be used in assemblies")
	}
	got, err = store.PartUsedInAssemblies(ctx, free.ID)
	if err != nil {
		t.Fatalf("check free part: %v", err)
	}
	if got {
		t.Fatal("expected part to be unused")
	}
}

func TestPartTotalStockSumsItems(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	part := seedPart(t, store, "Fuse", category.ID)
	for _, quantity := range []float64{2.5, 7.5} {
		if _, err := store.CreateStockItem(ctx, storage.NewStockItem{
			PartID: part.ID, Quantity: quantity,
		}); err != nil {
			t.Fatalf("create stock: %v", err)
		}
	}

	got, err := store.GetPart(ctx, part.ID)
	if err != nil {
		t.Fatalf("get part: %v", err)
	}
	if got.TotalStock != 10 {
		t.Fatalf("total stock = %v, want 10", got.TotalStock)
	}
}

func TestCategoryPathsAndCounts(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	root := seedCategory(t, store, "Electronics", nil)
	child := seedCategory(t, store, "Passives", &root.ID)
	if child.PathString != "Electronics/Passives" {
		t.Fatalf("pathstring = %q, want Electronics/Passives", child.PathString)
	}
	seedPart(t, store, "Resistor", root.ID)
	seedPart(t, store, "Capacitor", root.ID)

	parts, children, err := store.CategoryCounts(ctx, root.ID)
	if err != nil {
		t.Fatalf("category counts: %v", err)
	}
	if parts != 2 {
		t.Fatalf("part count = %d, want 2", parts)
	}
	if children != 1 {
		t.Fatalf("child count = %d, want 1", children)
	}

	listed, err := store.ListCategories(ctx, &root.ID, 10, 0)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != child.ID {
		t.Fatalf("children = %v, want only %d", listed, child.ID)
	}
}

func TestCategoryCountsNotFound(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	if _, _, err := store.CategoryCounts(context.Background(), 404); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestLocationPathsAndCounts(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	root := seedLocation(t, store, "Warehouse", nil)
	shelf := seedLocation(t, store, "Shelf 1", &root.ID)
	if shelf.PathString != "Warehouse/Shelf 1" {
		t.Fatalf("pathstring = %q, want Warehouse/Shelf 1", shelf.PathString)
	}
	category := seedCategory(t, store, "Electronics", nil)
	part := seedPart(t, store, "Cable", category.ID)
	if _, err := store.CreateStockItem(ctx, storage.NewStockItem{
		PartID: part.ID, LocationID: &shelf.ID, Quantity: 3,
	}); err != nil {
		t.Fatalf("create stock: %v", err)
	}

	items, children, err := store.LocationCounts(ctx, shelf.ID)
	if err != nil {
		t.Fatalf("location counts: %v", err)
	}
	if items != 1 {
		t.Fatalf("item count = %d, want 1", items)
	}
	if children != 0 {
		t.Fatalf("child count = %d, want 0", children)
	}
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	part := seedPart(t, store, "Diode", category.ID)
	item, err := store.CreateStockItem(ctx, storage.NewStockItem{PartID: part.ID, Quantity: 4})
	if err != nil {
		t.Fatalf("create stock: %v", err)
	}

	got, err := store.AdjustStock(ctx, item.ID, -10, "stocktake correction")
	if err != nil {
		t.Fatalf("adjust stock: %v", err)
	}
	if got.Quantity != 0 {
		t.Fatalf("quantity = %v, want 0", got.Quantity)
	}
	if got.Notes != "stocktake correction" {
		t.Fatalf("notes = %q, want stocktake correction", got.Notes)
	}
}

func TestTransferStockMovesItem(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	part := seedPart(t, store, "Relay", category.ID)
	source := seedLocation(t, store, "Bin A", nil)
	target := seedLocation(t, store, "Bin B", nil)
	item, err := store.CreateStockItem(ctx, storage.NewStockItem{
		PartID: part.ID, LocationID: &source.ID, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("create stock: %v", err)
	}

	got, err := store.TransferStock(ctx, item.ID, target.ID, "")
	if err != nil {
		t.Fatalf("transfer stock: %v", err)
	}
	if got.LocationID == nil || *got.LocationID != target.ID {
		t.Fatalf("location = %v, want %d", got.LocationID, target.ID)
	}

	if _, err := store.TransferStock(ctx, item.ID, 999, ""); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing location error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestStockTotalsByCategoryLocation(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	electronics := seedCategory(t, store, "Electronics", nil)
	hardware := seedCategory(t, store, "Hardware", nil)
	shelf := seedLocation(t, store, "Shelf", nil)
	resistor := seedPart(t, store, "Resistor", electronics.ID)
	capacitor := seedPart(t, store, "Capacitor", electronics.ID)
	bolt := seedPart(t, store, "Bolt", hardware.ID)

	for _, item := range []storage.NewStockItem{
		{PartID: resistor.ID, LocationID: &shelf.ID, Quantity: 10},
		{PartID: capacitor.ID, LocationID: &shelf.ID, Quantity: 5},
		{PartID: bolt.ID, Quantity: 7},
	} {
		if _, err := store.CreateStockItem(ctx, item); err != nil {
			t.Fatalf("create stock: %v", err)
		}
	}

	totals, err := store.StockTotalsByCategoryLocation(ctx, nil)
	if err != nil {
		t.Fatalf("stock totals: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("totals = %d rows, want 2", len(totals))
	}
	if totals[0].CategoryName != "Electronics" || totals[0].TotalQuantity != 15 {
		t.Fatalf("electronics row = %+v, want total 15", totals[0])
	}
	if totals[1].CategoryName != "Hardware" || totals[1].LocationID != nil {
		t.Fatalf("hardware row = %+v, want nil location", totals[1])
	}

	scoped, err := store.StockTotalsByCategoryLocation(ctx, &hardware.ID)
	if err != nil {
		t.Fatalf("scoped totals: %v", err)
	}
	if len(scoped) != 1 || scoped[0].TotalQuantity != 7 {
		t.Fatalf("scoped totals = %+v, want one row of 7", scoped)
	}
}

func TestPurchaseOrderRoundTripWithLines(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	part := seedPart(t, store, "Connector", category.ID)
	supplier := seedCompany(t, store, "Acme Supply", true, false)

	created, err := store.CreatePurchaseOrder(ctx, storage.NewPurchaseOrder{
		Reference:    "PO-0100",
		SupplierID:   supplier.ID,
		Description:  "Restock connectors",
		CreationDate: "2026-08-01",
		TargetDate:   "2026-09-01",
		TotalPrice:   "125.00",
		Lines: []storage.NewOrderLine{
			{PartID: part.ID, Quantity: 500, Fulfilled: 100, Reference: "line 1"},
		},
	})
	if err != nil {
		t.Fatalf("create purchase order: %v", err)
	}

	got, err := store.GetPurchaseOrder(ctx, created.ID)
	if err != nil {
		t.Fatalf("get purchase order: %v", err)
	}
	if got.SupplierName != "Acme Supply" {
		t.Fatalf("supplier = %q, want Acme Supply", got.SupplierName)
	}
	if got.TotalPrice != "125.00" {
		t.Fatalf("total price = %q, want 125.00", got.TotalPrice)
	}
	if len(got.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(got.Lines))
	}
	line := got.Lines[0]
	if line.PartID == nil || *line.PartID != part.ID {
		t.Fatalf("line part = %v, want %d", line.PartID, part.ID)
	}
	if line.Fulfilled != 100 {
		t.Fatalf("received = %v, want 100", line.Fulfilled)
	}
}

func TestDuplicateOrderReferenceReturnsAlreadyExists(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	supplier := seedCompany(t, store, "Acme Supply", true, false)
	order := storage.NewPurchaseOrder{Reference: "PO-DUP", SupplierID: supplier.ID}
	if _, err := store.CreatePurchaseOrder(ctx, order); err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := store.CreatePurchaseOrder(ctx, order); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate error = %v, want %v", err, storage.ErrAlreadyExists)
	}
}

func TestListPurchaseOrdersOutstandingFilter(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	supplier := seedCompany(t, store, "Acme Supply", true, false)
	for reference, status := range map[string]int64{
		"PO-P": storage.StatusPending,
		"PO-I": storage.StatusInProgress,
		"PO-C": storage.StatusComplete,
	} {
		if _, err := store.CreatePurchaseOrder(ctx, storage.NewPurchaseOrder{
			Reference: reference, SupplierID: supplier.ID, Status: status,
		}); err != nil {
			t.Fatalf("create order %s: %v", reference, err)
		}
	}

	outstanding := true
	orders, err := store.ListPurchaseOrders(ctx, storage.OrderFilter{Outstanding: &outstanding})
	if err != nil {
		t.Fatalf("list outstanding: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("outstanding = %d, want 2", len(orders))
	}

	outstanding = false
	orders, err = store.ListPurchaseOrders(ctx, storage.OrderFilter{Outstanding: &outstanding})
	if err != nil {
		t.Fatalf("list settled: %v", err)
	}
	if len(orders) != 1 || orders[0].Reference != "PO-C" {
		t.Fatalf("settled = %+v, want only PO-C", orders)
	}
}

func TestSalesOrderRoundTripWithLines(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	part := seedPart(t, store, "Gadget", category.ID)
	customer := seedCompany(t, store, "Widgets Inc", false, true)

	created, err := store.CreateSalesOrder(ctx, storage.NewSalesOrder{
		Reference:  "SO-0001",
		CustomerID: customer.ID,
		Lines: []storage.NewOrderLine{
			{PartID: part.ID, Quantity: 20, Fulfilled: 5},
		},
	})
	if err != nil {
		t.Fatalf("create sales order: %v", err)
	}

	got, err := store.GetSalesOrder(ctx, created.ID)
	if err != nil {
		t.Fatalf("get sales order: %v", err)
	}
	if got.CustomerName != "Widgets Inc" {
		t.Fatalf("customer = %q, want Widgets Inc", got.CustomerName)
	}
	if len(got.Lines) != 1 || got.Lines[0].Fulfilled != 5 {
		t.Fatalf("lines = %+v, want one line shipped 5", got.Lines)
	}
}

func TestListBuildsActiveFilter(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	part := seedPart(t, store, "Chassis", category.ID)
	for reference, status := range map[string]int64{
		"BO-P": storage.StatusPending,
		"BO-C": storage.StatusComplete,
	} {
		if _, err := store.CreateBuild(ctx, storage.NewBuild{
			Reference: reference, PartID: part.ID, Quantity: 1, Status: status,
		}); err != nil {
			t.Fatalf("create build %s: %v", reference, err)
		}
	}

	active := true
	builds, err := store.ListBuilds(ctx, storage.BuildFilter{Active: &active})
	if err != nil {
		t.Fatalf("list active builds: %v", err)
	}
	if len(builds) != 1 || builds[0].Reference != "BO-P" {
		t.Fatalf("active builds = %+v, want only BO-P", builds)
	}
	if builds[0].PartName != "Chassis" {
		t.Fatalf("part name = %q, want Chassis", builds[0].PartName)
	}
}

func TestListBomItemsByPart(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	assembly := seedPart(t, store, "Radio", category.ID)
	sub := seedPart(t, store, "Antenna", category.ID)
	if _, err := store.CreateBomItem(ctx, storage.NewBomItem{
		PartID: assembly.ID, SubPartID: sub.ID, Quantity: 1, Optional: true,
	}); err != nil {
		t.Fatalf("create bom item: %v", err)
	}

	items, err := store.ListBomItems(ctx, storage.BomFilter{PartID: &assembly.ID})
	if err != nil {
		t.Fatalf("list bom items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("bom items = %d, want 1", len(items))
	}
	if items[0].SubPartName != "Antenna" || !items[0].Optional {
		t.Fatalf("bom item = %+v, want optional Antenna", items[0])
	}
}

func TestTagsListAndSearch(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx := context.Background()
	category := seedCategory(t, store, "Electronics", nil)
	part := seedPart(t, store, "Module", category.ID)
	for _, name := range []string{"RoHS Compliant", "legacy"} {
		if err := store.AddPartTag(ctx, part.ID, name); err != nil {
			t.Fatalf("add tag %q: %v", name, err)
		}
	}

	tags, err := store.ListTags(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("tags = %d, want 2", len(tags))
	}
	if tags[0].Slug != "rohs-compliant" {
		t.Fatalf("slug = %q, want rohs-compliant", tags[0].Slug)
	}

	found, err := store.SearchTags(ctx, "rohs", 10)
	if err != nil {
		t.Fatalf("search tags: %v", err)
	}
	if len(found) != 1 || found[0].Name != "RoHS Compliant" {
		t.Fatalf("search = %+v, want RoHS Compliant", found)
	}
}

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func seedCategory(t *testing.T, store *Store, name string, parentID *int64) storage.Category {
	t.Helper()

	category, err := store.CreateCategory(context.Background(), storage.NewCategory{
		Name:     name,
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	return category
}

func seedLocation(t *testing.T, store *Store, name string, parentID *int64) storage.Location {
	t.Helper()

	location, err := store.CreateLocation(context.Background(), storage.NewLocation{
		Name:     name,
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("seed location %q: %v", name, err)
	}
	return location
}

func seedPart(t *testing.T, store *Store, name string, categoryID int64) storage.Part {
	t.Helper()

	part, err := store.CreatePart(context.Background(), storage.NewPart{
		Name:       name,
		CategoryID: categoryID,
		Active:     true,
		Component:  true,
	})
	if err != nil {
		t.Fatalf("seed part %q: %v", name, err)
	}
	return part
}

func seedCompany(t *testing.T, store *Store, name string, isSupplier, isCustomer bool) storage.Company {
	t.Helper()

	company, err := store.CreateCompany(context.Background(), storage.NewCompany{
		Name:       name,
		IsSupplier: isSupplier,
		IsCustomer: isCustomer,
	})
	if err != nil {
		t.Fatalf("seed company %q: %v", name, err)
	}
	return company
}
