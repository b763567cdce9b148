// Package storage defines persistence contracts for inventory data.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested inventory record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Order and build status codes. Pending and InProgress together form the
// "outstanding" (orders) and "active" (builds) states.
const (
	StatusPending    = 10
	StatusInProgress = 20
	StatusComplete   = 30
	StatusCancelled  = 40
)

// Part is a single inventory part definition.
type Part struct {
	ID          int64
	Name        string
	Description string
	CategoryID  int64
	Active      bool
	IPN         string
	Revision    string
	Units       string
	Assembly    bool
	Component   bool
	Purchasable bool
	Salable     bool
	Trackable   bool
	Virtual     bool
	Locked      bool
	// TotalStock is the summed quantity of the part's stock items.
	TotalStock float64
	// Tags holds the part's tag names, sorted.
	Tags []string
}

// NewPart carries the fields required to create a part.
type NewPart struct {
	Name        string
	Description string
	CategoryID  int64
	IPN         string
	Revision    string
	Units       string
	Active      bool
	Assembly    bool
	Component   bool
	Purchasable bool
	Salable     bool
	Trackable   bool
	Virtual     bool
}

// PartUpdate carries optional field changes for a part. Nil fields are left
// untouched.
type PartUpdate struct {
	Name        *string
	Description *string
	Active      *bool
	IPN         *string
	Revision    *string
	Units       *string
}

// PartFilter narrows part listings. Tags requires parts carrying ALL of the
// given tag names.
type PartFilter struct {
	CategoryID *int64
	Active     *bool
	Tags       []string
	Limit      int
	Offset     int
}

// PartStore persists part definitions.
type PartStore interface {
	ListParts(ctx context.Context, filter PartFilter) ([]Part, error)
	GetPart(ctx context.Context, id int64) (Part, error)
	SearchParts(ctx context.Context, query string, limit int) ([]Part, error)
	CreatePart(ctx context.Context, part NewPart) (Part, error)
	UpdatePart(ctx context.Context, id int64, update PartUpdate) (Part, error)
	DeletePart(ctx context.Context, id int64) error
	PartUsedInAssemblies(ctx context.Context, id int64) (bool, error)
	AddPartTag(ctx context.Context, partID int64, name string) error
}

// Category is a node in the part category tree.
type Category struct {
	ID          int64
	Name        string
	Description string
	ParentID    *int64
	PathString  string
}

// NewCategory carries the fields required to create a category.
type NewCategory struct {
	Name        string
	Description string
	ParentID    *int64
}

// CategoryStore persists the part category tree.
type CategoryStore interface {
	ListCategories(ctx context.Context, parentID *int64, limit, offset int) ([]Category, error)
	GetCategory(ctx context.Context, id int64) (Category, error)
	// CategoryCounts returns the number of parts in a category and its
	// direct child category count.
	CategoryCounts(ctx context.Context, id int64) (parts int64, children int64, err error)
	// AllCategories returns every category ordered by name, for in-memory
	// tree assembly.
	AllCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, category NewCategory) (Category, error)
}

// Location is a node in the stock location tree.
type Location struct {
	ID          int64
	Name        string
	Description string
	ParentID    *int64
	PathString  string
}

// NewLocation carries the fields required to create a location.
type NewLocation struct {
	Name        string
	Description string
	ParentID    *int64
}

// LocationStore persists the stock location tree.
type LocationStore interface {
	ListLocations(ctx context.Context, parentID *int64, limit, offset int) ([]Location, error)
	GetLocation(ctx context.Context, id int64) (Location, error)
	// LocationCounts returns the number of stock items at a location and its
	// direct child location count.
	LocationCounts(ctx context.Context, id int64) (items int64, children int64, err error)
	AllLocations(ctx context.Context) ([]Location, error)
	CreateLocation(ctx context.Context, location NewLocation) (Location, error)
}

// StockItem is one tracked quantity of a part, optionally held at a location.
// PartName and LocationName are resolved from the joined rows.
type StockItem struct {
	ID           int64
	PartID       int64
	PartName     string
	LocationID   *int64
	LocationName *string
	Quantity     float64
	Serial       string
	Batch        string
	Status       int64
	Notes        string
	Updated      time.Time
}

// NewStockItem carries the fields required to create a stock item.
type NewStockItem struct {
	PartID     int64
	LocationID *int64
	Quantity   float64
	Serial     string
	Batch      string
	Status     int64
	Notes      string
}

// StockFilter narrows stock item listings.
type StockFilter struct {
	PartID     *int64
	LocationID *int64
	Limit      int
	Offset     int
}

// StockTotal is one row of the category/location stock pivot.
type StockTotal struct {
	CategoryID    int64
	CategoryName  string
	LocationID    *int64
	LocationName  string
	TotalQuantity float64
}

// StockStore persists stock items.
type StockStore interface {
	ListStockItems(ctx context.Context, filter StockFilter) ([]StockItem, error)
	GetStockItem(ctx context.Context, id int64) (StockItem, error)
	CreateStockItem(ctx context.Context, item NewStockItem) (StockItem, error)
	// AdjustStock changes an item's quantity by delta. The resulting
	// quantity never drops below zero.
	AdjustStock(ctx context.Context, id int64, delta float64, notes string) (StockItem, error)
	// TransferStock moves an item to another location.
	TransferStock(ctx context.Context, id int64, locationID int64, notes string) (StockItem, error)
	// StockTotalsByCategoryLocation aggregates stock quantity per
	// category/location pair, ordered by category then location.
	StockTotalsByCategoryLocation(ctx context.Context, categoryID *int64) ([]StockTotal, error)
}

// Company is a supplier or customer referenced by orders.
type Company struct {
	ID         int64
	Name       string
	IsSupplier bool
	IsCustomer bool
}

// NewCompany carries the fields required to create a company.
type NewCompany struct {
	Name       string
	IsSupplier bool
	IsCustomer bool
}

// OrderLine is one line of a purchase or sales order. Fulfilled holds the
// received quantity for purchase lines and the shipped quantity for sales
// lines. PartID is nil when the referenced part has been deleted.
type OrderLine struct {
	ID        int64
	PartID    *int64
	PartName  *string
	Quantity  float64
	Fulfilled float64
	Reference string
}

// NewOrderLine carries the fields required to create an order line.
type NewOrderLine struct {
	PartID    int64
	Quantity  float64
	Fulfilled float64
	Reference string
}

// PurchaseOrder is an inbound order placed with a supplier. Lines is
// populated by point lookups only. Dates are ISO-8601 day strings, empty
// when unset.
type PurchaseOrder struct {
	ID           int64
	Reference    string
	SupplierID   int64
	SupplierName string
	Status       int64
	Description  string
	CreationDate string
	TargetDate   string
	TotalPrice   string
	Lines        []OrderLine
}

// NewPurchaseOrder carries the fields required to create a purchase order.
type NewPurchaseOrder struct {
	Reference    string
	SupplierID   int64
	Status       int64
	Description  string
	CreationDate string
	TargetDate   string
	TotalPrice   string
	Lines        []NewOrderLine
}

// SalesOrder is an outbound order placed by a customer.
type SalesOrder struct {
	ID           int64
	Reference    string
	CustomerID   int64
	CustomerName string
	Status       int64
	Description  string
	CreationDate string
	TargetDate   string
	Lines        []OrderLine
}

// NewSalesOrder carries the fields required to create a sales order.
type NewSalesOrder struct {
	Reference    string
	CustomerID   int64
	Status       int64
	Description  string
	CreationDate string
	TargetDate   string
	Lines        []NewOrderLine
}

// OrderFilter narrows order listings. Outstanding selects orders whose
// status is pending or in progress (or excludes them when false).
type OrderFilter struct {
	CompanyID   *int64
	Outstanding *bool
	Limit       int
	Offset      int
}

// OrderStore persists purchase and sales orders.
type OrderStore interface {
	ListPurchaseOrders(ctx context.Context, filter OrderFilter) ([]PurchaseOrder, error)
	GetPurchaseOrder(ctx context.Context, id int64) (PurchaseOrder, error)
	CreatePurchaseOrder(ctx context.Context, order NewPurchaseOrder) (PurchaseOrder, error)
	ListSalesOrders(ctx context.Context, filter OrderFilter) ([]SalesOrder, error)
	GetSalesOrder(ctx context.Context, id int64) (SalesOrder, error)
	CreateSalesOrder(ctx context.Context, order NewSalesOrder) (SalesOrder, error)
	CreateCompany(ctx context.Context, company NewCompany) (Company, error)
}

// Build is an order to assemble a quantity of a part.
type Build struct {
	ID             int64
	Reference      string
	PartID         int64
	PartName       string
	Quantity       float64
	Completed      float64
	Status         int64
	CreationDate   string
	TargetDate     string
	CompletionDate string
	Notes          string
	DestinationID  *int64
}

// NewBuild carries the fields required to create a build order.
type NewBuild struct {
	Reference      string
	PartID         int64
	Quantity       float64
	Completed      float64
	Status         int64
	CreationDate   string
	TargetDate     string
	CompletionDate string
	Notes          string
	DestinationID  *int64
}

// BuildFilter narrows build listings. Active selects builds whose status is
// pending or in progress.
type BuildFilter struct {
	PartID *int64
	Active *bool
	Limit  int
	Offset int
}

// BuildStore persists build orders.
type BuildStore interface {
	ListBuilds(ctx context.Context, filter BuildFilter) ([]Build, error)
	GetBuild(ctx context.Context, id int64) (Build, error)
	CreateBuild(ctx context.Context, build NewBuild) (Build, error)
}

// BomItem is one bill-of-materials row linking an assembly to a sub-part.
type BomItem struct {
	ID            int64
	PartID        int64
	PartName      string
	SubPartID     int64
	SubPartName   string
	Quantity      float64
	Reference     string
	Optional      bool
	Consumable    bool
	AllowVariants bool
	Inherited     bool
}

// NewBomItem carries the fields required to create a BOM row.
type NewBomItem struct {
	PartID        int64
	SubPartID     int64
	Quantity      float64
	Reference     string
	Optional      bool
	Consumable    bool
	AllowVariants bool
	Inherited     bool
}

// BomFilter narrows BOM listings.
type BomFilter struct {
	PartID    *int64
	SubPartID *int64
	Limit     int
	Offset    int
}

// BomStore persists bill-of-materials rows.
type BomStore interface {
	ListBomItems(ctx context.Context, filter BomFilter) ([]BomItem, error)
	CreateBomItem(ctx context.Context, item NewBomItem) (BomItem, error)
}

// Tag is a free-form label attachable to parts.
type Tag struct {
	ID   int64
	Name string
	Slug string
}

// TagStore persists tags.
type TagStore interface {
	ListTags(ctx context.Context, limit, offset int) ([]Tag, error)
	SearchTags(ctx context.Context, query string, limit int) ([]Tag, error)
}

// Store aggregates every inventory persistence contract.
type Store interface {
	PartStore
	CategoryStore
	LocationStore
	StockStore
	OrderStore
	BuildStore
	BomStore
	TagStore
}
