package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/stockroom/internal/inventory/storage"
)

// ListPurchaseOrders returns purchase orders matching the filter, without
// lines.
func (s *Store) ListPurchaseOrders(ctx context.Context, filter storage.OrderFilter) ([]storage.PurchaseOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := `SELECT po.id, po.reference, po.supplier_id, c.name, po.status,
		 po.description, po.creation_date, po.target_date, po.total_price
		 FROM purchase_orders po JOIN companies c ON c.id = po.supplier_id`
	conditions, args := orderConditions("po", filter)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY po.reference LIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(filter.Limit), filter.Offset)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var orders []storage.PurchaseOrder
	for rows.Next() {
		order, err := scanPurchaseOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	return orders, nil
}

// GetPurchaseOrder returns one purchase order with its lines.
func (s *Store) GetPurchaseOrder(ctx context.Context, id int64) (storage.PurchaseOrder, error) {
	if err := ctx.Err(); err != nil {
		return storage.PurchaseOrder{}, err
	}
	if err := s.ready(); err != nil {
		return storage.PurchaseOrder{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT po.id, po.reference, po.supplier_id, c.name,
		 po.status, po.description, po.creation_date, po.target_date, po.total_price
		 FROM purchase_orders po JOIN companies c ON c.id = po.supplier_id
		 WHERE po.id = ?`, id)
	order, err := scanPurchaseOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.PurchaseOrder{}, storage.ErrNotFound
		}
		return storage.PurchaseOrder{}, fmt.Errorf("get purchase order: %w", err)
	}
	order.Lines, err = s.orderLines(ctx, "purchase_order_lines", "received", id)
	if err != nil {
		return storage.PurchaseOrder{}, err
	}
	return order, nil
}

// CreatePurchaseOrder inserts one purchase order with its lines.
func (s *Store) CreatePurchaseOrder(ctx context.Context, order storage.NewPurchaseOrder) (storage.PurchaseOrder, error) {
	if err := ctx.Err(); err != nil {
		return storage.PurchaseOrder{}, err
	}
	if err := s.ready(); err != nil {
		return storage.PurchaseOrder{}, err
	}
	reference := strings.TrimSpace(order.Reference)
	if reference == "" {
		return storage.PurchaseOrder{}, fmt.Errorf("order reference is required")
	}
	status := order.Status
	if status == 0 {
		status = storage.StatusPending
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.PurchaseOrder{}, fmt.Errorf("begin purchase order: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `INSERT INTO purchase_orders (
		   reference, supplier_id, status, description, creation_date, target_date, total_price
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		reference, order.SupplierID, status, strings.TrimSpace(order.Description),
		nullText(order.CreationDate), nullText(order.TargetDate), nullText(order.TotalPrice))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.PurchaseOrder{}, storage.ErrAlreadyExists
		}
		return storage.PurchaseOrder{}, fmt.Errorf("create purchase order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.PurchaseOrder{}, fmt.Errorf("create purchase order id: %w", err)
	}
	for _, line := range order.Lines {
		if _, err := tx.ExecContext(ctx, `INSERT INTO purchase_order_lines (
			   order_id, part_id, quantity, received, reference
			 ) VALUES (?, ?, ?, ?, ?)`,
			id, line.PartID, line.Quantity, line.Fulfilled, strings.TrimSpace(line.Reference)); err != nil {
			return storage.PurchaseOrder{}, fmt.Errorf("create purchase order line: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storage.PurchaseOrder{}, fmt.Errorf("commit purchase order: %w", err)
	}
	return s.GetPurchaseOrder(ctx, id)
}

// ListSalesOrders returns sales orders matching the filter, without lines.
func (s *Store) ListSalesOrders(ctx context.Context, filter storage.OrderFilter) ([]storage.SalesOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	query := `SELECT so.id, so.reference, so.customer_id, c.name, so.status,
		 so.description, so.creation_date, so.target_date
		 FROM sales_orders so JOIN companies c ON c.id = so.customer_id`
	conditions, args := orderConditions("so", filter)
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY so.reference LIMIT ? OFFSET ?"
	args = append(args, limitOrDefault(filter.Limit), filter.Offset)

	rows, err := s.sqlDB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()

	var orders []storage.SalesOrder
	for rows.Next() {
		order, err := scanSalesOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	return orders, nil
}

// GetSalesOrder returns one sales order with its lines.
func (s *Store) GetSalesOrder(ctx context.Context, id int64) (storage.SalesOrder, error) {
	if err := ctx.Err(); err != nil {
		return storage.SalesOrder{}, err
	}
	if err := s.ready(); err != nil {
		return storage.SalesOrder{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT so.id, so.reference, so.customer_id, c.name,
		 so.status, so.description, so.creation_date, so.target_date
		 FROM sales_orders so JOIN companies c ON c.id = so.customer_id
		 WHERE so.id = ?`, id)
	order, err := scanSalesOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.SalesOrder{}, storage.ErrNotFound
		}
		return storage.SalesOrder{}, fmt.Errorf("get sales order: %w", err)
	}
	order.Lines, err = s.orderLines(ctx, "sales_order_lines", "shipped", id)
	if err != nil {
		return storage.SalesOrder{}, err
	}
	return order, nil
}

// CreateSalesOrder inserts one sales order with its lines.
func (s *Store) CreateSalesOrder(ctx context.Context, order storage.NewSalesOrder) (storage.SalesOrder, error) {
	if err := ctx.Err(); err != nil {
		return storage.SalesOrder{}, err
	}
	if err := s.ready(); err != nil {
		return storage.SalesOrder{}, err
	}
	reference := strings.TrimSpace(order.Reference)
	if reference == "" {
		return storage.SalesOrder{}, fmt.Errorf("order reference is required")
	}
	status := order.Status
	if status == 0 {
		status = storage.StatusPending
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.SalesOrder{}, fmt.Errorf("begin sales order: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `INSERT INTO sales_orders (
		   reference, customer_id, status, description, creation_date, target_date
		 ) VALUES (?, ?, ?, ?, ?, ?)`,
		reference, order.CustomerID, status, strings.TrimSpace(order.Description),
		nullText(order.CreationDate), nullText(order.TargetDate))
	if err != nil {
		if isUniqueViolation(err) {
			return storage.SalesOrder{}, storage.ErrAlreadyExists
		}
		return storage.SalesOrder{}, fmt.Errorf("create sales order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.SalesOrder{}, fmt.Errorf("create sales order id: %w", err)
	}
	for _, line := range order.Lines {
		if _, err := tx.ExecContext(ctx, `INSERT INTO sales_order_lines (
			   order_id, part_id, quantity, shipped, reference
			 ) VALUES (?, ?, ?, ?, ?)`,
			id, line.PartID, line.Quantity, line.Fulfilled, strings.TrimSpace(line.Reference)); err != nil {
			return storage.SalesOrder{}, fmt.Errorf("create sales order line: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return storage.SalesOrder{}, fmt.Errorf("commit sales order: %w", err)
	}
	return s.GetSalesOrder(ctx, id)
}

// CreateCompany inserts one supplier or customer record.
func (s *Store) CreateCompany(ctx context.Context, company storage.NewCompany) (storage.Company, error) {
	if err := ctx.Err(); err != nil {
		return storage.Company{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Company{}, err
	}
	name := strings.TrimSpace(company.Name)
	if name == "" {
		return storage.Company{}, fmt.Errorf("company name is required")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO companies (name, is_supplier, is_customer) VALUES (?, ?, ?)`,
		name, company.IsSupplier, company.IsCustomer)
	if err != nil {
		return storage.Company{}, fmt.Errorf("create company: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.Company{}, fmt.Errorf("create company id: %w", err)
	}
	return storage.Company{ID: id, Name: name, IsSupplier: company.IsSupplier, IsCustomer: company.IsCustomer}, nil
}

// orderConditions builds the shared WHERE clauses for order listings. The
// company column differs per table but both filters use the same shape.
func orderConditions(alias string, filter storage.OrderFilter) ([]string, []any) {
	var conditions []string
	var args []any
	column := alias + ".supplier_id"
	if alias == "so" {
		column = alias + ".customer_id"
	}
	if filter.CompanyID != nil {
		conditions = append(conditions, column+" = ?")
		args = append(args, *filter.CompanyID)
	}
	if filter.Outstanding != nil {
		if *filter.Outstanding {
			conditions = append(conditions, alias+".status IN (?, ?)")
		} else {
			conditions = append(conditions, alias+".status NOT IN (?, ?)")
		}
		args = append(args, storage.StatusPending, storage.StatusInProgress)
	}
	return conditions, args
}

func (s *Store) orderLines(ctx context.Context, table, fulfilledColumn string, orderID int64) ([]storage.OrderLine, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT l.id, l.part_id, p.name, l.quantity,
		 l.`+fulfilledColumn+`, l.reference
		 FROM `+table+` l LEFT JOIN parts p ON p.id = l.part_id
		 WHERE l.order_id = ? ORDER BY l.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	var lines []storage.OrderLine
	for rows.Next() {
		var line storage.OrderLine
		var partID sql.NullInt64
		var partName sql.NullString
		if err := rows.Scan(&line.ID, &partID, &partName, &line.Quantity,
			&line.Fulfilled, &line.Reference); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		line.PartID = idOrNil(partID)
		if partName.Valid {
			name := partName.String
			line.PartName = &name
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	return lines, nil
}

func scanPurchaseOrder(row interface{ Scan(...any) error }) (storage.PurchaseOrder, error) {
	var order storage.PurchaseOrder
	var creationDate, targetDate, totalPrice sql.NullString
	err := row.Scan(&order.ID, &order.Reference, &order.SupplierID, &order.SupplierName,
		&order.Status, &order.Description, &creationDate, &targetDate, &totalPrice)
	if err != nil {
		return storage.PurchaseOrder{}, err
	}
	order.CreationDate = textOrEmpty(creationDate)
	order.TargetDate = textOrEmpty(targetDate)
	order.TotalPrice = textOrEmpty(totalPrice)
	return order, nil
}

func scanSalesOrder(row interface{ Scan(...any) error }) (storage.SalesOrder, error) {
	var order storage.SalesOrder
	var creationDate, targetDate sql.NullString
	err := row.Scan(&order.ID, &order.Reference, &order.CustomerID, &order.CustomerName,
		&order.Status, &order.Description, &creationDate, &targetDate)
	if err != nil {
		return storage.SalesOrder{}, err
	}
	order.CreationDate = textOrEmpty(creationDate)
	order.TargetDate = textOrEmpty(targetDate)
	return order, nil
}
