package inquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/newindiatimber/timbercraft/internal/db"
)

const orderNumberAttempts = 10

// Filter narrows ListBulkOrders. Search matches order number, customer name,
// email and company.
type Filter struct {
	Status Status
	Search string
}

// Store persists bulk orders and contact messages.
type Store struct {
	db  *db.Handle
	now func() time.Time
}

func NewStore(h *db.Handle) *Store {
	return &Store{db: h, now: time.Now}
}

const bulkOrderColumns = `id, order_number, customer_name, customer_email, customer_phone, company,
	product_type, quantity, specifications, timeline, budget, notes, source, status,
	estimated_value, admin_notes, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanBulkOrder(row scanner) (BulkOrder, error) {
	var o BulkOrder
	var value sql.NullFloat64
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone, &o.Company,
		&o.ProductType, &o.Quantity, &o.Specifications, &o.Timeline, &o.Budget, &o.Notes, &o.Source, &o.Status,
		&value, &o.AdminNotes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return BulkOrder{}, err
	}
	if value.Valid {
		o.EstimatedValue = &value.Float64
	}
	return o, nil
}

// CreateBulkOrder validates and stores a new pending order.
func (s *Store) CreateBulkOrder(ctx context.Context, in BulkOrderInput) (BulkOrder, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return BulkOrder{}, err
	}

	// The unique index decides collisions; a taken number steps the clock a
	// millisecond and tries again.
	now := s.now()
	for i := 0; i < orderNumberAttempts; i++ {
		number := OrderNumber(now.Add(time.Duration(i) * time.Millisecond))

		var id int64
		err := s.db.QueryRowContext(ctx, s.db.Rebind(`
			INSERT INTO bulk_orders (order_number, customer_name, customer_email, customer_phone, company,
				product_type, quantity, specifications, timeline, budget, notes, source, status)
			VALUES (`+db.Placeholders(13)+`)
			ON CONFLICT (order_number) DO NOTHING
			RETURNING id
		`), number, in.CustomerName, in.CustomerEmail, in.CustomerPhone, in.Company, in.ProductType, in.Quantity,
			in.Specifications, in.Timeline, in.Budget, in.Notes, in.Source, StatusPending).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return BulkOrder{}, fmt.Errorf("insert bulk order: %w", err)
		}
		return s.GetBulkOrder(ctx, id)
	}
	return BulkOrder{}, fmt.Errorf("no free order number after %d attempts", orderNumberAttempts)
}

func (s *Store) GetBulkOrder(ctx context.Context, id int64) (BulkOrder, error) {
	row := s.db.QueryRowContext(ctx, s.db.Rebind(`SELECT `+bulkOrderColumns+` FROM bulk_orders WHERE id = ?`), id)
	o, err := scanBulkOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return BulkOrder{}, ErrNotFound
	}
	if err != nil {
		return BulkOrder{}, fmt.Errorf("query bulk order %d: %w", id, err)
	}
	return o, nil
}

// ListBulkOrders returns matching orders, newest first.
func (s *Store) ListBulkOrders(ctx context.Context, f Filter) ([]BulkOrder, error) {
	var where []string
	var args []any
	if f.Status != "" {
		where = append(where, "status = ?")
		args = append(args, f.Status)
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		like := "%" + q + "%"
		where = append(where, "(LOWER(order_number) LIKE ? OR LOWER(customer_name) LIKE ? OR customer_email LIKE ? OR LOWER(company) LIKE ?)")
		args = append(args, like, like, like, like)
	}

	query := `SELECT ` + bulkOrderColumns + ` FROM bulk_orders`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query bulk orders: %w", err)
	}
	defer rows.Close()

	orders := []BulkOrder{}
	for rows.Next() {
		o, err := scanBulkOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bulk order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bulk orders: %w", err)
	}
	return orders, nil
}

// TransitionBulkOrder moves order id along the status machine.
func (s *Store) TransitionBulkOrder(ctx context.Context, id int64, t Transition) (BulkOrder, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return BulkOrder{}, fmt.Errorf("begin transition: %w", err)
	}
	defer tx.Rollback()

	var current Status
	err = tx.QueryRowContext(ctx, s.db.Rebind(`SELECT status FROM bulk_orders WHERE id = ?`), id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return BulkOrder{}, ErrNotFound
	}
	if err != nil {
		return BulkOrder{}, fmt.Errorf("query bulk order status: %w", err)
	}

	if !CanTransition(current, t.Status) {
		return BulkOrder{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current, t.Status)
	}

	set := []string{"status = ?", "updated_at = CURRENT_TIMESTAMP"}
	args := []any{t.Status}
	if t.EstimatedValue != nil {
		set = append(set, "estimated_value = ?")
		args = append(args, *t.EstimatedValue)
	}
	if t.Notes != nil {
		notes := strings.TrimSpace(*t.Notes)
		if t.Status == StatusCancelled && notes != "" {
			notes = "Cancelled: " + notes
		}
		set = append(set, "admin_notes = ?")
		args = append(args, notes)
	}
	args = append(args, id)

	if _, err := tx.ExecContext(ctx, s.db.Rebind(`UPDATE bulk_orders SET `+strings.Join(set, ", ")+` WHERE id = ?`), args...); err != nil {
		return BulkOrder{}, fmt.Errorf("update bulk order status: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return BulkOrder{}, fmt.Errorf("commit transition: %w", err)
	}
	return s.GetBulkOrder(ctx, id)
}

// Stats counts orders per status and product type and sums estimated values.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	st := Stats{
		ByStatus:      make(map[Status]int, len(Statuses)),
		ByProductType: map[string]int{},
	}
	for _, status := range Statuses {
		st.ByStatus[status] = 0
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT status, product_type, COUNT(*), COALESCE(SUM(estimated_value), 0),
			COUNT(CASE WHEN estimated_value > 0 THEN 1 END)
		FROM bulk_orders
		GROUP BY status, product_type
	`)
	if err != nil {
		return Stats{}, fmt.Errorf("query bulk order stats: %w", err)
	}
	defer rows.Close()

	var valued int
	for rows.Next() {
		var status Status
		var productType string
		var count, withValue int
		var sum float64
		if err := rows.Scan(&status, &productType, &count, &sum, &withValue); err != nil {
			return Stats{}, fmt.Errorf("scan bulk order stats: %w", err)
		}
		st.Total += count
		st.ByStatus[status] += count
		st.ByProductType[productType] += count
		st.TotalEstimatedValue += sum
		valued += withValue
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate bulk order stats: %w", err)
	}
	if valued > 0 {
		st.AverageOrderValue = st.TotalEstimatedValue / float64(valued)
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contact_messages`).Scan(&st.ContactMessages); err != nil {
		return Stats{}, fmt.Errorf("count contact messages: %w", err)
	}
	return st, nil
}

// CreateContactMessage validates and stores a contact form submission.
func (s *Store) CreateContactMessage(ctx context.Context, in ContactInput) (ContactMessage, error) {
	in.normalize()
	if err := in.Validate(); err != nil {
		return ContactMessage{}, err
	}

	m := ContactMessage{ContactInput: in}
	err := s.db.QueryRowContext(ctx, s.db.Rebind(`
		INSERT INTO contact_messages (name, email, phone, subject, message)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at
	`), in.Name, in.Email, in.Phone, in.Subject, in.Message).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return ContactMessage{}, fmt.Errorf("insert contact message: %w", err)
	}
	return m, nil
}

// ListContactMessages returns up to limit messages, newest first. limit <= 0 means all.
func (s *Store) ListContactMessages(ctx context.Context, limit int) ([]ContactMessage, error) {
	query := `SELECT id, name, email, phone, subject, message, created_at FROM contact_messages ORDER BY created_at DESC, id DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query contact messages: %w", err)
	}
	defer rows.Close()

	messages := []ContactMessage{}
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact messages: %w", err)
	}
	return messages, nil
}
