package inquiry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/newindiatimber/timbercraft/internal/validate"
)

var (
	ErrNotFound          = errors.New("inquiry not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError is returned for rejected submissions.
type ValidationError = validate.Error

// Status of a bulk order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled}

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an order may move from one status to another.
// Completed and cancelled orders are final.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Sources a bulk order inquiry can come from.
var Sources = []string{"website", "phone", "email", "referral"}

// BulkOrderInput is a bulk order inquiry as submitted.
type BulkOrderInput struct {
	CustomerName   string `json:"customerName"`
	CustomerEmail  string `json:"customerEmail"`
	CustomerPhone  string `json:"customerPhone"`
	Company        string `json:"company,omitempty"`
	ProductType    string `json:"productType"`
	Quantity       int    `json:"quantity"`
	Specifications string `json:"specifications,omitempty"`
	Timeline       string `json:"timeline,omitempty"`
	Budget         string `json:"budget,omitempty"`
	Notes          string `json:"additionalNotes,omitempty"`
	Source         string `json:"source,omitempty"`
}

// BulkOrder is a stored bulk order inquiry.
type BulkOrder struct {
	ID          int64  `json:"id"`
	OrderNumber string `json:"orderNumber"`
	BulkOrderInput
	Status         Status   `json:"status"`
	EstimatedValue *float64 `json:"estimatedValue"`
	AdminNotes     string   `json:"adminNotes"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

func (in *BulkOrderInput) normalize() {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.ToLower(strings.TrimSpace(in.CustomerEmail))
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.Company = strings.TrimSpace(in.Company)
	in.ProductType = strings.TrimSpace(in.ProductType)
	if in.Source == "" {
		in.Source = "website"
	}
}

// Validate checks a normalized submission.
func (in BulkOrderInput) Validate() error {
	return validate.First(
		validate.Required("customerName", in.CustomerName),
		validate.Required("customerEmail", in.CustomerEmail),
		validate.Email("customerEmail", in.CustomerEmail),
		validate.Required("customerPhone", in.CustomerPhone),
		validate.Phone("customerPhone", in.CustomerPhone),
		validate.Required("productType", in.ProductType),
		minQuantity(in.Quantity),
		validate.OneOf("source", in.Source, Sources...),
	)
}

func minQuantity(q int) error {
	if q < 1 {
		return validate.Fail("quantity", "must be at least 1")
	}
	return nil
}

// OrderNumber formats ORD-YYMMDD-NNNN where NNNN are the last four digits of the
// unix time in milliseconds.
func OrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%04d", now.Format("060102"), now.UnixMilli()%10000)
}

// Transition moves an order to a new status. EstimatedValue and Notes are only
// applied when set.
type Transition struct {
	Status         Status   `json:"status"`
	EstimatedValue *float64 `json:"estimatedValue,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
}

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	ID int64 `json:"id"`
	ContactInput
	CreatedAt string `json:"createdAt"`
}

func (in *ContactInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Subject = strings.TrimSpace(in.Subject)
	in.Message = strings.TrimSpace(in.Message)
}

// Validate checks a normalized contact message. Phone is optional.
func (in ContactInput) Validate() error {
	var phone error
	if in.Phone != "" {
		phone = validate.Phone("phone", in.Phone)
	}
	return validate.First(
		validate.Required("name", in.Name),
		validate.Required("email", in.Email),
		validate.Email("email", in.Email),
		phone,
		validate.Required("message", in.Message),
	)
}

// Stats summarizes bulk orders for the admin dashboard.
type Stats struct {
	Total               int            `json:"total"`
	ByStatus            map[Status]int `json:"byStatus"`
	ByProductType       map[string]int `json:"byProductType"`
	TotalEstimatedValue float64        `json:"totalEstimatedValue"`
	AverageOrderValue   float64        `json:"averageOrderValue"`
	ContactMessages     int            `json:"contactMessages"`
}
