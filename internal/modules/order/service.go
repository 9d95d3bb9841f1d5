package order

import (
	"context"
	"errors"
	"strings"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/validation"
	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxTotal is the first amount the total_amount column cannot hold.
var maxTotal = decimal.New(1, 10)

// Service defines the order management business logic.
type Service interface {
	// PlaceOrder prices every line from the current product records and
	// persists the order and its items atomically.
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error)

	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, f ListFilter, page web.PageRequest) ([]Order, web.Pagination, error)
	UpdateOrder(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (Stats, error)
}

// Recorder is notified of each committed order.
type Recorder interface {
	OrderPlaced(items int)
}

type nopRecorder struct{}

func (nopRecorder) OrderPlaced(int) {}

type service struct {
	repo     Repository
	recorder Recorder
}

// NewService creates a new order service. rec may be nil.
func NewService(repo Repository, rec Recorder) Service {
	if rec == nil {
		rec = nopRecorder{}
	}
	return &service{repo: repo, recorder: rec}
}

func (s *service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	status, payment := StatusPending, PaymentPending
	if req.Status != nil {
		status = *req.Status
	}
	if req.PaymentStatus != nil {
		payment = *req.PaymentStatus
	}

	var placed *Order
	err := s.repo.InTx(ctx, func(tx TxRepository) error {
		orderID, err := uuid.NewV7()
		if err != nil {
			return err
		}
		o := &Order{
			ID:            orderID,
			UserID:        req.UserID,
			CustomerEmail: req.CustomerEmail,
			CustomerName:  req.CustomerName,
			Status:        status,
			PaymentStatus: payment,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		}

		items := make([]OrderItem, 0, len(req.Items))
		total := decimal.Zero
		for _, line := range req.Items {
			p, err := tx.GetProductForOrder(ctx, line.ProductID)
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.Reference("Product with ID %s not found", line.ProductID)
			}
			if err != nil {
				return err
			}
			qty := 1
			if line.Quantity != nil {
				qty = *line.Quantity
			}
			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(qty)))
			total = total.Add(lineTotal)

			itemID, err := uuid.NewV7()
			if err != nil {
				return err
			}
			items = append(items, OrderItem{
				ID:         itemID,
				OrderID:    orderID,
				ProductID:  p.ID,
				Quantity:   qty,
				UnitPrice:  p.Price,
				TotalPrice: lineTotal,
				Product:    p,
			})
		}
		if total.GreaterThanOrEqual(maxTotal) {
			return apperr.Validation("order total must be less than %s", maxTotal)
		}
		o.TotalAmount = total

		if err := tx.InsertOrder(ctx, o); err != nil {
			return err
		}
		for i := range items {
			if err := tx.InsertItem(ctx, &items[i]); err != nil {
				return err
			}
		}
		o.Items = items
		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.recorder.OrderPlaced(len(placed.Items))
	return placed, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, f ListFilter, page web.PageRequest) ([]Order, web.Pagination, error) {
	if err := page.Validate(); err != nil {
		return nil, web.Pagination{}, err
	}
	if f.Status != nil && !f.Status.valid() {
		return nil, web.Pagination{}, apperr.Validation("status must be one of: pending processing completed cancelled")
	}
	if f.PaymentStatus != nil && !f.PaymentStatus.valid() {
		return nil, web.Pagination{}, apperr.Validation("payment_status must be one of: pending paid failed refunded")
	}
	orders, total, err := s.repo.ListOrders(ctx, f, page)
	if err != nil {
		return nil, web.Pagination{}, err
	}
	return orders, web.NewPagination(page, total), nil
}

func (s *service) UpdateOrder(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case req.CustomerEmail.Set && (req.CustomerEmail.Null || strings.TrimSpace(req.CustomerEmail.Value) == ""):
		return nil, apperr.Required("customer_email")
	case req.Status.Null:
		return nil, apperr.Validation("status cannot be null")
	case req.PaymentStatus.Null:
		return nil, apperr.Validation("payment_status cannot be null")
	case req.Status.Set && !req.Status.Value.valid():
		return nil, apperr.Validation("status must be one of: pending processing completed cancelled")
	case req.PaymentStatus.Set && !req.PaymentStatus.Value.valid():
		return nil, apperr.Validation("payment_status must be one of: pending paid failed refunded")
	}

	req.CustomerEmail.Apply(&o.CustomerEmail)
	o.CustomerEmail = strings.TrimSpace(o.CustomerEmail)
	req.CustomerName.ApplyNullable(&o.CustomerName)
	req.Status.Apply(&o.Status)
	req.PaymentStatus.Apply(&o.PaymentStatus)
	req.PaymentMethod.ApplyNullable(&o.PaymentMethod)
	req.Notes.ApplyNullable(&o.Notes)

	if err := s.repo.UpdateOrder(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteOrder(ctx, id)
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}
