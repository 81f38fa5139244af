package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/batiendoconamor/bakery-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sentinel errors returned by the order service. Controllers use errors.Is to
// translate them into HTTP responses.
var (
	ErrClientNotFound  = errors.New("client not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOptionNotFound  = errors.New("attribute option not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrClientInactive  = errors.New("client is inactive or blocked")
	ErrProductInactive = errors.New("product is not available for sale")
	ErrOrderCancelled  = errors.New("order is cancelled")
)

// OrderLineInput is one requested line of a new order
type OrderLineInput struct {
	ProductID uint
	Quantity  decimal.Decimal
	OptionIDs []uint
}

// CreateOrderInput carries everything needed to build a new order.
// AdditionalCharge may be nil, meaning no flat extra charge.
type CreateOrderInput struct {
	ClientID         uint
	DeliveryAt       time.Time
	Notes            string
	AdditionalCharge *decimal.Decimal
	Lines            []OrderLineInput
}

// OrderService builds order aggregates and manages their lifecycle flags.
// The clock is injected so IssuedAt is deterministic in tests.
type OrderService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewOrderService creates an OrderService using the wall clock
func NewOrderService(db *gorm.DB) *OrderService {
	return NewOrderServiceWithClock(db, time.Now)
}

// NewOrderServiceWithClock creates an OrderService with a custom clock
func NewOrderServiceWithClock(db *gorm.DB, now func() time.Time) *OrderService {
	return &OrderService{db: db, now: now}
}

var orderServiceInstance *OrderService

// InitOrderService initializes the order service for the controllers
func InitOrderService(db *gorm.DB) *OrderService {
	orderServiceInstance = NewOrderService(db)
	return orderServiceInstance
}

// GetOrderService returns the initialized order service instance
func GetOrderService() *OrderService {
	return orderServiceInstance
}

// SetOrderService sets the order service instance (primarily for testing)
func SetOrderService(service *OrderService) {
	orderServiceInstance = service
}

// CreateOrder resolves all catalog references, snapshots the prices in effect
// right now, computes the subtotals and total, and persists the whole
// aggregate in one transaction. Any resolution failure rolls everything back;
// a partially written order never survives.
//
// Pricing rules:
//   - line subtotal = snapshot base price * quantity + option contributions
//   - each chosen option contributes its snapshot extra price * the line
//     quantity (a filling on 2 cakes is charged twice)
//   - order total = sum of line subtotals + additional charge
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	var created models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		if err := tx.First(&client, input.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrClientNotFound, input.ClientID)
			}
			return err
		}
		if !client.Active {
			return fmt.Errorf("%w: %s %s", ErrClientInactive, client.Name, client.Surname)
		}

		additionalCharge := decimal.Zero
		if input.AdditionalCharge != nil {
			additionalCharge = *input.AdditionalCharge
		}

		order := models.Order{
			IssuedAt:         s.now(),
			DeliveryAt:       input.DeliveryAt,
			Notes:            input.Notes,
			AdditionalCharge: additionalCharge,
			ClientID:         client.ID,
		}

		// The additional charge seeds the running total
		total := additionalCharge

		for _, lineInput := range input.Lines {
			var product models.Product
			if err := tx.First(&product, lineInput.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: id %d", ErrProductNotFound, lineInput.ProductID)
				}
				return err
			}
			if !product.Active {
				return fmt.Errorf("%w: %q", ErrProductInactive, product.Name)
			}

			line := models.OrderLine{
				ProductID:           product.ID,
				Quantity:            lineInput.Quantity,
				HistoricalBasePrice: product.BasePrice, // snapshot
			}
			subtotal := product.BasePrice.Mul(lineInput.Quantity)

			for _, optionID := range lineInput.OptionIDs {
				var option models.AttributeOption
				if err := tx.First(&option, optionID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: id %d", ErrOptionNotFound, optionID)
					}
					return err
				}

				line.Options = append(line.Options, models.OrderLineOption{
					AttributeOptionID:    option.ID,
					HistoricalExtraPrice: option.ExtraPrice, // snapshot
				})
				subtotal = subtotal.Add(option.ExtraPrice.Mul(lineInput.Quantity))
			}

			line.Subtotal = subtotal
			order.Lines = append(order.Lines, line)
			total = total.Add(subtotal)
		}

		order.Total = total

		// Create cascades to lines and options within this transaction
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return preloadOrder(tx).First(&created, order.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

// ListOrders returns all orders with lines, options and display references
// eagerly loaded, in primary-key order
func (s *OrderService) ListOrders() ([]models.Order, error) {
	var orders []models.Order
	if err := preloadOrder(s.db).Order("id").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder sets the cancelled flag. There is no guard: re-cancelling, or
// cancelling a delivered or paid order, is permitted and idempotent.
func (s *OrderService) CancelOrder(id uint) error {
	order, err := s.findOrder(id)
	if err != nil {
		return err
	}
	return s.db.Model(order).Update("cancelled", true).Error
}

// DeliverOrder marks the order delivered. Cancelled orders cannot be
// delivered. The flag is never reversed once set.
func (s *OrderService) DeliverOrder(id uint) error {
	order, err := s.findOrder(id)
	if err != nil {
		return err
	}
	if order.Cancelled {
		return fmt.Errorf("cannot deliver: %w", ErrOrderCancelled)
	}
	return s.db.Model(order).Update("delivered", true).Error
}

// PayOrder marks the order paid. Cancelled orders cannot be paid.
// The flag is never reversed once set.
func (s *OrderService) PayOrder(id uint) error {
	order, err := s.findOrder(id)
	if err != nil {
		return err
	}
	if order.Cancelled {
		return fmt.Errorf("cannot pay: %w", ErrOrderCancelled)
	}
	return s.db.Model(order).Update("paid", true).Error
}

func (s *OrderService) findOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrOrderNotFound, id)
		}
		return nil, err
	}
	return &order, nil
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Client").
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			// line order is part of the display contract
			return db.Order("order_lines.id")
		}).
		Preload("Lines.Product").
		Preload("Lines.Options.AttributeOption.Attribute")
}
