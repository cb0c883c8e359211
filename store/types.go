// Package store holds annotated declarations used by the analyzer and
// reader tests and by the command line examples.
package store

import (
	"time"
)

// Product represents an individual item available for sale.
//
// @table products
// @index sku
// @index name
// @cache.ttl integer 300
// @cache.tags ["catalog", "public"]
type Product struct {
	// @column id
	// @primary
	ID int64 `json:"id"`
	// @column sku
	// @unique
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`        // @column name
	Description string    `json:"description"` // @column description @nullable
	PriceCents  int64     `json:"price_cents"`
	Inventory   int       `json:"inventory_count"`
	CreatedAt   time.Time `json:"created_at"`
}

/**
 * Customer represents the user placing orders.
 *
 * @table customers
 * @deprecated use Account
 */
type Customer struct {
	ID       int64
	Email    string
	FullName string
	Address  *string
	IsActive bool
}

// Order represents a transaction made by a customer.
//
// @table orders
// @relation.items OrderItem
// @relation.customer Customer
type Order struct {
	ID         int64
	CustomerID int64
	Status     OrderStatus
	TotalCents int64
	Items      []OrderItem
	OrderedAt  time.Time
	audit
}

// audit is embedded bookkeeping.
type audit struct {
	// @readonly
	UpdatedAt time.Time
}

// OrderItem represents a specific product line within an order.
type OrderItem struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice int64
}

// OrderStatus is a custom type for type-safe status handling.
//
// @enum
type OrderStatus string

const (
	// @label "Pending payment"
	StatusPending OrderStatus = "PENDING"
	// @label Paid
	StatusPaid      OrderStatus = "PAID"
	StatusShipped   OrderStatus = "SHIPPED"
	StatusCancelled OrderStatus = "CANCELLED"
)

// MaxItems caps the number of lines per order.
//
// @config.key orders.max_items
const MaxItems = 100

// DefaultCurrency is used when an order does not name one.
//
// @config.key orders.currency
// @value string EUR
var DefaultCurrency = "EUR"

// Total sums the order lines.
//
// @cost float 0.5
// @pure
func (o *Order) Total() int64 {
	var sum int64
	for _, it := range o.Items {
		sum += it.UnitPrice * int64(it.Quantity)
	}

	return sum
}

// NewOrder creates an empty pending order.
//
// @constructor
// @param customerID integer 0
func NewOrder(customerID int64) *Order {
	return &Order{CustomerID: customerID, Status: StatusPending}
}

// Broken carries a malformed strict-typed annotation.
//
// @limit integer ten
type Broken struct{}

// Misspelled uses a tag that looks like a built-in one.
//
// @limit intger 10
type Misspelled struct{}
