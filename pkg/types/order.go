package types

// OrderStatus tracks an order through the payment pipeline. An order is
// created PENDING and moves to PAID or FAILED exactly once; EXPIRED is
// reserved for orders abandoned by the subscriber.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusFailed  OrderStatus = "FAILED"
	OrderStatusExpired OrderStatus = "EXPIRED"
)

// VoucherStatus is the single-use credential state. UNUSED -> USED is
// one-way.
type VoucherStatus string

const (
	VoucherStatusUnused VoucherStatus = "UNUSED"
	VoucherStatusUsed   VoucherStatus = "USED"
)
