package types

// PaymentProvider is the closed set of mobile-money providers.
type PaymentProvider string

const (
	PaymentProviderMTN    PaymentProvider = "MTN"
	PaymentProviderAirtel PaymentProvider = "AIRTEL"
)

func (p PaymentProvider) Valid() bool {
	return p == PaymentProviderMTN || p == PaymentProviderAirtel
}

// PaymentStatus is the normalized provider callback status. Provider
// vocabularies are mapped onto this tri-state; anything a provider
// reports that we do not recognize normalizes to PENDING.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)
