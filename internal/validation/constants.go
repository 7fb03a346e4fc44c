package validation

const (
	// Amount limits, in wallet currency
	MinPaymentAmount = "0.01"
	MaxPaymentAmount = "10000000"

	// String lengths
	MaxRemarksLength = 500
	MaxIDLength      = 64
)
