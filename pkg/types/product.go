package types

// ProductType identifies what a purchase unlocks. The catalog sells exactly
// two shapes of product: lifetime full access, or a single stack.
type ProductType string

const (
	ProductTypeFullAccess      ProductType = "full_access"
	ProductTypeIndividualStack ProductType = "individual_stack"
)

func (t ProductType) Valid() bool {
	return t == ProductTypeFullAccess || t == ProductTypeIndividualStack
}

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusFailed    PurchaseStatus = "failed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

// PaymentProvider tags which upstream processor a purchase came through.
type PaymentProvider string

const (
	PaymentProviderCreem PaymentProvider = "creem"
)
