package subscription

// Event tags as sent by Hotmart. Paddle events are mapped onto the same set.
const (
	TagPurchaseApproved   = "PURCHASE_APPROVED"
	TagPurchaseComplete   = "PURCHASE_COMPLETE"
	TagPurchaseCanceled   = "PURCHASE_CANCELED"
	TagPurchaseRefunded   = "PURCHASE_REFUNDED"
	TagPurchaseChargeback = "PURCHASE_CHARGEBACK"
)

// Event is a billing event. The set of implementations is closed; anything
// not recognised arrives as Unknown.
type Event interface {
	Tag() string
	event()
}

// Approved grants access for one billing period.
type Approved struct {
	Email         string
	ProductID     string
	ProductName   string
	PurchaseToken string
}

// Completed is informational; it does not change the subscription.
type Completed struct {
	Email string
}

// Canceled ends the subscription.
type Canceled struct {
	Email string
}

// Refunded ends the subscription after a refund.
type Refunded struct {
	Email string
}

// Chargeback ends the subscription after a disputed payment.
type Chargeback struct {
	Email string
}

// Unknown carries the tag of an event this service does not handle.
type Unknown struct {
	Name string
}

func (Approved) Tag() string   { return TagPurchaseApproved }
func (Completed) Tag() string  { return TagPurchaseComplete }
func (Canceled) Tag() string   { return TagPurchaseCanceled }
func (Refunded) Tag() string   { return TagPurchaseRefunded }
func (Chargeback) Tag() string { return TagPurchaseChargeback }
func (u Unknown) Tag() string  { return u.Name }

func (Approved) event()   {}
func (Completed) event()  {}
func (Canceled) event()   {}
func (Refunded) event()   {}
func (Chargeback) event() {}
func (Unknown) event()    {}

// newEvent builds the variant for tag. Unrecognised tags become Unknown.
func newEvent(tag, email, productID, productName, purchaseToken string) Event {
	switch tag {
	case TagPurchaseApproved:
		return Approved{Email: email, ProductID: productID, ProductName: productName, PurchaseToken: purchaseToken}
	case TagPurchaseComplete:
		return Completed{Email: email}
	case TagPurchaseCanceled:
		return Canceled{Email: email}
	case TagPurchaseRefunded:
		return Refunded{Email: email}
	case TagPurchaseChargeback:
		return Chargeback{Email: email}
	default:
		return Unknown{Name: tag}
	}
}
