package payments

// Event types delivered by the processor's webhook.
const EventCheckoutCompleted = "checkout.session.completed"

// Event is a processor webhook payload. Only the fields the handler
// consumes are modeled.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object Session `json:"object"`
	} `json:"data"`
}

// Session is a hosted checkout session as returned by the processor and
// as embedded in webhook events.
type Session struct {
	ID              string            `json:"id"`
	URL             string            `json:"url"`
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"customer_details"`
}

// MetadataOrderID is the metadata key carrying the order id through the
// processor round trip.
const MetadataOrderID = "orderId"
