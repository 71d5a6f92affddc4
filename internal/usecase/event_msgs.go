package usecase

// Published to RabbitMQ after a confirmed checkout.
type OrderPlacedMsg struct {
	OrderID       string `json:"orderId"`
	UserID        string `json:"userId,omitempty"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	TotalAmount   string `json:"totalAmount"`
}

// Sent by the fulfilment side on Kafka when a delivery status changes.
type OrderStatusChangedMsg struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}
