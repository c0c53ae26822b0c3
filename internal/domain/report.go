package domain

// DeliveryReport counts how a multi-item relay run went.
type DeliveryReport struct {
	Attempted int
	Sent      int
}
