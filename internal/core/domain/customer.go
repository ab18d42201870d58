package domain

// Customer is a directory entry used only for sale attribution by the core.
type Customer struct {
	CustomerID string `json:"customerID"` // Primary Key (UUID)
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	AuditFields
}
