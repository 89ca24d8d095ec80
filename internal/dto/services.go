package dto

// ServiceResponse represents a catalog service in API responses
type ServiceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon"`
}
