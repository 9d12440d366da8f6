package models

// SalesPoint is the sales total of one day.
type SalesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// TopProduct is a product ranked by invoiced amount.
type TopProduct struct {
	Concept string  `json:"concept"`
	Items   int64   `json:"items"`
	Total   float64 `json:"total"`
}

// TopCustomer is a client ranked by invoiced amount.
type TopCustomer struct {
	Concept   string  `json:"concept"`
	Documents int64   `json:"documents"`
	Total     float64 `json:"total"`
}

// Dashboard combines the three analytics with their default parameters.
type Dashboard struct {
	SalesOverTime []SalesPoint  `json:"sales_over_time"`
	TopProducts   []TopProduct  `json:"top_products"`
	TopCustomers  []TopCustomer `json:"top_customers"`
}
