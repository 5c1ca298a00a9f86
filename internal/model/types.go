// Package model defines domain types used by the service.
package model

// Product represents one orderable product for a particular user: the
// product's listing data plus how many units the user has ordered and how
// many they could still order.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl"`
	Price    float64 `json:"price"`
	// Available is the total quantity the user could set their order to
	// without exceeding the product's limit, or -1 if the product has no
	// limit.
	Available int `json:"available"`
	Ordered   int `json:"ordered"`
}

// User represents a member of the co-op.
type User struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Balance  float64 `json:"balance"`
}
