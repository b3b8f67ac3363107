package sort

// Order is the result ordering strategy.
type Order string

// Sort order constants.
const (
	// IDAsc is the default catalog order.
	IDAsc    Order = "id_asc"
	IDDesc   Order = "id_desc"
	NameAsc  Order = "name_asc"
	NameDesc Order = "name_desc"
	// FavoritesFirst places the requester's favorited items ahead of all others.
	FavoritesFirst Order = "favorites_first"
)

// IsValid checks if the order is one of the supported values.
func (o Order) IsValid() bool {
	return o == IDAsc || o == IDDesc || o == NameAsc || o == NameDesc || o == FavoritesFirst
}

// IsPersonalized reports whether the ordering depends on the requester.
// Personalized orders must never share cache entries across requesters.
func (o Order) IsPersonalized() bool {
	return o == FavoritesFirst
}
