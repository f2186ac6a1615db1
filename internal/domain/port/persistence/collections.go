package persistence

// Collection names used when staging mutations
const (
	CollectionServices      = "services"
	CollectionSaleItems     = "sale_items"
	CollectionUsers         = "users"
	CollectionServiceEvents = "service_events"
)
