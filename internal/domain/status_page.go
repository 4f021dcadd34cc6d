package domain

// StatusPage is the single-order view served by the legacy status endpoint.
type StatusPage struct {
	ClientName  string
	ActiveOrder *Order
	History     []HistoryEntry
}

type HistoryEntry struct {
	Action    string
	DocNumber string
	Date      string
	Address   string
	Status    string
}
