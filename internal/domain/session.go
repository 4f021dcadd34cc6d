package domain

import "strings"

// Session is an immutable snapshot of the logged-in client. Build it with
// NewSession; the derived address set is never supplied by callers.
type Session struct {
	ClientID   ClientID
	ClientName string
	Orders     []Order
	addresses  []string
}

func NewSession(id ClientID, data ClientData) Session {
	orders := make([]Order, len(data.Orders))
	copy(orders, data.Orders)

	return Session{
		ClientID:   id,
		ClientName: data.ClientName,
		Orders:     orders,
		addresses:  deriveAddresses(orders),
	}
}

func (s Session) Active() bool {
	return s.ClientID != ""
}

// Addresses returns the distinct non-empty order addresses in first-seen order.
func (s Session) Addresses() []string {
	out := make([]string, len(s.addresses))
	copy(out, s.addresses)
	return out
}

func (s Session) ActiveOrders() []Order {
	active := make([]Order, 0, len(s.Orders))
	for _, order := range s.Orders {
		if order.IsClosed() {
			continue
		}
		active = append(active, order)
	}

	return active
}

func (s Session) ActiveContainers() []Order {
	containers := make([]Order, 0, len(s.Orders))
	for _, order := range s.ActiveOrders() {
		if order.HasContainer() {
			containers = append(containers, order)
		}
	}

	return containers
}

// MainOrder is the first open order, the one the home page highlights.
func (s Session) MainOrder() (Order, bool) {
	for _, order := range s.Orders {
		if !order.IsClosed() {
			return order, true
		}
	}

	return Order{}, false
}

func deriveAddresses(orders []Order) []string {
	addresses := make([]string, 0, len(orders))
	seen := make(map[string]struct{}, len(orders))
	for _, order := range orders {
		address := strings.TrimSpace(order.Address)
		if address == "" {
			continue
		}
		if _, ok := seen[address]; ok {
			continue
		}
		seen[address] = struct{}{}
		addresses = append(addresses, address)
	}

	return addresses
}
