package domain

type ClientID string

const closedStatus = "סגור"

type Order struct {
	DocNumber     string
	Status        string
	Address       string
	ContainerID   string
	ContainerType string
	StartDate     string
	EndDate       string
	LastAction    string
	ActionType    string
	ETA           string
	DriverName    string
	DaysOnSite    string
}

func (o Order) IsClosed() bool {
	return o.Status == closedStatus
}

// HasContainer reports whether a container has been dropped on site for the order.
func (o Order) HasContainer() bool {
	return o.ContainerID != ""
}

type ClientData struct {
	ClientName string
	Orders     []Order
}
