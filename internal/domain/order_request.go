package domain

import (
	"fmt"
	"strings"
)

// NewAddressOption is the address picker entry asking for a typed address.
const NewAddressOption = "new"

// RequestKind is the request type sent with logClientRequest.
type RequestKind string

const (
	RequestSwap    RequestKind = "swap"
	RequestRemoval RequestKind = "removal"
)

func (k RequestKind) Valid() bool {
	return k == RequestSwap || k == RequestRemoval
}

func (k RequestKind) Label() string {
	switch k {
	case RequestSwap:
		return "החלפה"
	case RequestRemoval:
		return "פינוי"
	default:
		return string(k)
	}
}

type OrderRequest struct {
	ActionType string
	// Address is the typed address; when empty SelectedAddress is used.
	Address         string
	SelectedAddress string
	Notes           string
	GPS             string
}

func (r OrderRequest) ResolvedAddress() string {
	if typed := strings.TrimSpace(r.Address); typed != "" {
		return typed
	}
	return strings.TrimSpace(r.SelectedAddress)
}

func (r OrderRequest) Validate() error {
	if strings.TrimSpace(r.ActionType) == "" {
		return fmt.Errorf("%w: action type is required", ErrValidation)
	}

	address := r.ResolvedAddress()
	if address == "" || address == NewAddressOption {
		return fmt.Errorf("%w: choose an existing address or type a new one", ErrValidation)
	}

	return nil
}

func (r OrderRequest) Details() string {
	notes := strings.TrimSpace(r.Notes)
	if notes == "" {
		notes = "אין"
	}

	details := fmt.Sprintf("כתובת: %s. הערות: %s.", r.ResolvedAddress(), notes)
	if gps := strings.TrimSpace(r.GPS); gps != "" {
		details += " מיקום GPS: " + gps
	}

	return details
}
