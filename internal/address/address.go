// Package address models customer addresses as a tagged variant per country
// rather than one struct with nullable country-specific fields. The two
// regions the marketplace operates in carry different field schemas and
// different currencies.
package address

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/clinlix/cleaning-marketplace/internal/pricing"
)

type Country string

const (
	CountryPortugal Country = "PT"
	CountryCanada   Country = "CA"
)

var (
	ErrUnknownCountry = errors.New("unknown address country")
)

// Address is one customer address. Every address is bound to exactly one
// cleaning package code, which fixes scope and base price for bookings there.
type Address interface {
	Country() Country
	Currency() pricing.Currency
	PackageCode() string
	// DisplayLine renders the address as a single line in the region's
	// conventional order.
	DisplayLine() string
}

type PortugalAddress struct {
	Rua          string `json:"rua"`
	Localidade   string `json:"localidade"`
	Distrito     string `json:"distrito"`
	CodigoPostal string `json:"codigo_postal"`
	Package      string `json:"package_code"`
}

func (a PortugalAddress) Country() Country { return CountryPortugal }
func (a PortugalAddress) Currency() pricing.Currency { return pricing.CurrencyEUR }
func (a PortugalAddress) PackageCode() string { return a.Package }

func (a PortugalAddress) DisplayLine() string {
	return joinParts(a.Rua, a.CodigoPostal+" "+a.Localidade, a.Distrito)
}

type CanadaAddress struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Package    string `json:"package_code"`
}

func (a CanadaAddress) Country() Country { return CountryCanada }
func (a CanadaAddress) Currency() pricing.Currency { return pricing.CurrencyCAD }
func (a CanadaAddress) PackageCode() string { return a.Package }

func (a CanadaAddress) DisplayLine() string {
	return joinParts(a.Street, a.City, a.Province+" "+a.PostalCode)
}

func joinParts(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, ", ")
}

// envelope is the wire form: the country tag discriminates the variant.
type envelope struct {
	Country Country         `json:"country"`
	Fields  json.RawMessage `json:"fields"`
}

// Decode parses an address envelope {"country": "PT"|"CA", "fields": {...}}.
func Decode(raw []byte) (Address, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode address envelope: %w", err)
	}

	switch env.Country {
	case CountryPortugal:
		var a PortugalAddress
		if err := json.Unmarshal(env.Fields, &a); err != nil {
			return nil, fmt.Errorf("decode portugal address: %w", err)
		}
		return a, nil
	case CountryCanada:
		var a CanadaAddress
		if err := json.Unmarshal(env.Fields, &a); err != nil {
			return nil, fmt.Errorf("decode canada address: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, env.Country)
	}
}

// Encode renders an address back into its envelope form.
func Encode(a Address) ([]byte, error) {
	fields, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encode address fields: %w", err)
	}
	return json.Marshal(envelope{Country: a.Country(), Fields: fields})
}
