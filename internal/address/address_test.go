package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinlix/cleaning-marketplace/internal/pricing"
)

func TestPortugalAddress(t *testing.T) {
	a := PortugalAddress{
		Rua:          "Rua das Flores 12",
		Localidade:   "Lisboa",
		Distrito:     "Lisboa",
		CodigoPostal: "1200-192",
		Package:      "t2_standard",
	}

	assert.Equal(t, CountryPortugal, a.Country())
	assert.Equal(t, pricing.CurrencyEUR, a.Currency())
	assert.Equal(t, "t2_standard", a.PackageCode())
	assert.Equal(t, "Rua das Flores 12, 1200-192 Lisboa, Lisboa", a.DisplayLine())
}

func TestCanadaAddress(t *testing.T) {
	a := CanadaAddress{
		Street:     "88 Queen St W",
		City:       "Toronto",
		Province:   "ON",
		PostalCode: "M5H 2M5",
		Package:    "condo_2br",
	}

	assert.Equal(t, CountryCanada, a.Country())
	assert.Equal(t, pricing.CurrencyCAD, a.Currency())
	assert.Equal(t, "88 Queen St W, Toronto, ON M5H 2M5", a.DisplayLine())
}

func TestDisplayLineSkipsEmptyParts(t *testing.T) {
	a := CanadaAddress{Street: "88 Queen St W", Province: "ON", PostalCode: "M5H 2M5"}
	assert.Equal(t, "88 Queen St W, ON M5H 2M5", a.DisplayLine())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := PortugalAddress{
		Rua:          "Avenida da Liberdade 1",
		Localidade:   "Porto",
		Distrito:     "Porto",
		CodigoPostal: "4000-322",
		Package:      "t3_deep",
	}

	raw, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeDiscriminatesByCountry(t *testing.T) {
	raw := []byte(`{"country":"CA","fields":{"street":"1 Main St","city":"Vancouver","province":"BC","postal_code":"V5K 0A1","package_code":"condo_2br"}}`)

	a, err := Decode(raw)
	require.NoError(t, err)

	ca, ok := a.(CanadaAddress)
	require.True(t, ok)
	assert.Equal(t, "Vancouver", ca.City)
}

func TestDecodeUnknownCountry(t *testing.T) {
	_, err := Decode([]byte(`{"country":"US","fields":{}}`))
	assert.ErrorIs(t, err, ErrUnknownCountry)
}
