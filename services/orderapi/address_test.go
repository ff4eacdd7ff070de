package orderapi

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressFromValues(t *testing.T) {
	values := url.Values{}
	values.Set("firstName", "Sam")
	values.Set("lastName", "Visser")
	values.Set("street", "Kerkstraat")
	values.Set("houseNumber", "12a")
	values.Set("postalCode", "1017 GC")
	values.Set("city", "Amsterdam")
	values.Set("countryCode", "NL")

	address, err := AddressFromValues(values)
	assert.NoError(t, err)
	assert.Equal(t, "Sam", address.FirstName)
	assert.Equal(t, "12a", address.HouseNumber)
	assert.Equal(t, "NL", address.CountryCode)
}

func TestAddressValidate(t *testing.T) {
	complete := Address{
		FirstName:   "Sam",
		LastName:    "Visser",
		Street:      "Kerkstraat",
		PostalCode:  "1017 GC",
		City:        "Amsterdam",
		CountryCode: "NL",
	}

	t.Run("Complete address is valid", func(t *testing.T) {
		assert.NoError(t, complete.Validate())
	})

	t.Run("Missing required field is rejected before any network call", func(t *testing.T) {
		incomplete := complete
		incomplete.City = "  "

		err := incomplete.Validate()
		assert.Error(t, err)
		assert.Equal(t, ErrorKindValidation, AsMutationError(err).Kind)
		assert.Contains(t, err.Error(), "city")
	})

	t.Run("Message names every missing field", func(t *testing.T) {
		incomplete := complete
		incomplete.Street = ""
		incomplete.PostalCode = ""
		incomplete.CountryCode = ""

		err := incomplete.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "country, postalCode, street")
	})
}
