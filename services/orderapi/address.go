package orderapi

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	formcodec "github.com/go-playground/form/v4"

	"github.com/softloom/storefront/lib/myerrors"
)

type Address struct {
	FirstName   string `json:"first_name" form:"firstName"`
	LastName    string `json:"last_name" form:"lastName"`
	Street      string `json:"street" form:"street"`
	HouseNumber string `json:"house_number" form:"houseNumber"`
	PostalCode  string `json:"postal_code" form:"postalCode"`
	City        string `json:"city" form:"city"`
	State       string `json:"state" form:"state"`
	CountryCode string `json:"country_code" form:"countryCode"`
	Phone       string `json:"phone" form:"phone"`
}

func AddressFromRequest(r *http.Request) (Address, error) {
	err := r.ParseForm()
	if err != nil {
		return Address{}, myerrors.NewInvalidInputError(err)
	}

	return AddressFromValues(r.Form)
}

func AddressFromValues(values url.Values) (Address, error) {
	address := Address{}
	err := formcodec.NewDecoder().Decode(&address, values)
	if err != nil {
		return address, fmt.Errorf("error decoding form: %s", err)
	}

	return address, nil
}

// Validate is the pre-network check: obviously incomplete addresses are
// rejected before a single backend call is made.
func (a Address) Validate() error {
	missing := []string{}
	for field, value := range map[string]string{
		"firstName":  a.FirstName,
		"lastName":   a.LastName,
		"street":     a.Street,
		"postalCode": a.PostalCode,
		"city":       a.City,
		"country":    a.CountryCode,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, field)
		}
	}

	if len(missing) > 0 {
		sort.Strings(missing)
		return NewValidationFailure(fmt.Sprintf("missing required address fields: %s", strings.Join(missing, ", ")))
	}

	return nil
}
