package validator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardForm struct {
	Number   string `validate:"required,credit_card"`
	ExpMonth int    `validate:"required,gte=1,lte=12"`
	ExpYear  int    `validate:"required,gte=2024"`
	CVC      string `validate:"required,numeric,min=3,max=4"`
}

func TestValidate_ValidStruct(t *testing.T) {
	form := cardForm{
		Number:   "4242424242424242",
		ExpMonth: 12,
		ExpYear:  2030,
		CVC:      "123",
	}

	assert.NoError(t, Validate(form))
}

func TestValidate_MissingRequired(t *testing.T) {
	err := Validate(cardForm{})

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["Number"])
	assert.Equal(t, "is required", fields["CVC"])
}

func TestValidate_BadCardNumber(t *testing.T) {
	form := cardForm{
		Number:   "1234",
		ExpMonth: 12,
		ExpYear:  2030,
		CVC:      "123",
	}

	err := Validate(form)

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be a valid card number", valErr.Fields()["Number"])
}

func TestValidate_RangeMessages(t *testing.T) {
	form := cardForm{
		Number:   "4242424242424242",
		ExpMonth: 13,
		ExpYear:  2030,
		CVC:      "123",
	}

	err := Validate(form)

	require.Error(t, err)
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "must be less than or equal to 12", valErr.Fields()["ExpMonth"])
}

func TestValidate_NonNumericCVC(t *testing.T) {
	form := cardForm{
		Number:   "4242424242424242",
		ExpMonth: 6,
		ExpYear:  2030,
		CVC:      "abc",
	}

	err := Validate(form)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CVC")
}

func TestDecodeAndValidate_Valid(t *testing.T) {
	body := `{"Number":"4242424242424242","ExpMonth":6,"ExpYear":2030,"CVC":"123"}`
	r := httptest.NewRequest("POST", "/checkout/instrument", strings.NewReader(body))

	var form cardForm
	assert.NoError(t, DecodeAndValidate(r, &form))
	assert.Equal(t, "4242424242424242", form.Number)
}

func TestDecodeAndValidate_MalformedJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/checkout/instrument", strings.NewReader("{not json"))

	var form cardForm
	err := DecodeAndValidate(r, &form)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
