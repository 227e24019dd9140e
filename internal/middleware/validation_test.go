package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Checkout-shaped struct with validation tags
type checkoutTestRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Quantity int    `json:"quantity" validate:"required,gte=1,lte=1000"`
}

// Missing required checkout fields must fail validation
func TestProperty_RequiredFieldValidationWorks(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("missing required fields are rejected", prop.ForAll(
		func(includeName bool, includeEmail bool, includeQuantity bool) bool {
			reqMap := make(map[string]interface{})

			if includeName {
				reqMap["name"] = "Ana Marku"
			}
			if includeEmail {
				reqMap["email"] = "ana@lubricantoils.com"
			}
			if includeQuantity {
				reqMap["quantity"] = 3
			}

			allFieldsPresent := includeName && includeEmail && includeQuantity

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq checkoutTestRequest
			err := DecodeAndValidate(req, &testReq)

			if allFieldsPresent {
				return err == nil
			}
			return err != nil
		},
		gen.Bool(),
		gen.Bool(),
		gen.Bool(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Validation errors carry field names and readable messages
func TestProperty_ValidationErrorsAreFormatted(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("validation errors include field information", prop.ForAll(
		func() bool {
			reqMap := map[string]interface{}{
				"name":     "Ana Marku",
				"email":    "not-an-email",
				"quantity": 3,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq checkoutTestRequest
			err := DecodeAndValidate(req, &testReq)

			if err == nil {
				return false
			}

			validationErrors := FormatValidationErrors(err)
			if len(validationErrors) == 0 {
				return false
			}

			for _, ve := range validationErrors {
				if ve.Field == "" || ve.Message == "" {
					return false
				}
			}

			return true
		},
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Quantity outside its range must be rejected, everything inside accepted
func TestProperty_QuantityRangeValidation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("quantity outside valid range is rejected", prop.ForAll(
		func(quantity int) bool {
			reqMap := map[string]interface{}{
				"name":     "Ana Marku",
				"email":    "ana@lubricantoils.com",
				"quantity": quantity,
			}

			reqBody, _ := json.Marshal(reqMap)
			req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")

			var testReq checkoutTestRequest
			err := DecodeAndValidate(req, &testReq)

			if quantity >= 1 && quantity <= 1000 {
				return err == nil
			}
			return err != nil
		},
		gen.IntRange(-100, 2000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// Malformed JSON bodies fail before validation runs
func TestDecodeAndValidateRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/orders", bytes.NewReader([]byte(`{"name": `)))
	req.Header.Set("Content-Type", "application/json")

	var testReq checkoutTestRequest
	if err := DecodeAndValidate(req, &testReq); err == nil {
		t.Fatal("expected decode error for malformed JSON")
	}
}
