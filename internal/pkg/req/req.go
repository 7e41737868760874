/*
Package req provides helper functions for HTTP request parsing and data binding.

It binds JSON request bodies into input structs and runs struct-tag validation on the
result, so handlers only ever see well-formed input.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"fitchat/internal/pkg/errs"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindJSON binds the JSON body of the request to dst and validates it against
// the struct's `validate` tags.
func BindJSON(r *http.Request, dst any) *errs.CustomError {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.NewError(errs.ErrUnsupportedMediaType)
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.NewError(errs.ErrInvalidJSONFormat)
	}

	if decoder.More() {
		return errs.NewError(errs.ErrExtraContentInBody)
	}

	if err := validate.Struct(dst); err != nil {
		return errs.NewError(errs.ErrInvalidParams)
	}

	return nil
}
