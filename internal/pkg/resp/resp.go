/*
Package resp provides helper functions for constructing and sending HTTP JSON responses.

Resource endpoints respond with their own payload shapes; errors use a unified JSON
envelope carrying a business code and message.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"fitchat/internal/pkg/errs"
	"fitchat/internal/pkg/logx"
)

// ErrorResponse is the standardized JSON envelope returned for failed requests.
type ErrorResponse struct {
	// Code is the business status code (see errs package).
	Code int `json:"code"`

	// Message is the client-friendly error description.
	Message string `json:"message"`
}

// RespondJSON sets the Content-Type, writes the status code, and sends the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondOK sends the payload with HTTP 200.
func RespondOK(w http.ResponseWriter, r *http.Request, payload any) {
	RespondJSON(w, r, http.StatusOK, payload)
}

// RespondCreated sends the payload with HTTP 201.
func RespondCreated(w http.ResponseWriter, r *http.Request, payload any) {
	RespondJSON(w, r, http.StatusCreated, payload)
}

// RespondError sends the error envelope with the error's HTTP status.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	res := ErrorResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
	}
	RespondJSON(w, r, customErr.Status, res)
}
