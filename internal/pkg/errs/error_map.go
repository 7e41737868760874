/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
HTTP responses and internal error handling.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters.", Status: http.StatusBadRequest},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format.", Status: http.StatusBadRequest},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data.", Status: http.StatusBadRequest},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Messaging and Directory Business Logic Errors
	ErrActorKindInvalid:   {Code: ErrActorKindInvalid, Message: "Invalid recipient.", Status: http.StatusBadRequest},
	ErrSelfMessage:        {Code: ErrSelfMessage, Message: "You cannot message yourself.", Status: http.StatusBadRequest},
	ErrMessageBodyEmpty:   {Code: ErrMessageBodyEmpty, Message: "Message cannot be empty.", Status: http.StatusBadRequest},
	ErrMessageBodyTooLong: {Code: ErrMessageBodyTooLong, Message: "Message is too long.", Status: http.StatusBadRequest},
	ErrAvatarTypeInvalid:  {Code: ErrAvatarTypeInvalid, Message: "Unsupported image type.", Status: http.StatusBadRequest},
	ErrAvatarTooLarge:     {Code: ErrAvatarTooLarge, Message: "Image is too large.", Status: http.StatusBadRequest},

	// 3xxx: Session and Security Errors
	ErrUnauthenticated: {Code: ErrUnauthenticated, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},

	// 5xxx: Internal System Errors
	ErrUnknown:        {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
	ErrPersistence:    {Code: ErrPersistence, Message: "Could not save your data. Please try again.", Status: http.StatusInternalServerError},
	ErrStorageService: {Code: ErrStorageService, Message: "File storage is unavailable. Please try again.", Status: http.StatusInternalServerError},
}
