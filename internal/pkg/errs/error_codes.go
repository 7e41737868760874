/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific business or system errors
both internally within the server and in communication with clients.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Messaging and Directory Business Logic Errors
const (
	// ErrActorKindInvalid indicates a participant reference with an unknown kind or missing id.
	ErrActorKindInvalid = 2101

	// ErrSelfMessage indicates an attempt to send a message to oneself.
	ErrSelfMessage = 2102

	// ErrMessageBodyEmpty indicates a send request with no message body.
	ErrMessageBodyEmpty = 2103

	// ErrMessageBodyTooLong indicates that the message body exceeded the maximum length limit.
	ErrMessageBodyTooLong = 2104

	// ErrAvatarTypeInvalid indicates an avatar upload with a disallowed file type.
	ErrAvatarTypeInvalid = 2201

	// ErrAvatarTooLarge indicates an avatar upload exceeding the size limit.
	ErrAvatarTooLarge = 2202
)

// 3xxx: Session and Security Errors
const (
	// ErrUnauthenticated indicates that no caller identity could be resolved from the request.
	ErrUnauthenticated = 3001
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000

	// ErrPersistence indicates a storage layer failure. It is propagated, never retried.
	ErrPersistence = 5001

	// ErrStorageService indicates a failure talking to the object storage backend.
	ErrStorageService = 5002
)
