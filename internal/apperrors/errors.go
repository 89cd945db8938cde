package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID or email does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvestmentNotFound indicates that an investment with the given ID does not exist
	// or belongs to another user.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrUnknownIndex indicates that a macroeconomic index name is not supported.
	ErrUnknownIndex = errors.New("unknown index")
)

// Authentication errors are returned when a caller cannot be identified.
var (
	// ErrInvalidCredentials is returned for both unknown emails and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrIncorrectPassword indicates that the current password supplied on a password change is wrong.
	ErrIncorrectPassword = errors.New("current password is incorrect")

	// ErrMissingToken indicates that no session token was sent.
	ErrMissingToken = errors.New("missing session token")

	// ErrInvalidToken indicates that a session token could not be verified.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrTokenExpired indicates that a session token was valid but is past its expiry.
	ErrTokenExpired = errors.New("session token expired")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrEmailTaken indicates that another user already registered the email address.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveInvestments = errors.New("failed to retrieve investments")
	ErrFailedToRetrieveInvestment  = errors.New("failed to retrieve investment")
	ErrFailedToCreateInvestment    = errors.New("failed to create investment")
	ErrFailedToUpdateInvestment    = errors.New("failed to update investment")
	ErrFailedToDeleteInvestment    = errors.New("failed to delete investment")
	ErrFailedToRenderChart         = errors.New("failed to render chart")

	ErrFailedToRetrieveUser = errors.New("failed to retrieve user")
	ErrFailedToCreateUser   = errors.New("failed to create account")
	ErrFailedToUpdateUser   = errors.New("failed to update profile")

	// ErrFailedToRetrieveIndex indicates the central bank API could not be reached or answered with an error.
	ErrFailedToRetrieveIndex = errors.New("failed to retrieve index data from the central bank")

	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)
