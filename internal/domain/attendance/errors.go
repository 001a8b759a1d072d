package attendance

import "errors"

// Attendance domain errors
var (
	ErrDuplicateCheckIn      = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut     = errors.New("you have already checked out today")
	ErrCheckOutBeforeCheckIn = errors.New("check-out time cannot be earlier than check-in time")
	ErrWriteFailed           = errors.New("failed to save attendance")

	// ErrFetchFailed wraps read failures. The refetch that follows a
	// successful write logs it and degrades to empty data instead.
	ErrFetchFailed = errors.New("failed to fetch attendance")
)
