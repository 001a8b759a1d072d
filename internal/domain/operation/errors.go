package operation

import "errors"

// ErrAuditLogFailed is only ever logged; Log never returns it to callers.
var ErrAuditLogFailed = errors.New("failed to write operation log")
