package report

import "errors"

var ErrInvalidMonth = errors.New("month must be formatted as YYYY-MM")
