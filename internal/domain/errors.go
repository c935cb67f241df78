package domain

import "errors"

var (
	ErrRecordNotFound  = errors.New("rate record not found")
	ErrRateUnavailable = errors.New("rate unavailable")
)
