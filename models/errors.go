package models

import "fmt"

// Error codes used by the browser/fetch edge. Core harvesting never raises
// these: a scan that finds nothing is an empty result, not an error.
const (
	ErrCodeTimeout      = "HARVEST_TIMEOUT"
	ErrCodeNavigation   = "NAVIGATION_FAILED"
	ErrCodeBotWall      = "BOT_WALL_DETECTED"
	ErrCodeBrowserCrash = "BROWSER_CRASH"
	ErrCodeFetch        = "HTTP_FETCH_FAILED"
	ErrCodeStore        = "STORE_WRITE_FAILED"
)

// HarvestError is the internal error type carrying an error code.
// It implements the error interface and supports error wrapping via Unwrap.
type HarvestError struct {
	Code    string
	Message string
	Err     error // wrapped original error
}

func (e *HarvestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *HarvestError) Unwrap() error {
	return e.Err
}

// NewHarvestError creates a new HarvestError.
func NewHarvestError(code, message string, err error) *HarvestError {
	return &HarvestError{Code: code, Message: message, Err: err}
}
