package handler

import (
	"fmt"
	"time"
)

// successResponse is the canonical success envelope:
// {"status":"success","message":...,"data":...}.
type successResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(data any) successResponse {
	return successResponse{Status: "success", Data: data}
}

func successMsg(message string, data any) successResponse {
	return successResponse{Status: "success", Message: message, Data: data}
}

// parseDate accepts either a bare calendar day or a full RFC 3339 timestamp.
// Empty input yields the zero time, which services default to "now".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
