package handler

import "net/http"

// errorDetail is the machine-readable error payload body.
type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse wraps errorDetail in the envelope the UI expects.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// writeError sends a structured error payload.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "service.MembershipService.SaveAnnotation: validation error:
// unique id is required" → "unique id is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, prefix := range []string{
		"service.MembershipService.SaveAnnotation: validation error: ",
		"validation error: ",
	} {
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
