package backend

import (
	"encoding/json"
	"strings"
)

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Msg string `json:"msg"`
}

// decodeDetail extracts the FastAPI "detail" field, which is either a string
// or a list of validation issues.
func decodeDetail(body []byte) string {
	var payload errorBody
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(payload.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var issues []validationIssue
	if err := json.Unmarshal(payload.Detail, &issues); err == nil {
		for _, issue := range issues {
			if msg := strings.TrimSpace(issue.Msg); msg != "" {
				return msg
			}
		}
	}

	return ""
}
