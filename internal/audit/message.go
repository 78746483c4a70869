// File path: internal/audit/message.go
package audit

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type errorEnvelope struct {
	Error *struct {
		Status  any    `json:"status"`
		Code    any    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NormalizeMessage turns a service error envelope such as
// {"error":{"status":"PERMISSION_DENIED","code":403,"message":"no access"}}
// into "PERMISSION_DENIED (403): no access". Anything else is returned as is;
// an empty message becomes DefaultErrorMessage.
func NormalizeMessage(msg string) string {
	if msg == "" {
		return DefaultErrorMessage
	}
	if !strings.HasPrefix(strings.TrimSpace(msg), "{") {
		return msg
	}
	var env errorEnvelope
	if err := json.Unmarshal([]byte(strings.TrimSpace(msg)), &env); err != nil {
		return msg
	}
	if env.Error == nil || env.Error.Message == "" {
		return msg
	}
	status := scalar(env.Error.Status)
	if status == "" {
		status = "Error"
	}
	code := scalar(env.Error.Code)
	if code == "" || code == "0" {
		code = "Unknown"
	}
	return fmt.Sprintf("%s (%s): %s", status, code, env.Error.Message)
}

func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if !t {
			return ""
		}
		return "true"
	default:
		return fmt.Sprint(t)
	}
}
