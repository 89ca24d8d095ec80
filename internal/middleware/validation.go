package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"APEX_BACK-END/internal/dto"
	"APEX_BACK-END/internal/utils"
)

// ValidateInput rejects requests whose JSON body is missing any of the
// required fields, enumerating every missing field rather than only the
// first. A field counts as missing when it is absent, null, an empty
// string, zero, or false. On success the body is rewound so the next
// handler can decode it again.
func ValidateInput(fields []string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))

		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}

		errs := make([]string, 0)
		for _, field := range fields {
			if isFalsy(payload[field]) {
				errs = append(errs, fmt.Sprintf("%s is required", field))
			}
		}

		if len(errs) > 0 {
			utils.WriteJSONResponse(w, http.StatusBadRequest, dto.ValidationErrorResponse{
				Message: "Validation failed",
				Errors:  errs,
			})
			return
		}

		next.ServeHTTP(w, r)
	}
}

func isFalsy(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case bool:
		return !val
	case float64:
		return val == 0
	default:
		return false
	}
}
