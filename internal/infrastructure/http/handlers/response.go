package handlers

import (
	"encoding/json"
	"net/http"

	domerrors "github.com/NarenDawar/ai-governance-hub/internal/domain/errors"
)

// writeErr sends JSON { "error": message, "code": errCode }. If errCode is
// empty, a default is derived from the HTTP status.
func writeErr(w http.ResponseWriter, code int, errCode string, message string) {
	if errCode == "" {
		errCode = defaultErrCode(code)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": errCode})
}

func defaultErrCode(httpCode int) string {
	switch httpCode {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimited
	default:
		return ErrCodeInternal
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainErr maps domain sentinels onto the HTTP error taxonomy. Unknown
// errors become an opaque 500; callers log them before or after.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch err {
	case domerrors.ErrNotFound, domerrors.ErrUserNotFound:
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case domerrors.ErrInvalidCredentials:
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, "invalid credentials")
	case domerrors.ErrInvalidToken:
		writeErr(w, http.StatusUnauthorized, ErrCodeInvalidToken, "invalid token")
	case domerrors.ErrUserExists:
		writeErr(w, http.StatusConflict, ErrCodeConflict, "an account with this email already exists")
	case domerrors.ErrAlreadyInOrg:
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "user is already in an organization")
	case domerrors.ErrNoOrganization:
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "user is not in an organization")
	case domerrors.ErrInvalidInviteCode:
		writeErr(w, http.StatusNotFound, ErrCodeNotFound, "invalid invite code")
	case domerrors.ErrLastAdmin:
		writeErr(w, http.StatusConflict, ErrCodeConflict, "cannot demote the last admin")
	case domerrors.ErrVendorInUse:
		writeErr(w, http.StatusConflict, ErrCodeConflict, "cannot delete vendor: reassign or delete associated assets first")
	case domerrors.ErrDuplicateName:
		writeErr(w, http.StatusConflict, ErrCodeConflict, "a record with this name already exists")
	default:
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}
