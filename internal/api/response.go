package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"instudio/internal/api/middleware"
	"instudio/internal/domain"
	"instudio/pkg/logger"
)

const deletedMessage = "DELETED"

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Response is the envelope of every API answer.
type Response struct {
	Data   interface{}    `json:"data"`
	Errors *string        `json:"errors"`
	Paging *domain.Paging `json:"paging,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if v == nil {
		return
	}

	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Data: data})
}

func writePage[T any](w http.ResponseWriter, page *domain.Page[T]) {
	writeJSON(w, http.StatusOK, Response{Data: page.Items, Paging: page.Paging()})
}

func statusOf(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindEmptyResult:
		return http.StatusNoContent
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a service error onto the envelope. An empty result is a
// 204 with no body; internal failures never leak their message.
func writeError(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	kind := domain.KindOf(err)
	status := statusOf(kind)

	if kind == domain.KindEmptyResult {
		w.WriteHeader(status)
		return
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "Request failed", map[string]interface{}{"path": r.URL.Path, "error": msg})
		msg = http.StatusText(status)
	} else {
		log.DebugContext(r.Context(), "Request rejected", map[string]interface{}{"path": r.URL.Path, "kind": kind.String(), "error": msg})
	}

	writeJSON(w, status, Response{Errors: &msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return domain.NewValidationError("invalid json body: %v", err)
	}
	if err := dec.Decode(&struct{}{}); err != nil && !errors.Is(err, io.EOF) {
		return domain.NewValidationError("invalid json body: extra data after json")
	}
	return nil
}

// pageParams reads the 0-indexed page and the size query values.
func pageParams(r *http.Request) (page, size int, err error) {
	page, size = domain.DefaultPage, domain.DefaultPageSize
	q := r.URL.Query()

	if v := q.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			return 0, 0, domain.NewValidationError("page must be an integer")
		}
	}
	if v := q.Get("size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return 0, 0, domain.NewValidationError("size must be an integer")
		}
	}
	return page, size, domain.ValidatePage(page, size)
}

// actingUser returns the {userId} path value after checking that it names
// the holder of the bearer token.
func actingUser(r *http.Request) (string, error) {
	userID := r.PathValue("userId")
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return "", domain.NewUnauthorizedError("Missing bearer token.")
	}
	if userID != claims.UserID {
		return "", domain.NewForbiddenError("Token does not belong to user %s.", userID)
	}
	return userID, nil
}
