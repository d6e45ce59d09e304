package http

import (
	"math"
	"net/http"
	"strconv"

	apperrors "stayease/pkg/errors"
	"stayease/pkg/sanitizer"

	"github.com/julienschmidt/httprouter"
)

// ExtractPage reads the zero-based page and the page size from the query.
// Missing values fall back to page 0 and defaultSize; size is capped at maxSize.
func ExtractPage(r *http.Request, defaultSize, maxSize int) (int, int, error) {
	query := r.URL.Query()

	page := 0
	if s := query.Get("page"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid page parameter: " + s)
		}
		page = v
	}

	size := 0
	if s := query.Get("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, apperrors.InvalidInput("invalid size parameter: " + s)
		}
		size = v
	}

	page, size = sanitizer.NormalizePage(page, size, defaultSize, maxSize)
	return page, size, nil
}

// ParseID reads a positive integer route parameter.
func ParseID(ps httprouter.Params, name string) (int64, error) {
	raw := ps.ByName(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + raw)
	}
	return id, nil
}

// QueryInt64 reads an optional non-negative integer query parameter.
func QueryInt64(r *http.Request, name string) (int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + raw)
	}
	return v, nil
}

// QueryFloat reads an optional finite float query parameter.
func QueryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + raw)
	}
	return v, nil
}

// QueryBool reads a required boolean query parameter.
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.InvalidInput("invalid " + name + " parameter: " + raw)
	}
	return v, nil
}
