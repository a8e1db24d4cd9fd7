package httphandler

import (
	"net/url"
	"strconv"

	"github.com/automani/automani/internal/domain/model"
)

// parseCarFilter translates untrusted query parameters into a CarFilter.
// Malformed numeric values are treated as absent rather than rejected, and
// unknown sort keys pass through for the store's whitelist to discard, so
// this can never fail.
func parseCarFilter(values url.Values) model.CarFilter {
	return model.CarFilter{
		Make:         values.Get("make"),
		Model:        values.Get("model"),
		Fuel:         values.Get("fuel"),
		Transmission: values.Get("transmission"),
		Status:       values.Get("status"),
		Year:         intParam(values, "year"),
		MinPrice:     intParam(values, "minPrice"),
		MaxPrice:     intParam(values, "maxPrice"),
		MinKms:       intParam(values, "minKms"),
		MaxKms:       intParam(values, "maxKms"),
		Search:       values.Get("search"),
		Sort:         values.Get("sort"),
		Page:         intParamOr(values, "page", 1),
		Limit:        intParamOr(values, "limit", model.DefaultPageSize),
	}
}

// intParam parses an optional integer parameter, returning nil when the
// value is absent or not a number.
func intParam(values url.Values, key string) *int {
	raw := values.Get(key)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// intParamOr parses an integer parameter with a fallback for absent or
// malformed values.
func intParamOr(values url.Values, key string, fallback int) int {
	raw := values.Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
