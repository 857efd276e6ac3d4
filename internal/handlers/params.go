package handlers

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"hellomart-dashboard/internal/dataset"
	"hellomart-dashboard/internal/errors"
)

const dateParamLayout = "2006-01-02"

// parseFilterSpec reads the filter parameters the UI layer supplies:
// from/to as YYYY-MM-DD, regions/categories as comma-separated lists
// (repeatable). Absent parameters mean no restriction.
func parseFilterSpec(q url.Values) (dataset.FilterSpec, error) {
	var spec dataset.FilterSpec

	if raw := q.Get("from"); raw != "" {
		d, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return spec, errors.Validation("invalid 'from' date, expected YYYY-MM-DD")
		}
		spec.From = &d
	}
	if raw := q.Get("to"); raw != "" {
		d, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return spec, errors.Validation("invalid 'to' date, expected YYYY-MM-DD")
		}
		spec.To = &d
	}
	if spec.From != nil && spec.To != nil && spec.To.Before(*spec.From) {
		return spec, errors.Validation("'to' date precedes 'from' date")
	}

	spec.Regions = splitParam(q["regions"])
	spec.Categories = splitParam(q["categories"])
	return spec, nil
}

func splitParam(values []string) []string {
	var out []string
	for _, v := range values {
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func parseLimit(q url.Values, fallback int) (int, error) {
	raw := q.Get("limit")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.Validation("'limit' must be a positive integer")
	}
	return n, nil
}

func parseHorizon(q url.Values, fallback int) (int, error) {
	raw := q.Get("horizon")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < dataset.MinHorizon || n > dataset.MaxHorizon {
		return 0, errors.Validation("'horizon' must be an integer between 1 and 6")
	}
	return n, nil
}
