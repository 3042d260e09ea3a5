package controller

import (
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	defaultLimit = 10
	maxLimit     = 200
)

func parseLimit(q url.Values, def int) (int, error) {
	if !q.Has("limit") {
		return def, nil
	}

	l, err := strconv.ParseInt(q.Get("limit"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("unable to parse limit from query: %w", err)
	}
	if l > maxLimit {
		return 0, fmt.Errorf("limit [%d] exceeds maximum [%d]", l, maxLimit)
	}
	if l < 1 {
		return 0, fmt.Errorf("invalid limit value [%d]", l)
	}
	return int(l), nil
}

func parseMaxDistance(q url.Values, def float64) (float64, error) {
	if !q.Has("max_distance") {
		return def, nil
	}

	d, err := strconv.ParseFloat(q.Get("max_distance"), 64)
	if err != nil {
		return 0, fmt.Errorf("unable to parse max distance from query: %w", err)
	}
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, fmt.Errorf("invalid max distance value [%v]", d)
	}
	return d, nil
}

func pathToken(r *http.Request, name string) (int, error) {
	s := mux.Vars(r)[name]
	token, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s [%s]", name, s)
	}
	return token, nil
}
