package handlers

import (
	"net/url"
	"strconv"

	"galaxy-server/internal/shared/errors"
)

const defaultWindowSize = 32

func parseCoordinate(name, value string) (uint32, error) {
	if value == "" {
		return 0, errors.Validationf("%s is required", name)
	}
	n, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name+" coordinate", err)
	}
	return uint32(n), nil
}

func queryCoordinate(q url.Values, name string) (uint32, error) {
	if q.Get(name) == "" {
		return 0, nil
	}
	return parseCoordinate(name, q.Get(name))
}

func querySize(q url.Values, name string) (int, error) {
	value := q.Get(name)
	if value == "" {
		return defaultWindowSize, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.WrapValidation("invalid "+name, err)
	}
	return n, nil
}
