package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Lookup resolves a configuration key. New uses os.LookupEnv.
type Lookup func(key string) (string, bool)

// envReader reads typed values through a Lookup. An empty value counts as
// unset. Malformed values are collected and reported together by err.
type envReader struct {
	lookup Lookup
	errs   []error
}

func (r *envReader) raw(key string) (string, bool) {
	v, ok := r.lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *envReader) invalid(key, kind, value string) {
	r.errs = append(r.errs, fmt.Errorf("%s: invalid %s %q", key, kind, value))
}

func (r *envReader) str(key, def string) string {
	if v, ok := r.raw(key); ok {
		return v
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		r.invalid(key, "integer", v)
		return def
	}
	return n
}

func (r *envReader) boolean(key string, def bool) bool {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		r.invalid(key, "boolean", v)
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		r.invalid(key, "duration", v)
		return def
	}
	return d
}

// list splits a comma-separated value, dropping blank entries.
func (r *envReader) list(key string, def []string) []string {
	v, ok := r.raw(key)
	if !ok {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}
