package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/fem"
	"github.com/alexiusacademia/gorcd/internal/section"
)

// parseSupport reads "x:type", e.g. "0:pin" or "6:fixed"
func parseSupport(s string) (config.SupportSpec, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return config.SupportSpec{}, fmt.Errorf("support %q: want x:type", s)
	}
	x, err := number(parts[0])
	if err != nil {
		return config.SupportSpec{}, fmt.Errorf("support %q: %w", s, err)
	}
	return config.SupportSpec{X: x, Type: fem.SupportKind(strings.ToLower(strings.TrimSpace(parts[1])))}, nil
}

// parsePointLoad reads "x:p" in m and kN
func parsePointLoad(s string) (config.PointLoadSpec, error) {
	v, err := numbers(s, 2, 2)
	if err != nil {
		return config.PointLoadSpec{}, fmt.Errorf("point load %q: %w", s, err)
	}
	return config.PointLoadSpec{X: v[0], P: v[1]}, nil
}

// parseDistributedLoad reads "start:end:q" or "start:end:q1:q2"
func parseDistributedLoad(s string) (config.DistributedLoadSpec, error) {
	v, err := numbers(s, 3, 4)
	if err != nil {
		return config.DistributedLoadSpec{}, fmt.Errorf("distributed load %q: %w", s, err)
	}
	d := config.DistributedLoadSpec{Start: v[0], End: v[1], Q1: v[2]}
	if len(v) == 4 {
		d.Q2 = &v[3]
	}
	return d, nil
}

func numbers(s string, lo, hi int) ([]float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) < lo || len(parts) > hi {
		if lo == hi {
			return nil, fmt.Errorf("want %d values separated by ':'", lo)
		}
		return nil, fmt.Errorf("want %d to %d values separated by ':'", lo, hi)
	}
	v := make([]float64, len(parts))
	for i, p := range parts {
		f, err := number(p)
		if err != nil {
			return nil, err
		}
		v[i] = f
	}
	return v, nil
}

func number(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !section.Finite(f) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return f, nil
}
