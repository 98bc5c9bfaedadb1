// Package traverse runs fetch steps one at a time, in input order.
package traverse

import (
	"context"
)

// Each applies step to every item sequentially and returns results aligned with items.
// It stops at the first error. Empty input returns an empty slice without calling step.
func Each[I, R any](ctx context.Context, items []I, step func(context.Context, I) (R, error)) ([]R, error) {
	results := make([]R, 0, len(items))
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := step(ctx, item)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// Unique drops repeated values, keeping the first occurrence of each.
func Unique[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// Present drops zero values.
func Present[T comparable](items []T) []T {
	var zero T
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item != zero {
			out = append(out, item)
		}
	}
	return out
}

func Flatten[T any](groups [][]T) []T {
	var out []T
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
