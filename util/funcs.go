package util

import (
	"cmp"

	"github.com/hashicorp/go-set/v3"
)

func ComparingHashable[A set.Hasher[B], B set.Hash](a, b A) int {
	return cmp.Compare(a.Hash(), b.Hash())
}

func Map[A, B any](slice []A, f func(A) B) []B {
	res := make([]B, 0, len(slice))
	for _, elem := range slice {
		res = append(res, f(elem))
	}
	return res
}
