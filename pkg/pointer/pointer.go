// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer builds pointers to literals for the optional bilingual
// fields of catalog entities, e.g. pointer.To("Ivan Vazov").
package pointer

// To returns a pointer to v.
func To[T any](v T) *T {
	return &v
}
