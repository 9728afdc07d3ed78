// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides quick type-conversion utilities.

It wraps [strconv] to provide fault-tolerant conversions (e.g. reporting
"absent" instead of an error when parsing fails). This is useful when reading
query parameters and typed terminal input.

Do not use this package if distinguishing between malformed data and absent
values is important in your domain logic; use [strconv] directly instead.
*/
package convert

import (
	"strconv"
	"strings"

	"github.com/taibuivan/bgpiesa/pkg/optional"
)

// ToOptionalInt converts a string to a tagged integer.
// Empty or malformed input yields an absent value.
func ToOptionalInt(str string) optional.Int {
	str = strings.TrimSpace(str)
	if str == "" {
		return optional.None[int]()
	}

	v, err := strconv.Atoi(str)
	if err != nil {
		return optional.None[int]()
	}
	return optional.Of(v)
}
