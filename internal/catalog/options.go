// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/taibuivan/bgpiesa/pkg/optional"
)

// # Fallback Ranges

const (
	// DefaultYearMin is the lower year bound when no play has a year.
	DefaultYearMin = 1900

	// DefaultCastMin is the lower cast bound when no play has a cast count.
	DefaultCastMin = 0

	// DefaultCastMax is the upper cast bound when no play has a cast count.
	DefaultCastMax = 20
)

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Clamp keeps v within r, mirroring the number inputs of the filter panel.
func (r Range) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// PlayOptions are the selectable filter values of the plays listing, derived
// from the full unfiltered dataset.
type PlayOptions struct {
	Genres []string `json:"genres"`
	Themes []string `json:"themes"`
	Years  Range    `json:"years"`
	Male   Range    `json:"male_participants"`
	Female Range    `json:"female_participants"`
}

// DerivePlayOptions computes distinct sorted genres and themes and the observed
// year and cast ranges across plays.
//
// A field with no observed value falls back to its default range: years
// 1900..now, cast 0..20.
func DerivePlayOptions(plays []Play, now time.Time) PlayOptions {
	genres := make(map[string]struct{})
	themes := make(map[string]struct{})
	var years, male, female rangeTracker

	for _, play := range plays {
		addDistinct(genres, play.Genre)
		addDistinct(themes, play.Theme)
		years.observe(play.Year)
		male.observe(play.MaleParticipants)
		female.observe(play.FemaleParticipants)
	}

	return PlayOptions{
		Genres: sortedKeys(genres),
		Themes: sortedKeys(themes),
		Years:  years.rangeOr(Range{Min: DefaultYearMin, Max: now.Year()}),
		Male:   male.rangeOr(Range{Min: DefaultCastMin, Max: DefaultCastMax}),
		Female: female.rangeOr(Range{Min: DefaultCastMin, Max: DefaultCastMax}),
	}
}

// Baseline returns the unconstrained criteria for these options. Bounds are
// left unset; the builder treats full-range bounds the same way.
func (o PlayOptions) Baseline() PlayCriteria {
	return PlayCriteria{Genre: All, Theme: All}
}

// # Helpers

type rangeTracker struct {
	value optional.Value[Range]
}

func (t *rangeTracker) observe(v *int) {
	if v == nil {
		return
	}
	current, ok := t.value.Get()
	if !ok {
		t.value = optional.Of(Range{Min: *v, Max: *v})
		return
	}
	if *v < current.Min {
		current.Min = *v
	}
	if *v > current.Max {
		current.Max = *v
	}
	t.value = optional.Of(current)
}

func (t *rangeTracker) rangeOr(fallback Range) Range {
	return t.value.OrElse(fallback)
}

func addDistinct(set map[string]struct{}, value *string) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return
	}
	set[trimmed] = struct{}{}
}

// sortedKeys orders values by Bulgarian collation, so Cyrillic genres sort
// the way a Bulgarian reader expects.
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	collate.New(language.Bulgarian).SortStrings(keys)
	return keys
}
