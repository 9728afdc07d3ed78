// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/taibuivan/bgpiesa/pkg/convert"
	"github.com/taibuivan/bgpiesa/pkg/optional"
)

// # Query Parameter Names

const (
	ParamSearch    = "search"
	ParamAuthorID  = "author_id"
	ParamPlayID    = "play_id"
	ParamGenre     = "genre"
	ParamTheme     = "theme"
	ParamYearMin   = "year_min"
	ParamYearMax   = "year_max"
	ParamMaleMin   = "male_participants_min"
	ParamMaleMax   = "male_participants_max"
	ParamFemaleMin = "female_participants_min"
	ParamFemaleMax = "female_participants_max"

	// ParamPlaySearch narrows the plays embedded in an author detail.
	ParamPlaySearch = "playSearch"
)

// # Parameters

// Param is a single query parameter.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered query-parameter list. The order is the canonical
// order produced by the builders, which keeps encoding deterministic.
type Params []Param

// Encode renders p as a URL query string, preserving order.
func (p Params) Encode() string {
	var builder strings.Builder
	for i, param := range p {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(url.QueryEscape(param.Key))
		builder.WriteByte('=')
		builder.WriteString(url.QueryEscape(param.Value))
	}
	return builder.String()
}

// Get returns the value for key.
func (p Params) Get(key string) (string, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return "", false
}

func (p Params) addString(key, value string) Params {
	return append(p, Param{Key: key, Value: value})
}

func (p Params) addInt(key string, value optional.Int) Params {
	if v, ok := value.Get(); ok {
		return append(p, Param{Key: key, Value: strconv.Itoa(v)})
	}
	return p
}

// addBound adds a numeric bound unless it is absent or equal to the edge of
// the full observed range, which is no constraint at all.
func (p Params) addBound(key string, value optional.Int, edge int, known bool) Params {
	if known && value.Equal(edge) {
		return p
	}
	return p.addInt(key, value)
}

// # Builders

// Query builds the backend parameters for the plays listing.
//
// full is the range observed across the unfiltered dataset. When nil, bounds
// are passed through as given. Bounds outside the observed range are sent
// unchanged.
func (c PlayCriteria) Query(full *PlayOptions) Params {
	params := Params{}

	if search := strings.TrimSpace(c.Search); search != "" {
		params = params.addString(ParamSearch, search)
	}
	params = params.addInt(ParamAuthorID, c.AuthorID)
	if genre, ok := selectorValue(c.Genre); ok {
		params = params.addString(ParamGenre, genre)
	}
	if theme, ok := selectorValue(c.Theme); ok {
		params = params.addString(ParamTheme, theme)
	}

	var years, male, female Range
	known := full != nil
	if known {
		years, male, female = full.Years, full.Male, full.Female
	}

	params = params.addBound(ParamYearMin, c.YearMin, years.Min, known)
	params = params.addBound(ParamYearMax, c.YearMax, years.Max, known)
	params = params.addBound(ParamMaleMin, c.MaleMin, male.Min, known)
	params = params.addBound(ParamMaleMax, c.MaleMax, male.Max, known)
	params = params.addBound(ParamFemaleMin, c.FemaleMin, female.Min, known)
	params = params.addBound(ParamFemaleMax, c.FemaleMax, female.Max, known)

	return params
}

// Query builds the backend parameters for the library listing.
func (c LibraryCriteria) Query() Params {
	params := Params{}

	if search := strings.TrimSpace(c.Search); search != "" {
		params = params.addString(ParamSearch, search)
	}
	params = params.addInt(ParamAuthorID, c.AuthorID)
	params = params.addInt(ParamPlayID, c.PlayID)

	return params
}

// Query builds the backend parameters for the authors listing.
func (c AuthorCriteria) Query() Params {
	params := Params{}
	if search := strings.TrimSpace(c.Search); search != "" {
		params = params.addString(ParamSearch, search)
	}
	return params
}

// # Parsing

// PlayCriteriaFromQuery reads plays criteria from URL query values using the
// same parameter names the backend accepts. Malformed numbers are ignored.
func PlayCriteriaFromQuery(values url.Values) PlayCriteria {
	return PlayCriteria{
		Search:    values.Get(ParamSearch),
		AuthorID:  convert.ToOptionalInt(values.Get(ParamAuthorID)),
		Genre:     values.Get(ParamGenre),
		Theme:     values.Get(ParamTheme),
		YearMin:   convert.ToOptionalInt(values.Get(ParamYearMin)),
		YearMax:   convert.ToOptionalInt(values.Get(ParamYearMax)),
		MaleMin:   convert.ToOptionalInt(values.Get(ParamMaleMin)),
		MaleMax:   convert.ToOptionalInt(values.Get(ParamMaleMax)),
		FemaleMin: convert.ToOptionalInt(values.Get(ParamFemaleMin)),
		FemaleMax: convert.ToOptionalInt(values.Get(ParamFemaleMax)),
	}
}

// LibraryCriteriaFromQuery reads library criteria from URL query values.
func LibraryCriteriaFromQuery(values url.Values) LibraryCriteria {
	return LibraryCriteria{
		Search:   values.Get(ParamSearch),
		AuthorID: convert.ToOptionalInt(values.Get(ParamAuthorID)),
		PlayID:   convert.ToOptionalInt(values.Get(ParamPlayID)),
	}
}
