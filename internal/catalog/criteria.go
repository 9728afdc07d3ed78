// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"strings"

	"github.com/taibuivan/bgpiesa/pkg/optional"
	"github.com/taibuivan/bgpiesa/pkg/slice"
)

// All is the selector sentinel meaning "no constraint".
const All = "all"

// # Plays

// PlayCriteria holds the filter selections of the plays listing.
//
// The zero value is the unfiltered baseline.
type PlayCriteria struct {
	Search    string
	AuthorID  optional.Int
	Genre     string
	Theme     string
	YearMin   optional.Int
	YearMax   optional.Int
	MaleMin   optional.Int
	MaleMax   optional.Int
	FemaleMin optional.Int
	FemaleMax optional.Int
}

// WithSearch returns a copy of c carrying the free-text term.
func (c PlayCriteria) WithSearch(term string) PlayCriteria {
	c.Search = term
	return c
}

// # Library

// LibraryCriteria holds the filter selections of the library listing.
type LibraryCriteria struct {
	Search   string
	AuthorID optional.Int
	PlayID   optional.Int
}

// WithSearch returns a copy of c carrying the free-text term.
func (c LibraryCriteria) WithSearch(term string) LibraryCriteria {
	c.Search = term
	return c
}

// SelectAuthor changes the selected author. Any change of author resets the
// selected play back to "all", since a play belongs to exactly one author.
func (c *LibraryCriteria) SelectAuthor(authorID optional.Int) {
	if c.AuthorID == authorID {
		return
	}
	c.AuthorID = authorID
	c.PlayID = optional.None[int]()
}

// PlaysByAuthor narrows plays to those written by authorID. An unset author
// leaves the list untouched.
func PlaysByAuthor(plays []Play, authorID optional.Int) []Play {
	id, ok := authorID.Get()
	if !ok {
		return plays
	}
	return slice.Filter(plays, func(play Play) bool {
		return play.AuthorID == id
	})
}

// # Authors

// AuthorCriteria holds the search term of the authors listing.
type AuthorCriteria struct {
	Search string
}

// WithSearch returns a copy of c carrying the free-text term.
func (c AuthorCriteria) WithSearch(term string) AuthorCriteria {
	c.Search = term
	return c
}

// # Helpers

// selectorValue normalises a selector, reporting false for the unset states.
func selectorValue(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if value == "" || value == All {
		return "", false
	}
	return value, true
}
