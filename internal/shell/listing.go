// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/filter"
	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/pkg/optional"
)

const (
	playFields    = "author, genre, theme, year_min, year_max, male_min, male_max, female_min, female_max"
	libraryFields = "author, play"
)

var errNoListing = errors.New("open a listing first: plays or library")

// # Fetchers

func (s *Shell) fetchPlays(ctx context.Context, criteria catalog.PlayCriteria) ([]catalog.Play, error) {
	return s.client.ListPlays(ctx, criteria.Query(s.playOptions))
}

func (s *Shell) fetchLibrary(ctx context.Context, criteria catalog.LibraryCriteria) ([]catalog.LiteraryPiece, error) {
	return s.client.ListLibrary(ctx, criteria.Query())
}

// loadPlayOptions derives the filter panel from the unfiltered plays.
func (s *Shell) loadPlayOptions(ctx context.Context) (catalog.PlayOptions, error) {
	plays, err := s.client.ListPlays(ctx, nil)
	if err != nil {
		return catalog.PlayOptions{}, err
	}

	options := catalog.DerivePlayOptions(plays, s.now())
	s.playOptions = &options
	return options, nil
}

// ensurePlayOptions loads the options once, before the first plays fetch
// needs them for clamping and full-range omission.
func (s *Shell) ensurePlayOptions(ctx context.Context) error {
	if s.playOptions != nil {
		return nil
	}
	if _, err := s.loadPlayOptions(ctx); err != nil {
		s.println(i18n.T(s.lang, i18n.MsgLoadPlays))
		return err
	}
	return nil
}

// # Listings

func (s *Shell) showPlays(ctx context.Context, _ []string) error {
	s.active = listingPlays

	if err := s.ensurePlayOptions(ctx); err != nil {
		return err
	}
	if s.plays.Snapshot().State == filter.StateIdle {
		wait(ctx, s.plays.Load(ctx))
	}

	s.printPlaysSnapshot(s.plays.Snapshot())
	return nil
}

func (s *Shell) showLibrary(ctx context.Context, _ []string) error {
	s.active = listingLibrary

	if s.library.Snapshot().State == filter.StateIdle {
		wait(ctx, s.library.Load(ctx))
	}

	s.printLibrarySnapshot(s.library.Snapshot())
	return nil
}

func (s *Shell) search(ctx context.Context, args []string) error {
	if s.active == listingNone {
		s.active = listingPlays
	}
	term := strings.Join(args, " ")

	switch s.active {
	case listingPlays:
		if err := s.ensurePlayOptions(ctx); err != nil {
			return err
		}
		wait(ctx, s.plays.SetSearch(ctx, term))
		s.printPlaysSnapshot(s.plays.Snapshot())
	case listingLibrary:
		wait(ctx, s.library.SetSearch(ctx, term))
		s.printLibrarySnapshot(s.library.Snapshot())
	}
	return nil
}

func (s *Shell) applyFilters(ctx context.Context, _ []string) error {
	switch s.active {
	case listingPlays:
		wait(ctx, s.plays.Apply(ctx))
		s.println(i18n.T(s.lang, i18n.MsgFiltersApplied))
		s.printPlaysSnapshot(s.plays.Snapshot())
	case listingLibrary:
		wait(ctx, s.library.Apply(ctx))
		s.println(i18n.T(s.lang, i18n.MsgFiltersApplied))
		s.printLibrarySnapshot(s.library.Snapshot())
	default:
		return errNoListing
	}
	return nil
}

func (s *Shell) clearFilters(ctx context.Context, _ []string) error {
	switch s.active {
	case listingPlays:
		wait(ctx, s.plays.Clear(ctx))
		s.println(i18n.T(s.lang, i18n.MsgFiltersCleared))
		s.printPlaysSnapshot(s.plays.Snapshot())
	case listingLibrary:
		wait(ctx, s.library.Clear(ctx))
		s.println(i18n.T(s.lang, i18n.MsgFiltersCleared))
		s.printLibrarySnapshot(s.library.Snapshot())
	default:
		return errNoListing
	}
	return nil
}

// # Pending Edits

func (s *Shell) setFilter(_ context.Context, args []string) error {
	field, value := strings.ToLower(args[0]), strings.Join(args[1:], " ")

	switch s.active {
	case listingPlays:
		return s.editPlays(field, value)
	case listingLibrary:
		return s.editLibrary(field, value)
	default:
		return errNoListing
	}
}

func (s *Shell) unsetFilter(_ context.Context, args []string) error {
	field := strings.ToLower(args[0])

	switch s.active {
	case listingPlays:
		return s.editPlays(field, catalog.All)
	case listingLibrary:
		return s.editLibrary(field, catalog.All)
	default:
		return errNoListing
	}
}

func (s *Shell) editPlays(field, value string) error {
	var edit func(pending *catalog.PlayCriteria)

	switch field {
	case "genre":
		edit = func(pending *catalog.PlayCriteria) { pending.Genre = selector(value) }
	case "theme":
		edit = func(pending *catalog.PlayCriteria) { pending.Theme = selector(value) }
	case "author":
		id, err := optionalID(value)
		if err != nil {
			return err
		}
		edit = func(pending *catalog.PlayCriteria) { pending.AuthorID = id }
	case "year_min", "year_max", "male_min", "male_max", "female_min", "female_max":
		bound, err := s.playBound(field, value)
		if err != nil {
			return err
		}
		edit = func(pending *catalog.PlayCriteria) { *boundField(pending, field) = bound }
	default:
		return fmt.Errorf("unknown field %q, expected one of: %s", field, playFields)
	}

	s.plays.Edit(edit)
	return nil
}

func (s *Shell) editLibrary(field, value string) error {
	id, err := optionalID(value)
	if err != nil {
		return err
	}

	switch field {
	case "author":
		s.library.Edit(func(pending *catalog.LibraryCriteria) { pending.SelectAuthor(id) })
	case "play":
		s.library.Edit(func(pending *catalog.LibraryCriteria) { pending.PlayID = id })
	default:
		return fmt.Errorf("unknown field %q, expected one of: %s", field, libraryFields)
	}
	return nil
}

// playBound parses a numeric bound and keeps it within the observed range,
// like the number inputs of the filter panel.
func (s *Shell) playBound(field, value string) (optional.Int, error) {
	if value == catalog.All {
		return optional.None[int](), nil
	}

	bound, err := strconv.Atoi(value)
	if err != nil {
		return optional.None[int](), fmt.Errorf("%s must be a number", field)
	}

	if s.playOptions != nil {
		switch {
		case strings.HasPrefix(field, "year"):
			bound = s.playOptions.Years.Clamp(bound)
		case strings.HasPrefix(field, "male"):
			bound = s.playOptions.Male.Clamp(bound)
		case strings.HasPrefix(field, "female"):
			bound = s.playOptions.Female.Clamp(bound)
		}
	}

	return optional.Of(bound), nil
}

func boundField(criteria *catalog.PlayCriteria, field string) *optional.Int {
	switch field {
	case "year_min":
		return &criteria.YearMin
	case "year_max":
		return &criteria.YearMax
	case "male_min":
		return &criteria.MaleMin
	case "male_max":
		return &criteria.MaleMax
	case "female_min":
		return &criteria.FemaleMin
	default:
		return &criteria.FemaleMax
	}
}

func (s *Shell) showPending(_ context.Context, _ []string) error {
	switch s.active {
	case listingPlays:
		snapshot := s.plays.Snapshot()
		s.printCriteria("pending", snapshot.Pending.Query(nil))
		s.printCriteria("applied", snapshot.Applied.WithSearch(snapshot.Search).Query(nil))
		s.printDirty(snapshot.Dirty())
	case listingLibrary:
		snapshot := s.library.Snapshot()
		s.printCriteria("pending", snapshot.Pending.Query())
		s.printCriteria("applied", snapshot.Applied.WithSearch(snapshot.Search).Query())
		s.printDirty(snapshot.Dirty())
	default:
		return errNoListing
	}
	return nil
}

// # Options

func (s *Shell) showOptions(ctx context.Context, _ []string) error {
	switch s.active {
	case listingPlays:
		options, err := s.loadPlayOptions(ctx)
		if err != nil {
			s.println(i18n.T(s.lang, i18n.MsgLoadPlays))
			return err
		}

		table := s.table()
		fmt.Fprintf(table, "genre:\t%s\n", strings.Join(append([]string{i18n.T(s.lang, i18n.MsgAllGenres)}, options.Genres...), " | "))
		fmt.Fprintf(table, "theme:\t%s\n", strings.Join(append([]string{i18n.T(s.lang, i18n.MsgAllThemes)}, options.Themes...), " | "))
		fmt.Fprintf(table, "year:\t%d..%d\n", options.Years.Min, options.Years.Max)
		fmt.Fprintf(table, "male:\t%d..%d\n", options.Male.Min, options.Male.Max)
		fmt.Fprintf(table, "female:\t%d..%d\n", options.Female.Min, options.Female.Max)
		return table.Flush()

	case listingLibrary:
		authors, err := s.client.ListAuthors(ctx, nil)
		if err != nil {
			s.println(i18n.T(s.lang, i18n.MsgLoadAuthors))
			return err
		}
		plays, err := s.client.ListPlays(ctx, nil)
		if err != nil {
			s.println(i18n.T(s.lang, i18n.MsgLoadPlays))
			return err
		}

		s.println("author: 0 " + i18n.T(s.lang, i18n.MsgAllAuthors))
		s.printAuthors(authors)
		s.println("play: 0 " + i18n.T(s.lang, i18n.MsgAllPlays))
		s.printPlays(catalog.PlaysByAuthor(plays, s.library.Pending().AuthorID))
		return nil

	default:
		return errNoListing
	}
}

// # Output

func (s *Shell) printPlaysSnapshot(snapshot filter.Snapshot[catalog.PlayCriteria, catalog.Play]) {
	if snapshot.State == filter.StateFailed {
		s.println(i18n.T(s.lang, i18n.MsgLoadPlays))
		s.report(snapshot.Err)
	}
	s.printPlays(snapshot.Items)
}

func (s *Shell) printLibrarySnapshot(snapshot filter.Snapshot[catalog.LibraryCriteria, catalog.LiteraryPiece]) {
	if snapshot.State == filter.StateFailed {
		s.println(i18n.T(s.lang, i18n.MsgLoadLibrary))
		s.report(snapshot.Err)
	}
	s.printPieces(snapshot.Items)
}

func (s *Shell) printCriteria(label string, params catalog.Params) {
	if len(params) == 0 {
		s.println(label + ": -")
		return
	}

	parts := make([]string, 0, len(params))
	for _, param := range params {
		parts = append(parts, param.Key+"="+param.Value)
	}
	s.println(label + ": " + strings.Join(parts, " "))
}

func (s *Shell) printDirty(dirty bool) {
	if dirty {
		s.println("(not applied)")
	}
}

// # Helpers

// wait blocks until a fetch completes or ctx is done.
func wait(ctx context.Context, done <-chan struct{}) {
	select {
	case <-done:
	case <-ctx.Done():
	}
}

func selector(value string) string {
	if strings.TrimSpace(value) == "" {
		return catalog.All
	}
	return value
}

// optionalID reads an id selection where "all" or 0 means unset.
func optionalID(value string) (optional.Int, error) {
	if value == catalog.All || value == "0" {
		return optional.None[int](), nil
	}

	id, err := parseID(value)
	if err != nil {
		return optional.None[int](), err
	}
	return optional.Of(id), nil
}
