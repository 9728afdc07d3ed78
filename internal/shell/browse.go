// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/i18n"
)

// homeTeaserSize is how many authors and plays "home" shows.
const homeTeaserSize = 3

func (s *Shell) table() *tabwriter.Writer {
	return tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
}

// # Home

func (s *Shell) home(ctx context.Context, _ []string) error {
	authors, err := s.client.ListAuthors(ctx, nil)
	if err != nil {
		s.println(i18n.T(s.lang, i18n.MsgLoadHome))
		return err
	}
	plays, err := s.client.ListPlays(ctx, nil)
	if err != nil {
		s.println(i18n.T(s.lang, i18n.MsgLoadHome))
		return err
	}

	if len(authors) > homeTeaserSize {
		authors = authors[:homeTeaserSize]
	}
	if len(plays) > homeTeaserSize {
		plays = plays[:homeTeaserSize]
	}

	s.printAuthors(authors)
	s.println("")
	s.printPlays(plays)
	return nil
}

// # Authors

func (s *Shell) listAuthors(ctx context.Context, args []string) error {
	criteria := catalog.AuthorCriteria{Search: strings.Join(args, " ")}

	authors, err := s.client.ListAuthors(ctx, criteria.Query())
	if err != nil {
		s.println(i18n.T(s.lang, i18n.MsgLoadAuthors))
		return err
	}

	s.printAuthors(authors)
	return nil
}

func (s *Shell) showAuthor(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	author, err := s.client.GetAuthor(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		s.println(i18n.T(s.lang, i18n.MsgLoadDetail))
		return err
	}

	s.println(author.Name(s.lang))
	if author.PhotoURL != nil {
		s.println(s.client.AssetURL(*author.PhotoURL))
	}
	s.println("")
	s.println(s.renderer.Plain(author.Biography(s.lang)))
	s.println("")
	s.printPlays(author.Plays)
	return nil
}

func (s *Shell) printAuthors(authors []catalog.Author) {
	if len(authors) == 0 {
		s.println(i18n.T(s.lang, i18n.MsgNoResults))
		return
	}

	table := s.table()
	for _, author := range authors {
		fmt.Fprintf(table, "%d\t%s\n", author.ID, author.Name(s.lang))
	}
	_ = table.Flush()
}

// # Plays

func (s *Shell) showPlay(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	play, err := s.client.GetPlay(ctx, id)
	if err != nil {
		s.println(i18n.T(s.lang, i18n.MsgLoadDetail))
		return err
	}

	s.println(play.Title(s.lang))
	if play.Author != nil {
		s.println(play.Author.Name(s.lang))
	}

	table := s.table()
	writeField(table, "year", play.Year)
	writeText(table, "genre", play.Genre)
	writeText(table, "theme", play.Theme)
	writeField(table, "duration", play.Duration)
	writeField(table, "male", play.MaleParticipants)
	writeField(table, "female", play.FemaleParticipants)
	_ = table.Flush()

	s.println("")
	s.println(s.renderer.Plain(play.Description(s.lang)))

	if play.HasPDF() {
		s.println("")
		s.println("pdf: " + s.client.PlayPDFURL(play.ID))
	}
	for _, image := range play.Images {
		s.println(fmt.Sprintf("image %d: %s %s", image.ID, s.client.AssetURL(image.ImageURL), image.Caption(s.lang)))
	}
	for _, file := range play.Files {
		s.println(fmt.Sprintf("file %d: %s %s", file.ID, s.client.PlayFileViewURL(play.ID, file.ID), file.Caption(s.lang)))
	}
	return nil
}

func (s *Shell) printPlays(plays []catalog.Play) {
	if len(plays) == 0 {
		s.println(i18n.T(s.lang, i18n.MsgNoResults))
		return
	}

	table := s.table()
	for _, play := range plays {
		author := ""
		if play.Author != nil {
			author = play.Author.Name(s.lang)
		}
		fmt.Fprintf(table, "%d\t%s\t%s\t%s\t%s\n", play.ID, play.Title(s.lang), author, optionalInt(play.Year), optionalText(play.Genre))
	}
	_ = table.Flush()
}

// # Library

func (s *Shell) showPiece(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	piece, err := s.client.GetLiteraryPiece(ctx, id)
	if err != nil {
		s.println(i18n.T(s.lang, i18n.MsgLoadDetail))
		return err
	}

	s.println(piece.Title(s.lang))
	if piece.Author != nil {
		s.println(piece.Author.Name(s.lang))
	}
	if piece.Play != nil {
		s.println(piece.Play.Title(s.lang))
	}
	s.println("")
	s.println(s.renderer.Plain(piece.Description(s.lang)))

	if piece.HasPDF() {
		s.println("")
		s.println("pdf: " + s.client.LiteraryPiecePDFURL(piece.ID))
	}
	return nil
}

func (s *Shell) printPieces(pieces []catalog.LiteraryPiece) {
	if len(pieces) == 0 {
		s.println(i18n.T(s.lang, i18n.MsgNoResults))
		return
	}

	table := s.table()
	for _, piece := range pieces {
		author, play := "", ""
		if piece.Author != nil {
			author = piece.Author.Name(s.lang)
		}
		if piece.Play != nil {
			play = piece.Play.Title(s.lang)
		}
		fmt.Fprintf(table, "%d\t%s\t%s\t%s\n", piece.ID, piece.Title(s.lang), author, play)
	}
	_ = table.Flush()
}

// # Formatting

func writeField(table *tabwriter.Writer, label string, value *int) {
	if value != nil {
		fmt.Fprintf(table, "%s:\t%d\n", label, *value)
	}
}

func writeText(table *tabwriter.Writer, label string, value *string) {
	if value != nil && *value != "" {
		fmt.Fprintf(table, "%s:\t%s\n", label, *value)
	}
}

func optionalInt(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}

func optionalText(value *string) string {
	if value == nil || *value == "" {
		return "-"
	}
	return *value
}
