// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/client"
	"github.com/taibuivan/bgpiesa/internal/i18n"
	"github.com/taibuivan/bgpiesa/pkg/pointer"
)

var adminUsage = []string{
	"admin create author|play|piece <file.yaml>",
	"admin update author|play|piece <id> <file.yaml>",
	"admin delete author|play|piece <id>",
	"admin delete image|file <play id> <asset id>",
	"admin upload photo <author id> <path>",
	"admin upload play-pdf <play id> <path>",
	"admin upload image|file <play id> <path> [bg=...] [en=...]",
	"admin upload piece-pdf <piece id> <path>",
	"admin caption image|file <play id> <asset id> [bg=...] [en=...]",
}

var errAdminUsage = errors.New("usage: see help admin")

// # Session

func (s *Shell) login(ctx context.Context, _ []string) error {
	if s.input == nil {
		return errors.New("login needs an interactive terminal")
	}

	password, err := s.input.PasswordPrompt("password: ")
	if err != nil {
		return err
	}

	credential, err := s.client.Login(ctx, password)
	if err != nil {
		s.println(i18n.T(s.lang, i18n.MsgLoginFailed))
		return err
	}

	s.credential = credential
	if s.credentials != nil {
		if err := s.credentials.Save(credential); err != nil {
			s.logger.Warn("credential_save_failed", slog.Any("error", err))
		}
	}

	s.println(i18n.T(s.lang, i18n.MsgLoggedIn))
	return nil
}

func (s *Shell) logout(_ context.Context, _ []string) error {
	s.credential = nil
	if s.credentials != nil {
		if err := s.credentials.Clear(); err != nil {
			return err
		}
	}

	s.println(i18n.T(s.lang, i18n.MsgLoggedOut))
	return nil
}

// # Admin

func (s *Shell) admin(ctx context.Context, args []string) error {
	admin := s.client.Admin(s.credential)
	action, rest := strings.ToLower(args[0]), args[1:]

	var err error
	switch action {
	case "create":
		err = s.adminCreate(ctx, admin, rest)
	case "update":
		err = s.adminUpdate(ctx, admin, rest)
	case "delete":
		err = s.adminDelete(ctx, admin, rest)
	case "upload":
		err = s.adminUpload(ctx, admin, rest)
	case "caption":
		err = s.adminCaption(ctx, admin, rest)
	default:
		return errAdminUsage
	}

	if err != nil {
		if errors.Is(err, errAdminUsage) || errors.Is(err, client.ErrNoCredential) {
			return err
		}
		s.println(i18n.T(s.lang, failureMessage(action)))
	}
	return err
}

func (s *Shell) adminCreate(ctx context.Context, admin *client.Admin, args []string) error {
	if len(args) != 2 {
		return errAdminUsage
	}

	switch args[0] {
	case "author":
		var input catalog.AuthorInput
		if err := readInput(args[1], &input); err != nil {
			return err
		}
		author, err := admin.CreateAuthor(ctx, input)
		if err != nil {
			return err
		}
		s.printSaved(author.ID)
	case "play":
		var input catalog.PlayInput
		if err := readInput(args[1], &input); err != nil {
			return err
		}
		play, err := admin.CreatePlay(ctx, input)
		if err != nil {
			return err
		}
		s.printSaved(play.ID)
	case "piece":
		var input catalog.LiteraryPieceInput
		if err := readInput(args[1], &input); err != nil {
			return err
		}
		piece, err := admin.CreateLiteraryPiece(ctx, input)
		if err != nil {
			return err
		}
		s.printSaved(piece.ID)
	default:
		return errAdminUsage
	}
	return nil
}

func (s *Shell) adminUpdate(ctx context.Context, admin *client.Admin, args []string) error {
	if len(args) != 3 {
		return errAdminUsage
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	switch args[0] {
	case "author":
		var input catalog.AuthorInput
		if err := readInput(args[2], &input); err != nil {
			return err
		}
		if _, err := admin.UpdateAuthor(ctx, id, input); err != nil {
			return err
		}
	case "play":
		var input catalog.PlayInput
		if err := readInput(args[2], &input); err != nil {
			return err
		}
		if _, err := admin.UpdatePlay(ctx, id, input); err != nil {
			return err
		}
	case "piece":
		var input catalog.LiteraryPieceInput
		if err := readInput(args[2], &input); err != nil {
			return err
		}
		if _, err := admin.UpdateLiteraryPiece(ctx, id, input); err != nil {
			return err
		}
	default:
		return errAdminUsage
	}

	s.printSaved(id)
	return nil
}

func (s *Shell) adminDelete(ctx context.Context, admin *client.Admin, args []string) error {
	if len(args) < 2 {
		return errAdminUsage
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	switch args[0] {
	case "author":
		err = admin.DeleteAuthor(ctx, id)
	case "play":
		err = admin.DeletePlay(ctx, id)
	case "piece":
		err = admin.DeleteLiteraryPiece(ctx, id)
	case "image", "file":
		if len(args) != 3 {
			return errAdminUsage
		}
		assetID, parseErr := parseID(args[2])
		if parseErr != nil {
			return parseErr
		}
		if args[0] == "image" {
			err = admin.DeletePlayImage(ctx, id, assetID)
		} else {
			err = admin.DeletePlayFile(ctx, id, assetID)
		}
	default:
		return errAdminUsage
	}
	if err != nil {
		return err
	}

	s.println(i18n.T(s.lang, i18n.MsgDeleted))
	return nil
}

func (s *Shell) adminUpload(ctx context.Context, admin *client.Admin, args []string) error {
	if len(args) < 3 {
		return errAdminUsage
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	upload, done, err := s.openUpload(args[2])
	if err != nil {
		return err
	}
	defer done()

	captions := captionsFrom(args[3:])

	switch args[0] {
	case "photo":
		_, err = admin.UploadAuthorPhoto(ctx, id, upload)
	case "play-pdf":
		_, err = admin.UploadPlayPDF(ctx, id, upload)
	case "image":
		_, err = admin.UploadPlayImage(ctx, id, upload, captions)
	case "file":
		_, err = admin.UploadPlayFile(ctx, id, upload, captions)
	case "piece-pdf":
		_, err = admin.UploadLiteraryPiecePDF(ctx, id, upload)
	default:
		return errAdminUsage
	}
	if err != nil {
		return err
	}

	s.println(i18n.T(s.lang, i18n.MsgUploaded))
	return nil
}

func (s *Shell) adminCaption(ctx context.Context, admin *client.Admin, args []string) error {
	if len(args) < 3 {
		return errAdminUsage
	}
	playID, err := parseID(args[1])
	if err != nil {
		return err
	}
	assetID, err := parseID(args[2])
	if err != nil {
		return err
	}

	captions := captionsFrom(args[3:])
	switch args[0] {
	case "image":
		_, err = admin.UpdatePlayImageCaption(ctx, playID, assetID, captions)
	case "file":
		_, err = admin.UpdatePlayFileCaption(ctx, playID, assetID, captions)
	default:
		return errAdminUsage
	}
	if err != nil {
		return err
	}

	s.printSaved(assetID)
	return nil
}

// # Helpers

func (s *Shell) printSaved(id int) {
	s.println(fmt.Sprintf("%s (id %d)", i18n.T(s.lang, i18n.MsgSaved), id))
}

func failureMessage(action string) string {
	switch action {
	case "delete":
		return i18n.MsgDeleteFailed
	case "upload":
		return i18n.MsgUploadFailed
	default:
		return i18n.MsgSaveFailed
	}
}

// readInput decodes a YAML (or JSON) entity file.
func readInput(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// captionsFrom reads bg=... and en=... arguments. Blank captions are left out.
func captionsFrom(args []string) catalog.Captions {
	values := keyValues(args)

	var captions catalog.Captions
	if bg := strings.TrimSpace(values["bg"]); bg != "" {
		captions.CaptionBG = pointer.To(bg)
	}
	if en := strings.TrimSpace(values["en"]); en != "" {
		captions.CaptionEN = pointer.To(en)
	}
	return captions
}
