// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/bgpiesa/internal/catalog"
	"github.com/taibuivan/bgpiesa/internal/platform/apperr"
)

// sniffLength is how much of an upload is read to detect its type.
const sniffLength = 3072

const (
	formFieldFile      = "file"
	formFieldCaptionBG = "caption_bg"
	formFieldCaptionEN = "caption_en"
)

// Upload is one file sent to the backend. Content is read once.
type Upload struct {
	Filename string
	Content  io.Reader
}

type uploadKind int

const (
	kindAny uploadKind = iota
	kindImage
	kindPDF
)

// DetectContentType sniffs the first bytes of content. The returned reader
// yields the full content again.
func DetectContentType(content io.Reader) (string, io.Reader, error) {
	head := make([]byte, sniffLength)
	n, err := io.ReadFull(content, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", nil, fmt.Errorf("client: read upload: %w", err)
	}
	head = head[:n]

	if n == 0 {
		return "", nil, apperr.ValidationError("File is empty", apperr.FieldError{Field: catalog.FieldFile, Message: "is empty"})
	}

	return mimetype.Detect(head).String(), io.MultiReader(bytes.NewReader(head), content), nil
}

func checkKind(contentType string, kind uploadKind) error {
	switch kind {
	case kindPDF:
		if !mimetype.EqualsAny(contentType, "application/pdf") {
			return apperr.ValidationError("File must be a PDF", apperr.FieldError{Field: catalog.FieldFile, Message: "must be a PDF, got " + contentType})
		}
	case kindImage:
		if !strings.HasPrefix(contentType, "image/") {
			return apperr.ValidationError("File must be an image", apperr.FieldError{Field: catalog.FieldFile, Message: "must be an image, got " + contentType})
		}
	}
	return nil
}

// upload sends one multipart request with a "file" part and the non-empty
// captions. The body is streamed.
func (a *Admin) upload(ctx context.Context, route, path string, upload Upload, kind uploadKind, captions catalog.Captions, out any) error {
	if err := a.authorize(); err != nil {
		return err
	}
	if upload.Content == nil {
		return apperr.ValidationError("File is required", apperr.FieldError{Field: catalog.FieldFile, Message: "is required"})
	}

	// 1. Detect and check the content type
	contentType, content, err := DetectContentType(upload.Content)
	if err != nil {
		return err
	}
	if err := checkKind(contentType, kind); err != nil {
		return err
	}

	// 2. Stream the form through a pipe
	reader, writer := io.Pipe()
	defer reader.Close()

	form := multipart.NewWriter(writer)
	go func() {
		writer.CloseWithError(writeForm(form, upload.Filename, contentType, content, captions))
	}()

	// 3. Dispatch
	return a.client.send(ctx, call{
		method:      http.MethodPost,
		route:       route,
		path:        path,
		body:        reader,
		contentType: form.FormDataContentType(),
		credential:  a.credential,
	}, out)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeForm(form *multipart.Writer, filename, contentType string, content io.Reader, captions catalog.Captions) error {
	name := filepath.Base(strings.TrimSpace(filename))
	if name == "." || name == string(filepath.Separator) {
		name = formFieldFile
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, formFieldFile, quoteEscaper.Replace(name)))
	header.Set("Content-Type", contentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}

	fields := []struct {
		name  string
		value *string
	}{
		{formFieldCaptionBG, captions.CaptionBG},
		{formFieldCaptionEN, captions.CaptionEN},
	}
	for _, field := range fields {
		if field.value == nil || strings.TrimSpace(*field.value) == "" {
			continue
		}
		if err := form.WriteField(field.name, *field.value); err != nil {
			return err
		}
	}

	return form.Close()
}
