// Copyright (c) 2026 BGPiesa. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"

	"github.com/taibuivan/bgpiesa/internal/client"
)

// openUpload opens path for upload. done closes the file and finishes the
// progress bar.
func (s *Shell) openUpload(path string) (client.Upload, func(), error) {
	file, err := os.Open(path)
	if err != nil {
		return client.Upload{}, nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return client.Upload{}, nil, fmt.Errorf("stat %s: %w", path, err)
	}

	upload := client.Upload{Filename: filepath.Base(path), Content: file}
	bar := s.progressBar(info.Size(), "uploading "+upload.Filename)
	if bar == nil {
		return upload, func() { _ = file.Close() }, nil
	}

	reader := progressbar.NewReader(file, bar)
	upload.Content = &reader

	return upload, func() {
		_ = bar.Finish()
		_ = file.Close()
	}, nil
}

// download saves a backend file: a play or piece PDF, or a play attachment.
func (s *Shell) download(ctx context.Context, args []string) error {
	var (
		rawURL string
		target string
	)

	switch args[0] {
	case "play", "piece":
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if args[0] == "play" {
			rawURL = s.client.PlayPDFURL(id)
		} else {
			rawURL = s.client.LiteraryPiecePDFURL(id)
		}
		target = args[2]
	case "file":
		if len(args) < 4 {
			return usageError(commands["download"].usage)
		}
		playID, err := parseID(args[1])
		if err != nil {
			return err
		}
		fileID, err := parseID(args[2])
		if err != nil {
			return err
		}
		rawURL = s.client.PlayFileViewURL(playID, fileID)
		target = args[3]
	default:
		return usageError(commands["download"].usage)
	}

	written, err := s.save(ctx, rawURL, target)
	if err != nil {
		return err
	}

	s.println(fmt.Sprintf("%s (%d bytes)", target, written))
	return nil
}

// save streams rawURL into target. A partial file is removed on failure.
func (s *Shell) save(ctx context.Context, rawURL, target string) (int64, error) {
	download, err := s.client.Open(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer download.Body.Close()

	file, err := os.Create(target)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", target, err)
	}

	var sink io.Writer = file
	bar := s.progressBar(download.Size, "downloading "+filepath.Base(target))
	if bar != nil {
		sink = io.MultiWriter(file, bar)
	}

	written, copyErr := io.Copy(sink, download.Body)
	if bar != nil {
		_ = bar.Finish()
	}

	if err := errors.Join(copyErr, file.Close()); err != nil {
		_ = os.Remove(target)
		return 0, fmt.Errorf("save %s: %w", target, err)
	}

	return written, nil
}

// progressBar returns nil when progress output is disabled. A negative size
// renders a spinner.
func (s *Shell) progressBar(size int64, description string) *progressbar.ProgressBar {
	if s.progress == nil {
		return nil
	}

	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(s.progress),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
}
