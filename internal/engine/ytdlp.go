package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultBinary is the engine executable looked up in PATH.
const DefaultBinary = "yt-dlp"

// defaultWaitDelay is how long an interrupted engine gets to exit before
// it is killed.
const defaultWaitDelay = 5 * time.Second

var versionPattern = regexp.MustCompile(`^(\d{4})\.(\d{1,2})\.(\d{1,2})`)

// YtDlp runs the yt-dlp binary.
//
// Cancelling the context passed to any method forwards an interrupt to
// the running subprocess, which lets yt-dlp clean up its own partial
// files. The process is killed if it has not exited after WaitDelay.
//
// Example usage:
//
//	ytdlp := engine.NewYtDlp("")
//	listing, err := ytdlp.ListEntries(ctx, "https://www.youtube.com/playlist?list=PL...", engine.ListOptions{})
//	path, err := ytdlp.Download(ctx, engine.DownloadRequest{
//	    Locator:   listing.Entries[0].URL,
//	    Format:    "mp3",
//	    OutputDir: stagingDir,
//	    FileBase:  "01 - Intro",
//	})
type YtDlp struct {
	binary    string
	waitDelay time.Duration
}

// NewYtDlp creates an engine for binary. An empty binary means yt-dlp in
// PATH.
func NewYtDlp(binary string) *YtDlp {
	if binary == "" {
		binary = DefaultBinary
	}
	return &YtDlp{binary: binary, waitDelay: defaultWaitDelay}
}

// ListEntries performs a flat listing of locator.
func (y *YtDlp) ListEntries(ctx context.Context, locator string, opts ListOptions) (*Listing, error) {
	out, err := y.run(ctx, locator, listArgs(locator, opts))
	if err != nil {
		return nil, err
	}
	return ParseListing(out)
}

// Download fetches req.Locator into req.OutputDir.
func (y *YtDlp) Download(ctx context.Context, req DownloadRequest) (string, error) {
	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	if _, err := y.run(ctx, req.Locator, downloadArgs(req)); err != nil {
		return "", err
	}

	path := findDownloadedFile(req.OutputDir, req.FileBase, req.Format)
	if path == "" {
		return "", fmt.Errorf("%s: %w", req.Locator, ErrNoOutput)
	}
	return path, nil
}

// ProbeVersion runs yt-dlp --version.
func (y *YtDlp) ProbeVersion(ctx context.Context) (string, error) {
	out, err := y.run(ctx, "--version", []string{"--version"})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (y *YtDlp) run(ctx context.Context, locator string, args []string) ([]byte, error) {
	bin, err := exec.LookPath(y.binary)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotInstalled
		}
		return nil, err
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = y.waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		invErr := &InvocationError{
			Locator:    locator,
			ExitCode:   -1,
			Diagnostic: diagnosticTail(stderr.String()),
			Original:   err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.Exited() {
			invErr.ExitCode = exitErr.ExitCode()
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			invErr.Timeout = true
		}
		return nil, invErr
	}

	return stdout.Bytes(), nil
}

// ParseListing decodes the output of a -J flat listing. A single video
// becomes a listing with one entry.
func ParseListing(data []byte) (*Listing, error) {
	var listing Listing
	if err := json.Unmarshal(bytes.TrimSpace(data), &listing); err != nil {
		return nil, fmt.Errorf("parse yt-dlp listing: %w", err)
	}

	if len(listing.Entries) == 0 && listing.Type != "playlist" && listing.ID != "" {
		listing.Entries = []Entry{{
			Type:     "url",
			ID:       listing.ID,
			URL:      listing.WebpageURL,
			Title:    listing.Title,
			Duration: listing.Duration,
			Uploader: listing.Uploader,
			Channel:  listing.Channel,
		}}
	}
	return &listing, nil
}

// SupportsMetadataArgs reports whether an engine of the given version
// accepts explicit ffmpeg metadata arguments. yt-dlp versions are dates;
// everything from 2021 on qualifies.
func SupportsMetadataArgs(version string) bool {
	m := versionPattern.FindStringSubmatch(strings.TrimSpace(version))
	if m == nil {
		return false
	}
	year, err := strconv.Atoi(m[1])
	return err == nil && year >= 2021
}

// findDownloadedFile locates the file produced for base in dir. The
// extension matching format is preferred. Partial files are ignored.
func findDownloadedFile(dir, base, format string) string {
	expected := filepath.Join(dir, base+"."+FileExtension(format))
	if info, err := os.Stat(expected); err == nil && !info.IsDir() {
		return expected
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, base+".") || isPartial(name) {
			continue
		}
		return filepath.Join(dir, name)
	}
	return ""
}

func isPartial(name string) bool {
	for _, suffix := range []string{".part", ".ytdl", ".temp", ".tmp"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// FileExtension maps an audio format to the extension yt-dlp writes.
func FileExtension(format string) string {
	switch strings.ToLower(format) {
	case "vorbis":
		return "ogg"
	case "alac":
		return "m4a"
	default:
		return strings.ToLower(format)
	}
}
