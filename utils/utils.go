package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// MaxAttachmentSize is the upload limit for bots in servers without boosts.
const MaxAttachmentSize int64 = 25 * 1024 * 1024

// ValidateAttachment checks that path names a readable regular file within
// the upload limit and returns its size.
func ValidateAttachment(path string) (int64, error) {
	if path == "" {
		return 0, fmt.Errorf("attachment path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("file does not exist: %s", path)
		}
		return 0, fmt.Errorf("cannot access file %s: %w", path, err)
	}

	if info.IsDir() {
		return 0, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	if info.Size() > MaxAttachmentSize {
		return info.Size(), fmt.Errorf("file is too large to upload: %s (%s, limit %s)",
			path, FormatFileSize(info.Size()), FormatFileSize(MaxAttachmentSize))
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("cannot open file %s: %w", path, err)
	}
	defer file.Close()

	return info.Size(), nil
}

func FormatDuration(duration time.Duration) string {
	if duration < time.Second {
		return fmt.Sprintf("%d ms", duration.Milliseconds())
	}

	if duration < time.Minute {
		return fmt.Sprintf("%.1f sec", duration.Seconds())
	}

	if duration < time.Hour {
		return fmt.Sprintf("%.1f min", duration.Minutes())
	}

	return fmt.Sprintf("%.1f hrs", duration.Hours())
}

// FormatFileSize renders size in binary units, matching how the upload limit
// is expressed.
func FormatFileSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.IBytes(uint64(size))
}

// TruncateString shortens s to maxLength runes, ending in "...".
func TruncateString(s string, maxLength int) string {
	r := []rune(s)
	if len(r) <= maxLength {
		return s
	}

	if maxLength <= 3 {
		return string(r[:maxLength])
	}

	return string(r[:maxLength-3]) + "..."
}

// MaskSecret keeps the last four characters of a secret for display.
func MaskSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", 8) + secret[len(secret)-4:]
}
