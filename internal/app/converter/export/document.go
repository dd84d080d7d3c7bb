package export

import (
	"fmt"
	"strings"
	"time"

	"audio-transcriber/internal/app/model"
)

const (
	FormatTXT = "txt"
	FormatSRT = "srt"
)

// StripExtension removes the last ".ext" of name. A trailing dot or a dot inside a
// path segment separator is left alone.
func StripExtension(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return name
	}
	if strings.Contains(name[i+1:], "/") {
		return name
	}
	return name[:i]
}

// DocumentFileName is the name offered when downloading a transcription of fileName.
func DocumentFileName(fileName, format string) string {
	if format == "" {
		format = FormatTXT
	}
	return "transcripcion_" + StripExtension(fileName) + "." + format
}

// FormatDate renders a date as day/month/year without zero padding.
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// TextDocument is the downloadable plain text version of a transcription.
func TextDocument(fileName, text string, date time.Time) string {
	return fmt.Sprintf("TRANSCRIPCIÓN - %s\n\nFecha: %s\n\n%s", fileName, FormatDate(date), text)
}

// SRT renders timed segments as SubRip subtitles. Segments without text are skipped.
func SRT(segments []model.Segment) string {
	var b strings.Builder
	n := 0
	for _, s := range segments {
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		n++
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n", n, srtTimestamp(s.Start), srtTimestamp(s.End), text)
	}
	return b.String()
}

func srtTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	ms := int64(seconds*1000 + 0.5)
	h := ms / 3_600_000
	ms %= 3_600_000
	m := ms / 60_000
	ms %= 60_000
	s := ms / 1000
	ms %= 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// Render returns the download body and file name for the requested format. SRT falls
// back to plain text when there are no segments.
func Render(format, fileName, text string, segments []model.Segment, date time.Time) (body, name string) {
	if format == FormatSRT && len(segments) > 0 {
		return SRT(segments), DocumentFileName(fileName, FormatSRT)
	}
	return TextDocument(fileName, text, date), DocumentFileName(fileName, FormatTXT)
}
