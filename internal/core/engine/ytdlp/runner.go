package ytdlp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/amouradore/mouradloader/internal/core/engine"
	"github.com/rs/zerolog/log"
)

var (
	progressRe    = regexp.MustCompile(`\[download\]\s+(\d+\.?\d*)%\s+of\s+(~)?\s*(\S+)\s+at\s+(\S+)(?:\s+ETA\s+(\S+))?`)
	destinationRe = regexp.MustCompile(`\[(?:download|ExtractAudio)\] Destination: (.+)`)
	mergerRe      = regexp.MustCompile(`\[Merger\] Merging formats into "(.+)"`)
	alreadyRe     = regexp.MustCompile(`\[download\] (.+) has already been downloaded`)
)

// runDownload executes yt-dlp, feeds progress observations to the sink and
// returns the path of the produced file.
func runDownload(ctx context.Context, binary string, args []string, progress engine.ProgressFunc) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("start yt-dlp: %w", err)
	}

	var (
		dest      string
		lastError string
	)
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		log.Debug().Str("ytdlp", line).Msg("yt-dlp output")

		if p, ok := parseProgressLine(line); ok {
			progress(p)
		}
		if d := parseDestination(line); d != "" {
			dest = d
		}
		if isFinalizing(line) {
			progress(engine.Progress{Finalizing: true})
		}
		if strings.HasPrefix(line, "ERROR:") {
			lastError = strings.TrimPrefix(line, "ERROR: ")
		}
	}

	if err := cmd.Wait(); err != nil {
		if lastError != "" {
			return "", fmt.Errorf("yt-dlp: %s", lastError)
		}
		return "", fmt.Errorf("yt-dlp exit: %w", err)
	}

	if dest == "" {
		return "", fmt.Errorf("yt-dlp finished without reporting an output file")
	}
	log.Info().Str("file", dest).Msg("yt-dlp download complete")
	return dest, nil
}

// parseProgressLine extracts one transfer observation from a --newline
// progress line, e.g.
//
//	[download]  45.2% of ~ 120.53MiB at 2.21MiB/s ETA 00:45
func parseProgressLine(line string) (engine.Progress, bool) {
	m := progressRe.FindStringSubmatch(line)
	if len(m) == 0 {
		return engine.Progress{}, false
	}

	pct, _ := strconv.ParseFloat(m[1], 64)
	total := parseSize(m[3])

	p := engine.Progress{
		Total:      total,
		Estimated:  m[2] == "~",
		Downloaded: int64(pct / 100 * float64(total)),
		Speed:      parseSpeed(m[4]),
		ETA:        parseETA(m[5]),
	}
	return p, true
}

func isFinalizing(line string) bool {
	return strings.Contains(line, "[Merger]") ||
		strings.Contains(line, "[ExtractAudio]") ||
		strings.Contains(line, "Post-process")
}

func parseDestination(line string) string {
	if m := destinationRe.FindStringSubmatch(line); len(m) == 2 {
		return m[1]
	}
	if m := mergerRe.FindStringSubmatch(line); len(m) == 2 {
		return m[1]
	}
	if m := alreadyRe.FindStringSubmatch(line); len(m) == 2 {
		return m[1]
	}
	return ""
}

func parseSize(s string) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "UNKNOWN" {
		return 0
	}

	multiplier := float64(1)
	switch {
	case strings.HasSuffix(s, "GIB"):
		multiplier = 1024 * 1024 * 1024
		s = strings.TrimSuffix(s, "GIB")
	case strings.HasSuffix(s, "MIB"):
		multiplier = 1024 * 1024
		s = strings.TrimSuffix(s, "MIB")
	case strings.HasSuffix(s, "KIB"):
		multiplier = 1024
		s = strings.TrimSuffix(s, "KIB")
	case strings.HasSuffix(s, "B"):
		s = strings.TrimSuffix(s, "B")
	default:
		return 0
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return int64(val * multiplier)
}

func parseSpeed(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "Unknown") {
		return 0
	}
	return parseSize(strings.TrimSuffix(strings.ToUpper(s), "/S"))
}

// parseETA converts yt-dlp's HH:MM:SS / MM:SS clock format to seconds.
func parseETA(s string) int64 {
	if s == "" || strings.EqualFold(s, "Unknown") {
		return 0
	}
	var total int64
	for _, part := range strings.Split(s, ":") {
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}

// extractInfo runs yt-dlp --dump-json to get metadata without downloading.
func extractInfo(ctx context.Context, binary, cookieFile, url string) (*infoJSON, error) {
	args := []string{"--dump-json", "--no-warnings", "--no-download", "--no-playlist"}
	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}
	args = append(args, url)

	cmd := exec.CommandContext(ctx, binary, args...)
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return nil, fmt.Errorf("yt-dlp info: %s", firstErrorLine(ee.Stderr))
		}
		return nil, fmt.Errorf("yt-dlp info: %w", err)
	}

	var info infoJSON
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("parse info: %w", err)
	}
	return &info, nil
}

func firstErrorLine(stderr []byte) string {
	for _, line := range strings.Split(string(stderr), "\n") {
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimPrefix(line, "ERROR: ")
		}
	}
	return strings.TrimSpace(string(stderr))
}
