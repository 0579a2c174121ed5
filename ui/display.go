package ui

import (
	"fmt"
	"io"
	"strings"

	"botsend/dispatch"
	"botsend/models"
	"botsend/utils"
)

// ANSI color codes for terminal output
const (
	ColorReset   = "\033[0m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorWhite   = "\033[37m"
)

// Color helper functions
func ColorTitle(text string) string     { return ColorCyan + ColorBold + text + ColorReset }
func ColorSuccess(text string) string   { return ColorGreen + ColorBold + text + ColorReset }
func ColorError(text string) string     { return ColorRed + ColorBold + text + ColorReset }
func ColorWarning(text string) string   { return ColorYellow + text + ColorReset }
func ColorInfo(text string) string      { return ColorWhite + text + ColorReset }
func ColorSection(text string) string   { return ColorBlue + ColorBold + text + ColorReset }
func ColorHighlight(text string) string { return ColorCyan + text + ColorReset }
func ColorDimText(text string) string   { return ColorDim + ColorWhite + text + ColorReset }

const sectionWidth = 60

// PrintBanner displays the application banner
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, ColorTitle("    ╔══════════════════════════════════════════════════╗"))
	fmt.Fprintln(w, ColorTitle("    ║  Discord Bot Messenger                           ║"))
	fmt.Fprintln(w, ColorTitle("    ╚══════════════════════════════════════════════════╝"))
}

// PrintSectionHeader prints a formatted section header
func PrintSectionHeader(w io.Writer, title string) {
	headerContent := fmt.Sprintf("─ %s ", title)
	remainingWidth := sectionWidth - len([]rune(headerContent))
	if remainingWidth < 0 {
		remainingWidth = 0
	}
	fmt.Fprintln(w, ColorSection("┌"+headerContent+strings.Repeat("─", remainingWidth)+"┐"))
}

// PrintSectionFooter prints a formatted section footer
func PrintSectionFooter(w io.Writer) {
	fmt.Fprintln(w, ColorSection("└"+strings.Repeat("─", sectionWidth)+"┘"))
}

// PrintRequest summarises what is about to be sent. The token is masked.
func PrintRequest(w io.Writer, req models.SendRequest) {
	PrintSectionHeader(w, "Send Request")
	fmt.Fprintf(w, "  Token:    %s\n", ColorDimText(utils.MaskSecret(req.Token)))
	fmt.Fprintf(w, "  Channel:  %s\n", ColorHighlight(req.ChannelID))
	if req.HasMessage() {
		fmt.Fprintf(w, "  Message:  %s\n", ColorInfo(utils.TruncateString(req.Message, 45)))
	} else {
		fmt.Fprintf(w, "  Message:  %s\n", ColorDimText("(none)"))
	}
	if req.HasAttachment() {
		fmt.Fprintf(w, "  File:     %s\n", ColorHighlight(req.AttachmentName()))
	}
	PrintSectionFooter(w)
}

// PrintResult prints the outcome of a send the way the result dialog shows it.
func PrintResult(w io.Writer, res dispatch.Result) {
	switch res.Kind() {
	case dispatch.KindNone:
		fmt.Fprintf(w, "%s %s\n", ColorSuccess(res.Title()+":"), res.Text())
		if res.ChannelName != "" {
			fmt.Fprintf(w, "  Channel:  %s\n", ColorHighlight("#"+res.ChannelName))
		}
		if res.MessageID != "" {
			fmt.Fprintf(w, "  Message:  %s\n", ColorDimText(res.MessageID))
		}
		fmt.Fprintf(w, "  Took:     %s\n", ColorDimText(utils.FormatDuration(res.Duration())))
	case dispatch.KindValidation:
		fmt.Fprintf(w, "%s %s\n", ColorWarning(res.Title()+":"), res.Text())
	default:
		fmt.Fprintf(w, "%s %s\n", ColorError(res.Title()+":"), res.Text())
	}
}
