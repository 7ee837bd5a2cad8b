package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"GoldLens/internal/pipeline"
)

// maxWarnings bounds the warnings listed in one message.
const maxWarnings = 5

// FormatRunReport formats a finished run for Telegram.
func FormatRunReport(rep *pipeline.Report) string {
	var b strings.Builder

	status := "✅"
	if !rep.OK() {
		status = "⚠️"
	}
	b.WriteString(fmt.Sprintf("%s <b>GoldLens run</b> | %s\n\n", status, rep.AsOf.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Calendar: %d trading days\n", rep.CalendarDays))
	b.WriteString(fmt.Sprintf("Assets: %d\n", rep.Assets))
	b.WriteString(fmt.Sprintf("Chunks: %d ok / %d failed\n", rep.Chunks-rep.FailedChunks, rep.FailedChunks))

	if len(rep.Timeframes) > 0 {
		b.WriteString("\n📈 <b>Timeframes:</b>\n")
		for _, tf := range rep.Timeframes {
			b.WriteString(fmt.Sprintf("  %s: %d points, %d absent\n", tf.Label, tf.Points, tf.Absent))
		}
	}
	b.WriteString(fmt.Sprintf("\nGold rows: %d\n", rep.GoldRows))
	b.WriteString(fmt.Sprintf("Artifacts: %s\n", strings.Join(rep.Artifacts, ", ")))

	if len(rep.Warnings) > 0 {
		b.WriteString(fmt.Sprintf("\n<b>Warnings (%d):</b>\n", len(rep.Warnings)))
		for i, w := range rep.Warnings {
			if i == maxWarnings {
				b.WriteString(fmt.Sprintf("  … %d more\n", len(rep.Warnings)-maxWarnings))
				break
			}
			b.WriteString("  • " + html.EscapeString(w) + "\n")
		}
	}
	b.WriteString(fmt.Sprintf("\nrun %s, %s", rep.RunID, rep.Duration.Round(time.Second)))
	return b.String()
}

// FormatRunFailure formats a run that produced no artifacts.
func FormatRunFailure(rep *pipeline.Report, err error) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("❌ <b>GoldLens run failed</b> | %s\n\n", rep.AsOf.Format("2006-01-02")))
	b.WriteString(html.EscapeString(err.Error()) + "\n")
	if rep.Chunks > 0 {
		b.WriteString(fmt.Sprintf("Chunks: %d/%d failed\n", rep.FailedChunks, rep.Chunks))
	}
	b.WriteString(fmt.Sprintf("\nrun %s", rep.RunID))
	return b.String()
}
