package summarizer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxListedFrames caps the dropped-frame list in the report.
const maxListedFrames = 50

// MarkdownFormatter renders a Summary as a Markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator translates headings and labels.
func WithTranslator(t func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = t
	}
}

// WithVersion adds the tool version to the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{
		translate: func(s string) string { return s },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ Formatter = (*MarkdownFormatter)(nil)

// Format implements Formatter.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Frame Repair Summary"))

	// Job
	b.WriteString("| | |\n|---|---|\n")
	row(&b, t("Input"), "`"+s.Input.Path+"`")
	if s.Output.DryRun {
		row(&b, t("Output"), t("Dry run, no video written"))
	} else if s.Output.Path != "" {
		row(&b, t("Output"), "`"+s.Output.Path+"`")
	}
	row(&b, t("Job ID"), s.Job.ID)
	row(&b, t("State"), t(s.Job.State))
	if s.Job.Error != "" {
		row(&b, t("Error"), s.Job.Error)
	}
	b.WriteString("\n")

	// Detection
	d := s.Detection
	fmt.Fprintf(&b, "## %s\n\n", t("Duplicate Detection"))
	b.WriteString("| | |\n|---|---|\n")
	row(&b, t("Metric"), d.Metric)
	row(&b, t("Threshold"), strconv.FormatFloat(d.Threshold, 'f', -1, 64))
	row(&b, t("Batch Size"), strconv.Itoa(d.BatchSize))
	row(&b, t("Batch Boundaries Scored"), t(yesNo(d.ScoreBatchBoundaries)))
	row(&b, t("Input Frames"), strconv.Itoa(s.Input.Frames))
	row(&b, t("Kept Frames"), strconv.Itoa(d.Kept))
	row(&b, t("Dropped Frames"), fmt.Sprintf("%d (%s)", d.Dropped, percent(d.Dropped, s.Input.Frames)))
	if d.ComparisonErrors > 0 {
		row(&b, t("Comparison Errors"), strconv.Itoa(d.ComparisonErrors))
	}
	if d.DeleteErrors > 0 {
		row(&b, t("Delete Errors"), strconv.Itoa(d.DeleteErrors))
	}
	b.WriteString("\n")

	if len(d.DroppedFrames) > 0 {
		fmt.Fprintf(&b, "%s: %s\n\n", t("Dropped frame numbers"), frameList(d.DroppedFrames))
	}

	// Output
	if !s.Output.DryRun && s.Output.Path != "" {
		o := s.Output
		fmt.Fprintf(&b, "## %s\n\n", t("Output Video"))
		b.WriteString("| | |\n|---|---|\n")
		if o.Frames >= 0 {
			row(&b, t("Frames"), strconv.Itoa(o.Frames))
		} else {
			row(&b, t("Frames"), t("Unknown"))
		}
		row(&b, t("Frame Rate"), strconv.FormatFloat(o.FrameRate, 'f', -1, 64)+" fps")
		if o.CRF > 0 {
			row(&b, "CRF", strconv.Itoa(o.CRF))
		}
		row(&b, t("File Size"), formatBytes(o.FileSize))
		b.WriteString("\n")
	}

	// Timing
	if len(s.Stages) > 0 {
		fmt.Fprintf(&b, "## %s\n\n", t("Timing"))
		fmt.Fprintf(&b, "| %s | %s |\n|---|---:|\n", t("Stage"), t("Duration"))
		var total time.Duration
		for _, st := range s.Stages {
			fmt.Fprintf(&b, "| %s | %s |\n", t(st.Name), formatDuration(st.Duration))
			total += st.Duration
		}
		fmt.Fprintf(&b, "| **%s** | **%s** |\n\n", t("Total"), formatDuration(total))
	}

	// Footer
	b.WriteString("---\n\n")
	footer := fmt.Sprintf("%s %s", t("Generated at"), s.GeneratedAt.Format(time.RFC3339))
	if f.version != "" {
		footer += " by framefix " + f.version
	}
	b.WriteString(footer + "\n")

	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "| %s | %s |\n", label, value)
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func percent(n, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(n)*100/float64(total))
}

// frameList prints 1-based frame numbers, truncated after maxListedFrames.
func frameList(indices []int) string {
	n := min(len(indices), maxListedFrames)
	parts := make([]string, n)
	for i := range n {
		parts[i] = strconv.Itoa(indices[i] + 1)
	}
	out := strings.Join(parts, ", ")
	if len(indices) > n {
		out += fmt.Sprintf(", … (+%d)", len(indices)-n)
	}
	return out
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%d ms", d.Milliseconds())
	}
	return fmt.Sprintf("%.2f s", d.Seconds())
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
