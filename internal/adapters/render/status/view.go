package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/agent-crew/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const (
	previewWidth = 48
	barWidth     = 20
)

// Dashboard is everything the status view shows.
type Dashboard struct {
	Status    domain.MailboxStatus
	MaxQueue  int
	Current   *domain.QueuedMessage
	Pending   []domain.QueuedMessage
	// History is newest first.
	History   []domain.QueuedMessage
	Suspended []domain.SuspendedAgentInfo
	Jobs      []domain.MonitoringJob
}

type RenderOptions struct {
	Now time.Time
	// HistoryLimit caps the history lines shown. Zero shows all.
	HistoryLimit int
}

func renderView(d Dashboard, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Crew Mailbox"),
		s.header.Render(counterLine(d.Status)),
	}

	if d.MaxQueue > 0 {
		lines = append(lines, queueLine(d.Status.PendingCount, d.MaxQueue, s))
	}

	lines = append(lines,
		s.section.Render(renderCurrent(d.Current, opts, s)),
		s.section.Render(renderPending(d.Pending, opts, s)),
		s.section.Render(renderHistory(d.History, opts, s)),
		s.section.Render(renderSuspended(d.Suspended, opts, s)),
	)

	if len(d.Jobs) > 0 {
		lines = append(lines, s.section.Render(renderJobs(d.Jobs, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func counterLine(st domain.MailboxStatus) string {
	return fmt.Sprintf("pending: %d  processed: %d  failed: %d",
		st.PendingCount, st.TotalProcessed, st.TotalFailed)
}

func queueLine(pending, max int, s styles) string {
	used := float64(pending) / float64(max) * 100
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.meta.Render("queue:"),
		" ",
		renderProgressBar(used, barWidth, s),
		" ",
		lipgloss.NewStyle().Foreground(interpolateColor(used, 0, 100)).Render(fmt.Sprintf("%d/%d", pending, max)),
	)
}

func renderCurrent(current *domain.QueuedMessage, opts RenderOptions, s styles) string {
	parts := []string{s.heading.Render("In flight")}
	if current == nil {
		parts = append(parts, s.empty.Render("idle"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	line := fmt.Sprintf("%s %s", s.busy.Render("▶"), messageLine(*current, s))
	if current.ProcessingStartedAt != nil {
		line += " " + s.meta.Render("started "+formatAgo(*current.ProcessingStartedAt, opts.Now))
	}

	return lipgloss.JoinVertical(lipgloss.Left, append(parts, line)...)
}

func renderPending(pending []domain.QueuedMessage, opts RenderOptions, s styles) string {
	parts := []string{s.heading.Render(fmt.Sprintf("Pending (%d)", len(pending)))}
	if len(pending) == 0 {
		parts = append(parts, s.empty.Render("queue is empty"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for i, msg := range pending {
		line := fmt.Sprintf("%2d. %s %s", i+1, messageLine(msg, s), s.meta.Render("queued "+formatAgo(msg.EnqueuedAt, opts.Now)))
		if msg.RetryCount > 0 {
			line += " " + s.busy.Render(fmt.Sprintf("retry %d", msg.RetryCount))
		}
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHistory(history []domain.QueuedMessage, opts RenderOptions, s styles) string {
	parts := []string{s.heading.Render("Recent")}
	if len(history) == 0 {
		parts = append(parts, s.empty.Render("no finished messages"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for i, msg := range history {
		if opts.HistoryLimit > 0 && i == opts.HistoryLimit {
			break
		}
		line := fmt.Sprintf("%s %s", statusMark(msg.Status, s), messageLine(msg, s))
		if msg.CompletedAt != nil {
			line += " " + s.meta.Render(formatAgo(*msg.CompletedAt, opts.Now))
		}
		if msg.Error != "" {
			line += " " + s.failed.Render(msg.Error)
		}
		parts = append(parts, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderSuspended(agents []domain.SuspendedAgentInfo, opts RenderOptions, s styles) string {
	parts := []string{s.heading.Render(fmt.Sprintf("Suspended agents (%d)", len(agents)))}
	if len(agents) == 0 {
		parts = append(parts, s.empty.Render("none"))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	for _, agent := range agents {
		resume := s.cancelled.Render("fresh start")
		if agent.HasContinuationToken() {
			resume = s.ok.Render("resumable")
		}
		parts = append(parts, fmt.Sprintf("%s %s %s %s",
			s.detail.Render(agent.SessionName),
			s.meta.Render(memberLabel(agent)),
			s.meta.Render("suspended "+formatAgo(agent.SuspendedAt, opts.Now)),
			resume,
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderJobs(jobs []domain.MonitoringJob, opts RenderOptions, s styles) string {
	parts := []string{s.heading.Render(fmt.Sprintf("Monitoring (%d)", len(jobs)))}
	for _, job := range jobs {
		label := job.Config.TaskID
		if label == "" {
			label = job.Config.MonitoringID
		}
		attempts := job.Config.MaxAttempts + 1
		parts = append(parts, fmt.Sprintf("%s %s %s",
			s.detail.Render(label),
			s.busy.Render(fmt.Sprintf("attempt %d/%d", job.CurrentAttempt, attempts)),
			s.meta.Render("since "+formatAgo(job.StartTime, opts.Now)),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func messageLine(msg domain.QueuedMessage, s styles) string {
	return fmt.Sprintf("%s %s %s",
		s.meta.Render(shortID(msg.ID)),
		s.meta.Render(fmt.Sprintf("[%s]", msg.Source)),
		s.detail.Render(preview(msg.Content, previewWidth)),
	)
}

func statusMark(status domain.MessageStatus, s styles) string {
	switch status {
	case domain.MessageStatusCompleted:
		return s.ok.Render("✓")
	case domain.MessageStatusFailed:
		return s.failed.Render("✗")
	case domain.MessageStatusCancelled:
		return s.cancelled.Render("⊘")
	default:
		return s.meta.Render("·")
	}
}

func memberLabel(agent domain.SuspendedAgentInfo) string {
	label := strings.Trim(agent.TeamID+"/"+agent.MemberID, "/")
	if agent.Role != "" {
		label += " (" + string(agent.Role) + ")"
	}
	return label
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func preview(content string, width int) string {
	flat := strings.Join(strings.Fields(content), " ")
	runes := []rune(flat)
	if len(runes) <= width {
		return flat
	}
	return string(runes[:width-1]) + "…"
}

func formatAgo(at, now time.Time) string {
	if at.IsZero() {
		return "at unknown time"
	}
	if now.IsZero() {
		return "at " + at.Format(time.RFC3339)
	}

	elapsed := now.Sub(at)
	switch {
	case elapsed < time.Second:
		return "just now"
	case elapsed < time.Minute:
		return fmt.Sprintf("%ds ago", int(elapsed.Seconds()))
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}

func renderProgressBar(usedPercent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampPercent(usedPercent) / 100))
	if filled > width {
		filled = width
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// interpolateColor maps value onto the 240..255 greyscale ramp.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
