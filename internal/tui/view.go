package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/codelearn/internal/domain"
	"github.com/felixgeelhaar/codelearn/internal/highlight"
	"github.com/felixgeelhaar/codelearn/internal/profile"
	"github.com/felixgeelhaar/codelearn/internal/workbench"
)

const sidebarWidth = 22

// View implements tea.Model.
func (m *Model) View() string {
	if m.screen == nil {
		return ""
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderMain())
	return body + "\n" + m.renderFooter()
}

func (m *Model) renderSidebar() string {
	sb := m.screen.Sidebar
	items := append(append([]workbench.SidebarItem{}, sb.Items...), sb.Footer)

	var b strings.Builder
	if !sb.Collapsed {
		b.WriteString(Styles.Title.Render("CodeLearn") + "\n\n")
	}
	for _, item := range items {
		prefix := "  "
		if m.focus == focusNav && domain.Views[m.navIndex] == item.View {
			prefix = Styles.Cursor.Render("> ")
		}

		label := item.Label
		if sb.Collapsed {
			label = label[:1]
		}
		if item.Active {
			label = Styles.Active.Render(label)
		} else {
			label = Styles.Normal.Render(label)
		}
		if item.Badge != "" && !sb.Collapsed {
			label += " " + Styles.Badge.Render(item.Badge)
		}
		b.WriteString(prefix + label + "\n")
	}

	width := sidebarWidth
	if sb.Collapsed {
		width = 6
	}
	return Styles.Sidebar.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderMain() string {
	s := m.screen

	var sections []string
	sections = append(sections, Styles.Title.Render(s.Title))
	if s.Fallback {
		sections = append(sections, Styles.Muted.Render(fmt.Sprintf("Unknown view %q, showing the dashboard", s.Requested)))
	}

	if s.Dashboard != nil {
		sections = append(sections, renderDashboard(s.Dashboard))
	}
	if s.Tutorial != nil {
		sections = append(sections, renderTutorial(s.Tutorial))
	}
	if s.Exercises != nil {
		sections = append(sections, m.renderExercises(s.Exercises))
	}
	if s.Editor != nil {
		sections = append(sections, m.renderEditor(s.Editor))
	}
	if s.Notice != nil {
		sections = append(sections, Styles.Section.Render(s.Notice.Heading)+"\n"+Styles.Normal.Render(s.Notice.Body))
	}
	if s.Progress != nil {
		sections = append(sections, renderOverview(s.Progress.Overview), renderRecent(s.Progress.Recent))
	}
	if s.Settings != nil {
		sections = append(sections, renderSettings(s.Settings))
	}

	style := Styles.Main
	if m.width > 0 {
		style = style.Width(max(m.width-sidebarWidth-8, 30))
	}
	return style.Render(strings.Join(sections, "\n\n"))
}

func renderDashboard(d *workbench.DashboardPanel) string {
	var b strings.Builder
	b.WriteString(Styles.Section.Render(d.Greeting) + "\n")
	b.WriteString(Styles.Muted.Render(d.Tagline) + "\n\n")
	for _, qa := range d.QuickActions {
		b.WriteString(fmt.Sprintf("  %d  %s\n", viewIndex(qa.View)+1, qa.Label))
	}
	b.WriteString("\n" + renderOverview(d.Overview) + "\n\n")
	b.WriteString(renderRecent(d.Recent))
	return b.String()
}

func renderOverview(o domain.ActivityOverview) string {
	return fmt.Sprintf("%s  lessons %d  exercises %d  challenges %d  runs %d",
		Styles.Active.Render(fmt.Sprintf("%d pts", o.TotalPoints)),
		o.Lessons, o.Exercises, o.Challenges, o.Runs)
}

func renderRecent(recent []domain.Activity) string {
	var b strings.Builder
	b.WriteString(Styles.Section.Render("Recent Activity") + "\n")
	if len(recent) == 0 {
		b.WriteString(Styles.Muted.Render("No activity yet"))
		return b.String()
	}
	now := time.Now()
	for _, a := range recent {
		line := fmt.Sprintf("  %-40s %s", a.Title, Styles.Muted.Render(profile.Since(now, a.CreatedAt)))
		if a.Points > 0 {
			line += Styles.Badge.Render(fmt.Sprintf(" +%d", a.Points))
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTutorial(t *workbench.TutorialPanel) string {
	var b strings.Builder
	b.WriteString(Styles.Section.Render(t.Title) + "  ")
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("%s (%.0f%%)", t.Label, t.Progress)) + "\n\n")
	b.WriteString(Styles.Active.Render(t.Step.Title) + "\n")
	b.WriteString(t.Step.Content + "\n")
	if t.Step.HasCode() {
		b.WriteString(Styles.Code.Render(highlight.RenderANSI(t.Step.Code)) + "\n")
	}
	if t.ShowHint && t.Step.HasHint() {
		b.WriteString(Styles.Badge.Render("Hint: "+t.Step.Hint) + "\n")
	}

	var controls []string
	if t.HasPrevious {
		controls = append(controls, "p previous")
	}
	if t.HasNext {
		controls = append(controls, "n next")
	}
	if t.Step.HasHint() {
		controls = append(controls, "h hint")
	}
	if t.Step.HasCode() {
		controls = append(controls, "i insert example")
	}
	b.WriteString(Styles.Help.Render(strings.Join(controls, "  ")))
	return b.String()
}

func (m *Model) renderExercises(p *workbench.ExercisePanel) string {
	var b strings.Builder
	b.WriteString(Styles.Muted.Render(fmt.Sprintf("difficulty: %s  topic: %s", orAll(string(p.Filter.Difficulty)), orAll(p.Filter.Topic))) + "\n")
	if len(p.Exercises) == 0 {
		b.WriteString(Styles.Muted.Render("No exercises match the filter"))
		return b.String()
	}

	for i, ex := range p.Exercises {
		prefix := "  "
		if i == m.pick {
			prefix = Styles.Cursor.Render("> ")
		}
		title := ex.Title
		if ex.ID == p.SelectedID {
			title = Styles.Selected.Render(title + " *")
		}
		b.WriteString(fmt.Sprintf("%s%-24s %-12s %-10s %3d pts  %s\n",
			prefix, title, ex.Difficulty, ex.Topic, ex.Points, Styles.Muted.Render(ex.EstimatedTime)))
	}

	if ex := m.picked(); ex != nil {
		b.WriteString("\n" + ex.Description + "\n")
		b.WriteString(Styles.Muted.Render(ex.TestCaseLabel()))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderEditor(e *workbench.EditorPanel) string {
	var b strings.Builder
	header := Styles.Section.Render(e.Language) + "  " + e.Summary
	if e.Running || m.running {
		header += "  " + Styles.Badge.Render("Running...")
	}
	b.WriteString(header + "\n")

	if m.focus == focusEditor {
		b.WriteString(m.editor.View())
	} else {
		b.WriteString(Styles.Code.Render(renderBuffer(e)))
	}

	for _, d := range e.Diagnostics {
		b.WriteString("\n" + severityStyle(d.Severity).Render(d.String()))
	}
	return b.String()
}

// renderBuffer draws the buffer with line numbers and a gutter mark on
// annotated lines
func renderBuffer(e *workbench.EditorPanel) string {
	marks := make(map[int]domain.Severity, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		if _, ok := marks[d.Line]; !ok || d.Severity == domain.SeverityError {
			marks[d.Line] = d.Severity
		}
	}

	lines := strings.Split(e.Code, "\n")
	var b strings.Builder
	for i, line := range lines {
		n := i + 1
		gutter := " "
		if sev, ok := marks[n]; ok {
			gutter = severityStyle(sev).Render("●")
		}
		b.WriteString(fmt.Sprintf("%s%s %s", gutter, Styles.Muted.Render(fmt.Sprintf("%3d", n)), highlight.RenderANSI(line)))
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderSettings(p *workbench.SettingsPanel) string {
	var b strings.Builder
	for _, s := range p.Entries {
		b.WriteString(fmt.Sprintf("%-24s %s\n", Styles.Muted.Render(s.Key), s.Value))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderFooter() string {
	var help string
	if m.focus == focusEditor {
		help = "esc leave editor  ctrl+r run  ctrl+c quit"
	} else {
		help = "j/k move  enter open  1-7 jump  e edit  b sidebar  [/] pick  s select  r random  ctrl+r run  q quit"
	}

	line := Styles.Help.Render(help)
	if m.err != nil {
		line += "\n" + Styles.Error.Render("Error: "+m.err.Error())
	} else if m.status != "" {
		line += "\n" + Styles.Muted.Render(m.status)
	}
	return line
}

func severityStyle(s domain.Severity) lipgloss.Style {
	if s == domain.SeverityError {
		return Styles.Error
	}
	return Styles.Warning
}

func orAll(v string) string {
	if v == "" {
		return domain.FilterAll
	}
	return v
}
