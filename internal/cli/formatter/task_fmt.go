package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/taskrange/internal/domain"
	"github.com/alexanderramin/taskrange/internal/service"
)

func taskRow(t *domain.Task, loc *time.Location, now time.Time) []string {
	duration := Dim("—")
	if t.Profile.Duration != nil {
		duration = t.Profile.Duration.String()
	}
	summary := t.Summary
	if summary == "" {
		summary = Dim("(no summary)")
	}
	return []string{
		Dim(t.DisplayID()),
		Bold(summary),
		string(t.Status),
		Instant(t.Profile.Start, loc),
		duration,
		dueCell(t.Profile.Due, loc, now),
		Instant(t.Profile.Completed, loc),
	}
}

// dueCell appends a relative hint such as "(In 3d)" when now is set.
func dueCell(due *time.Time, loc *time.Location, now time.Time) string {
	cell := Instant(due, loc)
	if due == nil || now.IsZero() {
		return cell
	}
	return cell + " " + Dim("("+RelativeDateFrom(*due, now)+")")
}

var taskHeaders = []string{"ID", "SUMMARY", "STATUS", "DTSTART", "DURATION", "DUE", "COMPLETED"}

// FormatTaskList renders tasks matched by a range query. Due dates get a
// hint relative to now.
func FormatTaskList(tasks []*domain.Task, r domain.QueryRange, loc *time.Location, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Tasks"))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s → %s", Instant(&r.Start, loc), Instant(&r.End, loc))))
	b.WriteString("\n\n")

	if len(tasks) == 0 {
		b.WriteString("No tasks in range.\n")
		return b.String()
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, taskRow(t, loc, now))
	}
	b.WriteString(RenderTable(taskHeaders, rows))
	b.WriteString(Dim(fmt.Sprintf("%d task(s)", len(tasks))))
	b.WriteString("\n")
	return b.String()
}

// FormatCheckResults renders the classification of every task in a file.
func FormatCheckResults(results []service.CheckResult, loc *time.Location) string {
	if len(results) == 0 {
		return "No VTODO components found.\n"
	}

	headers := append([]string{"RANGE", "UID"}, taskHeaders[1:]...)
	rows := make([][]string, 0, len(results))
	in := 0
	for _, res := range results {
		if res.InRange {
			in++
		}
		row := taskRow(res.Task, loc, time.Time{})
		rows = append(rows, append([]string{RangeIndicator(res.InRange), res.Task.UID}, row[1:]...))
	}
	return RenderTable(headers, rows) + Dim(fmt.Sprintf("%d of %d in range", in, len(results))) + "\n"
}

// FormatRules renders the rule table in declaration order.
func FormatRules(rules domain.RuleTable) string {
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{
			r.Property,
			SpecStyle(r.Spec).Render(r.Spec.String()),
			Dim(r.Spec.Describe()),
		})
	}
	return RenderTable([]string{"PROPERTY", "SPEC", "MEANING"}, rows)
}

// FormatFileReports renders validation findings per file. Files without
// findings get a single OK line.
func FormatFileReports(reports []service.FileReport) string {
	var b strings.Builder
	for _, fr := range reports {
		lines := findingLines(fr)
		if len(lines) == 0 {
			fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("✓"), fr.Path)
			continue
		}
		mark := StyleYellow.Render("!")
		if !fr.OK() {
			mark = StyleRed.Render("✗")
		}
		fmt.Fprintf(&b, "%s %s\n", mark, fr.Path)
		for _, l := range lines {
			b.WriteString("    " + l + "\n")
		}
	}
	return b.String()
}

func findingLines(fr service.FileReport) []string {
	var lines []string
	for _, r := range fr.Reports {
		label := fmt.Sprintf("todo[%d]", r.Index)
		if r.UID != "" {
			label += " " + r.UID
		}
		for _, v := range r.Violations {
			lines = append(lines, fmt.Sprintf("%s  %s  %s", StyleRed.Render("error"), Dim(label), v.Error()))
		}
		for _, issue := range r.Issues {
			lines = append(lines, fmt.Sprintf("%s  %s  %s", StyleYellow.Render("warn "), Dim(label), issue.Message))
		}
	}
	return lines
}

// FormatImportResult summarizes an import run.
func FormatImportResult(result *service.ImportResult) string {
	var b strings.Builder
	for _, f := range result.Files {
		fmt.Fprintf(&b, "%s %s  %d imported", StyleGreen.Render("✓"), f.Path, f.Imported)
		if f.Replaced > 0 {
			b.WriteString(Dim(fmt.Sprintf(" (%d replaced)", f.Replaced)))
		}
		b.WriteString("\n")
	}
	for _, w := range result.Warnings() {
		fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("warn"), w)
	}
	fmt.Fprintf(&b, "%s\n", Bold(fmt.Sprintf("%d task(s) from %d file(s)", result.TaskCount, len(result.Files))))
	return b.String()
}
