package session

import (
	"fmt"
	"strings"

	"github.com/prem-acharya/ai-agent-backend/ai/draft"
	"github.com/prem-acharya/ai-agent-backend/ai/tools"
)

// Markdown narration of drafts and tool outcomes, relayed as the tool
// phase's content.

func renderTaskCreation(d *draft.TaskDraft, result tools.Result) string {
	if !result.Success {
		return fmt.Sprintf("❌ I couldn't create the task %q. %s", d.Title, result.Message)
	}

	var b strings.Builder
	b.WriteString("✅ Task created!\n\n")
	fmt.Fprintf(&b, "**📝 %s**\n", d.Title)
	fmt.Fprintf(&b, "- 📅 **Due**: %s\n", d.Due.Format("Monday, 02 Jan 2006"))
	if d.Time != nil {
		fmt.Fprintf(&b, "- ⏰ **Time**: %s\n", d.Time)
	}
	if d.Repeat != nil {
		fmt.Fprintf(&b, "- 🔄 **Repeats**: %s\n", describeRecurrence(d.Repeat))
	}
	if d.Notes != "" {
		fmt.Fprintf(&b, "\n📋 **Notes**\n%s\n", d.Notes)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderEventCreation(d *draft.EventDraft, result tools.Result) string {
	if !result.Success {
		return fmt.Sprintf("❌ I couldn't create the event %q. %s", d.Summary, result.Message)
	}

	var b strings.Builder
	b.WriteString("✅ Event created!\n\n")
	fmt.Fprintf(&b, "**%s**\n", d.Summary)
	fmt.Fprintf(&b, "- ⏰ **When**: %s from %s to %s", d.Due.Format("Monday, 02 Jan 2006"), &d.StartTime, &d.EndTime)
	if d.EndNextDay {
		b.WriteString(" (next day)")
	}
	b.WriteString("\n")
	if d.Virtual {
		b.WriteString("- 📍 **Where**: Virtual Meeting (Google Meet)\n")
	} else if d.Location != "" {
		fmt.Fprintf(&b, "- 📍 **Where**: %s\n", d.Location)
	}
	if len(d.Attendees) > 0 {
		fmt.Fprintf(&b, "- 👥 **Attendees**: %s\n", strings.Join(d.Attendees, ", "))
	}
	if d.Recurrence != nil {
		fmt.Fprintf(&b, "- 🔄 **Repeats**: %s\n", describeRecurrence(d.Recurrence))
	}
	if result.MeetLink != "" {
		fmt.Fprintf(&b, "- 🎥 **Meet**: %s\n", result.MeetLink)
	}
	if result.Link != "" {
		fmt.Fprintf(&b, "- 🔗 **Calendar**: %s\n", result.Link)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskList(result tools.Result, window tools.Window) string {
	if !result.Success {
		return "❌ I couldn't fetch your tasks right now. " + result.Message
	}
	if len(result.Tasks) == 0 {
		return fmt.Sprintf("📋 No tasks found %s.", windowLabel(window))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 **Your tasks %s**\n\n", windowLabel(window))
	for i, task := range result.Tasks {
		check := "⬜"
		if task.Status == "completed" {
			check = "✅"
		}
		fmt.Fprintf(&b, "%d. %s %s", i+1, check, task.Title)
		if len(task.Due) >= 10 {
			fmt.Fprintf(&b, " — due %s", task.Due[:10])
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderEventList(result tools.Result, window tools.Window) string {
	if !result.Success {
		return "❌ I couldn't fetch your events right now. " + result.Message
	}
	if len(result.Events) == 0 {
		return fmt.Sprintf("📅 No events found %s.", windowLabel(window))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 **Your events %s**\n\n", windowLabel(window))
	for i, event := range result.Events {
		fmt.Fprintf(&b, "%d. **%s**", i+1, event.Summary)
		if event.AllDay {
			fmt.Fprintf(&b, " — all day %s", event.Start)
		} else {
			fmt.Fprintf(&b, " — %s to %s", event.Start, event.End)
		}
		b.WriteString("\n")
		if event.Location != "" {
			fmt.Fprintf(&b, "   📍 %s\n", event.Location)
		}
		if len(event.Attendees) > 0 {
			fmt.Fprintf(&b, "   👥 %s\n", strings.Join(event.Attendees, ", "))
		}
		if event.MeetLink != "" {
			fmt.Fprintf(&b, "   🎥 %s\n", event.MeetLink)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func windowLabel(w tools.Window) string {
	switch w {
	case tools.WindowToday:
		return "for today"
	case tools.WindowTomorrow:
		return "for tomorrow"
	case tools.WindowUpcoming:
		return "coming up"
	default:
		return "on your list"
	}
}

func describeRecurrence(r *draft.Repeat) string {
	s := strings.ToLower(r.Frequency)
	if r.Interval > 1 {
		s = fmt.Sprintf("every %d %ss", r.Interval, strings.TrimSuffix(s, "ly"))
	}
	if len(r.ByDay) > 0 {
		s += " on " + strings.Join(r.ByDay, ", ")
	}
	switch {
	case r.Count > 0:
		s += fmt.Sprintf(", %d times", r.Count)
	case r.Until != "":
		s += ", until " + r.Until
	}
	return s
}
