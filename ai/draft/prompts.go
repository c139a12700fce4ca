package draft

// Elaboration prompts. These are opaque configuration: the builder only
// depends on the JSON shape they request, never on their wording.

const taskAnalysisPrompt = `You are a task analysis AI. Analyze this task request and respond with a single JSON object, no other text.

User Request: %s

Respond in this exact format:
{
    "title": "💧 Daily Water Intake",
    "time": "10:00",
    "notes": [
        "🎯 Drink 8 glasses of water daily",
        "⏰ Space out water intake throughout the day",
        "💡 Keep a water bottle nearby"
    ],
    "repeat": {"frequency": "daily", "count": 7}
}

Rules:
1. Keep the title short, action-oriented, with one relevant emoji
2. Include exactly 3 helpful notes with emojis
3. "time" is 24-hour HH:MM; omit it if the request names no time
4. Omit "repeat" unless the request asks for recurrence
5. Do NOT include a date field; dates are resolved separately
6. Output valid JSON only`

const eventAnalysisPrompt = `You are an event scheduling AI. Analyze this event request and respond with a single JSON object, no other text.

User Request: %s

Respond in this exact format:
{
    "summary": "🤝 Team Sync",
    "description": "Brief overview of the meeting purpose.\n\nAgenda:\n- Project updates\n- Blockers\n- Next steps",
    "location": "Google Meet",
    "start_time": "10:00",
    "end_time": "11:00",
    "attendees": ["user1@example.com"],
    "recurrence": {"frequency": "weekly", "count": 4}
}

Rules:
1. Keep the description short and focused on the meeting's core purpose
2. Use an emoji in the summary that matches the meeting type
3. Include every email address mentioned in the request
4. Times are 24-hour HH:MM; omit them if the request names none
5. Omit "recurrence" unless the request asks for it
6. Do NOT include a date field; dates are resolved separately
7. Output valid JSON only`

const descriptionFallbackTemplate = `**%s**

_Brief sync to discuss key points and updates._

**Key Points**
- Updates and progress
- Discussion items
- Next steps`
