package recommend

import (
	"fmt"
	"sort"
	"strings"

	"learnloop/internal/model"
)

// Prompt builders. All of them are pure functions of their inputs:
// identical inputs produce byte-identical prompt text, so generation is
// reproducible against a fake generator in tests. The answer set is
// rendered with sorted keys for that reason.

func renderAnswers(answers model.AnswerSet) string {
	keys := make([]string, 0, len(answers))
	for k := range answers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&sb, "- %s: %s\n", k, answers[k])
	}
	return sb.String()
}

// SurveyPrompt asks for the adaptive questionnaire for a topic.
func SurveyPrompt(topic string) string {
	return fmt.Sprintf(`Generate a dynamic survey for learning "%s".
Return the response as a clean JSON array of question objects.
Each question must have:
- id: string
- question: string
- type: "select" | "range" | "text"
- options: array of option strings (for select type)
- min/max/step: numbers (for range type)
- required: boolean
- dependsOn: id of the question it depends on (optional)

Include questions about:
1. Learning timeline in days (id "timeline")
2. Prior experience with %s (id "experienceLevel", options beginner/intermediate/advanced)
3. Specific areas of interest within %s (id "interests")
4. Learning style preferences (id "learningStyle", options visual/theoretical/practical)
5. Available time per day in minutes (id "timePerDay")
6. Practical vs theoretical preference (id "learningFocus")
7. Project or goal based questions specific to %s (id "goals")

Make questions and options specifically relevant to %s.
Consider typical learning paths and requirements for %s.
Return ONLY the JSON array, no prose.`, topic, topic, topic, topic, topic, topic)
}

// DependentOptionsPrompt asks for refreshed options of a question whose
// dependsOn answer changed.
func DependentOptionsPrompt(topic string, question model.Question, answers model.AnswerSet) string {
	return fmt.Sprintf(`Given these answers about learning %s:
%s
Update the options for this question:
%s

Consider the user's previous answers and make options relevant to %s.
Return ONLY a JSON array of option strings.`, topic, renderAnswers(answers), question.Question, topic)
}

// TimeOptionsPrompt asks for daily time-commitment options that fit the
// chosen timeline.
func TimeOptionsPrompt(topic string, timelineDays int) string {
	return fmt.Sprintf(`Given that the user wants to learn %s in %d days,
suggest appropriate daily time commitment options in minutes.
Consider:
- Typical time needed to learn %s
- Complexity of the subject
- The user's timeline constraint
Return ONLY a JSON array of option strings, each a number of minutes.`, topic, timelineDays, topic)
}

// ProfilePrompt asks for the learning-profile narrative that seeds the
// rest of the run.
func ProfilePrompt(topic string, answers model.AnswerSet, frames model.TimeFrames) string {
	return fmt.Sprintf(`Based on these survey answers for learning %s:
%s
Create a learning profile that includes:
1. Recommended learning path
2. Time distribution (%d videos per day)
3. Focus areas based on the user's interests
4. Learning style adaptations
5. Specific %s-related recommendations

Consider the user's timeline of %d days.`,
		topic, renderAnswers(answers), frames.VideosPerDay, topic, answers.TimelineDays())
}

// CriteriaPrompt asks for the evaluation criteria the scorer applies to
// every candidate in this run.
func CriteriaPrompt(topic string, answers model.AnswerSet) string {
	return fmt.Sprintf(`You are selecting learning videos about %s for a user with these preferences:
%s
Return ONLY valid JSON matching this schema:
{
  "required_terms": ["terms a relevant video title or description must mention"],
  "bonus_terms": ["terms that make a video more valuable for this user"],
  "red_flags": ["terms that indicate an unsuitable video"],
  "min_duration": minimum video length in minutes,
  "max_duration": maximum video length in minutes,
  "preferred_channels": ["channel name keywords known for quality %s content"]
}

Keep each list between 2 and 6 entries, lowercase.`, topic, renderAnswers(answers), topic)
}

// ExtraQueriesCount is the fixed number of AI-suggested queries
// requested per run.
const ExtraQueriesCount = 5

// ExtraQueriesPrompt asks for additional search queries beyond the
// template-derived ones.
func ExtraQueriesPrompt(topic string, answers model.AnswerSet) string {
	return fmt.Sprintf(`Suggest exactly %d YouTube search queries for learning %s,
tailored to these preferences:
%s
Return ONLY a JSON array of %d query strings.`,
		ExtraQueriesCount, topic, renderAnswers(answers), ExtraQueriesCount)
}

// FallbackQueriesPrompt asks for broader queries after the first round
// found nothing usable.
func FallbackQueriesPrompt(topic string, attempted []string) string {
	return fmt.Sprintf(`These YouTube searches for learning %s returned no usable results:
- %s

Suggest exactly %d broader or alternative search queries more likely to
find learning videos about %s.
Return ONLY a JSON array of %d query strings.`,
		topic, strings.Join(attempted, "\n- "), ExtraQueriesCount, topic, ExtraQueriesCount)
}

// RoadmapPrompt asks for the multi-day study plan narrating the
// assembled playlist.
func RoadmapPrompt(topic string, timelineDays, videosPerDay int, titles []string, profile string) string {
	return fmt.Sprintf(`Create a %d-day learning roadmap for %s.
Include:
- %d videos per day
- Daily learning objectives
- Practice suggestions
- Progress milestones

Videos to incorporate: %s
User profile: %s`,
		timelineDays, topic, videosPerDay, strings.Join(titles, ", "), profile)
}

// QuizPrompt asks for a knowledge check for a topic and stage.
func QuizPrompt(topic, stage string) string {
	if stage == "" {
		stage = "fundamentals"
	}
	return fmt.Sprintf(`Create a quiz testing %s knowledge of "%s" at the %q stage.
Return ONLY valid JSON:
{
  "questions": [
    {"id": "q1", "question": "...", "type": "multiple-choice",
     "options": ["a", "b", "c", "d"], "correctAnswer": "a", "explanation": "..."}
  ],
  "metadata": {"passingScore": 70, "recommendations": ["what to review on failure"]}
}

Create 5 questions mixing multiple-choice and true-false.`, stage, topic, stage)
}
