package tutor

import (
	"fmt"
	"strings"
	"text/template"
)

const systemPrompt = `You are an expert Japanese teacher helping a learner study real Japanese text.
Write questions, explanations and meanings in English. Quote Japanese words in Japanese script.`

var exercisesTemplate = template.Must(template.New("exercises").Parse(
	`Analyze this Japanese text and generate 3 exercises suited to a {{.Level}} learner.

Text: {{.Text}}

Reply with JSON in this format:
{
  "vocabulary": [
    {"word": "word", "reading": "reading", "meaning": "meaning", "level": "N5"}
  ],
  "exercises": [
    {
      "type": "multiple_choice",
      "question": "Question in English",
      "options": ["A", "B", "C", "D"],
      "correctAnswer": 0,
      "explanation": "Detailed explanation"
    }
  ],
  "grammar": [
    {"pattern": "grammar pattern", "explanation": "explanation"}
  ]
}

correctAnswer is the zero-based index of the correct option.
Reply ONLY with the JSON, with no text before or after it.`))

var vocabularyTemplate = template.Must(template.New("vocabulary").Parse(
	`Analyze this Japanese text and extract the vocabulary that matters for a {{.Level}} learner.

Text: {{.Text}}

Reply with JSON in this format:
{
  "words": [
    {
      "kanji": "漢字",
      "reading": "かんじ",
      "meaning": "Chinese character",
      "level": "N5",
      "partOfSpeech": "noun",
      "example": "example sentence"
    }
  ]
}

Reply ONLY with the JSON.`))

var feedbackTemplate = template.Must(template.New("feedback").Parse(
	`Evaluate this answer:

Question: {{.Question}}
Learner's answer: {{.UserAnswer}}
Correct answer: {{.CorrectAnswer}}

Give constructive feedback explaining why the answer is right or wrong, and advice for improving.

Reply concisely in English (3-4 sentences at most).`))

type textPromptData struct {
	Text  string
	Level Level
}

type feedbackPromptData struct {
	Question      string
	UserAnswer    string
	CorrectAnswer string
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", t.Name(), err)
	}
	return b.String(), nil
}

// buildExercisesPrompt renders the exercise prompt for text at level.
func buildExercisesPrompt(text string, level Level) (string, error) {
	return render(exercisesTemplate, textPromptData{Text: text, Level: level})
}

// buildVocabularyPrompt renders the vocabulary prompt for text at level.
func buildVocabularyPrompt(text string, level Level) (string, error) {
	return render(vocabularyTemplate, textPromptData{Text: text, Level: level})
}

// buildFeedbackPrompt renders the answer feedback prompt.
func buildFeedbackPrompt(question, userAnswer, correctAnswer string) (string, error) {
	return render(feedbackTemplate, feedbackPromptData{
		Question:      question,
		UserAnswer:    userAnswer,
		CorrectAnswer: correctAnswer,
	})
}
