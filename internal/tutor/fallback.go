package tutor

import (
	"errors"

	"github.com/abhisek/kotoba/internal/llm"
)

// FailureMessage turns a client error into text suitable for the learner.
func FailureMessage(err error) string {
	switch llm.KindOf(err) {
	case "":
		return ""
	case llm.KindMissingCredential:
		return `No API key is configured. Run "kotoba key set" or set KOTOBA_GEMINI_API_KEY.`
	case llm.KindInvalidInput:
		if errors.Is(err, ErrEmptyText) {
			return "There is no text to analyze."
		}
		return "The request was not valid: " + llm.MessageOf(err)
	case llm.KindTransport:
		return "Could not reach the generation API. Check your connection and try again."
	case llm.KindAPI:
		return "The generation API returned an error: " + llm.MessageOf(err)
	case llm.KindMalformedPayload:
		return "The generation API sent a reply that could not be read. Try again."
	}
	return "Something went wrong: " + err.Error()
}

// PlaceholderExercises builds the single info card shown in place of
// exercises when RequestExercises fails.
func PlaceholderExercises(err error) ExerciseSet {
	return ExerciseSet{
		Exercises: []Exercise{{
			Type:     ExerciseInfo,
			Question: "Exercises are unavailable",
			Message:  FailureMessage(err),
		}},
	}
}

// EmptyVocabulary builds the empty list shown in place of vocabulary when
// RequestVocabulary fails.
func EmptyVocabulary(err error) VocabularyList {
	return VocabularyList{
		Words:   []Word{},
		Message: FailureMessage(err),
	}
}
