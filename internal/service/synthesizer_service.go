package service

import (
	"fmt"

	"github.com/ltmanh/vocaprep/internal/model"
)

// DefaultChoiceCount is the number of options on a multiple-choice question:
// one correct definition plus three distractors.
const DefaultChoiceCount = 4

// DefaultTypeCycle is the round-robin question-type order applied to a
// sheet's words in order.
var DefaultTypeCycle = []string{
	model.QuestionTypeMultipleChoice,
	model.QuestionTypeFillInBlank,
	model.QuestionTypeSpelling,
}

// SynthesizerService turns a sheet's ordered words into an ordered question
// list. It is a pure function over its inputs (plus the injected random
// source); persisting the result is the caller's concern.
type SynthesizerService interface {
	Synthesize(words []model.Word, typeCycle []string, choiceCount int) ([]model.Question, error)
}

type synthesizerService struct {
	randomizer *Randomizer
}

func NewSynthesizerService(randomizer *Randomizer) SynthesizerService {
	return &synthesizerService{randomizer: randomizer}
}

// Synthesize builds one question per word. The word at position i gets type
// typeCycle[i mod len(typeCycle)]. Multiple-choice distractors are drawn from
// the definitions of the OTHER words, without replacement. Fails fast on an
// empty or too-small corpus so no partial test is ever persisted.
func (s *synthesizerService) Synthesize(words []model.Word, typeCycle []string, choiceCount int) ([]model.Question, error) {
	if len(words) == 0 {
		return nil, ErrEmptyCorpus
	}
	if len(typeCycle) == 0 {
		typeCycle = DefaultTypeCycle
	}
	if choiceCount <= 0 {
		choiceCount = DefaultChoiceCount
	}

	questions := make([]model.Question, 0, len(words))
	for i, word := range words {
		questionType := typeCycle[i%len(typeCycle)]

		question := model.Question{
			WordID:      word.ID,
			Type:        questionType,
			OrderInTest: i + 1,
		}

		switch questionType {
		case model.QuestionTypeSpelling:
			question.Prompt = "Spell the word that means: " + word.Definition
			question.CorrectAnswer = word.Word
		case model.QuestionTypeMultipleChoice:
			question.Prompt = fmt.Sprintf("What is the definition of %q?", word.Word)
			question.CorrectAnswer = word.Definition
			options, err := s.buildOptions(words, i, choiceCount)
			if err != nil {
				return nil, err
			}
			question.Options = options
		default: // fill_in_blank
			question.Prompt = fmt.Sprintf("What is the definition of %q?", word.Word)
			question.CorrectAnswer = word.Definition
		}

		questions = append(questions, question)
	}
	return questions, nil
}

// buildOptions picks choiceCount-1 distractor definitions from the other
// words, adds the correct definition, and shuffles. The distractor pool holds
// distinct definitions only, so a corpus with repeated words or shared
// definitions either fills the option set without duplicates or fails. The
// shuffle re-verifies that the correct answer survived into the option set.
func (s *synthesizerService) buildOptions(words []model.Word, wordIdx, choiceCount int) ([]string, error) {
	correct := words[wordIdx].Definition

	seen := map[string]bool{correct: true}
	pool := make([]string, 0, len(words))
	for _, word := range words {
		if seen[word.Definition] {
			continue
		}
		seen[word.Definition] = true
		pool = append(pool, word.Definition)
	}
	if len(pool) < choiceCount-1 {
		return nil, fmt.Errorf("%w: have %d distinct definitions, need at least %d",
			ErrInsufficientCorpus, len(pool)+1, choiceCount)
	}

	options := []string{correct}
	for _, j := range s.randomizer.Perm(len(pool)) {
		if len(options) == choiceCount {
			break
		}
		options = append(options, pool[j])
	}

	return s.randomizer.ShuffleOptions(correct, options)
}
