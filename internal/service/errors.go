package service

import "errors"

// Validation errors are detected before anything is persisted; generation is
// all-or-nothing per test.
var (
	// ErrEmptyCorpus is returned when a sheet has no words to synthesize from.
	ErrEmptyCorpus = errors.New("vocabulary sheet has no words")

	// ErrInsufficientCorpus is returned when a sheet has fewer distinct words
	// than the multiple-choice option count, so a full option set cannot be
	// built without duplicates.
	ErrInsufficientCorpus = errors.New("not enough words in sheet for multiple choice options")

	// ErrAnswerNotInOptions indicates a synthesis bug: an option set that does
	// not contain its own correct answer. It must never reach a student.
	ErrAnswerNotInOptions = errors.New("correct answer is not present in options")
)

// State errors.
var (
	// ErrAttemptClosed is returned when a write hits an already submitted
	// attempt. Duplicate submits are idempotent instead.
	ErrAttemptClosed = errors.New("attempt has already been submitted")

	// ErrQuestionNotInTest is returned when an answer targets a question that
	// does not belong to the attempt's test.
	ErrQuestionNotInTest = errors.New("question does not belong to the attempted test")

	// ErrQuestionIndexOutOfRange is returned when a navigation position falls
	// outside [0, questionCount).
	ErrQuestionIndexOutOfRange = errors.New("question index out of range")
)
