package service

import (
	"testing"

	"github.com/ltmanh/vocaprep/internal/model"
	"github.com/ltmanh/vocaprep/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAllTestsSummaries(t *testing.T) {
	db := newTestDB(t)
	seedGeneratedTest(t, db, 10)
	svc := NewTestCatalogService(repository.NewTestRepository(db))

	summaries, err := svc.GetAllTests()
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Unit 1 Vocabulary - Variant 1", summaries[0].Title)
	assert.Equal(t, 1, summaries[0].Variant)
	assert.Equal(t, 10, summaries[0].QuestionCount)
}

func TestGetAllTestsEmptyCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewTestCatalogService(repository.NewTestRepository(db))

	summaries, err := svc.GetAllTests()
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestGetTestDetailsOrderedQuestions(t *testing.T) {
	db := newTestDB(t)
	test := seedGeneratedTest(t, db, 10)
	svc := NewTestCatalogService(repository.NewTestRepository(db))

	details, err := svc.GetTestDetails(test.ID)
	require.NoError(t, err)
	require.Len(t, details.Questions, 10)
	for i, question := range details.Questions {
		assert.Equal(t, i+1, question.OrderInTest)
		if question.Type == model.QuestionTypeMultipleChoice {
			assert.Len(t, question.Options, DefaultChoiceCount)
		} else {
			assert.Empty(t, question.Options)
		}
	}
}

func TestGetTestDetailsUnknownTest(t *testing.T) {
	db := newTestDB(t)
	svc := NewTestCatalogService(repository.NewTestRepository(db))

	_, err := svc.GetTestDetails(999)
	assert.Error(t, err)
}
