package service

import (
	"fmt"
	"testing"

	"github.com/ltmanh/vocaprep/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory sqlite database with the full schema.
// A single connection keeps every query on the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Sheet{},
		&model.Word{},
		&model.Test{},
		&model.Question{},
		&model.Assignment{},
		&model.Attempt{},
		&model.Answer{},
	))
	return db
}

// makeWords builds an ordered corpus of n distinct word/definition pairs.
func makeWords(n int) []model.Word {
	words := make([]model.Word, 0, n)
	for i := 0; i < n; i++ {
		words = append(words, model.Word{
			ID:           uint(i + 1),
			Word:         fmt.Sprintf("word%d", i+1),
			Definition:   fmt.Sprintf("definition of word %d", i+1),
			OrderInSheet: i + 1,
		})
	}
	return words
}

// seedGeneratedTest persists a sheet with wordCount words and one synthesized
// test variant over it, returning the test with its questions loaded in order.
func seedGeneratedTest(t *testing.T, db *gorm.DB, wordCount int) *model.Test {
	t.Helper()

	sheet := model.Sheet{Title: "Unit 1 Vocabulary"}
	for i := 0; i < wordCount; i++ {
		sheet.Words = append(sheet.Words, model.Word{
			Word:         fmt.Sprintf("word%d", i+1),
			Definition:   fmt.Sprintf("definition of word %d", i+1),
			OrderInSheet: i + 1,
		})
	}
	require.NoError(t, db.Create(&sheet).Error)

	synth := NewSynthesizerService(NewSeededRandomizer(7, 11))
	questions, err := synth.Synthesize(sheet.Words, DefaultTypeCycle, DefaultChoiceCount)
	require.NoError(t, err)

	test := model.Test{
		Title:     sheet.Title + " - Variant 1",
		SheetID:   sheet.ID,
		Variant:   1,
		Questions: questions,
	}
	require.NoError(t, db.Create(&test).Error)

	var loaded model.Test
	require.NoError(t, db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_test ASC")
	}).First(&loaded, test.ID).Error)
	return &loaded
}
