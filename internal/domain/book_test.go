package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookInfoValidate(t *testing.T) {
	tests := []struct {
		name    string
		book    BookInfo
		wantErr string
	}{
		{
			name: "valid",
			book: BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 4.6},
		},
		{
			name:    "missing title",
			book:    BookInfo{Author: "Louis Sachar", ARLevel: 4.6},
			wantErr: "title",
		},
		{
			name:    "missing author",
			book:    BookInfo{Title: "Holes", ARLevel: 4.6},
			wantErr: "author",
		},
		{
			name:    "ar level below range",
			book:    BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 0.9},
			wantErr: "ar_level",
		},
		{
			name:    "ar level above range",
			book:    BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 10.1},
			wantErr: "ar_level",
		},
		{
			name: "ar level at bounds",
			book: BookInfo{Title: "Holes", Author: "Louis Sachar", ARLevel: 10.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.book.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantErr, verr.Field)
		})
	}
}

func TestEducationLevelBands(t *testing.T) {
	tests := []struct {
		arLevel float64
		want    EducationLevel
	}{
		{1.0, LevelPreparation},
		{4.4, LevelPreparation},
		{4.5, LevelPreparation},
		{4.6, LevelRegular},
		{5.2, LevelRegular},
		{5.3, LevelMastery},
		{10.0, LevelMastery},
	}

	for _, tt := range tests {
		book := BookInfo{Title: "t", Author: "a", ARLevel: tt.arLevel}
		assert.Equal(t, tt.want, book.EducationLevel(), "ar_level %.1f", tt.arLevel)
	}
}

func TestAreaSlug(t *testing.T) {
	assert.Equal(t, "science_&_technology", AreaScienceTechnology.Slug())
	assert.Equal(t, "mathematical_thinking", AreaMathThinking.Slug())
	assert.Equal(t, "economics_&_global_citizenship", AreaEconomicsGlobal.Slug())
}

func TestAllAreasOrder(t *testing.T) {
	areas := AllAreas()
	require.Len(t, areas, 6)
	assert.Equal(t, AreaScienceTechnology, areas[0])
	assert.Equal(t, AreaEconomicsGlobal, areas[5])
}

func TestParseDebateFormat(t *testing.T) {
	format, err := ParseDebateFormat("moral_judgment")
	require.NoError(t, err)
	assert.Equal(t, FormatMoralJudgment, format)

	_, err = ParseDebateFormat("open_discussion")
	assert.Error(t, err)

	_, err = ParseDebateFormat("")
	assert.Error(t, err)
}

func TestParseBloomLevel(t *testing.T) {
	level, err := ParseBloomLevel("analyze")
	require.NoError(t, err)
	assert.Equal(t, BloomAnalyze, level)

	_, err = ParseBloomLevel("memorize")
	assert.Error(t, err)
}
