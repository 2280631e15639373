package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litdebate/backend/internal/storage/models"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.NoError(t, client.InitSchema())
	return client
}

func testRun(id string, createdAt time.Time) *models.AnalysisRun {
	return &models.AnalysisRun{
		ID:              id,
		JobID:           "job-" + id,
		BookTitle:       "Holes",
		BookAuthor:      "Louis Sachar",
		ARLevel:         4.6,
		EducationLevel:  "regular",
		OverallScore:    6.8,
		TopicsGenerated: 4,
		BestAreas:       []string{"Human & Society", "Literature & Identity"},
		CSVPath:         "/output/analysis.csv",
		EnrichedCSVPath: "/output/analysis_enriched.csv",
		CreatedAt:       createdAt,
	}
}

func TestInsertAndListRuns(t *testing.T) {
	client := newTestClient(t)

	require.NoError(t, client.InsertRun(testRun("r1", time.Now())))

	runs, err := client.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	run := runs[0]
	assert.Equal(t, "r1", run.ID)
	assert.Equal(t, "job-r1", run.JobID)
	assert.Equal(t, 4.6, run.ARLevel)
	assert.Equal(t, "regular", run.EducationLevel)
	assert.Equal(t, 6.8, run.OverallScore)
	assert.Equal(t, 4, run.TopicsGenerated)
	assert.Equal(t, []string{"Human & Society", "Literature & Identity"}, run.BestAreas)
}

func TestListRunsNewestFirst(t *testing.T) {
	client := newTestClient(t)

	now := time.Now()
	require.NoError(t, client.InsertRun(testRun("old", now.Add(-2*time.Hour))))
	require.NoError(t, client.InsertRun(testRun("new", now)))
	require.NoError(t, client.InsertRun(testRun("mid", now.Add(-time.Hour))))

	runs, err := client.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "new", runs[0].ID)
	assert.Equal(t, "mid", runs[1].ID)
	assert.Equal(t, "old", runs[2].ID)
}

func TestListRunsLimit(t *testing.T) {
	client := newTestClient(t)

	now := time.Now()
	for i := 0; i < 5; i++ {
		run := testRun("r", now.Add(time.Duration(i)*time.Minute))
		run.ID = run.ID + string(rune('a'+i))
		require.NoError(t, client.InsertRun(run))
	}

	runs, err := client.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestListRunsEmptyBestAreas(t *testing.T) {
	client := newTestClient(t)

	run := testRun("r1", time.Now())
	run.BestAreas = nil
	require.NoError(t, client.InsertRun(run))

	runs, err := client.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Nil(t, runs[0].BestAreas)
}
