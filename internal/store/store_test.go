package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/chorus/internal/config"
	"github.com/standardbeagle/chorus/internal/convention"
	"github.com/standardbeagle/chorus/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(config.Store{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenCreatesSchema(t *testing.T) {
	s := openTestStore(t)
	var count int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM schema_version`).Scan(&count))
	assert.Equal(t, len(migrations), count)
}

func TestUpsertFileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	rec := FileRecord{FileID: 1, Path: "main.go", Language: "go", FastHash: 42}
	require.NoError(t, s.UpsertFile(rec))

	got, err := s.FileByPath("main.go")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "go", got.Language)
	assert.EqualValues(t, 42, got.FastHash)
}

func TestReplaceDetectionsDeletesStaleRows(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpsertFile(FileRecord{FileID: 1, Path: "a.go"}))

	first := []model.Detection{{ID: "d1", Category: model.CategorySecurity, PatternID: "p1", Location: model.Location{StartLine: 1, EndLine: 1}}}
	require.NoError(t, s.ReplaceDetections(1, 1, first))

	findings, _, err := s.QueryFindings(Filter{})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "d1", findings[0].ID)

	second := []model.Detection{{ID: "d2", Category: model.CategorySecurity, PatternID: "p2", Location: model.Location{StartLine: 2, EndLine: 2}}}
	require.NoError(t, s.ReplaceDetections(1, 2, second))

	findings, _, err = s.QueryFindings(Filter{})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "d2", findings[0].ID)
}

func TestPosteriorCumulativeUpdate(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.UpdatePosterior("naming.case", "", 7, 10, 1))

	p, err := s.Posterior("naming.case", "")
	require.NoError(t, err)
	assert.Equal(t, 1.0+7, p.Alpha)
	assert.Equal(t, 1.0+3, p.Beta)

	require.NoError(t, s.UpdatePosterior("naming.case", "", 2, 5, 2))
	p, err = s.Posterior("naming.case", "")
	require.NoError(t, err)
	assert.Equal(t, 1.0+7+2, p.Alpha)
	assert.Equal(t, 1.0+3+3, p.Beta)
}

func TestSaveConventionUpsertsByNaturalKey(t *testing.T) {
	s := openTestStore(t)
	lc := convention.LearnedConvention{
		Key: convention.Key{DetectorID: "naming", ConvKey: "func_case", Value: "camelCase"},
		Alpha: 9, Beta: 1, Category: convention.CategoryUniversal,
	}
	require.NoError(t, s.SaveConvention(lc, 1, "established"))

	out, _, err := s.QueryConventions(Filter{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "camelCase", out[0].Value)

	lc.Occurrences = 50
	require.NoError(t, s.SaveConvention(lc, 2, "established"))
	out, _, err = s.QueryConventions(Filter{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 50, out[0].Occurrences)
}

func TestDetectorAutoDisableAfterThreshold(t *testing.T) {
	s := openTestStore(t)
	for i := 0; i < 2; i++ {
		disabled, err := s.RecordDetectorPanic("crypto.weak_hash", 3, 1, "boom")
		require.NoError(t, err)
		assert.False(t, disabled)
	}
	disabled, err := s.RecordDetectorPanic("crypto.weak_hash", 3, 1, "boom")
	require.NoError(t, err)
	assert.True(t, disabled)

	isDisabled, err := s.IsDetectorDisabled("crypto.weak_hash")
	require.NoError(t, err)
	assert.True(t, isDisabled)
}

func TestViolationActionAuditTrail(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.RecordViolationAction("v1", "fixed", "before", "after", "cleanup"))
	require.NoError(t, s.RecordViolationAction("v1", "dismissed", "after", "after", "false positive"))

	trail, err := s.ViolationActions("v1")
	require.NoError(t, err)
	require.Len(t, trail, 2)
	assert.Equal(t, "fixed", trail[0].Action)
	assert.Equal(t, "dismissed", trail[1].Action)
}
