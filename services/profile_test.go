package services

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terraguide_api/utils"
)

func TestGetUserProfile(t *testing.T) {
	store := &fakeStore{record: surveyRecordFixture()}
	svc := NewProfileService(store)

	profile, err := svc.GetUserProfile("user-1", "Alice")
	require.NoError(t, err)

	assert.Equal(t, "user-1", profile.UserID)
	assert.Equal(t, "Alice", profile.UserName)
	assert.Equal(t, "GUIDE_1316", profile.GuideID)
	assert.Equal(t, "Master Park Guide Certification Program", profile.RecommendedCourse)
	assert.Equal(t, 3.4, profile.OverallAverage)

	require.Len(t, profile.SkillScores, 5)
	assert.Equal(t, 4.2, profile.SkillScores["Basic Skills"])
}

func TestGetUserProfileNoRecommendedCourse(t *testing.T) {
	rec := surveyRecordFixture()
	rec.RecommendedCourse = ""

	store := &fakeStore{record: rec}
	svc := NewProfileService(store)

	profile, err := svc.GetUserProfile("user-1", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "No recommendation available", profile.RecommendedCourse)
}

func TestGetUserProfileNotFoundSurfaced(t *testing.T) {
	store := &fakeStore{} // 没有问卷数据
	svc := NewProfileService(store)

	_, err := svc.GetUserProfile("user-1", "Alice")
	require.Error(t, err)

	// 画像读取的未找到必须原样上抛，不做静默兜底
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.True(t, utils.IsSQLNoRowsError(err))
}

func TestGetUserProfileStoreErrorSurfaced(t *testing.T) {
	store := &fakeStore{surveyErr: errors.New("connection refused")}
	svc := NewProfileService(store)

	_, err := svc.GetUserProfile("user-1", "Alice")
	require.Error(t, err)
	assert.False(t, utils.IsSQLNoRowsError(err))
}
