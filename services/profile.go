package services

import (
	"terraguide_api/models"
)

// ProfileService 用户画像服务
type ProfileService struct {
	surveys SurveyStore
}

// NewProfileService 创建用户画像服务
func NewProfileService(surveys SurveyStore) *ProfileService {
	return &ProfileService{surveys: surveys}
}

// GetUserProfile 根据问卷数据构建用户画像
// 问卷未命中时原样返回sql.ErrNoRows，由上层映射为"没有问卷数据"而不是静默兜底
func (p *ProfileService) GetUserProfile(userID, userName string) (*models.UserProfile, error) {
	guideID := MapUserToGuideID(userName, userID)

	record, err := p.surveys.GetSurveyRecord(guideID)
	if err != nil {
		return nil, err
	}

	analysis := AnalyzeSkills(record)

	recommendedCourse := record.RecommendedCourse
	if recommendedCourse == "" {
		recommendedCourse = "No recommendation available"
	}

	return &models.UserProfile{
		UserID:            userID,
		UserName:          userName,
		GuideID:           guideID,
		RecommendedCourse: recommendedCourse,
		SkillScores:       analysis.Skills,
		OverallAverage:    record.OverallAverage,
	}, nil
}
