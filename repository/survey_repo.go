package repository

import (
	"database/sql"
	"errors"

	"terraguide_api/models"
)

// GetSurveyRecord 按guide_id查询问卷记录
// 未命中时返回sql.ErrNoRows，调用方据此与数据库故障区分
func (s *MySQLStore) GetSurveyRecord(guideID string) (*models.SurveyRecord, error) {
	row := s.db.QueryRow(`
		SELECT guide_id, basic_skills_avg, nature_knowledge_avg, interpretation_avg,
		       leadership_safety_avg, cultural_expertise_avg, overall_average, recommended_course
		FROM guide_survey_data
		WHERE guide_id = ?
	`, guideID)

	rec := &models.SurveyRecord{}
	var (
		basic, nature, interp, leadership, cultural, overall sql.NullFloat64
		course                                               sql.NullString
	)
	if err := row.Scan(&rec.GuideID, &basic, &nature, &interp, &leadership, &cultural, &overall, &course); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}

	// NULL字段按0/空串处理
	rec.BasicSkillsAvg = basic.Float64
	rec.NatureKnowledgeAvg = nature.Float64
	rec.InterpretationAvg = interp.Float64
	rec.LeadershipSafetyAvg = leadership.Float64
	rec.CulturalExpertiseAvg = cultural.Float64
	rec.OverallAverage = overall.Float64
	rec.RecommendedCourse = course.String

	return rec, nil
}
