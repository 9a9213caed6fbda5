package services

import (
	"terraguide_api/models"
)

// SkillCategories 五个技能类别的固定枚举顺序
// 顺序决定最强/最弱技能并列时的判定结果，不要调整
var SkillCategories = []string{
	"Basic Skills",
	"Nature Knowledge",
	"Interpretation",
	"Leadership & Safety",
	"Cultural Expertise",
}

// skillValues 按固定枚举顺序取出问卷记录中的五个技能平均分
func skillValues(rec *models.SurveyRecord) []float64 {
	return []float64{
		rec.BasicSkillsAvg,
		rec.NatureKnowledgeAvg,
		rec.InterpretationAvg,
		rec.LeadershipSafetyAvg,
		rec.CulturalExpertiseAvg,
	}
}

// AnalyzeSkills 分析用户技能的强项和短板
// 传入nil时按全零档案处理；并列时固定枚举顺序中先出现的类别胜出
func AnalyzeSkills(rec *models.SurveyRecord) *models.SkillAnalysis {
	if rec == nil {
		rec = &models.SurveyRecord{}
	}

	values := skillValues(rec)
	skills := make(map[string]float64, len(SkillCategories))
	for i, name := range SkillCategories {
		skills[name] = values[i]
	}

	// 线性扫描找最大最小值，严格比较保证并列时首个类别胜出
	strongest, weakest := 0, 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[strongest] {
			strongest = i
		}
		if values[i] < values[weakest] {
			weakest = i
		}
	}

	return &models.SkillAnalysis{
		Skills:    skills,
		Strongest: SkillCategories[strongest],
		Weakest:   SkillCategories[weakest],
		Balance:   values[strongest] - values[weakest],
	}
}

// ConfidenceLevel 根据问卷总平均分划分置信度档位
func ConfidenceLevel(overallAverage float64) string {
	if overallAverage >= 4.0 {
		return "high"
	}
	if overallAverage >= 3.0 {
		return "medium"
	}
	return "low"
}
