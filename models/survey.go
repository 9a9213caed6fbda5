package models

// SurveyRecord 导览员问卷记录
// 对应guide_survey_data表中的一行，五个技能维度均为问卷平均分（1-5）
type SurveyRecord struct {
	GuideID              string  `db:"guide_id" json:"guide_id"`
	BasicSkillsAvg       float64 `db:"basic_skills_avg" json:"basic_skills_avg"`
	NatureKnowledgeAvg   float64 `db:"nature_knowledge_avg" json:"nature_knowledge_avg"`
	InterpretationAvg    float64 `db:"interpretation_avg" json:"interpretation_avg"`
	LeadershipSafetyAvg  float64 `db:"leadership_safety_avg" json:"leadership_safety_avg"`
	CulturalExpertiseAvg float64 `db:"cultural_expertise_avg" json:"cultural_expertise_avg"`
	OverallAverage       float64 `db:"overall_average" json:"overall_average"`
	RecommendedCourse    string  `db:"recommended_course" json:"recommended_course"`
}

// SkillAnalysis 技能分析结果
// Strongest/Weakest为技能类别名称，Balance为最高分与最低分之差
type SkillAnalysis struct {
	Skills    map[string]float64 `json:"skills"`
	Strongest string             `json:"strongest"`
	Weakest   string             `json:"weakest"`
	Balance   float64            `json:"skill_balance"`
}
