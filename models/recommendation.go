package models

import "time"

// RecommendationRequest 推荐请求
type RecommendationRequest struct {
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	// 为nil时使用配置的默认数量；显式传0会得到空列表
	NumRecommendations *int `json:"num_recommendations"`
}

// RecommendationItem 单条课程推荐
type RecommendationItem struct {
	CourseID   string      `json:"course_id"`
	CourseName string      `json:"course_name"`
	Score      float64     `json:"score"`
	Confidence string      `json:"confidence"` // high / medium / low
	Reason     string      `json:"reason"`
	SkillMatch interface{} `json:"skill_match,omitempty"` // 技能匹配信息，个性化推荐时填充
}

// UserProfile 用户画像响应（基于问卷数据）
type UserProfile struct {
	UserID            string             `json:"user_id"`
	UserName          string             `json:"user_name"`
	GuideID           string             `json:"guide_id"`
	RecommendedCourse string             `json:"recommended_course"`
	SkillScores       map[string]float64 `json:"skill_scores"`
	OverallAverage    float64            `json:"overall_average"`
}

// UserInteraction 用户与课程的交互记录
type UserInteraction struct {
	UserID          string   `json:"user_id"`
	UserName        string   `json:"user_name"`
	CourseID        string   `json:"course_id"`
	InteractionType string   `json:"interaction_type"` // enrolled / completed / liked / viewed
	Rating          *float64 `json:"rating,omitempty"`
}

// CachedRecommendation 推荐缓存表中的一行
type CachedRecommendation struct {
	UserID       string    `db:"user_id" json:"user_id"`
	CourseID     string    `db:"course_id" json:"course_id"`
	Score        float64   `db:"score" json:"score"`
	ModelVersion string    `db:"model_version" json:"model_version"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
