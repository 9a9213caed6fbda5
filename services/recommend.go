package services

import (
	"fmt"

	"terraguide_api/logger"
	"terraguide_api/models"
	"terraguide_api/utils"
)

// popularCourse 兜底热门课程条目
type popularCourse struct {
	CourseID string
	Score    float64
	Reason   string
}

// popularCourses 固定排序的热门课程兜底列表
// 与当前课程目录绑定的样例数据，真实系统应改为从数据库读取
var popularCourses = []popularCourse{
	{"Master Park Guide Certification Program", 0.95, "Most popular advanced certification"},
	{"Introduction to Park Guiding", 0.90, "Essential foundation course"},
	{"Nature Guide Fundamentals", 0.85, "Core knowledge for all guides"},
	{"Advanced Park Guiding: Leadership and Safety", 0.80, "Critical safety and leadership skills"},
	{"Eco-Guide Training: Field & Interpretation Skills", 0.75, "Specialized interpretation training"},
}

// skillCourseMapping 技能短板到补充课程的固定映射
var skillCourseMapping = map[string]string{
	"Basic Skills":        "Introduction to Park Guiding",
	"Nature Knowledge":    "Nature Guide Fundamentals",
	"Interpretation":      "Eco-Guide Training: Field & Interpretation Skills",
	"Leadership & Safety": "Advanced Park Guiding: Leadership and Safety",
	"Cultural Expertise":  "Cultural Heritage and Historical Site Interpretation",
}

// complementaryScore 补充课程的固定分数
const complementaryScore = 0.75

// Recommender 课程推荐服务
// 问卷存储和缓存存储在构造时注入，测试可替换为内存实现
type Recommender struct {
	surveys      SurveyStore
	cache        CacheStore
	modelVersion string
}

// NewRecommender 创建推荐服务
func NewRecommender(surveys SurveyStore, cache CacheStore, modelVersion string) *Recommender {
	if modelVersion == "" {
		modelVersion = "database_v1.0"
	}
	return &Recommender{
		surveys:      surveys,
		cache:        cache,
		modelVersion: modelVersion,
	}
}

// PopularCoursesFallback 返回前n条热门课程作为兜底推荐
// 无状态且确定：n超过列表长度时按列表长度截断，绝不凭空补造；n为负时视为0
func PopularCoursesFallback(n int) []models.RecommendationItem {
	if n < 0 {
		n = 0
	}
	if n > len(popularCourses) {
		n = len(popularCourses)
	}

	items := make([]models.RecommendationItem, 0, n)
	for _, course := range popularCourses[:n] {
		items = append(items, models.RecommendationItem{
			CourseID:   course.CourseID,
			CourseName: course.CourseID,
			Score:      course.Score,
			Confidence: "medium",
			Reason:     course.Reason,
		})
	}

	logger.Info("Returning fallback recommendations", "count", len(items))
	return items
}

// Recommend 为用户生成课程推荐
// 查不到问卷数据或任何一步出错都静默降级到热门课程兜底，调用方永远拿到一个合法列表
// 成功组合出个性化推荐后无条件写入推荐缓存，缓存写入失败只记日志不影响返回
func (r *Recommender) Recommend(userID, userName string, n int) []models.RecommendationItem {
	if n <= 0 {
		// 请求0条时直接返回空列表，不触发任何存储写入
		return []models.RecommendationItem{}
	}

	guideID := MapUserToGuideID(userName, userID)

	record, err := r.surveys.GetSurveyRecord(guideID)
	if err != nil {
		if utils.IsSQLNoRowsError(err) {
			logger.Info("No survey data found for guide, returning popular courses", "guide_id", guideID)
		} else {
			logger.Error("Survey lookup failed, degrading to fallback", "guide_id", guideID, "error", err)
		}
		return PopularCoursesFallback(n)
	}

	analysis := AnalyzeSkills(record)
	confidence := ConfidenceLevel(record.OverallAverage)

	recommendations := make([]models.RecommendationItem, 0, n)

	// 首条是数据库中存储的个性化推荐课程
	if record.RecommendedCourse != "" {
		recommendations = append(recommendations, models.RecommendationItem{
			CourseID:   record.RecommendedCourse,
			CourseName: record.RecommendedCourse,
			Score:      record.OverallAverage,
			Confidence: confidence,
			Reason:     fmt.Sprintf("Recommended based on your survey profile. Strongest skill: %s", analysis.Strongest),
			SkillMatch: analysis,
		})
	}

	// 不足时用技能短板的补充课程和热门课程填充
	if len(recommendations) < n {
		recommendations = append(recommendations,
			r.complementaryCourses(analysis, record.RecommendedCourse, n-len(recommendations))...)
	}

	// 绝不超过请求数量
	if len(recommendations) > n {
		recommendations = recommendations[:n]
	}

	logger.Info("Generated database-driven recommendations",
		"user_name", userName, "guide_id", guideID, "count", len(recommendations))

	r.cacheRecommendations(userID, recommendations)

	return recommendations
}

// complementaryCourses 根据技能短板生成补充推荐
// 最弱技能对应的课程与主推荐相同则跳过，其余名额用热门课程填充
func (r *Recommender) complementaryCourses(analysis *models.SkillAnalysis, primaryCourse string, n int) []models.RecommendationItem {
	items := make([]models.RecommendationItem, 0, n)

	if course, ok := skillCourseMapping[analysis.Weakest]; ok && course != primaryCourse {
		items = append(items, models.RecommendationItem{
			CourseID:   course,
			CourseName: course,
			Score:      complementaryScore,
			Confidence: "medium",
			Reason:     fmt.Sprintf("Recommended to strengthen your %s skills", analysis.Weakest),
			SkillMatch: map[string]string{"target_skill": analysis.Weakest},
		})
	}

	if len(items) < n {
		items = append(items, PopularCoursesFallback(n-len(items))...)
	}

	if len(items) > n {
		items = items[:n]
	}
	return items
}

// cacheRecommendations 把推荐结果写入缓存（先删后插）
// 缓存是建议性的：写入失败只记日志，不向调用方暴露
func (r *Recommender) cacheRecommendations(userID string, items []models.RecommendationItem) {
	if len(items) == 0 {
		return
	}

	if err := r.cache.ReplaceRecommendations(userID, items, r.modelVersion); err != nil {
		logger.Warn("Failed to cache recommendations", "user_id", userID, "error", err)
		return
	}

	logger.Info("Cached recommendations", "user_id", userID, "count", len(items), "model_version", r.modelVersion)
}

// GetCachedRecommendations 读取用户当前的推荐缓存
func (r *Recommender) GetCachedRecommendations(userID string) ([]models.CachedRecommendation, error) {
	return r.cache.GetCachedRecommendations(userID)
}
