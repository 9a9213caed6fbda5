package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	"terraguide_api/config"
	_ "terraguide_api/docs" // 导入 swagger 文档
	"terraguide_api/models"
	"terraguide_api/services"
	"terraguide_api/utils"
)

// RecommendationsHandler godoc
// @Summary 获取课程推荐
// @Description 根据用户的问卷数据生成课程推荐；查不到问卷数据或任何一步出错时静默降级为热门课程兜底，永远返回合法列表
// @Tags 推荐
// @Accept json
// @Produce json
// @Param request body models.RecommendationRequest true "推荐请求"
// @Success 200 {object} models.RecommendationListResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Router /api/recommendations [post]
func RecommendationsHandler(w http.ResponseWriter, r *http.Request, svc *services.Recommender, cfg *config.Config) {
	var req models.RecommendationRequest
	if !utils.DecodeJSONBody(w, r, &req) {
		return
	}
	if !utils.ValidateRequired(w, "user_name", req.UserName) {
		return
	}

	// 未指定数量时使用配置默认值；显式传0会得到空列表
	n := cfg.Recommender.DefaultCount
	if req.NumRecommendations != nil {
		n = *req.NumRecommendations
	}

	recommendations := svc.Recommend(req.UserID, req.UserName, n)
	utils.WriteSuccessResponse(w, recommendations)
}

// UserProfileHandler godoc
// @Summary 获取用户画像
// @Description 根据问卷数据返回用户的技能画像；没有问卷数据时返回明确的未找到错误，不做静默兜底
// @Tags 用户画像
// @Accept json
// @Produce json
// @Param user_id path string true "用户ID"
// @Param user_name query string false "用户名"
// @Success 200 {object} models.ProfileResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Failure 500 {object} models.APIResponse "服务器错误"
// @Router /api/users/{user_id}/profile [get]
func UserProfileHandler(w http.ResponseWriter, r *http.Request, svc *services.ProfileService) {
	userID := chi.URLParam(r, "user_id")
	if !utils.ValidateRequired(w, "user_id", userID) {
		return
	}

	userName := r.URL.Query().Get("user_name")
	if userName == "" {
		userName = "Unknown"
	}

	profile, err := svc.GetUserProfile(userID, userName)
	if err != nil {
		// 未找到与数据库故障走不同的错误码
		utils.HandleServiceError(w, err, models.CodeNoSurveyData)
		return
	}

	utils.WriteSuccessResponse(w, profile)
}

// InteractionsHandler godoc
// @Summary 记录用户与课程的交互
// @Description 记录报名/完成/点赞/浏览等交互；写库失败时返回partial_success而不是报错
// @Tags 交互
// @Accept json
// @Produce json
// @Param request body models.UserInteraction true "交互记录"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 400 {object} models.APIResponse "参数错误"
// @Router /api/interactions [post]
func InteractionsHandler(w http.ResponseWriter, r *http.Request, svc *services.InteractionService) {
	var interaction models.UserInteraction
	if !utils.DecodeJSONBody(w, r, &interaction) {
		return
	}
	if !utils.ValidateRequired(w, "user_id", interaction.UserID) {
		return
	}
	if !utils.ValidateRequired(w, "course_id", interaction.CourseID) {
		return
	}
	if !utils.ValidateRequired(w, "interaction_type", interaction.InteractionType) {
		return
	}

	id, err := svc.RecordInteraction(&interaction)
	if err != nil {
		// 交互记录失败不算致命错误，告知调用方已记录但未入库
		utils.WriteSuccessResponse(w, map[string]interface{}{
			"status":    "partial_success",
			"message":   "Interaction noted but not saved to database",
			"error":     err.Error(),
			"user_name": interaction.UserName,
		})
		return
	}

	utils.WriteSuccessResponse(w, map[string]interface{}{
		"status":         "success",
		"message":        "Interaction recorded successfully",
		"interaction_id": id,
		"user_name":      interaction.UserName,
	})
}

// HealthHandler godoc
// @Summary 健康检查
// @Description 检查服务和数据库连接状态
// @Tags 系统
// @Produce json
// @Success 200 {object} models.HealthResponse "成功"
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request, store services.HealthStore) {
	dbStatus := "connected"
	dbError := ""
	recordCount := 0

	if err := store.Ping(); err != nil {
		dbStatus = "disconnected"
		dbError = err.Error()
	} else if count, err := store.ProbeSurveyData(); err != nil {
		dbStatus = "disconnected"
		dbError = err.Error()
	} else {
		recordCount = count
	}

	utils.WriteFormattedJSON(w, map[string]interface{}{
		"status":           "healthy",
		"database_status":  dbStatus,
		"database_error":   dbError,
		"database_records": recordCount,
		"timestamp":        time.Now().Format(time.RFC3339),
		"message":          "Database-driven recommendations API is running",
	})
}

// RootHandler godoc
// @Summary API信息
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router / [get]
func RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.WriteFormattedJSON(w, map[string]interface{}{
		"name":    "TerraGuide Course Recommender API",
		"version": "1.0.0",
		"status":  "running",
		"endpoints": map[string]string{
			"health":          "/health",
			"recommendations": "/api/recommendations",
			"profile":         "/api/users/{user_id}/profile",
			"interactions":    "/api/interactions",
			"flora_identify":  "/api/flora/identify",
		},
		"message": "Database-driven course recommendation system",
	})
}

// RegisterRoutes 注册全部路由
func RegisterRoutes(r *chi.Mux, cfg *config.Config, store services.Store, classifier services.Classifier) {
	recommender := services.NewRecommender(store, store, cfg.Recommender.ModelVersion)
	profiles := services.NewProfileService(store)
	interactions := services.NewInteractionService(store)
	flora := services.NewFloraService(classifier, cfg)

	// Swagger 文档
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"), // Swagger JSON 的 URL
	))

	r.Get("/", RootHandler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		HealthHandler(w, r, store)
	})

	r.Post("/api/recommendations", func(w http.ResponseWriter, r *http.Request) {
		RecommendationsHandler(w, r, recommender, cfg)
	})

	r.Get("/api/users/{user_id}/profile", func(w http.ResponseWriter, r *http.Request) {
		UserProfileHandler(w, r, profiles)
	})

	r.Post("/api/interactions", func(w http.ResponseWriter, r *http.Request) {
		InteractionsHandler(w, r, interactions)
	})

	r.Post("/api/flora/identify", func(w http.ResponseWriter, r *http.Request) {
		FloraIdentifyHandler(w, r, flora, cfg)
	})

	r.Get("/api/flora/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		FloraHealthHandler(w, r, flora)
	})
}
