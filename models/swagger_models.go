package models

// APIResponse 通用API响应
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// RecommendationListResponse 推荐列表响应
type RecommendationListResponse struct {
	Code    int                  `json:"code" example:"0"`
	Message string               `json:"message" example:"success"`
	Data    []RecommendationItem `json:"data"`
}

// ProfileResponse 用户画像响应
type ProfileResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    UserProfile `json:"data"`
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status          string `json:"status" example:"healthy"`
	DatabaseStatus  string `json:"database_status" example:"connected"`
	DatabaseError   string `json:"database_error,omitempty"`
	DatabaseRecords int    `json:"database_records" example:"1"`
	Timestamp       string `json:"timestamp" example:"2025-01-01T00:00:00Z"`
	Message         string `json:"message" example:"Database-driven recommendations API is running"`
}
