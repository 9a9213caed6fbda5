package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"terraguide_api/config"
	"terraguide_api/models"
	"terraguide_api/services"
	"terraguide_api/utils"
)

// FloraIdentifyHandler godoc
// @Summary 植物识别
// @Description 上传植物图片并识别种类；置信度低于阈值时返回"Unknown plant"
// @Tags 植物识别
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "图片文件（PNG/JPG/JPEG，最大1MB）"
// @Param confidence_threshold query number false "置信度阈值（默认0.4，传0表示不做Unknown映射）"
// @Success 200 {object} models.APIResponse "成功"
// @Failure 400 {object} models.APIResponse "图片无效"
// @Failure 500 {object} models.APIResponse "推理失败"
// @Router /api/flora/identify [post]
func FloraIdentifyHandler(w http.ResponseWriter, r *http.Request, svc *services.FloraService, cfg *config.Config) {
	// 限制整个请求体大小，防止超大上传占用内存
	r.Body = http.MaxBytesReader(w, r.Body, cfg.Classifier.MaxUploadBytes+4096)

	if err := r.ParseMultipartForm(cfg.Classifier.MaxUploadBytes); err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeInvalidImage,
			"解析上传文件失败: "+err.Error(), map[string]interface{}{})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteErrorResponse(w, models.CodeMissingParams, map[string]interface{}{
			"param": "file",
		})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		utils.WriteCustomErrorResponse(w, models.CodeInvalidImage,
			"读取上传文件失败: "+err.Error(), map[string]interface{}{})
		return
	}

	// 阈值可由调用方覆盖，显式传0表示不做Unknown映射；未传时用负数让服务层取默认值
	threshold := -1.0
	if raw := r.URL.Query().Get("confidence_threshold"); raw != "" {
		if v, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
			threshold = v
		}
	}

	result, err := svc.Identify(r.Context(), image, header.Header.Get("Content-Type"), threshold)
	if err != nil {
		// 图片无效是客户端错误，推理失败是服务端错误
		if errors.Is(err, services.ErrInvalidImage) {
			utils.WriteCustomErrorResponse(w, models.CodeInvalidImage, err.Error(), map[string]interface{}{})
		} else {
			utils.WriteCustomErrorResponse(w, models.CodeInferenceError, err.Error(), map[string]interface{}{})
		}
		return
	}

	utils.WriteSuccessResponse(w, result)
}

// FloraHealthHandler godoc
// @Summary 植物识别服务健康检查
// @Description 检查推理服务是否可达
// @Tags 植物识别
// @Produce json
// @Success 200 {object} map[string]interface{} "成功"
// @Router /api/flora/healthcheck [get]
func FloraHealthHandler(w http.ResponseWriter, r *http.Request, svc *services.FloraService) {
	if err := svc.Healthcheck(r.Context()); err != nil {
		utils.WriteFormattedJSON(w, map[string]interface{}{
			"status":       "unhealthy",
			"model_loaded": false,
			"error":        err.Error(),
		})
		return
	}

	utils.WriteFormattedJSON(w, map[string]interface{}{
		"status":       "healthy",
		"model_loaded": true,
		"message":      "Plant identification service is ready",
	})
}
