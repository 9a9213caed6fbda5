package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"terraguide_api/config"
	"terraguide_api/logger"
	"terraguide_api/models"
)

// UnknownPlantLabel 置信度不足时返回的标签
const UnknownPlantLabel = "Unknown plant"

// ErrInvalidImage 图片校验失败（客户端错误，与推理失败区分）
var ErrInvalidImage = errors.New("invalid image file")

// FloraService 植物识别服务
// 模型推理交给外部Classifier，本服务负责输入校验和阈值判定
type FloraService struct {
	classifier       Classifier
	defaultThreshold float64
	maxUploadBytes   int64
}

// NewFloraService 创建植物识别服务
func NewFloraService(classifier Classifier, cfg *config.Config) *FloraService {
	threshold := cfg.Classifier.Threshold
	if threshold <= 0 {
		threshold = 0.4
	}
	maxBytes := cfg.Classifier.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}
	return &FloraService{
		classifier:       classifier,
		defaultThreshold: threshold,
		maxUploadBytes:   maxBytes,
	}
}

// validateImage 校验上传图片，失败时返回包装了ErrInvalidImage的错误
func (f *FloraService) validateImage(image []byte, contentType string) error {
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("%w: file must be an image (PNG, JPG, or JPEG)", ErrInvalidImage)
	}
	if len(image) == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidImage)
	}
	if int64(len(image)) > f.maxUploadBytes {
		return fmt.Errorf("%w: file size must be less than %d bytes", ErrInvalidImage, f.maxUploadBytes)
	}
	return nil
}

// Identify 识别图片中的植物种类
// threshold<0表示调用方未指定，使用默认阈值；显式传0则任何置信度都不映射为Unknown
// 置信度低于阈值时映射为"Unknown plant"而不是最高类别
func (f *FloraService) Identify(ctx context.Context, image []byte, contentType string, threshold float64) (*models.FloraIdentification, error) {
	if threshold < 0 {
		threshold = f.defaultThreshold
	}

	if err := f.validateImage(image, contentType); err != nil {
		logger.Warn("Invalid image upload", "content_type", contentType, "size", len(image), "error", err)
		return nil, err
	}

	result, err := f.classifier.Classify(ctx, image)
	if err != nil {
		logger.Error("Model inference failed", "error", err)
		return nil, fmt.Errorf("plant identification failed during model inference: %w", err)
	}

	identification := &models.FloraIdentification{
		Confidence:    result.Confidence,
		Success:       true,
		ThresholdUsed: threshold,
	}

	if result.Confidence < threshold {
		identification.PredictedClass = UnknownPlantLabel
		logger.Info("Low confidence prediction mapped to unknown",
			"raw_label", result.Label, "confidence", result.Confidence, "threshold", threshold)
	} else {
		identification.PredictedClass = result.Label
		identification.RawPrediction = result.Label
		logger.Info("Plant identified", "label", result.Label, "confidence", result.Confidence)
	}

	return identification, nil
}

// Healthcheck 检查推理服务是否可达
func (f *FloraService) Healthcheck(ctx context.Context) error {
	return f.classifier.Healthcheck(ctx)
}
