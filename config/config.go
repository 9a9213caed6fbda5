package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Addr string `yaml:"-"` // 不从配置文件读取，而是在加载后计算
	} `yaml:"server"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Output   string `yaml:"output"`
		FilePath string `yaml:"file_path"`
	} `yaml:"log"`

	DB struct {
		Host            string `yaml:"host"`
		Port            int    `yaml:"port"`
		Username        string `yaml:"username"`
		Password        string `yaml:"password"`
		Database        string `yaml:"database"`
		Charset         string `yaml:"charset"`
		ParseTime       bool   `yaml:"parse_time"`
		DSN             string `yaml:"-"`                 // 不从配置文件读取，而是在加载后计算
		MaxOpenConns    int    `yaml:"max_open_conns"`    // 最大打开连接数
		MaxIdleConns    int    `yaml:"max_idle_conns"`    // 最大空闲连接数
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // 连接最大生命周期（分钟）
	} `yaml:"database"`
	Recommender struct {
		DefaultCount  int    `yaml:"default_count"`   // 默认推荐数量
		ModelVersion  string `yaml:"model_version"`   // 写入推荐缓存的模型版本号
		CacheTTLHours int    `yaml:"cache_ttl_hours"` // 推荐缓存过期时间（小时）
	} `yaml:"recommender"`
	Classifier struct {
		BaseURL        string  `yaml:"base_url"`         // 植物识别推理服务地址
		APIKey         string  `yaml:"api_key"`          // 推理服务密钥
		Threshold      float64 `yaml:"threshold"`        // 默认置信度阈值
		MaxUploadBytes int64   `yaml:"max_upload_bytes"` // 上传图片大小上限（字节）
		TimeoutSec     int     `yaml:"timeout_sec"`      // 请求超时时间,单位:秒
	} `yaml:"classifier"`
	Scheduler struct {
		CheckIntervalSec int `yaml:"check_interval_sec"` // 调度器检查间隔（秒）
		PurgeHour        int `yaml:"purge_hour"`         // 每天清理过期推荐缓存的小时（0-23）
		PurgeMin         int `yaml:"purge_min"`          // 每天清理过期推荐缓存的分钟（0-59）
		DefaultHour      int `yaml:"default_hour"`       // 默认执行小时
		DefaultMinute    int `yaml:"default_minute"`     // 默认执行分钟
	} `yaml:"scheduler"`
	Debug struct {
		Enabled      bool `yaml:"enabled"`        // 是否启用debug模式
		PurgeFreqSec int  `yaml:"purge_freq_sec"` // debug模式下缓存清理频率，单位：秒
	} `yaml:"debug"`
}

func Load() *Config {
	// 首先尝试加载.env文件中的环境变量
	_ = godotenv.Load() // 忽略错误，如果.env文件不存在，继续使用系统环境变量

	var cfg Config

	// 尝试从config.yaml文件加载配置
	if data, err := os.ReadFile("config.yaml"); err == nil {
		err = yaml.Unmarshal(data, &cfg)
		if err != nil {
			log.Printf("Error loading config.yaml: %v, falling back to environment variables", err)
			yamlFailed := loadFromEnv()
			return yamlFailed
		}
		log.Println("Loading configuration from config.yaml")

		// 计算 Server.Addr 字段
		cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

		// 从环境变量中加载敏感信息
		// 数据库用户名和密码
		if envUsername := os.Getenv("DATABASE_USERNAME"); envUsername != "" {
			cfg.DB.Username = envUsername
		}
		if envPassword := os.Getenv("DATABASE_PASSWORD"); envPassword != "" {
			cfg.DB.Password = envPassword
		}

		// 推理服务密钥
		if envAPIKey := os.Getenv("CLASSIFIER_API_KEY"); envAPIKey != "" {
			cfg.Classifier.APIKey = envAPIKey
		}

		applyDefaults(&cfg)

		// 计算 DB.DSN 字段
		if cfg.DB.DSN == "" {
			// 设置默认值
			if cfg.DB.Charset == "" {
				cfg.DB.Charset = "utf8mb4"
			}

			// 构建DSN
			parseTime := ""
			if cfg.DB.ParseTime {
				parseTime = "&parseTime=true"
			}

			cfg.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
				cfg.DB.Username,
				cfg.DB.Password,
				cfg.DB.Host,
				cfg.DB.Port,
				cfg.DB.Database,
				cfg.DB.Charset,
				parseTime)
		}

		return &cfg
	}

	// 如果config.yaml不存在，则完全从环境变量加载配置
	return loadFromEnv()
}

// applyDefaults 填充推荐服务和推理服务的默认参数
func applyDefaults(cfg *Config) {
	if cfg.Recommender.DefaultCount <= 0 {
		cfg.Recommender.DefaultCount = 5
	}
	if cfg.Recommender.ModelVersion == "" {
		cfg.Recommender.ModelVersion = "database_v1.0"
	}
	if cfg.Recommender.CacheTTLHours <= 0 {
		cfg.Recommender.CacheTTLHours = 24
	}
	if cfg.Classifier.Threshold <= 0 {
		cfg.Classifier.Threshold = 0.4
	}
	if cfg.Classifier.MaxUploadBytes <= 0 {
		cfg.Classifier.MaxUploadBytes = 1 << 20 // 1MB
	}
	if cfg.Classifier.TimeoutSec <= 0 {
		cfg.Classifier.TimeoutSec = 30
	}
}

func loadFromEnv() *Config {
	// 当config.yaml加载失败时，创建一个最小配置
	var cfg Config

	// 设置服务器地址
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)

	// 只从环境变量中加载敏感信息
	// 数据库配置
	if username := os.Getenv("DATABASE_USERNAME"); username != "" {
		cfg.DB.Username = username
	}
	if password := os.Getenv("DATABASE_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.DB.DSN = dsn
	} else if cfg.DB.Host != "" {
		// 只有在没有直接提供DSN且有主机信息时才构建DSN
		parseTime := ""
		if cfg.DB.ParseTime {
			parseTime = "&parseTime=true"
		}
		cfg.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s%s",
			cfg.DB.Username,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Database,
			cfg.DB.Charset,
			parseTime)
	}

	// 推理服务配置
	if baseURL := os.Getenv("CLASSIFIER_BASE_URL"); baseURL != "" {
		cfg.Classifier.BaseURL = baseURL
	}
	if apiKey := os.Getenv("CLASSIFIER_API_KEY"); apiKey != "" {
		cfg.Classifier.APIKey = apiKey
	}

	applyDefaults(&cfg)

	log.Println("配置从环境变量加载，部分配置可能缺失")
	return &cfg
}
