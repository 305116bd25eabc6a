package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LoggerConfig 日志配置结构
type LoggerConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	Format       string `yaml:"format"`        // json 或 pretty
	TimeFormat   string `yaml:"time_format"`   // 时间戳格式
	ReportCaller bool   `yaml:"report_caller"` // 是否记录调用位置
}

// ExtractorConfig 文本提取与字段抽取配置
type ExtractorConfig struct {
	MinTextLength        int `yaml:"min_text_length"`        // 提取文本的最小可用长度（字符）
	PDFTimeoutSeconds    int `yaml:"pdf_timeout_seconds"`    // PDF解析超时(秒)
	SummaryMaxLength     int `yaml:"summary_max_length"`     // 摘要最大长度（字符）
	DescriptionMaxLength int `yaml:"description_max_length"` // 工作经历描述最大长度（字符）
	ExcerptLength        int `yaml:"excerpt_length"`         // 原始文本摘录长度（字符）
}

// BatchConfig 批处理配置
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"` // 并发工作协程数
}

// NarrativeConfig 外部叙述服务配置。
// 该服务是可选的：关闭或调用失败时一律回落到确定性的本地理由生成。
type NarrativeConfig struct {
	Enabled        bool `yaml:"enabled"`         // 是否启用外部叙述服务
	TimeoutSeconds int  `yaml:"timeout_seconds"` // 单次调用超时(秒)
}

// Config 应用程序配置
type Config struct {
	Logger    LoggerConfig    `yaml:"logger"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Batch     BatchConfig     `yaml:"batch"`
	Narrative NarrativeConfig `yaml:"narrative"`

	// 可选的词表覆盖文件路径，空则使用内置默认词表
	VocabularyPath string `yaml:"vocabulary_path"`
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "json",
			TimeFormat: time.RFC3339,
		},
		Extractor: ExtractorConfig{
			MinTextLength:        50,
			PDFTimeoutSeconds:    30,
			SummaryMaxLength:     500,
			DescriptionMaxLength: 200,
			ExcerptLength:        500,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Narrative: NarrativeConfig{
			Enabled:        false,
			TimeoutSeconds: 10,
		},
	}
}

// LoadConfig 从YAML文件加载配置，未给出的字段保留默认值。
// 路径为空时直接返回默认配置。
func LoadConfig(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败 %s: %w", configPath, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败 %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults 对零值字段补全默认值，防止配置文件只写了部分字段
func (c *Config) applyDefaults() {
	def := Default()
	if c.Extractor.MinTextLength <= 0 {
		c.Extractor.MinTextLength = def.Extractor.MinTextLength
	}
	if c.Extractor.PDFTimeoutSeconds <= 0 {
		c.Extractor.PDFTimeoutSeconds = def.Extractor.PDFTimeoutSeconds
	}
	if c.Extractor.SummaryMaxLength <= 0 {
		c.Extractor.SummaryMaxLength = def.Extractor.SummaryMaxLength
	}
	if c.Extractor.DescriptionMaxLength <= 0 {
		c.Extractor.DescriptionMaxLength = def.Extractor.DescriptionMaxLength
	}
	if c.Extractor.ExcerptLength <= 0 {
		c.Extractor.ExcerptLength = def.Extractor.ExcerptLength
	}
	if c.Batch.Concurrency <= 0 {
		c.Batch.Concurrency = def.Batch.Concurrency
	}
	if c.Narrative.TimeoutSeconds <= 0 {
		c.Narrative.TimeoutSeconds = def.Narrative.TimeoutSeconds
	}
	if c.Logger.Level == "" {
		c.Logger.Level = def.Logger.Level
	}
	if c.Logger.Format == "" {
		c.Logger.Format = def.Logger.Format
	}
}

// NarrativeTimeout 返回叙述服务的调用超时
func (c *Config) NarrativeTimeout() time.Duration {
	return time.Duration(c.Narrative.TimeoutSeconds) * time.Second
}

// PDFTimeout 返回PDF解析超时
func (c *Config) PDFTimeout() time.Duration {
	return time.Duration(c.Extractor.PDFTimeoutSeconds) * time.Second
}
