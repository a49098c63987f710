package config

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server      ServerConfig       `toml:"server"`
	Data        DataConfig         `toml:"data"`
	Chart       ChartConfig        `toml:"chart"`
	Comparisons []ComparisonConfig `toml:"comparisons"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host    string `toml:"host"` // 监听地址，默认只监听本机
	Port    int    `toml:"port"`
	DevMode bool   `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir  string `toml:"data_dir"`
	Dataset  string `toml:"dataset"`       // 本地路径或 http(s) 地址
	Encoding string `toml:"encoding"`      // 单字节编码名称
	ImportDB string `toml:"import_log_db"` // 导入日志库，空值表示仅保存在内存中
}

// ChartConfig 图表尺寸与动画时长
type ChartConfig struct {
	Width          int `toml:"width"`
	Height         int `toml:"height"`
	BarDurationMs  int `toml:"bar_duration_ms"`
	LineDurationMs int `toml:"line_duration_ms"`
}

// ComparisonConfig 选择器中的一项对比
type ComparisonConfig struct {
	ID        string `toml:"id"`
	Title     string `toml:"title"`
	ConceptA  string `toml:"concept_a"`
	ConceptB  string `toml:"concept_b"`
	LabelA    string `toml:"label_a"`
	LabelB    string `toml:"label_b"`
	ChartType string `toml:"chart_type"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Host:    "127.0.0.1",
			Port:    20262,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir:  "data",
			Dataset:  filepath.Join("data", "migration-data-madrid.csv"),
			Encoding: "iso-8859-1",
			ImportDB: "",
		},
		Chart: ChartConfig{
			Width:          800,
			Height:         400,
			BarDurationMs:  1000,
			LineDurationMs: 1500,
		},
	}
}

// fileOverlay 只用来判断配置文件里是否显式写了端口
type fileOverlay struct {
	Server struct {
		Port *int `toml:"port"`
	} `toml:"server"`
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// ResolvePath 相对路径以可执行文件所在目录为基准；http(s) 地址与绝对路径原样返回
func ResolvePath(p string) string {
	lower := strings.ToLower(p)
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return p
	}
	exeDir, err := GetExeDir()
	if err != nil || exeDir == "" {
		exeDir = "."
	}
	return filepath.Join(exeDir, p)
}

// LoadConfigWithInfo 读取可执行文件同目录的 config.toml
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadConfigFile(ResolvePath("config.toml"))
}

// LoadConfigFile 从指定路径加载配置；文件不存在时返回默认配置
//
// 文件中未出现的键保留默认值，环境变量最后生效。
func LoadConfigFile(configPath string) (*AppConfig, LoadConfigInfo, error) {
	var info LoadConfigInfo
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, info, err
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, err
		}
		var overlay fileOverlay
		if toml.Unmarshal(data, &overlay) == nil {
			info.PortSpecified = overlay.Server.Port != nil
		}
	}

	applyEnv(cfg)
	cfg.normalize()
	return cfg, info, nil
}

// applyEnv 环境变量覆盖（用于本地运行与测试）
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("DEMOGRAFIA_DATASET"); v != "" {
		cfg.Data.Dataset = v
	}
	if v := os.Getenv("DEMOGRAFIA_ENCODING"); v != "" {
		cfg.Data.Encoding = v
	}
}

// normalize 把缺失或非法的数值恢复为默认值
func (c *AppConfig) normalize() {
	def := DefaultConfig()
	if c.Server.Port <= 0 {
		c.Server.Port = def.Server.Port
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		c.Server.Host = def.Server.Host
	}
	if strings.TrimSpace(c.Data.Encoding) == "" {
		c.Data.Encoding = def.Data.Encoding
	}
	if c.Chart.Width <= 0 {
		c.Chart.Width = def.Chart.Width
	}
	if c.Chart.Height <= 0 {
		c.Chart.Height = def.Chart.Height
	}
	if c.Chart.BarDurationMs < 0 {
		c.Chart.BarDurationMs = def.Chart.BarDurationMs
	}
	if c.Chart.LineDurationMs < 0 {
		c.Chart.LineDurationMs = def.Chart.LineDurationMs
	}
}

// SaveConfigFile 保存配置到指定路径
func SaveConfigFile(configPath string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0644)
}

// EnsureDataDir 创建数据目录及 exports/、snapshots/ 子目录，返回绝对路径
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dataDir := ResolvePath(cfg.Data.DataDir)
	for _, dir := range []string{dataDir, filepath.Join(dataDir, "exports"), filepath.Join(dataDir, "snapshots")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}
	return dataDir, nil
}

// ListenAddr 服务监听地址
func (c *AppConfig) ListenAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
