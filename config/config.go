package config

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appname  string `yaml:"appname" json:"appname"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"` // development or production
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

// ImageHostConfig holds credentials for the external image host
// (Cloudinary compatible upload API).
type ImageHostConfig struct {
	CloudName string `yaml:"cloud_name" json:"cloud_name"`
	APIKey    string `yaml:"api_key" json:"api_key"`
	APISecret string `yaml:"api_secret" json:"api_secret"`
	Folder    string `yaml:"folder" json:"folder"`
}

// AdminSeedConfig is the initial administrator account created on startup
// when no account with that email exists yet.
type AdminSeedConfig struct {
	Email    string `yaml:"email" json:"email"`
	Password string `yaml:"password" json:"password"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Database  DBConfig        `yaml:"database" json:"database"`
	Logger    LoggerConfig    `yaml:"logger" json:"logger"`
	ImageHost ImageHostConfig `yaml:"imagehost" json:"imagehost"`
	AdminSeed AdminSeedConfig `yaml:"admin_seed" json:"admin_seed"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appname:  "PartsCatalog",
		Location: "America/Santiago",
		Workdir:  "/var/partscatalog",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1980,
		Secret: "9b6de5cc-partscat-1980-8888-e1113a06fa1a",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "partscatalog",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/partscatalog/partscatalog.log",
	},
	ImageHost: ImageHostConfig{
		Folder: "catalogo",
	},
}

func setEnvValue(name string, val *string) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	if evalue := os.Getenv(name); evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig reads the YAML configuration file and applies environment
// variable overrides. A missing file is not an error, defaults are used.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			loaded := new(AppConfig)
			if err := yaml.Unmarshal(data, loaded); err != nil {
				fmt.Fprintf(os.Stderr, "config file %s parse error: %v, using defaults\n", cfile, err)
			} else {
				cfg = loaded
			}
		}
	}

	setEnvValue("PCAT_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBoolValue("PCAT_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("PCAT_WEB_HOST", &cfg.Web.Host)
	setEnvIntValue("PCAT_WEB_PORT", &cfg.Web.Port)
	setEnvValue("PCAT_WEB_SECRET", &cfg.Web.Secret)

	setEnvValue("PCAT_DB_HOST", &cfg.Database.Host)
	setEnvIntValue("PCAT_DB_PORT", &cfg.Database.Port)
	setEnvValue("PCAT_DB_NAME", &cfg.Database.Name)
	setEnvValue("PCAT_DB_USER", &cfg.Database.User)
	setEnvValue("PCAT_DB_PASSWD", &cfg.Database.Passwd)

	setEnvValue("CLOUDINARY_CLOUD_NAME", &cfg.ImageHost.CloudName)
	setEnvValue("CLOUDINARY_API_KEY", &cfg.ImageHost.APIKey)
	setEnvValue("CLOUDINARY_API_SECRET", &cfg.ImageHost.APISecret)

	setEnvValue("ADMIN_SEED_EMAIL", &cfg.AdminSeed.Email)
	setEnvValue("ADMIN_SEED_PASSWORD", &cfg.AdminSeed.Password)

	return cfg
}
