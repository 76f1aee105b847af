package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	EnvBaseURL     = "FM_BASE_URL"
	EnvPassword    = "FM_PASSWORD"
	EnvDownloadDir = "FM_DOWNLOAD_DIR"
)

type ClientConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Credential     string        `yaml:"credential"`
	AskCredential  bool          `yaml:"ask_credential"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type StorageConfig struct {
	DownloadDir    string      `yaml:"download_dir"`
	DirPermissions os.FileMode `yaml:"dir_permissions"`
}

type RoutesConfig struct {
	List         string `yaml:"list"`
	CreateFolder string `yaml:"create_folder"`
	Upload       string `yaml:"upload"`
	Delete       string `yaml:"delete"`
	Download     string `yaml:"download"`
}

type Messages struct {
	ErrorLoadingFiles   string `yaml:"error_loading_files"`
	ErrorCreatingFolder string `yaml:"error_creating_folder"`
	ErrorUploadingFile  string `yaml:"error_uploading_file"`
	ErrorDeletingFile   string `yaml:"error_deleting_file"`
	ErrorDownloading    string `yaml:"error_downloading_file"`
	ConfirmDelete       string `yaml:"confirm_delete"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type Config struct {
	Client   ClientConfig  `yaml:"client"`
	Storage  StorageConfig `yaml:"storage"`
	Routes   RoutesConfig  `yaml:"routes"`
	Messages Messages      `yaml:"messages"`
	Log      LogConfig     `yaml:"log"`
}

// Default значения по умолчанию совпадают с маршрутами и текстами веб-клиента.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			BaseURL: "http://localhost:5000",
		},
		Storage: StorageConfig{
			DownloadDir:    "downloads",
			DirPermissions: 0o755,
		},
		Routes: RoutesConfig{
			List:         "/list_files",
			CreateFolder: "/create_folder",
			Upload:       "/upload",
			Delete:       "/delete_file",
			Download:     "/download_file",
		},
		Messages: Messages{
			ErrorLoadingFiles:   "Error loading files",
			ErrorCreatingFolder: "Error creating folder",
			ErrorUploadingFile:  "Error uploading file",
			ErrorDeletingFile:   "Error deleting file",
			ErrorDownloading:    "Error downloading file",
			ConfirmDelete:       "Are you sure you want to delete this file?",
		},
		Log: LogConfig{
			Level: logrus.InfoLevel.String(),
		},
	}
}

func LoadConfig(filename string) *Config {
	cfg, err := LoadConfigWithError(filename)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// LoadConfigWithError читает YAML поверх значений по умолчанию.
// отсутствующий файл не ошибка, клиент можно запускать только с .env.
func LoadConfigWithError(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
		}
	case errors.Is(err, os.ErrNotExist):
		logrus.Debugf("Config file %s not found, using defaults", filename)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnv(cfg)

	absPath, absErr := filepath.Abs(cfg.Storage.DownloadDir)
	if absErr != nil {
		return nil, fmt.Errorf("failed to resolve download dir: %w", absErr)
	}
	cfg.Storage.DownloadDir = absPath

	if validationErr := validateConfig(cfg); validationErr != nil {
		return nil, validationErr
	}

	return cfg, nil
}

// LoadEnvFile подгружает .env, если он есть. Уже заданные переменные не перезаписываются.
func LoadEnvFile(filename string) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(filename); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	overrides := map[string]*string{
		EnvBaseURL:     &cfg.Client.BaseURL,
		EnvPassword:    &cfg.Client.Credential,
		EnvDownloadDir: &cfg.Storage.DownloadDir,
	}
	for name, field := range overrides {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*field = v
		}
	}
}

type validationError struct {
	field string
	msg   string
}

func (e validationError) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.msg)
}

func validateConfig(cfg *Config) error {
	type validator func() error

	validators := []validator{
		func() error { return validateBaseURL(cfg.Client.BaseURL) },
		func() error { return validateRequiredString("storage.download_dir", cfg.Storage.DownloadDir) },
		func() error { return validateRoute("routes.list", cfg.Routes.List) },
		func() error { return validateRoute("routes.create_folder", cfg.Routes.CreateFolder) },
		func() error { return validateRoute("routes.upload", cfg.Routes.Upload) },
		func() error { return validateRoute("routes.delete", cfg.Routes.Delete) },
		func() error { return validateRoute("routes.download", cfg.Routes.Download) },
		func() error { return validateNonNegativeDuration("client.request_timeout", cfg.Client.RequestTimeout) },
		func() error { return validateLogLevel(cfg.Log.Level) },
	}

	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}

	return nil
}

func validateRequiredString(field, value string) error {
	if value == "" {
		return validationError{field: field, msg: "is required"}
	}
	return nil
}

func validateRoute(field, value string) error {
	if err := validateRequiredString(field, value); err != nil {
		return err
	}
	if value[0] != '/' {
		return validationError{field: field, msg: fmt.Sprintf("must start with '/', got %q", value)}
	}
	return nil
}

func validateBaseURL(value string) error {
	if err := validateRequiredString("client.base_url", value); err != nil {
		return err
	}
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return validationError{field: "client.base_url", msg: fmt.Sprintf("must be an absolute URL, got %q", value)}
	}
	return nil
}

func validateNonNegativeDuration(field string, value time.Duration) error {
	if value < 0 {
		return validationError{field: field, msg: "must not be negative"}
	}
	return nil
}

func validateLogLevel(level string) error {
	if _, err := logrus.ParseLevel(level); err != nil {
		return validationError{field: "log.level", msg: err.Error()}
	}
	return nil
}
