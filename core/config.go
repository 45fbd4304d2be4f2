package core

import (
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Env          string
		Build        string
		AppName      string
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string

		Server     ServerConfig
		Database   DatabaseConfig
		LLM        LLMConfig
		CodeSearch CodeSearchConfig
		DocsAssist DocsAssistConfig
	}

	ServerConfig struct {
		Host                      string
		Address                   string
		DebugHost                 string
		DisableReqLogs            bool
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		CacheMaxAge               time.Duration
	}

	DatabaseConfig struct {
		Engine        string // postgres | sqlite | memory
		Host          string
		Port          string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
		Path          string // sqlite only
	}

	LLMConfig struct {
		Provider    string // perplexity | openai | anthropic | gemini | mock
		APIKey      string
		Model       string
		BaseURL     string
		Temperature float64
		MaxTokens   int
		Timeout     time.Duration
	}

	CodeSearchConfig struct {
		BaseURL string
		Token   string
		Timeout time.Duration
	}

	DocsAssistConfig struct {
		Name    string
		Version string
		Address string
	}
)

func (c DatabaseConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "CodeDaily")
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("secretKey", "s3cr3t-k3y!-ch4nge-m3-1n-pr0d-2b#q9x&v@e7z")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 4*time.Hour)
	v.SetDefault("server.cacheMaxAge", time.Hour)

	v.SetDefault("database.engine", "sqlite")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "codedaily")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.adminUser", "postgres")
	v.SetDefault("database.adminPassword", "")
	v.SetDefault("database.disableTLS", true)
	v.SetDefault("database.path", "codedaily.db")

	v.SetDefault("llm.provider", "perplexity")
	v.SetDefault("llm.apiKey", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.baseURL", "")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.maxTokens", 2048)
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetDefault("codeSearch.baseURL", "https://api.github.com")
	v.SetDefault("codeSearch.token", "")
	v.SetDefault("codeSearch.timeout", 15*time.Second)

	v.SetDefault("docsAssist.name", "code-daily-docs")
	v.SetDefault("docsAssist.version", "1.0.0")
	v.SetDefault("docsAssist.address", ":8090")
}

// NewConfig loads the app Config from defaults, the optional `config/.env.<env>` file and the environment.
// ENV selects the environment (DEV by default) which is also the prefix of every env var, eg: DEV_SERVER_ADDRESS.
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(configDir(), ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := new(Config)
	if err := v.Unmarshal(conf); err != nil {
		log.Fatalf("config.Unmarshal: %v", err)
	}
	conf.Env = env

	// well-known third-party keys
	if conf.LLM.APIKey == "" {
		conf.LLM.APIKey = os.Getenv("PERPLEXITY_API_KEY")
	}
	if conf.CodeSearch.Token == "" {
		conf.CodeSearch.Token = os.Getenv("GITHUB_TOKEN")
	}
	return conf
}

func configDir() string {
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	return filepath.Join(wd, "config")
}
