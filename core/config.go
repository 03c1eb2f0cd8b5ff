package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Storage backends
const (
	StorageFile     = "file"
	StorageDatabase = "database"
)

// Database drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

const devSecretKey = "dev-only-change-me"

type (
	ServerConfig struct {
		Address                   string
		Host                      string
		DebugHost                 string
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
		ShutdownTimeout           time.Duration
		CORSOrigins               []string
		DisableReqLogs            bool
	}

	StorageConfig struct {
		Backend string // file | database
		DataDir string
	}

	DatabaseConfig struct {
		URL string // sqlite:///path/to.db | postgres://...
	}

	// EngineConfig holds the defaults of the analysis endpoints' request parameters.
	EngineConfig struct {
		CurrentGrade    float64
		StressWindow    int
		WorkloadWindow  int
		ProjectionDays  int
		BlocksPerHour   int
		CrunchThreshold float64
		CurveMaxDelay   int
	}

	Config struct {
		AppName      string
		Env          string // DEV (default), TEST, QA, PROD
		Build        string
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string

		Server   ServerConfig
		Storage  StorageConfig
		Database DatabaseConfig
		Engine   EngineConfig
	}
)

// NewConfig loads the configuration from defaults, the optional config/.env.<env> file and the environment.
// Environment variables are prefixed with the environment name, e.g. PROD_SERVER_ADDRESS.
func NewConfig() *Config {
	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", env == "DEV" || env == "TEST")
	v.SetDefault("testMode", env == "TEST")
	v.SetDefault("appName", "StudentOS")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", devSecretKey)
	v.SetDefault("rollbarToken", "")

	v.SetDefault("server.address", ":5000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.debugHost", "localhost:5001")
	v.SetDefault("server.jwtExpirationDelta", 30*24*time.Hour)
	v.SetDefault("server.jwtRefreshExpirationDelta", 90*24*time.Hour)
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.corsOrigins", "*")
	v.SetDefault("server.disableReqLogs", false)

	v.SetDefault("storage.backend", StorageFile)
	v.SetDefault("storage.dataDir", "data")
	v.SetDefault("database.url", "sqlite:///studentos.db")

	v.SetDefault("engine.currentGrade", 85.0)
	v.SetDefault("engine.stressWindow", 5)
	v.SetDefault("engine.workloadWindow", 3)
	v.SetDefault("engine.projectionDays", 7)
	v.SetDefault("engine.blocksPerHour", 2)
	v.SetDefault("engine.crunchThreshold", 2.5)
	v.SetDefault("engine.curveMaxDelay", 3)

	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// unprefixed variables set by hosting platforms
	_ = v.BindEnv("secretKey", env+"_SECRETKEY", "JWT_SECRET_KEY", "SECRET_KEY")
	_ = v.BindEnv("database.url", env+"_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("rollbarToken", env+"_ROLLBARTOKEN", "ROLLBAR_TOKEN")

	addr := v.GetString("server.address")
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}

	return &Config{
		AppName:      v.GetString("appName"),
		Env:          env,
		Build:        v.GetString("build"),
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Address:                   addr,
			Host:                      v.GetString("server.host"),
			DebugHost:                 v.GetString("server.debugHost"),
			JWTExpirationDelta:        v.GetDuration("server.jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("server.jwtRefreshExpirationDelta"),
			ShutdownTimeout:           v.GetDuration("server.shutdownTimeout"),
			CORSOrigins:               splitList(v.GetString("server.corsOrigins")),
			DisableReqLogs:            v.GetBool("server.disableReqLogs"),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(v.GetString("storage.backend")),
			DataDir: v.GetString("storage.dataDir"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database.url"),
		},
		Engine: EngineConfig{
			CurrentGrade:    v.GetFloat64("engine.currentGrade"),
			StressWindow:    v.GetInt("engine.stressWindow"),
			WorkloadWindow:  v.GetInt("engine.workloadWindow"),
			ProjectionDays:  v.GetInt("engine.projectionDays"),
			BlocksPerHour:   v.GetInt("engine.blocksPerHour"),
			CrunchThreshold: v.GetFloat64("engine.crunchThreshold"),
			CurveMaxDelay:   v.GetInt("engine.curveMaxDelay"),
		},
	}
}

// Validate checks that the configuration can be used to start the application.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageFile:
		if c.Storage.DataDir == "" {
			return errors.New("storage.dataDir is required for the file backend")
		}
	case StorageDatabase:
		if _, _, err := c.Database.DriverAndDSN(); err != nil {
			return err
		}
	default:
		return errors.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if !(c.Env == "DEV" || c.Env == "TEST") && (c.SecretKey == "" || c.SecretKey == devSecretKey) {
		return errors.Errorf("a secret key must be set in %s", c.Env)
	}
	if c.Server.JWTExpirationDelta <= 0 {
		return errors.New("server.jwtExpirationDelta must be positive")
	}

	eng := c.Engine
	if eng.StressWindow < 0 || eng.WorkloadWindow < 0 || eng.ProjectionDays < 0 || eng.CurveMaxDelay < 0 {
		return errors.New("engine windows must not be negative")
	}
	if eng.BlocksPerHour < 1 {
		return errors.New("engine.blocksPerHour must be at least 1")
	}
	return nil
}

// DriverAndDSN maps the database URL to a database/sql driver name and data source name.
// sqlite URLs follow the usual convention: sqlite:///relative.db, sqlite:////absolute.db.
func (dc DatabaseConfig) DriverAndDSN() (driver, dsn string, err error) {
	u := strings.TrimSpace(dc.URL)
	switch {
	case strings.HasPrefix(u, "sqlite://"):
		path := strings.TrimPrefix(strings.TrimPrefix(u, "sqlite://"), "/")
		if path == "" {
			return "", "", errors.Errorf("invalid sqlite url %q: missing path", dc.URL)
		}
		return DriverSQLite, path, nil
	case strings.HasPrefix(u, "postgres://"):
		return DriverPostgres, u, nil
	case strings.HasPrefix(u, "postgresql://"):
		return DriverPostgres, "postgres://" + strings.TrimPrefix(u, "postgresql://"), nil
	default:
		return "", "", errors.Errorf("unsupported database url %q", dc.URL)
	}
}

func splitList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
