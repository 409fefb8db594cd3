package cmd

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "ats-interviewer"
)

type Config struct {
	AI      *AIConfig      `mapstructure:"ai"`
	Extract *ExtractConfig `mapstructure:"extract"`
	ATS     *ATSConfig     `mapstructure:"ats"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=gemini"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length" validate:"gte=0"`
}

type ExtractConfig struct {
	ReadTimeout time.Duration `mapstructure:"read-timeout" validate:"gte=0"`
}

type ATSConfig struct {
	// Taxonomy adds or overrides job titles of the built-in skill taxonomy.
	// It is a list because viper splits map keys on dots ("sr. developer").
	Taxonomy []TaxonomyEntry `mapstructure:"taxonomy" validate:"dive"`
}

type TaxonomyEntry struct {
	Title  string   `mapstructure:"title" validate:"required"`
	Skills []string `mapstructure:"skills"`
}

// Skills maps the configured titles to their skills. A repeated title keeps the last entry.
func (c *ATSConfig) Skills() map[string][]string {
	if c == nil || len(c.Taxonomy) == 0 {
		return nil
	}

	skills := make(map[string][]string, len(c.Taxonomy))
	for _, entry := range c.Taxonomy {
		skills[entry.Title] = entry.Skills
	}
	return skills
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "ats-interviewer scores resumes against a job title and runs mock interviews",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	viper.SetDefault("ai.provider", "gemini")
	viper.SetDefault("ai.timeout", "20s")
	viper.SetDefault("extract.read-timeout", "30s")

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ats-interviewer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The default config file is optional, everything works with local fallbacks.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.Extract == nil {
		config.Extract = &ExtractConfig{}
	}
	if config.ATS == nil {
		config.ATS = &ATSConfig{}
	}

	if err := validateConfig(config); err != nil {
		return config, err
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if err := validator.New().Struct(config); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
