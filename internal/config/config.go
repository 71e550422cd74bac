package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths         PathsConfig         `yaml:"paths"`
	Show          ShowConfig          `yaml:"show"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Storage       StorageConfig       `yaml:"storage"`
	Cache         CacheConfig         `yaml:"cache"`
	Providers     ProvidersConfig     `yaml:"providers"`
	Generation    GenerationConfig    `yaml:"generation"`
	Ledger        LedgerConfig        `yaml:"ledger"`
	Media         MediaConfig         `yaml:"media"`
	Output        OutputConfig        `yaml:"output"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type PathsConfig struct {
	RawTranscripts   string `yaml:"raw_transcripts"`
	CleanTranscripts string `yaml:"clean_transcripts"`
	Results          string `yaml:"results"`
	Temp             string `yaml:"temp"`
	Inbox            string `yaml:"inbox"`
}

// ShowConfig is the fixed per-show context fed to transcription and generation.
type ShowConfig struct {
	Description        string   `yaml:"description"`
	EpisodeDescription string   `yaml:"episode_description"`
	SpeakerCount       int      `yaml:"speaker_count"`
	Titles             []string `yaml:"titles"`
	NotableNames       []string `yaml:"notable_names"`
}

type TranscriptionConfig struct {
	APIToken string `yaml:"api_token"`
	Model    string `yaml:"model"`
}

type StorageConfig struct {
	URL    string `yaml:"url"`
	Key    string `yaml:"key"`
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

type CacheConfig struct {
	Backend string `yaml:"backend"` // "filesystem" or "object"
}

type ProvidersConfig struct {
	Anthropic ProviderConfig `yaml:"anthropic"`
	OpenAI    ProviderConfig `yaml:"openai"`
	Gemini    ProviderConfig `yaml:"gemini"`
}

type ProviderConfig struct {
	APIKey        string `yaml:"api_key"`
	BaseURL       string `yaml:"base_url"`
	Model         string `yaml:"model"`
	Label         string `yaml:"label"`
	MaxTokens     int    `yaml:"max_tokens"`
	ContextTokens int    `yaml:"context_tokens"`
}

type GenerationConfig struct {
	Chapters    string   `yaml:"chapters"`
	ShowNotes   string   `yaml:"show_notes"`
	Suggestions []string `yaml:"suggestions"`
	Temperature float64  `yaml:"temperature"`
	Concurrent  bool     `yaml:"concurrent"`
}

type LedgerConfig struct {
	Driver string `yaml:"driver"` // "sqlite", "postgres" or "none"
	DSN    string `yaml:"dsn"`
}

type MediaConfig struct {
	FFmpegPath      string   `yaml:"ffmpeg_path"`
	VideoExtensions []string `yaml:"video_extensions"`
	AudioExtensions []string `yaml:"audio_extensions"`
}

type OutputConfig struct {
	Docx bool `yaml:"docx"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Provider names accepted in generation.*.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
)

// Load reads the YAML file at path, expands ${VAR} references from the
// environment and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(expandEnv(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} references. Bare $ is left alone so free text
// like "$100M" survives.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(os.Getenv(string(envRef.FindSubmatch(ref)[1])))
	})
}

// applyEnv fills empty secrets from the conventional environment variables.
func (c *Config) applyEnv() {
	envDefault(&c.Transcription.APIToken, "REPLICATE_API_TOKEN")
	envDefault(&c.Storage.URL, "SUPABASE_URL")
	envDefault(&c.Storage.Key, "SUPABASE_KEY")
	envDefault(&c.Providers.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	envDefault(&c.Providers.OpenAI.APIKey, "OPENAI_API_KEY")
	envDefault(&c.Providers.Gemini.APIKey, "GEMINI_API_KEY")
	envDefault(&c.Ledger.DSN, "PODCAST_LEDGER_DSN")
}

func envDefault(field *string, name string) {
	if *field == "" {
		*field = os.Getenv(name)
	}
}

func (c *Config) Validate() error {
	if c.Show.SpeakerCount < 0 {
		return fmt.Errorf("show.speaker_count must not be negative")
	}
	if c.Show.Description == "" {
		return fmt.Errorf("show.description is required")
	}

	if c.Paths.RawTranscripts == "" {
		c.Paths.RawTranscripts = "podcasts-raw-transcripts"
	}
	if c.Paths.CleanTranscripts == "" {
		c.Paths.CleanTranscripts = "podcasts-clean-transcripts"
	}
	if c.Paths.Results == "" {
		c.Paths.Results = "podcasts-results"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Show.SpeakerCount == 0 {
		c.Show.SpeakerCount = 2
	}
	if c.Transcription.Model == "" {
		c.Transcription.Model = "thomasmol/whisper-diarization:7e5dafea13d80265ea436e51a310ae5103b9f16e2039f54de4eede3060a61617"
	}
	if c.Storage.Bucket == "" {
		c.Storage.Bucket = "smol-podcaster"
	}
	if c.Storage.Prefix == "" {
		c.Storage.Prefix = "podcasts"
	}

	switch c.Cache.Backend {
	case "":
		c.Cache.Backend = "filesystem"
	case "filesystem", "object":
	default:
		return fmt.Errorf("cache.backend %q is not one of filesystem, object", c.Cache.Backend)
	}

	applyProviderDefaults(&c.Providers.Anthropic, "claude-sonnet-4-5", "Claude", 200000)
	applyProviderDefaults(&c.Providers.OpenAI, "gpt-4o-mini", "GPT", 128000)
	applyProviderDefaults(&c.Providers.Gemini, "gemini-2.5-flash", "Gemini", 1000000)

	if c.Generation.Chapters == "" {
		c.Generation.Chapters = ProviderAnthropic
	}
	if c.Generation.ShowNotes == "" {
		c.Generation.ShowNotes = ProviderAnthropic
	}
	if len(c.Generation.Suggestions) == 0 {
		c.Generation.Suggestions = []string{ProviderOpenAI, ProviderAnthropic}
	}
	if c.Generation.Temperature == 0 {
		c.Generation.Temperature = 0.7
	}
	for _, name := range append([]string{c.Generation.Chapters, c.Generation.ShowNotes}, c.Generation.Suggestions...) {
		if !isProvider(name) {
			return fmt.Errorf("generation provider %q is not one of anthropic, openai, gemini", name)
		}
	}

	switch c.Ledger.Driver {
	case "":
		c.Ledger.Driver = "sqlite"
	case "sqlite", "postgres", "none":
	default:
		return fmt.Errorf("ledger.driver %q is not one of sqlite, postgres, none", c.Ledger.Driver)
	}
	if c.Ledger.Driver == "sqlite" && c.Ledger.DSN == "" {
		c.Ledger.DSN = "podcasts-state.db"
	}
	if c.Ledger.Driver == "postgres" && c.Ledger.DSN == "" {
		return fmt.Errorf("ledger.dsn is required for postgres")
	}

	if c.Media.FFmpegPath == "" {
		c.Media.FFmpegPath = "ffmpeg"
	}
	if len(c.Media.VideoExtensions) == 0 {
		c.Media.VideoExtensions = []string{".mp4", ".mov", ".mkv", ".webm", ".m4v"}
	}
	if len(c.Media.AudioExtensions) == 0 {
		c.Media.AudioExtensions = []string{".mp3", ".m4a", ".wav", ".flac", ".ogg", ".aac"}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

// Provider returns the settings for the named generation provider.
func (c *Config) Provider(name string) (ProviderConfig, bool) {
	switch name {
	case ProviderAnthropic:
		return c.Providers.Anthropic, true
	case ProviderOpenAI:
		return c.Providers.OpenAI, true
	case ProviderGemini:
		return c.Providers.Gemini, true
	}
	return ProviderConfig{}, false
}

// TranscriptionNudge builds the free-text prompt that biases the
// transcription model towards the show's vocabulary.
func (c *Config) TranscriptionNudge() string {
	return fmt.Sprintf("%s\n\nThis episode: %s\n\nHere are some notable names that are likely to be used in the transcript:\n%s\n\n",
		c.Show.Description, c.Show.EpisodeDescription, strings.Join(c.Show.NotableNames, ", "))
}

func applyProviderDefaults(p *ProviderConfig, model, label string, contextTokens int) {
	if p.Model == "" {
		p.Model = model
	}
	if p.Label == "" {
		p.Label = label
	}
	if p.MaxTokens == 0 {
		p.MaxTokens = 3000
	}
	if p.ContextTokens == 0 {
		p.ContextTokens = contextTokens
	}
}

func isProvider(name string) bool {
	switch name {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
		return true
	}
	return false
}
