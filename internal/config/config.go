package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Rule struct {
	Tag    string   `yaml:"tag"`
	Weight int      `yaml:"weight"`
	Any    []string `yaml:"any"`
}

type Platform struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

type Config struct {
	App struct {
		Port    int    `yaml:"port"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Polling struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"polling"`

	Platforms struct {
		ArtStation Platform `yaml:"artstation"`
		GameJobs   Platform `yaml:"gamejobs"`
		Hitmarker  Platform `yaml:"hitmarker"`
	} `yaml:"platforms"`

	Browser struct {
		Headless     bool `yaml:"headless"`
		DelaySeconds int  `yaml:"delay_seconds"`
		ScrollPasses int  `yaml:"scroll_passes"`
	} `yaml:"browser"`

	Filters struct {
		RemoteOK       bool     `yaml:"remote_ok"`
		LocationsAllow []string `yaml:"locations_allow"`
		LocationsBlock []string `yaml:"locations_block"`
	} `yaml:"filters"`

	Classify struct {
		CharacterKeywords []string `yaml:"character_keywords"`
		RelatedKeywords   []string `yaml:"related_keywords"`
		EntryKeywords     []string `yaml:"entry_keywords"`
		SeniorKeywords    []string `yaml:"senior_keywords"`
		OutsourcingCos    []string `yaml:"outsourcing_companies"`
		CharacterWeight   int      `yaml:"character_weight"`
		EntryWeight       int      `yaml:"entry_weight"`
		OutsourcingBonus  int      `yaml:"outsourcing_bonus"`
		NotifyMinScore    int      `yaml:"notify_min_score"`
		TitleRules        []Rule   `yaml:"title_rules"`
	} `yaml:"classify"`

	SMTP struct {
		Enabled bool   `yaml:"enabled"`
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		User    string `yaml:"user"`
		From    string `yaml:"from"`
	} `yaml:"smtp"`

	Email struct {
		Enabled          bool     `yaml:"enabled"`
		IMAPHost         string   `yaml:"imap_host"`
		IMAPPort         int      `yaml:"imap_port"`
		Username         string   `yaml:"username"`
		Mailbox          string   `yaml:"mailbox"`
		SearchSubjectAny []string `yaml:"search_subject_any"`
		MaxMessages      int      `yaml:"max_messages"`
	} `yaml:"email"`

	Telegram struct {
		Enabled bool   `yaml:"enabled"`
		Token   string `yaml:"token"`
		ChatID  int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv lets .env / environment override the secrets-ish knobs so they
// never have to live in the YAML file.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SMTP_USER"); v != "" {
		cfg.SMTP.User = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
}
