package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Polling.IntervalSeconds <= 0 {
		errs = append(errs, "polling.interval_seconds must be > 0")
	}
	if cfg.Classify.NotifyMinScore < 0 || cfg.Classify.NotifyMinScore > 10 {
		errs = append(errs, "classify.notify_min_score must be 0..10")
	}
	if cfg.Classify.CharacterWeight+cfg.Classify.EntryWeight+cfg.Classify.OutsourcingBonus <= 0 {
		errs = append(errs, "classify weights must sum to > 0")
	}

	checkList := func(name string, xs []string) {
		for i, x := range xs {
			if strings.TrimSpace(x) == "" {
				errs = append(errs, fmt.Sprintf("%s[%d] cannot be empty", name, i))
			}
		}
	}
	checkList("classify.character_keywords", cfg.Classify.CharacterKeywords)
	checkList("classify.entry_keywords", cfg.Classify.EntryKeywords)
	checkList("classify.senior_keywords", cfg.Classify.SeniorKeywords)

	for i, r := range cfg.Classify.TitleRules {
		if r.Tag == "" {
			errs = append(errs, fmt.Sprintf("classify.title_rules[%d].tag is required", i))
		}
		if len(r.Any) == 0 {
			errs = append(errs, fmt.Sprintf("classify.title_rules[%d].any must have at least 1 term", i))
		}
	}

	if cfg.SMTP.Enabled {
		if strings.TrimSpace(cfg.SMTP.Host) == "" {
			errs = append(errs, "smtp.host is required when smtp.enabled=true")
		}
		if cfg.SMTP.Port == 0 {
			errs = append(errs, "smtp.port is required when smtp.enabled=true")
		}
	}
	if cfg.Email.Enabled {
		if strings.TrimSpace(cfg.Email.IMAPHost) == "" {
			errs = append(errs, "email.imap_host is required when email.enabled=true")
		}
		if cfg.Email.IMAPPort == 0 {
			errs = append(errs, "email.imap_port is required when email.enabled=true")
		}
		if strings.TrimSpace(cfg.Email.Username) == "" {
			errs = append(errs, "email.username is required when email.enabled=true")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
