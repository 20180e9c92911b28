package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"quizmaster/internal/domain"
	"quizmaster/internal/scoring"
)

type Config struct {
	Log struct {
		Env   string `yaml:"env"`
		Level string `yaml:"level"`
	} `yaml:"log"`
	Language  string `yaml:"language"`
	Questions struct {
		// Source is "file", "postgres" or "xlsx".
		Source   string `yaml:"source"`
		Path     string `yaml:"path"`
		Sheet    string `yaml:"sheet"`
		CacheTTL string `yaml:"cache_ttl"`
	} `yaml:"questions"`
	Quiz struct {
		Length       int    `yaml:"length"`
		Category     string `yaml:"category"`
		Difficulty   string `yaml:"difficulty"`
		Timer        string `yaml:"timer"`
		HintsEnabled *bool  `yaml:"hints_enabled"`
		MaxHints     int    `yaml:"max_hints"`
		TopN         int    `yaml:"top_n"`
	} `yaml:"quiz"`
	Scoring struct {
		Easy            int `yaml:"easy"`
		Medium          int `yaml:"medium"`
		Hard            int `yaml:"hard"`
		TimeBonusCap    int `yaml:"time_bonus_cap"`
		StreakThreshold int `yaml:"streak_threshold"`
		StreakBonus     int `yaml:"streak_bonus"`
		HintPenalty     int `yaml:"hint_penalty"`
	} `yaml:"scoring"`
	Storage struct {
		// Backend is "file", "redis" or "memory".
		Backend  string `yaml:"backend"`
		Scores   string `yaml:"scores"`
		Profiles string `yaml:"profiles"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Log.Env = "development"
	cfg.Log.Level = "warn"
	cfg.Language = "en"
	cfg.Questions.Source = "file"
	cfg.Questions.Path = "data/questions.json"
	cfg.Quiz.Length = 10
	cfg.Quiz.Category = domain.AnyValue
	cfg.Quiz.Difficulty = domain.AnyValue
	cfg.Quiz.Timer = "15s"
	cfg.Quiz.TopN = domain.DefaultTopN
	cfg.Storage.Backend = "file"
	cfg.Storage.Scores = "data/high_scores.csv"
	cfg.Storage.Profiles = "data/profiles.json"
	return cfg
}

// Load reads YAML config from path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Settings builds the default quiz settings.
func (c Config) Settings() domain.Settings {
	hints := true
	if c.Quiz.HintsEnabled != nil {
		hints = *c.Quiz.HintsEnabled
	}
	return domain.Settings{
		Category:     orAny(c.Quiz.Category),
		Difficulty:   orAny(c.Quiz.Difficulty),
		Length:       c.Quiz.Length,
		TimeLimit:    Duration(c.Quiz.Timer, 15*time.Second),
		HintsEnabled: hints,
		MaxHints:     c.Quiz.MaxHints,
	}
}

// Rules overlays configured point values on the default rules. Zero values keep the default.
func (c Config) Rules() scoring.Rules {
	r := scoring.DefaultRules()
	s := c.Scoring
	set := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	easy, medium, hard := r.BasePoints[domain.DifficultyEasy], r.BasePoints[domain.DifficultyMedium], r.BasePoints[domain.DifficultyHard]
	set(&easy, s.Easy)
	set(&medium, s.Medium)
	set(&hard, s.Hard)
	r.BasePoints = map[domain.Difficulty]int{
		domain.DifficultyEasy:   easy,
		domain.DifficultyMedium: medium,
		domain.DifficultyHard:   hard,
	}
	set(&r.TimeBonusCap, s.TimeBonusCap)
	set(&r.StreakThreshold, s.StreakThreshold)
	set(&r.StreakBonus, s.StreakBonus)
	set(&r.HintPenalty, s.HintPenalty)
	return r
}

func orAny(v string) string {
	if v == "" {
		return domain.AnyValue
	}
	return v
}

// Duration parses a duration string or returns the fallback if empty or invalid.
// "0" disables a timer.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
