package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the tunable interview parameters, read from a YAML file so
// they can change without a rebuild. Every field has a default; a missing
// file means "all defaults".
type Settings struct {
	Interview InterviewSettings `yaml:"interview"`
	Session   SessionSettings   `yaml:"session"`
}

type InterviewSettings struct {
	InitialQuestions  int      `yaml:"initial_questions"`
	DeadlineSeconds   int      `yaml:"deadline_seconds"`
	FallbackQuestions []string `yaml:"fallback_questions"`
}

type SessionSettings struct {
	TTLSeconds           int `yaml:"ttl_seconds"`
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds"`
}

// DefaultSettings returns the built-in interview parameters: a five-question
// seed, a ten-minute budget, and a minimal fallback set so a session always
// starts non-empty.
func DefaultSettings() Settings {
	return Settings{
		Interview: InterviewSettings{
			InitialQuestions: 5,
			DeadlineSeconds:  600,
			FallbackQuestions: []string{
				"Tell me about your most relevant project for this role.",
				"Which part of the JD best matches your skillset, and why?",
			},
		},
		Session: SessionSettings{
			TTLSeconds:           3600,
			SweepIntervalSeconds: 300,
		},
	}
}

// LoadSettings reads the settings file at path. A missing file is not an
// error; malformed YAML is.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("reading settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parsing settings: %w", err)
	}

	settings.fillDefaults()
	return settings, nil
}

// fillDefaults backfills zero values so a partial file still yields a usable
// configuration.
func (s *Settings) fillDefaults() {
	def := DefaultSettings()

	if s.Interview.InitialQuestions <= 0 {
		s.Interview.InitialQuestions = def.Interview.InitialQuestions
	}
	if s.Interview.DeadlineSeconds <= 0 {
		s.Interview.DeadlineSeconds = def.Interview.DeadlineSeconds
	}
	if len(s.Interview.FallbackQuestions) == 0 {
		s.Interview.FallbackQuestions = def.Interview.FallbackQuestions
	}
	if s.Session.TTLSeconds <= 0 {
		s.Session.TTLSeconds = def.Session.TTLSeconds
	}
	if s.Session.SweepIntervalSeconds <= 0 {
		s.Session.SweepIntervalSeconds = def.Session.SweepIntervalSeconds
	}
}

func (s Settings) Deadline() time.Duration {
	return time.Duration(s.Interview.DeadlineSeconds) * time.Second
}

func (s Settings) SessionTTL() time.Duration {
	return time.Duration(s.Session.TTLSeconds) * time.Second
}

func (s Settings) SweepInterval() time.Duration {
	return time.Duration(s.Session.SweepIntervalSeconds) * time.Second
}
