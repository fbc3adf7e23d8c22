package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// LearningConfig holds the Q-learning hyperparameters.
type LearningConfig struct {
	Alpha        float64 `mapstructure:"alpha"`
	Gamma        float64 `mapstructure:"gamma"`
	Epsilon      float64 `mapstructure:"epsilon"`
	EpsilonFloor float64 `mapstructure:"epsilon-floor"`
	DecayRate    float64 `mapstructure:"decay-rate"`
}

// RewardConfig holds the environment feedback values.
type RewardConfig struct {
	Critical float64 `mapstructure:"critical"`
	Stable   float64 `mapstructure:"stable"`
	Exit     float64 `mapstructure:"exit"`
	Fire     float64 `mapstructure:"fire"`
	Step     float64 `mapstructure:"step"`
}

// TrainingConfig bounds a training run.
type TrainingConfig struct {
	Episodes  int     `mapstructure:"episodes"`
	Horizon   int     `mapstructure:"horizon"`
	Tolerance float64 `mapstructure:"tolerance"`
}

type Config struct {
	Learning LearningConfig `mapstructure:"learning"`
	Rewards  RewardConfig   `mapstructure:"rewards"`
	Training TrainingConfig `mapstructure:"training"`
}

func Default() *Config {
	return &Config{
		Learning: LearningConfig{
			Alpha:        0.7,
			Gamma:        0.8,
			Epsilon:      1.0,
			EpsilonFloor: 0.1,
			DecayRate:    0.02,
		},
		Rewards: RewardConfig{
			Critical: 10,
			Stable:   8,
			Exit:     5,
			Fire:     -100,
			Step:     -1,
		},
		Training: TrainingConfig{
			Episodes:  1000,
			Horizon:   0,
			Tolerance: 0.1,
		},
	}
}

// FromFile overlays a YAML config file on the defaults. Keys absent from
// the file keep their default values.
func FromFile(path string) (*Config, error) {
	cfg := Default()
	vp := viper.New()
	vp.SetConfigFile(path)
	vp.SetConfigType("yaml")
	if err := vp.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	l := c.Learning
	if l.Alpha < 0 || l.Alpha > 1 {
		return fmt.Errorf("alpha %f outside [0, 1]", l.Alpha)
	}
	if l.Gamma < 0 || l.Gamma > 1 {
		return fmt.Errorf("gamma %f outside [0, 1]", l.Gamma)
	}
	if l.Epsilon < 0 || l.Epsilon > 1 {
		return fmt.Errorf("epsilon %f outside [0, 1]", l.Epsilon)
	}
	if l.EpsilonFloor < 0 || l.EpsilonFloor > l.Epsilon {
		return fmt.Errorf("epsilon floor %f outside [0, %f]", l.EpsilonFloor, l.Epsilon)
	}
	if l.DecayRate < 0 || l.DecayRate >= 1 {
		return fmt.Errorf("decay rate %f outside [0, 1)", l.DecayRate)
	}
	if c.Training.Episodes <= 0 {
		return fmt.Errorf("episodes %d must be positive", c.Training.Episodes)
	}
	if c.Training.Horizon < 0 {
		return fmt.Errorf("horizon %d must not be negative", c.Training.Horizon)
	}
	if c.Training.Tolerance < 0 {
		return fmt.Errorf("tolerance %f must not be negative", c.Training.Tolerance)
	}
	return nil
}
