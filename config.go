package reel

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidThreshold is returned by Config.Validate when a threshold or
// interval is out of range.
var ErrInvalidThreshold = errors.New("invalid threshold")

// Config holds the tunable thresholds and timings of the engine. Distances are
// in screen pixels.
type Config struct {
	// TapSlop is the movement past which a session counts as moved and can no
	// longer be a tap.
	TapSlop float64 `yaml:"tap_slop"`
	// ScrollSlop is the movement past which the dominant axis is decided
	// (scroll delegation or vertical intent).
	ScrollSlop float64 `yaml:"scroll_slop"`
	// SwipeMin is the minimum dominant-axis travel for a swipe.
	SwipeMin float64 `yaml:"swipe_min"`
	// PinchCloseDelta is how far the two-contact distance must shrink from
	// its initial value to dismiss the viewer.
	PinchCloseDelta float64 `yaml:"pinch_close_delta"`

	SwipeTapGuard time.Duration `yaml:"swipe_tap_guard"`
	PinchTapGuard time.Duration `yaml:"pinch_tap_guard"`

	AutoplayInterval time.Duration `yaml:"autoplay_interval"`
	AutoplayCooldown time.Duration `yaml:"autoplay_cooldown"`

	TransitionDuration time.Duration `yaml:"transition_duration"`
	ImageCacheTTL      time.Duration `yaml:"image_cache_ttl"`

	// FormFactor selects the preferred image variant.
	FormFactor FormFactor `yaml:"form_factor"`
}

// DefaultConfig returns the reference thresholds.
func DefaultConfig() Config {
	return Config{
		TapSlop:            5,
		ScrollSlop:         10,
		SwipeMin:           50,
		PinchCloseDelta:    50,
		SwipeTapGuard:      150 * time.Millisecond,
		PinchTapGuard:      900 * time.Millisecond,
		AutoplayInterval:   2 * time.Second,
		AutoplayCooldown:   10 * time.Second,
		TransitionDuration: 250 * time.Millisecond,
		ImageCacheTTL:      5 * time.Minute,
		FormFactor:         FormFactorMobile,
	}
}

// LoadConfig reads a YAML config file over DefaultConfig. Keys absent from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data over DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every threshold is positive and that the distance
// thresholds are ordered tap <= scroll <= swipe.
func (c Config) Validate() error {
	if c.TapSlop <= 0 || c.ScrollSlop <= 0 || c.SwipeMin <= 0 || c.PinchCloseDelta <= 0 {
		return fmt.Errorf("%w: distances must be positive", ErrInvalidThreshold)
	}
	if c.TapSlop > c.ScrollSlop {
		return fmt.Errorf("%w: tap_slop %v exceeds scroll_slop %v", ErrInvalidThreshold, c.TapSlop, c.ScrollSlop)
	}
	if c.ScrollSlop > c.SwipeMin {
		return fmt.Errorf("%w: scroll_slop %v exceeds swipe_min %v", ErrInvalidThreshold, c.ScrollSlop, c.SwipeMin)
	}
	if c.SwipeTapGuard < 0 || c.PinchTapGuard < 0 {
		return fmt.Errorf("%w: tap guards must not be negative", ErrInvalidThreshold)
	}
	if c.AutoplayInterval <= 0 || c.AutoplayCooldown <= 0 {
		return fmt.Errorf("%w: autoplay interval and cooldown must be positive", ErrInvalidThreshold)
	}
	if c.TransitionDuration < 0 || c.ImageCacheTTL < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalidThreshold)
	}
	switch c.FormFactor {
	case FormFactorAny, FormFactorMobile, FormFactorDesktop:
	default:
		return fmt.Errorf("%w: unknown form_factor %q", ErrInvalidThreshold, c.FormFactor)
	}
	return nil
}
