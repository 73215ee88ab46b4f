package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/callebjorkell/charlcd/internal/driver"
	"github.com/callebjorkell/charlcd/internal/lcd"
	"github.com/hashicorp/hcl"
	"github.com/juju/errors"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Pins struct {
		Driver   string   `yaml:"driver" hcl:"driver"`
		Chip     string   `yaml:"chip" hcl:"chip"`
		RS       string   `yaml:"rs" hcl:"rs"`
		RW       string   `yaml:"rw" hcl:"rw"`
		E        string   `yaml:"e" hcl:"e"`
		Data     []string `yaml:"data" hcl:"data"`
		Liveness string   `yaml:"liveness" hcl:"liveness"`
	} `yaml:"pins" hcl:"pins"`
	Display struct {
		BusWidth  int    `yaml:"busWidth" hcl:"busWidth"`
		Lines     int    `yaml:"lines" hcl:"lines"`
		Font      string `yaml:"font" hcl:"font"`
		Cursor    bool   `yaml:"cursor" hcl:"cursor"`
		Blink     bool   `yaml:"blink" hcl:"blink"`
		Direction string `yaml:"direction" hcl:"direction"`
		AutoShift bool   `yaml:"autoShift" hcl:"autoShift"`
		StartRow  int    `yaml:"startRow" hcl:"startRow"`
	} `yaml:"display" hcl:"display"`
	Timing struct {
		EnablePulse string `yaml:"enablePulse" hcl:"enablePulse"`
		Settle      string `yaml:"settle" hcl:"settle"`
		PowerOn     string `yaml:"powerOn" hcl:"powerOn"`
		ClearHome   string `yaml:"clearHome" hcl:"clearHome"`
	} `yaml:"timing" hcl:"timing"`
	Period   string   `yaml:"period" hcl:"period"`
	Reinit   string   `yaml:"reinit" hcl:"reinit"`
	Codepage string   `yaml:"codepage" hcl:"codepage"`
	Rows     []string `yaml:"rows" hcl:"rows"`
}

func readConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotate(err, "unable to read configuration")
	}
	return parseConfig(path, content)
}

// parseConfig decodes HCL for .hcl files and YAML otherwise.
func parseConfig(name string, content []byte) (*Config, error) {
	c := &Config{}
	var err error
	if strings.EqualFold(filepath.Ext(name), ".hcl") {
		err = hcl.Unmarshal(content, c)
	} else {
		err = yaml.Unmarshal(content, c)
	}
	if err != nil {
		return nil, errors.Annotatef(err, "parse %s", name)
	}

	if c.Pins.Driver == "" {
		c.Pins.Driver = "dummy"
	}
	if c.Pins.RS == "" {
		return nil, errors.NotValidf("empty register select pin (pins.rs)")
	}
	if c.Pins.E == "" {
		return nil, errors.NotValidf("empty enable pin (pins.e)")
	}
	if c.Pins.RW == "" {
		return nil, errors.NotValidf("empty read/write pin (pins.rw)")
	}
	if c.Display.BusWidth == 0 {
		c.Display.BusWidth = len(c.Pins.Data)
	}
	if c.Display.Lines == 0 {
		c.Display.Lines = 2
	}
	if c.Period == "" {
		c.Period = driver.DefaultPeriod.String()
	}
	if c.Reinit != "" {
		if _, err := cron.ParseStandard(c.Reinit); err != nil {
			return nil, errors.NotValidf("reinit schedule %q", c.Reinit)
		}
	}
	if len(c.Rows) > lcd.RowCount {
		return nil, errors.NotValidf("%d rows (max %d)", len(c.Rows), lcd.RowCount)
	}

	return c, nil
}

func (c *Config) PeriodDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Period)
	if err != nil || d <= 0 {
		return 0, errors.NotValidf("period %q", c.Period)
	}
	return d, nil
}

// PinAssignment maps the pin section onto the controller signals.
func (c *Config) PinAssignment() lcd.PinAssignment {
	return lcd.PinAssignment{
		Data:           c.Pins.Data,
		RegisterSelect: c.Pins.RS,
		ReadWrite:      c.Pins.RW,
		Enable:         c.Pins.E,
		Liveness:       c.Pins.Liveness,
	}
}

// LCD converts the display and timing sections. Range checks are left to
// lcd.New, which rejects anything outside the enumerated options.
func (c *Config) LCD() (lcd.Config, error) {
	cfg := lcd.DefaultConfig()
	if c.Display.BusWidth != int(lcd.Half) && c.Display.BusWidth != int(lcd.Full) {
		return cfg, errors.NotValidf("bus width %d", c.Display.BusWidth)
	}
	cfg.Width = lcd.BusWidth(c.Display.BusWidth)
	cfg.Lines = c.Display.Lines
	cfg.Cursor = c.Display.Cursor
	cfg.Blink = c.Display.Blink
	cfg.AutoShift = c.Display.AutoShift
	cfg.StartRow = c.Display.StartRow

	switch strings.ToLower(c.Display.Font) {
	case "", "a", "5x8":
		cfg.Font = lcd.FontA
	case "b", "5x10":
		cfg.Font = lcd.FontB
	default:
		return cfg, errors.NotValidf("font %q", c.Display.Font)
	}

	switch strings.ToLower(c.Display.Direction) {
	case "", "right", "increment":
		cfg.Direction = lcd.Right
	case "left", "decrement":
		cfg.Direction = lcd.Left
	default:
		return cfg, errors.NotValidf("direction %q", c.Display.Direction)
	}

	timings := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"enablePulse", c.Timing.EnablePulse, &cfg.Timing.EnablePulse},
		{"settle", c.Timing.Settle, &cfg.Timing.Settle},
		{"powerOn", c.Timing.PowerOn, &cfg.Timing.PowerOn},
		{"clearHome", c.Timing.ClearHome, &cfg.Timing.ClearHome},
	}
	for _, t := range timings {
		if t.value == "" {
			continue
		}
		d, err := time.ParseDuration(t.value)
		if err != nil {
			return cfg, errors.NotValidf("timing.%s %q", t.name, t.value)
		}
		*t.dst = d
	}

	return cfg, nil
}
