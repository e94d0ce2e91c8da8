// Package config loads farq.Engine tuning parameters from a YAML file. A
// missing, unreadable or oversized file falls back to the Engine defaults
// rather than failing the caller; the unreadable and oversized cases are
// logged at warn level, a missing file is not logged.
package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/farqproto/farq/farq"
)

// maxConfigSize bounds how large a config file Load will read, guarding
// against an operator accidentally pointing it at the wrong file.
const maxConfigSize = 1 << 20

// Config mirrors the §6.3 configuration surface of an Engine. Pointer
// fields distinguish "unset, use the Engine default" from an explicit zero,
// matching the nodelay/wndsize setters' "negative/zero means unchanged"
// convention already carried by Engine's own option setters.
type Config struct {
	MTU             *int  `yaml:"mtu"`
	Interval        *int  `yaml:"interval"`
	NoDelay         *int  `yaml:"nodelay"`
	FastResend      *int  `yaml:"fastresend"`
	NoCongestion    *bool `yaml:"no_congestion"`
	FastLimit       *int  `yaml:"fastlimit"`
	DeadLink        *int  `yaml:"dead_link"`
	Stream          *bool `yaml:"stream"`
	FastAckConserve *bool `yaml:"fastack_conserve"`
	SndWnd          *int  `yaml:"snd_wnd"`
	RcvWnd          *int  `yaml:"rcv_wnd"`
}

// Load reads and parses a YAML config file. A missing file yields a zero
// Config (every field unset, so Apply changes nothing) rather than an
// error, matching the site config loader's "absent means defaults" stance;
// a present-but-unreadable or oversized file is also treated as absent,
// with the reason logged. A malformed file returns a non-nil error, since
// unlike a missing file that's an operator mistake worth surfacing.
func Load(path string, log *slog.Logger) (Config, error) {
	if log == nil {
		log = slog.Default()
	}
	info, err := os.Stat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("failed to stat farq config", "path", path, "error", err)
		}
		return Config{}, nil
	}
	if info.Size() > maxConfigSize {
		log.Warn("farq config file too large, ignoring", "path", path, "size", info.Size())
		return Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("failed to read farq config, ignoring", "path", path, "error", err)
		return Config{}, nil
	}

	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	log.Info("loaded farq config", "path", path)
	return c, nil
}

// Apply configures e from c, leaving any unset field at e's current value.
func (c Config) Apply(e *farq.Engine) error {
	if c.MTU != nil {
		if err := e.SetMTU(*c.MTU); err != nil {
			return err
		}
	}
	if c.Interval != nil {
		e.SetInterval(*c.Interval)
	}
	nodelay, interval, resend, nocwnd := -1, -1, -1, -1
	if c.NoDelay != nil {
		nodelay = *c.NoDelay
	}
	if c.FastResend != nil {
		resend = *c.FastResend
	}
	if c.NoCongestion != nil {
		if *c.NoCongestion {
			nocwnd = 1
		} else {
			nocwnd = 0
		}
	}
	if nodelay >= 0 || resend >= 0 || nocwnd >= 0 {
		e.SetNoDelay(nodelay, interval, resend, nocwnd)
	}
	if c.FastLimit != nil {
		e.SetFastLimit(*c.FastLimit)
	}
	if c.DeadLink != nil {
		e.SetDeadLink(*c.DeadLink)
	}
	if c.Stream != nil {
		e.SetStream(*c.Stream)
	}
	if c.FastAckConserve != nil {
		e.SetFastAckConserve(*c.FastAckConserve)
	}
	if c.SndWnd != nil || c.RcvWnd != nil {
		snd, rcv := 0, 0
		if c.SndWnd != nil {
			snd = *c.SndWnd
		}
		if c.RcvWnd != nil {
			rcv = *c.RcvWnd
		}
		e.WndSize(snd, rcv)
	}
	return nil
}
