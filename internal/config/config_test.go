package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("requires database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatal("expected error without DATABASE_URL")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/league")
		t.Setenv("SCHEDULE_TIMEZONE", "UTC")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.APIPort != 8000 || cfg.FeedChannel != DefaultFeedChannel || cfg.CatchUpInterval != 5*time.Minute {
			t.Errorf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/league")
		t.Setenv("API_PORT", "9090")
		t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
		t.Setenv("CATCHUP_INTERVAL", "45")
		t.Setenv("CONSISTENCY_INTERVAL", "15m")
		t.Setenv("SCHEDULE_TIMEZONE", "Asia/Jakarta")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if cfg.APIPort != 9090 {
			t.Errorf("APIPort = %d", cfg.APIPort)
		}
		if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSAllowOrigins, want) {
			t.Errorf("CORSAllowOrigins = %v", cfg.CORSAllowOrigins)
		}
		if cfg.CatchUpInterval != 45*time.Second || cfg.ConsistencyInterval != 15*time.Minute {
			t.Errorf("durations = %v, %v", cfg.CatchUpInterval, cfg.ConsistencyInterval)
		}
		loc, _ := cfg.Location()
		if loc.String() != "Asia/Jakarta" {
			t.Errorf("location = %v", loc)
		}
	})

	t.Run("bad timezone", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/league")
		t.Setenv("SCHEDULE_TIMEZONE", "Mars/Olympus")
		if _, err := Load(); err == nil {
			t.Fatal("expected timezone error")
		}
	})
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug, "WARN": slog.LevelWarn, "error": slog.LevelError, "": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
