package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type sample struct {
	Storage struct {
		Driver     string        `mapstructure:"driver"`
		FlushEvery time.Duration `mapstructure:"flush_every"`
	} `mapstructure:"storage"`
}

func writeConf(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "conf.yml")
	body := "storage:\n  driver: memory\n  flush_every: 5s\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_解析时长(t *testing.T) {
	var s sample
	if err := Load(&s, Options{Path: writeConf(t)}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Storage.Driver != "memory" || s.Storage.FlushEvery != 5*time.Second {
		t.Fatalf("got %+v", s)
	}
}

func TestLoad_环境变量覆盖(t *testing.T) {
	t.Setenv("LKTEST_STORAGE_DRIVER", "mysql")
	var s sample
	if err := Load(&s, Options{Path: writeConf(t), EnvPrefix: "LKTEST"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Storage.Driver != "mysql" {
		t.Fatalf("期望环境变量覆盖为 mysql，得到 %q", s.Storage.Driver)
	}
}

func TestResolve_路径来自环境变量(t *testing.T) {
	path := writeConf(t)
	t.Setenv(PathEnv, path)
	got, err := Resolve("")
	if err != nil || got != path {
		t.Fatalf("got=%q err=%v", got, err)
	}
}

func TestResolve_文件不存在(t *testing.T) {
	_, err := Resolve(filepath.Join(t.TempDir(), "missing.yml"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("期望 ErrNotFound，得到 %v", err)
	}
}
