package config

import (
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// mu 串行化热更新时的重新解码。
var mu sync.Mutex

func load(path string, out any, opts Options) error {
	v := viper.New()
	v.SetConfigFile(path)
	if opts.EnvPrefix != "" {
		v.SetEnvPrefix(opts.EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	if err := v.ReadInConfig(); err != nil {
		return err
	}

	hooks := append([]mapstructure.DecodeHookFunc{
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	}, opts.Hooks...)
	decode := func() error {
		mu.Lock()
		defer mu.Unlock()
		return v.Unmarshal(out, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(hooks...)))
	}
	if err := decode(); err != nil {
		return err
	}

	if opts.OnChange != nil {
		v.OnConfigChange(func(e fsnotify.Event) {
			opts.OnChange(e.Name, decode())
		})
		v.WatchConfig()
	}
	return nil
}
