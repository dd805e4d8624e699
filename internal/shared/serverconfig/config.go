package serverconfig

import (
	"os"

	"LandKingdom/internal/shared/config"

	"github.com/go-viper/mapstructure/v2"
)

// EnvPrefix 形如 LANDKINGDOM_STORAGE_DRIVER 的环境变量覆盖配置文件。
const EnvPrefix = "LANDKINGDOM"

var Conf Config

// OnReload 在配置文件热更新后回调；进程在日志就绪后设置。
var OnReload func(path string, err error)

// Load 按 LANDKINGDOM_CONFIG 或向上查找 configs/conf.yml 加载。
func Load() error {
	return LoadFrom("")
}

func LoadFrom(path string) error {
	err := config.Load(&Conf, config.Options{
		Path:      path,
		EnvPrefix: EnvPrefix,
		Hooks:     []mapstructure.DecodeHookFunc{EtherHookFunc()},
		OnChange: func(p string, err error) {
			if OnReload != nil {
				OnReload(p, err)
			}
		},
	})
	if err != nil {
		return err
	}
	// 环境变量优先；未设置时回填配置里的 jwt_secret。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
	return nil
}
