package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
)

const (
	defaultRelPath = "configs/conf.yml"
	// PathEnv 指定配置文件路径，优先于向上查找。
	PathEnv = "LANDKINGDOM_CONFIG"
)

var ErrNotFound = errors.New("config file not found")

type Options struct {
	// Path 为空时先读 PathEnv，再从工作目录向上查找 configs/conf.yml。
	Path string
	// EnvPrefix 非空时 PREFIX_SECTION_KEY 形式的环境变量覆盖同名配置项。
	EnvPrefix string
	Hooks     []mapstructure.DecodeHookFunc
	// OnChange 非空时监听文件变更，每次重新解码后回调。
	OnChange func(path string, err error)
}

// Load 解析配置文件到 out（指针）。
func Load(out any, opts Options) error {
	path, err := Resolve(opts.Path)
	if err != nil {
		return err
	}
	return load(path, out, opts)
}

// Resolve 把相对路径定位到工作目录下；空路径按 PathEnv 与向上查找解析。
func Resolve(path string) (string, error) {
	if path == "" {
		path = os.Getenv(PathEnv)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(wd, path)
		}
		if !fileExist(path) {
			return "", errors.Join(ErrNotFound, errors.New(path))
		}
		return path, nil
	}
	for dir := wd; ; {
		candidate := filepath.Join(dir, defaultRelPath)
		if fileExist(candidate) {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Join(ErrNotFound, errors.New("searched "+defaultRelPath+" upward from "+wd))
		}
		dir = parent
	}
}

func fileExist(name string) bool {
	st, err := os.Stat(name)
	return err == nil && !st.IsDir()
}
