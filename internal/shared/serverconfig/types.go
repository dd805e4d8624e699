package serverconfig

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	HTTPServer HTTPServerConfig `yaml:"httpserver" mapstructure:"httpserver"`
	GRPCServer GRPCServerConfig `yaml:"grpcserver" mapstructure:"grpcserver"`
	Storage    StorageConfig    `yaml:"storage" mapstructure:"storage"`
	Actor      ActorConfig      `yaml:"actor" mapstructure:"actor"`
	Kingdom    KingdomConfig    `yaml:"kingdom" mapstructure:"kingdom"`
	ExtraMint  ExtraMintConfig  `yaml:"extramint" mapstructure:"extramint"`
	Dev        DevConfig        `yaml:"dev" mapstructure:"dev"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type GRPCServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// StorageConfig 选择快照仓库：memory / mysql / mongodb。
type StorageConfig struct {
	Driver     string        `yaml:"driver" mapstructure:"driver"`
	FlushEvery time.Duration `yaml:"flush_every" mapstructure:"flush_every"`
}

type ActorConfig struct {
	AskTimeout time.Duration `yaml:"ask_timeout" mapstructure:"ask_timeout"`
	// EntropySeed 为空时随机起链。
	EntropySeed string `yaml:"entropy_seed" mapstructure:"entropy_seed"`
}

// KingdomConfig 是创世参数；已有持久化状态时只有 Self/Admin/ExtraMintMinter 生效。
type KingdomConfig struct {
	Self                   common.Address `yaml:"self" mapstructure:"self"`
	Admin                  common.Address `yaml:"admin" mapstructure:"admin"`
	LandBasePrice          Ether          `yaml:"land_base_price" mapstructure:"land_base_price"`
	LandPlotSupply         uint64         `yaml:"land_plot_supply" mapstructure:"land_plot_supply"`
	ReservedLands          uint64         `yaml:"reserved_lands" mapstructure:"reserved_lands"`
	TransferEnabled        bool           `yaml:"transfer_enabled" mapstructure:"transfer_enabled"`
	TransferBelowMaxTier   bool           `yaml:"transfer_below_max_tier" mapstructure:"transfer_below_max_tier"`
	UpgradeStartTime       int64          `yaml:"upgrade_start_time" mapstructure:"upgrade_start_time"`
	TradingStartTime       int64          `yaml:"trading_start_time" mapstructure:"trading_start_time"`
	Treasury               common.Address `yaml:"treasury" mapstructure:"treasury"`
	TierRoyaltyBps         uint64         `yaml:"tier_royalty_bps" mapstructure:"tier_royalty_bps"`
	DefaultRoyaltyReceiver common.Address `yaml:"default_royalty_receiver" mapstructure:"default_royalty_receiver"`
	DefaultRoyaltyBps      uint64         `yaml:"default_royalty_bps" mapstructure:"default_royalty_bps"`
	Verifier               common.Address `yaml:"verifier" mapstructure:"verifier"`
	BaseURI                string         `yaml:"base_uri" mapstructure:"base_uri"`
	AppearanceVariants     uint32         `yaml:"appearance_variants" mapstructure:"appearance_variants"`
}

type ExtraMintConfig struct {
	Minter common.Address `yaml:"minter" mapstructure:"minter"`
}

type DevConfig struct {
	Enabled   bool  `yaml:"enabled" mapstructure:"enabled"`
	FaucetMax Ether `yaml:"faucet_max" mapstructure:"faucet_max"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}
