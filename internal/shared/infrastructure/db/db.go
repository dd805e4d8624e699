package db

import (
	"net"
	"strconv"
	"time"

	"LandKingdom/internal/shared/logs"
	"LandKingdom/internal/shared/serverconfig"
	"LandKingdom/modules/kit/logx"

	mysqldrv "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQuery = 200 * time.Millisecond

// Open 打开 MySQL 连接池，供 storage.driver=mysql 的快照仓库使用；close 关闭连接池。
func Open(cfg serverconfig.MySQLConfig) (*gorm.DB, func() error, error) {
	gdb, err := gorm.Open(mysql.Open(DSN(cfg)), &gorm.Config{
		Logger: logs.NewGormLogger(logx.NewZapLogger(logs.L()), logger.Warn, slowQuery),
	})
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, nil, err
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}

	logs.Info("open mysql success",
		zap.String("addr", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User))
	return gdb, sqlDB.Close, nil
}

// DSN 生成驱动连接串；字符集缺省 utf8mb4，时间按本地时区解析。
func DSN(cfg serverconfig.MySQLConfig) string {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	c := mysqldrv.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.DBName
	c.ParseTime = true
	c.Loc = time.Local
	c.Params = map[string]string{"charset": charset}
	return c.FormatDSN()
}
