package db

import (
	"strings"
	"testing"

	"LandKingdom/internal/shared/serverconfig"
)

func TestDSN_默认字符集(t *testing.T) {
	dsn := DSN(serverconfig.MySQLConfig{
		Host: "127.0.0.1", Port: 3306, User: "root", Password: "pw", DBName: "landkingdom",
	})
	for _, want := range []string{"root:pw@tcp(127.0.0.1:3306)/landkingdom", "charset=utf8mb4", "parseTime=true"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("dsn=%q 缺少 %q", dsn, want)
		}
	}
}
