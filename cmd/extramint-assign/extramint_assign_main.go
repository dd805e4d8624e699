package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"LandKingdom/internal/extramint/assign"
	"LandKingdom/internal/shared/logs"
	"LandKingdom/internal/shared/security"
	"LandKingdom/internal/shared/serverconfig"

	"go.uber.org/zap"
)

func main() {
	ownersPath := flag.String("owners", "", "地块持有快照 JSON：[{address, ids}]")
	depositsPath := flag.String("deposits", "", "押金名单 JSON：[{address, slots}]")
	api := flag.String("api", "http://127.0.0.1:8080", "王国 HTTP 地址")
	token := flag.String("token", "", "管理员令牌；为空时用配置里的 jwt_secret 为 kingdom.admin 签发")
	endTime := flag.Int64("end-time", 0, "额外铸造截止时间（unix 秒），0 表示不设置")
	out := flag.String("out", "", "合并结果写出的 JSON 路径")
	dryRun := flag.Bool("dry-run", false, "只合并并打印，不调用接口")
	flag.Parse()

	if err := serverconfig.Load(); err != nil {
		panic(err)
	}
	if err := logs.Init("extramint-assign", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()

	var owners []assign.TokenOwner
	var deposits []assign.Deposit
	if err := assign.LoadJSON(*ownersPath, &owners); err != nil {
		logs.Fatal("load owners failed", zap.Error(err))
	}
	if err := assign.LoadJSON(*depositsPath, &deposits); err != nil {
		logs.Fatal("load deposits failed", zap.Error(err))
	}

	entries := assign.Merge(owners, deposits)
	total := assign.Total(entries)
	logs.Info("名单合并完成", zap.Int("users", len(entries)), zap.Uint64("totalSlots", total))

	if *out != "" {
		raw, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			logs.Fatal("encode entries failed", zap.Error(err))
		}
		if err := os.WriteFile(*out, raw, 0o644); err != nil {
			logs.Fatal("write entries failed", zap.Error(err))
		}
	}
	if *dryRun {
		return
	}

	if *token == "" {
		t, err := security.Award(serverconfig.Conf.Kingdom.Admin)
		if err != nil {
			logs.Fatal("award admin token failed", zap.Error(err))
		}
		*token = t
	}
	client := assign.NewClient(*api, *token)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for i, batch := range assign.Batches(entries, assign.BatchSize) {
		users, slots := assign.Split(batch)
		from := i * assign.BatchSize
		logs.Info("分配名额", zap.Int("from", from), zap.Int("to", from+len(batch)-1))
		if err := client.AssignSlots(ctx, users, slots); err != nil {
			logs.Fatal("assign slots failed", zap.Error(err), zap.Int("batch", i))
		}
	}
	if err := client.SetTotalSupply(ctx, total); err != nil {
		logs.Fatal("set total supply failed", zap.Error(err))
	}
	if *endTime > 0 {
		if err := client.SetMintEndTime(ctx, *endTime); err != nil {
			logs.Fatal("set mint end time failed", zap.Error(err))
		}
	}
	if err := client.SetMintEnabled(ctx, true); err != nil {
		logs.Fatal("enable extra mint failed", zap.Error(err))
	}
	logs.Info("额外铸造已开启", zap.Uint64("totalSupply", total))
}
