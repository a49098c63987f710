package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/esmerado/demographic-analysis-madrid/internal/config"
	"github.com/esmerado/demographic-analysis-madrid/internal/dataset"
	"github.com/esmerado/demographic-analysis-madrid/internal/server"
	"github.com/esmerado/demographic-analysis-madrid/internal/util"
)

var (
	port    = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode = flag.Bool("dev", false, "开发模式")
	dataDir = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	source  = flag.String("dataset", "", "CSV 数据集路径或 http(s) 地址 (覆盖配置文件)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Análisis Demográfico - Comunidad de Madrid")
	fmt.Println("==========================================")

	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		log.Printf("加载配置失败，使用默认配置: %v", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *source != "" {
		cfg.Data.Dataset = *source
		if !dataset.IsRemote(*source) {
			if abs, err := filepath.Abs(*source); err == nil {
				cfg.Data.Dataset = abs
			}
		}
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("初始化服务失败: %v", err)
	}

	addr := cfg.ListenAddr()
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("服务启动中，监听 %s ...\n", addr)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 数据集在后台加载，页面在加载完成前显示等待状态
	go func() {
		rep, err := srv.LoadInitial(context.Background())
		if err != nil {
			log.Printf("数据集加载失败: %v", err)
			return
		}
		log.Printf("数据集已加载: %d 个概念, 用时 %s", rep.Concepts, rep.Duration)
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("正在打开浏览器: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("开发模式: 请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\n正在关闭服务...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("关闭服务失败: %v", err)
	}
}
