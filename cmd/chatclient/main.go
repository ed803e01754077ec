// Package main 是终端版事件流客户端：连接中继，按轮次渲染对话、
// 立绘与好感度，并提供本地商店/背包指令。
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"yunai-stage-go/internal/consumer"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "中继服务地址")
	savePath := flag.String("save", "./save.json", "本地存档路径")
	char := flag.String("char", "yunai", "当前角色标识")
	flag.Parse()

	save := consumer.NewSaveFile(*savePath)
	data, err := save.Load()
	if err != nil {
		fmt.Printf("读取存档失败: %v\n", err)
		os.Exit(1)
	}

	state := &consumer.PresentationState{Affection: data.Affection}
	renderer := &terminalRenderer{}
	player := &terminalPlayer{}
	engine := consumer.NewEngine(consumer.NewRelayClient(*server), renderer, player, state, save)
	engine.Char = *char
	engine.Restore(data)
	engine.LoadSprites(context.Background())

	fmt.Printf("已连接 %s（好感度 %d，金币 %d）\n", *server, state.Affection, engine.Wallet().Coins)
	fmt.Println("指令: /shop 查看商店  /buy <id> 购买  /use <id> 使用  /status 状态  exit 退出")

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\n> ")
		input, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				fmt.Println("\n再见！")
				return
			}
			fmt.Printf("读取输入失败: %v\n", err)
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			fmt.Println("再见！")
			return
		}
		if strings.HasPrefix(input, "/") && handleCommand(engine, input) {
			continue
		}

		if err := engine.SendMessage(context.Background(), input); err != nil {
			fmt.Printf("\n[错误] %v\n", err)
		} else {
			fmt.Println()
		}
	}
}

// handleCommand 处理本地游戏指令，返回是否已消费该输入。
func handleCommand(engine *consumer.Engine, input string) bool {
	fields := strings.Fields(input)
	switch fields[0] {
	case "/shop":
		for _, it := range consumer.ShopCatalog {
			fmt.Printf("  %-14s %s  🪙%d  好感%+d\n", it.ID, it.Name, it.Price, it.AffectionDelta)
		}
	case "/buy":
		if len(fields) < 2 {
			fmt.Println("用法: /buy <id>")
			return true
		}
		if err := engine.Buy(fields[1]); err != nil {
			fmt.Printf("购买失败: %v\n", err)
		} else {
			fmt.Printf("已购买，余额 🪙%d\n", engine.Wallet().Coins)
		}
	case "/use":
		if len(fields) < 2 {
			fmt.Println("用法: /use <id>")
			return true
		}
		if err := engine.UseItem(fields[1]); err != nil {
			fmt.Printf("使用失败: %v\n", err)
		}
	case "/status":
		w := engine.Wallet()
		fmt.Printf("好感度 %d  金币 🪙%d\n", engine.State().Affection, w.Coins)
		for id, n := range w.Inventory {
			if n > 0 {
				fmt.Printf("  %s ×%d\n", id, n)
			}
		}
	default:
		return false
	}
	return true
}

// terminalRenderer 把表现状态渲染到终端。对话文本按前缀增量打印，
// 模拟对话框的逐步显示。
type terminalRenderer struct {
	last string
}

func (r *terminalRenderer) RenderDialogue(text string) {
	if strings.HasPrefix(text, r.last) {
		fmt.Print(text[len(r.last):])
	} else {
		fmt.Printf("\n%s", text)
	}
	r.last = text
}

func (r *terminalRenderer) RenderSprite(url string) {
	fmt.Printf("\n[立绘] %s\n", url)
}

func (r *terminalRenderer) RenderAffection(value int) {
	fmt.Printf("\n[好感度] %d\n", value)
}

// terminalPlayer 是语音播放能力的终端实现：仅提示片段地址。
type terminalPlayer struct{}

func (p *terminalPlayer) Play(clip string) bool {
	fmt.Printf("\n[语音] %s\n", clip)
	return true
}
