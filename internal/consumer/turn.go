package consumer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"yunai-stage-go/internal/emotion"
	"yunai-stage-go/internal/relay"
	"yunai-stage-go/pkg/llm"
)

// Engine 按轮次驱动一次用户输入到界面状态的完整流转。
// 同一时刻只应有一轮在进行，重叠轮次由调用方通过禁用输入来串行化。
type Engine struct {
	client   *RelayClient
	renderer Renderer
	player   Player
	state    *PresentationState
	save     *SaveFile
	wallet   Wallet

	// Char 是当前角色标识，立绘匹配时同角色优先。
	Char    string
	sprites []Sprite
	history []llm.Message

	// EchoDelay 是回显打字机的逐字延迟；FrameInterval 是文本合帧刷新的最小间隔。
	EchoDelay     time.Duration
	FrameInterval time.Duration
	Freechat      bool
}

// NewEngine 创建一个轮次引擎。
func NewEngine(client *RelayClient, renderer Renderer, player Player, state *PresentationState, save *SaveFile) *Engine {
	return &Engine{
		client:        client,
		renderer:      renderer,
		player:        player,
		state:         state,
		save:          save,
		wallet:        Wallet{Coins: DefaultCoins, Inventory: map[string]int{}},
		EchoDelay:     30 * time.Millisecond,
		FrameInterval: 33 * time.Millisecond,
		Freechat:      true,
	}
}

// LoadSprites 从素材目录刷新立绘候选集。立绘不做持久化，每次启动重新计算。
func (e *Engine) LoadSprites(ctx context.Context) {
	e.sprites = e.client.FetchSprites(ctx, e.Char)
}

// State 返回当前表现状态。
func (e *Engine) State() *PresentationState {
	return e.state
}

// Restore 用本地存档恢复金币、背包与好感度。
func (e *Engine) Restore(data SaveData) {
	e.wallet = Wallet{Coins: data.Coins, Inventory: data.Inventory}
	if e.wallet.Inventory == nil {
		e.wallet.Inventory = map[string]int{}
	}
	e.state.Affection = clampAffection(data.Affection)
}

// turnContext 承载单轮生命周期内的记录，轮次结束即丢弃，不跨轮泄漏。
type turnContext struct {
	id                string
	cleared           bool // 首个 token 前清空对话框，且仅一次
	changeVoicePlayed bool
	pending           strings.Builder
	reply             strings.Builder
	lastFlush         time.Time
}

// SendMessage 执行一轮对话：回显 → 等待首个 token → 流式渲染 → 收尾。
// 返回终止事件对应的错误；error 事件与网络中断都视为该轮的终止。
func (e *Engine) SendMessage(ctx context.Context, text string) error {
	turn := &turnContext{id: uuid.NewString()}

	// 回显阶段：用户文本以打字机方式逐字显示，属于本地动画
	e.echo(text)

	// 预判情绪：在网络响应到达前先切一次立绘，降低感知延迟。
	// 网络侧随后下发的情绪信号具有权威性。
	e.applyEmotion(emotion.InferEmotion(text, e.state.Affection))

	err := e.client.Stream(ctx, relay.ChatRequest{
		Message:  text,
		History:  e.history,
		Freechat: e.Freechat,
	}, func(ev relay.StreamEvent) error {
		return e.onEvent(turn, ev)
	})
	if err != nil {
		// 终止：放弃该流，本轮不再产生状态变化
		return err
	}

	reply := turn.reply.String()
	e.history = append(e.history,
		llm.Message{Role: "user", Content: text},
		llm.Message{Role: "assistant", Content: reply},
	)

	// 整句台词命中语音表则播放（change 语音已在 meta 处理中播过的轮次除外）
	if clip := emotion.MatchVoice(reply, ""); clip != "" && !turn.changeVoicePlayed {
		e.player.Play(clip)
	}
	return nil
}

func (e *Engine) onEvent(turn *turnContext, ev relay.StreamEvent) error {
	switch ev.Type {
	case relay.EventToken:
		if !turn.cleared {
			// 首个 token 到达时恰好清空一次回显文本
			turn.cleared = true
			e.state.Dialogue = ""
			e.renderer.RenderDialogue(e.state.Dialogue)
			turn.lastFlush = time.Now()
		}
		turn.pending.WriteString(ev.Data)
		turn.reply.WriteString(ev.Data)
		// 文本应用按帧间隔合并，避免高频小分块压垮渲染
		if time.Since(turn.lastFlush) >= e.FrameInterval {
			e.flush(turn)
		}
	case relay.EventMeta:
		// meta 立即生效，独立于文本刷新节奏
		m, err := ev.DecodeMeta()
		if err != nil {
			return nil
		}
		if m.AffectionDelta != nil {
			e.renderer.RenderAffection(e.state.ApplyAffectionDelta(int(*m.AffectionDelta)))
			e.persist()
		}
		if m.Emotion != "" {
			e.applyEmotion(m.Emotion)
			if m.Emotion == emotion.StateChangeMarker && !turn.changeVoicePlayed {
				turn.changeVoicePlayed = true
				e.player.Play(emotion.MatchVoice("", emotion.StateChangeMarker))
			}
		}
	case relay.EventDone:
		// 收尾：同步冲刷所有未应用的文本
		e.flush(turn)
	case relay.EventError:
		return &TurnError{Message: ev.Data}
	}
	return nil
}

// echo 把用户自己的输入逐字写入对话框。
func (e *Engine) echo(text string) {
	e.state.Dialogue = ""
	for _, r := range text {
		e.state.Dialogue += string(r)
		e.renderer.RenderDialogue(e.state.Dialogue)
		if e.EchoDelay > 0 {
			time.Sleep(e.EchoDelay)
		}
	}
}

// applyEmotion 按情绪切换立绘，同角色的候选优先。
func (e *Engine) applyEmotion(emo string) {
	if url := FindSprite(e.sprites, e.Char, emo); url != "" {
		e.state.SpriteURL = url
		e.renderer.RenderSprite(url)
	}
}

func (e *Engine) flush(turn *turnContext) {
	if turn.pending.Len() == 0 {
		return
	}
	e.state.Dialogue += turn.pending.String()
	turn.pending.Reset()
	turn.lastFlush = time.Now()
	e.renderer.RenderDialogue(e.state.Dialogue)
}

func (e *Engine) persist() {
	if e.save == nil {
		return
	}
	if err := e.save.Save(SaveData{
		Coins:     e.wallet.Coins,
		Inventory: e.wallet.Inventory,
		Affection: e.state.Affection,
	}); err != nil {
		// 本地存档失败不影响本轮渲染
		_ = err
	}
}

// TurnError 表示一轮以 error 终止事件结束。
type TurnError struct {
	Message string
}

func (e *TurnError) Error() string {
	return e.Message
}
