package relay

import "strings"

// SelfIntroLine 是自我介绍短路时回放的固定台词。
const SelfIntroLine = "自我介绍？好吧，我叫東嘉弥真 御奈。如果你有任何时尚方面的问题想问我，随时欢迎。"

// FreechatBlockedLine 是自由聊天未开启时回放的固定提示。
const FreechatBlockedLine = "还没有进入自由聊天哦。可以用 freechat: 或 /ai 开头和我说话。"

// 自我介绍触发短语，命中任意一条即短路回放固定台词。
var selfIntroTriggers = []string{
	"自我介绍",
	"介绍一下你自己",
	"介绍一下自己",
	"介绍下自己",
}

// 自由聊天触发前缀，按声明顺序优先匹配；命中后前缀之后的剩余文本即有效提示词。
var freechatPrefixes = []string{
	"freechat:",
	"/ai ",
	"#ai ",
}

// Verdict 是网关策略的评估结果。Canned 非空表示短路：事件序列直接回放，
// 不访问上游。否则 Prompt/Freechat 描述应转发给上游的有效请求。
type Verdict struct {
	Canned     []StreamEvent
	HTTPStatus int // 短路时建议的 HTTP 状态码，0 表示 200
	Prompt     string
	Freechat   bool
}

// EvaluateGate 按固定顺序评估网关策略，每一步都可能短路。
// freechatRequested 表示调用方把本次请求标记为仅限自由聊天。
func EvaluateGate(message string, freechatRequested, freechatDefault, hasCredential bool) Verdict {
	text := strings.TrimSpace(message)

	// 1. 自我介绍覆盖：无论上游是否可用都给出确定性回答
	for _, trigger := range selfIntroTriggers {
		if strings.Contains(text, trigger) {
			return Verdict{Canned: []StreamEvent{
				MetaEvent(Meta{Emotion: EmotionNormal}),
				Token(SelfIntroLine),
				Done(),
			}}
		}
	}

	// 2. 自由聊天触发前缀：首个命中者生效，剩余文本成为有效提示词
	prompt := text
	freechat := freechatDefault
	for _, prefix := range freechatPrefixes {
		if strings.HasPrefix(text, prefix) {
			prompt = strings.TrimSpace(strings.TrimPrefix(text, prefix))
			freechat = true
			break
		}
	}

	// 3. 自由聊天未开启：固定提示短路，不访问上游
	if freechatRequested && !freechat {
		return Verdict{Canned: []StreamEvent{
			MetaEvent(Meta{Note: "freechat_blocked"}),
			Token(FreechatBlockedLine),
			Done(),
		}}
	}

	// 4. 缺少上游凭证：唯一同时以非 2xx 状态暴露的流内错误
	if !hasCredential {
		return Verdict{
			Canned:     []StreamEvent{ErrorEvent("missing upstream credential")},
			HTTPStatus: 500,
		}
	}

	return Verdict{Prompt: prompt, Freechat: freechat}
}
