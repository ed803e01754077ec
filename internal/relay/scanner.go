package relay

import (
	"strings"
	"unicode"
)

// 允许出现在情绪标签中的取值。
const (
	EmotionNormal = "normal"
	EmotionChange = "change"
)

type scannerState int

const (
	stateScanning scannerState = iota
	stateInTag
)

// tagScanner 逐字符扫描回复开头的情绪标签，形如 (word) 或 （word）。
// 状态在多次 Feed 之间保留，标签被网络分块截断也能正确识别。
// 每个转码会话持有独立实例，不跨请求共享。
type tagScanner struct {
	state   scannerState
	visible bool // 是否已输出过非空白可见字符
	open    rune // 本次标签的开括号，用于未闭合时原样回放
	tag     strings.Builder
}

func newTagScanner() *tagScanner {
	return &tagScanner{}
}

// Feed 处理一段增量文本，返回应透传的可见文本与本次检测到的情绪标签序列。
// 一旦可见输出开始，括号内容按普通文本处理。
func (s *tagScanner) Feed(chunk string) (string, []string) {
	var out strings.Builder
	var emotions []string

	for _, r := range chunk {
		switch s.state {
		case stateScanning:
			if !s.visible && (r == '(' || r == '（') {
				s.state = stateInTag
				s.open = r
				s.tag.Reset()
				continue
			}
			out.WriteRune(r)
			if !unicode.IsSpace(r) {
				s.visible = true
			}
		case stateInTag:
			if r == ')' || r == '）' {
				body := s.tag.String()
				s.state = stateScanning
				if emo, ok := normalizeTag(body); ok {
					emotions = append(emotions, emo)
				} else {
					// 不在允许列表中的括号内容不是标签，按普通文本回放
					out.WriteString(string(s.open) + body + string(r))
					s.visible = true
				}
				continue
			}
			s.tag.WriteRune(r)
		}
	}
	return out.String(), emotions
}

// Flush 返回流结束时仍滞留在未闭合标签里的文本。
func (s *tagScanner) Flush() string {
	if s.state != stateInTag {
		return ""
	}
	pending := string(s.open) + s.tag.String()
	s.state = stateScanning
	s.tag.Reset()
	return pending
}

// normalizeTag 将标签体规整后与允许列表比对。支持可选的 emotion:/emotion= 前缀。
func normalizeTag(body string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(body))
	t = strings.TrimPrefix(t, "emotion:")
	t = strings.TrimPrefix(t, "emotion=")
	t = strings.TrimSpace(t)
	if t == EmotionNormal || t == EmotionChange {
		return t, true
	}
	return "", false
}
