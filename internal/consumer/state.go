// Package consumer 实现事件流的客户端消费方：按轮次驱动对话渲染、
// 立绘/语音切换与好感度状态，并承载本地礼物经济。
package consumer

import "strings"

// Renderer 是对话渲染协作方的能力接口，实现方只负责呈现，不持有状态。
type Renderer interface {
	RenderDialogue(text string)
	RenderSprite(url string)
	RenderAffection(value int)
}

// Player 是语音播放的能力接口。播放失败（如自动播放策略拦截）
// 以 false 返回，不作为异常处理。
type Player interface {
	Play(clip string) bool
}

// PresentationState 是客户端持有的当前表现状态，仅由轮次处理逻辑修改。
type PresentationState struct {
	BackgroundURL string
	SpriteURL     string
	AvatarURL     string
	Affection     int
	Dialogue      string
}

// ApplyAffectionDelta 应用一次好感度增量，结果始终钳制在 [0,100]。
func (s *PresentationState) ApplyAffectionDelta(delta int) int {
	s.Affection = clampAffection(s.Affection + delta)
	return s.Affection
}

func clampAffection(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Sprite 描述一张可选立绘。
type Sprite struct {
	URL     string
	Char    string
	Emotion string
}

// FindSprite 在候选立绘中查找情绪匹配（忽略大小写）的条目，
// 同角色的匹配优先于跨角色匹配；无匹配返回空串。
func FindSprite(sprites []Sprite, char, emo string) string {
	want := strings.ToLower(emo)
	cross := ""
	for _, sp := range sprites {
		if strings.ToLower(sp.Emotion) != want {
			continue
		}
		if sp.Char == char {
			return sp.URL
		}
		if cross == "" {
			cross = sp.URL
		}
	}
	return cross
}
