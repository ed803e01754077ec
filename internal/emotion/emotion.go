// Package emotion 提供角色表现层的纯查表逻辑：从自由文本推断情绪标签，
// 以及把台词/情绪映射到语音片段。
package emotion

import (
	"regexp"
	"strings"
)

// StateChangeMarker 是网络侧下发的"状态切换"情绪标记，
// 命中时每轮至多播放一次专属语音。
const StateChangeMarker = "change"

// 情绪闭集。
const (
	Happy   = "happy"
	Angry   = "angry"
	Sad     = "sad"
	Shy     = "shy"
	Neutral = "neutral"
)

// 关键词规则按声明顺序测试，首个命中者生效，从不做"最优"匹配。
var rules = []struct {
	keys *regexp.Regexp
	emo  string
}{
	{regexp.MustCompile(`开心|高兴|喜欢|爱你|太棒|好耶|耶|帅|可爱|喜欢你`), Happy},
	{regexp.MustCompile(`生气|愤怒|气死|怒|讨厌|别走|滚|闭嘴`), Angry},
	{regexp.MustCompile(`难过|伤心|委屈|悲伤|流泪|哭`), Sad},
	{regexp.MustCompile(`害羞|羞|脸红|尴尬|不要看|嗯…`), Shy},
}

// InferEmotion 从用户文本与当前好感度推断一个情绪标签。
// 文本为空时按好感度分段取默认值；非空且未命中关键词时默认 neutral，
// 仅在极高好感度下轻微偏向 happy，避免低好感度误判为 angry。
func InferEmotion(text string, affection int) string {
	t := strings.TrimSpace(text)
	if t == "" {
		if affection >= 70 {
			return Happy
		}
		if affection <= 20 {
			return Angry
		}
		return Neutral
	}
	for _, rule := range rules {
		if rule.keys.MatchString(t) {
			return rule.emo
		}
	}
	if affection >= 90 {
		return Happy
	}
	return Neutral
}
