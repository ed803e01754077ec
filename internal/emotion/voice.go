package emotion

import (
	"math/rand/v2"
	"strings"
)

// ChangeVoices 是情绪为 change 时等概率随机播放的固定片段集。
var ChangeVoices = []string{
	"/audio/voice/[yunai]（生气）什么！.mp3",
	"/audio/voice/[yunai]（生气）开什么玩笑.mp3",
}

type voiceEntry struct {
	needle string
	clip   string
}

// 开场台词优先于其他规则匹配。
var openingTable = []voiceEntry{
	{"有点想吃狐狸乌冬了呢", "/audio/voice/[yunai]狐狸乌冬mp3.mp3"},
	{"需要一些穿搭上的建议吗", "/audio/voice/[yunai]如果有穿搭的问题.mp3"},
	{"有事吗", "/audio/voice/[yunai]有事儿吗？.mp3"},
	{"今天想试试什么感觉", "/audio/voice/[yunai]今天是什么心情？.mp3"},
}

// voiceTable 把已知台词映射到语音片段，按子串匹配以容忍标点差异。
// 这是一张封闭查表，未知文本一律解析为无语音。
var voiceTable = []voiceEntry{
	// 自我介绍
	{"自我介绍？好吧，我叫東嘉弥真 御奈。如果你有任何时尚方面的问题想问我，随时欢迎", "/audio/voice/[yunai]自己紹介mp3.mp3"},
	// 送花
	{"呀，这花好香……谢谢你，我会好好珍惜的", "/audio/voice/voice_flower_like.mp3"},
	{"是为我挑的吗？那我就笑一下，嗯。", "/audio/voice/[yunai]为我选的花.mp3"},
	{"今天的心情，果然更好了", "/audio/voice/[yunai]感觉今天会很开心.mp3"},
	// 狐狸乌冬
	{"看起来热腾腾的……要一起吃吗？", "/audio/voice/[yunai]热呼呼的狐狸乌冬.mp3"},
	{"小心烫，你先吹一吹……我也尝一口。", "/audio/voice/[yunai]热呼呼的狐狸乌冬.mp3"},
	{"你知道我喜欢这个口味？还挺会的嘛。", "/audio/voice/[yunai]你知道我喜欢这个味道！mp3.mp3"},
	// 蛋糕
	{"甜甜的……像现在的心情一样", "/audio/voice/[yunai]好甜.mp3"},
	{"不是节日也可以收蛋糕吗？那我就不客气了。", "/audio/voice/[yunai]蛋糕蛋糕！.mp3"},
	{"谢谢，我会分一半给你……一小半", "/audio/voice/[yunai]分你一半蛋糕吧.mp3"},
	// 泡姜
	{"抱歉...我不太习惯这个味道", "/audio/voice/[yunai]不习惯生姜的味道.mp3"},
	{"谢谢你的礼物，但是泡姜我有点苦手", "/audio/voice/[yunai]泡姜苦手.mp3"},
}

// 关系/好感类正向台词统一映射到同一段语音。
var relationshipNeedles = []string{
	"和你关系变好了",
	"关系变好了",
	"喜欢你",
	"喜欢上你",
	"成为朋友",
	"做朋友",
	"我们是朋友",
	"成为了朋友",
	"更亲近",
}

const relationshipClip = "/audio/voice/[yunai]和你说话很开心.mp3"

// MatchVoice 把渲染后的台词和/或显式情绪标签解析为语音片段，无匹配返回空串。
// 情绪为 change 时不看文本，直接在固定片段集中等概率随机取一条。
func MatchVoice(text, emo string) string {
	if strings.ToLower(emo) == "change" {
		return ChangeVoices[rand.IntN(len(ChangeVoices))]
	}

	t := strings.TrimSpace(text)
	if t == "" {
		return ""
	}

	for _, entry := range openingTable {
		if strings.Contains(t, entry.needle) {
			return entry.clip
		}
	}
	for _, needle := range relationshipNeedles {
		if strings.Contains(t, needle) {
			return relationshipClip
		}
	}
	for _, entry := range voiceTable {
		if strings.Contains(t, entry.needle) {
			return entry.clip
		}
	}
	return ""
}
