package consumer

import (
	"fmt"
	"math/rand/v2"

	"yunai-stage-go/internal/emotion"
)

// Item 是一件商店道具。AffectionDelta 在使用时生效，Lines 是使用后的台词池。
type Item struct {
	ID             string
	Name           string
	Desc           string
	Price          int
	AffectionDelta int
	Emotion        string
	Lines          []string
}

// ShopCatalog 是固定的商店货架。
var ShopCatalog = []Item{
	{ID: "gift_flowers", Name: "像素花束", Price: 20, AffectionDelta: 5, Emotion: emotion.Happy, Lines: []string{
		"呀，这花好香……谢谢你，我会好好珍惜的。",
		"是为我挑的吗？那我就笑一下，嗯。",
	}},
	{ID: "gift_tea", Name: "抹茶拿铁", Price: 15, AffectionDelta: 3, Emotion: emotion.Shy, Lines: []string{
		"今天的心情，果然更好了。",
	}},
	{ID: "gift_cookie", Name: "曲奇饼干", Price: 10, AffectionDelta: 2},
	{ID: "gift_music", Name: "磁带随身听", Price: 30, AffectionDelta: 6},
	{ID: "gift_udon", Name: "狐狸乌冬", Price: 25, AffectionDelta: 4, Emotion: emotion.Happy, Lines: []string{
		"看起来热腾腾的……要一起吃吗？",
		"小心烫，你先吹一吹……我也尝一口。",
		"你知道我喜欢这个口味？还挺会的嘛。",
	}},
	{ID: "gift_cake", Name: "草莓蛋糕", Price: 18, AffectionDelta: 4, Emotion: emotion.Happy, Lines: []string{
		"甜甜的……像现在的心情一样。",
		"不是节日也可以收蛋糕吗？那我就不客气了。",
		"谢谢，我会分一半给你……一小半。",
	}},
	{ID: "gift_ginger", Name: "泡姜", Price: 8, AffectionDelta: -2, Emotion: emotion.Sad, Lines: []string{
		"抱歉...我不太习惯这个味道。",
		"谢谢你的礼物，但是泡姜我有点苦手。",
	}},
}

// fallbackLines 是道具未声明台词池时使用的固定兜底池。
var fallbackLines = []string{
	"谢谢你，我很喜欢。",
	"今天的心情，果然更好了。",
}

// Wallet 是客户端本地的金币与背包。
type Wallet struct {
	Coins     int
	Inventory map[string]int
}

// FindItem 按 ID 在货架上查找道具。
func FindItem(id string) (Item, bool) {
	for _, it := range ShopCatalog {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Buy 购买一件道具：扣除金币并入包。
func (e *Engine) Buy(itemID string) error {
	item, ok := FindItem(itemID)
	if !ok {
		return fmt.Errorf("unknown item: %s", itemID)
	}
	if e.wallet.Coins < item.Price {
		return fmt.Errorf("not enough coins: have %d, need %d", e.wallet.Coins, item.Price)
	}
	e.wallet.Coins -= item.Price
	if e.wallet.Inventory == nil {
		e.wallet.Inventory = map[string]int{}
	}
	e.wallet.Inventory[itemID]++
	e.persist()
	return nil
}

// UseItem 使用一件背包道具：好感度按固定增量调整（钳制到 [0,100]），
// 按道具声明的情绪切换立绘，从台词池（或兜底池）随机取一句作为新的对话文本，
// 并对该台词做语音查表。纯本地副作用，不产生网络请求。
func (e *Engine) UseItem(itemID string) error {
	item, ok := FindItem(itemID)
	if !ok {
		return fmt.Errorf("unknown item: %s", itemID)
	}
	if e.wallet.Inventory[itemID] <= 0 {
		return fmt.Errorf("item not in inventory: %s", itemID)
	}
	e.wallet.Inventory[itemID]--

	e.renderer.RenderAffection(e.state.ApplyAffectionDelta(item.AffectionDelta))
	if item.Emotion != "" {
		e.applyEmotion(item.Emotion)
	}

	lines := item.Lines
	if len(lines) == 0 {
		lines = fallbackLines
	}
	line := lines[rand.IntN(len(lines))]
	e.state.Dialogue = line
	e.renderer.RenderDialogue(line)

	if clip := emotion.MatchVoice(line, ""); clip != "" {
		e.player.Play(clip)
	}

	e.persist()
	return nil
}

// Wallet 返回当前金币与背包的只读快照。
func (e *Engine) Wallet() Wallet {
	inv := make(map[string]int, len(e.wallet.Inventory))
	for k, v := range e.wallet.Inventory {
		inv[k] = v
	}
	return Wallet{Coins: e.wallet.Coins, Inventory: inv}
}
