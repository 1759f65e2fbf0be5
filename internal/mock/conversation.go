package mock

import (
	"NewsToChat/internal/domain"
	"NewsToChat/internal/ports"
)

// Generator returns canned dialogues for the fallback article set.
// It is pure: the same id always yields the same dialogue.
type Generator struct{}

var _ ports.DialogueGenerator = Generator{}

// NewGenerator builds the fallback dialogue generator.
func NewGenerator() Generator {
	return Generator{}
}

// Generate looks up the dialogue for id, or the generic placeholder if id is unknown.
func (Generator) Generate(articleID int) domain.Dialogue {
	if d, ok := dialogues[articleID]; ok {
		return clone(d)
	}
	return Placeholder()
}

// Placeholder is the dialogue used for ids without a canned conversation.
func Placeholder() domain.Dialogue {
	return domain.Dialogue{
		Summary: "記事の要約を生成中...",
		Turns: []domain.Turn{
			{Speaker: domain.SpeakerCharacterB, Content: "この記事について教えてください。"},
			{Speaker: domain.SpeakerCharacterA, Content: "バックエンドを起動すると、実際のAI生成会話が表示されるのじゃ。"},
		},
	}
}

// Callers must not be able to mutate the shared table.
func clone(d domain.Dialogue) domain.Dialogue {
	turns := make([]domain.Turn, len(d.Turns))
	copy(turns, d.Turns)
	return domain.Dialogue{Summary: d.Summary, Turns: turns}
}

func a(content string) domain.Turn {
	return domain.Turn{Speaker: domain.SpeakerCharacterA, Content: content}
}

func b(content string) domain.Turn {
	return domain.Turn{Speaker: domain.SpeakerCharacterB, Content: content}
}

var dialogues = map[int]domain.Dialogue{
	0: {
		Summary: "愛媛県が観光活性化のため、デジタル観光案内と体験型ツアーを導入する新施策を発表。",
		Turns: []domain.Turn{
			b("博士、愛媛県で新しい観光の取り組みが始まるそうですね。"),
			a("そうじゃ。デジタル技術を使った観光案内システムや、地元の特産品を活かした体験ツアーを開発するそうじゃ。"),
			b("体験型ツアーって、どんなものがあるんでしょうか？"),
			a("例えば、みかんの収穫体験や、今治タオルの工場見学なんかが考えられるのう。地域の魅力を直接感じられる内容じゃ。"),
			b("持続可能な観光地づくりを目指しているんですね。"),
			a("その通りじゃ。環境に配慮しながら、地域経済も活性化させる。これからの観光のあり方じゃな。"),
		},
	},
	1: {
		Summary: "松山市でIT企業の進出が加速。支援制度と生活環境が評価され、首都圏からの移転が増加。",
		Turns: []domain.Turn{
			b("博士、松山市にIT企業がたくさん来ているんですか？"),
			a("そうなんじゃ。市の支援制度や生活のしやすさが評価されて、東京などから移転する企業が増えておるのじゃ。"),
			b("どうしてIT企業は松山市を選ぶんでしょうか？"),
			a("リモートワークが普及して、必ずしも東京にいなくても仕事ができるようになったからのう。家賃も安いし、自然も豊かじゃ。"),
			b("若い人にとっても良いニュースですね。"),
			a("うむ。市長もデジタル人材の育成に力を入れると言っておる。地元で働ける機会が増えるのは良いことじゃ。"),
		},
	},
	2: {
		Summary: "今治タオルが海外展開を強化。アジア・欧米での需要増加に応え、現地パートナーと協業へ。",
		Turns: []domain.Turn{
			b("今治タオルって海外でも人気なんですか？"),
			a("そうじゃとも。品質の高さが評価されて、アジアや欧米で需要が高まっておるのじゃ。"),
			b("どうしてそんなに品質が良いんですか？"),
			a("今治は良質な水が豊富でな。それに、長年培われた職人の技術が合わさって、柔らかくて吸水性の高いタオルができるのじゃ。"),
			b("日本のものづくりの価値を世界に届けたいそうですね。"),
			a("うむ。現地のパートナー企業と協力して、もっと多くの人に知ってもらおうという計画じゃ。素晴らしいことじゃな。"),
		},
	},
}

// KnownIDs lists the ids with a canned dialogue, in ascending order.
func KnownIDs() []int {
	return []int{0, 1, 2}
}
