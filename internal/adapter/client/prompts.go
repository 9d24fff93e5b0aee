package client

import (
	"bytes"
	"fmt"
	"nenmatch/internal/domain/entity"
	"strings"
	"text/template"
)

var quizSystemTmpl = template.Must(template.New("quiz").Parse(`あなたはサッカーと心理学に詳しい出題者です。
サッカー観戦者向けの性格診断クイズを{{.Questions}}問作り、各問に{{.Choices}}つの選択肢を付けてください。

- 質問文と選択肢は日本語で書くこと
- 各選択肢には、その回答が示す念系統（{{.Categories}}）を1つ付けること
- 問ごとに切り口を変え、似た質問を繰り返さないこと
- 今回は次のテーマを軸に発想すること: {{.Hint}}
- 生成ID {{.Seed}}: 他の生成と重ならない新しい問題セットにすること
`))

const quizUserPrompt = "診断用のクイズを生成してください。前回とは違う、新鮮な質問にしてください。"

var diagnosisSystemTmpl = template.Must(template.New("diagnosis").Parse(`あなたはサッカーと心理学に詳しい診断者です。
念能力の6系統は次の円環で並び、隣り合う系統ほど性質が近い: {{.Categories}}。

- 強化系: 体力と基礎を重んじる。ゴールを守る粘り強さ（GK）
- 変化系: 相手を惑わすトリッキーさ（MF）
- 具現化系: 想像力と創造性でチャンスを生む（MF）
- 特質系: 他にない独自の雰囲気やカリスマ（監督・スタッフ）
- 操作系: 戦術や道具へのこだわりで周囲を動かす（DF）
- 放出系: 遠くへ届けるパスやシュート（FW）

判定すること:
1. primary: 最も当てはまる系統を1つ
2. specialist_score: primary とは独立に、特質系の適性を 0-100 で
3. reason: 判定理由と性格の分析を200〜300文字程度で、肯定的かつ具体的に
{{if .Position}}
対象のポジションは {{.Position}} です。ポジションに対応する系統の特徴との関係にも触れてください。
{{end}}`))

type quizPromptData struct {
	Questions  int
	Choices    int
	Categories string
	Hint       string
	Seed       int64
}

type diagnosisPromptData struct {
	Categories string
	Position   string
}

func categoryList() string {
	return strings.Join(categoryEnum(), "、")
}

func quizSystemPrompt(req entity.QuizRequest) (string, error) {
	var buf bytes.Buffer
	err := quizSystemTmpl.Execute(&buf, quizPromptData{
		Questions:  entity.QuestionsPerQuiz,
		Choices:    entity.ChoicesPerQuestion,
		Categories: categoryList(),
		Hint:       req.Themes.Hint(),
		Seed:       req.Seed,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute quiz prompt template: %w", err)
	}
	return buf.String(), nil
}

// diagnosisPrompts returns the system and user prompts for one diagnosis.
func diagnosisPrompts(in entity.DiagnosisInput) (string, string, error) {
	data := diagnosisPromptData{Categories: categoryList()}

	var user string
	switch {
	case in.Profile != nil:
		data.Position = in.Profile.Position
		user = "選手情報:\n" + formatProfile(*in.Profile)
	case len(in.Answers) > 0:
		user = "質問と回答:\n" + formatAnswers(in.Answers)
	default:
		return "", "", fmt.Errorf("%w: empty diagnosis input", entity.ErrInvalidRequest)
	}

	var buf bytes.Buffer
	if err := diagnosisSystemTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("failed to execute diagnosis prompt template: %w", err)
	}
	return buf.String(), user, nil
}

func formatAnswers(answers []entity.QuestionAnswer) string {
	var b strings.Builder
	for i, qa := range answers {
		texts := make([]string, len(qa.Question.Choices))
		for j, c := range qa.Question.Choices {
			texts[j] = c.Text
		}
		fmt.Fprintf(&b, "質問%d: %s\n", i+1, qa.Question.QuestionText)
		fmt.Fprintf(&b, "選択肢: %s\n", strings.Join(texts, " / "))
		if qa.SelectedChoiceIndex >= 0 && qa.SelectedChoiceIndex < len(qa.Question.Choices) {
			fmt.Fprintf(&b, "→ 選択: %d (%s)\n", qa.SelectedChoiceIndex, qa.SelectedChoice().Text)
		}
	}
	return b.String()
}

func formatProfile(p entity.PlayerProfile) string {
	var b strings.Builder
	line := func(label, value string) {
		if value == "" {
			value = "不明"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, value)
	}

	line("選手名", p.Name)
	line("背番号", fmt.Sprint(p.ID))
	line("ポジション", p.Position)
	line("生年月日", p.Birth)
	if p.Height > 0 || p.Weight > 0 {
		fmt.Fprintf(&b, "身長/体重: %dcm / %dkg\n", p.Height, p.Weight)
	}
	line("出身地", p.From)
	line("ニックネーム", p.Nickname)
	line("サッカーとは", p.WhatIsSoccer)
	line("背番号へのこだわり", p.JerseyNumberCommitment)
	line("試合前のルーティン", p.PregameRitual)
	line("注目してほしいプレー", strings.Join(p.LookAtMyPlay, ", "))
	line("憧れの選手", p.Hero)
	line("性格を一言で", p.PersonalityOneWord)
	line("チャームポイント", p.CharmPoint)
	line("チーム内で一番", p.BestInTeamNonSoccer)
	line("座右の銘", p.Motto)
	line("ファンへのメッセージ", p.MessageToFans)

	if d := p.Description; d != nil && d.Text != "" {
		if d.Title != "" {
			fmt.Fprintf(&b, "特徴（%s）: %s\n", d.Title, d.Text)
		} else {
			fmt.Fprintf(&b, "特徴: %s\n", d.Text)
		}
	}
	if g := p.BestGame; g != nil {
		line("ベストゲーム", g.Title)
		line("理由", g.Reason)
	}
	return strings.TrimSpace(b.String())
}
