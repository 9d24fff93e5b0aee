package usecase

import (
	"math/rand"
	randv2 "math/rand/v2"
	"nenmatch/internal/domain/entity"
)

// Seeds drawn for requests without one fall in [1, MaxSeed].
const MaxSeed = 1_000_000

// DefaultThemeCount is how many themes are drawn per quiz.
const DefaultThemeCount = 6

// DefaultThemeCatalog is the fan-perspective theme list used to vary quizzes.
var DefaultThemeCatalog = []string{
	"試合観戦の楽しみ方",
	"好きな選手のタイプ",
	"応援スタイル",
	"試合の見どころ",
	"サッカーの魅力",
	"チーム選びの基準",
	"観戦時の感情",
	"サッカー文化への関わり方",
	"理想のプレースタイル",
	"サッカーから学ぶこと",
	"日常生活での価値観",
	"人間関係の築き方",
}

// ResolveSeed returns *seed, or a fresh uniform draw when seed is nil.
func ResolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return randv2.Int64N(MaxSeed) + 1
}

// SelectThemes draws count distinct themes from catalog in draw order.
// The same seed, catalog and count always give the same selection. count is
// clamped to the catalog size; catalog itself is left untouched.
func SelectThemes(seed *int64, catalog []string, count int) entity.ThemeSelection {
	resolved := ResolveSeed(seed)
	count = max(0, min(count, len(catalog)))

	rng := rand.New(rand.NewSource(resolved))
	order := rng.Perm(len(catalog))

	themes := make([]string, 0, count)
	for _, idx := range order[:count] {
		themes = append(themes, catalog[idx])
	}
	return entity.ThemeSelection{Seed: resolved, Themes: themes}
}
