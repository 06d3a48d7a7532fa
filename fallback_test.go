package appcat_test

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"

	"github.com/fwojciec/appcat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessWebsite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple name", in: "Bartender", want: "https://www.bartender.com"},
		{name: "strips spaces and punctuation", in: "CleanShot X!", want: "https://www.cleanshotx.com"},
		{name: "keeps digits", in: "Boom 3D", want: "https://www.boom3d.com"},
		{name: "drops non-ascii letters", in: "Café Día", want: "https://www.cafda.com"},
		{name: "empty name", in: "", want: ""},
		{name: "only punctuation", in: "—!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, appcat.GuessWebsite(tt.in))
		})
	}
}

func TestFallbackDescription(t *testing.T) {
	t.Parallel()

	t.Run("picks category by keyword", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, appcat.FallbackDescription("CleanMyMac"), "系统清理")
		assert.Contains(t, appcat.FallbackDescription("PhotoBulk"), "图片编辑")
		assert.Contains(t, appcat.FallbackDescription("Image2icon"), "图片编辑")
		assert.Contains(t, appcat.FallbackDescription("TextSoap"), "文本编辑")
		assert.Contains(t, appcat.FallbackDescription("Taskheat"), "任务管理")
	})

	t.Run("clean wins over later categories", func(t *testing.T) {
		t.Parallel()

		assert.Contains(t, appcat.FallbackDescription("Clean Text"), "系统清理")
	})

	t.Run("uses generic template otherwise", func(t *testing.T) {
		t.Parallel()

		got := appcat.FallbackDescription("Bartender")

		assert.True(t, strings.HasPrefix(got, "Bartender - "))
		assert.Contains(t, got, "专业的Mac应用程序")
	})
}

func TestNameFromSlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Clean My Mac", appcat.NameFromSlug("clean-my-mac"))
	assert.Equal(t, "Boom 3D", appcat.NameFromSlug("boom-3d"))
	assert.Equal(t, "2Do", appcat.NameFromSlug("2do"))
	assert.Equal(t, "Istat Menus", appcat.NameFromSlug("istat-menus"))
}

func TestFallbackRecord(t *testing.T) {
	t.Parallel()

	r := appcat.FallbackRecord(appcat.AppRef{
		Slug: "bartender",
		Name: "Bartender",
		URL:  "https://setapp.com/apps/bartender",
	})

	assert.Equal(t, "Bartender", r.Name)
	assert.Equal(t, "Mac", r.Platforms)
	assert.Equal(t, "https://www.bartender.com", r.OfficialWebsite)
	assert.Equal(t, "https://setapp.com/apps/bartender", r.SourceLink)
	assert.NotEmpty(t, r.Description)
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	t.Run("ratings stay within range", func(t *testing.T) {
		t.Parallel()

		p := appcat.NewPlaceholder(rand.New(rand.NewPCG(1, 2)))

		for i := 0; i < 200; i++ {
			n, err := strconv.Atoi(p.Rating())
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 80)
			assert.LessOrEqual(t, n, 95)
		}
	})

	t.Run("prices come from the option list", func(t *testing.T) {
		t.Parallel()

		p := appcat.NewPlaceholder(rand.New(rand.NewPCG(3, 4)))

		allowed := make(map[string]bool)
		for _, opt := range appcat.PriceOptions {
			allowed[strconv.FormatFloat(opt, 'f', -1, 64)] = true
		}
		for i := 0; i < 200; i++ {
			assert.True(t, allowed[p.Price()])
		}
	})

	t.Run("same seed yields same values", func(t *testing.T) {
		t.Parallel()

		a := appcat.NewPlaceholder(rand.New(rand.NewPCG(7, 7)))
		b := appcat.NewPlaceholder(rand.New(rand.NewPCG(7, 7)))

		assert.Equal(t, a.Rating(), b.Rating())
		assert.Equal(t, a.Price(), b.Price())
	})

	t.Run("fill keeps present values", func(t *testing.T) {
		t.Parallel()

		p := appcat.NewPlaceholder(rand.New(rand.NewPCG(1, 1)))
		r := &appcat.Record{Name: "Yoink", Rating: "4.7"}

		p.Fill(r)

		assert.Equal(t, "4.7", r.Rating)
		assert.NotEmpty(t, r.Price)
	})
}
