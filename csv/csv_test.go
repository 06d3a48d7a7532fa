package csv_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/appcat"
	"github.com/fwojciec/appcat/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteRecords(t *testing.T) {
	t.Parallel()

	records := []*appcat.Record{
		{
			Name:            "Bartender",
			Platforms:       "Mac",
			Rating:          "91",
			Price:           "0",
			Description:     "整理菜单栏图标",
			OfficialWebsite: "https://www.macbartender.com",
			SourceLink:      "https://setapp.com/apps/bartender",
		},
		{
			Name:        "Paste",
			Platforms:   "Mac,iOS",
			Description: "Clipboard, with \"quotes\"",
		},
	}

	t.Run("writes full layout", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "apps.csv")

		err := csv.NewWriter().WriteRecords(context.Background(), path, appcat.LayoutFull, records)

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(string(data), "\r\n")
		assert.Equal(t, "名称,平台,评分,官方订阅价格,功能描述,官方网站,Setapp链接", lines[0])
		assert.Equal(t, "Bartender,Mac,91,0,整理菜单栏图标,https://www.macbartender.com,https://setapp.com/apps/bartender", lines[1])
		assert.Equal(t, `Paste,"Mac,iOS",,,"Clipboard, with ""quotes""",,`, lines[2])
	})

	t.Run("writes minimal layout", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "apps.csv")

		err := csv.NewWriter().WriteRecords(context.Background(), path, appcat.LayoutMinimal, records[:1])

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t,
			"名称,平台,官方网站,功能描述\r\nBartender,Mac,https://www.macbartender.com,整理菜单栏图标\r\n",
			string(data))
	})

	t.Run("writes header for empty catalog", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "apps.csv")

		err := csv.NewWriter().WriteRecords(context.Background(), path, appcat.LayoutMinimal, nil)

		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "名称,平台,官方网站,功能描述\r\n", string(data))
	})

	t.Run("rejects unknown layout", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "apps.csv")

		err := csv.NewWriter().WriteRecords(context.Background(), path, appcat.Layout("wide"), records)

		assert.Equal(t, appcat.EINVALID, appcat.ErrorCode(err))
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("leaves previous file and no temp file when canceled", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "apps.csv")
		require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := csv.NewWriter().WriteRecords(ctx, path, appcat.LayoutFull, records)

		require.ErrorIs(t, err, context.Canceled)
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "previous", string(data))
		_, statErr := os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestReader_ReadRecords(t *testing.T) {
	t.Parallel()

	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "in.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("reads what the writer wrote", func(t *testing.T) {
		t.Parallel()

		records := []*appcat.Record{
			{Name: "Bartender", Platforms: "Mac", Rating: "91", Price: "0", Description: "整理", OfficialWebsite: "https://a", SourceLink: "https://b"},
			{Name: "Paste", Platforms: "Mac,iOS", Description: "Clipboard, \"quoted\""},
		}
		path := filepath.Join(t.TempDir(), "apps.csv")
		require.NoError(t, csv.NewWriter().WriteRecords(context.Background(), path, appcat.LayoutFull, records))

		got, err := csv.NewReader().ReadRecords(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, records, got)
	})

	t.Run("accepts minimal layout with BOM", func(t *testing.T) {
		t.Parallel()

		path := write(t, "\ufeff名称,平台,官方网站,功能描述\nCraft,Mac,https://craft.do,Docs\n")

		got, err := csv.NewReader().ReadRecords(context.Background(), path)

		require.NoError(t, err)
		assert.Equal(t, []*appcat.Record{{
			Name:            "Craft",
			Platforms:       "Mac",
			OfficialWebsite: "https://craft.do",
			Description:     "Docs",
		}}, got)
	})

	t.Run("accepts English headers in any order", func(t *testing.T) {
		t.Parallel()

		path := write(t, "Description,Name,Price,Extra\nShelf,Yoink,4.99,x\n")

		got, err := csv.NewReader().ReadRecords(context.Background(), path)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Yoink", got[0].Name)
		assert.Equal(t, "Shelf", got[0].Description)
		assert.Equal(t, "4.99", got[0].Price)
	})

	t.Run("skips rows without a name", func(t *testing.T) {
		t.Parallel()

		path := write(t, "名称,功能描述\n,orphan\nDash,Docs\n  ,blank\n")

		got, err := csv.NewReader().ReadRecords(context.Background(), path)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Dash", got[0].Name)
	})

	t.Run("keeps cells verbatim", func(t *testing.T) {
		t.Parallel()

		baseline := write(t, "名称,功能描述\n\"Foo \",\"  Old desc  \"\n")
		refresh := write(t, "名称,功能描述,平台\nFoo,,Mac\n")

		base, err := csv.NewReader().ReadRecords(context.Background(), baseline)
		require.NoError(t, err)
		fresh, err := csv.NewReader().ReadRecords(context.Background(), refresh)
		require.NoError(t, err)

		require.Len(t, base, 1)
		assert.Equal(t, "Foo ", base[0].Name)
		assert.Equal(t, "  Old desc  ", base[0].Description)

		merged := appcat.Reconcile(base, fresh)
		assert.Len(t, merged.Records, 2)
		assert.Zero(t, merged.Overlaps)
		assert.Equal(t, "Foo", merged.Records[0].Name)
		assert.Equal(t, base[0], merged.Records[1])
	})

	t.Run("tolerates short rows", func(t *testing.T) {
		t.Parallel()

		path := write(t, "名称,平台,功能描述\nDash\n")

		got, err := csv.NewReader().ReadRecords(context.Background(), path)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Description)
	})

	t.Run("returns not found for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := csv.NewReader().ReadRecords(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))

		assert.Equal(t, appcat.ENOTFOUND, appcat.ErrorCode(err))
	})

	t.Run("rejects file without name column", func(t *testing.T) {
		t.Parallel()

		path := write(t, "foo,bar\n1,2\n")

		_, err := csv.NewReader().ReadRecords(context.Background(), path)

		assert.Equal(t, appcat.EINVALID, appcat.ErrorCode(err))
	})

	t.Run("rejects empty file", func(t *testing.T) {
		t.Parallel()

		path := write(t, "")

		_, err := csv.NewReader().ReadRecords(context.Background(), path)

		assert.Equal(t, appcat.EINVALID, appcat.ErrorCode(err))
	})
}
