package persist

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/todomvc/internal/model"
	"github.com/Makepad-fr/todomvc/internal/store/memstore"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestEncodeLayout(t *testing.T) {
	items := model.TaskList{
		model.NewItem("buy milk"),
		{ID: "x", Content: "", Completed: true},
		model.NewItem(`call "mom"`),
	}
	b, err := Encode(items)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "tasklist", b)
}

func TestRoundTripPreservesOrderAndFields(t *testing.T) {
	orig := model.TaskList{
		model.NewItem("a"),
		{ID: "b", Content: "b", Completed: true},
		model.NewItem(""),
		{ID: "d", Content: "ünïcode ✔", Completed: true},
	}
	b, err := Encode(orig)
	require.NoError(t, err)

	got, err := Decode(b)
	require.NoError(t, err)
	require.Len(t, got, len(orig))
	for i := range orig {
		assert.Equal(t, orig[i].Content, got[i].Content, "item %d", i)
		assert.Equal(t, orig[i].Completed, got[i].Completed, "item %d", i)
		assert.NotEmpty(t, got[i].ID)
	}
}

func TestEncodeNilIsEmptyArray(t *testing.T) {
	b, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestDecodeRejects(t *testing.T) {
	tests := map[string]string{
		"not json":        `{oops`,
		"object":          `{"content":"x","completed":false}`,
		"missing field":   `[{"content":"x"}]`,
		"wrong type":      `[{"content":"x","completed":"yes"}]`,
		"number content":  `[{"content":1,"completed":false}]`,
		"array of arrays": `[[]]`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFailsSoft(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	kv := memstore.New()
	items := Load(ctx, kv, DefaultKey, logger)
	assert.Empty(t, items)
	assert.NotNil(t, items)

	require.NoError(t, kv.Set(ctx, DefaultKey, []byte(`[{"content":1}]`)))
	items = Load(ctx, kv, DefaultKey, logger)
	assert.Empty(t, items)
	assert.Contains(t, buf.String(), "starting empty")
}

type brokenKV struct{ memstore.Store }

func (*brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }

func TestLoadReadError(t *testing.T) {
	items := Load(context.Background(), &brokenKV{}, DefaultKey, quietLogger())
	assert.Empty(t, items)
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	kv := memstore.New()
	list := model.TaskList{model.NewItem("x"), {ID: "y", Content: "y", Completed: true}}

	require.NoError(t, Save(ctx, kv, "k", list))
	got := Load(ctx, kv, "k", quietLogger())
	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].Content)
	assert.True(t, got[1].Completed)
}

func TestSaveError(t *testing.T) {
	kv := memstore.New()
	kv.SetErr = errors.New("read-only")
	err := Save(context.Background(), kv, "k", model.TaskList{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read-only")
}
