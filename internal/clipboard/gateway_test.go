package clipboard

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/festpack/internal/model"
	"github.com/nhle/festpack/internal/transfer"
)

type fakeClipboard struct {
	text     string
	readErr  error
	writeErr error
	writes   int
}

func (f *fakeClipboard) ReadText(context.Context) (string, error) {
	if f.readErr != nil {
		return "", f.readErr
	}
	return f.text, nil
}

func (f *fakeClipboard) WriteText(_ context.Context, s string) error {
	f.writes++
	if f.writeErr != nil {
		return f.writeErr
	}
	f.text = s
	return nil
}

func testCodec() *transfer.Codec {
	return transfer.NewCodec(transfer.WithClock(func() time.Time {
		return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	}))
}

func items() []model.ChecklistItem {
	return []model.ChecklistItem{
		{ID: "a", Text: "Tickets", Category: model.CategoryDocuments},
		{ID: "b", Text: "Earplugs", Category: model.CategoryMisc, IsCompleted: true},
	}
}

func TestExportWritesClipboard(t *testing.T) {
	clip := &fakeClipboard{}
	fallback := &fakeClipboard{}
	g := NewGateway(testCodec(), clip, fallback)

	ok := g.Export(context.Background(), items(), model.EventInfo{Name: "EDC"})
	require.True(t, ok)
	assert.Contains(t, clip.text, `"name": "EDC"`)
	assert.Contains(t, clip.text, `"miscellaneous"`)
	assert.Equal(t, 0, fallback.writes)
}

func TestExportFallsBack(t *testing.T) {
	clip := &fakeClipboard{writeErr: errors.New("denied")}
	fallback := &fakeClipboard{}
	g := NewGateway(testCodec(), clip, fallback)

	ok := g.Export(context.Background(), items(), model.EventInfo{})
	require.True(t, ok)
	assert.Equal(t, 1, fallback.writes)
	assert.Contains(t, fallback.text, transfer.DefaultChecklistName)
}

func TestExportBothFail(t *testing.T) {
	clip := &fakeClipboard{writeErr: errors.New("denied")}
	fallback := &fakeClipboard{writeErr: errors.New("no tty")}
	g := NewGateway(testCodec(), clip, fallback)

	assert.False(t, g.Export(context.Background(), items(), model.EventInfo{}))

	noFallback := NewGateway(testCodec(), clip, nil)
	assert.False(t, noFallback.Export(context.Background(), items(), model.EventInfo{}))
}

// blockingClipboard hangs until the caller's context is done, like a stuck
// xclip or pbcopy.
type blockingClipboard struct{}

func (blockingClipboard) ReadText(ctx context.Context) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (blockingClipboard) WriteText(ctx context.Context, _ string) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestExportFallsBackAfterClipboardTimeout(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")

	var buf bytes.Buffer
	g := NewGateway(testCodec(), blockingClipboard{}, OSC52Fallback{Out: &buf})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.True(t, g.Export(ctx, items(), model.EventInfo{Name: "EDC"}))
	assert.Contains(t, buf.String(), "\x1b]52;c;")
}

func TestImportOutcomes(t *testing.T) {
	valid, err := testCodec().Export(items(), model.EventInfo{Name: "Mine"})
	require.NoError(t, err)

	blank := "   \n"
	bad := "not json"
	badItem := `{"name":"x","items":[{"name":"Tent"}]}`

	tests := []struct {
		name   string
		clip   *fakeClipboard
		text   *string
		status Status
		kind   transfer.ErrorKind
	}{
		{name: "clipboard valid", clip: &fakeClipboard{text: valid}, status: StatusOK},
		{name: "explicit text wins", clip: &fakeClipboard{text: bad}, text: &valid, status: StatusOK},
		{name: "empty clipboard", clip: &fakeClipboard{}, status: StatusNoData},
		{name: "clipboard read error", clip: &fakeClipboard{readErr: errors.New("denied")}, status: StatusNoData},
		{name: "blank explicit text", clip: &fakeClipboard{text: valid}, text: &blank, status: StatusNoData},
		{name: "malformed", clip: &fakeClipboard{text: bad}, status: StatusInvalid, kind: transfer.KindMalformed},
		{name: "invalid item", clip: &fakeClipboard{}, text: &badItem, status: StatusInvalid, kind: transfer.KindInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGateway(testCodec(), tt.clip, nil)
			out := g.Import(context.Background(), tt.text)

			assert.Equal(t, tt.status, out.Status)
			switch tt.status {
			case StatusOK:
				assert.Nil(t, out.Err)
				assert.Equal(t, "Mine", out.Name)
				require.Len(t, out.Items, 2)
				assert.Equal(t, model.CategoryMisc, out.Items[1].Category)
			case StatusInvalid:
				require.NotNil(t, out.Err)
				assert.Equal(t, tt.kind, out.Err.Kind)
				assert.Nil(t, out.Items)
			default:
				assert.Nil(t, out.Err)
				assert.Nil(t, out.Items)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	g := NewGateway(testCodec(), &fakeClipboard{}, nil)
	path := filepath.Join(t.TempDir(), "checklist.json")

	require.NoError(t, g.ExportFile(path, items(), model.EventInfo{Name: "File"}))

	out, err := g.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, out.Status)
	assert.Equal(t, "File", out.Name)
	assert.Len(t, out.Items, 2)

	_, err = g.ImportFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOSC52FallbackWritesSequence(t *testing.T) {
	t.Setenv("TMUX", "")
	t.Setenv("TERM", "xterm-256color")

	var buf bytes.Buffer
	f := OSC52Fallback{Out: &buf}
	require.NoError(t, f.WriteText(context.Background(), "hello"))
	assert.Contains(t, buf.String(), "\x1b]52;c;aGVsbG8=")

	_, err := f.ReadText(context.Background())
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestOSC52FallbackHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := OSC52Fallback{Out: &buf}.WriteText(ctx, "hello")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}
