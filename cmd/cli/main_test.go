package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadjakorntonsri/affiliate-hub/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/domain"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/core/services"
	"github.com/wadjakorntonsri/affiliate-hub/pkg/ports"
)

const productURL = "https://www.amazon.in/Some-Title/dp/B0FGVQBNSB/ref=xyz?tag=old"

type stubClipboard struct {
	text string
	err  error
	last string
}

func (c *stubClipboard) ReadText(context.Context) (string, error) { return c.text, c.err }

func (c *stubClipboard) WriteText(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.last = text
	return nil
}

func newTestApp(t *testing.T) (*app, *stubClipboard) {
	t.Helper()
	return newTestAppOn(t, memory.NewRepository())
}

func newTestAppOn(t *testing.T, repo *memory.Repository) (*app, *stubClipboard) {
	t.Helper()
	cards := services.NewCardService(repo, "mytag-21")
	require.NoError(t, cards.Load(context.Background()))
	clip := &stubClipboard{}
	return &app{cards: cards, clipboard: clip, in: strings.NewReader("")}, clip
}

func run(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	a, clip := newTestApp(t)

	out, err := run(t, a, "generate", "--copy", productURL)
	require.NoError(t, err)
	assert.Contains(t, out, productURL+"&tag=mytag-21\n")
	assert.Contains(t, out, "canonical: https://www.amazon.in/dp/B0FGVQBNSB/?tag=mytag-21&linkCode=ll1&language=en_IN&ref_=as_li_ss_tl")
	assert.Equal(t, productURL+"&tag=mytag-21", clip.last)

	_, err = run(t, a, "generate", " ")
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestPasteCommand(t *testing.T) {
	a, clip := newTestApp(t)
	clip.text = "https://www.amazon.com/dp/B0AAAAAAAA"

	out, err := run(t, a, "paste", "--add")
	require.NoError(t, err)
	assert.Contains(t, out, "https://www.amazon.com/dp/B0AAAAAAAA?tag=mytag-21")
	assert.Contains(t, out, "Product B0AAAAAAAA")
	assert.Len(t, a.cards.Cards(), 1)

	clip.err = errors.New("denied")
	_, err = run(t, a, "paste")
	assert.ErrorIs(t, err, domain.ErrClipboard)
}

func TestCardCommands(t *testing.T) {
	a, clip := newTestApp(t)

	_, err := run(t, a, "add", productURL)
	require.NoError(t, err)
	card := a.cards.Cards()[0]
	id := strconv.FormatInt(card.ID, 10)

	out, err := run(t, a, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Product B0FGVQBNSB")

	_, err = run(t, a, "edit", id, "--title", "Best deal", "--image", "https://img.test/x.png")
	require.NoError(t, err)
	got, _ := a.cards.Card(card.ID)
	assert.Equal(t, "Best deal", got.Title)
	assert.Equal(t, "https://img.test/x.png", got.Image)

	_, err = run(t, a, "edit", id, "--title", "Renamed")
	require.NoError(t, err)
	got, _ = a.cards.Card(card.ID)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "https://img.test/x.png", got.Image, "image flag not given keeps the image")

	_, err = run(t, a, "edit", id, "--image", "")
	require.NoError(t, err)
	got, _ = a.cards.Card(card.ID)
	assert.Equal(t, domain.PlaceholderImage, got.Image)

	_, err = run(t, a, "copy", id)
	require.NoError(t, err)
	assert.Equal(t, card.Link, clip.last)

	a.in = strings.NewReader("n\n")
	out, err = run(t, a, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Delete this card? [y/N]")
	assert.Contains(t, out, "nothing deleted")
	assert.Len(t, a.cards.Cards(), 1)

	a.in = strings.NewReader("y\n")
	out, err = run(t, a, "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "deleted card "+id)
	assert.Empty(t, a.cards.Cards())

	out, err = run(t, a, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No cards yet")

	_, err = run(t, a, "edit", "nope")
	assert.Error(t, err)
}

func TestStoreIDAndExportImport(t *testing.T) {
	a, _ := newTestApp(t)

	out, err := run(t, a, "store-id", "other-20")
	require.NoError(t, err)
	assert.Equal(t, "other-20\n", out)

	_, err = run(t, a, "add", productURL)
	require.NoError(t, err)

	out, err = run(t, a, "export")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))

	b, _ := newTestApp(t)
	out, err = run(t, b, "import", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "imported 1 cards")
	assert.Equal(t, a.cards.Cards(), b.cards.Cards())

	_, err = run(t, b, "delete", "--yes", strconv.FormatInt(b.cards.Cards()[0].ID, 10))
	require.NoError(t, err)
	assert.Empty(t, b.cards.Cards())
}

func TestImportReplace(t *testing.T) {
	a, _ := newTestApp(t)
	_, err := run(t, a, "add", productURL)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "cards.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":5,"title":"Only","link":"l"}]`), 0o644))

	out, err := run(t, a, "import", "--file", path, "--replace")
	require.NoError(t, err)
	assert.Contains(t, out, "replaced collection with 1 cards")

	cards := a.cards.Cards()
	require.Len(t, cards, 1)
	assert.Equal(t, "Only", cards[0].Title)
	assert.Equal(t, domain.PlaceholderImage, cards[0].Image)
}

func TestEditCardDeletedElsewhere(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	a, _ := newTestAppOn(t, repo)

	_, err := run(t, a, "add", productURL)
	require.NoError(t, err)
	id := a.cards.Cards()[0].ID

	other := services.NewCardService(repo, "mytag-21")
	require.NoError(t, other.Load(ctx))
	removed, err := other.DeleteCard(ctx, id, ports.ConfirmFunc(alwaysYes))
	require.NoError(t, err)
	require.True(t, removed)

	_, err = run(t, a, "edit", strconv.FormatInt(id, 10), "--title", "Too late")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
