package dashboard

import (
	"context"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/swcatalog/internal/catalog"
	"github.com/smileynet/swcatalog/internal/swapi"
)

// containsText is a test alias for strings.Contains.
func containsText(s, sub string) bool {
	return strings.Contains(s, sub)
}

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// execBatch executes a tea.Cmd, handling both single commands and batch
// commands. It returns all resulting messages. Spinner ticks are skipped
// to avoid infinite recursion.
func execBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			if c != nil {
				result := c()
				// Skip spinner ticks to avoid recursion.
				if _, isTick := result.(spinner.TickMsg); !isTick {
					msgs = append(msgs, result)
				}
			}
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// mapFetcher serves canned bodies by URL; unknown URLs fail with 404.
type mapFetcher map[string]string

func (f mapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	body, ok := f[url]
	if !ok {
		return nil, &swapi.StatusError{Code: 404, URL: url}
	}
	return []byte(body), nil
}

const testBase = "https://swapi.test/api"

// galaxy returns a fetcher with one character and two films.
func galaxy() mapFetcher {
	return mapFetcher{
		testBase + "/people": `[{"name":"Luke Skywalker","gender":"male","birth_year":"19BBY","height":"172",` +
			`"films":["https://swapi.test/api/films/1","https://swapi.test/api/films/2"],` +
			`"url":"https://swapi.test/api/people/1"},` +
			`{"name":"Leia Organa","url":"https://swapi.test/api/people/5"}]`,
		testBase + "/films":   `[]`,
		testBase + "/films/1": `{"title":"A New Hope","episode_id":4,"director":"George Lucas","url":"https://swapi.test/api/films/1"}`,
		testBase + "/films/2": `{"title":"The Empire Strikes Back","episode_id":5,"url":"https://swapi.test/api/films/2"}`,
		testBase + "/starships": `{"results":[{"name":"X-wing","starship_class":"Starfighter","url":"https://swapi.test/api/starships/12"}]}`,
	}
}

// newSections builds dashboard sections over f.
func newSections(f catalog.Fetcher) []Section {
	cat := catalog.New(f, testBase, catalog.WithLogger(log.New(io.Discard, "", 0)))
	var out []Section
	for _, s := range cat.Sections() {
		out = append(out, s)
	}
	return out
}

// newSizedModel returns a model over f that has processed a window size.
func newSizedModel(f catalog.Fetcher, w, h int) Model {
	m := NewModel(context.Background(), newSections(f), swapi.KindPeople)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

// send feeds msg to m and returns the updated model and command.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

// drain runs cmd and feeds every resulting message back into m.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range execBatch(t, cmd) {
		m, _ = send(t, m, msg)
	}
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
