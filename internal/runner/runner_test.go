package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/llehouerou/uap/internal/app"
	"github.com/llehouerou/uap/internal/config"
	"github.com/llehouerou/uap/internal/player"
	"github.com/llehouerou/uap/internal/resume"
	"github.com/llehouerou/uap/internal/state"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// headless steps the model one frame at a time. After pressAfter frames it
// sends key, unless key is empty.
func headless(key string, pressAfter int) UIFunc {
	return func(m app.Model) (app.Model, error) {
		for frame := 0; ; frame++ {
			if m.Done() || m.Err() != nil {
				return m, nil
			}
			if key != "" && frame == pressAfter {
				m = step(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
			}
			time.Sleep(app.FrameInterval)
			m = step(m, app.FrameMsg(time.Now()))
		}
	}
}

func step(m app.Model, msg tea.Msg) app.Model {
	next, _ := m.Update(msg)
	return next.(app.Model)
}

func newBook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.m4b")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func readResume(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(resume.Path(path))
	require.NoError(t, err)
	return string(data)
}

type failingEngine struct {
	*player.Mock
}

func (failingEngine) LoadFile(string) error {
	return errors.New("no such codec")
}

func TestRun_QuitPersistsPositionAndHistory(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		path := newBook(t)
		engine := player.NewMock("Book", time.Hour)
		engine.SetPosition(42 * time.Second)
		st := state.NewMock()

		err := Run(context.Background(), Options{
			Path:   path,
			Config: config.Default(),
			Engine: engine,
			State:  st,
			RunUI:  headless("q", 30),
		})
		require.NoError(t, err)

		assert.Equal(t, "37", readResume(t, path))
		assert.Equal(t, 1, engine.QuitCalls())
		assert.True(t, engine.Closed())

		last, _ := st.LastFile()
		assert.Equal(t, path, last)
		recent, _ := st.Recent(10)
		require.Len(t, recent, 1)
		assert.Equal(t, "book", recent[0].Title)
		assert.Equal(t, 37*time.Second, recent[0].Position)
	})
}

func TestRun_ResumesFromSavedPosition(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		path := newBook(t)
		require.NoError(t, os.WriteFile(resume.Path(path), []byte("100"), 0o644))
		engine := player.NewMock("Book", time.Hour)

		err := Run(context.Background(), Options{
			Path:   path,
			Engine: engine,
			RunUI:  headless("q", 30),
		})
		require.NoError(t, err)

		assert.Contains(t, engine.Seeks(), player.SeekCall{Offset: 100 * time.Second, Mode: player.SeekAbsolute})
		assert.Equal(t, "95", readResume(t, path))
	})
}

func TestRun_ContextCancelStopsAllLoops(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		path := newBook(t)
		engine := player.NewMock("Book", time.Hour)
		engine.SetPosition(10 * time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		err := Run(ctx, Options{
			Path:   path,
			Engine: engine,
			RunUI:  headless("", 0),
		})
		require.NoError(t, err)
		assert.Equal(t, "5", readResume(t, path))
		assert.True(t, engine.Closed())
	})
}

func TestRun_UIErrorStopsEngine(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		path := newBook(t)
		engine := player.NewMock("Book", time.Hour)
		boom := errors.New("terminal gone")

		err := Run(context.Background(), Options{
			Path:   path,
			Engine: engine,
			RunUI: func(m app.Model) (app.Model, error) {
				return m, boom
			},
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, engine.QuitCalls())
		assert.True(t, engine.Closed())
	})
}

func TestRun_LoadFailureIsFatal(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		path := newBook(t)
		engine := failingEngine{player.NewMock("Book", time.Hour)}

		err := Run(context.Background(), Options{
			Path:   path,
			Engine: engine,
			RunUI:  headless("", 0),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no such codec")
		assert.True(t, engine.Closed())
		_, statErr := os.Stat(resume.Path(path))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestHistoryStore_SubtractsMargin(t *testing.T) {
	path := newBook(t)
	st := state.NewMock()
	h := historyStore{
		resume: resume.Store{Margin: 5 * time.Second},
		state:  st,
	}
	h.info.Title = "Title"

	require.NoError(t, h.Save(path, 3*time.Second))
	assert.Equal(t, "0", readResume(t, path))
	recent, _ := st.Recent(1)
	require.Len(t, recent, 1)
	assert.Equal(t, time.Duration(0), recent[0].Position)
	assert.Equal(t, "Title", recent[0].Title)
}
