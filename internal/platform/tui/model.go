package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// footerLines is the space kept below the game screen for help and prompts.
const footerLines = 1

const saveTimeout = 5 * time.Second

// Options configures a play session.
type Options struct {
	Recorder      core.ScoreRecorder // nil disables score saving
	PlayerName    string             // prefilled in the name prompt
	Logger        *log.Logger
	ScreenshotDir string // defaults to ~/.arcade/screenshots
}

// resizer is implemented by games that can follow a terminal resize without
// restarting.
type resizer interface {
	Resize(w, h int)
}

type scene int

const (
	scenePlay scene = iota
	sceneEnd        // game over: name prompt, then restart/quit
)

// Model is the Bubble Tea model for one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	opts       Options
	logger     *log.Logger
	keys       KeyMap
	help       help.Model
	nameInput  textinput.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	scene      scene
	saved      bool // score recorded or skipped for the current game
	status     string
	statusErr  bool
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = "Name: "
	ti.Placeholder = "anonymous"
	ti.CharLimit = 24

	gameCfg := cfg
	gameCfg.ScreenH = max(cfg.ScreenH-footerLines, 0)

	return Model{
		game:       game,
		screen:     core.NewScreen(gameCfg.ScreenW, gameCfg.ScreenH),
		config:     gameCfg,
		opts:       opts,
		logger:     logger,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		nameInput:  ti,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.scene == sceneEnd {
			return m.handleEndKey(msg)
		}
		return m.handlePlayKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	if m.scene == sceneEnd && !m.saved {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handlePlayKey collects actions for the next tick.
func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.setStatus("", false)
	if key.Matches(msg, m.keys.Screenshot) {
		m.screenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleEndKey drives the name prompt and the restart/quit choice.
func (m Model) handleEndKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Screenshot) {
		m.screenshot()
		return m, nil
	}

	if !m.saved {
		switch msg.Type {
		case tea.KeyEnter:
			m.saveScore(strings.TrimSpace(m.nameInput.Value()))
			return m, nil
		case tea.KeyEsc:
			m.saved = true
			m.nameInput.Blur()
			m.setStatus("Score not saved", false)
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Restart):
		return m.restart()
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-footerLines, 0)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks. Ticking stops once the game is over
// and resumes on restart.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.scene != scenePlay {
		return m, nil
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		m.logger.Info("game over", "game", m.game.ID(), "score", m.gameState.Score)
		return m, m.enterEnd()
	}
	return m, tickCmd(m.config.TickRate)
}

// enterEnd switches to the end scene. Without a recorder or a game that can
// finalize its score there is nothing to prompt for.
func (m *Model) enterEnd() tea.Cmd {
	m.scene = sceneEnd
	m.status = ""
	m.statusErr = false

	if _, ok := m.game.(registry.ScoreFinalizer); !ok || m.opts.Recorder == nil {
		m.saved = true
		return nil
	}

	m.saved = false
	m.nameInput.SetValue(m.opts.PlayerName)
	m.nameInput.CursorEnd()
	return m.nameInput.Focus()
}

// saveScore finalizes the game under name. A failed save keeps the prompt
// open so the player can retry.
func (m *Model) saveScore(name string) {
	fin, ok := m.game.(registry.ScoreFinalizer)
	if !ok {
		m.saved = true
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	rec, err := fin.FinalizeScore(ctx, name, m.opts.Recorder)
	if err != nil {
		m.logger.Error("cannot save score", "error", err)
		m.setStatus(fmt.Sprintf("Save failed: %v", err), true)
		return
	}

	m.logger.Info("score saved", "name", rec.Name, "score", rec.Score, "session", rec.SessionID)
	m.saved = true
	m.opts.PlayerName = name
	m.nameInput.Blur()
	m.setStatus(fmt.Sprintf("Saved %d for %s", rec.Score, displayName(rec.Name)), false)
}

// restart asks the game to start over and resumes ticking.
func (m Model) restart() (tea.Model, tea.Cmd) {
	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	m.gameState = m.game.Step(in).State
	if m.gameState.GameOver {
		return m, nil
	}

	m.scene = scenePlay
	m.saved = false
	m.setStatus("", false)
	m.inputFrame.Clear()
	m.logger.Info("game restarted", "game", m.game.ID())
	return m, tickCmd(m.config.TickRate)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// screenshot saves the current screen as plain text.
func (m *Model) screenshot() {
	path, err := m.saveScreenshot()
	if err != nil {
		m.logger.Error("cannot save screenshot", "error", err)
		m.setStatus(fmt.Sprintf("Screenshot failed: %v", err), true)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.setStatus("Screenshot saved to "+path, false)
}

func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot find home directory: %w", err)
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create %s: %w", dir, err)
	}

	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.footer()
}

func (m Model) footer() string {
	status := m.status
	if status != "" {
		if m.statusErr {
			status = errorStyle.Render(status)
		} else {
			status = promptStyle.Render(status)
		}
	}

	switch {
	case m.scene == sceneEnd && !m.saved:
		line := m.nameInput.View() + helpStyle.Render("  enter save · esc skip")
		if status != "" {
			line += "  " + status
		}
		return line
	case m.scene == sceneEnd:
		return status + helpStyle.Render("  r restart · q quit")
	case status != "":
		return status
	default:
		return helpStyle.Render(m.help.View(m.keys))
	}
}

func displayName(name string) string {
	if name == "" {
		return "anonymous"
	}
	return name
}

// Run starts the Bubble Tea program for game and blocks until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
