package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/skyhop/bot"
	"github.com/milk9111/skyhop/prefabs"
	"github.com/milk9111/skyhop/render"
	"github.com/milk9111/skyhop/system"
	"golang.design/x/clipboard"
)

type GameOptions struct {
	Debug bool
	// Bot, when set, replaces the keyboard as the input source.
	Bot     *bot.Bot
	Watcher *prefabs.Watcher
	// Clipboard is true once clipboard.Init succeeded.
	Clipboard bool
}

// Game hosts a driver inside ebiten: Update is the frame tick, Draw paints
// the state the tick produced.
type Game struct {
	driver  *system.Driver
	palette render.Palette
	keys    keyboard
	logger  *log.Logger
	opts    GameOptions

	paused     bool
	gameOver   bool
	quit       bool
	pauseUI    *ebitenui.UI
	gameOverUI *ebitenui.UI
}

func NewGame(driver *system.Driver, logger *log.Logger, opts GameOptions) (*Game, error) {
	pal, err := render.NewPalette(driver.Session().Tuning.Colors)
	if err != nil {
		return nil, err
	}
	g := &Game{
		driver:  driver,
		palette: pal,
		logger:  logger,
		opts:    opts,
	}
	g.pauseUI = NewPauseUI(g)
	g.gameOverUI = NewGameOverUI(g)
	return g, nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	g.pollTuning()
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.copySeed()
	}

	if g.gameOver {
		g.gameOverUI.Update()
		if g.gameOver && (inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace)) {
			g.restart()
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.logger.Info("session reloaded")
		g.restart()
		return nil
	}

	s := g.driver.Session()
	if g.opts.Bot != nil {
		if err := g.opts.Bot.Drive(s); err != nil {
			g.logger.Error("bot stopped, keyboard takes over", "err", err)
			g.opts.Bot = nil
			s.Input.Reset()
		}
	} else {
		g.keys.Poll(&s.Input)
	}

	for _, ev := range g.driver.Step() {
		if ev.Kind == system.EventSessionEnded {
			g.gameOver = true
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.driver.Session()
	render.Draw(render.Screen{Image: screen}, s, g.palette)

	if g.opts.Debug {
		p := s.Player
		ebitenutil.DebugPrint(screen, fmt.Sprintf(
			"FPS: %.1f frame: %d resets: %d\nx=%.1f y=%.1f vy=%.2f airborne=%v support=%d",
			ebiten.ActualFPS(), s.Frame, s.Resets, p.X, p.Y, p.VelocityY, p.Airborne, s.Support,
		))
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
	if g.gameOver {
		g.gameOverUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	area := g.driver.Session().Tuning.PlayArea
	return area.Width, area.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// restart resets the session and picks up tuning that was queued while the
// old session ran.
func (g *Game) restart() {
	g.driver.Restart()
	g.gameOver = false
	g.keys.Reset()
	if g.opts.Bot != nil {
		g.opts.Bot.Reset()
	}

	t := g.driver.Session().Tuning
	if pal, err := render.NewPalette(t.Colors); err == nil {
		g.palette = pal
	}
	ebiten.SetTPS(t.TickRate)
}

func (g *Game) pollTuning() {
	w := g.opts.Watcher
	if w == nil {
		return
	}
	select {
	case path, ok := <-w.Events:
		if !ok {
			g.opts.Watcher = nil
			return
		}
		if err := g.driver.ReloadTuning(path); err != nil {
			g.logger.Warn("ignoring tuning change", "err", err)
		}
	case err, ok := <-w.Errors:
		if ok {
			g.logger.Warn("tuning watcher", "err", err)
		}
	default:
	}
}

func (g *Game) copySeed() {
	seed := g.driver.Session().Seed
	if !g.opts.Clipboard {
		g.logger.Warn("clipboard unavailable", "seed", seed)
		return
	}
	clipboard.Write(clipboard.FmtText, []byte(strconv.FormatInt(seed, 10)))
	g.logger.Info("seed copied to clipboard", "seed", seed)
}

func (g *Game) panelSize() [2]int {
	area := g.driver.Session().Tuning.PlayArea
	return [2]int{int(area.Width) / 2, int(area.Height) / 4}
}

var _ ebiten.Game = (*Game)(nil)
