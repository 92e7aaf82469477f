// Package app owns the main loop: it is the single goroutine that
// mutates game state. Command events cross in through the lock-free
// queue; everything else (input, gravity, render, broadcast) happens
// inline at a fixed frame cadence.
package app

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"waitris/audio"
	"waitris/config"
	"waitris/constants"
	"waitris/events"
	"waitris/game"
	"waitris/network"
	"waitris/observer"
	"waitris/replay"
	"waitris/scores"
	"waitris/ui"
)

// App bundles the session's collaborators around one Game.
type App struct {
	cfg    config.Config
	game   *game.Game
	queue  *events.Queue
	screen tcell.Screen
	render *ui.Renderer
	sound  *audio.Manager

	listener *network.Listener
	obs      *observer.Server
	recorder *replay.Recorder

	started  time.Time
	commands int
}

// Run plays one session to completion (quit key or closed screen).
func Run(cfg config.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.HideCursor()

	a := &App{
		cfg:     cfg,
		game:    game.New(),
		queue:   events.NewQueue(),
		screen:  screen,
		render:  ui.NewRenderer(screen),
		sound:   audio.NewManager(),
		started: time.Now(),
	}

	if cfg.Audio {
		if err := a.sound.Initialize(); err != nil {
			// Non-fatal, the game runs silent.
			log.Printf("audio init failed: %v", err)
		}
		defer a.sound.Cleanup()
	}

	a.listener = network.NewListener(cfg.SocketPath, a.queue)
	if err := a.listener.Start(); err != nil {
		return err
	}
	defer a.listener.Stop()

	if cfg.ObserverAddr != "" {
		a.obs = observer.NewServer(cfg.ObserverAddr, log.Default())
		if err := a.obs.Start(); err != nil {
			log.Printf("observer start failed: %v", err)
			a.obs = nil
		} else {
			defer a.obs.Stop()
		}
	}

	if cfg.ReplayPath != "" {
		rec, err := replay.NewRecorder(cfg.ReplayPath)
		if err != nil {
			log.Printf("replay recorder failed: %v", err)
		} else {
			a.recorder = rec
			defer a.recorder.Close()
		}
	}

	a.loop()
	a.recordSession()
	cleanupTmux()
	return nil
}

// loop is the cooperative scheduler: input and
// rendering every frame, gravity on its own wall-clock cadence.
func (a *App) loop() {
	input := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			input <- ev
		}
	}()

	frame := time.NewTicker(a.cfg.Frame())
	defer frame.Stop()

	lastTick := time.Now()
	publishCountdown := 0

	for {
		select {
		case ev := <-input:
			if !a.handleInput(ev) {
				return
			}

		case <-frame.C:
			// Drain command events in arrival order before anything
			// else touches the state.
			for _, ev := range a.queue.Consume() {
				a.handleCommand(ev)
			}

			prevLines := a.game.LinesCleared
			a.game.ProcessEffects()
			if a.game.LinesCleared > prevLines {
				a.sound.PlayClear()
			}

			if time.Since(lastTick) >= a.cfg.Gravity() {
				a.applyLocking(func() { a.game.TickGravity() })
				lastTick = time.Now()
			}

			a.render.Draw(a.game)

			if a.obs != nil {
				if publishCountdown--; publishCountdown <= 0 {
					a.obs.Publish(observer.BuildSnapshot(a.game))
					publishCountdown = constants.ObserverPublishFrames
				}
			}
		}
	}
}

func (a *App) handleCommand(ev events.CommandEvent) {
	if a.recorder != nil {
		if err := a.recorder.Record(ev); err != nil {
			log.Printf("replay record failed: %v", err)
			a.recorder = nil
		}
	}
	prevOver := a.game.GameOver
	switch ev.Type {
	case events.EventStart:
		a.commands++
		a.game.HandleStart(ev.ID, ev.Command)
	case events.EventEnd:
		a.game.HandleEnd(ev.ID, ev.ExitCode)
	}
	if !prevOver && a.game.GameOver {
		a.sound.PlayGameOver()
	}
}

// handleInput applies one player action. Returns false on quit.
func (a *App) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyLeft:
			a.feedback(a.game.MoveCurrent(-1, 0))
		case tcell.KeyRight:
			a.feedback(a.game.MoveCurrent(1, 0))
		case tcell.KeyDown:
			a.feedback(a.game.MoveCurrent(0, 1))
		case tcell.KeyUp:
			a.feedback(a.game.RotateCurrent())
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				a.applyLocking(func() { a.game.HardDrop() })
			}
		}

	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

// feedback buzzes on a rejected action; callers never have to handle
// the rejection otherwise.
func (a *App) feedback(ok bool) {
	if !ok && a.game.ActivePiece {
		a.sound.PlayReject()
	}
}

// applyLocking runs a mutation that may lock the falling piece and
// plays the matching cue.
func (a *App) applyLocking(fn func()) {
	wasBomb := a.game.CurrentIsBomb && a.game.ActivePiece
	prevOver := a.game.GameOver
	fn()
	if a.game.LockFlashLeft == constants.LockFlashFrames {
		if wasBomb {
			a.sound.PlayBomb()
		} else {
			a.sound.PlayLock()
		}
	}
	if !prevOver && a.game.GameOver {
		a.sound.PlayGameOver()
	}
}

// recordSession writes the finished session to the scores db, if one
// is configured.
func (a *App) recordSession() {
	if a.cfg.ScoresPath == "" {
		return
	}
	store, err := scores.Open(a.cfg.ScoresPath)
	if err != nil {
		log.Printf("scores open failed: %v", err)
		return
	}
	defer store.Close()

	_, err = store.Record(scores.Session{
		Started:  a.started,
		Ended:    time.Now(),
		Score:    a.game.Score,
		Lines:    a.game.LinesCleared,
		Commands: a.commands,
		GameOver: a.game.GameOver,
	})
	if err != nil {
		log.Printf("scores record failed: %v", err)
	}
}
