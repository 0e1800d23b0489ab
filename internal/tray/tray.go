// Package tray shows the persistent timer widget in the system tray:
// the active task's duration refreshed once per second, with pause and
// resume controls. It is read-only with respect to case data except
// through CaseService operations.
package tray

import (
	"time"

	"github.com/getlantern/systray"
	"go.uber.org/zap"

	"lawos/case-tracker/internal/service"
	"lawos/case-tracker/internal/timer"
)

const idleTitle = "--:--:--"

type Widget struct {
	service *service.CaseService
	logger  *zap.Logger
	stop    chan struct{}
}

func New(svc *service.CaseService, logger *zap.Logger) *Widget {
	return &Widget{
		service: svc,
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

// Run enters the systray loop. It blocks until Stop is called or the
// quit menu item is clicked.
func (w *Widget) Run() {
	systray.Run(w.onReady, w.onExit)
}

// Stop tears the widget down and cancels its refresh ticker.
func (w *Widget) Stop() {
	close(w.stop)
	systray.Quit()
}

func (w *Widget) onReady() {
	systray.SetTitle(idleTitle)
	systray.SetTooltip("Case Tracker")

	toggleItem := systray.AddMenuItem("Pause / Resume", "Pause or resume the active task")
	minimizeItem := systray.AddMenuItem("Minimize", "Hide the duration from the tray title")
	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "Quit the tray widget")

	go w.loop(toggleItem, minimizeItem, quitItem)
}

func (w *Widget) onExit() {
	w.logger.Info("Tray widget stopped")
}

// loop drives the 1 Hz display refresh. The duration is recomputed
// from the session list on every tick rather than accumulated locally,
// so the title can never drift from the stored state.
func (w *Widget) loop(toggleItem, minimizeItem, quitItem *systray.MenuItem) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	w.refresh()
	for {
		select {
		case <-ticker.C:
			w.refresh()
		case <-toggleItem.ClickedCh:
			w.togglePause()
			w.refresh()
		case <-minimizeItem.ClickedCh:
			if _, err := w.service.ToggleMinimized(); err != nil {
				w.logger.Warn("Failed to toggle minimized flag", zap.Error(err))
			}
			w.refresh()
		case <-quitItem.ClickedCh:
			systray.Quit()
			return
		case <-w.stop:
			return
		}
	}
}

func (w *Widget) refresh() {
	active, err := w.service.ActiveTimer()
	if err != nil {
		w.logger.Warn("Failed to resolve active timer", zap.Error(err))
		return
	}
	if active == nil {
		systray.SetTitle(idleTitle)
		systray.SetTooltip("Case Tracker")
		return
	}
	if active.Minimized {
		systray.SetTitle(timer.FormatDuration(active.Seconds))
		systray.SetTooltip("Case Tracker")
		return
	}
	systray.SetTitle(timer.FormatDuration(active.Seconds))
	systray.SetTooltip(active.CaseName + " / " + active.TaskDesc)
}

func (w *Widget) togglePause() {
	active, err := w.service.ActiveTimer()
	if err != nil || active == nil {
		return
	}
	if active.IsRunning {
		_, err = w.service.PauseTimer(active.CaseID, active.TaskID)
	} else {
		_, err = w.service.StartTimer(active.CaseID, active.TaskID)
	}
	if err != nil {
		w.logger.Warn("Failed to toggle timer", zap.Error(err))
	}
}
