package router

import (
	"net/http"

	"lawos/case-tracker/internal/handler"

	"go.uber.org/zap"
)

func New(
	dataHandler *handler.DataHandler,
	timerHandler *handler.TimerHandler,
	trashHandler *handler.TrashHandler,
	caseHandler *handler.CaseHandler,
	logger *zap.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Whole-snapshot persistence endpoint
	mux.HandleFunc("/api/data", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			dataHandler.Get(w, r)
		case http.MethodPost:
			dataHandler.Replace(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// Timer endpoints
	mux.HandleFunc("/api/timer/start", post(timerHandler.Start))
	mux.HandleFunc("/api/timer/pause", post(timerHandler.Pause))
	mux.HandleFunc("/api/timer/complete", post(timerHandler.Complete))
	mux.HandleFunc("/api/timer/reopen", post(timerHandler.Reopen))
	mux.HandleFunc("/api/timer/manual-session", post(timerHandler.AddManualSession))
	mux.HandleFunc("/api/timer/minimize", post(timerHandler.ToggleMinimized))
	mux.HandleFunc("/api/timer/active", get(timerHandler.Active))

	// Trash endpoints
	mux.HandleFunc("/api/trash/delete", post(trashHandler.Delete))
	mux.HandleFunc("/api/trash/restore", post(trashHandler.Restore))
	mux.HandleFunc("/api/trash/list", get(trashHandler.List))

	// Entity creation endpoints
	mux.HandleFunc("/api/cases", post(caseHandler.CreateCase))
	mux.HandleFunc("/api/parties", post(caseHandler.CreateParty))
	mux.HandleFunc("/api/tasks", post(caseHandler.AddTask))
	mux.HandleFunc("/api/logs", post(caseHandler.AddLog))
	mux.HandleFunc("/api/reminders", post(caseHandler.AddReminder))
	mux.HandleFunc("/api/deadlines", post(caseHandler.AddDeadline))

	// Billing export
	mux.HandleFunc("/api/export/csv", get(caseHandler.ExportCSV))

	// Logging middleware
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Info("HTTP request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
		)
		mux.ServeHTTP(w, r)
	})
}

func post(h http.HandlerFunc) http.HandlerFunc {
	return method(http.MethodPost, h)
}

func get(h http.HandlerFunc) http.HandlerFunc {
	return method(http.MethodGet, h)
}

func method(m string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != m {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h(w, r)
	}
}
