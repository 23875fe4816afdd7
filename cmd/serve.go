package cmd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/tonas/jams"
	"github.com/jsphweid/tonas/logger"
	"github.com/jsphweid/tonas/midi"
	"github.com/jsphweid/tonas/model"
	"github.com/jsphweid/tonas/track"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the dataset annotations over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newDataset()
		if err != nil {
			return err
		}
		logger.Info("Serving %v on %v", d.DataHome, cfg.Addr)
		return http.ListenAndServe(cfg.Addr, NewHandler(d))
	},
}

type server struct {
	dataset *track.Dataset
}

// NewHandler exposes a Dataset as a read-only JSON API.
func NewHandler(d *track.Dataset) http.Handler {
	s := &server{dataset: d}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestID)
	router.HandleFunc("/tracks", s.handleTracks).Methods("GET")
	router.HandleFunc("/tracks/{id}", s.handleTrack).Methods("GET")
	router.HandleFunc("/tracks/{id}/melody", s.handleMelody).Methods("GET")
	router.HandleFunc("/tracks/{id}/notes", s.handleNotes).Methods("GET")
	router.HandleFunc("/tracks/{id}/jams", s.handleJAMS).Methods("GET")
	router.HandleFunc("/tracks/{id}/midi", s.handleMIDI).Methods("GET")

	return cors.New(cors.Options{AllowedMethods: []string{http.MethodGet}}).Handler(router)
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", id)
		logger.Debug("%v %v %v", id, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, track.ErrUnknownTrack):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		logger.Error("%v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *server) track(w http.ResponseWriter, r *http.Request) (*track.Track, bool) {
	t, err := s.dataset.Track(mux.Vars(r)["id"])
	if err != nil {
		writeFailure(w, err)
		return nil, false
	}
	return t, true
}

func summary(t *track.Track) model.TrackSummary {
	res := model.TrackSummary{TrackID: t.ID}
	if m, ok := t.Metadata(); ok {
		res.Metadata = &m
	}
	return res
}

func (s *server) handleTracks(w http.ResponseWriter, r *http.Request) {
	ids, err := s.dataset.TrackIDs()
	if err != nil {
		writeFailure(w, err)
		return
	}
	res := make([]model.TrackSummary, 0, len(ids))
	for _, id := range ids {
		t, err := s.dataset.Track(id)
		if err != nil {
			writeFailure(w, err)
			return
		}
		res = append(res, summary(t))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleTrack(w http.ResponseWriter, r *http.Request) {
	t, ok := s.track(w, r)
	if !ok {
		return
	}
	res := model.TrackDetail{TrackSummary: summary(t)}

	melody, err := t.Melody()
	if err != nil {
		writeFailure(w, err)
		return
	}
	if melody != nil {
		res.HasMelody = true
		res.NumFrames = melody.Len()
	}

	notes, err := t.Notes()
	if err != nil {
		writeFailure(w, err)
		return
	}
	if notes != nil {
		tuning, err := t.TuningFrequency()
		if err != nil {
			writeFailure(w, err)
			return
		}
		res.HasNotes = true
		res.NumNotes = notes.Len()
		res.TuningFrequency = &tuning
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleMelody(w http.ResponseWriter, r *http.Request) {
	t, ok := s.track(w, r)
	if !ok {
		return
	}
	melody, err := t.Melody()
	if err != nil {
		writeFailure(w, err)
		return
	}
	if melody == nil {
		writeError(w, http.StatusNotFound, "no melody annotation for "+t.ID)
		return
	}
	writeJSON(w, http.StatusOK, melody)
}

func (s *server) handleNotes(w http.ResponseWriter, r *http.Request) {
	t, ok := s.track(w, r)
	if !ok {
		return
	}
	notes, err := t.Notes()
	if err != nil {
		writeFailure(w, err)
		return
	}
	if notes == nil {
		writeError(w, http.StatusNotFound, "no note annotation for "+t.ID)
		return
	}
	tuning, err := t.TuningFrequency()
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NotesResponse{TrackID: t.ID, TuningFrequency: tuning, Notes: notes})
}

func (s *server) handleJAMS(w http.ResponseWriter, r *http.Request) {
	t, ok := s.track(w, r)
	if !ok {
		return
	}
	doc, err := jams.FromTrack(t)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) handleMIDI(w http.ResponseWriter, r *http.Request) {
	t, ok := s.track(w, r)
	if !ok {
		return
	}
	notes, err := t.Notes()
	if err != nil {
		writeFailure(w, err)
		return
	}
	if notes == nil {
		writeError(w, http.StatusNotFound, "no note annotation for "+t.ID)
		return
	}
	tuning, err := t.TuningFrequency()
	if err != nil {
		writeFailure(w, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", `attachment; filename="`+t.ID+`.mid"`)
	if _, err := midi.WriteNotes(w, notes, tuning, t.ID); err != nil {
		logger.Error("Could not write midi for %v: %v", t.ID, err)
	}
}
