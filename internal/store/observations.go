package store

import "github.com/craftlens/craftlens/internal/models"

// LoadObservations reads the observation store. Missing or corrupt files
// yield a zeroed store.
func (l *Local) LoadObservations() models.ObservationStore {
	var obs models.ObservationStore
	l.readJSON(observationsFile, &obs)
	return obs
}

// RecordObservation bumps the analysis counter and appends a summary to
// the rolling window.
func (l *Local) RecordObservation(summary models.ObservationSummary) {
	obs := l.LoadObservations()
	obs.Counters.SessionsAnalyzed++
	obs.Recent = append(obs.Recent, summary)
	if len(obs.Recent) > ObservationCap {
		obs.Recent = obs.Recent[len(obs.Recent)-ObservationCap:]
	}
	l.writeJSON(observationsFile, obs)
}

// BumpSubmitted increments the submitted counter.
func (l *Local) BumpSubmitted() {
	obs := l.LoadObservations()
	obs.Counters.ReportsSubmitted++
	l.writeJSON(observationsFile, obs)
}

// BumpQueued increments the queued counter.
func (l *Local) BumpQueued() {
	obs := l.LoadObservations()
	obs.Counters.ReportsQueued++
	l.writeJSON(observationsFile, obs)
}
