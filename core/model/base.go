// Package model provides the estimator state machine shared by every
// fit/transform/predict component in the repository.
//
// An estimator has exactly two states: NotFitted and Fitted. Transform and
// Predict must refuse to run before Fit completes, and nothing transitions
// a fitted estimator back: the fitted state is immutable for the life of
// the process.
//
// Preprocessing types embed BaseEstimator; model types compose a
// *StateManager:
//
//	type MyModel struct {
//		state *model.StateManager
//	}
//
//	func (m *MyModel) Fit(X, y mat.Matrix) error {
//		// training logic
//		m.state.SetFitted()
//		return nil
//	}
package model

// EstimatorState represents the learning state of an estimator.
type EstimatorState int

const (
	// NotFitted indicates the estimator has not been trained yet.
	NotFitted EstimatorState = iota
	// Fitted indicates the estimator has been trained.
	Fitted
)

// BaseEstimator is embedded by estimators that track only fitted state.
type BaseEstimator struct {
	// State holds the estimator's learning state.
	State EstimatorState
}

// IsFitted returns whether the estimator has been fitted with training
// data. All estimators must be fitted before Transform or Predict.
func (e *BaseEstimator) IsFitted() bool {
	return e.State == Fitted
}

// SetFitted marks the estimator as fitted. Called by estimator
// implementations at the end of a successful Fit, never by callers.
func (e *BaseEstimator) SetFitted() {
	e.State = Fitted
}

// Reset returns the estimator to its initial untrained state.
func (e *BaseEstimator) Reset() {
	e.State = NotFitted
}

// StateManager tracks fitted state for estimators that prefer composition
// over embedding.
type StateManager struct {
	state EstimatorState
}

// NewStateManager creates a StateManager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{state: NotFitted}
}

// IsFitted returns whether SetFitted has been called.
func (s *StateManager) IsFitted() bool {
	return s.state == Fitted
}

// SetFitted marks the estimator as fitted.
func (s *StateManager) SetFitted() {
	s.state = Fitted
}

// Reset returns the estimator to the NotFitted state.
func (s *StateManager) Reset() {
	s.state = NotFitted
}
