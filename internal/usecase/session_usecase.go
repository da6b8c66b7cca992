package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/checkin-service/internal/domain"
	"github.com/checkin-service/internal/domain/repository"
	"github.com/checkin-service/internal/pkg/clock"
	apperrors "github.com/checkin-service/internal/pkg/errors"
	"github.com/checkin-service/internal/usecase/dto"
)

// defaultTrackWidth is the nominal slider track when the client does not
// report its viewport: a 375pt screen minus 16pt side margins.
const defaultTrackWidth = 343.0

// sessionState bundles everything owned by one check-in session. All
// access goes through mu, so transitions, slider input and timer reads
// are serialized per session.
type sessionState struct {
	mu      sync.Mutex
	session *domain.Session
	slider  *domain.Slider
	ticker  *clock.Ticker
	search  *SearchStream
}

// SessionUseCase owns the live check-in sessions. Sessions are in-memory
// only; they do not survive a restart, which matches their lifetime on the
// client side.
type SessionUseCase struct {
	passengers  repository.PassengerRepository
	stations    *StationUseCase
	logger      *zap.Logger
	now         func() time.Time
	newTicketID func() string
	newTicker   func() *clock.Ticker

	mu       sync.RWMutex
	sessions map[string]*sessionState
}

func NewSessionUseCase(
	passengers repository.PassengerRepository,
	stations *StationUseCase,
	logger *zap.Logger,
) *SessionUseCase {
	return &SessionUseCase{
		passengers:  passengers,
		stations:    stations,
		logger:      logger,
		now:         time.Now,
		newTicketID: domain.NewTicketID,
		newTicker:   clock.NewTicker,
		sessions:    make(map[string]*sessionState),
	}
}

// Create starts a new session on the station selection screen, seeded
// with the favorite stations as the initial selectable list.
func (uc *SessionUseCase) Create(ctx context.Context, req dto.CreateSessionRequest) *dto.SessionResponse {
	trackWidth := req.TrackWidth
	if trackWidth <= 0 {
		trackWidth = defaultTrackWidth
	}

	id := uuid.NewString()
	st := &sessionState{
		session: domain.NewSession(id),
		slider:  domain.NewSlider(trackWidth, false),
		ticker:  uc.newTicker(),
		search:  uc.stations.NewSearchStream(),
	}

	uc.mu.Lock()
	uc.sessions[id] = st
	uc.mu.Unlock()

	uc.logger.Info("Session created", zap.String("session_id", id))

	st.mu.Lock()
	resp := uc.snapshotLocked(st)
	st.mu.Unlock()

	// A failed favorites read leaves the list empty; the session itself
	// is usable either way.
	if favorites, err := uc.stations.ListFavorites(ctx); err == nil {
		resp.FavoriteStations = favorites
	}
	return resp
}

// Get returns the current session snapshot.
func (uc *SessionUseCase) Get(id string) (*dto.SessionResponse, error) {
	return uc.withSession(id, nil)
}

// Delete tears the session down, stopping its timer and any pending
// search. Idempotent on repeated calls.
func (uc *SessionUseCase) Delete(id string) {
	uc.mu.Lock()
	st, ok := uc.sessions[id]
	delete(uc.sessions, id)
	uc.mu.Unlock()

	if !ok {
		return
	}

	st.mu.Lock()
	st.ticker.Close()
	st.search.Close()
	st.mu.Unlock()

	uc.logger.Info("Session deleted", zap.String("session_id", id))
}

// SelectStation applies a station pick. An illegal pick leaves the session
// untouched and returns the unchanged snapshot.
func (uc *SessionUseCase) SelectStation(id string, station domain.Station) (*dto.SessionResponse, error) {
	return uc.withSession(id, func(st *sessionState) {
		st.session.SelectStation(station.Normalized())
	})
}

// SelectPassenger resolves the passenger from the store and applies the
// pick.
func (uc *SessionUseCase) SelectPassenger(ctx context.Context, id, passengerID string) (*dto.SessionResponse, error) {
	p, err := uc.passengers.GetByID(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	return uc.withSession(id, func(st *sessionState) {
		st.session.SelectPassenger(*p)
	})
}

// Back navigates one screen back and re-syncs the slider and timer with
// whatever check-in state survived the transition.
func (uc *SessionUseCase) Back(id string) (*dto.SessionResponse, error) {
	return uc.withSession(id, func(st *sessionState) {
		if st.session.Back() {
			uc.syncLocked(st)
		}
	})
}

// ChangeStation drops the station but keeps the passenger, so the next
// station pick lands straight on the check-in screen.
func (uc *SessionUseCase) ChangeStation(id string) (*dto.SessionResponse, error) {
	return uc.withSession(id, func(st *sessionState) {
		if st.session.ChangeStation() {
			uc.syncLocked(st)
		}
	})
}

// ShowTicket opens the ticket view.
func (uc *SessionUseCase) ShowTicket(id string) (*dto.SessionResponse, error) {
	return uc.withSession(id, func(st *sessionState) {
		st.session.ShowTicket()
	})
}

// CheckOut ends the trip without a slider gesture, e.g. from the ticket
// actions.
func (uc *SessionUseCase) CheckOut(id string) (*dto.SessionResponse, error) {
	return uc.withSession(id, func(st *sessionState) {
		if st.session.CheckOut() {
			uc.syncLocked(st)
		}
	})
}

// SliderPress starts a drag at the given pointer coordinate.
func (uc *SessionUseCase) SliderPress(id string, x float64) (*dto.SessionResponse, error) {
	return uc.withSession(id, func(st *sessionState) {
		st.slider.Press(x)
	})
}

// SliderMove updates the drag position.
func (uc *SessionUseCase) SliderMove(id string, x float64) (*dto.SessionResponse, error) {
	return uc.withSession(id, func(st *sessionState) {
		st.slider.Move(x)
	})
}

// SliderRelease ends the drag. A committed gesture drives the session
// transition: check-in mints a ticket and arms the timer, check-out clears
// both. If the session refuses the transition the slider is forced back to
// the session's actual state.
func (uc *SessionUseCase) SliderRelease(id string) (*dto.SessionResponse, error) {
	return uc.withSession(id, func(st *sessionState) {
		switch st.slider.Release() {
		case domain.OutcomeCheckIn:
			if st.session.CheckIn(uc.now(), uc.newTicketID()) {
				st.ticker.SetStart(st.session.CheckInTime)
			} else {
				st.slider.Sync(st.session.IsCheckedIn)
			}
		case domain.OutcomeCheckOut:
			if st.session.CheckOut() {
				st.ticker.SetStart(nil)
			} else {
				st.slider.Sync(st.session.IsCheckedIn)
			}
		}
	})
}

// SearchInput feeds one keystroke-level query update into the session's
// debounced search stream.
func (uc *SessionUseCase) SearchInput(id, query string) error {
	st, err := uc.lookup(id)
	if err != nil {
		return err
	}

	st.mu.Lock()
	stream := st.search
	st.mu.Unlock()

	stream.Input(query)
	return nil
}

// SearchResults returns the query as last typed and the latest completed
// lookup for the session.
func (uc *SessionUseCase) SearchResults(id string) (string, *dto.SearchResponse, error) {
	st, err := uc.lookup(id)
	if err != nil {
		return "", nil, err
	}

	st.mu.Lock()
	stream := st.search
	st.mu.Unlock()

	query, resp := stream.Results()
	return query, resp, nil
}

func (uc *SessionUseCase) lookup(id string) (*sessionState, error) {
	uc.mu.RLock()
	st, ok := uc.sessions[id]
	uc.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return st, nil
}

func (uc *SessionUseCase) withSession(id string, fn func(*sessionState)) (*dto.SessionResponse, error) {
	st, err := uc.lookup(id)
	if err != nil {
		return nil, err
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if fn != nil {
		fn(st)
	}
	return uc.snapshotLocked(st), nil
}

// syncLocked force-corrects the slider and timer after a transition
// changed the check-in state outside a slider gesture.
func (uc *SessionUseCase) syncLocked(st *sessionState) {
	st.slider.Sync(st.session.IsCheckedIn)
	st.ticker.SetStart(st.session.CheckInTime)
}

func (uc *SessionUseCase) snapshotLocked(st *sessionState) *dto.SessionResponse {
	sess := st.session
	elapsed, current := st.ticker.Snapshot()

	resp := &dto.SessionResponse{
		ID:              sess.ID,
		Screen:          string(sess.Screen),
		SelectedStation: sess.SelectedStation,
		IsCheckedIn:     sess.IsCheckedIn,
		CheckInTime:     sess.CheckInTime,
		Slider: dto.SliderState{
			Offset:   st.slider.Offset(),
			MaxDrag:  st.slider.MaxDrag(),
			Dragging: st.slider.Dragging(),
			Enabled:  st.slider.Enabled(),
		},
		ElapsedTime: elapsed,
		CurrentTime: current,
	}

	at := uc.now()
	if sess.SelectedPassenger != nil {
		p := dto.NewPassengerResponse(*sess.SelectedPassenger, at)
		resp.SelectedPassenger = &p
	}
	if sess.ActiveTicket != nil {
		resp.Ticket = &dto.TicketResponse{
			TicketID:  sess.ActiveTicket.TicketID,
			Station:   sess.ActiveTicket.Station,
			Passenger: dto.NewPassengerResponse(sess.ActiveTicket.Passenger, at),
			ValidFrom: sess.ActiveTicket.ValidFrom,
		}
	}
	return resp
}
