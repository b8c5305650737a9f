package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/JocaCola1972/Treinos-LevelUP/internal/domain"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/metrics"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/repository"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/storage"
	"github.com/JocaCola1972/Treinos-LevelUP/internal/textgen"
	"github.com/google/uuid"
)

// SessionView is a session as rendered in the dashboard and history.
type SessionView struct {
	domain.TrainingSession
	State domain.SessionStatus `json:"status"`
	// Shift is nil when the originating shift was deleted.
	Shift     *ShiftView    `json:"shift"`
	Attendees []UserSummary `json:"attendees"`
	// VideoID and EmbedURL are set for recognizable YouTube links.
	VideoID  string `json:"videoId,omitempty"`
	EmbedURL string `json:"embedUrl,omitempty"`
	// PlaybackURL is a temporary link to an uploaded video.
	PlaybackURL string `json:"playbackUrl,omitempty"`
	// InvalidVideo marks a stored link that could not be interpreted.
	InvalidVideo bool `json:"invalidVideo,omitempty"`
}

// Dashboard groups the three views of the home screen.
type Dashboard struct {
	MyShifts        []ShiftView   `json:"myShifts"`
	ActiveSessions  []SessionView `json:"activeSessions"`
	PastSessions    []SessionView `json:"pastSessions"`
	ConnectionError string        `json:"connectionError,omitempty"`
}

// CompleteInput is what the coach submits when closing a session.
type CompleteInput struct {
	VideoURL string
	Notes    string
}

// VideoUpload tells the client where to PUT the file and what reference to
// submit as the session video afterwards.
type VideoUpload struct {
	UploadURL   string    `json:"uploadUrl"`
	VideoRef    string    `json:"videoRef"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// videoExtensions lists the accepted upload content types.
var videoExtensions = map[string]string{
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"video/webm":      ".webm",
}

// SessionService governs the session lifecycle.
type SessionService interface {
	Dashboard(ctx context.Context, viewerID string) (*Dashboard, error)
	ActiveSessions(ctx context.Context, viewerID string) ([]SessionView, error)
	History(ctx context.Context, viewerID string) ([]SessionView, error)
	// Activate starts a new ACTIVE session for the shift, dated today.
	Activate(ctx context.Context, viewerID, shiftID string) (*domain.TrainingSession, error)
	// ConfirmAttendance adds the viewer to the attendees. Confirming twice
	// is not an error.
	ConfirmAttendance(ctx context.Context, viewerID, sessionID string) (*domain.TrainingSession, error)
	// Complete closes an ACTIVE session with notes, an optional video and an
	// insight derived from the notes.
	Complete(ctx context.Context, viewerID, sessionID string, input CompleteInput) (*domain.TrainingSession, error)
	DeleteSession(ctx context.Context, viewerID, sessionID string) error
	RequestVideoUpload(ctx context.Context, viewerID, sessionID, contentType string) (*VideoUpload, error)
}

type sessionService struct {
	ctrl      *Controller
	generator textgen.Generator
	videos    storage.FileStorage
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(ctrl *Controller, generator textgen.Generator, videos storage.FileStorage) SessionService {
	if videos == nil {
		videos = storage.Disabled()
	}
	return &sessionService{ctrl: ctrl, generator: generator, videos: videos}
}

func (s *sessionService) Dashboard(ctx context.Context, viewerID string) (*Dashboard, error) {
	viewer, state, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	mine := domain.MyShifts(viewer, state.Shifts)
	return &Dashboard{
		MyShifts:        shiftViews(state, mine),
		ActiveSessions:  s.sessionViews(ctx, state, domain.ActiveSessions(viewer, state.Sessions, mine)),
		PastSessions:    s.sessionViews(ctx, state, domain.PastSessions(viewer, state.Sessions, mine)),
		ConnectionError: s.ctrl.Status().ConnectionError,
	}, nil
}

func (s *sessionService) ActiveSessions(ctx context.Context, viewerID string) ([]SessionView, error) {
	viewer, state, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	mine := domain.MyShifts(viewer, state.Shifts)
	return s.sessionViews(ctx, state, domain.ActiveSessions(viewer, state.Sessions, mine)), nil
}

func (s *sessionService) History(ctx context.Context, viewerID string) ([]SessionView, error) {
	viewer, state, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	mine := domain.MyShifts(viewer, state.Shifts)
	return s.sessionViews(ctx, state, domain.PastSessions(viewer, state.Sessions, mine)), nil
}

func (s *sessionService) Activate(ctx context.Context, viewerID, shiftID string) (*domain.TrainingSession, error) {
	viewer, _, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	if !domain.CanStartSession(viewer.Role) {
		return nil, ErrForbidden
	}

	var session domain.TrainingSession
	_, err = s.ctrl.apply(func(now time.Time, st domain.State) (domain.State, error) {
		shift := st.FindShift(shiftID)
		if shift == nil {
			return st, ErrShiftNotFound
		}
		session = domain.Activate(*shift, st.NextID(domain.SessionIDPrefix, now), now)
		return st.WithSession(session), nil
	})
	if err != nil {
		return nil, err
	}
	metrics.SessionTransitions.WithLabelValues(metrics.TransitionActivate).Inc()
	log.Printf("INFO: Session %s started for shift %s by %s", session.ID, shiftID, viewer.ID)

	s.ctrl.persist(ctx, collectionSessions, metrics.OpInsert, session.ID, func(ctx context.Context, b *repository.Backend) error {
		return b.Sessions.Insert(ctx, &session)
	})
	return &session, nil
}

func (s *sessionService) ConfirmAttendance(ctx context.Context, viewerID, sessionID string) (*domain.TrainingSession, error) {
	var (
		session domain.TrainingSession
		changed bool
	)
	_, err := s.ctrl.apply(func(_ time.Time, st domain.State) (domain.State, error) {
		viewer := st.FindUser(viewerID)
		if viewer == nil {
			return st, ErrUserNotFound
		}
		current := st.FindSession(sessionID)
		if current == nil {
			return st, ErrSessionNotFound
		}
		if !domain.CanSeeSession(viewer, *current, domain.MyShifts(viewer, st.Shifts)) {
			return st, ErrNotEnrolled
		}
		var err error
		session, changed, err = domain.ConfirmAttendance(*current, viewer.ID)
		if err != nil || !changed {
			return st, err
		}
		return st.WithSessionReplaced(session), nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return &session, nil
	}
	metrics.SessionTransitions.WithLabelValues(metrics.TransitionAttend).Inc()

	attendees := session.AttendeeIDs
	s.ctrl.persist(ctx, collectionSessions, metrics.OpUpdate, sessionID, func(ctx context.Context, b *repository.Backend) error {
		return b.Sessions.Update(ctx, sessionID, repository.Fields{"attendeeIds": attendees})
	})
	return &session, nil
}

func (s *sessionService) Complete(ctx context.Context, viewerID, sessionID string, input CompleteInput) (*domain.TrainingSession, error) {
	viewer, state, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	if !domain.CanCompleteSession(viewer.Role) {
		return nil, ErrForbidden
	}
	current := state.FindSession(sessionID)
	if current == nil {
		return nil, ErrSessionNotFound
	}
	if err := domain.ValidateCompletion(*current, input.Notes); err != nil {
		return nil, err
	}
	// Deleting the session deletes its uploaded object, so only its own uploads are accepted
	if domain.IsUploadedVideo(input.VideoURL) && !domain.OwnsUploadedVideo(sessionID, input.VideoURL) {
		return nil, ErrForeignVideo
	}

	// The model call may take seconds: keep it outside the lock
	insight := s.generator.AnalyzeSession(ctx, input.Notes)
	if strings.TrimSpace(insight) == "" {
		insight = textgen.AnalysisEmptyFallback
	}

	var session domain.TrainingSession
	_, err = s.ctrl.apply(func(_ time.Time, st domain.State) (domain.State, error) {
		latest := st.FindSession(sessionID)
		if latest == nil {
			return st, ErrSessionNotFound
		}
		// Completed or deleted by someone else during the model call
		completed, err := domain.Complete(*latest, domain.Completion{
			VideoURL: input.VideoURL,
			Notes:    input.Notes,
			Insight:  insight,
		})
		if err != nil {
			return st, err
		}
		session = completed
		return st.WithSessionReplaced(session), nil
	})
	if err != nil {
		return nil, err
	}
	metrics.SessionTransitions.WithLabelValues(metrics.TransitionComplete).Inc()
	log.Printf("INFO: Session %s completed by %s", sessionID, viewer.ID)

	fields := repository.Fields{
		"isActive":   session.Active,
		"completed":  session.Completed,
		"youtubeUrl": session.VideoURL,
		"notes":      session.Notes,
		"aiInsights": session.AIInsights,
	}
	s.ctrl.persist(ctx, collectionSessions, metrics.OpUpdate, sessionID, func(ctx context.Context, b *repository.Backend) error {
		return b.Sessions.Update(ctx, sessionID, fields)
	})
	return &session, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, viewerID, sessionID string) error {
	viewer, _, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return err
	}
	if !domain.CanDeleteSession(viewer.Role) {
		return ErrForbidden
	}

	var removed domain.TrainingSession
	_, err = s.ctrl.apply(func(_ time.Time, st domain.State) (domain.State, error) {
		current := st.FindSession(sessionID)
		if current == nil {
			return st, ErrSessionNotFound
		}
		removed = *current
		return st.WithoutSession(sessionID), nil
	})
	if err != nil {
		return err
	}
	metrics.SessionTransitions.WithLabelValues(metrics.TransitionDelete).Inc()
	log.Printf("INFO: Session %s deleted by %s", sessionID, viewer.ID)

	s.ctrl.persist(ctx, collectionSessions, metrics.OpDelete, sessionID, func(ctx context.Context, b *repository.Backend) error {
		return b.Sessions.Delete(ctx, sessionID)
	})

	if domain.OwnsUploadedVideo(sessionID, removed.VideoURL) {
		key := domain.UploadedVideoKey(removed.VideoURL)
		if err := s.videos.DeleteObject(context.WithoutCancel(ctx), key); err != nil {
			log.Printf("WARN: Video %s of deleted session %s was not removed: %v", key, sessionID, err)
		}
	}
	return nil
}

func (s *sessionService) RequestVideoUpload(ctx context.Context, viewerID, sessionID, contentType string) (*VideoUpload, error) {
	viewer, state, err := s.ctrl.viewer(viewerID)
	if err != nil {
		return nil, err
	}
	if !domain.CanCompleteSession(viewer.Role) {
		return nil, ErrForbidden
	}
	if state.FindSession(sessionID) == nil {
		return nil, ErrSessionNotFound
	}
	ext, ok := videoExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedVideoType
	}

	objectKey := domain.SessionVideoPrefix(sessionID) + uuid.NewString() + ext
	url, err := s.videos.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &VideoUpload{
		UploadURL:   url,
		VideoRef:    domain.UploadedVideoRef(objectKey),
		ContentType: contentType,
		ExpiresAt:   s.ctrl.now().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}

func (s *sessionService) sessionViews(ctx context.Context, state domain.State, sessions []domain.TrainingSession) []SessionView {
	views := make([]SessionView, 0, len(sessions))
	for _, ts := range sessions {
		view := SessionView{
			TrainingSession: ts,
			State:           ts.Status(),
			Attendees:       summaries(state, ts.AttendeeIDs),
		}
		if sh := state.FindShift(ts.ShiftID); sh != nil {
			sv := newShiftView(state, *sh)
			view.Shift = &sv
		}
		s.resolveVideo(ctx, &view)
		views = append(views, view)
	}
	return views
}

func (s *sessionService) resolveVideo(ctx context.Context, view *SessionView) {
	ref := strings.TrimSpace(view.VideoURL)
	switch {
	case ref == "":
	case domain.IsUploadedVideo(ref):
		url, err := s.videos.GeneratePresignedDownloadURL(ctx, domain.UploadedVideoKey(ref), storage.DefaultPresignedURLExpiry)
		if err != nil {
			log.Printf("WARN: No playback URL for session %s: %v", view.ID, err)
			view.InvalidVideo = true
			return
		}
		view.PlaybackURL = url
	default:
		id := domain.ExtractYouTubeID(ref)
		if id == "" {
			view.InvalidVideo = true
			return
		}
		view.VideoID = id
		view.EmbedURL = domain.YouTubeEmbedURL(id)
	}
}
