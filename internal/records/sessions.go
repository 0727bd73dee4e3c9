package records

import (
	"fmt"
	"strings"
	"time"

	"github.com/claude/ironvault/internal/body"
	"github.com/claude/ironvault/internal/frontmatter"
	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/vault"
)

// SessionID derives the document id of a session started at a given time
// from a given workout. Lexical order of ids matches chronological order.
func SessionID(startedAt time.Time, workoutName string) string {
	id := startedAt.Format("2006-01-02-1504")
	if slug := Slugify(workoutName); slug != "" {
		id += "-" + slug
	}
	return id
}

// EncodeSession renders the full session document. The set-table time
// column only carries clock times, so the metadata block's started field
// anchors the date.
func EncodeSession(s models.Session) string {
	b := frontmatter.New()
	b.Set("id", s.ID)
	if s.Workout != "" {
		b.Set("workout", body.FormatExerciseCell(s.Workout, s.WorkoutSource))
	}
	b.Set("status", string(s.Status))
	if !s.StartedAt.IsZero() {
		b.Set("started", s.StartedAt.Format(time.RFC3339))
	}
	if !s.EndedAt.IsZero() {
		b.Set("ended", s.EndedAt.Format(time.RFC3339))
	}
	if s.Notes != "" {
		b.Set("notes", s.Notes)
	}
	if s.Review != nil {
		rb := frontmatter.New()
		if s.Review.Program != "" {
			rb.Set("program", s.Review.Program)
		}
		if !s.Review.CompletedAt.IsZero() {
			rb.Set("completedAt", s.Review.CompletedAt.Format(time.RFC3339))
		}
		if s.Review.Skipped {
			rb.Set("skipped", true)
		}
		b.Set("review", rb)
	}

	var sb strings.Builder
	sb.WriteString(frontmatter.Serialize(b))
	sb.WriteString("\n")
	sb.WriteString(body.BuildSessionExercises(s.Exercises))
	if s.Review != nil && len(s.Review.Answers) > 0 {
		sb.WriteString("\n")
		sb.WriteString(body.BuildReviewAnswers(s.Review.Answers))
	}
	if s.CoachFeedback != "" {
		sb.WriteString("\n")
		sb.WriteString(body.BuildCoachFeedback(body.HeadingCoachFeedback, s.CoachFeedback))
	}
	if s.PreviousFeedback != "" {
		sb.WriteString("\n")
		sb.WriteString(body.BuildCoachFeedback(body.HeadingPrevFeedback, s.PreviousFeedback))
	}
	return sb.String()
}

// DecodeSession rebuilds a session from its document. ok is false when
// the metadata block or its id is missing.
func DecodeSession(text string) (models.Session, bool) {
	block, bodyText := frontmatter.Parse(text)
	if block == nil || block.String("id") == "" {
		return models.Session{}, false
	}
	s := models.Session{
		ID:        block.String("id"),
		Status:    models.SessionStatus(block.String("status")),
		StartedAt: parseTimeField(block, "started"),
		EndedAt:   parseTimeField(block, "ended"),
		Notes:     block.String("notes"),
	}
	s.Workout, s.WorkoutSource = body.ParseExerciseCell(block.String("workout"))
	s.Exercises = body.ParseSessionExercises(bodyText, s.StartedAt)

	review := decodeReview(block.Child("review"))
	if answers := parseReviewSection(bodyText); len(answers) > 0 {
		if review == nil {
			review = &models.SessionReview{}
		}
		review.Answers = answers
	}
	s.Review = review

	s.CoachFeedback = body.ParseCoachFeedback(bodyText)
	s.PreviousFeedback = body.ParsePreviousFeedback(bodyText)
	return s, true
}

func parseTimeField(block *frontmatter.Block, key string) time.Time {
	s := block.String(key)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func decodeReview(rb *frontmatter.Block) *models.SessionReview {
	if rb == nil {
		return nil
	}
	return &models.SessionReview{
		Program:     rb.String("program"),
		CompletedAt: parseTimeField(rb, "completedAt"),
		Skipped:     rb.Bool("skipped"),
	}
}

func parseReviewSection(bodyText string) []models.QuestionAnswer {
	content, ok := body.Section(bodyText, body.HeadingReview)
	if !ok {
		return nil
	}
	return body.ParseReviewAnswers(content)
}

// SessionRepo stores session documents. The active session's own writes
// go through the persistence engine; the repo covers reads, listings, and
// the post-completion mutations.
type SessionRepo struct {
	store vault.Store
}

func NewSessionRepo(store vault.Store) *SessionRepo {
	return &SessionRepo{store: store}
}

// Path returns the vault path of a session document.
func (r *SessionRepo) Path(id string) string {
	return DocPath(SessionsFolder, id)
}

func (r *SessionRepo) Get(id string) (models.Session, error) {
	h, ok := r.store.Resolve(r.Path(id))
	if !ok {
		return models.Session{}, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	text, err := r.store.CachedRead(h)
	if err != nil {
		return models.Session{}, fmt.Errorf("session %q: %w", id, err)
	}
	s, ok := DecodeSession(text)
	if !ok {
		return models.Session{}, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	return s, nil
}

// Save creates or overwrites the session document.
func (r *SessionRepo) Save(s models.Session) error {
	if s.ID == "" {
		return fmt.Errorf("save session: empty id")
	}
	if err := r.store.EnsureFolder(SessionsFolder); err != nil {
		return fmt.Errorf("save session %q: %w", s.ID, err)
	}
	if err := writeDoc(r.store, r.Path(s.ID), EncodeSession(s)); err != nil {
		return fmt.Errorf("save session %q: %w", s.ID, err)
	}
	return nil
}

func (r *SessionRepo) Delete(id string) error {
	h, ok := r.store.Resolve(r.Path(id))
	if !ok {
		return fmt.Errorf("delete session %q: %w", id, ErrNotFound)
	}
	if err := r.store.Trash(h); err != nil {
		return fmt.Errorf("delete session %q: %w", id, err)
	}
	return nil
}

// List returns every decodable session in id order, which is
// chronological by construction.
func (r *SessionRepo) List() []models.Session {
	handles, err := r.store.ListChildren(SessionsFolder)
	if err != nil {
		return nil
	}
	var out []models.Session
	for _, h := range handles {
		text, err := r.store.CachedRead(h)
		if err != nil {
			continue
		}
		s, ok := DecodeSession(text)
		if !ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ListByStatus filters the listing.
func (r *SessionRepo) ListByStatus(status models.SessionStatus) []models.Session {
	var out []models.Session
	for _, s := range r.List() {
		if s.Status == status {
			out = append(out, s)
		}
	}
	return out
}

// SetReview attaches or replaces the review of a completed session. The
// document keeps its id and status.
func (r *SessionRepo) SetReview(id string, review *models.SessionReview) error {
	s, err := r.Get(id)
	if err != nil {
		return err
	}
	s.Review = review
	return r.Save(s)
}

// SetCoachFeedback writes new coach feedback. Existing feedback is
// demoted to the previous-feedback section rather than lost.
func (r *SessionRepo) SetCoachFeedback(id, feedback string) error {
	s, err := r.Get(id)
	if err != nil {
		return err
	}
	if s.CoachFeedback != "" {
		s.PreviousFeedback = s.CoachFeedback
	}
	s.CoachFeedback = feedback
	return r.Save(s)
}
