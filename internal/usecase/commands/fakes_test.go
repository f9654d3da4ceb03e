//go:build unit

package commands_test

import (
	"context"
	"time"

	"mokka-api/internal/domain/event"
	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/infra/repository"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeStore is an in-memory stand-in for the postgres-backed repositories.
// It mirrors their contract, including the error kinds the conditional
// updates produce, so usecase tests exercise the real decision paths.
type fakeStore struct {
	sessions      map[uuid.UUID]*shared.SessionSnapshot
	rsvps         map[uuid.UUID]*shared.RSVPSnapshot
	verifications map[string]*verificationRow
	events        map[uuid.UUID]bool
	eventSlugs    map[uuid.UUID]string

	// createErrs is drained first by Create, one error per call, to
	// simulate constraint violations.
	createErrs []error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions:      make(map[uuid.UUID]*shared.SessionSnapshot),
		rsvps:         make(map[uuid.UUID]*shared.RSVPSnapshot),
		verifications: make(map[string]*verificationRow),
		events:        make(map[uuid.UUID]bool),
		eventSlugs:    make(map[uuid.UUID]string),
	}
}

func (s *fakeStore) addSession(snap shared.SessionSnapshot) uuid.UUID {
	cp := snap
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	if cp.EventID == uuid.Nil {
		cp.EventID = uuid.New()
	}
	s.sessions[cp.ID] = &cp
	s.events[cp.EventID] = true
	return cp.ID
}

func (s *fakeStore) addRSVP(snap shared.RSVPSnapshot) uuid.UUID {
	cp := snap
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	s.rsvps[cp.ID] = &cp
	return cp.ID
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Sessions() shared.SessionRepository          { return &fakeSessionRepo{t.store} }
func (t *fakeTx) RSVPs() shared.RSVPRepository                { return &fakeRSVPRepo{t.store} }
func (t *fakeTx) Verifications() shared.VerificationRepository { return &fakeVerificationRepo{t.store} }
func (t *fakeTx) Events() shared.EventRepository              { return &fakeEventRepo{t.store} }
func (t *fakeTx) Conn() db.Conn                               { return nil }

// fakeUoW runs the transactional closure directly against the shared store.
// Rollback is not simulated; tests assert on the error paths instead.
type fakeUoW struct {
	store *fakeStore
}

func newFakeUoW(store *fakeStore) *fakeUoW {
	return &fakeUoW{store: store}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{store: u.store})
}

func (u *fakeUoW) WithConn(ctx context.Context, fn func(ctx context.Context, conn db.Conn) error) error {
	return fn(ctx, nil)
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.SessionSnapshot, error) {
	snap, ok := r.store.sessions[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "session not found", nil)
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeSessionRepo) TryReserve(_ context.Context, id uuid.UUID, seats int32) error {
	snap, ok := r.store.sessions[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "session not found", nil)
	}
	if snap.Reserved+seats > snap.Capacity {
		return infra.NewRepoErr(infra.KindConflict, "not enough seats remaining", nil)
	}
	snap.Reserved += seats
	return nil
}

func (r *fakeSessionRepo) Adjust(_ context.Context, id uuid.UUID, delta int32) error {
	snap, ok := r.store.sessions[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "session not found", nil)
	}
	next := snap.Reserved + delta
	if next < 0 || next > snap.Capacity {
		return infra.NewRepoErr(infra.KindInvariantViolated, "seat adjustment out of bounds", nil)
	}
	snap.Reserved = next
	return nil
}

type fakeRSVPRepo struct {
	store *fakeStore
}

func (r *fakeRSVPRepo) Create(_ context.Context, entity *rsvp.RSVP) (*shared.RSVPSnapshot, error) {
	if len(r.store.createErrs) > 0 {
		err := r.store.createErrs[0]
		r.store.createErrs = r.store.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	for _, existing := range r.store.rsvps {
		if existing.Code == entity.Code() {
			return nil, infra.NewRepoErr(infra.KindConflict, "reservation code collision", nil)
		}
	}
	snap := &shared.RSVPSnapshot{
		ID:        entity.ID(),
		SessionID: entity.SessionID(),
		Name:      entity.Name(),
		Email:     entity.Email(),
		Phone:     entity.Phone(),
		Seats:     entity.Seats(),
		Status:    entity.Status(),
		Code:      entity.Code(),
		CreatedAt: time.Now(),
	}
	r.store.rsvps[snap.ID] = snap
	cp := *snap
	return &cp, nil
}

func (r *fakeRSVPRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.RSVPSnapshot, error) {
	snap, ok := r.store.rsvps[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "rsvp not found", nil)
	}
	cp := *snap
	return &cp, nil
}

func (r *fakeRSVPRepo) FindByCode(_ context.Context, code string) (*shared.RSVPSnapshot, error) {
	for _, snap := range r.store.rsvps {
		if snap.Code == code {
			cp := *snap
			return &cp, nil
		}
	}
	return nil, infra.NewRepoErr(infra.KindNotFound, "rsvp not found", nil)
}

func (r *fakeRSVPRepo) HasActiveForSession(_ context.Context, sessionID uuid.UUID, email string) (bool, error) {
	for _, snap := range r.store.rsvps {
		if snap.SessionID == sessionID && snap.Email == email && snap.Status.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRSVPRepo) HasActiveFutureSameEvent(_ context.Context, eventID uuid.UUID, email string, excludeSessionID uuid.UUID, now time.Time) (bool, error) {
	for _, snap := range r.store.rsvps {
		if !snap.Status.IsActive() || snap.Email != email || snap.SessionID == excludeSessionID {
			continue
		}
		session, ok := r.store.sessions[snap.SessionID]
		if !ok || session.EventID != eventID {
			continue
		}
		if session.Start.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRSVPRepo) ActiveByEmailForUpdate(_ context.Context, email string) ([]shared.RSVPSnapshot, error) {
	var out []shared.RSVPSnapshot
	for _, snap := range r.store.rsvps {
		if snap.Email == email && snap.Status.IsActive() {
			out = append(out, *snap)
		}
	}
	return out, nil
}

func (r *fakeRSVPRepo) CountByEmail(_ context.Context, email string) (int64, error) {
	var n int64
	for _, snap := range r.store.rsvps {
		if snap.Email == email {
			n++
		}
	}
	return n, nil
}

func (r *fakeRSVPRepo) UpdateSeats(_ context.Context, id uuid.UUID, seats int32) error {
	snap, ok := r.store.rsvps[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "rsvp not found", nil)
	}
	snap.Seats = seats
	return nil
}

func (r *fakeRSVPRepo) MoveToSession(_ context.Context, id uuid.UUID, sessionID uuid.UUID, seats int32) error {
	snap, ok := r.store.rsvps[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "rsvp not found", nil)
	}
	if snap.Status.IsActive() && r.holderTaken(id, sessionID, snap.Email) {
		return duplicateHolderErr(repository.ConstraintRSVPActiveHolder)
	}
	snap.SessionID = sessionID
	snap.Seats = seats
	return nil
}

func (r *fakeRSVPRepo) UpdateStatus(_ context.Context, id uuid.UUID, status rsvp.Status) error {
	snap, ok := r.store.rsvps[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "rsvp not found", nil)
	}
	snap.Status = status
	return nil
}

func (r *fakeRSVPRepo) UpdateAll(_ context.Context, id uuid.UUID, sessionID uuid.UUID, name, email string, phone *string, seats int32, status rsvp.Status) error {
	snap, ok := r.store.rsvps[id]
	if !ok {
		return infra.NewRepoErr(infra.KindNotFound, "rsvp not found", nil)
	}
	if status.IsActive() && r.holderTaken(id, sessionID, email) {
		return duplicateHolderErr(repository.ConstraintRSVPActiveHolder)
	}
	snap.SessionID = sessionID
	snap.Name = name
	snap.Email = email
	snap.Phone = phone
	snap.Seats = seats
	snap.Status = status
	return nil
}

// holderTaken reports whether a different active rsvp already occupies the
// (session, email) pair guarded by the partial unique index.
func (r *fakeRSVPRepo) holderTaken(id, sessionID uuid.UUID, email string) bool {
	for oid, other := range r.store.rsvps {
		if oid != id && other.SessionID == sessionID && other.Email == email && other.Status.IsActive() {
			return true
		}
	}
	return false
}

func (r *fakeRSVPRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.rsvps[id]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "rsvp not found", nil)
	}
	delete(r.store.rsvps, id)
	return nil
}

// verificationRow mirrors the verification_codes table for the fake store.
type verificationRow struct {
	Email     string
	Code      string
	Action    rsvp.Action
	ExpiresAt time.Time
}

type fakeVerificationRepo struct {
	store *fakeStore
}

func (r *fakeVerificationRepo) Upsert(_ context.Context, email, code string, action rsvp.Action, expiresAt time.Time) error {
	r.store.verifications[email] = &verificationRow{
		Email:     email,
		Code:      code,
		Action:    action,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (r *fakeVerificationRepo) Consume(_ context.Context, email, code string, action rsvp.Action, now time.Time) (bool, error) {
	snap, ok := r.store.verifications[email]
	if !ok || snap.Code != code || snap.Action != action || !snap.ExpiresAt.After(now) {
		return false, nil
	}
	delete(r.store.verifications, email)
	return true, nil
}

type fakeEventRepo struct {
	store *fakeStore
}

func (r *fakeEventRepo) CreateWithSessions(_ context.Context, e *event.Event) error {
	if r.slugTaken(e.ID(), e.Slug()) {
		return infra.NewRepoErr(infra.KindDuplicateKey, "duplicate slug", nil)
	}
	r.store.events[e.ID()] = true
	r.store.eventSlugs[e.ID()] = e.Slug()
	for _, s := range e.Sessions() {
		r.store.sessions[s.ID] = &shared.SessionSnapshot{
			ID:         s.ID,
			EventID:    e.ID(),
			EventTitle: e.Title(),
			Start:      s.Start,
			End:        s.End,
			Capacity:   s.Capacity,
		}
	}
	return nil
}

func (r *fakeEventRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return r.store.events[id], nil
}

func (r *fakeEventRepo) Update(_ context.Context, id uuid.UUID, slug, _, _ string, _ bool) error {
	if !r.store.events[id] {
		return infra.NewRepoErr(infra.KindNotFound, "event not found", nil)
	}
	if r.slugTaken(id, slug) {
		return infra.NewRepoErr(infra.KindDuplicateKey, "duplicate slug", nil)
	}
	r.store.eventSlugs[id] = slug
	return nil
}

func (r *fakeEventRepo) ReplaceSessions(_ context.Context, eventID uuid.UUID, sessions []event.Session) error {
	if err := r.clearEventRSVPs(eventID); err != nil {
		return err
	}
	for id, snap := range r.store.sessions {
		if snap.EventID == eventID {
			delete(r.store.sessions, id)
		}
	}
	for _, s := range sessions {
		r.store.sessions[s.ID] = &shared.SessionSnapshot{
			ID:       s.ID,
			EventID:  eventID,
			Start:    s.Start,
			End:      s.End,
			Capacity: s.Capacity,
		}
	}
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	if !r.store.events[id] {
		return infra.NewRepoErr(infra.KindNotFound, "event not found", nil)
	}
	if err := r.clearEventRSVPs(id); err != nil {
		return err
	}
	delete(r.store.events, id)
	delete(r.store.eventSlugs, id)
	for sid, snap := range r.store.sessions {
		if snap.EventID == id {
			delete(r.store.sessions, sid)
		}
	}
	return nil
}

// clearEventRSVPs mirrors the repository contract: cancelled rows go with
// their sessions, anything else still referencing them is an FK violation.
func (r *fakeEventRepo) clearEventRSVPs(eventID uuid.UUID) error {
	for rid, snap := range r.store.rsvps {
		session, ok := r.store.sessions[snap.SessionID]
		if !ok || session.EventID != eventID {
			continue
		}
		if snap.Status != rsvp.StatusCancelled {
			return infra.NewRepoErr(infra.KindForeignKeyViolated, "rsvps still reference event sessions", nil)
		}
		delete(r.store.rsvps, rid)
	}
	return nil
}

func (r *fakeEventRepo) slugTaken(id uuid.UUID, slug string) bool {
	for oid, existing := range r.store.eventSlugs {
		if oid != id && existing == slug {
			return true
		}
	}
	return false
}

func (r *fakeEventRepo) CountActiveRSVPs(_ context.Context, eventID uuid.UUID) (int64, error) {
	var n int64
	for _, snap := range r.store.rsvps {
		session, ok := r.store.sessions[snap.SessionID]
		if ok && session.EventID == eventID && snap.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

type sentReservation struct {
	email shared.ReservationEmail
}

type sentVerification struct {
	email shared.VerificationEmail
}

// fakeMailer records sends so tests can assert on post-commit notifications.
type fakeMailer struct {
	reservations  []sentReservation
	verifications []sentVerification
	err           error
}

func (m *fakeMailer) SendReservationConfirmation(_ context.Context, email shared.ReservationEmail) error {
	if m.err != nil {
		return m.err
	}
	m.reservations = append(m.reservations, sentReservation{email: email})
	return nil
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, email shared.VerificationEmail) error {
	if m.err != nil {
		return m.err
	}
	m.verifications = append(m.verifications, sentVerification{email: email})
	return nil
}

// duplicateHolderErr mimics the classified unique-index violation raised when
// two bookings by the same holder race past the application check.
func duplicateHolderErr(constraint string) error {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: constraint}
	return infra.NewRepoErr(infra.KindDuplicateKey, "duplicate key: "+constraint, pgErr)
}
