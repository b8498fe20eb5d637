package person

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"sync"

	"stateful-calculator/internal/handlers"
	"stateful-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("person")

// Handler serves a Directory over HTTP. mu guards the directory and every
// person in it.
type Handler struct {
	mu  sync.Mutex
	dir *Directory
}

func NewHandler(dir *Directory) *Handler {
	return &Handler{dir: dir}
}

func statusFor(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

type request struct {
	ctx    context.Context
	span   trace.Span
	logger *zap.Logger
	op     string
	w      http.ResponseWriter
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request, op string) *request {
	ctx, span := tracer.Start(r.Context(), "person."+op,
		trace.WithAttributes(
			attribute.String("person.operation", op),
			attribute.String("request.id", observability.RequestIDFromContext(r.Context())),
		),
	)
	if id := chi.URLParam(r, "id"); id != "" {
		span.SetAttributes(attribute.String("person.id", id))
	}
	return &request{
		ctx:    ctx,
		span:   span,
		logger: observability.LoggerWithTrace(ctx),
		op:     op,
		w:      w,
	}
}

func (q *request) fail(msg string, err error) {
	observability.RecordError(q.ctx, q.span, q.logger, errorCounter, q.op, msg, err, statusFor(err), q.w)
}

func (q *request) changed(id string) {
	changeCounter.Add(q.ctx, 1, metric.WithAttributes(attribute.String("operation", q.op)))
	q.span.SetStatus(codes.Ok, "")
	q.logger.Info("person updated",
		zap.String("operation", q.op),
		zap.String("person_id", id),
		zap.String("request_id", observability.RequestIDFromContext(q.ctx)),
	)
}

// view renders p. Callers hold mu.
func (h *Handler) view(id string, p *Person) View {
	hobbies := append(make([]string, 0), p.Hobbies()...)
	friendIDs := make([]string, 0, p.FriendCount())
	for _, f := range p.Friends() {
		if fid, ok := h.dir.ID(f); ok {
			friendIDs = append(friendIDs, fid)
		}
	}
	return View{
		ID:        id,
		FirstName: p.FirstName(),
		LastName:  p.LastName(),
		FullName:  p.FullName(),
		Initials:  p.Initials(),
		Age:       p.Age(),
		Adult:     p.IsAdult(),
		Hobbies:   hobbies,
		FriendIDs: friendIDs,
	}
}

// Create handles POST /people.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	q := h.start(w, r, "create")
	defer q.span.End()

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		q.fail("invalid request body", err)
		return
	}

	p, err := New(req.FirstName, req.LastName, req.Age)
	if err != nil {
		q.fail(err.Error(), err)
		return
	}

	h.mu.Lock()
	id := h.dir.Add(p)
	v := h.view(id, p)
	size := h.dir.Len()
	h.mu.Unlock()

	createdCounter.Add(q.ctx, 1)
	q.span.SetAttributes(attribute.String("person.id", id))
	q.span.SetStatus(codes.Ok, "")
	q.logger.Info("person created",
		zap.String("person_id", id),
		zap.Int("directory_size", size),
		zap.String("request_id", observability.RequestIDFromContext(q.ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, v)
}

// Get handles GET /people/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	q := h.start(w, r, "get")
	defer q.span.End()

	id := chi.URLParam(r, "id")

	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.dir.Get(id)
	if err != nil {
		q.fail("person not found", err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, h.view(id, p))
}

// SetAge handles PUT /people/{id}/age.
func (h *Handler) SetAge(w http.ResponseWriter, r *http.Request) {
	q := h.start(w, r, "set_age")
	defer q.span.End()

	var req AgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		q.fail("invalid request body", err)
		return
	}
	if req.Age == nil {
		q.fail("missing age", errors.New("age is required"))
		return
	}

	id := chi.URLParam(r, "id")

	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.dir.Get(id)
	if err != nil {
		q.fail("person not found", err)
		return
	}
	if err := p.SetAge(*req.Age); err != nil {
		q.fail(err.Error(), err)
		return
	}

	q.changed(id)
	handlers.WriteJSON(w, http.StatusOK, h.view(id, p))
}

// AddFriend handles POST /people/{id}/friends/{friendID}.
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	h.editFriend(w, r, "add_friend", func(p, friend *Person) error {
		return p.AddFriend(friend)
	})
}

// RemoveFriend handles DELETE /people/{id}/friends/{friendID}.
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	h.editFriend(w, r, "remove_friend", func(p, friend *Person) error {
		p.RemoveFriend(friend)
		return nil
	})
}

func (h *Handler) editFriend(w http.ResponseWriter, r *http.Request, op string, edit func(p, friend *Person) error) {
	q := h.start(w, r, op)
	defer q.span.End()

	id := chi.URLParam(r, "id")
	friendID := chi.URLParam(r, "friendID")
	q.span.SetAttributes(attribute.String("person.friend_id", friendID))

	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.dir.Get(id)
	if err != nil {
		q.fail("person not found", err)
		return
	}
	friend, err := h.dir.Get(friendID)
	if err != nil {
		q.fail("friend not found", err)
		return
	}
	if err := edit(p, friend); err != nil {
		q.fail(err.Error(), err)
		return
	}

	q.changed(id)
	handlers.WriteJSON(w, http.StatusOK, h.view(id, p))
}

// AddHobby handles POST /people/{id}/hobbies.
func (h *Handler) AddHobby(w http.ResponseWriter, r *http.Request) {
	q := h.start(w, r, "add_hobby")
	defer q.span.End()

	var req HobbyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		q.fail("invalid request body", err)
		return
	}

	id := chi.URLParam(r, "id")

	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.dir.Get(id)
	if err != nil {
		q.fail("person not found", err)
		return
	}
	if err := p.AddHobby(req.Hobby); err != nil {
		q.fail(err.Error(), err)
		return
	}

	q.changed(id)
	handlers.WriteJSON(w, http.StatusOK, h.view(id, p))
}

// RemoveHobby handles DELETE /people/{id}/hobbies/{hobby}.
func (h *Handler) RemoveHobby(w http.ResponseWriter, r *http.Request) {
	q := h.start(w, r, "remove_hobby")
	defer q.span.End()

	id := chi.URLParam(r, "id")
	hobby := chi.URLParam(r, "hobby")
	// chi matches on RawPath when it is set, leaving the param escaped.
	if r.URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(hobby); err == nil {
			hobby = unescaped
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.dir.Get(id)
	if err != nil {
		q.fail("person not found", err)
		return
	}
	p.RemoveHobby(hobby)

	q.changed(id)
	handlers.WriteJSON(w, http.StatusOK, h.view(id, p))
}

// Greet handles GET /people/{id}/greet/{otherID}. An unknown other person is
// greeted as a stranger.
func (h *Handler) Greet(w http.ResponseWriter, r *http.Request) {
	q := h.start(w, r, "greet")
	defer q.span.End()

	id := chi.URLParam(r, "id")

	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.dir.Get(id)
	if err != nil {
		q.fail("person not found", err)
		return
	}
	other, _ := h.dir.Get(chi.URLParam(r, "otherID"))

	q.span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, MessageResponse{Message: p.Greet(other)})
}

// Introduce handles GET /people/{id}/introduction.
func (h *Handler) Introduce(w http.ResponseWriter, r *http.Request) {
	q := h.start(w, r, "introduce")
	defer q.span.End()

	id := chi.URLParam(r, "id")

	h.mu.Lock()
	defer h.mu.Unlock()

	p, err := h.dir.Get(id)
	if err != nil {
		q.fail("person not found", err)
		return
	}

	q.span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, MessageResponse{Message: p.Introduce()})
}
