package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"council.app/council/common/id"
	"council.app/council/internal/attachment"
	"council.app/council/internal/debate"
	"council.app/council/internal/http/handler"
	"council.app/council/internal/model"
	"council.app/council/internal/roster"
	"council.app/council/internal/session"
)

type stubGateway struct {
	result  *debate.Result
	err     error
	release chan struct{}
}

func (g *stubGateway) Run(ctx context.Context, req debate.Request) (*debate.Result, error) {
	if g.release != nil {
		<-g.release
	}
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

type stubRepo struct{}

func (stubRepo) Load(ctx context.Context) ([]model.Agent, error) { return nil, nil }

func (stubRepo) Save(ctx context.Context, agents []model.Agent) error { return nil }

// instantClock fires every wait immediately.
type instantClock struct{}

func (instantClock) Now() time.Time { return time.Now() }

func (instantClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Now()
	return ch
}

var _ = Describe("SessionHandler", func() {
	var (
		router  *gin.Engine
		gateway *stubGateway
		manager *session.Manager
	)

	post := func(path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)

		gateway = &stubGateway{result: &debate.Result{
			Turns: []debate.Turn{
				{AgentID: "visionary", Content: "hello", NeuralState: model.NeutralNeuralState("visionary")},
				{AgentID: "skeptic", Content: "world", NeuralState: model.NeutralNeuralState("skeptic")},
			},
			Consensus: "done",
		}}

		manager = session.NewManager(gateway, attachment.NewCollector(), id.NewSequence(),
			session.WithClock(instantClock{}), session.WithConcludeDwell(0))

		registry, err := roster.NewRegistry(context.Background(), stubRepo{})
		Expect(err).NotTo(HaveOccurred())

		h := handler.NewSessionHandler(manager, registry)
		router = gin.New()
		router.GET("/session", h.Get)
		router.POST("/session/submit", h.Submit)
		router.POST("/session/followup", h.FollowUp)
		router.POST("/session/reset", h.Reset)
		router.POST("/session/acknowledge", h.Acknowledge)
		router.POST("/session/intel", h.Intel)
	})

	It("accepts a valid submission and reports preparing", func() {
		w := post("/session/submit", `{"topic": "mars", "participant_ids": ["visionary", "skeptic"]}`)
		Expect(w.Code).To(Equal(http.StatusAccepted))

		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["status"]).To(Equal("preparing"))

		Eventually(func() model.Status {
			return manager.Snapshot().Status
		}, "2s", "5ms").Should(Equal(model.StatusFinished))
	})

	It("rejects unknown participants with 400", func() {
		w := post("/session/submit", `{"topic": "mars", "participant_ids": ["visionary", "ghost"]}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(manager.Snapshot().Status).To(Equal(model.StatusIdle))
	})

	It("rejects a sub-quorum selection with 400 and leaves the session alone", func() {
		w := post("/session/submit", `{"topic": "mars", "participant_ids": ["visionary"]}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(manager.Snapshot().Status).To(Equal(model.StatusIdle))
	})

	It("rejects an empty submission with 400", func() {
		w := post("/session/submit", `{"topic": "  ", "participant_ids": ["visionary", "skeptic"]}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("returns 409 while a round is in flight", func() {
		gateway.release = make(chan struct{})
		defer close(gateway.release)

		w := post("/session/submit", `{"topic": "mars", "participant_ids": ["visionary", "skeptic"]}`)
		Expect(w.Code).To(Equal(http.StatusAccepted))

		w = post("/session/submit", `{"topic": "again", "participant_ids": ["visionary", "skeptic"]}`)
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("serves the session snapshot", func() {
		post("/session/submit", `{"topic": "mars", "participant_ids": ["visionary", "skeptic"]}`)
		Eventually(func() model.Status {
			return manager.Snapshot().Status
		}, "2s", "5ms").Should(Equal(model.StatusFinished))

		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["consensus"]).To(Equal("done"))
		Expect(resp["messages"]).To(HaveLen(2))
	})

	It("validates follow-up text", func() {
		w := post("/session/followup", `{"text": ""}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("resets with 204", func() {
		w := post("/session/reset", ``)
		Expect(w.Code).To(Equal(http.StatusNoContent))
	})

	It("stages intel with 204", func() {
		w := post("/session/intel", `{"text": "uplink confirms activity"}`)
		Expect(w.Code).To(Equal(http.StatusNoContent))

		post("/session/submit", `{"topic": "mars", "participant_ids": ["visionary", "skeptic"]}`)
		Eventually(func() string {
			return manager.Snapshot().Topic
		}, "2s", "5ms").Should(ContainSubstring("[Intel]"))
	})
})
