package roster_test

import (
	"context"
	"errors"
	"fmt"

	"council.app/council/internal/model"
	"council.app/council/internal/roster"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type memRepo struct {
	stored  []model.Agent
	loadErr error
	saveErr error
	saves   int
}

func (m *memRepo) Load(ctx context.Context) ([]model.Agent, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.stored, nil
}

func (m *memRepo) Save(ctx context.Context, agents []model.Agent) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.stored = append([]model.Agent(nil), agents...)
	m.saves++
	return nil
}

var _ = Describe("Registry", func() {
	var (
		ctx  context.Context
		repo *memRepo
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = &memRepo{}
	})

	Describe("NewRegistry", func() {
		It("starts with the built-in catalog", func() {
			reg, err := roster.NewRegistry(ctx, repo)
			Expect(err).NotTo(HaveOccurred())
			Expect(reg.List()).To(Equal(roster.Builtins()))
			Expect(reg.List()).NotTo(BeEmpty())
		})

		It("merges stored custom agents after the built-ins", func() {
			repo.stored = []model.Agent{{ID: "custom-1", Name: "Echo"}}
			reg, err := roster.NewRegistry(ctx, repo)
			Expect(err).NotTo(HaveOccurred())

			agents := reg.List()
			Expect(agents).To(HaveLen(len(roster.Builtins()) + 1))
			Expect(agents[len(agents)-1].ID).To(Equal("custom-1"))
		})

		It("degrades to built-ins only when stored data is corrupt", func() {
			repo.loadErr = fmt.Errorf("%w: unexpected end of input", roster.ErrCorruptRoster)
			reg, err := roster.NewRegistry(ctx, repo)
			Expect(err).NotTo(HaveOccurred())
			Expect(reg.List()).To(Equal(roster.Builtins()))
		})

		It("fails on repository errors other than corruption", func() {
			repo.loadErr = errors.New("connection refused")
			_, err := roster.NewRegistry(ctx, repo)
			Expect(err).To(HaveOccurred())
		})

		It("skips stored agents shadowing a built-in id", func() {
			repo.stored = []model.Agent{{ID: "skeptic", Name: "Impostor"}}
			reg, err := roster.NewRegistry(ctx, repo)
			Expect(err).NotTo(HaveOccurred())

			agent, err := reg.Get("skeptic")
			Expect(err).NotTo(HaveOccurred())
			Expect(agent.Name).NotTo(Equal("Impostor"))
		})
	})

	Describe("Add", func() {
		var reg *roster.Registry

		BeforeEach(func() {
			var err error
			reg, err = roster.NewRegistry(ctx, repo)
			Expect(err).NotTo(HaveOccurred())
		})

		It("registers a custom agent and persists only the custom subset", func() {
			err := reg.Add(ctx, model.Agent{ID: "custom-1", Name: "Echo"})
			Expect(err).NotTo(HaveOccurred())
			Expect(repo.stored).To(HaveLen(1))
			Expect(repo.stored[0].ID).To(Equal("custom-1"))
		})

		It("rejects a colliding id", func() {
			Expect(reg.Add(ctx, model.Agent{ID: "custom-1"})).To(Succeed())
			err := reg.Add(ctx, model.Agent{ID: "custom-1"})
			Expect(err).To(MatchError(roster.ErrAgentExists))
		})

		It("rejects an id colliding with a built-in", func() {
			err := reg.Add(ctx, model.Agent{ID: "analyst"})
			Expect(err).To(MatchError(roster.ErrAgentExists))
		})

		It("rolls back when persistence fails", func() {
			repo.saveErr = errors.New("disk full")
			err := reg.Add(ctx, model.Agent{ID: "custom-1"})
			Expect(err).To(HaveOccurred())
			_, err = reg.Get("custom-1")
			Expect(err).To(MatchError(roster.ErrAgentNotFound))
		})
	})

	Describe("Remove", func() {
		var reg *roster.Registry

		BeforeEach(func() {
			repo.stored = []model.Agent{{ID: "custom-1", Name: "Echo"}}
			var err error
			reg, err = roster.NewRegistry(ctx, repo)
			Expect(err).NotTo(HaveOccurred())
		})

		It("removes a custom agent and persists the shrunken subset", func() {
			Expect(reg.Remove(ctx, "custom-1")).To(Succeed())
			Expect(repo.stored).To(BeEmpty())
			_, err := reg.Get("custom-1")
			Expect(err).To(MatchError(roster.ErrAgentNotFound))
		})

		It("protects built-in agents", func() {
			err := reg.Remove(ctx, "visionary")
			Expect(err).To(MatchError(roster.ErrBuiltinAgent))
			Expect(reg.List()).NotTo(BeEmpty())
		})

		It("errors on unknown ids", func() {
			err := reg.Remove(ctx, "nope")
			Expect(err).To(MatchError(roster.ErrAgentNotFound))
		})
	})

	Describe("AttachPortrait", func() {
		var reg *roster.Registry

		BeforeEach(func() {
			repo.stored = []model.Agent{{ID: "custom-1", Name: "Echo"}}
			var err error
			reg, err = roster.NewRegistry(ctx, repo)
			Expect(err).NotTo(HaveOccurred())
			repo.saves = 0
		})

		It("sets the portrait and persists custom agents", func() {
			Expect(reg.AttachPortrait(ctx, "custom-1", "data:image/png;base64,AAA")).To(Succeed())
			agent, err := reg.Get("custom-1")
			Expect(err).NotTo(HaveOccurred())
			Expect(agent.PortraitURL).To(Equal("data:image/png;base64,AAA"))
			Expect(repo.saves).To(Equal(1))
		})

		It("is idempotent for the same portrait", func() {
			Expect(reg.AttachPortrait(ctx, "custom-1", "data:image/png;base64,AAA")).To(Succeed())
			Expect(reg.AttachPortrait(ctx, "custom-1", "data:image/png;base64,AAA")).To(Succeed())
			Expect(repo.saves).To(Equal(1))
		})

		It("decorates built-ins without persisting", func() {
			Expect(reg.AttachPortrait(ctx, "skeptic", "data:image/png;base64,BBB")).To(Succeed())
			agent, err := reg.Get("skeptic")
			Expect(err).NotTo(HaveOccurred())
			Expect(agent.PortraitURL).To(Equal("data:image/png;base64,BBB"))
			Expect(repo.saves).To(BeZero())
		})
	})
})
